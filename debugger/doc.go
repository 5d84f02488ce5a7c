// This file is part of Gopher80.
//
// Gopher80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher80.  If not, see <https://www.gnu.org/licenses/>.

// Package debugger implements a monitor for the emulated machine. The
// monitor reads commands from a terminal.Terminal implementation and controls
// the CPU through the CPU's action interface.
//
// The CPU runs in its own goroutine for the lifetime of the debugger. When the
// CPU is paused, the monitor is free to inspect and change the state of the
// machine. When the CPU is running only commands that are safe to call from
// another goroutine are permitted. Those commands that are not safe will
// report an error.
//
// Breakpoints can be set on addresses, on interrupts, and with a Lua
// expression. For example:
//
//	BREAK 0x0100
//	BREAK INT CTC
//	BREAK LUA A == 0x10 and zero
//
// Lua expressions can refer to the registers by their upper case names (A,
// BC, IX, SP, etc.) and to the flags by their lower case names (sign, zero,
// halfcarry, parity, subtract, carry). The peek() function returns the value
// in memory at an address.
//
// The TAPE command plays a WAV or MP3 file into a CTC channel or PIO input
// bit. The RECORD command writes the output of a CTC channel to a WAV file.
//
//	TAPE INSERT loader.wav CTC3
//	TAPE PLAY
//	RECORD beeper.wav 0
package debugger
