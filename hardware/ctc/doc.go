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

// Package ctc emulates the Z80 CTC counter/timer chip. The chip has four
// channels, each of which can be clocked by the system clock (through a
// prescaler) or by an external input. Channels can raise interrupts when their
// counter rolls over and the output of one channel can be connected to the
// input of another.
//
// The CTC type implements both the cpu.InterruptSource and the
// cpu.TickListener interfaces. All exported functions are safe to call from
// any goroutine.
package ctc
