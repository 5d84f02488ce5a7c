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

// Package disassembly decodes Z80 machine code into mnemonics.
//
// Every instruction is decoded, including the undocumented forms of the DD,
// FD, CB and ED prefixed instructions. Undocumented instructions are marked
// as such in the Entry and are printed with a leading asterisk.
//
// Numbers are written in the Intel style with a trailing H. A leading zero is
// added to numbers that would otherwise start with a letter.
//
// The disassembler reads memory through the Peek() function of the Memory
// interface and so never causes side effects in the emulation.
package disassembly
