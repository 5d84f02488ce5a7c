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

// Package registers contains the flag (status) register of the Z80 and
// helper tables used by the CPU when setting flags.
//
// The flag register has eight bits. Six of the bits have a documented purpose.
// The remaining two bits (bits 3 and 5) are undocumented but are reliably set
// by most instructions, usually by copying the equivalent bits of the result.
// The emulation sets these bits in the same way as the real chip.
package registers
