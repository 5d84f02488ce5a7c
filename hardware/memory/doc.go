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

// Package memory implements the 64K address space of the machine. The
// address space is divided into pages of PageSize bytes. Each page can be
// marked as ROM, in which case writes from the CPU are ignored. The Poke()
// function ignores the ROM flag and is used by the debugger and by the
// loading functions.
//
// Memory satisfies the cpu.Memory interface. Opcode fetches can be made to
// consume additional T-states with SetM1Wait(). The wait states are given to
// the Waiter, which is normally the CPU.
package memory
