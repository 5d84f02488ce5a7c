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

// Package hardware is the base package for the emulated Z80 machine. The
// Machine type wires the CPU to memory, the port bus and the peripheral chips.
//
// The sub-packages contain the individual components and can be used without
// the Machine type, for example in a different machine with a different
// memory layout.
//
// The interrupt daisy chain is CTC, PIO and then SIO, from highest to lowest
// priority. The CTC is clocked by the CPU through the tick listener mechanism.
package hardware
