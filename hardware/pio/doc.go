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

// Package pio emulates the Z80 PIO parallel input/output chip.
//
// The PIO has two ports, A and B. The CPU side of the chip is accessed
// through ReadPort() and WritePort(), with the following offsets:
//
//	0	port A data
//	1	port B data
//	2	port A control
//	3	port B control
//
// The peripheral side of the chip is accessed with PutInput(),
// PutInputBits(), FetchOutput() and Strobe(). Peripherals can observe changes
// to the state of a port by adding an Observer.
//
// Port A can be put into the bidirectional mode. In that case the handshake
// lines of port B are used by port A and port B's own handshake is
// suspended. Port B should be set to the bit mode by the program when port A
// is in the bidirectional mode.
package pio
