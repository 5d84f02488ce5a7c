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

package pio

// Port identifies one of the two ports of the PIO.
type Port int

// List of valid Port values.
const (
	PortA Port = iota
	PortB
)

func (p Port) String() string {
	switch p {
	case PortA:
		return "A"
	case PortB:
		return "B"
	}
	return "?"
}

// Mode is the operating mode of a port.
type Mode int

// List of valid Mode values. The values correspond to bits 6 and 7 of the
// mode control word.
const (
	ByteOut Mode = iota
	ByteIn
	ByteInOut
	BitInOut
)

func (m Mode) String() string {
	switch m {
	case ByteOut:
		return "byte output"
	case ByteIn:
		return "byte input"
	case ByteInOut:
		return "byte bidirectional"
	case BitInOut:
		return "bit"
	}
	return "unknown mode"
}

// Status is sent to observers when the state of a port changes.
type Status int

// List of valid Status values.
const (
	InterruptEnabled Status = iota
	InterruptDisabled
	ModeChanged
	ReadyForInput
	OutputAvailable
	OutputChanged
)

func (s Status) String() string {
	switch s {
	case InterruptEnabled:
		return "interrupt enabled"
	case InterruptDisabled:
		return "interrupt disabled"
	case ModeChanged:
		return "mode changed"
	case ReadyForInput:
		return "ready for input"
	case OutputAvailable:
		return "output available"
	case OutputChanged:
		return "output changed"
	}
	return "unknown status"
}

// Observer implementations are told of changes to the status of a port.
// Observers are called after the PIO has been unlocked so it is safe for an
// observer to call back into the PIO.
type Observer interface {
	PIOStatusChanged(pio *PIO, port Port, status Status)
}
