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

// the byte that will be written to the port next is part of a two byte
// control sequence
type nextControl int

const (
	controlWord nextControl = iota
	controlIOMask
	controlInterruptMask
)

type port struct {
	id Port

	input  uint8
	output uint8
	ready  bool

	mode Mode
	next nextControl

	// bits set in the direction mask are inputs. only used in bit mode
	ioMask uint8

	// bits clear in the interrupt mask are monitored. only used in bit mode
	interruptMask  uint8
	interruptHigh  bool
	interruptAnd   bool
	interruptVec   uint8
	interruptState bool

	interruptEnabled   bool
	interruptRequested bool
	interruptAccepted  bool

	observers []Observer
}

func (p *port) reset(powerOn bool) {
	if powerOn {
		p.interruptVec = 0
	}
	p.input = 0xff
	p.output = 0xff
	p.mode = ByteIn
	p.next = controlWord
	p.ioMask = 0
	p.interruptMask = 0
	p.interruptHigh = false
	p.interruptAnd = false
	p.interruptState = false
	p.interruptEnabled = false
	p.interruptRequested = false
	p.interruptAccepted = false
	p.ready = false
}

// the value seen by the CPU in bit mode. input bits come from the input
// register and output bits from the output register
func (p *port) bitValue() uint8 {
	return (p.ioMask & p.input) | (^p.ioMask & p.output)
}

func (p *port) request() {
	if p.interruptEnabled {
		p.interruptRequested = true
	}
}

// the interrupt condition in bit mode is true when the monitored input bits
// are at the active level. with the AND function all monitored bits must be
// active. with the OR function any one of them is sufficient
func (p *port) interruptCondition() bool {
	monitored := p.ioMask & ^p.interruptMask
	if monitored == 0 {
		return false
	}

	v := p.bitValue()
	if !p.interruptHigh {
		v = ^v
	}

	if p.interruptAnd {
		return v&monitored == monitored
	}
	return v&monitored != 0
}
