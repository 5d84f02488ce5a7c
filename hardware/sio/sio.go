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

// Package sio is a rudimentary emulation of the Z80 SIO serial chip. The
// transmitter is always ready and bytes written to a channel are passed to
// the channel's observers. Nothing is ever received and the chip never
// requests an interrupt.
//
// Port offsets are the same as for the PIO:
//
//	0	channel A data
//	1	channel B data
//	2	channel A control
//	3	channel B control
package sio

import (
	"fmt"
	"sync"
)

// NumChannels is the number of channels in the SIO.
const NumChannels = 2

// the value of read register 0: transmit buffer empty and CTS
const rr0 = 0x24

// Observer implementations are told of every byte transmitted by a channel.
type Observer interface {
	Transmit(sio *SIO, channel int, data uint8)
}

type channel struct {
	register  uint8
	observers []Observer
}

// SIO is a rudimentary emulation of the Z80 SIO.
type SIO struct {
	crit     sync.Mutex
	label    string
	channels [NumChannels]channel
}

// NewSIO is the preferred method of initialisation for the SIO type.
func NewSIO(label string) *SIO {
	return &SIO{label: label}
}

func (sio *SIO) String() string {
	return sio.label
}

// AddObserver adds an observer for the channel. Invalid channel numbers are
// ignored.
func (sio *SIO) AddObserver(o Observer, channel int) {
	sio.crit.Lock()
	defer sio.crit.Unlock()
	if channel < 0 || channel >= NumChannels {
		return
	}
	sio.channels[channel].observers = append(sio.channels[channel].observers, o)
}

// RemoveObserver removes an observer previously added with AddObserver().
func (sio *SIO) RemoveObserver(o Observer, channel int) {
	sio.crit.Lock()
	defer sio.crit.Unlock()
	if channel < 0 || channel >= NumChannels {
		return
	}
	obs := sio.channels[channel].observers
	for i := range obs {
		if obs[i] == o {
			sio.channels[channel].observers = append(obs[:i], obs[i+1:]...)
			return
		}
	}
}

// ReadPort implements the CPU side of the chip. Reading data always returns
// zero. Only read register 0 returns a meaningful value.
func (sio *SIO) ReadPort(offset uint8) uint8 {
	sio.crit.Lock()
	defer sio.crit.Unlock()

	if offset&0x02 == 0x00 {
		return 0x00
	}
	if sio.channels[offset&0x01].register == 0 {
		return rr0
	}
	return 0x00
}

// WritePort implements the CPU side of the chip. A write to the control port
// of a channel either selects the register for the next access or writes to
// the selected register, which is ignored.
func (sio *SIO) WritePort(offset uint8, data uint8) {
	sio.crit.Lock()

	ch := &sio.channels[offset&0x01]

	if offset&0x02 == 0x02 {
		if ch.register == 0 {
			ch.register = data & 0x07
		} else {
			ch.register = 0
		}
		sio.crit.Unlock()
		return
	}

	observers := ch.observers
	sio.crit.Unlock()

	for _, o := range observers {
		o.Transmit(sio, int(offset&0x01), data)
	}
}

// InterruptAccept implements the cpu.InterruptSource interface.
func (sio *SIO) InterruptAccept() uint8 {
	return 0
}

// InterruptFinish implements the cpu.InterruptSource interface.
func (sio *SIO) InterruptFinish() {
}

// IsInterruptAccepted implements the cpu.InterruptSource interface.
func (sio *SIO) IsInterruptAccepted() bool {
	return false
}

// IsInterruptRequested implements the cpu.InterruptSource interface.
func (sio *SIO) IsInterruptRequested() bool {
	return false
}

// Reset implements the cpu.InterruptSource interface.
func (sio *SIO) Reset(_ bool) {
	sio.crit.Lock()
	defer sio.crit.Unlock()
	for i := range sio.channels {
		sio.channels[i].register = 0
	}
}

// Status returns a description of the state of the SIO.
func (sio *SIO) Status() string {
	sio.crit.Lock()
	defer sio.crit.Unlock()
	return fmt.Sprintf("channel A register %d\nchannel B register %d\n",
		sio.channels[0].register, sio.channels[1].register)
}
