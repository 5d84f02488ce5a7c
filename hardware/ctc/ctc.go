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

package ctc

import (
	"fmt"
	"strings"
	"sync"
)

// NumChannels is the number of channels in the CTC.
const NumChannels = 4

// Observer implementations are told whenever a channel's counter reaches zero.
// Observers are called after the CTC has been unlocked so it is safe for an
// observer to call back into the CTC.
type Observer interface {
	ZeroCount(ctc *CTC, channel int)
}

// CTC emulates the Z80 CTC chip.
type CTC struct {
	crit  sync.Mutex
	label string

	vector   uint8
	channels [NumChannels]*channel

	observers []Observer

	// channel numbers that reached zero count while the CTC was locked
	pending []int
}

// NewCTC is the preferred method of initialisation for the CTC type.
func NewCTC(label string) *CTC {
	ctc := &CTC{
		label: label,
	}
	for i := range ctc.channels {
		ctc.channels[i] = newChannel(ctc, i)
	}
	return ctc
}

func (ctc *CTC) String() string {
	return ctc.label
}

// AddObserver adds an observer to the list of observers.
func (ctc *CTC) AddObserver(o Observer) {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()
	ctc.observers = append(ctc.observers, o)
}

// RemoveObserver removes an observer previously added with AddObserver().
func (ctc *CTC) RemoveObserver(o Observer) {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()
	for i := range ctc.observers {
		if ctc.observers[i] == o {
			ctc.observers = append(ctc.observers[:i], ctc.observers[i+1:]...)
			return
		}
	}
}

// called by a channel when the counter reaches zero. the CTC is always
// locked at this point
func (ctc *CTC) zeroCount(channel int) {
	if len(ctc.observers) > 0 {
		ctc.pending = append(ctc.pending, channel)
	}
}

// unlock the CTC and notify observers of any zero counts that happened while
// it was locked
func (ctc *CTC) unlockAndNotify() {
	pending := ctc.pending
	ctc.pending = nil
	observers := ctc.observers
	ctc.crit.Unlock()

	for _, ch := range pending {
		for _, o := range observers {
			o.ZeroCount(ctc, ch)
		}
	}
}

// SetChannelConnection connects the output of one channel to the input of
// another. Invalid channel numbers are ignored.
func (ctc *CTC) SetChannelConnection(from int, to int) {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	if from < 0 || from >= NumChannels || to < 0 || to >= NumChannels {
		return
	}
	ctc.channels[from].next = ctc.channels[to]
	ctc.channels[to].from = from
}

// ExternalUpdate sets the level of the external input for the channel. A
// change of level to the channel's active edge counts as a single pulse.
// Returns the number of times the counter reached zero.
func (ctc *CTC) ExternalUpdate(channel int, high bool) int {
	ctc.crit.Lock()
	defer ctc.unlockAndNotify()

	if channel < 0 || channel >= NumChannels {
		return 0
	}
	return ctc.channels[channel].level(high)
}

// ExternalPulses sends a number of pulses to the external input of the
// channel. Returns the number of times the counter reached zero.
func (ctc *CTC) ExternalPulses(channel int, pulses int) int {
	ctc.crit.Lock()
	defer ctc.unlockAndNotify()

	if channel < 0 || channel >= NumChannels {
		return 0
	}
	return ctc.channels[channel].pulses(pulses)
}

// ReadPort returns the current counter value of the channel. The offset
// argument is the channel number.
func (ctc *CTC) ReadPort(offset uint8) uint8 {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	if int(offset) >= NumChannels {
		return 0xff
	}
	return uint8(ctc.channels[offset].counter)
}

// WritePort writes to the channel. The offset argument is the channel number.
//
// The value is a time constant if the channel is expecting one. Otherwise it
// is a control word if bit 0 is set or the interrupt vector if it is not.
func (ctc *CTC) WritePort(offset uint8, data uint8) {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	if int(offset) < NumChannels {
		ch := ctc.channels[offset]
		if ch.expectTimeConstant || data&ctrlControlWord == ctrlControlWord {
			ch.write(data)
			return
		}
	} else if data&ctrlControlWord == ctrlControlWord {
		return
	}

	ctc.vector = data & 0xf8
}

// CyclesProcessed implements the cpu.TickListener interface.
func (ctc *CTC) CyclesProcessed(cycles int) {
	if cycles <= 0 {
		return
	}

	ctc.crit.Lock()
	defer ctc.unlockAndNotify()

	for _, ch := range ctc.channels {
		ch.systemPulses(cycles)
	}
}

// InterruptAccept implements the cpu.InterruptSource interface. The
// lowest numbered channel with a pending request is serviced.
func (ctc *CTC) InterruptAccept() uint8 {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	for i, ch := range ctc.channels {
		if ch.interruptRequested {
			ch.interruptRequested = false
			ch.interruptAccepted = true
			return ctc.vector + uint8(i*2)
		}
	}
	return 0
}

// InterruptFinish implements the cpu.InterruptSource interface.
func (ctc *CTC) InterruptFinish() {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	for _, ch := range ctc.channels {
		if ch.interruptAccepted {
			ch.interruptAccepted = false
			return
		}
	}
}

// IsInterruptAccepted implements the cpu.InterruptSource interface.
func (ctc *CTC) IsInterruptAccepted() bool {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	for _, ch := range ctc.channels {
		if ch.interruptAccepted {
			return true
		}
	}
	return false
}

// IsInterruptRequested implements the cpu.InterruptSource interface. A
// channel being serviced blocks requests from lower priority channels.
func (ctc *CTC) IsInterruptRequested() bool {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	for _, ch := range ctc.channels {
		if ch.interruptAccepted {
			return false
		}
		if ch.interruptEnabled && ch.interruptRequested {
			return true
		}
	}
	return false
}

// Reset implements the cpu.InterruptSource interface. The interrupt vector
// is only reset on power on.
func (ctc *CTC) Reset(powerOn bool) {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	if powerOn {
		ctc.vector = 0
	}
	for _, ch := range ctc.channels {
		ch.reset()
	}
}

// Vector returns the current interrupt vector.
func (ctc *CTC) Vector() uint8 {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()
	return ctc.vector
}

// ChannelState is a copy of the state of a single channel.
type ChannelState struct {
	Running            bool
	Trigger            bool
	CounterMode        bool
	Prescaler256       bool
	Prescaler          int
	Counter            uint8
	Reload             int
	Input              int
	InterruptEnabled   bool
	InterruptRequested bool
	InterruptAccepted  bool
}

// Channel returns a copy of the state of the channel.
func (ctc *CTC) Channel(channel int) ChannelState {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	ch := ctc.channels[channel]
	return ChannelState{
		Running:            ch.running,
		Trigger:            ch.trigger,
		CounterMode:        ch.counterMode,
		Prescaler256:       ch.prescale256,
		Prescaler:          ch.prescaler,
		Counter:            uint8(ch.counter),
		Reload:             ch.reload,
		Input:              ch.from,
		InterruptEnabled:   ch.interruptEnabled,
		InterruptRequested: ch.interruptRequested,
		InterruptAccepted:  ch.interruptAccepted,
	}
}

// Status returns a multiline description of the state of the CTC.
func (ctc *CTC) Status() string {
	ctc.crit.Lock()
	defer ctc.crit.Unlock()

	s := strings.Builder{}

	row := func(label string, f func(ch *channel) string) {
		s.WriteString(fmt.Sprintf("%-11s", label))
		for _, ch := range ctc.channels {
			s.WriteString(fmt.Sprintf(" %-20s", f(ch)))
		}
		s.WriteString("\n")
	}

	row("", func(ch *channel) string {
		return fmt.Sprintf("channel %d", ch.num)
	})
	row("state", func(ch *channel) string {
		return ch.state()
	})
	row("prescaler", func(ch *channel) string {
		if ch.counterMode {
			return "inactive"
		}
		if ch.prescale256 {
			return fmt.Sprintf("%d/256", ch.prescaler)
		}
		return fmt.Sprintf("%d/16", ch.prescaler)
	})
	row("counter", func(ch *channel) string {
		return fmt.Sprintf("%d/%d", ch.counter&0xff, ch.reload)
	})
	row("clock", func(ch *channel) string {
		if !ch.counterMode {
			return "system"
		}
		if ch.from >= 0 {
			return fmt.Sprintf("channel %d", ch.from)
		}
		return "external"
	})
	row("interrupt", func(ch *channel) string {
		return ch.interruptState()
	})

	s.WriteString(fmt.Sprintf("vector     %02xh\n", ctc.vector))

	return s.String()
}
