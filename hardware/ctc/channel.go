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

// bits of the channel control word.
const (
	ctrlControlWord   = 0x01
	ctrlReset         = 0x02
	ctrlTimeConstant  = 0x04
	ctrlTrigger       = 0x08
	ctrlRisingEdge    = 0x10
	ctrlPrescaler256  = 0x20
	ctrlCounterMode   = 0x40
	ctrlInterruptMode = 0x80
)

// number of system clock pulses ignored after a channel has been started by
// writing a time constant. these are the cycles consumed by the OUT
// instruction that programmed the channel.
const startupPulses = 16

type channel struct {
	ctc *CTC
	num int

	// the channel that receives a pulse when this channel rolls over
	next *channel

	// the channel connected to the input of this channel. -1 if the input is
	// external to the chip
	from int

	ignorePulses int

	reload    int
	counter   int
	prescaler int

	prescale256 bool
	counterMode bool
	risingEdge  bool
	trigger     bool

	interruptEnabled   bool
	interruptRequested bool
	interruptAccepted  bool

	expectTimeConstant bool
	running            bool

	// the last level seen on the external input. the edge is unknown until
	// the first call to level()
	lastLevel      bool
	lastLevelKnown bool
}

func newChannel(ctc *CTC, num int) *channel {
	ch := &channel{
		ctc:  ctc,
		num:  num,
		from: -1,
	}
	ch.reset()
	return ch
}

func (ch *channel) reset() {
	ch.ignorePulses = 0
	ch.reload = 0x100
	ch.counter = ch.reload
	ch.prescaler = 0
	ch.prescale256 = false
	ch.counterMode = false
	ch.risingEdge = false
	ch.trigger = false
	ch.interruptEnabled = false
	ch.interruptRequested = false
	ch.interruptAccepted = false
	ch.expectTimeConstant = false
	ch.running = false
	ch.lastLevelKnown = false
}

func (ch *channel) write(data uint8) {
	if ch.expectTimeConstant {
		ch.expectTimeConstant = false

		// a time constant of zero means 256
		ch.reload = int(data)
		if ch.reload == 0 {
			ch.reload = 0x100
		}

		// a channel in timer mode that must wait for a trigger is started
		// by the external input
		if !ch.running && (ch.counterMode || !ch.trigger) {
			ch.ignorePulses = startupPulses
			ch.prescaler = 0
			ch.counter = ch.reload
			ch.running = true
		}
		return
	}

	ch.interruptEnabled = data&ctrlInterruptMode == ctrlInterruptMode
	ch.counterMode = data&ctrlCounterMode == ctrlCounterMode
	ch.prescale256 = data&ctrlPrescaler256 == ctrlPrescaler256
	ch.risingEdge = data&ctrlRisingEdge == ctrlRisingEdge
	ch.trigger = data&ctrlTrigger == ctrlTrigger
	ch.expectTimeConstant = data&ctrlTimeConstant == ctrlTimeConstant

	// software reset stops the channel. interrupt configuration is
	// unaffected
	if data&ctrlReset == ctrlReset {
		ch.running = false
	}

	ch.lastLevelKnown = false
}

// systemPulses advances the channel by the number of system clock pulses.
func (ch *channel) systemPulses(pulses int) {
	if pulses <= ch.ignorePulses {
		ch.ignorePulses -= pulses
		return
	}
	pulses -= ch.ignorePulses
	ch.ignorePulses = 0

	if !ch.counterMode {
		ch.count(ch.prescale(pulses))
	}
}

// level is called when the external input of the channel changes. only a
// change to the active edge counts as a pulse.
func (ch *channel) level(high bool) int {
	var n int
	if high == ch.risingEdge && ch.lastLevelKnown && high != ch.lastLevel {
		n = ch.externalPulses(1)
	}
	ch.lastLevel = high
	ch.lastLevelKnown = true
	return n
}

func (ch *channel) pulses(n int) int {
	ch.lastLevelKnown = false
	return ch.externalPulses(n)
}

func (ch *channel) externalPulses(n int) int {
	if n <= 0 {
		return 0
	}

	if ch.counterMode {
		return ch.count(n)
	}

	// in timer mode an external pulse is the trigger
	if ch.trigger && !ch.running {
		ch.prescaler = 0
		ch.counter = ch.reload
		ch.trigger = false
		ch.running = true
	}

	return 0
}

// prescale returns the number of times the prescaler rolls over.
func (ch *channel) prescale(pulses int) int {
	var n int
	for ch.running && pulses > 0 {
		if ch.prescaler == 0 {
			if ch.prescale256 {
				ch.prescaler = 256
			} else {
				ch.prescaler = 16
			}
		}
		if pulses < ch.prescaler {
			ch.prescaler -= pulses
			pulses = 0
		} else {
			pulses -= ch.prescaler
			ch.prescaler = 0
			n++
		}
	}
	return n
}

// count decreases the counter and returns the number of times it reached
// zero.
func (ch *channel) count(pulses int) int {
	var n int
	for ch.running && pulses > 0 {
		if pulses < ch.counter {
			ch.counter -= pulses
			pulses = 0
		} else {
			pulses -= ch.counter
			ch.counter = ch.reload
			n++

			if ch.interruptEnabled {
				ch.interruptRequested = true
			}
			if ch.next != nil {
				ch.next.externalPulses(1)
			}
			ch.ctc.zeroCount(ch.num)
		}
	}
	return n
}

func (ch *channel) state() string {
	if ch.running {
		return "running"
	}
	if ch.trigger {
		return "waiting for trigger"
	}
	return "stopped"
}

func (ch *channel) interruptState() string {
	switch {
	case ch.interruptAccepted:
		return "accepted"
	case ch.interruptRequested:
		return "requested"
	case ch.interruptEnabled:
		return "enabled"
	}
	return "disabled"
}
