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

import (
	"fmt"
	"strings"
	"sync"
)

type event struct {
	port   *port
	status Status
}

// PIO emulates the Z80 PIO chip.
type PIO struct {
	crit  sync.Mutex
	label string

	a *port
	b *port

	// status changes that happened while the PIO was locked
	pending []event
}

// NewPIO is the preferred method of initialisation for the PIO type.
func NewPIO(label string) *PIO {
	pio := &PIO{
		label: label,
		a:     &port{id: PortA},
		b:     &port{id: PortB},
	}
	pio.a.reset(true)
	pio.b.reset(true)
	return pio
}

func (pio *PIO) String() string {
	return pio.label
}

func (pio *PIO) port(p Port) *port {
	if p == PortB {
		return pio.b
	}
	return pio.a
}

func (pio *PIO) inform(p *port, status Status) {
	if len(p.observers) > 0 {
		pio.pending = append(pio.pending, event{port: p, status: status})
	}
}

func (pio *PIO) unlockAndNotify() {
	pending := pio.pending
	pio.pending = nil

	type call struct {
		o      Observer
		port   Port
		status Status
	}

	var calls []call
	for _, e := range pending {
		for _, o := range e.port.observers {
			calls = append(calls, call{o: o, port: e.port.id, status: e.status})
		}
	}

	pio.crit.Unlock()

	for _, c := range calls {
		c.o.PIOStatusChanged(pio, c.port, c.status)
	}
}

// AddObserver adds an observer for the specified port.
func (pio *PIO) AddObserver(o Observer, p Port) {
	pio.crit.Lock()
	defer pio.crit.Unlock()
	prt := pio.port(p)
	prt.observers = append(prt.observers, o)
}

// RemoveObserver removes an observer previously added with AddObserver().
func (pio *PIO) RemoveObserver(o Observer, p Port) {
	pio.crit.Lock()
	defer pio.crit.Unlock()
	prt := pio.port(p)
	for i := range prt.observers {
		if prt.observers[i] == o {
			prt.observers = append(prt.observers[:i], prt.observers[i+1:]...)
			return
		}
	}
}

// whether the port's output handshake is active. port B loses its handshake
// when port A is bidirectional
func (pio *PIO) outputHandshake(p *port) bool {
	if p.id == PortA {
		return p.mode == ByteOut || p.mode == ByteInOut
	}
	return p.mode == ByteOut && pio.a.mode != ByteInOut
}

func (pio *PIO) inputHandshake(p *port) bool {
	if p.id == PortA {
		return true
	}
	return p.mode == ByteIn && pio.a.mode != ByteInOut
}

// Mode returns the current mode of the port.
func (pio *PIO) Mode(p Port) Mode {
	pio.crit.Lock()
	defer pio.crit.Unlock()
	return pio.port(p).mode
}

// Ready returns the state of the port's ready line.
func (pio *PIO) Ready(p Port) bool {
	pio.crit.Lock()
	defer pio.crit.Unlock()
	return pio.port(p).ready
}

// FetchOutput returns the value in the output register of the port. If
// strobe is true the peripheral acknowledges the data, which clears the
// ready line and raises an interrupt if enabled.
func (pio *PIO) FetchOutput(p Port, strobe bool) uint8 {
	pio.crit.Lock()
	defer pio.crit.Unlock()

	prt := pio.port(p)
	if strobe && pio.outputHandshake(prt) {
		prt.ready = false
		prt.request()
	}
	return prt.output
}

// PutInput sets the value of the port's input register. If strobe is true
// the data is latched with the handshake, which clears the ready line and
// raises an interrupt if enabled.
//
// Returns false if the port is not accepting input.
func (pio *PIO) PutInput(p Port, value uint8, strobe bool) bool {
	pio.crit.Lock()
	defer pio.crit.Unlock()
	return pio.putInput(pio.port(p), value, 0xff, strobe)
}

// PutInputBits sets only the bits of the port's input register that are set
// in the mask. There is no handshake.
func (pio *PIO) PutInputBits(p Port, value uint8, mask uint8) bool {
	pio.crit.Lock()
	defer pio.crit.Unlock()
	return pio.putInput(pio.port(p), value, mask, false)
}

func (pio *PIO) putInput(p *port, value uint8, mask uint8, strobe bool) bool {
	switch p.mode {
	case ByteIn, ByteInOut:
		p.input = (value & mask) | (p.input & ^mask)
		if strobe && pio.inputHandshake(p) {
			p.ready = false
			p.request()
		}
		return true

	case BitInOut:
		p.input = (value & mask) | (p.input & ^mask)
		if p.interruptEnabled {
			cond := p.interruptCondition()

			// the interrupt is edge triggered. it is only raised when the
			// condition becomes true
			if cond && !p.interruptState {
				p.request()
			}
			p.interruptState = cond
		}
		return true
	}

	return false
}

// Strobe pulses the strobe line of the port without transferring any data.
func (pio *PIO) Strobe(p Port) {
	pio.crit.Lock()
	defer pio.crit.Unlock()

	prt := pio.port(p)
	if prt.id == PortA {
		if prt.mode != BitInOut {
			prt.request()
		}
		return
	}

	// port B's strobe is used for port A's input when port A is
	// bidirectional
	if pio.a.mode == ByteInOut {
		prt.request()
		return
	}
	if prt.mode == ByteIn || prt.mode == ByteOut {
		prt.request()
	}
}

func (pio *PIO) readData(p *port) uint8 {
	var v uint8

	switch p.mode {
	case ByteOut:
		v = p.output
	case ByteIn, ByteInOut:
		v = p.input
		if pio.inputHandshake(p) {
			p.ready = true
		}
	case BitInOut:
		v = p.bitValue()
	}

	if p.mode != ByteOut {
		pio.inform(p, ReadyForInput)
	}

	return v
}

// the upper two bits of the control port indicate the mode of the port.
// the other bits always read high
func (pio *PIO) readControl(p *port) uint8 {
	return uint8(p.mode)<<6 | 0x3f
}

func (pio *PIO) writeData(p *port, data uint8) {
	prev := p.output
	p.output = data

	if pio.outputHandshake(p) {
		p.ready = true
	}

	switch p.mode {
	case ByteOut, ByteInOut:
		pio.inform(p, OutputAvailable)
	case BitInOut:
		if prev != data {
			pio.inform(p, OutputChanged)
		}
	}
}

func (pio *PIO) writeControl(p *port, data uint8) {
	switch p.next {
	case controlIOMask:
		p.ioMask = data
		p.next = controlWord
		return
	case controlInterruptMask:
		p.interruptMask = data
		p.next = controlWord
		return
	}

	switch {
	case data&0x0f == 0x0f:
		prev := p.mode
		p.mode = Mode(data >> 6)

		switch p.mode {
		case ByteOut:
			if p.id == PortA || pio.a.mode != ByteInOut {
				p.ready = false
			}
		case ByteIn:
			if p.id == PortA || pio.a.mode != ByteInOut {
				p.ready = true
			}
		case ByteInOut:
			if p.id == PortA {
				p.ready = false
			}
		case BitInOut:
			p.next = controlIOMask
			p.ready = false
		}

		if prev != p.mode {
			pio.inform(p, ModeChanged)
			if prev == ByteOut {
				pio.inform(p, ReadyForInput)
			}
		}

	case data&0x01 == 0x00:
		p.interruptVec = data

	case data&0x0f == 0x03:
		pio.setInterruptEnabled(p, data&0x80 == 0x80)

	case data&0x0f == 0x07:
		if data&0x10 == 0x10 {
			p.next = controlInterruptMask
		}
		p.interruptHigh = data&0x20 == 0x20
		p.interruptAnd = data&0x40 == 0x40
		p.interruptState = false
		pio.setInterruptEnabled(p, data&0x80 == 0x80)
	}
}

func (pio *PIO) setInterruptEnabled(p *port, enabled bool) {
	if p.interruptEnabled == enabled {
		return
	}
	p.interruptEnabled = enabled
	if enabled {
		pio.inform(p, InterruptEnabled)
	} else {
		pio.inform(p, InterruptDisabled)
	}
}

// ReadPort is called by the CPU to read the data or control register of a
// port. See package documentation for the meaning of the offset argument.
func (pio *PIO) ReadPort(offset uint8) uint8 {
	pio.crit.Lock()
	defer pio.unlockAndNotify()

	switch offset & 0x03 {
	case 0:
		return pio.readData(pio.a)
	case 1:
		return pio.readData(pio.b)
	case 2:
		return pio.readControl(pio.a)
	}
	return pio.readControl(pio.b)
}

// WritePort is called by the CPU to write to the data or control register of
// a port. See package documentation for the meaning of the offset argument.
func (pio *PIO) WritePort(offset uint8, data uint8) {
	pio.crit.Lock()
	defer pio.unlockAndNotify()

	switch offset & 0x03 {
	case 0:
		pio.writeData(pio.a, data)
	case 1:
		pio.writeData(pio.b, data)
	case 2:
		pio.writeControl(pio.a, data)
	case 3:
		pio.writeControl(pio.b, data)
	}
}

// InterruptAccept implements the cpu.InterruptSource interface. Port A has
// priority over port B.
func (pio *PIO) InterruptAccept() uint8 {
	pio.crit.Lock()
	defer pio.crit.Unlock()

	for _, p := range []*port{pio.a, pio.b} {
		if p.interruptRequested {
			p.interruptRequested = false
			p.interruptAccepted = true
			return p.interruptVec
		}
	}
	return 0
}

// InterruptFinish implements the cpu.InterruptSource interface.
func (pio *PIO) InterruptFinish() {
	pio.crit.Lock()
	defer pio.crit.Unlock()

	for _, p := range []*port{pio.a, pio.b} {
		if p.interruptAccepted {
			p.interruptAccepted = false
			return
		}
	}
}

// IsInterruptAccepted implements the cpu.InterruptSource interface.
func (pio *PIO) IsInterruptAccepted() bool {
	pio.crit.Lock()
	defer pio.crit.Unlock()
	return pio.a.interruptAccepted || pio.b.interruptAccepted
}

// IsInterruptRequested implements the cpu.InterruptSource interface. Port B
// cannot request an interrupt while port A is being serviced.
func (pio *PIO) IsInterruptRequested() bool {
	pio.crit.Lock()
	defer pio.crit.Unlock()

	if pio.a.interruptEnabled && pio.a.interruptRequested {
		return true
	}
	if pio.a.interruptAccepted {
		return false
	}
	return pio.b.interruptEnabled && pio.b.interruptRequested
}

// Reset implements the cpu.InterruptSource interface.
func (pio *PIO) Reset(powerOn bool) {
	pio.crit.Lock()
	defer pio.crit.Unlock()
	pio.a.reset(powerOn)
	pio.b.reset(powerOn)
}

// PortState is a copy of the state of a single port.
type PortState struct {
	Mode               Mode
	Input              uint8
	Output             uint8
	Ready              bool
	IOMask             uint8
	InterruptMask      uint8
	InterruptHigh      bool
	InterruptAnd       bool
	InterruptVector    uint8
	InterruptEnabled   bool
	InterruptRequested bool
	InterruptAccepted  bool
}

// State returns a copy of the state of the port.
func (pio *PIO) State(p Port) PortState {
	pio.crit.Lock()
	defer pio.crit.Unlock()

	prt := pio.port(p)
	return PortState{
		Mode:               prt.mode,
		Input:              prt.input,
		Output:             prt.output,
		Ready:              prt.ready,
		IOMask:             prt.ioMask,
		InterruptMask:      prt.interruptMask,
		InterruptHigh:      prt.interruptHigh,
		InterruptAnd:       prt.interruptAnd,
		InterruptVector:    prt.interruptVec,
		InterruptEnabled:   prt.interruptEnabled,
		InterruptRequested: prt.interruptRequested,
		InterruptAccepted:  prt.interruptAccepted,
	}
}

// Status returns a multiline description of the state of the PIO.
func (pio *PIO) Status() string {
	pio.crit.Lock()
	defer pio.crit.Unlock()

	s := strings.Builder{}

	row := func(label string, f func(p *port) string) {
		s.WriteString(fmt.Sprintf("%-17s", label))
		for _, p := range []*port{pio.a, pio.b} {
			s.WriteString(fmt.Sprintf(" %-24s", f(p)))
		}
		s.WriteString("\n")
	}

	bitMode := func(f func(p *port) string) func(p *port) string {
		return func(p *port) string {
			if p.mode != BitInOut {
				return "-"
			}
			return f(p)
		}
	}

	row("", func(p *port) string {
		return fmt.Sprintf("port %s", p.id)
	})
	row("mode", func(p *port) string {
		return p.mode.String()
	})
	row("direction", bitMode(func(p *port) string {
		var d strings.Builder
		for i := 7; i >= 0; i-- {
			if p.ioMask&(1<<i) != 0 {
				d.WriteRune('I')
			} else {
				d.WriteRune('O')
			}
		}
		return d.String()
	}))
	row("input", func(p *port) string {
		return fmt.Sprintf("%02xh", p.input)
	})
	row("output", func(p *port) string {
		return fmt.Sprintf("%02xh", p.output)
	})
	row("interrupt", func(p *port) string {
		switch {
		case p.interruptAccepted:
			return "accepted"
		case p.interruptRequested:
			return "requested"
		case p.interruptEnabled:
			return "enabled"
		}
		return "disabled"
	})
	row("interrupt mask", bitMode(func(p *port) string {
		var d strings.Builder
		d.WriteString(fmt.Sprintf("%02xh ", p.interruptMask))
		for i := 7; i >= 0; i-- {
			if p.interruptMask&(1<<i) == 0 {
				d.WriteRune(rune('0' + i))
			} else {
				d.WriteRune('-')
			}
		}
		return d.String()
	}))
	row("interrupt on", bitMode(func(p *port) string {
		level := "low"
		if p.interruptHigh {
			level = "high"
		}
		if p.interruptAnd {
			return fmt.Sprintf("%s AND", level)
		}
		return fmt.Sprintf("%s OR", level)
	}))
	row("vector", func(p *port) string {
		return fmt.Sprintf("%02xh", p.interruptVec)
	})

	return s.String()
}
