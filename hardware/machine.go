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

package hardware

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/hardware/ctc"
	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/hardware/pio"
	"github.com/jetsetilly/gopher80/hardware/ports"
	"github.com/jetsetilly/gopher80/hardware/preferences"
	"github.com/jetsetilly/gopher80/hardware/sio"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/prefs"
	"github.com/jetsetilly/gopher80/tape"
	"github.com/jetsetilly/gopher80/wavwriter"
)

// Sentinal errors.
const (
	UnknownTapeInput = "machine: unknown tape input (%s)"
	NotRecording     = "machine: audio is not being recorded"
)

// number of ports occupied by each chip
const chipPorts = 4

// Machine is the emulated Z80 machine.
type Machine struct {
	Prefs *preferences.Preferences

	CPU   *cpu.CPU
	Mem   *memory.Memory
	Ports *ports.Bus

	CTC *ctc.CTC
	PIO *pio.PIO
	SIO *sio.SIO

	// the cassette in the tape player. nil if there is no cassette
	Tape *tape.Tape

	// recording of a CTC channel. nil if audio is not being recorded
	wav *wavwriter.WavWriter
}

// NewMachine creates a new machine and everything associated with the
// hardware. Preference values are applied immediately and changes to the
// preferences are applied to the live machine.
func NewMachine(p *preferences.Preferences) (*Machine, error) {
	m := &Machine{
		Prefs: p,
		Mem:   memory.NewMemory(),
		Ports: ports.NewBus(),
		CTC:   ctc.NewCTC("CTC"),
		PIO:   pio.NewPIO("PIO"),
		SIO:   sio.NewSIO("SIO"),
	}

	m.CPU = cpu.NewCPU(m.Mem, m.Ports)
	m.Mem.SetWaiter(m.CPU)

	m.CPU.SetInterruptSources(m.CTC, m.PIO, m.SIO)
	m.CPU.AddTickListener(m.CTC)

	if err := m.Ports.Map(m.CTC.String(), uint8(p.PortCTC.Get().(int)), chipPorts, m.CTC); err != nil {
		return nil, err
	}
	if err := m.Ports.Map(m.PIO.String(), uint8(p.PortPIO.Get().(int)), chipPorts, m.PIO); err != nil {
		return nil, err
	}
	if err := m.Ports.Map(m.SIO.String(), uint8(p.PortSIO.Get().(int)), chipPorts, m.SIO); err != nil {
		return nil, err
	}

	m.CPU.SetMaxSpeedKHz(p.SpeedKHz.Get().(int))
	m.CPU.SetBrakeEnabled(p.Brake.Get().(bool))
	m.Mem.SetM1Wait(p.M1Wait.Get().(int))

	p.SpeedKHz.SetHookPost(func(v prefs.Value) error {
		m.CPU.SetMaxSpeedKHz(v.(int))
		return nil
	})
	p.Brake.SetHookPost(func(v prefs.Value) error {
		m.CPU.SetBrakeEnabled(v.(bool))
		return nil
	})
	p.M1Wait.SetHookPost(func(v prefs.Value) error {
		m.Mem.SetM1Wait(v.(int))
		return nil
	})
	p.PortCTC.SetHookPost(func(v prefs.Value) error {
		return m.remap(m.CTC.String(), uint8(v.(int)), m.CTC)
	})
	p.PortPIO.SetHookPost(func(v prefs.Value) error {
		return m.remap(m.PIO.String(), uint8(v.(int)), m.PIO)
	})
	p.PortSIO.SetHookPost(func(v prefs.Value) error {
		return m.remap(m.SIO.String(), uint8(v.(int)), m.SIO)
	})

	return m, nil
}

// move the chip to a new base port. if the new mapping conflicts with another
// chip the chip is left unmapped
func (m *Machine) remap(label string, base uint8, dev ports.Device) error {
	m.Ports.Unmap(label)
	err := m.Ports.Map(label, base, chipPorts, dev)
	if err != nil {
		logger.Log(logger.Allow, "machine", err)
	}
	return err
}

// LoadROM loads the file into memory at origin and marks the pages as ROM.
// Failure is logged and memory is left in its current state. Returns true if
// the ROM was loaded.
func (m *Machine) LoadROM(filename string, origin uint16) bool {
	if err := m.Mem.LoadFile(filename, origin, true); err != nil {
		logger.Logf(logger.Allow, "machine", "rom not loaded: %v", err)
		return false
	}
	logger.Logf(logger.Allow, "machine", "rom loaded: %s at %04x", filename, origin)
	return true
}

// LoadProgram loads the file into RAM at origin. Unlike LoadROM() the error
// is returned to the caller.
func (m *Machine) LoadProgram(filename string, origin uint16) error {
	return m.Mem.LoadFile(filename, origin, false)
}

// Reset the machine. The CPU reset also resets the peripheral chips.
func (m *Machine) Reset(powerOn bool) {
	m.Mem.Reset(powerOn)
	m.CPU.Reset(powerOn)
}

// Step executes a single instruction and returns the number of T-states
// used. Must not be called while Run() is active.
func (m *Machine) Step() int {
	return m.CPU.Step()
}

// Run the CPU until FireExit() is called or an illegal opcode is found.
func (m *Machine) Run() error {
	return m.CPU.Run()
}

// Exit stops a running machine.
func (m *Machine) Exit() {
	m.CPU.FireExit()
}

// TapeInput returns the tape sink named by the string. CTC0 to CTC3 are the
// external inputs of the CTC channels. PIOA0 to PIOA7 and PIOB0 to PIOB7 are
// the bits of the PIO ports.
func (m *Machine) TapeInput(name string) (tape.Sink, error) {
	var ch int
	var p rune
	var bit uint8

	n := strings.ToUpper(name)

	if _, err := fmt.Sscanf(n, "CTC%1d", &ch); err == nil && len(n) == 4 {
		if ch < ctc.NumChannels {
			return tape.CTCInput{CTC: m.CTC, Channel: ch}, nil
		}
	}

	if _, err := fmt.Sscanf(n, "PIO%c%1d", &p, &bit); err == nil && len(n) == 5 {
		if bit < 8 {
			switch p {
			case 'A':
				return tape.PIOInput{PIO: m.PIO, Port: pio.PortA, Bit: bit}, nil
			case 'B':
				return tape.PIOInput{PIO: m.PIO, Port: pio.PortB, Bit: bit}, nil
			}
		}
	}

	return nil, curated.Errorf(UnknownTapeInput, name)
}

// InsertTape loads the cassette image and connects it to the sink. Any
// cassette already in the tape player is ejected. The tape is not playing
// after insertion.
func (m *Machine) InsertTape(filename string, sink tape.Sink) error {
	m.EjectTape()

	tap, err := tape.Load(filename, sink)
	if err != nil {
		logger.Logf(logger.Allow, "machine", "tape not inserted: %v", err)
		return err
	}

	tap.SetClockKHz(m.CPU.MaxSpeedKHz())
	m.CPU.AddMaxSpeedListener(tap)
	m.CPU.AddTickListener(tap)
	m.Tape = tap

	return nil
}

// EjectTape stops and removes the cassette from the tape player.
func (m *Machine) EjectTape() {
	if m.Tape == nil {
		return
	}
	m.Tape.Stop()
	m.CPU.RemoveTickListener(m.Tape)
	m.CPU.RemoveMaxSpeedListener(m.Tape)
	m.Tape = nil
}

// RecordAudio starts recording the output of the CTC channel. The recording
// is written to the file when StopRecording() is called.
func (m *Machine) RecordAudio(filename string, channel int) error {
	if m.wav != nil {
		if err := m.StopRecording(); err != nil {
			logger.Log(logger.Allow, "machine", err)
		}
	}

	aw, err := wavwriter.New(filename, channel, m.CPU.MaxSpeedKHz())
	if err != nil {
		return err
	}

	m.CTC.AddObserver(aw)
	m.CPU.AddMaxSpeedListener(aw)
	m.CPU.AddTickListener(aw)
	m.wav = aw

	logger.Logf(logger.Allow, "machine", "recording CTC channel %d to %s", channel, filename)

	return nil
}

// IsRecording returns true if audio is being recorded.
func (m *Machine) IsRecording() bool {
	return m.wav != nil
}

// StopRecording stops the audio recording and writes it to disk.
func (m *Machine) StopRecording() error {
	if m.wav == nil {
		return curated.Errorf(NotRecording)
	}

	aw := m.wav
	m.wav = nil

	m.CPU.RemoveTickListener(aw)
	m.CPU.RemoveMaxSpeedListener(aw)
	m.CTC.RemoveObserver(aw)

	return aw.EndMixing()
}
