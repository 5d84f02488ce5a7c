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

package hardware_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/hardware/pio"
	"github.com/jetsetilly/gopher80/hardware/ports"
	"github.com/jetsetilly/gopher80/hardware/preferences"
	"github.com/jetsetilly/gopher80/test"
)

func newMachine(t *testing.T) *hardware.Machine {
	t.Helper()

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(p)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, p.Brake.Set(false))
	test.DemandEquality(t, m.CPU.BrakeEnabled(), false)

	return m
}

func poke(m *hardware.Machine, address uint16, data ...uint8) {
	for i, d := range data {
		m.Mem.Poke(address+uint16(i), d)
	}
}

func TestCTCInterrupt(t *testing.T) {
	m := newMachine(t)

	poke(m, 0x0000,
		0x31, 0x00, 0xf0, // LD SP,F000
		0x3e, 0x10, // LD A,10
		0xed, 0x47, // LD I,A
		0xed, 0x5e, // IM 2
		0x3e, 0x20, // LD A,20
		0xd3, 0x80, // OUT (80),A
		0x3e, 0x85, // LD A,85
		0xd3, 0x80, // OUT (80),A
		0x3e, 0x0a, // LD A,0A
		0xd3, 0x80, // OUT (80),A
		0xfb,       // EI
		0x76,       // HALT
		0x18, 0xfd, // JR 0016
	)

	// interrupt vector table entry for CTC channel 0
	poke(m, 0x1020, 0x00, 0x01)

	poke(m, 0x0100,
		0x21, 0x00, 0x20, // LD HL,2000
		0x34,       // INC (HL)
		0xfb,       // EI
		0xed, 0x4d, // RETI
	)

	var steps int
	for m.Mem.Peek(0x2000) < 2 && steps < 10000 {
		m.Step()
		steps++
	}

	test.ExpectEquality(t, m.Mem.Peek(0x2000), uint8(2))
	test.ExpectEquality(t, m.CTC.Vector(), uint8(0x20))
	test.ExpectEquality(t, m.CPU.IM, uint8(2))
	test.ExpectInequality(t, steps, 10000)
}

func TestPortMapping(t *testing.T) {
	m := newMachine(t)

	// PIO control register reads the mode in the upper bits
	test.ExpectEquality(t, m.Ports.ReadPort(0x86), uint8(0x7f))

	m.Ports.WritePort(0x86, 0x0f)
	test.ExpectEquality(t, m.PIO.Mode(pio.PortA), pio.ByteOut)

	// moving the PIO onto the CTC fails and leaves the PIO unmapped
	err := m.Prefs.PortPIO.Set(0x82)
	test.ExpectSuccess(t, curated.Is(err, ports.MappingConflict))
	test.ExpectEquality(t, m.Ports.ReadPort(0x86), uint8(0xff))

	test.ExpectSuccess(t, m.Prefs.PortPIO.Set(0x90))
	test.ExpectEquality(t, m.Ports.ReadPort(0x92), uint8(0x3f))

	// SIO read register 0
	test.ExpectEquality(t, m.Ports.ReadPort(0x8a), uint8(0x24))
}

func TestLoadROM(t *testing.T) {
	m := newMachine(t)
	dir := t.TempDir()

	test.ExpectFailure(t, m.LoadROM(filepath.Join(dir, "missing.rom"), 0x0000))
	test.ExpectFailure(t, m.Mem.IsROM(0x0000))

	rom := filepath.Join(dir, "test.rom")
	test.DemandSuccess(t, os.WriteFile(rom, []byte{0x3e, 0x42, 0x76}, 0o644))
	test.ExpectSuccess(t, m.LoadROM(rom, 0x0000))
	test.ExpectSuccess(t, m.Mem.IsROM(0x0000))

	m.Reset(true)
	m.Step()
	test.ExpectEquality(t, m.CPU.A, uint8(0x42))

	test.ExpectFailure(t, m.LoadProgram(filepath.Join(dir, "missing.bin"), 0x4000))
}

func TestPreferenceHooks(t *testing.T) {
	m := newMachine(t)

	test.DemandSuccess(t, m.Prefs.SpeedKHz.Set(4000))
	test.ExpectEquality(t, m.CPU.MaxSpeedKHz(), 4000)

	test.DemandSuccess(t, m.Prefs.M1Wait.Set(1))
	poke(m, 0x0000, 0x00)
	m.Reset(false)
	test.ExpectEquality(t, m.Step(), 5)
}

func TestRunAndExit(t *testing.T) {
	m := newMachine(t)

	// infinite loop
	poke(m, 0x0000, 0x18, 0xfe)

	done := make(chan error)
	go func() {
		done <- m.Run()
	}()

	for !m.CPU.IsActive() {
	}
	m.Exit()

	test.ExpectSuccess(t, <-done)
}

func TestTapeInput(t *testing.T) {
	m := newMachine(t)

	for _, n := range []string{"ctc0", "CTC3", "pioa0", "PIOB7"} {
		_, err := m.TapeInput(n)
		test.ExpectSuccess(t, err)
	}
	for _, n := range []string{"", "ctc4", "ctc10", "pioc0", "pioa8", "pio"} {
		_, err := m.TapeInput(n)
		test.ExpectSuccess(t, curated.Is(err, hardware.UnknownTapeInput))
	}
}

func TestTape(t *testing.T) {
	m := newMachine(t)

	// one tape sample for every T-state
	test.DemandSuccess(t, m.Prefs.SpeedKHz.Set(1))

	fn := filepath.Join(t.TempDir(), "tape.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	enc := wav.NewEncoder(f, 1000, 16, 1, 1)
	test.DemandSuccess(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 1000},
		Data:           []int{16000, -16000, 16000, -16000, 16000, -16000, 16000, -16000},
		SourceBitDepth: 16,
	}))
	test.DemandSuccess(t, enc.Close())
	test.DemandSuccess(t, f.Close())

	// CTC channel 0 counts rising edges with a time constant of 2
	m.CTC.WritePort(0, 0x57)
	m.CTC.WritePort(0, 0x02)

	sink, err := m.TapeInput("CTC0")
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, m.InsertTape(filepath.Join(t.TempDir(), "missing.wav"), sink))
	test.ExpectEquality(t, m.Tape, nil)

	test.DemandSuccess(t, m.InsertTape(fn, sink))
	m.Tape.Play()

	// two NOP instructions are eight T-states
	poke(m, 0x0000, 0x00, 0x00)
	m.Step()
	m.Step()

	test.ExpectFailure(t, m.Tape.IsPlaying())
	test.ExpectEquality(t, m.CTC.ReadPort(0), uint8(1))

	m.EjectTape()
	test.ExpectEquality(t, m.Tape, nil)
}

func TestRecordAudio(t *testing.T) {
	m := newMachine(t)

	err := m.StopRecording()
	test.ExpectSuccess(t, curated.Is(err, hardware.NotRecording))

	poke(m, 0x0000,
		0x3e, 0x07, // LD A,07
		0xd3, 0x80, // OUT (80),A
		0x3e, 0x0a, // LD A,0A
		0xd3, 0x80, // OUT (80),A
		0x18, 0xfe, // JR 0008
	)

	fn := filepath.Join(t.TempDir(), "audio.wav")
	test.DemandSuccess(t, m.RecordAudio(fn, 0))
	test.ExpectSuccess(t, m.IsRecording())

	for range 2000 {
		m.Step()
	}

	test.DemandSuccess(t, m.StopRecording())
	test.ExpectFailure(t, m.IsRecording())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, len(buf.Data) > 100)

	var pos, neg bool
	for _, v := range buf.Data {
		pos = pos || v > 0
		neg = neg || v < 0
	}
	test.ExpectSuccess(t, pos && neg)
}
