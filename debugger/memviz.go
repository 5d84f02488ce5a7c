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

package debugger

import (
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/ctc"
	"github.com/jetsetilly/gopher80/hardware/pio"
)

// Sentinal errors.
const (
	MemvizError = "memviz: %v"
)

// snapshot of the machine for visualisation. the live types are not used
// because they contain mutexes and atomic values.
type snapshot struct {
	CPU struct {
		AF, BC, DE, HL     uint16
		AltAF, AltBC       uint16
		AltDE, AltHL       uint16
		IX, IY, SP, PC     uint16
		I, R, IM           uint8
		IFF1, IFF2, Halted bool
		Flags              string
	}
	CTC struct {
		Vector   uint8
		Channels [ctc.NumChannels]ctc.ChannelState
	}
	PIO struct {
		A pio.PortState
		B pio.PortState
	}
	Breakpoints []string
}

func (dbg *Debugger) snapshot() *snapshot {
	s := &snapshot{}

	mc := dbg.m.CPU
	s.CPU.AF, s.CPU.BC, s.CPU.DE, s.CPU.HL = mc.AF(), mc.BC(), mc.DE(), mc.HL()
	s.CPU.AltAF, s.CPU.AltBC, s.CPU.AltDE, s.CPU.AltHL = mc.AltAF, mc.AltBC, mc.AltDE, mc.AltHL
	s.CPU.IX, s.CPU.IY, s.CPU.SP, s.CPU.PC = mc.IX, mc.IY, mc.SP, mc.PC
	s.CPU.I, s.CPU.R, s.CPU.IM = mc.I, mc.R(), mc.IM
	s.CPU.IFF1, s.CPU.IFF2, s.CPU.Halted = mc.IFF1, mc.IFF2, mc.IsHalted()
	s.CPU.Flags = mc.Status.String()

	s.CTC.Vector = dbg.m.CTC.Vector()
	for i := range s.CTC.Channels {
		s.CTC.Channels[i] = dbg.m.CTC.Channel(i)
	}

	s.PIO.A = dbg.m.PIO.State(pio.PortA)
	s.PIO.B = dbg.m.PIO.State(pio.PortB)

	for _, b := range dbg.bps.list {
		s.Breakpoints = append(s.Breakpoints, b.String())
	}

	return s
}

// memviz writes a graphviz representation of the machine state to the file.
func (dbg *Debugger) memviz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(MemvizError, err)
	}

	memviz.Map(f, dbg.snapshot())

	if err := f.Close(); err != nil {
		return curated.Errorf(MemvizError, err)
	}

	return nil
}
