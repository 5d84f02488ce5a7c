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

// Package wavwriter records the output of a CTC channel to a WAV file. The
// output of a channel is a flip-flop that changes state every time the
// channel's counter reaches zero, which is how many Z80 machines make sound.
//
// Note that audio data is buffered in memory in its entirety and written to
// disk when EndMixing() is called. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/hardware/ctc"
	"github.com/jetsetilly/gopher80/logger"
)

// Sentinal errors.
const (
	EncodingError = "wavwriter: %v"
)

// SampleRate of the WAV file.
const SampleRate = 44100

// amplitude of the square wave
const amplitude = 0x3fff

// WavWriter implements the ctc.Observer, cpu.TickListener and
// cpu.MaxSpeedListener interfaces.
type WavWriter struct {
	crit sync.Mutex

	filename string
	channel  int

	// the state of the channel's output flip-flop
	level bool

	// the number of T-states per sample and the number of T-states since the
	// last sample
	tstatesPerSample float64
	tstates          float64

	buffer []int
}

// New is the preferred method of initialisation for the WavWriter type. The
// clock of the CPU is required to sample the output at the correct rate.
func New(filename string, channel int, clockKHz int) (*WavWriter, error) {
	if channel < 0 || channel >= ctc.NumChannels {
		return nil, curated.Errorf(EncodingError, "no such CTC channel")
	}

	aw := &WavWriter{
		filename: filename,
		channel:  channel,
		buffer:   make([]int, 0),
	}
	aw.setClockKHz(clockKHz)

	return aw, nil
}

func (aw *WavWriter) setClockKHz(khz int) {
	aw.tstatesPerSample = float64(khz) * 1000.0 / SampleRate
}

// ZeroCount implements the ctc.Observer interface.
func (aw *WavWriter) ZeroCount(_ *ctc.CTC, channel int) {
	if channel != aw.channel {
		return
	}
	aw.crit.Lock()
	defer aw.crit.Unlock()
	aw.level = !aw.level
}

// CyclesProcessed implements the cpu.TickListener interface.
func (aw *WavWriter) CyclesProcessed(cycles int) {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	if aw.tstatesPerSample <= 0 {
		return
	}

	aw.tstates += float64(cycles)
	for aw.tstates >= aw.tstatesPerSample {
		aw.tstates -= aw.tstatesPerSample
		if aw.level {
			aw.buffer = append(aw.buffer, amplitude)
		} else {
			aw.buffer = append(aw.buffer, -amplitude)
		}
	}
}

// MaxSpeedChanged implements the cpu.MaxSpeedListener interface.
func (aw *WavWriter) MaxSpeedChanged(mc *cpu.CPU) {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	aw.setClockKHz(mc.MaxSpeedKHz())
}

// Samples returns the number of samples recorded so far.
func (aw *WavWriter) Samples() int {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	return len(aw.buffer)
}

// EndMixing writes the recording to disk.
func (aw *WavWriter) EndMixing() (rerr error) {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf(EncodingError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(EncodingError, err)
		}
	}()

	enc := wav.NewEncoder(f, SampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(EncodingError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(EncodingError, err)
	}

	return nil
}
