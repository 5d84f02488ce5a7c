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

package tape

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/logger"
)

// Sentinal errors.
const (
	UnsupportedFormat = "tape: unsupported format (%v)"
	TapeError         = "tape: %v"
)

const logTag = "tape"

// DefaultThreshold is the sample value above which the tape signal is high.
// The signal is low when the sample falls below the negative of the
// threshold.
const DefaultThreshold = 0.1

// Sink is given the level of the tape signal whenever it changes.
type Sink interface {
	TapeLevel(high bool)
}

// Tape is a cassette image in the tape player.
type Tape struct {
	crit sync.Mutex

	name       string
	samples    []float32
	sampleRate float64

	sink      Sink
	threshold float32
	level     bool

	playing bool
	idx     int

	// the number of T-states for every sample and the number of T-states
	// that have not yet been used to advance the sample index
	tstatesPerSample float64
	tstates          float64
}

// Load a WAV or MP3 cassette image. The tape is not playing after loading.
func Load(filename string, sink Sink) (*Tape, error) {
	p, err := loadPCM(filename)
	if err != nil {
		return nil, err
	}
	if len(p.data) == 0 || p.sampleRate <= 0 {
		return nil, curated.Errorf(TapeError, fmt.Sprintf("%s contains no audio", filename))
	}

	tap := NewTape(filepath.Base(filename), p.data, p.sampleRate, sink)

	logger.Logf(logger.Allow, logTag, "loaded %s", filename)
	logger.Logf(logger.Allow, logTag, "sample rate: %0.2fHz", tap.sampleRate)
	logger.Logf(logger.Allow, logTag, "total time: %.02fs", tap.Length().Seconds())

	return tap, nil
}

// NewTape creates a tape from mono sample data in the range -1.0 to 1.0. The
// sink can be nil.
func NewTape(name string, samples []float32, sampleRate float64, sink Sink) *Tape {
	return &Tape{
		name:       name,
		samples:    samples,
		sampleRate: sampleRate,
		sink:       sink,
		threshold:  DefaultThreshold,
	}
}

func (tap *Tape) String() string {
	tap.crit.Lock()
	defer tap.crit.Unlock()

	state := "stopped"
	if tap.playing {
		state = "playing"
	}
	return fmt.Sprintf("%s: %s %.02fs/%.02fs", tap.name, state,
		float64(tap.idx)/tap.sampleRate, float64(len(tap.samples))/tap.sampleRate)
}

// SetSink changes where the tape signal is sent.
func (tap *Tape) SetSink(sink Sink) {
	tap.crit.Lock()
	defer tap.crit.Unlock()
	tap.sink = sink
}

// SetThreshold sets the sample value at which the signal changes level.
func (tap *Tape) SetThreshold(threshold float32) {
	tap.crit.Lock()
	defer tap.crit.Unlock()
	if threshold < 0 {
		threshold = -threshold
	}
	tap.threshold = threshold
}

// SetClockKHz sets the speed of the clock that advances the tape. Usually the
// clock of the CPU.
func (tap *Tape) SetClockKHz(khz int) {
	tap.crit.Lock()
	defer tap.crit.Unlock()
	if khz <= 0 {
		tap.tstatesPerSample = 0
		return
	}
	tap.tstatesPerSample = float64(khz) * 1000.0 / tap.sampleRate
}

// MaxSpeedChanged implements the cpu.MaxSpeedListener interface.
func (tap *Tape) MaxSpeedChanged(mc *cpu.CPU) {
	tap.SetClockKHz(mc.MaxSpeedKHz())
}

// Play starts the tape from the current position.
func (tap *Tape) Play() {
	tap.crit.Lock()
	defer tap.crit.Unlock()
	if tap.idx >= len(tap.samples) {
		return
	}
	tap.playing = true
	tap.update()
	logger.Logf(logger.Allow, logTag, "playing %s", tap.name)
}

// Stop the tape at the current position.
func (tap *Tape) Stop() {
	tap.crit.Lock()
	defer tap.crit.Unlock()
	if tap.playing {
		tap.playing = false
		logger.Logf(logger.Allow, logTag, "stopped %s", tap.name)
	}
}

// Rewind the tape to the beginning. Rewinding does not stop a playing tape.
func (tap *Tape) Rewind() {
	tap.crit.Lock()
	defer tap.crit.Unlock()
	tap.idx = 0
	tap.tstates = 0
	logger.Logf(logger.Allow, logTag, "rewound %s", tap.name)
}

// IsPlaying returns true if the tape is playing.
func (tap *Tape) IsPlaying() bool {
	tap.crit.Lock()
	defer tap.crit.Unlock()
	return tap.playing
}

// Counter returns the index of the current sample and the number of samples.
func (tap *Tape) Counter() (int, int) {
	tap.crit.Lock()
	defer tap.crit.Unlock()
	return tap.idx, len(tap.samples)
}

// Length returns the running time of the tape.
func (tap *Tape) Length() time.Duration {
	return time.Duration(float64(len(tap.samples)) * float64(time.Second) / tap.sampleRate)
}

// Level returns the current level of the tape signal.
func (tap *Tape) Level() bool {
	tap.crit.Lock()
	defer tap.crit.Unlock()
	return tap.level
}

// CyclesProcessed implements the cpu.TickListener interface.
func (tap *Tape) CyclesProcessed(cycles int) {
	tap.crit.Lock()
	defer tap.crit.Unlock()

	if !tap.playing || tap.tstatesPerSample <= 0 {
		return
	}

	tap.tstates += float64(cycles)
	for tap.tstates >= tap.tstatesPerSample {
		tap.tstates -= tap.tstatesPerSample
		tap.idx++
		if tap.idx >= len(tap.samples) {
			tap.playing = false
			logger.Logf(logger.Allow, logTag, "end of %s", tap.name)
			return
		}
		tap.update()
	}
}

// convert the current sample to a level and inform the sink if the level has
// changed. samples between the two thresholds do not change the level
func (tap *Tape) update() {
	s := tap.samples[tap.idx]

	level := tap.level
	if s > tap.threshold {
		level = true
	} else if s < -tap.threshold {
		level = false
	}

	if level == tap.level {
		return
	}
	tap.level = level

	if tap.sink != nil {
		tap.sink.TapeLevel(level)
	}
}
