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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware"
)

// Sentinal errors.
const (
	PerformanceError = "performance: %v"
)

// counts the T-states executed by the CPU. only accessed by the CPU
// goroutine until the run has finished
type counter struct {
	tstates int64
}

func (c *counter) CyclesProcessed(cycles int) {
	c.tstates += int64(cycles)
}

// Result of a performance check.
type Result struct {
	Duration time.Duration
	TStates  int64

	// the speed the machine is normally limited to
	TargetKHz int
}

// KHz returns the effective speed of the emulated CPU.
func (r Result) KHz() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.TStates) / r.Duration.Seconds() / 1000.0
}

func (r Result) String() string {
	s := fmt.Sprintf("%.2f MHz (%d T-states in %.2f seconds)", r.KHz()/1000, r.TStates, r.Duration.Seconds())
	if r.TargetKHz > 0 {
		s = fmt.Sprintf("%s %.1fx", s, r.KHz()/float64(r.TargetKHz))
	}
	return s
}

// Check the performance of the emulator by running the machine for the
// duration with the speed limiter turned off. The limiter is turned back on
// afterwards if it was on to begin with.
func Check(output io.Writer, profile Profile, m *hardware.Machine, duration string) (Result, error) {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return Result{}, curated.Errorf(PerformanceError, err)
	}
	if dur <= 0 {
		return Result{}, curated.Errorf(PerformanceError, "duration must be positive")
	}

	brake := m.CPU.BrakeEnabled()
	m.CPU.SetBrakeEnabled(false)
	defer m.CPU.SetBrakeEnabled(brake)

	c := &counter{}
	m.CPU.AddTickListener(c)
	defer m.CPU.RemoveTickListener(c)

	var start time.Time
	var elapsed time.Duration

	runner := func() error {
		timer := time.AfterFunc(dur, m.Exit)
		defer timer.Stop()

		start = time.Now()
		err := m.Run()
		elapsed = time.Since(start)

		return err
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return Result{}, curated.Errorf(PerformanceError, err)
	}

	r := Result{
		Duration:  elapsed,
		TStates:   c.tstates,
		TargetKHz: m.CPU.MaxSpeedKHz(),
	}

	if output != nil {
		fmt.Fprintln(output, r.String())
	}

	return r, nil
}
