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

package limiter

import (
	"testing"
	"time"

	"github.com/jetsetilly/gopher80/test"
)

// fakeClock replaces the wall clock of the limiter. sleeping advances the
// clock by the duration of the sleep.
type fakeClock struct {
	nanos int64
	slept time.Duration
}

func (clk *fakeClock) now() int64 {
	return clk.nanos
}

func (clk *fakeClock) sleep(d time.Duration) {
	clk.slept += d
	clk.nanos += int64(d)
}

func newTestLimiter() (*Limiter, *fakeClock) {
	clk := &fakeClock{}
	lmtr := NewLimiter()
	lmtr.now = clk.now
	lmtr.sleep = clk.sleep
	lmtr.Reset()
	return lmtr, clk
}

// run n batches of instructions, each instruction taking 4 T-states
func runBatches(lmtr *Limiter, n int) {
	for range n * checkInterval {
		lmtr.Check()
		lmtr.AddTStates(4)
	}
}

func TestMaxSpeed(t *testing.T) {
	lmtr, _ := newTestLimiter()
	test.ExpectSuccess(t, lmtr.SetMaxSpeedKHz(1000))
	test.ExpectFailure(t, lmtr.SetMaxSpeedKHz(1000))
	test.ExpectEquality(t, lmtr.MaxSpeedKHz(), 1000)

	// negative speeds are treated as no limit
	test.ExpectSuccess(t, lmtr.SetMaxSpeedKHz(-10))
	test.ExpectEquality(t, lmtr.MaxSpeedKHz(), 0)
}

func TestBraking(t *testing.T) {
	lmtr, clk := newTestLimiter()
	lmtr.SetMaxSpeedKHz(1000)

	// the fake clock doesn't advance unless the limiter sleeps. at 1MHz each
	// T-state takes 1000ns
	runBatches(lmtr, 10)
	test.ExpectInequality(t, clk.slept, 0)

	// the time slept by the limiter is the time the T-states should have taken,
	// measured at the final check. the instruction following the final check
	// is not yet accounted for
	test.ExpectEquality(t, clk.slept, time.Duration((10*checkInterval-1)*4*1000))
	test.ExpectApproximate(t, lmtr.MeasuredKHz(), 1000, 0.2)
}

func TestNoBrake(t *testing.T) {
	lmtr, clk := newTestLimiter()
	lmtr.SetMaxSpeedKHz(1000)
	lmtr.SetBrake(false)
	runBatches(lmtr, 10)
	test.ExpectEquality(t, clk.slept, 0)

	// no maximum speed has the same effect as no brake
	lmtr.SetBrake(true)
	lmtr.SetMaxSpeedKHz(0)
	runBatches(lmtr, 10)
	test.ExpectEquality(t, clk.slept, 0)
}

func TestUnlimited(t *testing.T) {
	lmtr, clk := newTestLimiter()
	lmtr.SetMaxSpeedKHz(1000)
	lmtr.SetUnlimitedFor(int64(5 * checkInterval * 4))
	runBatches(lmtr, 5)
	test.ExpectEquality(t, clk.slept, 0)

	// the first check after the unlimited period restarts measurement. the
	// final instruction of the batch is the only one counted afterwards
	runBatches(lmtr, 1)
	test.ExpectEquality(t, clk.slept, 0)
	test.ExpectEquality(t, lmtr.TStates(), 4)
}

func TestSuspend(t *testing.T) {
	lmtr, clk := newTestLimiter()

	clk.nanos += 1000
	lmtr.Suspend()
	clk.nanos += 1000000
	test.ExpectEquality(t, lmtr.used(), 1000)
	lmtr.Resume()
	test.ExpectEquality(t, lmtr.used(), 1000)

	// resume without suspend has no effect
	lmtr.Resume()
	test.ExpectEquality(t, lmtr.used(), 1000)
}

func TestMeasuredUnknown(t *testing.T) {
	lmtr, _ := newTestLimiter()
	test.ExpectEquality(t, lmtr.MeasuredKHz(), -1)
}
