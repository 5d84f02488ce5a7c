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
	"math"
	"sync/atomic"
	"time"
)

// the number of calls to Check() between speed checks. checking the time is
// relatively expensive.
const checkInterval = 200

// the T-state counter is reset before it reaches this value.
const wrap = math.MaxInt64 - 1000000

// Limiter keeps the CPU running at the requested speed.
type Limiter struct {
	maxKHz atomic.Int32
	brake  atomic.Bool

	// T-states processed since the most recent reset
	tstates atomic.Int64

	// the CPU is allowed to run unlimited until tstates reaches this value
	unlimitedTill atomic.Int64
	unlimited     atomic.Bool

	// nanos since epoch at which measurement began
	nanosBeg atomic.Int64

	// nanos since epoch at which Suspend() was called. -1 when not suspended
	nanosEnd atomic.Int64

	// counts calls to Check(). only accessed by the goroutine running the CPU
	checkCt int

	// clock functions. replaced for testing
	epoch time.Time
	now   func() int64
	sleep func(time.Duration)
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The limiter begins with the brake on but with no maximum speed. In other
// words, the limiter is effectively inactive until SetMaxSpeedKHz() is called.
func NewLimiter() *Limiter {
	lmtr := &Limiter{
		epoch: time.Now(),
		sleep: time.Sleep,
	}
	lmtr.now = func() int64 {
		return time.Since(lmtr.epoch).Nanoseconds()
	}
	lmtr.brake.Store(true)
	lmtr.Reset()
	return lmtr
}

// Reset speed measurement. The maximum speed and the brake are unaffected.
func (lmtr *Limiter) Reset() {
	lmtr.nanosBeg.Store(lmtr.now())
	lmtr.nanosEnd.Store(-1)
	lmtr.unlimitedTill.Store(0)
	lmtr.tstates.Store(0)
	lmtr.unlimited.Store(false)
}

// SetMaxSpeedKHz sets the requested speed of the CPU. A value of zero or less
// means that there is no limit. Returns true if the value has changed, in
// which case the speed measurement is reset.
func (lmtr *Limiter) SetMaxSpeedKHz(khz int) bool {
	if khz < 0 {
		khz = 0
	}
	if int(lmtr.maxKHz.Swap(int32(khz))) == khz {
		return false
	}
	lmtr.Reset()
	return true
}

// MaxSpeedKHz returns the requested speed of the CPU.
func (lmtr *Limiter) MaxSpeedKHz() int {
	return int(lmtr.maxKHz.Load())
}

// SetBrake turns the limiter on or off.
func (lmtr *Limiter) SetBrake(on bool) {
	lmtr.brake.Store(on)
}

// Brake returns true if the limiter is on.
func (lmtr *Limiter) Brake() bool {
	return lmtr.brake.Load()
}

// SetUnlimitedFor lets the CPU run unlimited for the specified number of
// T-states.
func (lmtr *Limiter) SetUnlimitedFor(tstates int64) {
	lmtr.unlimitedTill.Store(lmtr.tstates.Load() + tstates)
}

// TStates returns the number of T-states processed since the most recent
// reset.
func (lmtr *Limiter) TStates() int64 {
	return lmtr.tstates.Load()
}

// AddTStates should be called by the CPU every instruction.
func (lmtr *Limiter) AddTStates(n int) {
	if lmtr.tstates.Add(int64(n)) >= wrap {
		lmtr.Reset()
	}
}

// Suspend speed measurement. Called when the CPU is paused.
func (lmtr *Limiter) Suspend() {
	lmtr.nanosEnd.Store(lmtr.now())
}

// Resume speed measurement. The time spent suspended is excluded from future
// measurements.
func (lmtr *Limiter) Resume() {
	end := lmtr.nanosEnd.Swap(-1)
	if end < 0 {
		return
	}
	lmtr.nanosBeg.Add(lmtr.now() - end)
}

// nanos elapsed since the start of measurement
func (lmtr *Limiter) used() int64 {
	end := lmtr.nanosEnd.Load()
	if end < 0 {
		end = lmtr.now()
	}
	return end - lmtr.nanosBeg.Load()
}

// Check should be called by the CPU before every instruction. Every so often
// the function will sleep if the CPU is running too quickly.
func (lmtr *Limiter) Check() {
	lmtr.checkCt++
	if lmtr.checkCt < checkInterval {
		return
	}
	lmtr.checkCt = 0

	tstates := lmtr.tstates.Load()

	// measurement restarts at the end of an unlimited period. otherwise the
	// CPU would be braked to make up for the time spent running unlimited
	if lmtr.unlimitedTill.Load() >= tstates {
		lmtr.unlimited.Store(true)
		return
	}
	if lmtr.unlimited.Load() {
		lmtr.Reset()
		return
	}

	khz := lmtr.maxKHz.Load()
	if !lmtr.brake.Load() || khz <= 0 {
		return
	}

	toUse := int64(float64(tstates) * 1e6 / float64(khz))
	if d := toUse - lmtr.used(); d > 0 {
		lmtr.sleep(time.Duration(d))
	}
}

// MeasuredKHz returns the measured speed of the CPU. Returns -1 if the speed
// cannot be measured yet.
func (lmtr *Limiter) MeasuredKHz() int {
	millis := lmtr.used() / 1000000
	if millis <= 0 {
		return -1
	}
	return int(lmtr.tstates.Load() / millis)
}
