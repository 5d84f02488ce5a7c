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

package cpu

import (
	"slices"
)

// FireAction requests a change in the running state of the CPU. Safe to call
// from any goroutine.
func (mc *CPU) FireAction(action Action) {
	mc.action.Store(int32(action))
	if action.IsDebug() {
		mc.debugEnabled.Store(true)
	}

	mc.callLevel.Store(0)

	// the CPU will pause itself at the next instruction for these actions
	if action != Pause && action != DebugStop {
		mc.wakeUp()
		mc.updateStatusListeners(nil, nil)
	}
}

// FirePause pauses or resumes the CPU. If debugging is enabled the debugging
// equivalents of the pause and run actions are used.
func (mc *CPU) FirePause(pause bool) {
	if mc.debugEnabled.Load() {
		if pause {
			mc.FireAction(DebugStop)
		} else {
			mc.FireAction(DebugRun)
		}
	} else {
		if pause {
			mc.FireAction(Pause)
		} else {
			mc.FireAction(Run)
		}
	}
}

// FireExit stops the CPU. The Run() function will return shortly afterwards.
func (mc *CPU) FireExit() {
	mc.active.Store(false)
	mc.wakeUp()
	mc.updateStatusListeners(nil, nil)
}

// FireNMI requests a non-maskable interrupt. The interrupt is taken before
// the next instruction.
func (mc *CPU) FireNMI() {
	mc.nmiFired.Store(true)
}

// IsActive returns true while the Run() function is executing.
func (mc *CPU) IsActive() bool {
	return mc.active.Load()
}

// IsPause returns true if the CPU is currently paused.
func (mc *CPU) IsPause() bool {
	return mc.paused.Load()
}

// Pauses returns the number of times the CPU has paused since it was created.
// The count is updated before the status listeners are informed of the pause.
func (mc *CPU) Pauses() uint64 {
	return mc.pauses.Load()
}

// Action returns the most recently requested action.
func (mc *CPU) Action() Action {
	return Action(mc.action.Load())
}

// SetDebugEnabled turns debugging on or off. When debugging is enabled,
// breakpoints are checked before every instruction.
func (mc *CPU) SetDebugEnabled(enabled bool) {
	mc.debugEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debugging is enabled.
func (mc *CPU) IsDebugEnabled() bool {
	return mc.debugEnabled.Load()
}

// wakeUp releases the CPU if it is waiting in waitFor().
func (mc *CPU) wakeUp() {
	mc.crit.Lock()
	mc.waitGen++
	mc.crit.Unlock()
	mc.wait.Broadcast()
}

// wakeGeneration returns the current wake up generation. the value should be
// read before deciding to wait so that a wake up that happens between the
// decision and the call to waitFor() is not missed.
func (mc *CPU) wakeGeneration() uint64 {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	return mc.waitGen
}

// waitFor blocks until wakeUp() is called. Speed measurement is suspended for
// the duration of the wait.
func (mc *CPU) waitFor(gen uint64) {
	mc.lmtr.Suspend()
	defer mc.lmtr.Resume()

	mc.crit.Lock()
	defer mc.crit.Unlock()
	for mc.waitGen == gen && mc.active.Load() {
		mc.wait.Wait()
	}
}

// SetMaxSpeedKHz sets the speed at which the CPU will run. A value of zero
// means the CPU will run as fast as possible. Max speed listeners are informed
// if the value has changed.
func (mc *CPU) SetMaxSpeedKHz(khz int) {
	if !mc.lmtr.SetMaxSpeedKHz(khz) {
		return
	}

	mc.crit.Lock()
	l := slices.Clone(mc.maxSpeedListeners)
	mc.crit.Unlock()

	for _, m := range l {
		m.MaxSpeedChanged(mc)
	}
}

// MaxSpeedKHz returns the requested speed of the CPU.
func (mc *CPU) MaxSpeedKHz() int {
	return mc.lmtr.MaxSpeedKHz()
}

// SetBrakeEnabled turns the speed limiter on or off.
func (mc *CPU) SetBrakeEnabled(enabled bool) {
	mc.lmtr.SetBrake(enabled)
}

// BrakeEnabled returns true if the speed limiter is on.
func (mc *CPU) BrakeEnabled() bool {
	return mc.lmtr.Brake()
}

// SetSpeedUnlimitedFor lets the CPU run as fast as possible for the specified
// number of T-states.
func (mc *CPU) SetSpeedUnlimitedFor(tstates int64) {
	mc.lmtr.SetUnlimitedFor(tstates)
}

// CurrentSpeedKHz returns the measured speed of the CPU. Returns -1 if the
// speed cannot be measured yet.
func (mc *CPU) CurrentSpeedKHz() int {
	return mc.lmtr.MeasuredKHz()
}

// ResetSpeed restarts speed measurement.
func (mc *CPU) ResetSpeed() {
	mc.lmtr.Reset()
}
