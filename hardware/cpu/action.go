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

// Action is the requested running state of the CPU.
type Action int32

// List of valid Action values.
const (
	// normal execution without debugging
	Run Action = iota

	// normal execution paused. no breakpoints are checked
	Pause

	// execution with breakpoints checked every instruction
	DebugRun

	// stop at the next instruction
	DebugStop

	// execute one instruction and then stop
	DebugStepInto

	// execute one instruction and then stop. CALL, RST and interrupts are
	// executed in their entirety
	DebugStepOver

	// run until the current subroutine has returned
	DebugStepUp
)

func (a Action) String() string {
	switch a {
	case Run:
		return "run"
	case Pause:
		return "pause"
	case DebugRun:
		return "debug run"
	case DebugStop:
		return "debug stop"
	case DebugStepInto:
		return "step into"
	case DebugStepOver:
		return "step over"
	case DebugStepUp:
		return "step up"
	}
	return "unknown action"
}

// IsDebug returns true if the action enables debugging.
func (a Action) IsDebug() bool {
	return a >= DebugRun
}
