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

package govern

import "sync/atomic"

// State indicates the emulation's state.
type State int

// List of possible emulation states.
//
// EmulatorStart is the default state and should never be entered once the
// emulator has begun.
const (
	EmulatorStart State = iota
	Initialising
	Paused
	Stepping
	Running
	Ending
)

func (s State) String() string {
	switch s {
	case EmulatorStart:
		return "EmulatorStart"
	case Initialising:
		return "Initialising"
	case Paused:
		return "Paused"
	case Stepping:
		return "Stepping"
	case Running:
		return "Running"
	case Ending:
		return "Ending"
	}

	return ""
}

// Transition returns true if a change from one state to the other makes
// sense.
//
// Rules:
//
//  1. nothing can return to EmulatorStart
//
//  2. nothing can leave Ending
//
//  3. a state can always transition to itself
func Transition(from State, to State) bool {
	if from == to {
		return true
	}
	if to == EmulatorStart || from == Ending {
		return false
	}
	return true
}

// AtomicState is a State that can be shared between goroutines.
type AtomicState struct {
	v atomic.Int32
}

// Load returns the current state.
func (s *AtomicState) Load() State {
	return State(s.v.Load())
}

// Store changes the current state if the transition is allowed. Returns false
// if it is not.
func (s *AtomicState) Store(state State) bool {
	for {
		from := s.v.Load()
		if !Transition(State(from), state) {
			return false
		}
		if s.v.CompareAndSwap(from, int32(state)) {
			return true
		}
	}
}
