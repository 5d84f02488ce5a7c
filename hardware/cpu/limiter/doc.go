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

// Package limiter governs the speed of the CPU. The CPU reports the number of
// T-states it has processed and the limiter periodically compares the time
// those T-states should have taken at the requested clock speed with the time
// that has actually elapsed. If the CPU is running ahead of time then the
// limiter sleeps for the difference.
//
// The limiter can be told to let the CPU run unlimited for a number of
// T-states. This is useful for skipping through long delay loops (tape
// loading for example).
//
// Time spent while the CPU is paused by the debugger is excluded from the
// calculations. See the Suspend() and Resume() functions.
package limiter
