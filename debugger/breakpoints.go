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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/cpu"
)

// Sentinal errors.
const (
	BreakpointExists  = "breakpoint: already exists (%s)"
	BreakpointMissing = "breakpoint: no breakpoint #%d"
)

// breakpoint is the monitor's view of a cpu.Breakpoint.
type breakpoint interface {
	cpu.Breakpoint
	String() string

	// close is called when the breakpoint is removed
	close()
}

type addressBreak struct {
	address uint16
}

func (b addressBreak) Matches(mc *cpu.CPU, src cpu.InterruptSource) bool {
	return src == nil && mc.PC == b.address
}

func (b addressBreak) String() string {
	return fmt.Sprintf("address %04X", b.address)
}

func (b addressBreak) close() {}

// interruptBreak matches an accepted interrupt from the source. a nil source
// matches any source.
type interruptBreak struct {
	src cpu.InterruptSource
}

func (b interruptBreak) Matches(_ *cpu.CPU, src cpu.InterruptSource) bool {
	return src != nil && (b.src == nil || b.src == src)
}

func (b interruptBreak) String() string {
	if b.src == nil {
		return "interrupt ANY"
	}
	return fmt.Sprintf("interrupt %v", b.src)
}

func (b interruptBreak) close() {}

// breakpoints is the list of breakpoints known to the CPU.
type breakpoints struct {
	mc   *cpu.CPU
	list []breakpoint
}

func newBreakpoints(mc *cpu.CPU) *breakpoints {
	return &breakpoints{mc: mc}
}

// the CPU keeps its own copy of the list, which must be updated after every
// change.
func (bps *breakpoints) commit() {
	l := make([]cpu.Breakpoint, len(bps.list))
	for i, b := range bps.list {
		l[i] = b
	}
	bps.mc.SetBreakpoints(l...)
}

func (bps *breakpoints) add(b breakpoint) error {
	for _, e := range bps.list {
		if e.String() == b.String() {
			b.close()
			return curated.Errorf(BreakpointExists, b)
		}
	}
	bps.list = append(bps.list, b)
	bps.commit()
	return nil
}

// drop the breakpoint using the number shown in the list.
func (bps *breakpoints) drop(n int) error {
	if n < 0 || n >= len(bps.list) {
		return curated.Errorf(BreakpointMissing, n)
	}
	bps.list[n].close()
	bps.list = append(bps.list[:n], bps.list[n+1:]...)
	bps.commit()
	return nil
}

func (bps *breakpoints) clear() {
	for _, b := range bps.list {
		b.close()
	}
	bps.list = bps.list[:0]
	bps.commit()
}

func (bps *breakpoints) String() string {
	if len(bps.list) == 0 {
		return "no breakpoints"
	}
	s := strings.Builder{}
	for i, b := range bps.list {
		s.WriteString(fmt.Sprintf("%2d: %s\n", i, b))
	}
	return strings.TrimRight(s.String(), "\n")
}
