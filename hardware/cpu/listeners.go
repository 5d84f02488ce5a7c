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
	"io"
	"slices"

	"github.com/jetsetilly/gopher80/curated"
)

// SetInterruptSources sets the list of maskable interrupt sources in priority
// order. The first source has the highest priority.
func (mc *CPU) SetInterruptSources(srcs ...InterruptSource) {
	l := slices.Clone(srcs)
	mc.interruptSources.Store(&l)
}

// InterruptSources returns the list of interrupt sources in priority order.
func (mc *CPU) InterruptSources() []InterruptSource {
	if srcs := mc.interruptSources.Load(); srcs != nil {
		return *srcs
	}
	return nil
}

// SetBreakpoints replaces the list of breakpoints checked while debugging.
func (mc *CPU) SetBreakpoints(bps ...Breakpoint) {
	l := slices.Clone(bps)
	mc.breakpoints.Store(&l)
}

// AddTickListener adds a listener that is informed of the T-states consumed by
// every instruction. Adding a listener that is already present has no effect.
func (mc *CPU) AddTickListener(l TickListener) {
	mc.crit.Lock()
	defer mc.crit.Unlock()

	var n []TickListener
	if o := mc.tickListeners.Load(); o != nil {
		if slices.Contains(*o, l) {
			return
		}
		n = slices.Clone(*o)
	}
	n = append(n, l)
	mc.tickListeners.Store(&n)
}

// RemoveTickListener removes a previously added tick listener.
func (mc *CPU) RemoveTickListener(l TickListener) {
	mc.crit.Lock()
	defer mc.crit.Unlock()

	o := mc.tickListeners.Load()
	if o == nil {
		return
	}
	n := slices.DeleteFunc(slices.Clone(*o), func(e TickListener) bool {
		return e == l
	})
	mc.tickListeners.Store(&n)
}

// SetAddressListener attaches the address listener. It is an error to attach
// a listener when one is already attached.
func (mc *CPU) SetAddressListener(l AddressListener) error {
	if !mc.addressListener.CompareAndSwap(nil, &addressListener{l}) {
		return curated.Errorf(AddressListenerConflict)
	}
	return nil
}

// RemoveAddressListener detaches the address listener if it is the listener
// that is currently attached.
func (mc *CPU) RemoveAddressListener(l AddressListener) {
	if o := mc.addressListener.Load(); o != nil && o.AddressListener == l {
		mc.addressListener.CompareAndSwap(o, nil)
	}
}

// SetPCListener attaches the PC listener. The listener is informed when the
// PC reaches any of the listed addresses. It is an error to attach a listener
// when one is already attached.
func (mc *CPU) SetPCListener(l PCListener, pcs ...uint16) error {
	pl := &pcListener{
		PCListener: l,
		pcs:        make(map[uint16]bool, len(pcs)),
	}
	for _, pc := range pcs {
		pl.pcs[pc] = true
	}
	if !mc.pcListener.CompareAndSwap(nil, pl) {
		return curated.Errorf(PCListenerConflict)
	}
	return nil
}

// RemovePCListener detaches the PC listener if it is the listener that is
// currently attached.
func (mc *CPU) RemovePCListener(l PCListener) {
	if o := mc.pcListener.Load(); o != nil && o.PCListener == l {
		mc.pcListener.CompareAndSwap(o, nil)
	}
}

// SetCycleManager sets the CycleManager for the CPU. A nil value removes the
// cycle manager.
func (mc *CPU) SetCycleManager(m CycleManager) {
	if m == nil {
		mc.cycleManager.Store(nil)
		return
	}
	mc.cycleManager.Store(&cycleManager{m})
}

// SetDebugTracer sets the io.Writer to which a trace of every instruction is
// written while debugging is enabled. A nil value stops tracing.
func (mc *CPU) SetDebugTracer(w io.Writer) {
	if w == nil {
		mc.tracer.Store(nil)
		return
	}
	mc.tracer.Store(&tracer{w})
}

// AddHaltListener adds a listener that is informed when the CPU enters or
// leaves the halted state.
func (mc *CPU) AddHaltListener(l HaltListener) {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	if !slices.Contains(mc.haltListeners, l) {
		mc.haltListeners = append(mc.haltListeners, l)
	}
}

// RemoveHaltListener removes a previously added halt listener.
func (mc *CPU) RemoveHaltListener(l HaltListener) {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	mc.haltListeners = slices.DeleteFunc(mc.haltListeners, func(e HaltListener) bool {
		return e == l
	})
}

// AddMaxSpeedListener adds a listener that is informed when the maximum
// speed of the CPU changes.
func (mc *CPU) AddMaxSpeedListener(l MaxSpeedListener) {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	if !slices.Contains(mc.maxSpeedListeners, l) {
		mc.maxSpeedListeners = append(mc.maxSpeedListeners, l)
	}
}

// RemoveMaxSpeedListener removes a previously added max speed listener.
func (mc *CPU) RemoveMaxSpeedListener(l MaxSpeedListener) {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	mc.maxSpeedListeners = slices.DeleteFunc(mc.maxSpeedListeners, func(e MaxSpeedListener) bool {
		return e == l
	})
}

// AddStatusListener adds a listener that is informed when the CPU pauses,
// resumes or exits.
func (mc *CPU) AddStatusListener(l StatusListener) {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	if !slices.Contains(mc.statusListeners, l) {
		mc.statusListeners = append(mc.statusListeners, l)
	}
}

// RemoveStatusListener removes a previously added status listener.
func (mc *CPU) RemoveStatusListener(l StatusListener) {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	mc.statusListeners = slices.DeleteFunc(mc.statusListeners, func(e StatusListener) bool {
		return e == l
	})
}

func (mc *CPU) updateStatusListeners(bp Breakpoint, src InterruptSource) {
	mc.crit.Lock()
	l := slices.Clone(mc.statusListeners)
	mc.crit.Unlock()

	for _, s := range l {
		s.StatusChanged(bp, src)
	}
}
