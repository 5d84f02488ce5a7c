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
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/logger"
)

// Run the CPU until FireExit() is called. Run should be called from its own
// goroutine. All other CPU functions that are safe to call while the CPU is
// running are safe to call from other goroutines.
//
// An illegal instruction fault stops the CPU and is returned as an error.
func (mc *CPU) Run() (err error) {
	mc.ResetSpeed()
	mc.active.Store(true)
	mc.updateStatusListeners(nil, nil)

	logger.Logf(logger.Allow, "cpu", "running from %04x", mc.PC)

	defer func() {
		mc.active.Store(false)
		mc.updateStatusListeners(nil, nil)

		if r := recover(); r != nil {
			f, ok := r.(Fault)
			if !ok {
				panic(r)
			}
			err = curated.Errorf(IllegalOpcode, f)
			logger.Log(logger.Allow, "cpu", err)
			return
		}

		logger.Logf(logger.Allow, "cpu", "stopped at %04x", mc.PC)
	}()

	for mc.active.Load() {
		if _, ok := mc.step(); !ok {
			break
		}
	}

	return nil
}

// Step performs one iteration of the CPU loop, which is usually one
// instruction plus any interrupt handling. Returns the number of cycles
// processed.
//
// Step is intended for use when the CPU is not being run with Run(). A
// fault will cause Step to panic.
func (mc *CPU) Step() int {
	n, _ := mc.step()
	return n
}

// step returns false if the CPU has been stopped while paused.
func (mc *CPU) step() (int, bool) {
	var cycles int

	// the WAIT line causes cycles to be consumed without any instruction
	// being executed
	for mc.waitMode.Load() && mc.active.Load() {
		mc.processed(1)
		cycles++
	}

	mc.lmtr.Check()
	mc.instTStates = 0

	var nmi bool
	var src InterruptSource

	if mc.nmiFired.Swap(false) {
		mc.IFF2 = mc.IFF1
		mc.IFF1 = false
		mc.halting = false
		mc.incR()
		mc.Push(mc.PC)
		mc.PC = 0x0066
		mc.instTStates += 11
		nmi = true
	} else if mc.lastWasEIorDI {
		// interrupts are not accepted immediately after EI or DI
		mc.lastWasEIorDI = false
	} else if mc.IFF1 {
		src = mc.acceptInterrupt()
	}

	if !nmi && src == nil && mc.halting {
		// the HALT instruction is executed repeatedly until an interrupt
		mc.PC = mc.haltPC
		mc.halting = false
	} else {
		mc.setHaltState(false)
	}

	if Action(mc.action.Load()) == Pause || mc.debugEnabled.Load() {
		if !mc.debug(nmi, src) {
			return cycles, false
		}
	}

	if l := mc.pcListener.Load(); l != nil && l.pcs[mc.PC] {
		l.PCReached(mc, mc.PC)
	}

	mc.instBegPC = mc.PC
	mc.execute(noIndex, mc.fetchOpcode())

	if m := mc.cycleManager.Load(); m != nil {
		mc.instTStates = m.InstructionProcessed(mc, mc.instBegPC, mc.instTStates)
	}
	mc.instTStates += int(mc.waitStates.Swap(0))

	mc.processed(mc.instTStates)
	cycles += mc.instTStates

	return cycles, true
}

// acceptInterrupt checks the interrupt sources in priority order. The first
// source requesting an interrupt is serviced. A source that is already being
// serviced blocks all sources of lower priority.
func (mc *CPU) acceptInterrupt() InterruptSource {
	for _, src := range mc.InterruptSources() {
		if src.IsInterruptAccepted() {
			return nil
		}
		if !src.IsInterruptRequested() {
			continue
		}

		mc.halting = false
		mc.IFF1 = false
		mc.IFF2 = false
		v := src.InterruptAccept()
		mc.incR()

		switch mc.IM {
		case 1:
			mc.Push(mc.PC)
			mc.PC = 0x0038
			mc.instTStates += 13
		case 2:
			mc.Push(mc.PC)
			mc.PC = mc.read16(uint16(mc.I)<<8 | uint16(v))
			mc.instTStates += 19
		default:
			// the vector is executed as an instruction. usually an RST
			mc.instBegPC = mc.PC
			mc.instTStates += 2
			mc.execute(noIndex, v)
		}

		return src
	}
	return nil
}

// debug handles tracing, breakpoints, stepping and pausing. returns false if
// the CPU has been stopped while paused.
func (mc *CPU) debug(nmi bool, src InterruptSource) bool {
	// the generation must be taken before the status listeners are informed
	// of the pause. a wake up from a listener must not be lost
	gen := mc.wakeGeneration()

	if t := mc.tracer.Load(); t != nil && mc.debugEnabled.Load() {
		mc.trace(t, nmi, src)
	}

	var bp Breakpoint
	var pause bool

	if src != nil {
		bp = mc.matchBreakpoint(src)
	}

	if bp == nil {
		switch Action(mc.action.Load()) {
		case Pause, DebugStop, DebugStepInto:
			pause = true
		case DebugStepOver:
			pause = mc.callLevel.Load() <= 0 && mc.instBegPC != mc.PC
		case DebugStepUp:
			pause = mc.callLevel.Load() <= 0 && mc.isReturn()
		}
		if !pause {
			bp = mc.matchBreakpoint(nil)
		}
	}

	if !pause && bp == nil {
		return true
	}

	mc.pauses.Add(1)
	mc.paused.Store(true)
	mc.updateStatusListeners(bp, src)
	mc.waitFor(gen)
	mc.paused.Store(false)
	mc.updateStatusListeners(nil, nil)

	return mc.active.Load()
}

func (mc *CPU) matchBreakpoint(src InterruptSource) Breakpoint {
	if bps := mc.breakpoints.Load(); bps != nil {
		for _, bp := range *bps {
			if bp.Matches(mc, src) {
				return bp
			}
		}
	}
	return nil
}

// isReturn returns true if the instruction at the PC is a return instruction
// that will return.
func (mc *CPU) isReturn() bool {
	op := mc.mem.Peek(mc.PC)
	switch {
	case op == 0xc9:
		return true
	case op&0xc7 == 0xc0:
		return mc.condition(op >> 3)
	case op == 0xed:
		// RETN, RETI and the undocumented RETN forms
		return mc.mem.Peek(mc.PC+1)&0xc7 == 0x45
	}
	return false
}

// processed adds cycles to the running total and informs the tick
// listeners.
func (mc *CPU) processed(cycles int) {
	t := mc.tstates.Add(int64(cycles))
	if t >= TStatesWrap {
		mc.tstates.Add(-TStatesWrap)
	}
	mc.lmtr.AddTStates(cycles)

	if l := mc.tickListeners.Load(); l != nil {
		for _, tl := range *l {
			tl.CyclesProcessed(cycles)
		}
	}
}
