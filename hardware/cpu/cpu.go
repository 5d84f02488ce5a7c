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
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/gopher80/hardware/cpu/limiter"
	"github.com/jetsetilly/gopher80/hardware/cpu/registers"
)

// TStatesWrap is the value at which the T-state counter wraps around to
// zero. Use CalcTStatesDiff() to calculate the difference between two
// readings of the counter.
const TStatesWrap = math.MaxInt64 - 1000000

// CPU implements the Zilog Z80. The registers are available as public fields
// and can be changed freely while the CPU is not running.
type CPU struct {
	A      uint8
	Status registers.Status
	B      uint8
	C      uint8
	D      uint8
	E      uint8
	H      uint8
	L      uint8

	// the alternate register set. swapped with the main set by the EX AF,AF'
	// and EXX instructions
	AltAF uint16
	AltBC uint16
	AltDE uint16
	AltHL uint16

	IX uint16
	IY uint16
	SP uint16
	PC uint16
	I  uint8

	// interrupt flip-flops and interrupt mode
	IFF1 bool
	IFF2 bool
	IM   uint8

	// the refresh register. access with R() and SetR()
	r uint8

	mem Memory
	io  IO

	lmtr *limiter.Limiter

	// the number of T-states processed since the last reset. wraps at
	// TStatesWrap
	tstates atomic.Int64

	// the number of T-states consumed by the current instruction
	instTStates int

	// additional T-states requested by external hardware
	waitStates atomic.Int64

	// the WAIT line of the CPU
	waitMode atomic.Bool

	// address of the current instruction
	instBegPC uint16

	// a HALT instruction has been executed and the CPU is repeating it until
	// an interrupt occurs
	halting bool
	haltPC  uint16

	// halt state as last reported to the halt listeners
	haltState atomic.Bool

	// interrupts are not accepted immediately after an EI or DI instruction
	lastWasEIorDI bool

	// nesting level of CALL and PUSH instructions. used by the step over and
	// step up actions
	callLevel atomic.Int32

	action       atomic.Int32
	active       atomic.Bool
	paused       atomic.Bool
	debugEnabled atomic.Bool
	nmiFired     atomic.Bool

	// incremented every time the CPU pauses
	pauses atomic.Uint64

	// the CPU waits on this condition while paused. the generation counter
	// changes on every wake up
	wait    *sync.Cond
	waitGen uint64

	// listeners and collaborators that are consulted every instruction. stored
	// atomically so that they can be changed while the CPU is running
	interruptSources atomic.Pointer[[]InterruptSource]
	breakpoints      atomic.Pointer[[]Breakpoint]
	tickListeners    atomic.Pointer[[]TickListener]
	addressListener  atomic.Pointer[addressListener]
	pcListener       atomic.Pointer[pcListener]
	cycleManager     atomic.Pointer[cycleManager]
	tracer           atomic.Pointer[tracer]

	// listeners that are informed of infrequent events
	crit              sync.Mutex
	haltListeners     []HaltListener
	maxSpeedListeners []MaxSpeedListener
	statusListeners   []StatusListener
}

type addressListener struct {
	AddressListener
}

type pcListener struct {
	PCListener
	pcs map[uint16]bool
}

type cycleManager struct {
	CycleManager
}

type tracer struct {
	io.Writer
}

// NewCPU is the preferred method of initialisation for the CPU type. The CPU
// is reset as if it has just been powered on.
func NewCPU(mem Memory, ports IO) *CPU {
	mc := &CPU{
		mem:  mem,
		io:   ports,
		lmtr: limiter.NewLimiter(),
	}
	mc.wait = sync.NewCond(&mc.crit)
	mc.Reset(true)
	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("AF=%04x BC=%04x DE=%04x HL=%04x IX=%04x IY=%04x SP=%04x PC=%04x F=%s",
		mc.AF(), mc.BC(), mc.DE(), mc.HL(), mc.IX, mc.IY, mc.SP, mc.PC, mc.Status)
}

// Reset the CPU and all interrupt sources. A power-on reset also initialises
// the general purpose registers.
func (mc *CPU) Reset(powerOn bool) {
	if srcs := mc.interruptSources.Load(); srcs != nil {
		for _, src := range *srcs {
			src.Reset(powerOn)
		}
	}

	mc.nmiFired.Store(false)
	mc.IFF1 = false
	mc.IFF2 = false
	mc.IM = 0
	mc.I = 0
	mc.r = 0
	mc.lastWasEIorDI = false
	mc.callLevel.Store(0)
	mc.waitMode.Store(false)
	mc.halting = false
	mc.instBegPC = 0

	if mc.debugEnabled.Load() {
		mc.action.Store(int32(DebugRun))
	} else {
		mc.action.Store(int32(Run))
	}

	mc.PC = 0
	mc.setHaltState(false)

	if powerOn {
		mc.Status.Reset()
		mc.A = 0xff
		mc.B = 0xff
		mc.C = 0xff
		mc.D = 0xff
		mc.E = 0xff
		mc.H = 0xff
		mc.L = 0xff
		mc.AltAF = 0xffff
		mc.AltBC = 0xffff
		mc.AltDE = 0xffff
		mc.AltHL = 0xffff
		mc.IX = 0xffff
		mc.IY = 0xffff
		mc.SP = 0xffff
	}

	mc.ResetSpeed()
}

// AF returns the value of the AF register pair.
func (mc *CPU) AF() uint16 {
	return uint16(mc.A)<<8 | uint16(mc.Status.Value())
}

// SetAF sets the AF register pair.
func (mc *CPU) SetAF(v uint16) {
	mc.A = uint8(v >> 8)
	mc.Status.Load(uint8(v))
}

// F returns the flag register as a single byte.
func (mc *CPU) F() uint8 {
	return mc.Status.Value()
}

// SetF sets the flag register from a single byte.
func (mc *CPU) SetF(v uint8) {
	mc.Status.Load(v)
}

// BC returns the value of the BC register pair.
func (mc *CPU) BC() uint16 {
	return uint16(mc.B)<<8 | uint16(mc.C)
}

// SetBC sets the BC register pair.
func (mc *CPU) SetBC(v uint16) {
	mc.B = uint8(v >> 8)
	mc.C = uint8(v)
}

// DE returns the value of the DE register pair.
func (mc *CPU) DE() uint16 {
	return uint16(mc.D)<<8 | uint16(mc.E)
}

// SetDE sets the DE register pair.
func (mc *CPU) SetDE(v uint16) {
	mc.D = uint8(v >> 8)
	mc.E = uint8(v)
}

// HL returns the value of the HL register pair.
func (mc *CPU) HL() uint16 {
	return uint16(mc.H)<<8 | uint16(mc.L)
}

// SetHL sets the HL register pair.
func (mc *CPU) SetHL(v uint16) {
	mc.H = uint8(v >> 8)
	mc.L = uint8(v)
}

// IXH returns the high byte of the IX register.
func (mc *CPU) IXH() uint8 {
	return uint8(mc.IX >> 8)
}

// IXL returns the low byte of the IX register.
func (mc *CPU) IXL() uint8 {
	return uint8(mc.IX)
}

// SetIXH sets the high byte of the IX register.
func (mc *CPU) SetIXH(v uint8) {
	mc.IX = uint16(v)<<8 | mc.IX&0x00ff
}

// SetIXL sets the low byte of the IX register.
func (mc *CPU) SetIXL(v uint8) {
	mc.IX = mc.IX&0xff00 | uint16(v)
}

// IYH returns the high byte of the IY register.
func (mc *CPU) IYH() uint8 {
	return uint8(mc.IY >> 8)
}

// IYL returns the low byte of the IY register.
func (mc *CPU) IYL() uint8 {
	return uint8(mc.IY)
}

// SetIYH sets the high byte of the IY register.
func (mc *CPU) SetIYH(v uint8) {
	mc.IY = uint16(v)<<8 | mc.IY&0x00ff
}

// SetIYL sets the low byte of the IY register.
func (mc *CPU) SetIYL(v uint8) {
	mc.IY = mc.IY&0xff00 | uint16(v)
}

// R returns the value of the refresh register.
func (mc *CPU) R() uint8 {
	return mc.r
}

// SetR sets the refresh register. Bit 7 of the value is preserved by
// subsequent increments.
func (mc *CPU) SetR(v uint8) {
	mc.r = v
}

// only the lower seven bits of R are incremented
func (mc *CPU) incR() {
	mc.r = mc.r&0x80 | (mc.r+1)&0x7f
}

// InstructionAddress returns the address of the instruction currently being
// executed. Outside of instruction execution this is the address of the most
// recent instruction.
func (mc *CPU) InstructionAddress() uint16 {
	return mc.instBegPC
}

// TStates returns the number of T-states processed since the last reset.
func (mc *CPU) TStates() int64 {
	return mc.tstates.Load()
}

// CalcTStatesDiff returns the number of T-states between two readings of the
// T-state counter, taking account of wrapping.
func CalcTStatesDiff(t1, t2 int64) int64 {
	if t2 >= t1 {
		return t2 - t1
	}
	return TStatesWrap - t1 + t2
}

// AddWaitStates adds T-states to the current instruction. Used by memory and
// IO devices to emulate wait states.
func (mc *CPU) AddWaitStates(n int) {
	mc.waitStates.Add(int64(n))
}

// SetWaitMode sets the state of the WAIT line. While the WAIT line is
// asserted the CPU does not execute instructions but time still passes.
func (mc *CPU) SetWaitMode(wait bool) {
	mc.waitMode.Store(wait)
}

// IsHalted returns true if the CPU is executing a HALT instruction.
func (mc *CPU) IsHalted() bool {
	return mc.haltState.Load()
}

func (mc *CPU) setHaltState(halted bool) {
	if mc.haltState.Swap(halted) == halted {
		return
	}

	mc.crit.Lock()
	l := append([]HaltListener(nil), mc.haltListeners...)
	mc.crit.Unlock()

	for _, h := range l {
		h.HaltStateChanged(mc, halted)
	}
}
