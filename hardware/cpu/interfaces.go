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

// Memory defines the memory operations required by the CPU.
type Memory interface {
	// Read a byte from memory. The m1 argument is true if the read is an
	// opcode fetch (the M1 cycle of the Z80).
	Read(address uint16, m1 bool) uint8

	// Write a byte to memory.
	Write(address uint16, data uint8)

	// Peek reads a byte from memory without any side effects. Used by the
	// disassembler and the debugger.
	Peek(address uint16) uint8
}

// IO defines the port operations required by the CPU. The full 16 bit port
// address is presented to the IO system. Most systems will only decode the
// lower eight bits.
type IO interface {
	ReadPort(port uint16) uint8
	WritePort(port uint16, data uint8)
}

// InterruptSource is implemented by any device that can request a maskable
// interrupt. Interrupt sources are given to the CPU in priority order with
// SetInterruptSources().
type InterruptSource interface {
	// InterruptAccept is called when the CPU accepts the interrupt request.
	// Returns the interrupt vector (or opcode in interrupt mode 0).
	InterruptAccept() uint8

	// InterruptFinish is called when the CPU executes a RETI instruction and
	// the source is the first accepted source in the priority chain.
	InterruptFinish()

	// IsInterruptAccepted returns true if an interrupt from the source has
	// been accepted and is being serviced.
	IsInterruptAccepted() bool

	// IsInterruptRequested returns true if the source is requesting an
	// interrupt.
	IsInterruptRequested() bool

	// Reset the source. A power-on reset will also reset the vector.
	Reset(powerOn bool)
}

// Breakpoint implementations are checked by the CPU before every instruction
// when debugging is enabled. The src argument is the interrupt source that
// has just been accepted, if any.
type Breakpoint interface {
	Matches(mc *CPU, src InterruptSource) bool
}

// TickListener implementations are informed of the number of T-states
// consumed by every instruction.
type TickListener interface {
	CyclesProcessed(cycles int)
}

// AddressListener is informed of every memory access. Only one address
// listener can be attached at once.
type AddressListener interface {
	AddressChanged(address uint16)
}

// PCListener is informed when the program counter reaches one of a set of
// addresses. Only one PC listener can be attached at once.
type PCListener interface {
	PCReached(mc *CPU, pc uint16)
}

// HaltListener is informed when the CPU enters or leaves the halted state.
type HaltListener interface {
	HaltStateChanged(mc *CPU, halted bool)
}

// MaxSpeedListener is informed when the maximum speed of the CPU changes.
type MaxSpeedListener interface {
	MaxSpeedChanged(mc *CPU)
}

// StatusListener is informed whenever the CPU pauses, resumes or exits. The
// bp and src arguments are the breakpoint and interrupt source that caused
// the pause. Both are nil when the CPU resumes.
type StatusListener interface {
	StatusChanged(bp Breakpoint, src InterruptSource)
}

// CycleManager implementations can adjust the number of T-states consumed by
// an instruction. The pc argument is the address of the instruction. Used to
// emulate machine specific timing differences.
type CycleManager interface {
	InstructionProcessed(mc *CPU, pc uint16, cycles int) int
}
