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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/test"
)

func TestPowerOn(t *testing.T) {
	mc := cpu.NewCPU(newMockMem(), &mockIO{})
	test.ExpectEquality(t, mc.PC, uint16(0x0000))
	test.ExpectEquality(t, mc.A, uint8(0xff))
	test.ExpectEquality(t, mc.F(), uint8(0x00))
	test.ExpectEquality(t, mc.BC(), uint16(0xffff))
	test.ExpectEquality(t, mc.IX, uint16(0xffff))
	test.ExpectEquality(t, mc.SP, uint16(0xffff))
	test.ExpectEquality(t, mc.AltAF, uint16(0xffff))
	test.ExpectEquality(t, mc.IFF1, false)
	test.ExpectEquality(t, mc.IM, uint8(0))
	test.ExpectEquality(t, mc.TStates(), int64(0))

	// a reset that is not a power-on does not change the general registers
	mc.A = 0x12
	mc.PC = 0x1234
	mc.IFF1 = true
	mc.Reset(false)
	test.ExpectEquality(t, mc.A, uint8(0x12))
	test.ExpectEquality(t, mc.PC, uint16(0x0000))
	test.ExpectEquality(t, mc.IFF1, false)
}

func TestRegisterPairs(t *testing.T) {
	mc, _, _ := newCPU()

	mc.SetBC(0x1234)
	test.ExpectEquality(t, mc.B, uint8(0x12))
	test.ExpectEquality(t, mc.C, uint8(0x34))

	mc.SetAF(0xabff)
	test.ExpectEquality(t, mc.A, uint8(0xab))
	test.ExpectEquality(t, mc.Status.String(), "SZYHXPNC")
	mc.SetF(0x41)
	test.ExpectEquality(t, mc.AF(), uint16(0xab41))

	mc.IX = 0x1234
	test.ExpectEquality(t, mc.IXH(), uint8(0x12))
	test.ExpectEquality(t, mc.IXL(), uint8(0x34))
	mc.SetIXL(0xff)
	test.ExpectEquality(t, mc.IX, uint16(0x12ff))
	mc.SetIYH(0x56)
	test.ExpectEquality(t, mc.IYH(), uint8(0x56))

	mc.SetR(0xff)
	test.ExpectEquality(t, mc.R(), uint8(0xff))
}

func TestMemoryRoundTrip(t *testing.T) {
	mc, mem, _ := newCPU()

	mem.putInstructions(0x0000,
		0x01, 0x34, 0x12, // LD BC,1234H
		0x3e, 0x42, // LD A,42H
		0x32, 0x00, 0x80, // LD (8000H),A
		0x3e, 0x00, // LD A,00H
		0x3a, 0x00, 0x80, // LD A,(8000H)
		0x02, // LD (BC),A
		0x0a, // LD A,(BC)
	)

	test.ExpectEquality(t, mc.Step(), 10)
	test.ExpectEquality(t, mc.BC(), uint16(0x1234))
	test.ExpectEquality(t, mc.Step(), 7)
	test.ExpectEquality(t, mc.Step(), 13)
	test.ExpectEquality(t, mem.internal[0x8000], uint8(0x42))
	test.ExpectEquality(t, mc.Step(), 7)
	test.ExpectEquality(t, mc.A, uint8(0x00))
	test.ExpectEquality(t, mc.Step(), 13)
	test.ExpectEquality(t, mc.A, uint8(0x42))
	test.ExpectEquality(t, mc.Step(), 7)
	test.ExpectEquality(t, mem.internal[0x1234], uint8(0x42))
	test.ExpectEquality(t, mc.Step(), 7)
	test.ExpectEquality(t, mc.A, uint8(0x42))
	test.ExpectEquality(t, mc.PC, uint16(0x000f))

	test.ExpectEquality(t, mc.TStates(), int64(64))
}

func TestIndexRegisters(t *testing.T) {
	mc, mem, _ := newCPU()

	mem.internal[0x4005] = 0x99
	mem.internal[0x3ffe] = 0x77

	mem.putInstructions(0x0000,
		0xdd, 0x21, 0x00, 0x40, // LD IX,4000H
		0xdd, 0x66, 0x05, // LD H,(IX+05H)
		0xfd, 0x21, 0x00, 0x40, // LD IY,4000H
		0xfd, 0x6e, 0xfe, // LD L,(IY-02H)
		0xdd, 0x36, 0x01, 0x55, // LD (IX+01H),55H
		0xdd, 0x34, 0x01, // INC (IX+01H)
		0xdd, 0x7c, // LD A,IXH
		0xdd, 0x2c, // INC IXL
		0xdd, 0xe5, // PUSH IX
		0xfd, 0xe1, // POP IY
	)

	test.ExpectEquality(t, mc.Step(), 14)
	test.ExpectEquality(t, mc.IX, uint16(0x4000))

	test.ExpectEquality(t, mc.Step(), 19)
	test.ExpectEquality(t, mc.H, uint8(0x99))
	test.ExpectEquality(t, mc.IX, uint16(0x4000))

	test.ExpectEquality(t, mc.Step(), 14)
	test.ExpectEquality(t, mc.Step(), 19)
	test.ExpectEquality(t, mc.L, uint8(0x77))

	test.ExpectEquality(t, mc.Step(), 19)
	test.ExpectEquality(t, mem.internal[0x4001], uint8(0x55))
	test.ExpectEquality(t, mc.Step(), 23)
	test.ExpectEquality(t, mem.internal[0x4001], uint8(0x56))

	test.ExpectEquality(t, mc.Step(), 8)
	test.ExpectEquality(t, mc.A, uint8(0x40))
	test.ExpectEquality(t, mc.Step(), 8)
	test.ExpectEquality(t, mc.IX, uint16(0x4001))

	test.ExpectEquality(t, mc.Step(), 15)
	test.ExpectEquality(t, mc.Step(), 14)
	test.ExpectEquality(t, mc.IY, uint16(0x4001))
}

func TestIndexedBitInstructions(t *testing.T) {
	mc, mem, _ := newCPU()

	mem.internal[0x4003] = 0x81
	mem.putInstructions(0x0000,
		0xdd, 0x21, 0x00, 0x40, // LD IX,4000H
		0xdd, 0xcb, 0x03, 0x7e, // BIT 7,(IX+03H)
		0xdd, 0xcb, 0x03, 0x06, // RLC (IX+03H)
		0xdd, 0xcb, 0x03, 0x80, // RES 0,(IX+03H),B
	)

	mc.Step()
	test.ExpectEquality(t, mc.Step(), 20)
	test.ExpectEquality(t, mc.Status.Zero, false)
	test.ExpectEquality(t, mc.Status.Sign, true)

	test.ExpectEquality(t, mc.Step(), 23)
	test.ExpectEquality(t, mem.internal[0x4003], uint8(0x03))
	test.ExpectEquality(t, mc.Status.Carry, true)

	test.ExpectEquality(t, mc.Step(), 23)
	test.ExpectEquality(t, mem.internal[0x4003], uint8(0x02))
	test.ExpectEquality(t, mc.B, uint8(0x02))
}

func TestRefreshRegister(t *testing.T) {
	mc, mem, _ := newCPU()
	mc.SetR(0x80)

	mem.putInstructions(0x0000,
		0x00,                   // NOP
		0xdd, 0x21, 0x00, 0x00, // LD IX,0000H
		0xcb, 0x00, // RLC B
		0xdd, 0xcb, 0x00, 0x06, // RLC (IX+00H)
	)

	mc.Step()
	test.ExpectEquality(t, mc.R(), uint8(0x81))
	mc.Step()
	test.ExpectEquality(t, mc.R(), uint8(0x83))
	mc.Step()
	test.ExpectEquality(t, mc.R(), uint8(0x85))
	mc.Step()
	test.ExpectEquality(t, mc.R(), uint8(0x87))

	// the displacement and opcode of the DDCB instructions are not M1 reads
	test.ExpectEquality(t, mem.m1Reads, 7)

	// the low seven bits wrap without changing bit 7
	mc.SetR(0xff)
	mem.putInstructions(mc.PC, 0x00)
	mc.Step()
	test.ExpectEquality(t, mc.R(), uint8(0x80))
}

func TestStack(t *testing.T) {
	mc, mem, _ := newCPU()

	mem.putInstructions(0x0000,
		0xcd, 0x00, 0x10, // CALL 1000H
		0x76, // HALT
	)
	mem.putInstructions(0x1000,
		0xc5, // PUSH BC
		0xd1, // POP DE
		0xc9, // RET
	)

	mc.SetBC(0xbeef)
	test.ExpectEquality(t, mc.Step(), 17)
	test.ExpectEquality(t, mc.PC, uint16(0x1000))
	test.ExpectEquality(t, mc.SP, uint16(0xffee))
	test.ExpectEquality(t, mem.internal[0xffee], uint8(0x03))
	test.ExpectEquality(t, mem.internal[0xffef], uint8(0x00))

	test.ExpectEquality(t, mc.Step(), 11)
	test.ExpectEquality(t, mc.Step(), 10)
	test.ExpectEquality(t, mc.DE(), uint16(0xbeef))
	test.ExpectEquality(t, mc.Step(), 10)
	test.ExpectEquality(t, mc.PC, uint16(0x0003))
	test.ExpectEquality(t, mc.SP, uint16(0xfff0))
}

func TestConditionalBranches(t *testing.T) {
	mc, mem, _ := newCPU()

	mem.putInstructions(0x0000,
		0xaf,       // XOR A
		0x20, 0x10, // JR NZ,+10H
		0x28, 0x02, // JR Z,+02H
		0x00, 0x00,
		0x06, 0x03, // LD B,03H
		0x10, 0xfe, // DJNZ -02H
		0xc2, 0x00, 0x20, // JP NZ,2000H
		0xca, 0x00, 0x30, // JP Z,3000H
	)

	mc.Step()
	test.ExpectEquality(t, mc.Step(), 7)
	test.ExpectEquality(t, mc.PC, uint16(0x0003))
	test.ExpectEquality(t, mc.Step(), 12)
	test.ExpectEquality(t, mc.PC, uint16(0x0007))

	mc.Step()
	test.ExpectEquality(t, mc.Step(), 13)
	test.ExpectEquality(t, mc.Step(), 13)
	test.ExpectEquality(t, mc.Step(), 8)
	test.ExpectEquality(t, mc.B, uint8(0x00))
	test.ExpectEquality(t, mc.PC, uint16(0x000b))

	test.ExpectEquality(t, mc.Step(), 10)
	test.ExpectEquality(t, mc.PC, uint16(0x000e))
	test.ExpectEquality(t, mc.Step(), 10)
	test.ExpectEquality(t, mc.PC, uint16(0x3000))
}

func TestExchange(t *testing.T) {
	mc, mem, _ := newCPU()

	mem.putInstructions(0x0000,
		0x08, // EX AF,AF'
		0xd9, // EXX
		0xeb, // EX DE,HL
		0xe3, // EX (SP),HL
	)

	mc.SetAF(0x1122)
	mc.SetBC(0x3344)
	mc.SetDE(0x5566)
	mc.SetHL(0x7788)
	mc.AltAF = 0xaaaa
	mc.AltBC = 0xbbbb
	mc.AltDE = 0xcccc
	mc.AltHL = 0xdddd

	mc.Step()
	test.ExpectEquality(t, mc.AF(), uint16(0xaaaa))
	test.ExpectEquality(t, mc.AltAF, uint16(0x1122))

	mc.Step()
	test.ExpectEquality(t, mc.BC(), uint16(0xbbbb))
	test.ExpectEquality(t, mc.AltHL, uint16(0x7788))

	mc.Step()
	test.ExpectEquality(t, mc.DE(), uint16(0xdddd))
	test.ExpectEquality(t, mc.HL(), uint16(0xcccc))

	mem.internal[0xfff0] = 0x34
	mem.internal[0xfff1] = 0x12
	test.ExpectEquality(t, mc.Step(), 19)
	test.ExpectEquality(t, mc.HL(), uint16(0x1234))
	test.ExpectEquality(t, mem.internal[0xfff0], uint8(0xcc))
	test.ExpectEquality(t, mem.internal[0xfff1], uint8(0xcc))
}

func TestPorts(t *testing.T) {
	mc, mem, io := newCPU()

	mem.putInstructions(0x0000,
		0x3e, 0x12, // LD A,12H
		0xd3, 0x80, // OUT (80H),A
		0xdb, 0x84, // IN A,(84H)
		0x01, 0x88, 0x00, // LD BC,0088H
		0xed, 0x50, // IN D,(C)
		0xed, 0x79, // OUT (C),A
	)

	io.input = 0x00
	mc.Step()
	test.ExpectEquality(t, mc.Step(), 11)
	test.ExpectEquality(t, mc.Step(), 11)
	mc.Step()

	io.input = 0x80
	test.ExpectEquality(t, mc.Step(), 12)
	test.ExpectEquality(t, mc.D, uint8(0x80))
	test.ExpectEquality(t, mc.Status.Sign, true)
	test.ExpectEquality(t, mc.Status.Zero, false)
	test.ExpectEquality(t, mc.Status.ParityOverflow, false)
	mc.Step()

	test.DemandEquality(t, len(io.accesses), 4)
	test.ExpectEquality(t, io.accesses[0], portAccess{port: 0x1280, data: 0x12, write: true})
	test.ExpectEquality(t, io.accesses[1], portAccess{port: 0x1284, data: 0x00})
	test.ExpectEquality(t, io.accesses[2], portAccess{port: 0x0088, data: 0x80})
	test.ExpectEquality(t, io.accesses[3], portAccess{port: 0x0088, data: 0x00, write: true})
}

func TestBlockTransfer(t *testing.T) {
	mc, mem, _ := newCPU()

	mem.putInstructions(0x4000, 0x01, 0x02, 0x03)
	mem.putInstructions(0x0000,
		0x21, 0x00, 0x40, // LD HL,4000H
		0x11, 0x00, 0x50, // LD DE,5000H
		0x01, 0x03, 0x00, // LD BC,0003H
		0xed, 0xb0, // LDIR
	)

	mc.Step()
	mc.Step()
	mc.Step()

	test.ExpectEquality(t, mc.Step(), 21)
	test.ExpectEquality(t, mc.PC, uint16(0x0009))
	test.ExpectEquality(t, mc.Step(), 21)
	test.ExpectEquality(t, mc.Step(), 16)
	test.ExpectEquality(t, mc.PC, uint16(0x000b))

	test.ExpectEquality(t, mc.BC(), uint16(0x0000))
	test.ExpectEquality(t, mc.HL(), uint16(0x4003))
	test.ExpectEquality(t, mc.DE(), uint16(0x5003))
	test.ExpectEquality(t, mc.Status.ParityOverflow, false)
	test.ExpectEquality(t, mem.internal[0x5000], uint8(0x01))
	test.ExpectEquality(t, mem.internal[0x5002], uint8(0x03))
}

func TestCPIR(t *testing.T) {
	mc, mem, _ := newCPU()

	mem.putInstructions(0x4000, 0x01, 0x02, 0x03, 0x04)
	mem.putInstructions(0x0000, 0xed, 0xb1) // CPIR

	// not found
	mc.SetHL(0x4000)
	mc.SetBC(0x0003)
	mc.A = 0x09
	test.ExpectEquality(t, mc.Step(), 21)
	test.ExpectEquality(t, mc.PC, uint16(0x0000))
	test.ExpectEquality(t, mc.Step(), 21)
	test.ExpectEquality(t, mc.Step(), 16)
	test.ExpectEquality(t, mc.PC, uint16(0x0002))
	test.ExpectEquality(t, mc.BC(), uint16(0x0000))
	test.ExpectEquality(t, mc.Status.ParityOverflow, false)
	test.ExpectEquality(t, mc.Status.Zero, false)

	// found on the second iteration
	mc.PC = 0x0000
	mc.SetHL(0x4000)
	mc.SetBC(0x0003)
	mc.A = 0x02
	test.ExpectEquality(t, mc.Step(), 21)
	test.ExpectEquality(t, mc.Step(), 16)
	test.ExpectEquality(t, mc.PC, uint16(0x0002))
	test.ExpectEquality(t, mc.BC(), uint16(0x0001))
	test.ExpectEquality(t, mc.HL(), uint16(0x4002))
	test.ExpectEquality(t, mc.Status.Zero, true)
	test.ExpectEquality(t, mc.Status.ParityOverflow, true)
}

func TestBlockOutput(t *testing.T) {
	mc, mem, io := newCPU()

	mem.putInstructions(0x4000, 0xaa, 0xbb)
	mem.putInstructions(0x0000, 0xed, 0xb3) // OTIR

	mc.SetHL(0x4000)
	mc.SetBC(0x0280)
	mc.Step()
	mc.Step()
	test.ExpectEquality(t, mc.PC, uint16(0x0002))
	test.ExpectEquality(t, mc.B, uint8(0x00))
	test.ExpectEquality(t, mc.Status.Zero, true)

	// B is decremented before the port is written
	test.DemandEquality(t, len(io.accesses), 2)
	test.ExpectEquality(t, io.accesses[0], portAccess{port: 0x0180, data: 0xaa, write: true})
	test.ExpectEquality(t, io.accesses[1], portAccess{port: 0x0080, data: 0xbb, write: true})
}

func TestCalcTStatesDiff(t *testing.T) {
	test.ExpectEquality(t, cpu.CalcTStatesDiff(100, 250), int64(150))
	test.ExpectEquality(t, cpu.CalcTStatesDiff(100, 100), int64(0))
	test.ExpectEquality(t, cpu.CalcTStatesDiff(cpu.TStatesWrap-10, 5), int64(15))
}

func TestWaitStates(t *testing.T) {
	mc, _, _ := newCPU()

	// NOP
	mc.AddWaitStates(3)
	test.ExpectEquality(t, mc.Step(), 7)
	test.ExpectEquality(t, mc.Step(), 4)
}

type slowMemory struct{}

func (slowMemory) InstructionProcessed(mc *cpu.CPU, pc uint16, cycles int) int {
	if pc >= 0x8000 {
		return cycles * 2
	}
	return cycles
}

func TestCycleManager(t *testing.T) {
	mc, _, _ := newCPU()
	mc.SetCycleManager(slowMemory{})

	test.ExpectEquality(t, mc.Step(), 4)
	mc.PC = 0x8000
	test.ExpectEquality(t, mc.Step(), 8)

	mc.SetCycleManager(nil)
	test.ExpectEquality(t, mc.Step(), 4)
}

func TestFault(t *testing.T) {
	mc, _, _ := newCPU()

	defer func() {
		r := recover()
		f, ok := r.(cpu.Fault)
		test.DemandEquality(t, ok, true)
		test.ExpectEquality(t, f.Prefix, uint8(0xcb))
		test.ExpectEquality(t, f.Opcode, uint8(0x00))
	}()

	mc.Execute(0xcb, 0x00)
}
