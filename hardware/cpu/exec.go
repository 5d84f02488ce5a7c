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

// index selects the register that replaces HL for instructions that follow a
// DD or FD prefix.
type index int

const (
	noIndex index = iota
	indexIX
	indexIY
)

func (idx index) prefix() uint8 {
	switch idx {
	case indexIX:
		return 0xdd
	case indexIY:
		return 0xfd
	}
	return 0x00
}

// hl returns HL, IX or IY depending on the index context.
func (mc *CPU) hl(idx index) uint16 {
	switch idx {
	case indexIX:
		return mc.IX
	case indexIY:
		return mc.IY
	}
	return mc.HL()
}

func (mc *CPU) setHLIdx(idx index, v uint16) {
	switch idx {
	case indexIX:
		mc.IX = v
	case indexIY:
		mc.IY = v
	default:
		mc.SetHL(v)
	}
}

// memoryOperand returns the address of the (HL) operand. for indexed
// instructions the displacement byte is fetched and added to the index
// register.
func (mc *CPU) memoryOperand(idx index) uint16 {
	if idx == noIndex {
		return mc.HL()
	}
	return mc.hl(idx) + mc.fetchDisplacement()
}

// reg8 returns the value of the register with the three bit code r. code 6
// is the memory operand and is not handled by this function.
func (mc *CPU) reg8(idx index, r uint8) uint8 {
	switch r {
	case 0:
		return mc.B
	case 1:
		return mc.C
	case 2:
		return mc.D
	case 3:
		return mc.E
	case 4:
		return uint8(mc.hl(idx) >> 8)
	case 5:
		return uint8(mc.hl(idx))
	case 7:
		return mc.A
	}
	panic(Fault{PC: mc.instBegPC, Prefix: idx.prefix(), Opcode: r})
}

func (mc *CPU) setReg8(idx index, r uint8, v uint8) {
	switch r {
	case 0:
		mc.B = v
	case 1:
		mc.C = v
	case 2:
		mc.D = v
	case 3:
		mc.E = v
	case 4:
		mc.setHLIdx(idx, uint16(v)<<8|mc.hl(idx)&0x00ff)
	case 5:
		mc.setHLIdx(idx, mc.hl(idx)&0xff00|uint16(v))
	case 7:
		mc.A = v
	default:
		panic(Fault{PC: mc.instBegPC, Prefix: idx.prefix(), Opcode: r})
	}
}

// rp returns the register pair with the two bit code p. code 3 is SP.
func (mc *CPU) rp(idx index, p uint8) uint16 {
	switch p & 0x03 {
	case 0:
		return mc.BC()
	case 1:
		return mc.DE()
	case 2:
		return mc.hl(idx)
	}
	return mc.SP
}

func (mc *CPU) setRP(idx index, p uint8, v uint16) {
	switch p & 0x03 {
	case 0:
		mc.SetBC(v)
	case 1:
		mc.SetDE(v)
	case 2:
		mc.setHLIdx(idx, v)
	default:
		mc.SP = v
	}
}

// rp2 is the same as rp except that code 3 is AF. used by PUSH and POP.
func (mc *CPU) rp2(idx index, p uint8) uint16 {
	if p&0x03 == 3 {
		return mc.AF()
	}
	return mc.rp(idx, p)
}

func (mc *CPU) setRP2(idx index, p uint8, v uint16) {
	if p&0x03 == 3 {
		mc.SetAF(v)
		return
	}
	mc.setRP(idx, p, v)
}

// condition tests one of the eight branch conditions.
func (mc *CPU) condition(y uint8) bool {
	switch y & 0x07 {
	case 0:
		return !mc.Status.Zero
	case 1:
		return mc.Status.Zero
	case 2:
		return !mc.Status.Carry
	case 3:
		return mc.Status.Carry
	case 4:
		return !mc.Status.ParityOverflow
	case 5:
		return mc.Status.ParityOverflow
	case 6:
		return !mc.Status.Sign
	}
	return mc.Status.Sign
}

// Execute an instruction that has already been fetched. The prefix is either
// zero or one of the index prefixes DD and FD. Any other prefix is a fault.
//
// Execute is the entry point for the interrupt mode 0 sequence, where the
// opcode is supplied by the interrupting device.
func (mc *CPU) Execute(prefix uint8, opcode uint8) {
	switch prefix {
	case 0x00:
		mc.execute(noIndex, opcode)
	case 0xdd:
		mc.execute(indexIX, opcode)
	case 0xfd:
		mc.execute(indexIY, opcode)
	default:
		panic(Fault{PC: mc.instBegPC, Prefix: prefix, Opcode: opcode})
	}
}

func (mc *CPU) execute(idx index, op uint8) {
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	p := y >> 1
	q := y & 0x01

	// extra cycles for instructions that access memory through an index
	// register and displacement
	var indexed int
	if idx != noIndex {
		indexed = 8
	}

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0: // NOP
				mc.instTStates += 4
			case 1: // EX AF,AF'
				af := mc.AF()
				mc.SetAF(mc.AltAF)
				mc.AltAF = af
				mc.instTStates += 4
			case 2: // DJNZ d
				d := mc.fetchDisplacement()
				mc.B--
				if mc.B != 0 {
					mc.PC += d
					mc.instTStates += 13
				} else {
					mc.instTStates += 8
				}
			case 3: // JR d
				d := mc.fetchDisplacement()
				mc.PC += d
				mc.instTStates += 12
			default: // JR cc,d
				d := mc.fetchDisplacement()
				if mc.condition(y - 4) {
					mc.PC += d
					mc.instTStates += 12
				} else {
					mc.instTStates += 7
				}
			}

		case 1:
			if q == 0 { // LD rp,nn
				mc.setRP(idx, p, mc.fetch16())
				mc.instTStates += 10
			} else { // ADD HL,rp
				mc.setHLIdx(idx, mc.add16(mc.hl(idx), mc.rp(idx, p)))
				mc.instTStates += 11
			}

		case 2:
			switch y {
			case 0: // LD (BC),A
				mc.write8(mc.BC(), mc.A)
				mc.instTStates += 7
			case 1: // LD A,(BC)
				mc.A = mc.read8(mc.BC())
				mc.instTStates += 7
			case 2: // LD (DE),A
				mc.write8(mc.DE(), mc.A)
				mc.instTStates += 7
			case 3: // LD A,(DE)
				mc.A = mc.read8(mc.DE())
				mc.instTStates += 7
			case 4: // LD (nn),HL
				mc.write16(mc.fetch16(), mc.hl(idx))
				mc.instTStates += 16
			case 5: // LD HL,(nn)
				mc.setHLIdx(idx, mc.read16(mc.fetch16()))
				mc.instTStates += 16
			case 6: // LD (nn),A
				mc.write8(mc.fetch16(), mc.A)
				mc.instTStates += 13
			case 7: // LD A,(nn)
				mc.A = mc.read8(mc.fetch16())
				mc.instTStates += 13
			}

		case 3:
			if q == 0 { // INC rp
				mc.setRP(idx, p, mc.rp(idx, p)+1)
			} else { // DEC rp
				mc.setRP(idx, p, mc.rp(idx, p)-1)
			}
			mc.instTStates += 6

		case 4, 5:
			f := mc.inc8
			if z == 5 {
				f = mc.dec8
			}
			if y == 6 { // INC (HL) / DEC (HL)
				addr := mc.memoryOperand(idx)
				mc.write8(addr, f(mc.read8(addr)))
				mc.instTStates += 11 + indexed
			} else {
				mc.setReg8(idx, y, f(mc.reg8(idx, y)))
				mc.instTStates += 4
			}

		case 6:
			if y == 6 { // LD (HL),n
				addr := mc.memoryOperand(idx)
				mc.write8(addr, mc.fetch8())
				if idx != noIndex {
					mc.instTStates += 5
				}
				mc.instTStates += 10
			} else { // LD r,n
				mc.setReg8(idx, y, mc.fetch8())
				mc.instTStates += 7
			}

		case 7:
			switch y {
			case 0, 1, 2, 3:
				mc.rotateA(y)
			case 4:
				mc.daa()
			case 5:
				mc.cpl()
			case 6:
				mc.scf()
			case 7:
				mc.ccf()
			}
			mc.instTStates += 4
		}

	case 1:
		switch {
		case y == 6 && z == 6: // HALT
			mc.halting = true
			mc.haltPC = mc.instBegPC
			mc.setHaltState(true)
			mc.instTStates += 4
		case z == 6: // LD r,(HL)
			// the destination is never an index register half
			addr := mc.memoryOperand(idx)
			mc.setReg8(noIndex, y, mc.read8(addr))
			mc.instTStates += 7 + indexed
		case y == 6: // LD (HL),r
			addr := mc.memoryOperand(idx)
			mc.write8(addr, mc.reg8(noIndex, z))
			mc.instTStates += 7 + indexed
		default: // LD r,r'
			mc.setReg8(idx, y, mc.reg8(idx, z))
			mc.instTStates += 4
		}

	case 2:
		if z == 6 { // ALU (HL)
			addr := mc.memoryOperand(idx)
			mc.alu(y, mc.read8(addr))
			mc.instTStates += 7 + indexed
		} else { // ALU r
			mc.alu(y, mc.reg8(idx, z))
			mc.instTStates += 4
		}

	case 3:
		switch z {
		case 0: // RET cc
			if mc.condition(y) {
				mc.PC = mc.Pop()
				mc.instTStates += 11
			} else {
				mc.instTStates += 5
			}

		case 1:
			if q == 0 { // POP rp2
				mc.setRP2(idx, p, mc.Pop())
				mc.instTStates += 10
			} else {
				switch p {
				case 0: // RET
					mc.PC = mc.Pop()
					mc.instTStates += 10
				case 1: // EXX
					bc, de, hl := mc.BC(), mc.DE(), mc.HL()
					mc.SetBC(mc.AltBC)
					mc.SetDE(mc.AltDE)
					mc.SetHL(mc.AltHL)
					mc.AltBC, mc.AltDE, mc.AltHL = bc, de, hl
					mc.instTStates += 4
				case 2: // JP (HL)
					mc.PC = mc.hl(idx)
					mc.instTStates += 4
				case 3: // LD SP,HL
					mc.SP = mc.hl(idx)
					mc.instTStates += 6
				}
			}

		case 2: // JP cc,nn
			nn := mc.fetch16()
			if mc.condition(y) {
				mc.PC = nn
			}
			mc.instTStates += 10

		case 3:
			switch y {
			case 0: // JP nn
				mc.PC = mc.fetch16()
				mc.instTStates += 10
			case 1:
				if idx == noIndex {
					mc.executeCB()
				} else {
					mc.executeIndexCB(idx)
				}
			case 2: // OUT (n),A
				n := mc.fetch8()
				mc.portOut(uint16(mc.A)<<8|uint16(n), mc.A)
				mc.instTStates += 11
			case 3: // IN A,(n)
				n := mc.fetch8()
				mc.A = mc.portIn(uint16(mc.A)<<8 | uint16(n))
				mc.instTStates += 11
			case 4: // EX (SP),HL
				v := mc.read16(mc.SP)
				mc.write16(mc.SP, mc.hl(idx))
				mc.setHLIdx(idx, v)
				mc.instTStates += 19
			case 5: // EX DE,HL
				de := mc.DE()
				mc.SetDE(mc.HL())
				mc.SetHL(de)
				mc.instTStates += 4
			case 6: // DI
				mc.IFF1 = false
				mc.IFF2 = false
				mc.lastWasEIorDI = true
				mc.instTStates += 4
			case 7: // EI
				mc.IFF1 = true
				mc.IFF2 = true
				mc.lastWasEIorDI = true
				mc.instTStates += 4
			}

		case 4: // CALL cc,nn
			nn := mc.fetch16()
			if mc.condition(y) {
				mc.Push(mc.PC)
				mc.PC = nn
				mc.instTStates += 17
			} else {
				mc.instTStates += 10
			}

		case 5:
			if q == 0 { // PUSH rp2
				mc.Push(mc.rp2(idx, p))
				mc.instTStates += 11
			} else {
				switch p {
				case 0: // CALL nn
					nn := mc.fetch16()
					mc.Push(mc.PC)
					mc.PC = nn
					mc.instTStates += 17
				case 1: // DD prefix
					mc.instTStates += 4
					mc.execute(indexIX, mc.fetchOpcode())
				case 2: // ED prefix
					mc.executeED()
				case 3: // FD prefix
					mc.instTStates += 4
					mc.execute(indexIY, mc.fetchOpcode())
				}
			}

		case 6: // ALU n
			mc.alu(y, mc.fetch8())
			mc.instTStates += 7

		case 7: // RST
			mc.Push(mc.PC)
			mc.PC = uint16(y) << 3
			mc.instTStates += 11
		}
	}
}
