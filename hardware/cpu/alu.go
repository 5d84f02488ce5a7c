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
	"github.com/jetsetilly/gopher80/hardware/cpu/registers"
)

// setLogical sets the flags common to the AND, OR and XOR instructions.
func (mc *CPU) setLogical(r uint8, halfCarry bool) {
	mc.Status.SetSignZero(r)
	mc.Status.SetUndocumented(r)
	mc.Status.HalfCarry = halfCarry
	mc.Status.ParityOverflow = registers.Parity[r]
	mc.Status.Subtract = false
	mc.Status.Carry = false
}

func (mc *CPU) add8(v uint8, withCarry bool) {
	var c uint16
	if withCarry && mc.Status.Carry {
		c = 1
	}

	a := uint16(mc.A)
	r := a + uint16(v) + c
	m := a ^ uint16(v) ^ r

	mc.A = uint8(r)
	mc.Status.SetSignZero(mc.A)
	mc.Status.SetUndocumented(mc.A)
	mc.Status.HalfCarry = m&0x10 != 0
	mc.Status.ParityOverflow = ((m>>1)^m)&0x80 != 0
	mc.Status.Subtract = false
	mc.Status.Carry = m&0x100 != 0
}

// sub8 subtracts v from the accumulator. the result is discarded if store is
// false, which is how the CP instruction works.
func (mc *CPU) sub8(v uint8, withCarry bool, store bool) {
	var c uint16
	if withCarry && mc.Status.Carry {
		c = 1
	}

	a := uint16(mc.A)
	r := a - uint16(v) - c
	m := a ^ uint16(v) ^ r

	mc.Status.SetSignZero(uint8(r))
	mc.Status.HalfCarry = m&0x10 != 0
	mc.Status.ParityOverflow = ((m>>1)^m)&0x80 != 0
	mc.Status.Subtract = true
	mc.Status.Carry = m&0x100 != 0

	if store {
		mc.A = uint8(r)
		mc.Status.SetUndocumented(mc.A)
	} else {
		// CP takes the undocumented flags from the operand
		mc.Status.SetUndocumented(v)
	}
}

func (mc *CPU) and8(v uint8) {
	mc.A &= v
	mc.setLogical(mc.A, true)
}

func (mc *CPU) or8(v uint8) {
	mc.A |= v
	mc.setLogical(mc.A, false)
}

func (mc *CPU) xor8(v uint8) {
	mc.A ^= v
	mc.setLogical(mc.A, false)
}

// alu performs one of the eight accumulator operations selected by bits 3 to
// 5 of the opcode.
func (mc *CPU) alu(op uint8, v uint8) {
	switch op & 0x07 {
	case 0:
		mc.add8(v, false)
	case 1:
		mc.add8(v, true)
	case 2:
		mc.sub8(v, false, true)
	case 3:
		mc.sub8(v, true, true)
	case 4:
		mc.and8(v)
	case 5:
		mc.xor8(v)
	case 6:
		mc.or8(v)
	case 7:
		mc.sub8(v, false, false)
	}
}

func (mc *CPU) inc8(v uint8) uint8 {
	r := v + 1
	mc.Status.SetSignZero(r)
	mc.Status.SetUndocumented(r)
	mc.Status.HalfCarry = v&0x0f == 0x0f
	mc.Status.ParityOverflow = v == 0x7f
	mc.Status.Subtract = false
	return r
}

func (mc *CPU) dec8(v uint8) uint8 {
	r := v - 1
	mc.Status.SetSignZero(r)
	mc.Status.SetUndocumented(r)
	mc.Status.HalfCarry = v&0x0f == 0x00
	mc.Status.ParityOverflow = v == 0x80
	mc.Status.Subtract = true
	return r
}

// add16 is used by the ADD HL/IX/IY instructions. the sign, zero and
// parity flags are not affected.
func (mc *CPU) add16(a uint16, b uint16) uint16 {
	r := uint32(a) + uint32(b)
	m := uint32(a) ^ uint32(b) ^ r

	mc.Status.SetUndocumented(uint8(r >> 8))
	mc.Status.HalfCarry = m&0x1000 != 0
	mc.Status.Subtract = false
	mc.Status.Carry = r&0x10000 != 0

	return uint16(r)
}

func (mc *CPU) adc16(v uint16) {
	var c uint32
	if mc.Status.Carry {
		c = 1
	}

	a := uint32(mc.HL())
	r := a + uint32(v) + c
	m := a ^ uint32(v) ^ r
	mc.SetHL(uint16(r))

	mc.Status.Sign = r&0x8000 != 0
	mc.Status.Zero = r&0xffff == 0
	mc.Status.SetUndocumented(uint8(r >> 8))
	mc.Status.HalfCarry = m&0x1000 != 0
	mc.Status.ParityOverflow = ((m>>1)^m)&0x8000 != 0
	mc.Status.Subtract = false
	mc.Status.Carry = m&0x10000 != 0
}

func (mc *CPU) sbc16(v uint16) {
	var c uint32
	if mc.Status.Carry {
		c = 1
	}

	a := uint32(mc.HL())
	r := a - uint32(v) - c
	m := a ^ uint32(v) ^ r
	mc.SetHL(uint16(r))

	mc.Status.Sign = r&0x8000 != 0
	mc.Status.Zero = r&0xffff == 0
	mc.Status.SetUndocumented(uint8(r >> 8))
	mc.Status.HalfCarry = m&0x1000 != 0
	mc.Status.ParityOverflow = ((m>>1)^m)&0x8000 != 0
	mc.Status.Subtract = true
	mc.Status.Carry = m&0x10000 != 0
}

func (mc *CPU) daa() {
	a := mc.A
	lo := a & 0x0f

	var diff uint8
	carry := mc.Status.Carry
	if carry || a > 0x99 {
		diff |= 0x60
		carry = true
	}
	if mc.Status.HalfCarry || lo > 9 {
		diff |= 0x06
	}

	if mc.Status.Subtract {
		mc.Status.HalfCarry = mc.Status.HalfCarry && lo < 6
		mc.A = a - diff
	} else {
		mc.Status.HalfCarry = lo > 9
		mc.A = a + diff
	}

	mc.Status.Carry = carry
	mc.Status.SetSignZero(mc.A)
	mc.Status.SetUndocumented(mc.A)
	mc.Status.ParityOverflow = registers.Parity[mc.A]
}

func (mc *CPU) neg() {
	v := mc.A
	mc.A = 0
	mc.sub8(v, false, true)
}

func (mc *CPU) cpl() {
	mc.A = ^mc.A
	mc.Status.SetUndocumented(mc.A)
	mc.Status.HalfCarry = true
	mc.Status.Subtract = true
}

func (mc *CPU) scf() {
	mc.Status.SetUndocumented(mc.A)
	mc.Status.HalfCarry = false
	mc.Status.Subtract = false
	mc.Status.Carry = true
}

func (mc *CPU) ccf() {
	mc.Status.SetUndocumented(mc.A)
	mc.Status.HalfCarry = mc.Status.Carry
	mc.Status.Subtract = false
	mc.Status.Carry = !mc.Status.Carry
}

// accumulator rotations. unlike the CB prefixed rotations the sign, zero and
// parity flags are unaffected.
func (mc *CPU) rotateA(op uint8) {
	a := mc.A
	switch op & 0x03 {
	case 0: // RLCA
		mc.A = a<<1 | a>>7
		mc.Status.Carry = a&0x80 != 0
	case 1: // RRCA
		mc.A = a>>1 | a<<7
		mc.Status.Carry = a&0x01 != 0
	case 2: // RLA
		mc.A = a << 1
		if mc.Status.Carry {
			mc.A |= 0x01
		}
		mc.Status.Carry = a&0x80 != 0
	case 3: // RRA
		mc.A = a >> 1
		if mc.Status.Carry {
			mc.A |= 0x80
		}
		mc.Status.Carry = a&0x01 != 0
	}
	mc.Status.SetUndocumented(mc.A)
	mc.Status.HalfCarry = false
	mc.Status.Subtract = false
}

// shift performs one of the eight rotate and shift operations of the CB
// prefixed instructions, selected by bits 3 to 5 of the opcode.
func (mc *CPU) shift(op uint8, v uint8) uint8 {
	var r uint8
	var carry bool

	switch op & 0x07 {
	case 0: // RLC
		r = v<<1 | v>>7
		carry = v&0x80 != 0
	case 1: // RRC
		r = v>>1 | v<<7
		carry = v&0x01 != 0
	case 2: // RL
		r = v << 1
		if mc.Status.Carry {
			r |= 0x01
		}
		carry = v&0x80 != 0
	case 3: // RR
		r = v >> 1
		if mc.Status.Carry {
			r |= 0x80
		}
		carry = v&0x01 != 0
	case 4: // SLA
		r = v << 1
		carry = v&0x80 != 0
	case 5: // SRA
		r = v>>1 | v&0x80
		carry = v&0x01 != 0
	case 6: // SLL (undocumented)
		r = v<<1 | 0x01
		carry = v&0x80 != 0
	case 7: // SRL
		r = v >> 1
		carry = v&0x01 != 0
	}

	mc.Status.SetSignZero(r)
	mc.Status.SetUndocumented(r)
	mc.Status.HalfCarry = false
	mc.Status.ParityOverflow = registers.Parity[r]
	mc.Status.Subtract = false
	mc.Status.Carry = carry

	return r
}

// bit tests bit b of v. the undocumented flags are taken from v for register
// operands and are cleared for memory operands.
func (mc *CPU) bit(b uint8, v uint8, memory bool) {
	set := v&(0x01<<(b&0x07)) != 0
	mc.Status.Zero = !set
	mc.Status.Sign = b&0x07 == 7 && set
	mc.Status.HalfCarry = true
	mc.Status.ParityOverflow = !set
	mc.Status.Subtract = false
	if memory {
		mc.Status.SetUndocumented(0)
	} else {
		mc.Status.SetUndocumented(v)
	}
}

// setInFlags sets the flags after an IN r,(C) instruction.
func (mc *CPU) setInFlags(v uint8) {
	mc.Status.SetSignZero(v)
	mc.Status.SetUndocumented(v)
	mc.Status.HalfCarry = false
	mc.Status.ParityOverflow = registers.Parity[v]
	mc.Status.Subtract = false
}
