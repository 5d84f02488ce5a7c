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

	"github.com/jetsetilly/gopher80/hardware/cpu/registers"
	"github.com/jetsetilly/gopher80/test"
)

const undocumented = registers.Bit5 | registers.Bit3

func TestUndocumentedFlags(t *testing.T) {
	mc, _, _ := newCPU()

	for op := range uint8(8) {
		for a := range 256 {
			for b := range 256 {
				mc.A = uint8(a)
				mc.B = uint8(b)
				mc.Status.Carry = (a+b)&0x01 == 0x01

				// ALU A,B
				mc.Execute(0x00, 0x80|op<<3)

				expected := mc.A
				if op == 7 {
					// CP takes the undocumented bits from the operand
					expected = uint8(b)
				}

				if mc.F()&undocumented != expected&undocumented {
					t.Fatalf("op %d: a=%02x b=%02x: flags %s", op, a, b, mc.Status)
				}
			}
		}
	}
}

func TestBitUndocumentedFlags(t *testing.T) {
	mc, mem, _ := newCPU()

	for b := range uint8(8) {
		for v := range 256 {
			mc.PC = 0x0000
			mc.B = uint8(v)

			// BIT b,B
			mem.putInstructions(0x0000, 0x40|b<<3)
			mc.Execute(0x00, 0xcb)

			if mc.F()&undocumented != uint8(v)&undocumented {
				t.Fatalf("bit %d: v=%02x: flags %s", b, v, mc.Status)
			}
			test.ExpectEquality(t, mc.Status.Zero, uint8(v)&(0x01<<b) == 0)
		}
	}
}

func TestArithmeticFlags(t *testing.T) {
	mc, _, _ := newCPU()

	// ADD A,B
	mc.A = 0x7f
	mc.B = 0x01
	mc.Execute(0x00, 0x80)
	test.ExpectEquality(t, mc.A, uint8(0x80))
	test.ExpectEquality(t, mc.Status.String(), "SzyHxPnc")

	// SUB B
	mc.A = 0x80
	mc.B = 0x01
	mc.Execute(0x00, 0x90)
	test.ExpectEquality(t, mc.A, uint8(0x7f))
	test.ExpectEquality(t, mc.Status.String(), "szYHXPNc")

	// CP B
	mc.A = 0x10
	mc.B = 0x20
	mc.Execute(0x00, 0xb8)
	test.ExpectEquality(t, mc.A, uint8(0x10))
	test.ExpectEquality(t, mc.Status.String(), "SzYhxpNC")

	// AND B
	mc.A = 0xf0
	mc.B = 0x0f
	mc.Execute(0x00, 0xa0)
	test.ExpectEquality(t, mc.Status.String(), "sZyHxPnc")

	// INC A does not change the carry flag
	mc.A = 0xff
	mc.Status.Carry = true
	mc.Execute(0x00, 0x3c)
	test.ExpectEquality(t, mc.A, uint8(0x00))
	test.ExpectEquality(t, mc.Status.String(), "sZyHxpnC")

	// DEC A
	mc.A = 0x80
	mc.Execute(0x00, 0x3d)
	test.ExpectEquality(t, mc.A, uint8(0x7f))
	test.ExpectEquality(t, mc.Status.String(), "szYHXPNC")
}

func TestArithmetic16(t *testing.T) {
	mc, mem, _ := newCPU()

	// ADD HL,BC does not change the sign, zero or parity flags
	mc.SetHL(0x0fff)
	mc.SetBC(0x0001)
	mc.Status.Load(0x00)
	mc.Status.Zero = true
	mc.Execute(0x00, 0x09)
	test.ExpectEquality(t, mc.HL(), uint16(0x1000))
	test.ExpectEquality(t, mc.Status.HalfCarry, true)
	test.ExpectEquality(t, mc.Status.Zero, true)
	test.ExpectEquality(t, mc.Status.Carry, false)

	// SBC HL,DE
	mem.putInstructions(0x0000, 0xed, 0x52)
	mc.PC = 0x0000
	mc.SetHL(0x8000)
	mc.SetDE(0x0001)
	mc.Status.Carry = false
	mc.Step()
	test.ExpectEquality(t, mc.HL(), uint16(0x7fff))
	test.ExpectEquality(t, mc.Status.ParityOverflow, true)
	test.ExpectEquality(t, mc.Status.Subtract, true)
	test.ExpectEquality(t, mc.Status.Sign, false)

	// ADC HL,HL
	mem.putInstructions(0x0000, 0xed, 0x6a)
	mc.PC = 0x0000
	mc.SetHL(0x8000)
	mc.Status.Carry = true
	mc.Step()
	test.ExpectEquality(t, mc.HL(), uint16(0x0001))
	test.ExpectEquality(t, mc.Status.Carry, true)
	test.ExpectEquality(t, mc.Status.ParityOverflow, true)
	test.ExpectEquality(t, mc.Status.Zero, false)
}

func bcd(v int) uint8 {
	return uint8(v/10<<4 | v%10)
}

// the decimal adjustment of every BCD addition and subtraction produces the
// correct BCD result and carry.
func TestDAAArithmetic(t *testing.T) {
	mc, _, _ := newCPU()

	for a := range 100 {
		for b := range 100 {
			// ADD A,B; DAA
			mc.A = bcd(a)
			mc.B = bcd(b)
			mc.Execute(0x00, 0x80)
			mc.Execute(0x00, 0x27)
			if mc.A != bcd((a+b)%100) || mc.Status.Carry != (a+b > 99) {
				t.Fatalf("%d + %d: %02x %s", a, b, mc.A, mc.Status)
			}

			// SUB B; DAA
			mc.A = bcd(a)
			mc.B = bcd(b)
			mc.Execute(0x00, 0x90)
			mc.Execute(0x00, 0x27)
			if mc.A != bcd((a-b+100)%100) || mc.Status.Carry != (a < b) {
				t.Fatalf("%d - %d: %02x %s", a, b, mc.A, mc.Status)
			}
		}
	}
}

// rows of the decimal adjust table from the Z80 user manual
var daaTable = []struct {
	n, c, h      bool
	hiMin, hiMax uint8
	loMin, loMax uint8
	adjust       uint8
	carry        bool
}{
	{false, false, false, 0x0, 0x9, 0x0, 0x9, 0x00, false},
	{false, false, false, 0x0, 0x8, 0xa, 0xf, 0x06, false},
	{false, false, true, 0x0, 0x9, 0x0, 0x3, 0x06, false},
	{false, false, false, 0xa, 0xf, 0x0, 0x9, 0x60, true},
	{false, false, false, 0x9, 0xf, 0xa, 0xf, 0x66, true},
	{false, false, true, 0xa, 0xf, 0x0, 0x3, 0x66, true},
	{false, true, false, 0x0, 0x2, 0x0, 0x9, 0x60, true},
	{false, true, false, 0x0, 0x2, 0xa, 0xf, 0x66, true},
	{false, true, true, 0x0, 0x3, 0x0, 0x3, 0x66, true},
	{true, false, false, 0x0, 0x9, 0x0, 0x9, 0x00, false},
	{true, false, true, 0x0, 0x8, 0x6, 0xf, 0xfa, false},
	{true, true, false, 0x7, 0xf, 0x0, 0x9, 0xa0, true},
	{true, true, true, 0x6, 0xf, 0x6, 0xf, 0x9a, true},
}

func TestDAATable(t *testing.T) {
	mc, _, _ := newCPU()

	for _, row := range daaTable {
		for hi := row.hiMin; hi <= row.hiMax; hi++ {
			for lo := row.loMin; lo <= row.loMax; lo++ {
				a := hi<<4 | lo
				mc.A = a
				mc.Status.Subtract = row.n
				mc.Status.Carry = row.c
				mc.Status.HalfCarry = row.h
				mc.Execute(0x00, 0x27)

				test.ExpectEquality(t, mc.A, a+row.adjust, row, a)
				test.ExpectEquality(t, mc.Status.Carry, row.carry, row, a)
				test.ExpectEquality(t, mc.Status.Subtract, row.n, row, a)
				test.ExpectEquality(t, mc.Status.Zero, mc.A == 0, row, a)
				test.ExpectEquality(t, mc.Status.ParityOverflow, registers.Parity[mc.A], row, a)
			}
		}
	}
}

func TestRotations(t *testing.T) {
	mc, mem, _ := newCPU()

	// RLCA
	mc.A = 0x81
	mc.Execute(0x00, 0x07)
	test.ExpectEquality(t, mc.A, uint8(0x03))
	test.ExpectEquality(t, mc.Status.Carry, true)

	// RRA
	mc.A = 0x01
	mc.Status.Carry = false
	mc.Execute(0x00, 0x1f)
	test.ExpectEquality(t, mc.A, uint8(0x00))
	test.ExpectEquality(t, mc.Status.Carry, true)

	// RRA does not change the zero flag
	test.ExpectEquality(t, mc.Status.Zero, false)

	// SRA B
	mem.putInstructions(0x0000, 0x28)
	mc.PC = 0x0000
	mc.B = 0x81
	mc.Execute(0x00, 0xcb)
	test.ExpectEquality(t, mc.B, uint8(0xc0))
	test.ExpectEquality(t, mc.Status.Carry, true)
	test.ExpectEquality(t, mc.Status.ParityOverflow, true)

	// SLL C
	mem.putInstructions(0x0000, 0x31)
	mc.PC = 0x0000
	mc.C = 0x00
	mc.Execute(0x00, 0xcb)
	test.ExpectEquality(t, mc.C, uint8(0x01))

	// RLD
	mem.putInstructions(0x0000, 0x6f)
	mem.internal[0x5000] = 0x34
	mc.PC = 0x0000
	mc.SetHL(0x5000)
	mc.A = 0x12
	mc.Execute(0x00, 0xed)
	test.ExpectEquality(t, mc.A, uint8(0x13))
	test.ExpectEquality(t, mem.internal[0x5000], uint8(0x42))
}
