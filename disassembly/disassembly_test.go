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

package disassembly_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/disassembly"
	"github.com/jetsetilly/gopher80/test"
)

func TestMnemonics(t *testing.T) {
	tests := []struct {
		code     []uint8
		mnemonic string
		length   int
	}{
		{[]uint8{0x00}, "NOP", 1},
		{[]uint8{0x01, 0x34, 0x12}, "LD BC,1234H", 3},
		{[]uint8{0x21, 0x00, 0xc0}, "LD HL,0C000H", 3},
		{[]uint8{0x32, 0x00, 0x80}, "LD (8000H),A", 3},
		{[]uint8{0x3a, 0x00, 0x80}, "LD A,(8000H)", 3},
		{[]uint8{0x08}, "EX AF,AF'", 1},
		{[]uint8{0x10, 0xfe}, "DJNZ 0000H", 2},
		{[]uint8{0x18, 0x02}, "JR 0004H", 2},
		{[]uint8{0x38, 0x00}, "JR C,0002H", 2},
		{[]uint8{0x36, 0xaa}, "LD (HL),0AAH", 2},
		{[]uint8{0x76}, "HALT", 1},
		{[]uint8{0x78}, "LD A,B", 1},
		{[]uint8{0x86}, "ADD A,(HL)", 1},
		{[]uint8{0x90}, "SUB B", 1},
		{[]uint8{0xfe, 0x10}, "CP 10H", 2},
		{[]uint8{0xc9}, "RET", 1},
		{[]uint8{0xd8}, "RET C", 1},
		{[]uint8{0xf5}, "PUSH AF", 1},
		{[]uint8{0xcd, 0x00, 0x10}, "CALL 1000H", 3},
		{[]uint8{0xe4, 0x00, 0x10}, "CALL PO,1000H", 3},
		{[]uint8{0xff}, "RST 38H", 1},
		{[]uint8{0xd3, 0x80}, "OUT (80H),A", 2},
		{[]uint8{0xdb, 0x84}, "IN A,(84H)", 2},
		{[]uint8{0x27}, "DAA", 1},

		// CB prefix
		{[]uint8{0xcb, 0x00}, "RLC B", 2},
		{[]uint8{0xcb, 0x7e}, "BIT 7,(HL)", 2},
		{[]uint8{0xcb, 0xc7}, "SET 0,A", 2},
		{[]uint8{0xcb, 0x37}, "*SLL A", 2},

		// ED prefix
		{[]uint8{0xed, 0xb0}, "LDIR", 2},
		{[]uint8{0xed, 0xb1}, "CPIR", 2},
		{[]uint8{0xed, 0x4d}, "RETI", 2},
		{[]uint8{0xed, 0x5e}, "IM 2", 2},
		{[]uint8{0xed, 0x78}, "IN A,(C)", 2},
		{[]uint8{0xed, 0x70}, "*IN F,(C)", 2},
		{[]uint8{0xed, 0x43, 0x00, 0x90}, "LD (9000H),BC", 4},
		{[]uint8{0xed, 0x4c}, "*NEG", 2},
		{[]uint8{0xed, 0x00}, "*NOP", 2},

		// index prefixes
		{[]uint8{0xdd, 0x21, 0x00, 0x40}, "LD IX,4000H", 4},
		{[]uint8{0xdd, 0x7e, 0x05}, "LD A,(IX+05H)", 3},
		{[]uint8{0xfd, 0x66, 0xfd}, "LD H,(IY-03H)", 3},
		{[]uint8{0xdd, 0x36, 0x02, 0x99}, "LD (IX+02H),99H", 4},
		{[]uint8{0xdd, 0x7c}, "*LD A,IXH", 2},
		{[]uint8{0xfd, 0xe9}, "JP (IY)", 2},
		{[]uint8{0xdd, 0xeb}, "*EX DE,HL", 2},
		{[]uint8{0xdd, 0x00}, "*NOP", 2},
		{[]uint8{0xdd, 0xdd}, "*NOP", 1},
		{[]uint8{0xdd, 0xcb, 0x01, 0x46}, "BIT 0,(IX+01H)", 4},
		{[]uint8{0xfd, 0xcb, 0xff, 0xfe}, "SET 7,(IY-01H)", 4},
		{[]uint8{0xdd, 0xcb, 0x00, 0x00}, "*RLC (IX+00H),B", 4},
	}

	for _, tt := range tests {
		e := disassembly.Disassemble(disassembly.Bytes(append(tt.code, make([]uint8, 16)...)), 0x0000)
		test.ExpectEquality(t, e.Mnemonic(), tt.mnemonic, tt.code)
		test.ExpectEquality(t, len(e.Bytes), tt.length, tt.code)
	}
}

func TestEntry(t *testing.T) {
	mem := disassembly.Bytes{0x00, 0x00, 0xdd, 0x7e, 0x05}
	e := disassembly.Disassemble(mem, 0x0002)
	test.ExpectEquality(t, e.Address, uint16(0x0002))
	test.ExpectEquality(t, e.Next(), uint16(0x0005))
	test.ExpectEquality(t, e.Bytecode(), "DD 7E 05")
	test.ExpectEquality(t, e.Operator, "LD")
	test.ExpectEquality(t, e.Operand, "A,(IX+05H)")
	test.ExpectEquality(t, e.Undocumented, false)
	test.ExpectEquality(t, e.String(), "0002  DD 7E 05     LD A,(IX+05H)")
}

func TestListing(t *testing.T) {
	mem := disassembly.Bytes{0x3e, 0x01, 0xc6, 0x02, 0x76}
	l := disassembly.Listing(mem, 0x0000, 3)
	test.DemandEquality(t, len(l), 3)
	test.ExpectEquality(t, l[0].Mnemonic(), "LD A,01H")
	test.ExpectEquality(t, l[1].Mnemonic(), "ADD A,02H")
	test.ExpectEquality(t, l[2].Mnemonic(), "HALT")
	test.ExpectEquality(t, l[2].Address, uint16(0x0004))
}

func TestWrite(t *testing.T) {
	mem := disassembly.Bytes{0x3e, 0x01, 0xc6, 0x02, 0x76, 0x00, 0x00, 0x00}
	w := &test.CompareWriter{}
	err := disassembly.Write(w, mem, 0x0000, 0x0004)
	test.ExpectSuccess(t, err)

	lines := w.Lines()
	test.DemandEquality(t, len(lines), 3)
	test.ExpectEquality(t, lines[0], "0000  3E 01        LD A,01H")
	test.ExpectEquality(t, lines[2], "0004  76           HALT")
}
