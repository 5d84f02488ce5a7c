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

package disassembly

import (
	"fmt"
)

var reg8 = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var reg16 = [4]string{"BC", "DE", "HL", "SP"}
var reg16AF = [4]string{"BC", "DE", "HL", "AF"}
var conditions = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
var aluOps = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
var shiftOps = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
var accumulatorOps = [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}

var blockOps = [4][4]string{
	{"LDI", "CPI", "INI", "OUTI"},
	{"LDD", "CPD", "IND", "OUTD"},
	{"LDIR", "CPIR", "INIR", "OTIR"},
	{"LDDR", "CPDR", "INDR", "OTDR"},
}

type decoder struct {
	mem  Memory
	pc   uint16
	e    Entry
	idx  string
	disp uint8

	// the index register has been used by the instruction
	usedIndex bool

	// the displacement byte has been fetched
	fetchedDisp bool
}

// Disassemble the instruction at the address.
func Disassemble(mem Memory, address uint16) Entry {
	d := &decoder{
		mem: mem,
		pc:  address,
		e:   Entry{Address: address},
	}
	d.decode()
	return d.e
}

func (d *decoder) next() uint8 {
	v := d.mem.Peek(d.pc)
	d.pc++
	d.e.Bytes = append(d.e.Bytes, v)
	return v
}

func (d *decoder) word() string {
	lo := d.next()
	hi := d.next()
	return hexWord(uint16(hi)<<8 | uint16(lo))
}

func (d *decoder) relative() string {
	e := int8(d.next())
	return hexWord(d.pc + uint16(e))
}

func (d *decoder) set(operator string, operand string) {
	d.e.Operator = operator
	d.e.Operand = operand
}

func (d *decoder) setf(operator string, format string, a ...any) {
	d.e.Operator = operator
	d.e.Operand = fmt.Sprintf(format, a...)
}

// hl returns the name of the HL register or the index register that
// replaces it.
func (d *decoder) hl() string {
	if d.idx == "" {
		return "HL"
	}
	d.usedIndex = true
	return d.idx
}

// r returns the name of the 8bit register with the code r. under an index
// prefix (HL) is replaced by the indexed memory operand and H and L are
// replaced by the undocumented halves of the index register.
//
// plain is true for the other register of an instruction that uses the
// indexed memory operand, which is never replaced.
func (d *decoder) r(r uint8, plain bool) string {
	r &= 0x07
	if d.idx == "" || plain {
		return reg8[r]
	}

	switch r {
	case 4:
		d.usedIndex = true
		d.e.Undocumented = true
		return d.idx + "H"
	case 5:
		d.usedIndex = true
		d.e.Undocumented = true
		return d.idx + "L"
	case 6:
		d.usedIndex = true
		if !d.fetchedDisp {
			d.disp = d.next()
			d.fetchedDisp = true
		}
		return indexed(d.idx, d.disp)
	}

	return reg8[r]
}

func (d *decoder) decode() {
	op := d.next()

	switch op {
	case 0xcb:
		d.decodeCB()
		return
	case 0xed:
		d.decodeED()
		return
	case 0xdd, 0xfd:
		d.idx = "IX"
		if op == 0xfd {
			d.idx = "IY"
		}

		op = d.mem.Peek(d.pc)
		if op == 0xdd || op == 0xfd || op == 0xed {
			// the prefix has no effect on the instruction that follows
			d.set("NOP", "")
			d.e.Undocumented = true
			return
		}

		op = d.next()
		if op == 0xcb {
			d.decodeIndexCB()
			return
		}
		d.decodeMain(op)
		if !d.usedIndex {
			d.e.Undocumented = true
		}
		return
	}

	d.decodeMain(op)
}

func (d *decoder) decodeMain(op uint8) {
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	p := y >> 1
	q := y & 0x01

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0:
				d.set("NOP", "")
			case 1:
				d.set("EX", "AF,AF'")
			case 2:
				d.set("DJNZ", d.relative())
			case 3:
				d.set("JR", d.relative())
			default:
				d.setf("JR", "%s,%s", conditions[y-4], d.relative())
			}
		case 1:
			if q == 0 {
				if p == 2 {
					d.setf("LD", "%s,%s", d.hl(), d.word())
				} else {
					d.setf("LD", "%s,%s", reg16[p], d.word())
				}
			} else {
				hl := d.hl()
				rp := reg16[p]
				if p == 2 {
					rp = hl
				}
				d.setf("ADD", "%s,%s", hl, rp)
			}
		case 2:
			switch y {
			case 0:
				d.set("LD", "(BC),A")
			case 1:
				d.set("LD", "A,(BC)")
			case 2:
				d.set("LD", "(DE),A")
			case 3:
				d.set("LD", "A,(DE)")
			case 4:
				d.setf("LD", "(%s),%s", d.word(), d.hl())
			case 5:
				d.setf("LD", "%s,(%s)", d.hl(), d.word())
			case 6:
				d.setf("LD", "(%s),A", d.word())
			case 7:
				d.setf("LD", "A,(%s)", d.word())
			}
		case 3:
			rp := reg16[p]
			if p == 2 {
				rp = d.hl()
			}
			if q == 0 {
				d.set("INC", rp)
			} else {
				d.set("DEC", rp)
			}
		case 4:
			d.set("INC", d.r(y, false))
		case 5:
			d.set("DEC", d.r(y, false))
		case 6:
			// the displacement comes before the immediate value
			r := d.r(y, false)
			d.setf("LD", "%s,%s", r, hexByte(d.next()))
		case 7:
			d.set(accumulatorOps[y], "")
		}

	case 1:
		switch {
		case y == 6 && z == 6:
			d.set("HALT", "")
		case z == 6:
			src := d.r(z, false)
			d.setf("LD", "%s,%s", d.r(y, true), src)
		case y == 6:
			dst := d.r(y, false)
			d.setf("LD", "%s,%s", dst, d.r(z, true))
		default:
			dst := d.r(y, false)
			d.setf("LD", "%s,%s", dst, d.r(z, false))
		}

	case 2:
		d.alu(y, d.r(z, false))

	case 3:
		switch z {
		case 0:
			d.set("RET", conditions[y])
		case 1:
			if q == 0 {
				rp := reg16AF[p]
				if p == 2 {
					rp = d.hl()
				}
				d.set("POP", rp)
			} else {
				switch p {
				case 0:
					d.set("RET", "")
				case 1:
					d.set("EXX", "")
				case 2:
					d.setf("JP", "(%s)", d.hl())
				case 3:
					d.setf("LD", "SP,%s", d.hl())
				}
			}
		case 2:
			d.setf("JP", "%s,%s", conditions[y], d.word())
		case 3:
			switch y {
			case 0:
				d.set("JP", d.word())
			case 2:
				d.setf("OUT", "(%s),A", hexByte(d.next()))
			case 3:
				d.setf("IN", "A,(%s)", hexByte(d.next()))
			case 4:
				d.setf("EX", "(SP),%s", d.hl())
			case 5:
				d.set("EX", "DE,HL")
			case 6:
				d.set("DI", "")
			case 7:
				d.set("EI", "")
			}
		case 4:
			d.setf("CALL", "%s,%s", conditions[y], d.word())
		case 5:
			if q == 0 {
				rp := reg16AF[p]
				if p == 2 {
					rp = d.hl()
				}
				d.set("PUSH", rp)
			} else {
				// the prefixes are handled by decode()
				d.set("CALL", d.word())
			}
		case 6:
			d.alu(y, hexByte(d.next()))
		case 7:
			d.set("RST", hexByte(y<<3))
		}
	}
}

func (d *decoder) alu(y uint8, operand string) {
	switch y {
	case 0, 1, 3:
		d.setf(aluOps[y], "A,%s", operand)
	default:
		d.set(aluOps[y], operand)
	}
}

func (d *decoder) decodeCB() {
	op := d.next()
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07

	switch x {
	case 0:
		d.set(shiftOps[y], reg8[z])
		d.e.Undocumented = y == 6
	case 1:
		d.setf("BIT", "%d,%s", y, reg8[z])
	case 2:
		d.setf("RES", "%d,%s", y, reg8[z])
	case 3:
		d.setf("SET", "%d,%s", y, reg8[z])
	}
}

// decodeIndexCB decodes the DDCB and FDCB instructions. the displacement byte
// comes before the opcode.
func (d *decoder) decodeIndexCB() {
	mem := indexed(d.idx, d.next())
	op := d.next()
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07

	// the result of the undocumented forms is also copied to a register
	copyTo := ""
	if z != 6 {
		d.e.Undocumented = true
		copyTo = "," + reg8[z]
	}

	switch x {
	case 0:
		d.setf(shiftOps[y], "%s%s", mem, copyTo)
		if y == 6 {
			d.e.Undocumented = true
		}
	case 1:
		d.setf("BIT", "%d,%s", y, mem)
	case 2:
		d.setf("RES", "%d,%s%s", y, mem, copyTo)
	case 3:
		d.setf("SET", "%d,%s%s", y, mem, copyTo)
	}
}

func (d *decoder) decodeED() {
	op := d.next()
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	p := y >> 1
	q := y & 0x01

	if x == 2 && y >= 4 && z <= 3 {
		d.set(blockOps[y-4][z], "")
		return
	}

	if x != 1 {
		d.set("NOP", "")
		d.e.Undocumented = true
		return
	}

	switch z {
	case 0:
		if y == 6 {
			d.set("IN", "F,(C)")
			d.e.Undocumented = true
		} else {
			d.setf("IN", "%s,(C)", reg8[y])
		}
	case 1:
		if y == 6 {
			d.set("OUT", "(C),0")
			d.e.Undocumented = true
		} else {
			d.setf("OUT", "(C),%s", reg8[y])
		}
	case 2:
		if q == 0 {
			d.setf("SBC", "HL,%s", reg16[p])
		} else {
			d.setf("ADC", "HL,%s", reg16[p])
		}
	case 3:
		if q == 0 {
			d.setf("LD", "(%s),%s", d.word(), reg16[p])
		} else {
			d.setf("LD", "%s,(%s)", reg16[p], d.word())
		}
		d.e.Undocumented = p == 2
	case 4:
		d.set("NEG", "")
		d.e.Undocumented = y != 0
	case 5:
		if y == 1 {
			d.set("RETI", "")
		} else {
			d.set("RETN", "")
			d.e.Undocumented = y != 0
		}
	case 6:
		switch y & 0x03 {
		case 0, 1:
			d.set("IM", "0")
		case 2:
			d.set("IM", "1")
		case 3:
			d.set("IM", "2")
		}
		d.e.Undocumented = y&0x03 == 1 || y >= 4
	case 7:
		switch y {
		case 0:
			d.set("LD", "I,A")
		case 1:
			d.set("LD", "R,A")
		case 2:
			d.set("LD", "A,I")
		case 3:
			d.set("LD", "A,R")
		case 4:
			d.set("RRD", "")
		case 5:
			d.set("RLD", "")
		default:
			d.set("NOP", "")
			d.e.Undocumented = true
		}
	}
}
