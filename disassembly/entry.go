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
	"strings"
)

// Entry is a single disassembled instruction.
type Entry struct {
	Address uint16

	// the bytes that make up the instruction, including any prefixes
	Bytes []uint8

	Operator string
	Operand  string

	// the instruction is not part of the documented Z80 instruction set
	Undocumented bool
}

// Next returns the address of the byte following the instruction.
func (e Entry) Next() uint16 {
	return e.Address + uint16(len(e.Bytes))
}

// Mnemonic returns the operator and operand. Undocumented instructions are
// marked with an asterisk.
func (e Entry) Mnemonic() string {
	s := strings.Builder{}
	if e.Undocumented {
		s.WriteRune('*')
	}
	s.WriteString(e.Operator)
	if e.Operand != "" {
		s.WriteRune(' ')
		s.WriteString(e.Operand)
	}
	return s.String()
}

// Bytecode returns the instruction bytes as a space separated string of hex
// values.
func (e Entry) Bytecode() string {
	s := strings.Builder{}
	for i, b := range e.Bytes {
		if i > 0 {
			s.WriteRune(' ')
		}
		fmt.Fprintf(&s, "%02X", b)
	}
	return s.String()
}

func (e Entry) String() string {
	return fmt.Sprintf("%04X  %-11s  %s", e.Address, e.Bytecode(), e.Mnemonic())
}

// hexByte formats an 8bit value in the Intel style.
func hexByte(v uint8) string {
	if v >= 0xa0 {
		return fmt.Sprintf("0%02XH", v)
	}
	return fmt.Sprintf("%02XH", v)
}

// hexWord formats a 16bit value in the Intel style.
func hexWord(v uint16) string {
	if v >= 0xa000 {
		return fmt.Sprintf("0%04XH", v)
	}
	return fmt.Sprintf("%04XH", v)
}

// indexed formats an index register with a signed displacement.
func indexed(reg string, d uint8) string {
	if int8(d) < 0 {
		return fmt.Sprintf("(%s-%s)", reg, hexByte(uint8(-int8(d))))
	}
	return fmt.Sprintf("(%s+%s)", reg, hexByte(d))
}
