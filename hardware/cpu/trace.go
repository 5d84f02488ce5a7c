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
	"strings"

	"github.com/jetsetilly/gopher80/disassembly"
)

// traceFlags is the trace representation of the flag register. undocumented
// bits are shown as a 1 when set.
func (mc *CPU) traceFlags() string {
	s := strings.Builder{}
	flag := func(set bool, r rune) {
		if set {
			s.WriteRune(r)
		} else {
			s.WriteRune('.')
		}
	}
	flag(mc.Status.Sign, 'S')
	flag(mc.Status.Zero, 'Z')
	flag(mc.Status.Bit5, '1')
	flag(mc.Status.HalfCarry, 'H')
	flag(mc.Status.Bit3, '1')
	flag(mc.Status.ParityOverflow, 'P')
	flag(mc.Status.Subtract, 'N')
	flag(mc.Status.Carry, 'C')
	return s.String()
}

// trace writes the registers and the instruction about to be executed. NMI
// and interrupt acceptance are written on a line of their own.
func (mc *CPU) trace(w io.Writer, nmi bool, src InterruptSource) {
	if nmi {
		fmt.Fprintln(w, "--- NMI ---")
	} else if src != nil {
		fmt.Fprintf(w, "--- Interrupt: %v ---\n", src)
	}

	e := disassembly.Disassemble(mc.mem, mc.PC)

	var mnemonic string
	if e.Undocumented {
		mnemonic = "*"
	}
	mnemonic = fmt.Sprintf("%s%-8s%s", mnemonic, e.Operator, e.Operand)

	fmt.Fprintf(w, "AF:%04X [%s] BC:%04X DE:%04X HL:%04X IX:%04X IY:%04X SP:%04X  %04X  %-12s%s\n",
		mc.AF(), mc.traceFlags(), mc.BC(), mc.DE(), mc.HL(), mc.IX, mc.IY, mc.SP,
		mc.PC, e.Bytecode(), strings.TrimSpace(mnemonic))
}
