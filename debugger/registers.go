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

package debugger

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher80/hardware/cpu"
)

// registers returns a multi-line summary of the CPU registers.
func registers(mc *cpu.CPU) string {
	b2i := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("AF  %04X  BC  %04X  DE  %04X  HL  %04X\n",
		mc.AF(), mc.BC(), mc.DE(), mc.HL()))
	s.WriteString(fmt.Sprintf("AF' %04X  BC' %04X  DE' %04X  HL' %04X\n",
		mc.AltAF, mc.AltBC, mc.AltDE, mc.AltHL))
	s.WriteString(fmt.Sprintf("IX  %04X  IY  %04X  SP  %04X  PC  %04X\n",
		mc.IX, mc.IY, mc.SP, mc.PC))
	s.WriteString(fmt.Sprintf("I   %02X    R   %02X    IM  %d     IFF %d%d\n",
		mc.I, mc.R(), mc.IM, b2i(mc.IFF1), b2i(mc.IFF2)))
	s.WriteString(fmt.Sprintf("F   %s  T-states %d", mc.Status, mc.TStates()))
	if mc.IsHalted() {
		s.WriteString("  HALTED")
	}
	return s.String()
}
