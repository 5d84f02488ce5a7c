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

// executeCB executes the CB prefixed bit instructions. the timings include the
// prefix.
func (mc *CPU) executeCB() {
	op := mc.fetchOpcode()
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07

	if z == 6 {
		addr := mc.HL()
		v := mc.read8(addr)
		switch x {
		case 0:
			mc.write8(addr, mc.shift(y, v))
			mc.instTStates += 15
		case 1:
			mc.bit(y, v, true)
			mc.instTStates += 12
		case 2:
			mc.write8(addr, v&^(0x01<<y))
			mc.instTStates += 15
		case 3:
			mc.write8(addr, v|(0x01<<y))
			mc.instTStates += 15
		}
		return
	}

	v := mc.reg8(noIndex, z)
	switch x {
	case 0:
		mc.setReg8(noIndex, z, mc.shift(y, v))
	case 1:
		mc.bit(y, v, false)
	case 2:
		mc.setReg8(noIndex, z, v&^(0x01<<y))
	case 3:
		mc.setReg8(noIndex, z, v|(0x01<<y))
	}
	mc.instTStates += 8
}

// executeIndexCB executes the DDCB and FDCB instructions. the displacement
// comes before the opcode and neither are M1 reads. the prefix has already
// been counted.
//
// apart from BIT, the result is also copied to the register selected by the
// low three bits of the opcode (undocumented behaviour).
func (mc *CPU) executeIndexCB(idx index) {
	addr := mc.hl(idx) + mc.fetchDisplacement()
	op := mc.fetch8()
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07

	v := mc.read8(addr)

	switch x {
	case 0:
		v = mc.shift(y, v)
	case 1:
		mc.bit(y, v, true)
		mc.instTStates += 16
		return
	case 2:
		v &^= 0x01 << y
	case 3:
		v |= 0x01 << y
	}

	mc.write8(addr, v)
	if z != 6 {
		mc.setReg8(noIndex, z, v)
	}
	mc.instTStates += 19
}
