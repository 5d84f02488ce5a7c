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

// executeED executes the ED prefixed instructions. the timings include the
// prefix. undefined opcodes behave as an eight cycle NOP.
func (mc *CPU) executeED() {
	op := mc.fetchOpcode()
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	p := y >> 1
	q := y & 0x01

	switch x {
	case 1:
		switch z {
		case 0: // IN r,(C)
			v := mc.portIn(mc.BC())
			mc.setInFlags(v)
			if y != 6 {
				mc.setReg8(noIndex, y, v)
			}
			mc.instTStates += 12

		case 1: // OUT (C),r
			var v uint8
			if y != 6 {
				v = mc.reg8(noIndex, y)
			}
			mc.portOut(mc.BC(), v)
			mc.instTStates += 12

		case 2:
			if q == 0 { // SBC HL,rp
				mc.sbc16(mc.rp(noIndex, p))
			} else { // ADC HL,rp
				mc.adc16(mc.rp(noIndex, p))
			}
			mc.instTStates += 15

		case 3:
			if q == 0 { // LD (nn),rp
				mc.write16(mc.fetch16(), mc.rp(noIndex, p))
			} else { // LD rp,(nn)
				mc.setRP(noIndex, p, mc.read16(mc.fetch16()))
			}
			mc.instTStates += 20

		case 4: // NEG
			mc.neg()
			mc.instTStates += 8

		case 5: // RETN and RETI
			mc.PC = mc.Pop()
			mc.IFF1 = mc.IFF2
			if y == 1 {
				mc.reti()
			}
			mc.instTStates += 14

		case 6: // IM
			switch y & 0x03 {
			case 0, 1:
				mc.IM = 0
			case 2:
				mc.IM = 1
			case 3:
				mc.IM = 2
			}
			mc.instTStates += 8

		case 7:
			switch y {
			case 0: // LD I,A
				mc.I = mc.A
				mc.instTStates += 9
			case 1: // LD R,A
				mc.r = mc.A
				mc.instTStates += 9
			case 2: // LD A,I
				mc.A = mc.I
				mc.setIRFlags()
				mc.instTStates += 9
			case 3: // LD A,R
				mc.A = mc.r
				mc.setIRFlags()
				mc.instTStates += 9
			case 4: // RRD
				addr := mc.HL()
				m := mc.read8(addr)
				a := mc.A
				mc.A = a&0xf0 | m&0x0f
				mc.write8(addr, m>>4|a<<4)
				mc.setDigitFlags()
				mc.instTStates += 18
			case 5: // RLD
				addr := mc.HL()
				m := mc.read8(addr)
				a := mc.A
				mc.A = a&0xf0 | m>>4
				mc.write8(addr, m<<4|a&0x0f)
				mc.setDigitFlags()
				mc.instTStates += 18
			default:
				mc.instTStates += 8
			}
		}

	case 2:
		if y < 4 || z > 3 {
			mc.instTStates += 8
			return
		}
		mc.executeBlock(y, z)

	default:
		mc.instTStates += 8
	}
}

// reti informs the first interrupt source that is being serviced that the
// interrupt routine has finished.
func (mc *CPU) reti() {
	for _, src := range mc.InterruptSources() {
		if src.IsInterruptAccepted() {
			src.InterruptFinish()
			break
		}
	}
}

func (mc *CPU) setIRFlags() {
	mc.Status.SetSignZero(mc.A)
	mc.Status.SetUndocumented(mc.A)
	mc.Status.HalfCarry = false
	mc.Status.ParityOverflow = mc.IFF2
	mc.Status.Subtract = false
}

func (mc *CPU) setDigitFlags() {
	mc.Status.SetSignZero(mc.A)
	mc.Status.SetUndocumented(mc.A)
	mc.Status.HalfCarry = false
	mc.Status.ParityOverflow = registers.Parity[mc.A]
	mc.Status.Subtract = false
}

// executeBlock executes one iteration of the block transfer, search and IO
// instructions. y selects increment (4), decrement (5) and the repeating
// versions (6 and 7). z selects the type of instruction.
//
// a repeating instruction that has not finished moves the PC back to the
// start of the instruction so that it is fetched again.
func (mc *CPU) executeBlock(y uint8, z uint8) {
	var delta uint16 = 1
	if y&0x01 == 0x01 {
		delta = 0xffff
	}
	repeat := y >= 6

	var again bool

	switch z {
	case 0: // LDI LDD LDIR LDDR
		v := mc.read8(mc.HL())
		mc.write8(mc.DE(), v)
		mc.SetHL(mc.HL() + delta)
		mc.SetDE(mc.DE() + delta)
		mc.SetBC(mc.BC() - 1)

		n := v + mc.A
		mc.Status.Bit5 = n&0x02 == 0x02
		mc.Status.Bit3 = n&0x08 == 0x08
		mc.Status.HalfCarry = false
		mc.Status.ParityOverflow = mc.BC() != 0
		mc.Status.Subtract = false

		again = mc.Status.ParityOverflow

	case 1: // CPI CPD CPIR CPDR
		v := mc.read8(mc.HL())
		r := mc.A - v
		mc.SetHL(mc.HL() + delta)
		mc.SetBC(mc.BC() - 1)

		mc.Status.SetSignZero(r)
		mc.Status.HalfCarry = mc.A&0x0f < v&0x0f
		mc.Status.ParityOverflow = mc.BC() != 0
		mc.Status.Subtract = true

		n := r
		if mc.Status.HalfCarry {
			n--
		}
		mc.Status.Bit5 = n&0x02 == 0x02
		mc.Status.Bit3 = n&0x08 == 0x08

		again = mc.Status.ParityOverflow && !mc.Status.Zero

	case 2: // INI IND INIR INDR
		// B is decremented after the port is read
		mc.write8(mc.HL(), mc.portIn(mc.BC()))
		mc.SetHL(mc.HL() + delta)
		mc.B--
		mc.setBlockIOFlags()

		again = !mc.Status.Zero

	case 3: // OUTI OUTD OTIR OTDR
		// B is decremented before the port is written
		mc.B--
		mc.setBlockIOFlags()
		mc.portOut(mc.BC(), mc.read8(mc.HL()))
		mc.SetHL(mc.HL() + delta)

		again = !mc.Status.Zero
	}

	if repeat && again {
		mc.PC -= 2
		mc.instTStates += 21
		return
	}
	mc.instTStates += 16
}

func (mc *CPU) setBlockIOFlags() {
	mc.Status.SetSignZero(mc.B)
	mc.Status.SetUndocumented(mc.B)
	mc.Status.Subtract = true
}
