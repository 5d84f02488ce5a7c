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

package registers

import (
	"strings"
)

// bit positions of the flags in the flag register.
const (
	Carry          = 0x01
	Subtract       = 0x02
	ParityOverflow = 0x04
	Bit3           = 0x08
	HalfCarry      = 0x10
	Bit5           = 0x20
	Zero           = 0x40
	Sign           = 0x80
)

// Status is the flag register of the Z80 (the F in the AF register pair).
type Status struct {
	Sign           bool
	Zero           bool
	Bit5           bool
	HalfCarry      bool
	Bit3           bool
	ParityOverflow bool
	Subtract       bool
	Carry          bool
}

// Label returns the canonical name for the flag register.
func (sr Status) Label() string {
	return "F"
}

// String returns the state of the flags. An upper case letter indicates that
// the flag is set, a lower case letter that it is not. The undocumented bits
// 5 and 3 are represented by Y and X respectively.
func (sr Status) String() string {
	s := strings.Builder{}

	flag := func(set bool, r rune) {
		if set {
			s.WriteRune(r)
		} else {
			s.WriteRune(r + ('a' - 'A'))
		}
	}

	flag(sr.Sign, 'S')
	flag(sr.Zero, 'Z')
	flag(sr.Bit5, 'Y')
	flag(sr.HalfCarry, 'H')
	flag(sr.Bit3, 'X')
	flag(sr.ParityOverflow, 'P')
	flag(sr.Subtract, 'N')
	flag(sr.Carry, 'C')

	return s.String()
}

// Reset all flags.
func (sr *Status) Reset() {
	sr.Load(0)
}

// Value returns the flags packed into a single byte.
func (sr Status) Value() uint8 {
	var v uint8

	if sr.Sign {
		v |= Sign
	}
	if sr.Zero {
		v |= Zero
	}
	if sr.Bit5 {
		v |= Bit5
	}
	if sr.HalfCarry {
		v |= HalfCarry
	}
	if sr.Bit3 {
		v |= Bit3
	}
	if sr.ParityOverflow {
		v |= ParityOverflow
	}
	if sr.Subtract {
		v |= Subtract
	}
	if sr.Carry {
		v |= Carry
	}

	return v
}

// Load flags from a packed byte.
func (sr *Status) Load(v uint8) {
	sr.Sign = v&Sign == Sign
	sr.Zero = v&Zero == Zero
	sr.Bit5 = v&Bit5 == Bit5
	sr.HalfCarry = v&HalfCarry == HalfCarry
	sr.Bit3 = v&Bit3 == Bit3
	sr.ParityOverflow = v&ParityOverflow == ParityOverflow
	sr.Subtract = v&Subtract == Subtract
	sr.Carry = v&Carry == Carry
}

// SetUndocumented sets the undocumented bit 5 and bit 3 flags from the
// equivalent bits in v.
func (sr *Status) SetUndocumented(v uint8) {
	sr.Bit5 = v&Bit5 == Bit5
	sr.Bit3 = v&Bit3 == Bit3
}

// SetSignZero sets the sign and zero flags according to v.
func (sr *Status) SetSignZero(v uint8) {
	sr.Sign = v&0x80 == 0x80
	sr.Zero = v == 0
}
