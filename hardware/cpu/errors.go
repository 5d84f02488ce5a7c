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
)

// Sentinal errors.
const (
	AddressListenerConflict = "cpu: address listener already attached"
	PCListenerConflict      = "cpu: pc listener already attached"
	IllegalOpcode           = "cpu: %v"
)

// Fault is raised as a panic when the CPU finds itself in an impossible
// state. The Run() function converts a Fault into an error.
type Fault struct {
	PC     uint16
	Prefix uint8
	Opcode uint8
}

func (f Fault) Error() string {
	if f.Prefix != 0x00 {
		return fmt.Sprintf("illegal opcode %02x %02x at %04x", f.Prefix, f.Opcode, f.PC)
	}
	return fmt.Sprintf("illegal opcode %02x at %04x", f.Opcode, f.PC)
}
