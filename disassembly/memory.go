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

// Memory is the interface to the memory being disassembled. Peek must not
// cause any side effects.
type Memory interface {
	Peek(address uint16) uint8
}

// Bytes is an implementation of the Memory interface for a slice of bytes.
// The slice is considered to start at address zero and is mirrored to fill
// the entire address space.
type Bytes []uint8

// Peek implements the Memory interface.
func (b Bytes) Peek(address uint16) uint8 {
	if len(b) == 0 {
		return 0xff
	}
	return b[int(address)%len(b)]
}
