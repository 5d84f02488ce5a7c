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
	"io"
)

// Listing disassembles count instructions starting at address.
func Listing(mem Memory, address uint16, count int) []Entry {
	l := make([]Entry, 0, count)
	for range count {
		e := Disassemble(mem, address)
		l = append(l, e)
		address = e.Next()
	}
	return l
}

// Write the disassembly of the memory between from and to (inclusive) to the
// io.Writer. An instruction that starts before to is written in full.
func Write(output io.Writer, mem Memory, from uint16, to uint16) error {
	address := from
	for {
		e := Disassemble(mem, address)
		if _, err := fmt.Fprintln(output, e.String()); err != nil {
			return err
		}

		next := e.Next()

		// stop at the end of the range or if the address has wrapped around
		if next > to || next <= address {
			return nil
		}
		address = next
	}
}
