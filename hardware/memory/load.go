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

package memory

import (
	"io"
	"os"

	"github.com/jetsetilly/gopher80/curated"
)

// Sentinal errors.
const (
	LoadError = "memory: load: %v"
)

// Load copies data from the reader into memory, starting at origin. Data
// that would extend beyond the end of the address space is an error. Returns
// the number of bytes copied.
func (mem *Memory) Load(r io.Reader, origin uint16) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, curated.Errorf(LoadError, err)
	}

	n := copy(mem.data[origin:], data)
	if n < len(data) {
		return n, curated.Errorf(LoadError, "data too large for address space")
	}

	return n, nil
}

// LoadFile loads the named file into memory starting at origin. The pages
// covered by the file are flagged as ROM if the rom argument is true. On
// error memory is left unchanged.
func (mem *Memory) LoadFile(filename string, origin uint16, rom bool) error {
	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf(LoadError, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return curated.Errorf(LoadError, err)
	}
	if fi.Size() == 0 {
		return curated.Errorf(LoadError, "empty file")
	}
	if fi.Size() > int64(len(mem.data)-int(origin)) {
		return curated.Errorf(LoadError, "data too large for address space")
	}

	n, err := mem.Load(f, origin)
	if err != nil {
		return err
	}

	if rom {
		mem.SetROM(origin, n, true)
	}

	return nil
}
