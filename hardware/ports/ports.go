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

// Package ports implements the I/O port bus of the machine. Devices are
// mapped to ranges of the 8 bit port address space. The upper eight bits of
// the 16 bit port address presented by the CPU are ignored.
//
// Reading from a port with no device returns 0xff. Writing to such a port
// has no effect.
package ports

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jetsetilly/gopher80/curated"
)

// Sentinal errors.
const (
	MappingConflict = "ports: mapping conflict: %s overlaps %s"
	MappingRange    = "ports: mapping %s: range exceeds port space"
)

// Device is the interface to a chip on the port bus. The offset argument is
// the port address relative to the base of the mapping.
type Device interface {
	ReadPort(offset uint8) uint8
	WritePort(offset uint8, data uint8)
}

type mapping struct {
	label string
	base  uint8
	size  int
	dev   Device
}

func (m mapping) String() string {
	return fmt.Sprintf("%02x-%02x %s", m.base, int(m.base)+m.size-1, m.label)
}

// Bus implements the cpu.IO interface.
type Bus struct {
	crit sync.RWMutex

	mappings []*mapping
	table    [256]*mapping
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{}
}

// Map the device to the range of ports starting at base. Returns an error if
// the range overlaps an existing mapping.
func (b *Bus) Map(label string, base uint8, size int, dev Device) error {
	b.crit.Lock()
	defer b.crit.Unlock()

	m := &mapping{
		label: label,
		base:  base,
		size:  size,
		dev:   dev,
	}

	if size <= 0 || int(base)+size > len(b.table) {
		return curated.Errorf(MappingRange, m)
	}

	for p := int(base); p < int(base)+size; p++ {
		if b.table[p] != nil {
			return curated.Errorf(MappingConflict, m, b.table[p])
		}
	}

	for p := int(base); p < int(base)+size; p++ {
		b.table[p] = m
	}
	b.mappings = append(b.mappings, m)

	return nil
}

// Unmap removes the mapping with the label. Returns false if there is no
// such mapping.
func (b *Bus) Unmap(label string) bool {
	b.crit.Lock()
	defer b.crit.Unlock()

	for i, m := range b.mappings {
		if m.label == label {
			for p := int(m.base); p < int(m.base)+m.size; p++ {
				b.table[p] = nil
			}
			b.mappings = append(b.mappings[:i], b.mappings[i+1:]...)
			return true
		}
	}

	return false
}

// ReadPort implements the cpu.IO interface.
func (b *Bus) ReadPort(port uint16) uint8 {
	b.crit.RLock()
	m := b.table[uint8(port)]
	b.crit.RUnlock()

	if m == nil {
		return 0xff
	}
	return m.dev.ReadPort(uint8(port) - m.base)
}

// WritePort implements the cpu.IO interface.
func (b *Bus) WritePort(port uint16, data uint8) {
	b.crit.RLock()
	m := b.table[uint8(port)]
	b.crit.RUnlock()

	if m == nil {
		return
	}
	m.dev.WritePort(uint8(port)-m.base, data)
}

func (b *Bus) String() string {
	b.crit.RLock()
	defer b.crit.RUnlock()

	mappings := make([]*mapping, len(b.mappings))
	copy(mappings, b.mappings)
	sort.Slice(mappings, func(i, j int) bool {
		return mappings[i].base < mappings[j].base
	})

	s := strings.Builder{}
	for _, m := range mappings {
		s.WriteString(m.String())
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}
