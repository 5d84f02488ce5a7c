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
	"fmt"
	"strings"
)

// PageSize is the granularity of the ROM flag.
const PageSize = 1024

// NumPages in the address space.
const NumPages = 0x10000 / PageSize

// Waiter is the interface to the CPU used to add wait states.
type Waiter interface {
	AddWaitStates(n int)
}

// Memory is the 64K address space of the machine.
type Memory struct {
	data [0x10000]uint8
	rom  [NumPages]bool

	waiter Waiter
	m1Wait int
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	mem := &Memory{}
	mem.Reset(true)
	return mem
}

// SetWaiter sets the recipient of wait states.
func (mem *Memory) SetWaiter(w Waiter) {
	mem.waiter = w
}

// SetM1Wait sets the number of wait states added to every opcode fetch.
func (mem *Memory) SetM1Wait(n int) {
	mem.m1Wait = n
}

// Reset the memory. On power on the RAM is filled with the pattern found in
// uninitialised DRAM: alternating blocks of 128 bytes of 0x00 and 0xff. ROM
// pages are not affected.
func (mem *Memory) Reset(powerOn bool) {
	if !powerOn {
		return
	}
	for a := range mem.data {
		if mem.rom[a/PageSize] {
			continue
		}
		if a&0x80 == 0x80 {
			mem.data[a] = 0xff
		} else {
			mem.data[a] = 0x00
		}
	}
}

// Read implements the cpu.Memory interface.
func (mem *Memory) Read(address uint16, m1 bool) uint8 {
	if m1 && mem.m1Wait > 0 && mem.waiter != nil {
		mem.waiter.AddWaitStates(mem.m1Wait)
	}
	return mem.data[address]
}

// Write implements the cpu.Memory interface.
func (mem *Memory) Write(address uint16, data uint8) {
	if mem.rom[address/PageSize] {
		return
	}
	mem.data[address] = data
}

// Peek implements the cpu.Memory interface.
func (mem *Memory) Peek(address uint16) uint8 {
	return mem.data[address]
}

// Poke writes to memory regardless of the ROM flag.
func (mem *Memory) Poke(address uint16, data uint8) {
	mem.data[address] = data
}

// SetROM sets or clears the ROM flag for every page touched by the address
// range.
func (mem *Memory) SetROM(origin uint16, size int, rom bool) {
	if size <= 0 {
		return
	}
	end := int(origin) + size - 1
	if end > 0xffff {
		end = 0xffff
	}
	for p := int(origin) / PageSize; p <= end/PageSize; p++ {
		mem.rom[p] = rom
	}
}

// IsROM returns true if the address is in a ROM page.
func (mem *Memory) IsROM(address uint16) bool {
	return mem.rom[address/PageSize]
}

// Dump returns a hex dump of the address range. Each line is prefixed with
// the address of the first byte.
func (mem *Memory) Dump(from uint16, to uint16) string {
	s := strings.Builder{}
	s.WriteString("       -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")

	a := int(from) &^ 0x0f
	for a <= int(to) {
		s.WriteString(fmt.Sprintf("%04X |", a))
		for x := 0; x < 16; x++ {
			b := a + x
			if b < int(from) || b > int(to) {
				s.WriteString("   ")
			} else {
				s.WriteString(fmt.Sprintf(" %02x", mem.data[b]))
			}
		}
		s.WriteString("\n")
		a += 16
	}

	return strings.TrimRight(s.String(), "\n")
}
