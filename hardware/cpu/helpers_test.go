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

package cpu_test

import (
	"github.com/jetsetilly/gopher80/hardware/cpu"
)

type mockMem struct {
	internal []uint8
	m1Reads  int
}

func newMockMem() *mockMem {
	return &mockMem{
		internal: make([]uint8, 0x10000),
	}
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.internal[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) Read(address uint16, m1 bool) uint8 {
	if m1 {
		mem.m1Reads++
	}
	return mem.internal[address]
}

func (mem *mockMem) Write(address uint16, data uint8) {
	mem.internal[address] = data
}

func (mem *mockMem) Peek(address uint16) uint8 {
	return mem.internal[address]
}

type portAccess struct {
	port  uint16
	data  uint8
	write bool
}

type mockIO struct {
	accesses []portAccess
	input    uint8
}

func (io *mockIO) ReadPort(port uint16) uint8 {
	io.accesses = append(io.accesses, portAccess{port: port, data: io.input})
	return io.input
}

func (io *mockIO) WritePort(port uint16, data uint8) {
	io.accesses = append(io.accesses, portAccess{port: port, data: data, write: true})
}

// mockSource is an interrupt source that requests an interrupt until it is
// accepted. the interrupt is serviced until RETI.
type mockSource struct {
	name      string
	vector    uint8
	requested bool
	accepted  bool
	finished  int
}

func (src *mockSource) String() string {
	return src.name
}

func (src *mockSource) InterruptAccept() uint8 {
	src.requested = false
	src.accepted = true
	return src.vector
}

func (src *mockSource) InterruptFinish() {
	src.accepted = false
	src.finished++
}

func (src *mockSource) IsInterruptAccepted() bool {
	return src.accepted
}

func (src *mockSource) IsInterruptRequested() bool {
	return src.requested
}

func (src *mockSource) Reset(_ bool) {
	src.requested = false
	src.accepted = false
}

func newCPU() (*cpu.CPU, *mockMem, *mockIO) {
	mem := newMockMem()
	io := &mockIO{}
	mc := cpu.NewCPU(mem, io)
	mc.SetBrakeEnabled(false)
	mc.SP = 0xfff0
	return mc, mem, io
}
