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

package ports_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/ports"
	"github.com/jetsetilly/gopher80/test"
)

type device struct {
	offsets []uint8
	data    []uint8
}

func (d *device) ReadPort(offset uint8) uint8 {
	return 0x10 + offset
}

func (d *device) WritePort(offset uint8, data uint8) {
	d.offsets = append(d.offsets, offset)
	d.data = append(d.data, data)
}

func TestMapping(t *testing.T) {
	b := ports.NewBus()
	d := &device{}

	test.DemandSuccess(t, b.Map("dev", 0x80, 4, d))

	test.ExpectEquality(t, b.ReadPort(0x0080), uint8(0x10))
	test.ExpectEquality(t, b.ReadPort(0x0083), uint8(0x13))

	// upper byte of the port address is ignored
	test.ExpectEquality(t, b.ReadPort(0x1282), uint8(0x12))

	// unmapped ports
	test.ExpectEquality(t, b.ReadPort(0x0084), uint8(0xff))
	test.ExpectEquality(t, b.ReadPort(0x007f), uint8(0xff))

	b.WritePort(0xff81, 0x55)
	b.WritePort(0x0090, 0x66)
	test.DemandEquality(t, len(d.data), 1)
	test.ExpectEquality(t, d.offsets[0], uint8(0x01))
	test.ExpectEquality(t, d.data[0], uint8(0x55))

	test.ExpectEquality(t, b.String(), "80-83 dev")
}

func TestConflict(t *testing.T) {
	b := ports.NewBus()

	test.DemandSuccess(t, b.Map("ctc", 0x80, 4, &device{}))
	test.DemandSuccess(t, b.Map("pio", 0x84, 4, &device{}))

	err := b.Map("sio", 0x86, 4, &device{})
	test.ExpectSuccess(t, curated.Is(err, ports.MappingConflict))

	err = b.Map("big", 0xfe, 4, &device{})
	test.ExpectSuccess(t, curated.Is(err, ports.MappingRange))

	// the failed mapping did not claim any ports
	test.ExpectEquality(t, b.ReadPort(0x0088), uint8(0xff))

	test.ExpectSuccess(t, b.Unmap("pio"))
	test.ExpectFailure(t, b.Unmap("pio"))
	test.ExpectSuccess(t, b.Map("sio", 0x86, 4, &device{}))
	test.ExpectEquality(t, b.ReadPort(0x0089), uint8(0x13))
	test.ExpectEquality(t, b.String(), "80-83 ctc\n86-89 sio")
}
