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

package tape

import (
	"github.com/jetsetilly/gopher80/hardware/ctc"
	"github.com/jetsetilly/gopher80/hardware/pio"
)

// CTCInput sends the tape signal to the external input of a CTC channel.
type CTCInput struct {
	CTC     *ctc.CTC
	Channel int
}

// TapeLevel implements the Sink interface.
func (in CTCInput) TapeLevel(high bool) {
	in.CTC.ExternalUpdate(in.Channel, high)
}

// PIOInput sends the tape signal to one bit of a PIO port.
type PIOInput struct {
	PIO  *pio.PIO
	Port pio.Port
	Bit  uint8
}

// TapeLevel implements the Sink interface.
func (in PIOInput) TapeLevel(high bool) {
	mask := uint8(1) << (in.Bit & 0x07)
	var v uint8
	if high {
		v = mask
	}
	in.PIO.PutInputBits(in.Port, v, mask)
}
