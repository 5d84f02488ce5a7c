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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/test"
	"github.com/jetsetilly/gopher80/wavwriter"
)

func TestWavWriter(t *testing.T) {
	_, err := wavwriter.New("x.wav", 4, 441)
	test.ExpectSuccess(t, curated.Is(err, wavwriter.EncodingError))

	fn := filepath.Join(t.TempDir(), "audio.wav")

	// ten T-states for every sample
	aw, err := wavwriter.New(fn, 1, 441)
	test.DemandSuccess(t, err)

	aw.ZeroCount(nil, 1)
	aw.CyclesProcessed(100)
	test.ExpectEquality(t, aw.Samples(), 10)

	// zero counts from other channels are ignored
	aw.ZeroCount(nil, 0)
	aw.CyclesProcessed(45)
	test.ExpectEquality(t, aw.Samples(), 14)

	aw.ZeroCount(nil, 1)
	aw.CyclesProcessed(5)
	test.ExpectEquality(t, aw.Samples(), 15)

	test.DemandSuccess(t, aw.EndMixing())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, dec.SampleRate, uint32(wavwriter.SampleRate))
	test.ExpectEquality(t, dec.NumChans, uint16(1))
	test.ExpectEquality(t, dec.BitDepth, uint16(16))

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(buf.Data), 15)
	test.ExpectEquality(t, buf.Data[0], 0x3fff)
	test.ExpectEquality(t, buf.Data[13], 0x3fff)
	test.ExpectEquality(t, buf.Data[14], -0x3fff)
}
