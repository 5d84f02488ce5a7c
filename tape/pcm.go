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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/logger"
)

// pcm is mono sample data normalised to the range -1.0 to 1.0.
type pcm struct {
	sampleRate float64
	data       []float32
}

func loadPCM(filename string) (pcm, error) {
	p := pcm{}

	f, err := os.Open(filename)
	if err != nil {
		return p, curated.Errorf(TapeError, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	}

	return p, curated.Errorf(UnsupportedFormat, filepath.Ext(filename))
}

func decodeWAV(r io.ReadSeeker) (pcm, error) {
	p := pcm{}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return p, curated.Errorf(UnsupportedFormat, "not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return p, curated.Errorf(TapeError, err)
	}

	numChans := int(dec.NumChans)
	if numChans < 1 || dec.BitDepth == 0 {
		return p, curated.Errorf(UnsupportedFormat, "wav file has no sample data")
	}

	scale := float32(int(1) << (dec.BitDepth - 1))

	// first channel only
	p.data = make([]float32, 0, len(buf.Data)/numChans)
	for i := 0; i < len(buf.Data); i += numChans {
		p.data = append(p.data, float32(buf.Data[i])/scale)
	}
	p.sampleRate = float64(dec.SampleRate)

	logger.Logf(logger.Allow, logTag, "wav: %d channels, %d bits (using first channel)", numChans, dec.BitDepth)

	return p, nil
}

func decodeMP3(r io.Reader) (pcm, error) {
	p := pcm{}

	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return p, curated.Errorf(UnsupportedFormat, err)
	}

	// the decoded stream is always 16bit little endian with two channels. a
	// sample is therefore four bytes
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			p.data = append(p.data, float32(v)/32768.0)
		}
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return p, curated.Errorf(TapeError, err)
		}
	}
	p.sampleRate = float64(dec.SampleRate())

	logger.Log(logger.Allow, logTag, "mp3: using left channel")

	return p, nil
}
