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

package logger

import (
	"bytes"
	"io"

	"github.com/jetsetilly/gopher80/debugger/terminal/colorterm/easyterm/ansi"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// log entry is written with a dim pen, the detail with the normal pen.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	var b bytes.Buffer

	for _, l := range bytes.SplitAfter(p, []byte("\n")) {
		if len(l) == 0 {
			continue
		}
		tag, detail, ok := bytes.Cut(l, []byte(": "))
		if !ok {
			b.Write(l)
			continue
		}
		b.WriteString(ansi.DimPens["cyan"])
		b.Write(tag)
		b.WriteString(":")
		b.WriteString(ansi.NormalPen)
		b.WriteString(" ")
		b.Write(detail)
	}

	_, err := c.out.Write(b.Bytes())
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
