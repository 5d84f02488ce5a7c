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

package debugger

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/jetsetilly/gopher80/debugger/terminal"
)

// printLine is safe to call from any goroutine.
func (dbg *Debugger) printLine(style terminal.Style, s string) {
	dbg.printCrit.Lock()
	defer dbg.printCrit.Unlock()
	dbg.term.TermPrintLine(style, s)
}

func (dbg *Debugger) printLinef(style terminal.Style, format string, a ...any) {
	dbg.printLine(style, fmt.Sprintf(format, a...))
}

// printLines prints each line of a multi-line string separately.
func (dbg *Debugger) printLines(style terminal.Style, s string) {
	for _, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		dbg.printLine(style, l)
	}
}

// lineWriter is an io.Writer that sends complete lines to the terminal.
// Used for CPU tracing and for output from the logger.
type lineWriter struct {
	crit  sync.Mutex
	dbg   *Debugger
	style terminal.Style
	buf   []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.crit.Lock()
	defer w.crit.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.dbg.printLine(w.style, string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}
