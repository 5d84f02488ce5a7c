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

package colorterm

import (
	"io"
	"testing"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/test"
)

// returns a next function for lineEditor.edit() that reads from s.
func keys(s string) func() (rune, error) {
	r := []rune(s)
	return func() (rune, error) {
		if len(r) == 0 {
			return 0, io.EOF
		}
		c := r[0]
		r = r[1:]
		return c, nil
	}
}

func edit(t *testing.T, ed *lineEditor, s string) string {
	t.Helper()
	buffer := make([]byte, 256)
	n, err := ed.edit(buffer, "> ", keys(s))
	test.ExpectSuccess(t, err)
	return string(buffer[:n])
}

type completer struct{}

func (completer) Complete(input string) string {
	if input == "re" {
		return "REGS "
	}
	return input
}

func (completer) Reset() {}

func TestEditing(t *testing.T) {
	ed := newLineEditor(io.Discard)

	test.ExpectEquality(t, edit(t, ed, "step\r"), "step")

	// backspace
	test.ExpectEquality(t, edit(t, ed, "stex\x7fp\r"), "step")

	// cursor left and insert
	test.ExpectEquality(t, edit(t, ed, "sep\x1b[D\x1b[Dt\r"), "step")

	// home, end and delete
	test.ExpectEquality(t, edit(t, ed, "xstep\x1b[H\x1b[3~\x1b[Fs\r"), "steps")

	// ctrl-u
	test.ExpectEquality(t, edit(t, ed, "junk\x15run\r"), "run")
}

func TestHistory(t *testing.T) {
	ed := newLineEditor(io.Discard)

	edit(t, ed, "step\r")
	edit(t, ed, "regs\r")
	edit(t, ed, "regs\r")
	test.ExpectEquality(t, len(ed.history), 2)

	test.ExpectEquality(t, edit(t, ed, "\x1b[A\r"), "regs")
	test.ExpectEquality(t, edit(t, ed, "\x1b[A\x1b[A\r"), "step")

	// moving down past the end of the history restores the stashed input
	test.ExpectEquality(t, edit(t, ed, "mem\x1b[A\x1b[B\r"), "mem")
}

func TestTabCompletion(t *testing.T) {
	ed := newLineEditor(io.Discard)
	ed.tabCompletion = completer{}
	test.ExpectEquality(t, edit(t, ed, "re\t\r"), "REGS ")
}

func TestControlKeys(t *testing.T) {
	ed := newLineEditor(io.Discard)
	buffer := make([]byte, 256)

	_, err := ed.edit(buffer, "> ", keys("run\x03"))
	test.ExpectEquality(t, curated.Is(err, terminal.UserInterrupt), true)

	_, err = ed.edit(buffer, "> ", keys("\x04"))
	test.ExpectEquality(t, curated.Is(err, terminal.UserAbort), true)

	// ctrl-d is ignored if there is input
	n, err := ed.edit(buffer, "> ", keys("q\x04\r"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(buffer[:n]), "q")
}
