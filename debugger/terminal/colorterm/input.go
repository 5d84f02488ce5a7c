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
	"unicode"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/debugger/terminal/colorterm/easyterm"
	"github.com/jetsetilly/gopher80/debugger/terminal/colorterm/easyterm/ansi"
)

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(buffer []byte, prompt terminal.Prompt, events *terminal.ReadEvents) (int, error) {
	if ct.silenced {
		return 0, nil
	}

	if events == nil {
		events = &terminal.ReadEvents{}
	}

	ct.RawMode()
	defer ct.CanonicalMode()

	next := func() (rune, error) {
		select {
		case rr := <-ct.runes:
			return rr.r, rr.err
		case <-events.IntEvents:
			return 0, curated.Errorf(terminal.UserInterrupt)
		case f := <-events.RawEvents:
			f()

			// a zero rune causes the prompt to be redrawn
			return 0, nil
		}
	}

	return ct.editor.edit(buffer, prompt.String(), next)
}

// lineEditor implements line editing for a terminal in raw mode.
type lineEditor struct {
	output        io.Writer
	history       []string
	tabCompletion terminal.TabCompletion
	suspend       func() error
}

func newLineEditor(output io.Writer) *lineEditor {
	return &lineEditor{
		output:  output,
		history: make([]string, 0),
		suspend: easyterm.SuspendProcess,
	}
}

func (ed *lineEditor) print(s string) {
	_, _ = io.WriteString(ed.output, s)
}

// edit reads runes with the next function until carriage return is pressed.
// The completed line is copied to the buffer.
func (ed *lineEditor) edit(buffer []byte, prompt string, next func() (rune, error)) (int, error) {
	line := make([]rune, 0, len(buffer))
	cursor := 0

	// the current position in the history. the input being edited is stashed
	// when we move into the history so it can be returned to
	history := len(ed.history)
	var stash []rune

	if ed.tabCompletion != nil {
		ed.tabCompletion.Reset()
	}

	for {
		ed.print("\r")
		ed.print(ansi.ClearLine)
		ed.print(prompt)
		ed.print(string(line))
		ed.print(ansi.CursorMove(cursor - len(line)))

		r, err := next()
		if err != nil {
			ed.print("\r\n")
			return 0, err
		}

		switch r {
		case easyterm.KeyTab:
			if ed.tabCompletion != nil {
				s := []rune(ed.tabCompletion.Complete(string(line[:cursor])))
				line = append(s, line[cursor:]...)
				cursor = len(s)
			}

		case easyterm.KeyCtrlC:
			ed.print("\r\n")
			return 0, curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeyCtrlD:
			if len(line) == 0 {
				ed.print("\r\n")
				return 0, curated.Errorf(terminal.UserAbort)
			}

		case easyterm.KeyCtrlZ:
			if ed.suspend != nil {
				_ = ed.suspend()
			}

		case easyterm.KeyCtrlA:
			cursor = 0

		case easyterm.KeyCtrlE:
			cursor = len(line)

		case easyterm.KeyCtrlU:
			line = append(line[:0], line[cursor:]...)
			cursor = 0

		case easyterm.KeyCarriageReturn, '\n':
			s := string(line)
			if s != "" && (len(ed.history) == 0 || ed.history[len(ed.history)-1] != s) {
				ed.history = append(ed.history, s)
			}
			ed.print("\r\n")
			return copy(buffer, s), nil

		case easyterm.KeyBackspace, '\b':
			if cursor > 0 {
				line = append(line[:cursor-1], line[cursor:]...)
				cursor--
			}

		case easyterm.KeyEsc:
			r, err := next()
			if err != nil {
				return 0, err
			}
			if r != easyterm.EscCursor {
				continue
			}

			r, err = next()
			if err != nil {
				return 0, err
			}

			switch r {
			case easyterm.CursorUp:
				if history > 0 {
					if history == len(ed.history) {
						stash = append(stash[:0], line...)
					}
					history--
					line = []rune(ed.history[history])
					cursor = len(line)
				}

			case easyterm.CursorDown:
				if history < len(ed.history) {
					history++
					if history == len(ed.history) {
						line = append([]rune{}, stash...)
					} else {
						line = []rune(ed.history[history])
					}
					cursor = len(line)
				}

			case easyterm.CursorForward:
				if cursor < len(line) {
					cursor++
				}

			case easyterm.CursorBackward:
				if cursor > 0 {
					cursor--
				}

			case easyterm.EscHome:
				cursor = 0

			case easyterm.EscEnd:
				cursor = len(line)

			case easyterm.EscDelete:
				// delete key is followed by a tilde
				if _, err := next(); err != nil {
					return 0, err
				}
				if cursor < len(line) {
					line = append(line[:cursor], line[cursor+1:]...)
				}
			}

		default:
			if unicode.IsPrint(r) {
				line = append(line, 0)
				copy(line[cursor+1:], line[cursor:])
				line[cursor] = r
				cursor++
			}
		}
	}
}
