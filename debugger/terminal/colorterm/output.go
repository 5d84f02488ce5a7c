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
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/debugger/terminal/colorterm/easyterm/ansi"
)

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	// input is echoed as it is typed
	if style == terminal.StyleEcho {
		return
	}

	ct.EasyTerm.TermPrint("\r")
	ct.EasyTerm.TermPrint(ansi.ClearLine)
	ct.EasyTerm.TermPrint(stylePen(style))
	ct.EasyTerm.TermPrint(s)
	ct.EasyTerm.TermPrint(ansi.NormalPen)
	ct.EasyTerm.TermPrint("\n")
}

func stylePen(style terminal.Style) string {
	switch style {
	case terminal.StyleHelp:
		return ansi.DimPens["white"]
	case terminal.StyleFeedback:
		return ansi.DimPens["white"]
	case terminal.StyleFeedbackNonInteractive:
		return ansi.DimPens["magenta"]
	case terminal.StyleCPUStep:
		return ansi.PenColor["yellow"]
	case terminal.StyleInstrument:
		return ansi.PenColor["cyan"]
	case terminal.StyleLog:
		return ansi.DimPens["cyan"]
	case terminal.StyleError:
		return ansi.PenColor["red"] + "* "
	}
	return ""
}
