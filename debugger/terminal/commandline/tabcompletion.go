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

package commandline

import (
	"strings"
)

// TabCompletion keeps track of the most recent tab completion attempt. It
// implements the terminal.TabCompletion interface.
type TabCompletion struct {
	cmds Commands

	options    []string
	lastOption int

	// the string returned by the most recent call to Complete(). if the next
	// input is the same then we cycle through the options
	lastCompletion string
}

// NewTabCompletion is the preferred method of initialisation for TabCompletion.
func NewTabCompletion(cmds Commands) *TabCompletion {
	return &TabCompletion{
		cmds:    cmds,
		options: make([]string, 0, len(cmds)),
	}
}

// Complete transforms the input such that the last word in the input is
// expanded to the first matching keyword. Repeated calls with the output of
// the previous call cycle through the other matches.
func (tc *TabCompletion) Complete(input string) string {
	if input != "" && input == tc.lastCompletion && len(tc.options) > 1 {
		tc.lastOption++
		if tc.lastOption >= len(tc.options) {
			tc.lastOption = 0
		}
		return tc.complete(strings.Fields(input), true)
	}

	tc.options = tc.options[:0]
	tc.lastOption = 0

	p := strings.Fields(input)

	// a trailing space means we are completing a new word
	newWord := len(input) == 0 || input[len(input)-1] == ' '

	var trigger string
	var candidates []string

	switch {
	case len(p) == 0 || (len(p) == 1 && !newWord):
		if len(p) == 1 {
			trigger = p[0]
		}
		candidates = tc.cmds.Keywords()

	case (len(p) == 1 && newWord) || (len(p) == 2 && !newWord):
		c, ok := tc.cmds.Lookup(p[0])
		if !ok {
			return input
		}
		if len(p) == 2 {
			trigger = p[1]
		}
		candidates = c.Options

	default:
		return input
	}

	trigger = strings.ToUpper(trigger)
	for _, c := range candidates {
		if strings.HasPrefix(c, trigger) {
			tc.options = append(tc.options, c)
		}
	}

	if len(tc.options) == 0 {
		return input
	}

	return tc.complete(p, !newWord)
}

// complete replaces (or appends) the last word with the current option.
func (tc *TabCompletion) complete(p []string, replace bool) string {
	if replace && len(p) > 0 {
		p = p[:len(p)-1]
	}
	p = append(p, tc.options[tc.lastOption])
	tc.lastCompletion = strings.Join(p, " ") + " "
	return tc.lastCompletion
}

// Reset is called whenever a new input line is started.
func (tc *TabCompletion) Reset() {
	tc.options = tc.options[:0]
	tc.lastOption = 0
	tc.lastCompletion = ""
}
