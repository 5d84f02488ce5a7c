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
	"fmt"
	"strings"
)

// Command describes a single command available to the user.
type Command struct {
	// the keyword is always in upper case
	Keyword string

	// sub-keywords that can follow the keyword. used for tab completion
	Options []string

	// short description of the arguments. for example, "<address>"
	Usage string

	// one line description of the command
	Help string
}

func (c Command) synopsis() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", c.Keyword, c.Usage))
}

// Commands is the list of commands available to the user.
type Commands []Command

// Lookup returns the command with the keyword. The keyword is not case
// sensitive.
func (cmds Commands) Lookup(keyword string) (Command, bool) {
	keyword = strings.ToUpper(keyword)
	for _, c := range cmds {
		if c.Keyword == keyword {
			return c, true
		}
	}
	return Command{}, false
}

// Keywords returns the list of keywords in the order they were defined.
func (cmds Commands) Keywords() []string {
	kw := make([]string, len(cmds))
	for i, c := range cmds {
		kw[i] = c.Keyword
	}
	return kw
}

// HelpString returns a summary of every command. One command per line.
func (cmds Commands) HelpString() string {
	w := 0
	for _, c := range cmds {
		w = max(w, len(c.synopsis()))
	}

	s := strings.Builder{}
	for _, c := range cmds {
		s.WriteString(fmt.Sprintf("%-*s  %s\n", w, c.synopsis(), c.Help))
	}
	return strings.TrimRight(s.String(), "\n")
}
