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

// Package commandline helps the debugger parse user input. Input is divided
// into tokens with TokeniseInput() and walked through with the Get() and
// Peek() functions of the Tokens type.
//
// The Commands type describes the commands available to the user and is
// used to create a TabCompletion instance, which implements the
// terminal.TabCompletion interface.
package commandline
