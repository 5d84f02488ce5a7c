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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Unlike flag.FlagSet, the arguments are given to NewArgs() and Parse() is
// called with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("run", "debug", "disasm")
//	_, _ = md.Parse()
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, much like the go command has build, test, doc
// modes. The first sub-mode given to AddSubModes() is the default. Sub-mode
// comparisons are case insensitive and Mode() always returns the upper case
// version:
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		rom := md.AddString("rom", "", "ROM file to load")
//		p, err := md.Parse()
//		...
//	}
//
// Modes can be chained together as deep as required. The Path() function
// returns the chain of modes encountered so far, separated by a slash.
//
// The AddAddress() function adds a flag for a 16 bit address. The address can
// be specified in decimal or in hexadecimal with either the 0x or $ prefix.
package modalflag
