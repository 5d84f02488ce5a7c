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

// Package prefs facilitates the storage of preference values to disk.
//
// Preference values are represented by the Bool, String, Int, Float and
// Generic types. Values are added to a Disk instance with a key and are then
// saved to and loaded from the prefs file with the Save() and Load()
// functions.
//
// The prefs file is a plain text file. The first line is a warning not to
// edit the file and every other line is a key/value pair:
//
//	cpu.speedkhz :: 2500
//
// More than one Disk instance can share the same prefs file. Saving one Disk
// will not clobber entries saved by a different Disk.
//
// Values given on the command line can override values on disk. See
// PushCommandLineStack() for details.
package prefs
