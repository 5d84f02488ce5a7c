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

// Package logger is the central log for the emulator. Log entries are made
// with the Log() and Logf() functions. Every entry is identified by a tag,
// which is usually the name of the component making the entry, and adjacent
// entries that are identical are collapsed into a single entry with a repeat
// count.
//
// Permission to log is controlled by the Permission interface. The Allow
// value can be used when logging should always take place.
//
// The log has a fixed maximum number of entries. Older entries are discarded
// as newer entries are added.
package logger
