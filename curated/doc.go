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

// Package curated wraps the plain Go error type so that errors can be
// identified by the pattern that created them. Every package in Gopher80
// declares its sentinal patterns as const strings and creates errors with
// Errorf():
//
//	const InvalidPort = "ports: invalid port (%#02x)"
//
//	err := curated.Errorf(InvalidPort, 0x81)
//
// Is() reports whether an error was created with a given pattern. Has()
// reports whether the pattern appears anywhere in the chain of wrapped errors:
//
//	err := curated.Errorf("machine: %v", curated.Errorf(InvalidPort, 0x81))
//
//	curated.Is(err, InvalidPort)  // false
//	curated.Has(err, InvalidPort) // true
//
// IsAny() reports whether an error was created by this package at all. The
// debugger uses this to separate errors it expects (bad arguments, unknown
// ports) from those it does not.
//
// Chains are made up of parts separated by ": ". The Error() function removes
// adjacent duplicate parts so that wrapping an error with the same prefix at
// several levels does not produce messages like "tape: tape: no such file".
//
// Curated errors implement Unwrap(), so errors.Is() and errors.As() from the
// standard library will find wrapped os or io errors.
package curated
