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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect and Demand families of functions test values for equality or
// for success/failure. The difference between the two families is that a
// failed Demand is a testing fatality. Use Demand when subsequent tests
// depend on the value being correct.
//
// Success and failure are interpreted according to the type of the value
// being tested. A bool is successful when it is true and an error is
// successful when it is nil. An untyped nil is always considered a success.
//
// CompareWriter implements the io.Writer interface and is useful for
// capturing the output of functions that write to an io.Writer.
package test
