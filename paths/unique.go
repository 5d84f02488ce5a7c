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

package paths

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Used to generate filenames for:
//   - audio recordings
//   - memory visualisations
//
// Format of returned string is:
//
//	prepend_romname_YYYYMMDD_HHMMSS
//
// The romname is the base of the ROM filename without the extension. If there
// is no ROM name the returned string will be of the format:
//
//	prepend_YYYYMMDD_HHMMSS
func UniqueFilename(prepend string, romFilename string) string {
	n := time.Now()
	timestamp := fmt.Sprintf("%04d%02d%02d_%02d%02d%02d", n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second())

	r := strings.TrimSpace(romFilename)
	if r != "" {
		r = filepath.Base(r)
		r = strings.TrimSuffix(r, filepath.Ext(r))
		return fmt.Sprintf("%s_%s_%s", prepend, r, timestamp)
	}

	return fmt.Sprintf("%s_%s", prepend, timestamp)
}
