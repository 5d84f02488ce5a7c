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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher80/paths"
	"github.com/jetsetilly/gopher80/test"
)

func TestPaths(t *testing.T) {
	// run the test from a temporary directory containing the base resource
	// directory. this guarantees the base path that ResourcePath() selects
	dir := t.TempDir()
	test.DemandSuccess(t, os.Mkdir(filepath.Join(dir, ".gopher80"), 0700))
	t.Chdir(dir)

	test.ExpectEquality(t, paths.ResourcePath("foo/bar", "baz"), ".gopher80/foo/bar/baz")
	test.ExpectEquality(t, paths.ResourcePath("foo/bar", ""), ".gopher80/foo/bar")
	test.ExpectEquality(t, paths.ResourcePath("", "baz"), ".gopher80/baz")
	test.ExpectEquality(t, paths.ResourcePath("", ""), ".gopher80")

	pth, err := paths.CreateResourcePath("sub", "file")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopher80/sub/file")
	_, err = os.Stat(".gopher80/sub")
	test.ExpectSuccess(t, err)
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("audio", "roms/monitor.bin")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "audio_monitor_"))

	fn = paths.UniqueFilename("memviz", "")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "memviz_"))
	test.ExpectFailure(t, strings.Contains(fn, "__"))
}
