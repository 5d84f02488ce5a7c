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
	"os"
	"path/filepath"
)

// the base path for all resources. note that we don't use this value directly
// except in the basePath() function. that function should be used instead.
const baseResourcePath = ".gopher80"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with the base resource path. Empty resource strings are
// ignored.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, basePath())
	for _, r := range resource {
		if r != "" {
			p = append(p, r)
		}
	}
	return filepath.Join(p...)
}

// basePath returns baseResourcePath if it can be found in the current
// directory. otherwise it returns the path to the gopher80 directory in the
// user's config directory.
//
// note that we're not checking for the existance of the resource requested by
// the caller, or even the existance of the directory in the user's config
// directory.
func basePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return filepath.Join(cnf, baseResourcePath[1:])
}

// CreateResourcePath is like ResourcePath except that the directory
// containing the resource is created if it does not already exist.
func CreateResourcePath(resource ...string) (string, error) {
	pth := ResourcePath(resource...)
	if err := os.MkdirAll(filepath.Dir(pth), 0700); err != nil {
		return "", err
	}
	return pth, nil
}
