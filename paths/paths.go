// This file is part of fifopacer.
//
// fifopacer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fifopacer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with fifopacer.  If not, see <https://www.gnu.org/licenses/>.

package paths

import (
	"os"
	"path"
)

// the base path for all resources. getBasePath() should be used instead of
// this value directly.
const baseResourcePath = ".fifopacer"

// PrefsFile is the name of the preferences file in the resource directory.
const PrefsFile = "fifopacer.toml"

// ResourcePath returns the resource string prepended with the base path.
// Empty elements are ignored.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return path.Join(p...)
}

// returns baseResourcePath if it exists in the current directory, otherwise
// the same directory name (without the leading dot) in the user's config
// directory.
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return path.Join(cnf, baseResourcePath[1:])
}
