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

// Package paths contains functions to prepare paths to fifopacer resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate base directory. For example, the following returns the path
// to the preferences file:
//
//	p := paths.ResourcePath("fifopacer.toml")
//
// If the directory ".fifopacer" exists in the program's current directory
// then that is the base path. Otherwise the user's config directory is used,
// as reported by os.UserConfigDir(). On a modern Linux system the example
// above returns:
//
//	/home/user/.config/fifopacer/fifopacer.toml
//
// The existence of the resource itself is never checked.
package paths
