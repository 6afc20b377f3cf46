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
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Used to generate filenames for profiling output and memviz dumps.
//
// Format of returned string is:
//
//	prepend_mode_YYYYMMDD_HHMMSS
//
// If mode is empty the returned string will be of the format:
//
//	prepend_YYYYMMDD_HHMMSS
func UniqueFilename(prepend string, mode string) string {
	return uniqueFilename(prepend, mode, time.Now())
}

func uniqueFilename(prepend string, mode string, n time.Time) string {
	timestamp := n.Format("20060102_150405")

	m := strings.ToLower(strings.TrimSpace(mode))
	if len(m) > 0 {
		return fmt.Sprintf("%s_%s_%s", prepend, m, timestamp)
	}
	return fmt.Sprintf("%s_%s", prepend, timestamp)
}
