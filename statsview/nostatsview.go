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

//go:build !statsview

package statsview

import (
	"io"

	"github.com/jetsetilly/fifopacer/logger"
)

// Address of the statistics server. Nothing listens on this address unless
// the program was built with the statsview tag.
const Address = "localhost:16060"

// Launch logs that statsview is not available in this build.
func Launch(_ io.Writer) {
	logger.Log(logger.Allow, "statsview", "not available in this build")
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
