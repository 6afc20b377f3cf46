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

package wayland

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/jetsetilly/fifopacer/curated"
)

// NoDisplay is returned when the location of the compositor cannot be
// determined.
const NoDisplay = "wayland: cannot find display: %v"

// the display name used if WAYLAND_DISPLAY is not set
const defaultDisplay = "wayland-0"

// environment lookup. replaced in tests
var getenv = os.Getenv

// socketFromEnv returns the file descriptor in WAYLAND_SOCKET. returns -1 if
// the variable is not set.
func socketFromEnv() (int, error) {
	s := getenv("WAYLAND_SOCKET")
	if s == "" {
		return -1, nil
	}
	fd, err := strconv.Atoi(s)
	if err != nil || fd < 0 {
		return -1, curated.Errorf(NoDisplay, "WAYLAND_SOCKET is not a file descriptor")
	}
	return fd, nil
}

// socketPath returns the path of the compositor's socket.
func socketPath() (string, error) {
	display := getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = defaultDisplay
	}
	if filepath.IsAbs(display) {
		return display, nil
	}

	runtime := getenv("XDG_RUNTIME_DIR")
	if runtime == "" {
		return "", curated.Errorf(NoDisplay, "XDG_RUNTIME_DIR is not set")
	}
	return filepath.Join(runtime, display), nil
}
