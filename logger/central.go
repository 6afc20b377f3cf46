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

// Package logger is the central log for the application. Entries are kept in
// memory, up to a maximum number, and are optionally echoed to an io.Writer
// as they arrive.
//
// Entries are made up of a tag and a detail string. The tag is usually the
// name of the package making the entry:
//
//	logger.Logf(logger.Allow, "wayland", "bound %s (version %d)", iface, version)
//
// Consecutive identical entries are collapsed into one entry with a repeat
// count. This is useful for entries that might be made every frame.
//
// The log is for diagnostics only. Output that the user is expected to see
// during normal operation, such as the frame rate, should not go through the
// logger.
package logger

import (
	"io"
)

// only one central log for the entire application
var central *Logger

// maximum number of entries in the central logger
const maxCentral = 256

func init() {
	central = NewLogger(maxCentral)
}

// Log adds an entry to the central logger.
func Log(perm Permission, tag string, detail any) {
	central.Log(perm, tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(perm Permission, tag string, detail string, args ...any) {
	central.Logf(perm, tag, detail, args...)
}

// Clear all entries from central logger.
func Clear() {
	central.Clear()
}

// Write contents of central logger to io.Writer.
func Write(output io.Writer) {
	central.Write(output)
}

// Tail writes the last N entries to io.Writer.
func Tail(output io.Writer, number int) {
	central.Tail(output, number)
}

// SetEcho prints new log entries to io.Writer. A nil writer stops the echo.
func SetEcho(output io.Writer) {
	central.SetEcho(output)
}
