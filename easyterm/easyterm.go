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

// Package easyterm is a key source for the controlling terminal. The terminal
// is put into cbreak mode so that key presses are available without waiting
// for the return key, and without them being echoed.
//
// Only the keys the harness is interested in are decoded. Everything else,
// including the control sequences sent by cursor and function keys, is
// discarded.
package easyterm

import (
	"os"

	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Sentinal error patterns.
const (
	NotATerminal = "easyterm: not a terminal: %v"
	ReadError    = "easyterm: %v"
)

// Terminal is a key source for a posix terminal.
type Terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	buf []byte
}

// Initialise the Terminal. The input file must be a terminal. The terminal is
// left in canonical mode.
func (pt *Terminal) Initialise(input *os.File) error {
	pt.input = input

	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return curated.Errorf(NotATerminal, err)
	}

	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	pt.buf = make([]byte, 64)

	return nil
}

// Fd returns the file descriptor of the terminal input. Suitable for polling.
func (pt *Terminal) Fd() int {
	return int(pt.input.Fd())
}

// CanonicalMode puts terminal into normal, everyday canonical mode
func (pt *Terminal) CanonicalMode() error {
	return termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.canAttr)
}

// CBreakMode puts terminal into cbreak mode
func (pt *Terminal) CBreakMode() error {
	return termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.cbreakAttr)
}

// CleanUp restores the terminal to canonical mode.
func (pt *Terminal) CleanUp() {
	_ = pt.CanonicalMode()
}

// ReadKeys reads the pending input and returns the key presses it contains.
// ReadKeys blocks if there is no pending input so it should only be called
// when the terminal is known to be readable.
func (pt *Terminal) ReadKeys() ([]compositor.Key, error) {
	n, err := unix.Read(pt.Fd(), pt.buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return nil, nil
		}
		return nil, curated.Errorf(ReadError, err)
	}
	return Decode(pt.buf[:n]), nil
}

// Decode translates terminal input to key presses. Control sequences
// beginning with ESC are discarded. A lone ESC is the escape key.
func Decode(b []byte) []compositor.Key {
	var keys []compositor.Key

	for i := 0; i < len(b); i++ {
		switch b[i] {
		case KeyEsc:
			if i+1 < len(b) && (b[i+1] == EscCursor || b[i+1] == EscSS3) {
				// skip to the final byte of the sequence
				i += 2
				for i < len(b) && b[i] < 0x40 {
					i++
				}
				continue
			}
			keys = append(keys, compositor.Key{Code: compositor.KeyEscape, Pressed: true})
		case KeySpace:
			keys = append(keys, compositor.Key{Code: compositor.KeySpace, Pressed: true})
		}
	}

	return keys
}
