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

package compositor

import "fmt"

// Event is implemented only by the event types in this package.
type Event interface {
	event()
}

// BufferReleased is sent when the compositor no longer needs the buffer.
type BufferReleased struct {
	Slot int
}

// SurfaceConfigure must be acknowledged with Backend.AckConfigure(). It is
// sent after one or more ToplevelConfigure events.
type SurfaceConfigure struct {
	Serial uint32
}

// ToplevelConfigure proposes a new size for the window. A zero dimension
// means the compositor leaves the choice to the client.
type ToplevelConfigure struct {
	Width  int32
	Height int32
}

// CloseRequest is sent when the user asks for the window to be closed.
type CloseRequest struct{}

// Ping must be answered with Backend.Pong() and the same serial.
type Ping struct {
	Serial uint32
}

// Key is a key press or release. Code is a Linux evdev key code.
type Key struct {
	Code    uint32
	Pressed bool
}

// Ignored is sent for events that carry nothing the harness needs to act on.
// Source names where the event came from, for logging.
type Ignored struct {
	Source string
}

func (BufferReleased) event()    {}
func (SurfaceConfigure) event()  {}
func (ToplevelConfigure) event() {}
func (CloseRequest) event()      {}
func (Ping) event()              {}
func (Key) event()               {}
func (Ignored) event()           {}

func (ev BufferReleased) String() string {
	return fmt.Sprintf("buffer released (slot %d)", ev.Slot)
}

func (ev SurfaceConfigure) String() string {
	return fmt.Sprintf("surface configure (serial %d)", ev.Serial)
}

func (ev ToplevelConfigure) String() string {
	return fmt.Sprintf("toplevel configure (%dx%d)", ev.Width, ev.Height)
}

func (ev CloseRequest) String() string {
	return "close request"
}

func (ev Ping) String() string {
	return fmt.Sprintf("ping (serial %d)", ev.Serial)
}

func (ev Key) String() string {
	if ev.Pressed {
		return fmt.Sprintf("key %d pressed", ev.Code)
	}
	return fmt.Sprintf("key %d released", ev.Code)
}

func (ev Ignored) String() string {
	return fmt.Sprintf("ignored (%s)", ev.Source)
}

// Linux evdev key codes for the keys the harness responds to.
const (
	KeyEscape uint32 = 1
	KeySpace  uint32 = 57
)
