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

package notifications

// Notice describes a change in presentation.
type Notice string

// List of defined notifications.
const (
	// frames are paced by the compositor
	NotifyPresentFifo Notice = "NotifyPresentFifo"

	// fifo was requested but the compositor has no pacing support. frames are
	// presented as they would be for mailbox
	NotifyPresentFifoUnavailable Notice = "NotifyPresentFifoUnavailable"

	// frames are not paced
	NotifyPresentMailbox Notice = "NotifyPresentMailbox"
)

// Notify is implemented by backends that want to know about changes in
// presentation.
type Notify interface {
	Notify(notice Notice) error
}

// Title returns a short description of the notice suitable for a window
// title. Returns the empty string for unknown notices.
func Title(notice Notice) string {
	switch notice {
	case NotifyPresentFifo:
		return "fifo"
	case NotifyPresentFifoUnavailable:
		return "fifo (unavailable)"
	case NotifyPresentMailbox:
		return "mailbox"
	}
	return ""
}
