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

// Package presentation holds the presentation policy: whether frames should
// be paced (Fifo) or submitted as fast as possible (Mailbox), and whether the
// compositor is able to pace them at all.
//
// The requested mode and the availability of pacing are independent. A Fifo
// request without pacing support is honoured in name only and frames are
// submitted as they would be in Mailbox mode.
package presentation

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/fifopacer/curated"
)

// Mode is the requested presentation mode.
type Mode int

// List of valid Mode values.
const (
	// at most one frame in flight. each commit waits for the previous frame
	// to be presented
	Fifo Mode = iota

	// commits are never held back. the most recent frame wins
	Mailbox
)

func (m Mode) String() string {
	switch m {
	case Fifo:
		return "fifo"
	case Mailbox:
		return "mailbox"
	}
	return "unknown"
}

// UnknownMode is the pattern for errors returned by ParseMode().
const UnknownMode = "presentation: unknown mode: %s"

// ParseMode converts a string to a Mode. Case insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo":
		return Fifo, nil
	case "mailbox":
		return Mailbox, nil
	}
	return Fifo, curated.Errorf(UnknownMode, s)
}

// Policy is the current presentation mode and the availability of pacing.
type Policy struct {
	mode            Mode
	pacingAvailable bool
}

// NewPolicy is the preferred method of initialisation for the Policy type.
// The availability of pacing is fixed for the lifetime of the Policy.
func NewPolicy(mode Mode, pacingAvailable bool) *Policy {
	return &Policy{
		mode:            mode,
		pacingAvailable: pacingAvailable,
	}
}

func (p *Policy) String() string {
	if p.mode == Fifo && !p.pacingAvailable {
		return fmt.Sprintf("%s (unavailable)", p.mode)
	}
	return p.mode.String()
}

// Mode returns the requested mode.
func (p *Policy) Mode() Mode {
	return p.mode
}

// PacingAvailable returns true if the compositor supports pacing.
func (p *Policy) PacingAvailable() bool {
	return p.pacingAvailable
}

// Throttled returns true if frames should be paced. This is only the case
// when Fifo is requested and pacing is available.
func (p *Policy) Throttled() bool {
	return p.mode == Fifo && p.pacingAvailable
}

// Toggle switches between Fifo and Mailbox and returns the new mode. The
// change applies to the next frame.
func (p *Policy) Toggle() Mode {
	switch p.mode {
	case Fifo:
		p.mode = Mailbox
	default:
		p.mode = Fifo
	}
	return p.mode
}

// Status returns the line shown to the user describing the effective mode.
func (p *Policy) Status() string {
	return fmt.Sprintf("presenting with %s", p.String())
}
