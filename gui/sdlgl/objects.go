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

package sdlgl

import (
	"github.com/jetsetilly/fifopacer/compositor"
)

// Buffer implements compositor.Buffer.
type Buffer struct {
	slot int
	col  compositor.Color
}

// Slot implements the compositor.Buffer interface.
func (buf *Buffer) Slot() int {
	return buf.slot
}

type viewport struct {
	dstWidth  int32
	dstHeight int32
}

// SetSource implements the compositor.Viewport interface. Buffers are a
// single pixel so the source is always the whole buffer.
func (vp *viewport) SetSource(x, y, w, h float64) {
}

// SetDestination implements the compositor.Viewport interface.
func (vp *viewport) SetDestination(w, h int32) {
	vp.dstWidth = w
	vp.dstHeight = h
}

// Surface implements compositor.Surface and compositor.Subsurface.
type Surface struct {
	b      *Backend
	parent *Surface

	viewport viewport

	// pending state
	attached *Buffer
	x, y     int32

	// committed state
	current  *Buffer
	currentX int32
	currentY int32

	barrier bool
	waiting bool
}

// Viewport implements the compositor.Surface interface.
func (s *Surface) Viewport() compositor.Viewport {
	return &s.viewport
}

// Attach implements the compositor.Surface interface.
func (s *Surface) Attach(buf compositor.Buffer) {
	if buf == nil {
		s.attached = nil
		return
	}
	s.attached, _ = buf.(*Buffer)
}

// SetPosition implements the compositor.Subsurface interface.
func (s *Surface) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Commit implements the compositor.Surface interface. Committing the primary
// surface presents a frame.
func (s *Surface) Commit() {
	s.current = s.attached
	s.currentX = s.x
	s.currentY = s.y

	paced := s.barrier && s.waiting
	s.barrier = false
	s.waiting = false

	if s == s.b.primary {
		s.b.present(paced)
	}
}

// Pacer implements compositor.Pacer.
type Pacer struct {
	surface *Surface
}

// SetBarrier implements the compositor.Pacer interface.
func (p *Pacer) SetBarrier() {
	p.surface.barrier = true
}

// WaitBarrier implements the compositor.Pacer interface.
func (p *Pacer) WaitBarrier() {
	p.surface.waiting = true
}
