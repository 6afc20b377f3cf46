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

package headless

import (
	"github.com/jetsetilly/fifopacer/compositor"
)

// Buffer implements compositor.Buffer.
type Buffer struct {
	slot  int
	Color compositor.Color
}

// Slot implements the compositor.Buffer interface.
func (b *Buffer) Slot() int {
	return b.slot
}

// Viewport implements compositor.Viewport.
type Viewport struct {
	SrcX, SrcY, SrcWidth, SrcHeight float64
	DstWidth, DstHeight             int32
}

// SetSource implements the compositor.Viewport interface.
func (vp *Viewport) SetSource(x, y, w, h float64) {
	vp.SrcX, vp.SrcY, vp.SrcWidth, vp.SrcHeight = x, y, w, h
}

// SetDestination implements the compositor.Viewport interface.
func (vp *Viewport) SetDestination(w, h int32) {
	vp.DstWidth, vp.DstHeight = w, h
}

// Surface implements compositor.Surface and compositor.Subsurface.
type Surface struct {
	comp     *Compositor
	viewport Viewport
	attached *Buffer

	parent *Surface
	child  *Surface

	// position relative to parent. only used for subsurfaces
	X, Y int32

	// pacing state for the next commit
	barrier bool
	waiting bool

	// number of times the surface has been committed
	Commits int
}

// Viewport implements the compositor.Surface interface.
func (s *Surface) Viewport() compositor.Viewport {
	return &s.viewport
}

// Attach implements the compositor.Surface interface.
func (s *Surface) Attach(b compositor.Buffer) {
	if b == nil {
		s.attached = nil
		return
	}
	s.attached = b.(*Buffer)
}

// Commit implements the compositor.Surface interface.
func (s *Surface) Commit() {
	s.Commits++

	paced := s.barrier && s.waiting
	s.barrier = false
	s.waiting = false

	// subsurface state is applied when the parent is committed
	if s == s.comp.window {
		s.comp.present(s, paced)
	}
}

// SetPosition implements the compositor.Subsurface interface.
func (s *Surface) SetPosition(x, y int32) {
	s.X, s.Y = x, y
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
