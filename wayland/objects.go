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
	"github.com/jetsetilly/fifopacer/compositor"
)

// Buffer implements compositor.Buffer.
type Buffer struct {
	id   uint32
	slot int
}

// Slot implements the compositor.Buffer interface.
func (buf *Buffer) Slot() int {
	return buf.slot
}

// Viewport implements compositor.Viewport with wp_viewport.
type Viewport struct {
	b  *Backend
	id uint32
}

// SetSource implements the compositor.Viewport interface.
func (vp *Viewport) SetSource(x, y, w, h float64) {
	vp.b.conn.send(newRequest(vp.id, opViewportSetSource).fixed(x).fixed(y).fixed(w).fixed(h))
}

// SetDestination implements the compositor.Viewport interface.
func (vp *Viewport) SetDestination(w, h int32) {
	vp.b.conn.send(newRequest(vp.id, opViewportSetDestination).int32(w).int32(h))
}

// Surface implements compositor.Surface with wl_surface.
type Surface struct {
	b        *Backend
	id       uint32
	viewport *Viewport
}

// Viewport implements the compositor.Surface interface.
func (s *Surface) Viewport() compositor.Viewport {
	return s.viewport
}

// Attach implements the compositor.Surface interface. A nil buffer removes
// the content of the surface.
func (s *Surface) Attach(buf compositor.Buffer) {
	var id uint32
	if buf != nil {
		id = buf.(*Buffer).id
	}
	s.b.conn.send(newRequest(s.id, opSurfaceAttach).uint32(id).int32(0).int32(0))
}

// Commit implements the compositor.Surface interface.
func (s *Surface) Commit() {
	s.b.conn.send(newRequest(s.id, opSurfaceCommit))
}

// Subsurface implements compositor.Subsurface with wl_subsurface.
type Subsurface struct {
	*Surface
	role uint32
}

// SetPosition implements the compositor.Subsurface interface.
func (s *Subsurface) SetPosition(x, y int32) {
	s.b.conn.send(newRequest(s.role, opSubsurfaceSetPosition).int32(x).int32(y))
}

// Pacer implements compositor.Pacer with wp_fifo_v1.
type Pacer struct {
	b  *Backend
	id uint32
}

// SetBarrier implements the compositor.Pacer interface.
func (p *Pacer) SetBarrier() {
	p.b.conn.send(newRequest(p.id, opFifoSetBarrier))
}

// WaitBarrier implements the compositor.Pacer interface.
func (p *Pacer) WaitBarrier() {
	p.b.conn.send(newRequest(p.id, opFifoWaitBarrier))
}
