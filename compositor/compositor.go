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

// Package compositor defines the contracts between the frame pacing core and
// whatever is putting pixels on the screen. The core (the scheduler and the
// harness) only ever talks to the interfaces in this package. The wayland,
// sdlgl, ebitenwindow and headless packages provide implementations.
//
// The model follows the Wayland protocol closely: surfaces have buffers
// attached and then committed, a viewport decouples a buffer's size from the
// size it is displayed at, and a subsurface is positioned relative to its
// parent. Backends that are not Wayland emulate this model.
//
// Events are delivered one at a time by Backend.WaitEvent(). The Event type
// is closed: only the types in this package implement it.
package compositor

// Buffer is a presentable buffer. Slot is the identity given to the buffer
// when it was created, which is returned with the BufferReleased event.
type Buffer interface {
	Slot() int
}

// Viewport scales a surface's buffer for display.
type Viewport interface {
	// SetSource sets the region of the buffer to be displayed
	SetSource(x, y, w, h float64)

	// SetDestination sets the size the source region is displayed at
	SetDestination(w, h int32)
}

// Surface is a rectangular region of composited content.
type Surface interface {
	Viewport() Viewport

	// Attach the buffer as the pending content of the surface. The buffer is
	// not displayed until Commit() is called.
	Attach(b Buffer)

	// Commit pending state
	Commit()
}

// Subsurface is a surface positioned relative to a parent surface. Its state
// is applied when the parent surface is committed.
type Subsurface interface {
	Surface
	SetPosition(x, y int32)
}

// Pacer is the per surface handle of a presentation pacing extension. A
// barrier set and then waited on before a commit means the commit will not
// be applied until the previous barrier has been presented.
type Pacer interface {
	SetBarrier()
	WaitBarrier()
}

// Allocator creates buffers filled with a single colour.
type Allocator interface {
	// CreateBuffer creates a 1x1 ARGB8888 buffer. The slot is returned in
	// BufferReleased events for the buffer. A negative slot means the buffer
	// is not part of a pool.
	CreateBuffer(col Color, slot int) (Buffer, error)
}

// Backend is a connection to a compositor.
type Backend interface {
	Allocator

	// CreateSurface creates a new top level surface
	CreateSurface() (Surface, error)

	// CreateSubsurface creates a new surface as a child of the parent surface
	CreateSubsurface(parent Surface) (Subsurface, error)

	// CreateWindow gives the surface the role of a top level window
	CreateWindow(primary Surface, title string) error

	// CreatePacer returns a Pacer for the surface. The second return value is
	// false if the backend has no pacing support, in which case the Pacer is
	// nil. The answer does not change during the lifetime of the backend.
	CreatePacer(s Surface) (Pacer, bool)

	// AckConfigure acknowledges a SurfaceConfigure event
	AckConfigure(serial uint32)

	// Pong answers a Ping event
	Pong(serial uint32)

	// WaitEvent blocks until the next event is available. An error is always
	// fatal to the backend.
	WaitEvent() (Event, error)

	// Close the connection to the compositor
	Close() error
}
