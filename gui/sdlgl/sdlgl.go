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
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/logger"
	"github.com/jetsetilly/fifopacer/notifications"
	"github.com/veandco/go-sdl2/sdl"
)

// Sentinal error patterns.
const (
	InitError  = "sdlgl: %v"
	WrongType  = "sdlgl: %T was not created by this backend"
	NoWindow   = "sdlgl: window has not been created"
	EventError = "sdlgl: %v"
)

// Backend implements the compositor.Backend interface.
type Backend struct {
	window    *sdl.Window
	glContext sdl.GLContext

	title string

	primary *Surface
	overlay *Surface

	// the buffer currently shown by the primary surface
	displayed *Buffer

	// the current swap interval. -1 means not yet set
	swapInterval int

	serial  uint32
	pending []compositor.Event
}

// NewBackend is the preferred method of initialisation for the Backend type.
// The window is created hidden and is shown by CreateWindow().
func NewBackend(width, height int32) (*Backend, error) {
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf(InitError, err)
	}

	b := &Backend{
		swapInterval: -1,
	}

	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	_ = sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	b.window, err = sdl.CreateWindow("", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		width, height, sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE|sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf(InitError, err)
	}

	b.glContext, err = b.window.GLCreateContext()
	if err != nil {
		b.destroy()
		return nil, curated.Errorf(InitError, err)
	}

	err = b.window.GLMakeCurrent(b.glContext)
	if err != nil {
		b.destroy()
		return nil, curated.Errorf(InitError, err)
	}

	err = gl.Init()
	if err != nil {
		b.destroy()
		return nil, curated.Errorf(InitError, err)
	}

	logger.Logf(logger.Allow, "sdlgl", "opengl %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return b, nil
}

func (b *Backend) destroy() {
	if b.glContext != nil {
		sdl.GLDeleteContext(b.glContext)
		b.glContext = nil
	}
	if b.window != nil {
		_ = b.window.Destroy()
		b.window = nil
	}
	sdl.Quit()
}

// CreateBuffer implements the compositor.Allocator interface.
func (b *Backend) CreateBuffer(col compositor.Color, slot int) (compositor.Buffer, error) {
	return &Buffer{slot: slot, col: col}, nil
}

// CreateSurface implements the compositor.Backend interface.
func (b *Backend) CreateSurface() (compositor.Surface, error) {
	return &Surface{b: b}, nil
}

// CreateSubsurface implements the compositor.Backend interface. Only one
// subsurface is supported.
func (b *Backend) CreateSubsurface(parent compositor.Surface) (compositor.Subsurface, error) {
	p, ok := parent.(*Surface)
	if !ok {
		return nil, curated.Errorf(WrongType, parent)
	}
	s := &Surface{b: b, parent: p}
	b.overlay = s
	return s, nil
}

// CreateWindow implements the compositor.Backend interface. The first
// configure events are queued with the current size of the window.
func (b *Backend) CreateWindow(primary compositor.Surface, title string) error {
	p, ok := primary.(*Surface)
	if !ok {
		return curated.Errorf(WrongType, primary)
	}
	b.primary = p
	b.title = title
	b.window.SetTitle(title)
	b.window.Show()

	b.configure(b.window.GetSize())

	return nil
}

// CreatePacer implements the compositor.Backend interface. Pacing is always
// available.
func (b *Backend) CreatePacer(s compositor.Surface) (compositor.Pacer, bool) {
	p, ok := s.(*Surface)
	if !ok {
		return nil, false
	}
	return &Pacer{surface: p}, true
}

// AckConfigure implements the compositor.Backend interface.
func (b *Backend) AckConfigure(serial uint32) {
}

// Pong implements the compositor.Backend interface. SDL never pings.
func (b *Backend) Pong(serial uint32) {
}

// Notify implements the notifications.Notify interface.
func (b *Backend) Notify(notice notifications.Notice) error {
	if b.window == nil {
		return nil
	}
	b.window.SetTitle(fmt.Sprintf("%s [%s]", b.title, notifications.Title(notice)))
	return nil
}

// Close implements the compositor.Backend interface.
func (b *Backend) Close() error {
	b.destroy()
	return nil
}

func (b *Backend) configure(w, h int32) {
	b.serial++
	b.pending = append(b.pending,
		compositor.ToplevelConfigure{Width: w, Height: h},
		compositor.SurfaceConfigure{Serial: b.serial})
}

// WaitEvent implements the compositor.Backend interface. Window events are
// collected before any pending event is returned so that input is not
// starved by a stream of buffer releases.
func (b *Backend) WaitEvent() (compositor.Event, error) {
	if b.window == nil {
		return nil, curated.Errorf(NoWindow)
	}

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		b.translate(ev)
	}

	for len(b.pending) == 0 {
		ev := sdl.WaitEvent()
		if ev == nil {
			return nil, curated.Errorf(EventError, sdl.GetError())
		}
		b.translate(ev)
	}

	ev := b.pending[0]
	b.pending = b.pending[1:]
	return ev, nil
}

// translate queues window and keyboard events. Every other SDL event is
// dropped.
func (b *Backend) translate(ev sdl.Event) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		b.pending = append(b.pending, compositor.CloseRequest{})

	case *sdl.WindowEvent:
		switch ev.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			b.configure(ev.Data1, ev.Data2)
		case sdl.WINDOWEVENT_CLOSE:
			b.pending = append(b.pending, compositor.CloseRequest{})
		}

	case *sdl.KeyboardEvent:
		if ev.Repeat != 0 {
			return
		}
		var code uint32
		switch ev.Keysym.Scancode {
		case sdl.SCANCODE_ESCAPE:
			code = compositor.KeyEscape
		case sdl.SCANCODE_SPACE:
			code = compositor.KeySpace
		default:
			return
		}
		b.pending = append(b.pending, compositor.Key{Code: code, Pressed: ev.State == sdl.PRESSED})
	}
}

// present the primary surface along with the overlay
func (b *Backend) present(paced bool) {
	interval := 0
	if paced {
		interval = 1
	}
	if interval != b.swapInterval {
		if err := sdl.GLSetSwapInterval(interval); err != nil {
			logger.Logf(logger.Allow, "sdlgl", "swap interval %d: %v", interval, err)
		}
		b.swapInterval = interval
	}

	// viewport sizes are in window coordinates. the drawable can be larger
	ww, wh := b.window.GetSize()
	dw, dh := b.window.GLGetDrawableSize()
	sx := float32(dw) / float32(max(ww, 1))
	sy := float32(dh) / float32(max(wh, 1))

	p := b.primary
	gl.Viewport(0, 0, dw, dh)
	if p.current != nil {
		gl.ClearColor(p.current.col.Floats())
	} else {
		gl.ClearColor(0, 0, 0, 1)
	}
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if o := b.overlay; o != nil && o.current != nil {
		x, y, w, h := scissor(dh, o.currentX, o.currentY, o.viewport.dstWidth, o.viewport.dstHeight, sx, sy)
		gl.Enable(gl.SCISSOR_TEST)
		gl.Scissor(x, y, w, h)
		gl.ClearColor(o.current.col.Floats())
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.Disable(gl.SCISSOR_TEST)
	}

	b.window.GLSwap()

	// the buffer that was on screen until the swap is no longer needed
	if b.displayed != nil && b.displayed != p.current {
		b.pending = append(b.pending, compositor.BufferReleased{Slot: b.displayed.slot})
	}
	b.displayed = p.current
}

// scissor converts a rectangle in window coordinates with the origin at the
// top left, to a rectangle in drawable coordinates with the origin at the
// bottom left.
func scissor(drawableHeight int32, x, y, w, h int32, sx, sy float32) (int32, int32, int32, int32) {
	sw := int32(float32(w) * sx)
	sh := int32(float32(h) * sy)
	return int32(float32(x) * sx), drawableHeight - int32(float32(y)*sy) - sh, sw, sh
}
