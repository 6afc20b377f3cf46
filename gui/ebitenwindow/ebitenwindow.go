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

package ebitenwindow

import (
	"fmt"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/logger"
	"github.com/jetsetilly/fifopacer/notifications"
)

// Sentinal error patterns.
const (
	WrongType = "ebitenwindow: %T was not created by this backend"
	Ended     = "ebitenwindow: window has gone"
	GameError = "ebitenwindow: %v"
)

// frame is the state of the surfaces at the time the primary surface was
// committed
type frame struct {
	primary *Buffer
	overlay *Buffer
	rect    image.Rectangle
	paced   bool
}

// Backend implements the compositor.Backend interface.
type Backend struct {
	// crit protects everything below it
	crit sync.Mutex
	cond *sync.Cond

	title  string
	width  int
	height int

	primary *Surface
	overlay *Surface

	// next is the frame waiting to be drawn and shown is the frame most
	// recently drawn
	next  *frame
	shown *frame

	vsync bool

	serial  uint32
	pending []compositor.Event

	// the window has been shown and the game is running
	running bool

	// the harness has finished with the backend
	closed bool

	// the game has ended
	ended error
	done  bool

	closeSent bool
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend(width, height int) *Backend {
	b := &Backend{
		width:  width,
		height: height,
		vsync:  true,
	}
	b.cond = sync.NewCond(&b.crit)
	return b
}

// Run the ebiten game loop. Must be called from the main goroutine. Returns
// when Close() is called or when the window has gone.
func (b *Backend) Run() error {
	ebiten.SetWindowSize(b.width, b.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetVsyncEnabled(true)

	b.crit.Lock()
	if b.title != "" {
		ebiten.SetWindowTitle(b.title)
	}
	b.crit.Unlock()

	err := ebiten.RunGame(&game{b: b})

	b.crit.Lock()
	defer b.crit.Unlock()
	b.done = true
	b.ended = err
	b.cond.Broadcast()

	logger.Logf(logger.Allow, "ebitenwindow", "game loop ended with %d events unhandled", len(b.pending))

	if err != nil {
		return curated.Errorf(GameError, err)
	}
	return nil
}

// CreateBuffer implements the compositor.Allocator interface.
func (b *Backend) CreateBuffer(col compositor.Color, slot int) (compositor.Buffer, error) {
	return &Buffer{slot: slot, col: col}, nil
}

// CreateSurface implements the compositor.Backend interface.
func (b *Backend) CreateSurface() (compositor.Surface, error) {
	return &Surface{b: b}, nil
}

// CreateSubsurface implements the compositor.Backend interface.
func (b *Backend) CreateSubsurface(parent compositor.Surface) (compositor.Subsurface, error) {
	if _, ok := parent.(*Surface); !ok {
		return nil, curated.Errorf(WrongType, parent)
	}
	s := &Surface{b: b}
	b.crit.Lock()
	b.overlay = s
	b.crit.Unlock()
	return s, nil
}

// CreateWindow implements the compositor.Backend interface.
func (b *Backend) CreateWindow(primary compositor.Surface, title string) error {
	p, ok := primary.(*Surface)
	if !ok {
		return curated.Errorf(WrongType, primary)
	}

	b.crit.Lock()
	defer b.crit.Unlock()
	b.primary = p
	b.title = title
	ebiten.SetWindowTitle(title)

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

// Pong implements the compositor.Backend interface.
func (b *Backend) Pong(serial uint32) {
}

// Notify implements the notifications.Notify interface.
func (b *Backend) Notify(notice notifications.Notice) error {
	b.crit.Lock()
	defer b.crit.Unlock()
	ebiten.SetWindowTitle(fmt.Sprintf("%s [%s]", b.title, notifications.Title(notice)))
	return nil
}

// Close implements the compositor.Backend interface. The game loop ends on
// the next update.
func (b *Backend) Close() error {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.closed = true
	b.cond.Broadcast()
	return nil
}

// Interrupt queues a close request, as though the window's close button had
// been pressed. Safe to call from any goroutine.
func (b *Backend) Interrupt() {
	b.crit.Lock()
	defer b.crit.Unlock()
	if !b.closeSent {
		b.closeSent = true
		b.push(compositor.CloseRequest{})
	}
}

// WaitEvent implements the compositor.Backend interface.
func (b *Backend) WaitEvent() (compositor.Event, error) {
	b.crit.Lock()
	defer b.crit.Unlock()

	for len(b.pending) == 0 && !b.done {
		b.cond.Wait()
	}

	if len(b.pending) == 0 {
		if b.ended != nil {
			return nil, curated.Errorf(GameError, b.ended)
		}
		return nil, curated.Errorf(Ended)
	}

	ev := b.pending[0]
	b.pending = b.pending[1:]
	return ev, nil
}

// push an event onto the queue. the critical section must be held
func (b *Backend) push(ev ...compositor.Event) {
	b.pending = append(b.pending, ev...)
	b.cond.Broadcast()
}

// release the primary buffer of the frame. the critical section must be held
func (b *Backend) release(f *frame) {
	if f != nil && f.primary != nil {
		b.push(compositor.BufferReleased{Slot: f.primary.slot})
	}
}

// commit is called by the harness when the primary surface is committed
func (b *Backend) commit(f *frame) {
	b.crit.Lock()
	defer b.crit.Unlock()

	b.vsync = f.paced

	if f.paced {
		for b.next != nil && !b.done && !b.closed {
			b.cond.Wait()
		}
	} else if b.next != nil {
		// the frame was never shown
		if b.next.primary != f.primary {
			b.release(b.next)
		}
	}

	b.next = f
}
