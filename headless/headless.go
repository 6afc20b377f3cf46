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

// Package headless is an in-process compositor. It implements the
// compositor.Backend interface without a display and records every request
// made of it.
//
// Events are delivered in the order they are pushed with Push(), or created
// by the convenience functions Configure(), Release() etc. When the event
// queue is empty WaitEvent() returns an error, as a real backend would if the
// connection to the compositor was lost.
//
// With the WithAutoRelease() option the compositor releases a buffer when it
// is replaced on the primary surface by a newer commit. For commits that
// waited on a pacing barrier the release is held back until the next
// simulated refresh, which makes the compositor usable for measuring the
// difference between paced and unpaced presentation.
package headless

import (
	"time"

	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/logger"
	"github.com/jetsetilly/fifopacer/notifications"
)

// Sentinal error patterns.
const (
	MissingGlobal = "headless: missing global: %s"
	Exhausted     = "headless: event queue exhausted"
	Closed        = "headless: connection closed"
)

// Names of globals that can be removed with the WithoutGlobal() option. The
// names are the same as the Wayland interfaces they stand for.
const (
	GlobalCompositor    = "wl_compositor"
	GlobalSubcompositor = "wl_subcompositor"
	GlobalShm           = "wl_shm"
	GlobalViewporter    = "wp_viewporter"
	GlobalWmBase        = "xdg_wm_base"
)

// Commit is the record of a commit of the primary surface.
type Commit struct {
	Slot   int
	Width  int32
	Height int32

	// state of the overlay surface at the time of the commit
	OverlayX      int32
	OverlayY      int32
	OverlayWidth  int32
	OverlayHeight int32
	OverlaySlot   int

	// whether the commit waited on a pacing barrier
	Paced bool
}

// a release that is held back until a simulated refresh
type heldEvent struct {
	at time.Time
	ev compositor.Event
}

// Option values are passed to NewCompositor().
type Option func(*Compositor)

// WithoutPacing removes pacing support from the compositor.
func WithoutPacing() Option {
	return func(c *Compositor) {
		c.pacing = false
	}
}

// WithoutGlobal removes the named global from the compositor. Creating an
// object that requires the global will fail.
func WithoutGlobal(name string) Option {
	return func(c *Compositor) {
		c.missing[name] = true
	}
}

// WithAutoRelease causes buffers displaced from the primary surface to be
// released. The refresh argument is the simulated refresh interval applied to
// paced commits. A refresh of zero means paced commits are released
// immediately.
func WithAutoRelease(refresh time.Duration) Option {
	return func(c *Compositor) {
		c.autoRelease = true
		c.refresh = refresh
	}
}

// WithInitialSize causes a configure sequence with the size to be queued when
// the window is created.
func WithInitialSize(width, height int32) Option {
	return func(c *Compositor) {
		c.initialWidth = width
		c.initialHeight = height
	}
}

// WithDuration causes a CloseRequest to be delivered once the duration has
// elapsed. The duration is measured from when the window is created.
func WithDuration(d time.Duration) Option {
	return func(c *Compositor) {
		c.duration = d
	}
}

// WithClock replaces the time source and the sleep function used for
// simulated refreshes.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(c *Compositor) {
		c.now = now
		c.sleep = sleep
	}
}

// Compositor implements compositor.Backend.
type Compositor struct {
	pacing  bool
	missing map[string]bool

	now   func() time.Time
	sleep func(time.Duration)

	queue []compositor.Event
	held  []heldEvent

	autoRelease bool
	refresh     time.Duration
	lastPresent time.Time

	initialWidth  int32
	initialHeight int32
	serial        uint32

	duration   time.Duration
	deadline   time.Time
	closeSent  bool
	connClosed bool

	window    *Surface
	displayed *Buffer

	// the record of requests
	Title   string
	Buffers []*Buffer
	Commits []Commit
	Acks    []uint32
	Pongs   []uint32
	Notices []notifications.Notice

	// the largest number of pool buffers attached and not yet released
	MaxInFlight int
	inFlight    int
}

// NewCompositor is the preferred method of initialisation for the Compositor
// type.
func NewCompositor(opts ...Option) *Compositor {
	c := &Compositor{
		pacing:  true,
		missing: make(map[string]bool),
		now:     time.Now,
		sleep:   time.Sleep,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Compositor) require(global string) error {
	if c.missing[global] {
		return curated.Errorf(MissingGlobal, global)
	}
	return nil
}

// CreateBuffer implements the compositor.Allocator interface.
func (c *Compositor) CreateBuffer(col compositor.Color, slot int) (compositor.Buffer, error) {
	if err := c.require(GlobalShm); err != nil {
		return nil, err
	}
	b := &Buffer{slot: slot, Color: col}
	c.Buffers = append(c.Buffers, b)
	return b, nil
}

// CreateSurface implements the compositor.Backend interface.
func (c *Compositor) CreateSurface() (compositor.Surface, error) {
	if err := c.require(GlobalCompositor); err != nil {
		return nil, err
	}
	if err := c.require(GlobalViewporter); err != nil {
		return nil, err
	}
	return &Surface{comp: c}, nil
}

// CreateSubsurface implements the compositor.Backend interface.
func (c *Compositor) CreateSubsurface(parent compositor.Surface) (compositor.Subsurface, error) {
	if err := c.require(GlobalSubcompositor); err != nil {
		return nil, err
	}
	s, err := c.CreateSurface()
	if err != nil {
		return nil, err
	}
	sub := s.(*Surface)
	sub.parent = parent.(*Surface)
	sub.parent.child = sub
	return sub, nil
}

// CreateWindow implements the compositor.Backend interface.
func (c *Compositor) CreateWindow(primary compositor.Surface, title string) error {
	if err := c.require(GlobalWmBase); err != nil {
		return err
	}
	c.window = primary.(*Surface)
	c.Title = title

	if c.duration > 0 {
		c.deadline = c.now().Add(c.duration)
	}

	if c.initialWidth > 0 || c.initialHeight > 0 {
		c.Configure(c.initialWidth, c.initialHeight)
	}

	return nil
}

// CreatePacer implements the compositor.Backend interface.
func (c *Compositor) CreatePacer(s compositor.Surface) (compositor.Pacer, bool) {
	if !c.pacing {
		return nil, false
	}
	return &Pacer{surface: s.(*Surface)}, true
}

// AckConfigure implements the compositor.Backend interface.
func (c *Compositor) AckConfigure(serial uint32) {
	c.Acks = append(c.Acks, serial)
}

// Pong implements the compositor.Backend interface.
func (c *Compositor) Pong(serial uint32) {
	c.Pongs = append(c.Pongs, serial)
}

// Notify implements the notifications.Notify interface.
func (c *Compositor) Notify(notice notifications.Notice) error {
	c.Notices = append(c.Notices, notice)
	return nil
}

// Close implements the compositor.Backend interface.
func (c *Compositor) Close() error {
	c.connClosed = true
	return nil
}

// Push an event onto the end of the event queue.
func (c *Compositor) Push(ev compositor.Event) {
	c.queue = append(c.queue, ev)
}

// Configure pushes a ToplevelConfigure event followed by a SurfaceConfigure
// event with a new serial.
func (c *Compositor) Configure(width, height int32) {
	c.serial++
	c.Push(compositor.ToplevelConfigure{Width: width, Height: height})
	c.Push(compositor.SurfaceConfigure{Serial: c.serial})
}

// Release pushes a BufferReleased event for the slot.
func (c *Compositor) Release(slot int) {
	c.Push(compositor.BufferReleased{Slot: slot})
}

// Pending returns the number of events waiting to be delivered.
func (c *Compositor) Pending() int {
	return len(c.queue) + len(c.held)
}

// WaitEvent implements the compositor.Backend interface.
func (c *Compositor) WaitEvent() (compositor.Event, error) {
	if c.connClosed {
		return nil, curated.Errorf(Closed)
	}

	if !c.deadline.IsZero() && !c.closeSent && c.now().After(c.deadline) {
		c.closeSent = true
		return compositor.CloseRequest{}, nil
	}

	if len(c.queue) > 0 {
		ev := c.queue[0]
		c.queue = c.queue[1:]
		return c.deliver(ev), nil
	}

	if len(c.held) > 0 {
		h := c.held[0]
		c.held = c.held[1:]
		if d := h.at.Sub(c.now()); d > 0 {
			c.sleep(d)
		}
		return c.deliver(h.ev), nil
	}

	return nil, curated.Errorf(Exhausted)
}

// deliver keeps track of buffers in flight
func (c *Compositor) deliver(ev compositor.Event) compositor.Event {
	if r, ok := ev.(compositor.BufferReleased); ok && r.Slot >= 0 {
		if c.inFlight > 0 {
			c.inFlight--
		}
	}
	return ev
}

// present is called on commit of the window surface
func (c *Compositor) present(s *Surface, paced bool) {
	cm := Commit{
		Slot:        -1,
		Width:       s.viewport.DstWidth,
		Height:      s.viewport.DstHeight,
		OverlaySlot: -1,
		Paced:       paced,
	}
	if s.attached != nil {
		cm.Slot = s.attached.slot
	}
	if s.child != nil {
		cm.OverlayX = s.child.X
		cm.OverlayY = s.child.Y
		cm.OverlayWidth = s.child.viewport.DstWidth
		cm.OverlayHeight = s.child.viewport.DstHeight
		if s.child.attached != nil {
			cm.OverlaySlot = s.child.attached.slot
		}
	}
	c.Commits = append(c.Commits, cm)

	if s.attached != nil && s.attached.slot >= 0 && s.attached != c.displayed {
		c.inFlight++
		if c.inFlight > c.MaxInFlight {
			c.MaxInFlight = c.inFlight
		}
	}

	displaced := c.displayed
	c.displayed = s.attached

	if !c.autoRelease {
		return
	}

	if displaced == nil || displaced == s.attached {
		return
	}

	ev := compositor.BufferReleased{Slot: displaced.slot}
	if paced && c.refresh > 0 {
		at := c.lastPresent
		if n := c.now(); at.Before(n) {
			at = n
		}
		at = at.Add(c.refresh)
		c.lastPresent = at
		c.held = append(c.held, heldEvent{at: at, ev: ev})
		logger.Logf(logger.Allow, "headless", "slot %d release held until next refresh", displaced.slot)
		return
	}

	c.Push(ev)
}
