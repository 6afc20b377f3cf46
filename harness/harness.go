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

package harness

import (
	"fmt"
	"io"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/google/uuid"
	"github.com/jetsetilly/fifopacer/assert"
	"github.com/jetsetilly/fifopacer/bufferpool"
	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/frameclock"
	"github.com/jetsetilly/fifopacer/logger"
	"github.com/jetsetilly/fifopacer/notifications"
	"github.com/jetsetilly/fifopacer/presentation"
	"github.com/jetsetilly/fifopacer/scheduler"
)

// Sentinal error patterns.
const (
	SetupError = "harness: setup: %v"
	LoopError  = "harness: %v"
)

// DefaultTitle is used for the window if Config.Title is empty.
const DefaultTitle = "fifopacer"

// Config is passed to NewState().
type Config struct {
	// the presentation mode at startup
	Mode presentation.Mode

	// window title
	Title string

	// status lines are written to output. if output is nil then status lines
	// are discarded
	Output io.Writer

	// time source for the frame clock. nil means time.Now
	Now func() time.Time
}

// State is the context record for a single run of the harness.
type State struct {
	// a unique identifier for the run
	Session uuid.UUID

	backend compositor.Backend
	output  io.Writer

	running bool

	// the goroutine that entered Run(). unclaimed until Run() is called
	owner assert.Owner

	Policy    *presentation.Policy
	Pool      *bufferpool.Pool
	Scheduler *scheduler.Scheduler

	// number of events handled, by type
	Events map[string]int
}

// NewState is the preferred method of initialisation for the State type. The
// compositor objects required by the harness are created during
// initialisation. The backend is not closed on error.
func NewState(backend compositor.Backend, cfg Config) (*State, error) {
	st := &State{
		Session: uuid.New(),
		backend: backend,
		output:  cfg.Output,
		running: true,
		Events:  make(map[string]int),
	}

	if st.output == nil {
		st.output = io.Discard
	}

	title := cfg.Title
	if title == "" {
		title = DefaultTitle
	}

	logger.Logf(logger.Allow, "harness", "session %s", st.Session)

	primary, err := backend.CreateSurface()
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	overlay, err := backend.CreateSubsurface(primary)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	err = backend.CreateWindow(primary, title)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	// availability of pacing is decided once. the policy remembers the answer
	pacer, ok := backend.CreatePacer(primary)
	if !ok {
		logger.Log(logger.Allow, "harness", "compositor has no pacing support. fifo will present as mailbox")
	}
	st.Policy = presentation.NewPolicy(cfg.Mode, ok)

	st.Pool, err = bufferpool.Allocate(backend, bufferpool.Size, compositor.White)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	dark, err := backend.CreateBuffer(compositor.Black, -1)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	scene := scheduler.Scene{
		Primary: primary,
		Overlay: overlay,
		Pacer:   pacer,
		Dark:    dark,
	}

	st.Scheduler = scheduler.NewScheduler(scene, st.Pool, st.Policy, frameclock.NewClock(cfg.Now), st.output)

	st.notify()

	logger.Logf(logger.Allow, "harness", "initial presentation: %s", st.Policy)

	return st, nil
}

// Running returns false once the harness has been asked to stop.
func (st *State) Running() bool {
	return st.running
}

// Stop the harness. Run() will return before waiting for the next event.
func (st *State) Stop() {
	st.running = false
}

// Run the event loop. Returns nil if the loop ended because the window was
// closed or the escape key was pressed. Any other reason is an error.
func (st *State) Run() error {
	st.owner.Claim()

	fmt.Fprintln(st.output, "Press ESC to exit.")
	fmt.Fprintln(st.output, "Press SPACE to switch between fifo and mailbox.")
	fmt.Fprintln(st.output)

	for st.running {
		ev, err := st.backend.WaitEvent()
		if err != nil {
			logger.Logf(logger.Allow, "harness", "fatal: %v", err)
			return curated.Errorf(LoopError, err)
		}
		st.Handle(ev)
	}

	logger.Logf(logger.Allow, "harness", "stopped after %d frames", st.Scheduler.Rendered())

	return nil
}

// Handle a single event. Handle must be called from the goroutine that called
// Run(), if Run() has been called.
func (st *State) Handle(ev compositor.Event) {
	st.owner.Check("harness: event loop")

	st.Events[fmt.Sprintf("%T", ev)]++

	switch ev := ev.(type) {
	case compositor.BufferReleased:
		// the dark buffer is not part of the pool. releasing it does not
		// produce a frame
		if ev.Slot < 0 {
			return
		}
		if !st.Pool.Release(ev.Slot) {
			logger.Logf(logger.Allow, "harness", "unexpected release of slot %d", ev.Slot)
		}

		// a render is attempted after every release, even an unexpected one
		st.Scheduler.Drain()

	case compositor.SurfaceConfigure:
		st.backend.AckConfigure(ev.Serial)
		st.Scheduler.Drain()

	case compositor.ToplevelConfigure:
		st.Scheduler.Configure(ev.Width, ev.Height)
		logger.Logf(logger.Allow, "harness", "configure: %dx%d", st.Scheduler.Geometry().Width, st.Scheduler.Geometry().Height)

	case compositor.CloseRequest:
		st.running = false

	case compositor.Ping:
		st.backend.Pong(ev.Serial)

	case compositor.Key:
		if !ev.Pressed {
			return
		}
		switch ev.Code {
		case compositor.KeyEscape:
			st.running = false
		case compositor.KeySpace:
			st.Toggle()
		}

	default:
		logger.Logf(logger.Allow, "harness", "ignored: %v", ev)
	}
}

// Toggle the presentation mode. The new mode applies from the next frame.
func (st *State) Toggle() {
	st.Policy.Toggle()
	fmt.Fprintln(st.output)
	fmt.Fprintln(st.output, st.Policy.Status())
	fmt.Fprintln(st.output)
	logger.Logf(logger.Allow, "harness", "presentation: %s", st.Policy)
	st.notify()
}

// notify the backend of the effective presentation mode, if the backend wants
// to know
func (st *State) notify() {
	n, ok := st.backend.(notifications.Notify)
	if !ok {
		return
	}

	var notice notifications.Notice
	switch {
	case st.Policy.Mode() == presentation.Mailbox:
		notice = notifications.NotifyPresentMailbox
	case st.Policy.PacingAvailable():
		notice = notifications.NotifyPresentFifo
	default:
		notice = notifications.NotifyPresentFifoUnavailable
	}

	if err := n.Notify(notice); err != nil {
		logger.Logf(logger.Allow, "harness", "notification: %v", err)
	}
}

// Dump writes a graphviz representation of the State to the writer.
func (st *State) Dump(w io.Writer) {
	memviz.Map(w, st)
}
