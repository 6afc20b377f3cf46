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

// Package wayland is a compositor backend that talks the Wayland wire
// protocol directly over the compositor's unix socket.
//
// Only the small part of the protocol needed by the harness is implemented.
// Globals are bound during the initial round trip with the compositor and are
// never queried again. A global that is required but not advertised is
// reported as an error when an object that needs it is first created.
//
// Requests are buffered and written to the socket when WaitEvent() is called.
package wayland

import (
	"fmt"

	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/easyterm"
	"github.com/jetsetilly/fifopacer/logger"
	"github.com/jetsetilly/fifopacer/notifications"
	"golang.org/x/sys/unix"
)

// Sentinal error patterns.
const (
	MissingGlobal = "wayland: missing global: %s"
	ProtocolError = "wayland: protocol error: %s: code %d: %s"
	WrongType     = "wayland: %T was not created by this backend"
)

// AppID is the application ID given to the window.
const AppID = "fifopacer"

// handler receives the events for an object
type handler struct {
	iface    string
	dispatch func(ev *event) error
}

// a global advertised by the registry
type global struct {
	name    uint32
	version uint32

	// the ID of the bound object. zero if not bound
	id uint32
}

// Option values are passed to Connect().
type Option func(*Backend)

// WithTerminal adds key presses from the terminal to the events returned by
// WaitEvent(). The terminal should be in cbreak mode.
func WithTerminal(tty *easyterm.Terminal) Option {
	return func(b *Backend) {
		b.tty = tty
	}
}

// Backend implements the compositor.Backend interface.
type Backend struct {
	conn *conn

	nextID   uint32
	handlers map[uint32]handler
	globals  map[string]*global

	// events waiting to be returned by WaitEvent()
	pending []compositor.Event

	tty *easyterm.Terminal

	keyboard   uint32
	xdgSurface uint32
	toplevel   uint32
	title      string
}

// Connect to the compositor named in the environment and perform the initial
// round trip.
func Connect(opts ...Option) (*Backend, error) {
	fd, err := socketFromEnv()
	if err != nil {
		return nil, err
	}

	var c *conn
	if fd >= 0 {
		logger.Logf(logger.Allow, "wayland", "using socket fd %d", fd)
		c = newConn(fd)
	} else {
		path, err := socketPath()
		if err != nil {
			return nil, err
		}
		c, err = dial(path)
		if err != nil {
			return nil, err
		}
		logger.Logf(logger.Allow, "wayland", "connected to %s", path)
	}

	b, err := newBackend(c, opts...)
	if err != nil {
		c.close()
		return nil, err
	}

	return b, nil
}

func newBackend(c *conn, opts ...Option) (*Backend, error) {
	b := &Backend{
		conn:     c,
		nextID:   displayID + 1,
		handlers: make(map[uint32]handler),
		globals:  make(map[string]*global),
	}
	for _, o := range opts {
		o(b)
	}

	b.handlers[displayID] = handler{iface: "wl_display", dispatch: b.displayEvent}

	registry := b.newObject("wl_registry", b.registryEvent)
	b.conn.send(newRequest(displayID, opDisplayGetRegistry).uint32(registry))

	err := b.roundtrip()
	if err != nil {
		return nil, err
	}

	return b, nil
}

// newObject allocates an ID for a new object and registers its event handler.
// the dispatch function can be nil if no events are expected
func (b *Backend) newObject(iface string, dispatch func(ev *event) error) uint32 {
	id := b.nextID
	b.nextID++
	if dispatch == nil {
		dispatch = b.unexpected
	}
	b.handlers[id] = handler{iface: iface, dispatch: dispatch}
	return id
}

// roundtrip blocks until the compositor has processed every request sent so
// far, handling events as they arrive.
func (b *Backend) roundtrip() error {
	var done bool
	callback := b.newObject("wl_callback", func(ev *event) error {
		done = true
		return nil
	})
	b.conn.send(newRequest(displayID, opDisplaySync).uint32(callback))

	for !done {
		if err := b.pump(); err != nil {
			return err
		}
	}

	// events that arrived alongside the callback, delete_id in particular,
	// are handled before returning
	for {
		ev, err := b.conn.next()
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
		if err := b.handle(ev); err != nil {
			return err
		}
	}
}

// pump handles a single event from the compositor or the terminal, blocking
// until one is available.
func (b *Backend) pump() error {
	if err := b.conn.flush(); err != nil {
		return err
	}

	ev, err := b.conn.next()
	if err != nil {
		return err
	}
	if ev != nil {
		return b.handle(ev)
	}

	extra := -1
	if b.tty != nil {
		extra = b.tty.Fd()
	}

	sock, ext, err := b.conn.wait(extra)
	if err != nil {
		return err
	}

	if ext {
		keys, err := b.tty.ReadKeys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			b.pending = append(b.pending, k)
		}
	}

	if sock {
		return b.conn.read()
	}

	return nil
}

func (b *Backend) handle(ev *event) error {
	h, ok := b.handlers[ev.sender]
	if !ok {
		// events for objects destroyed by the client can arrive before the
		// compositor has seen the destroy request
		return nil
	}
	ev.name = fmt.Sprintf("%s@%d.%d", h.iface, ev.sender, ev.opcode)

	err := h.dispatch(ev)
	if err != nil {
		return err
	}
	return ev.err
}

// the dispatch function for objects that send events the harness has no use
// for
func (b *Backend) unexpected(ev *event) error {
	b.pending = append(b.pending, compositor.Ignored{Source: ev.name})
	return nil
}

// the dispatch function for objects whose events can be dropped without
// telling anyone
func quiet(ev *event) error {
	return nil
}

func (b *Backend) displayEvent(ev *event) error {
	switch ev.opcode {
	case evDisplayError:
		id := ev.uint32()
		code := ev.uint32()
		msg := ev.string()
		if ev.err != nil {
			return ev.err
		}
		obj := fmt.Sprintf("object %d", id)
		if h, ok := b.handlers[id]; ok {
			obj = fmt.Sprintf("%s@%d", h.iface, id)
		}
		return curated.Errorf(ProtocolError, obj, code, msg)
	case evDisplayDeleteID:
		id := ev.uint32()
		delete(b.handlers, id)
	}
	return nil
}

func (b *Backend) registryEvent(ev *event) error {
	switch ev.opcode {
	case evRegistryGlobal:
		name := ev.uint32()
		iface := ev.string()
		version := ev.uint32()
		if ev.err != nil {
			return ev.err
		}

		want, ok := wantedVersions[iface]
		if !ok {
			return nil
		}
		if _, ok := b.globals[iface]; ok {
			return nil
		}

		g := &global{name: name, version: min(version, want)}
		g.id = b.bind(ev.sender, iface, g)
		b.globals[iface] = g

		logger.Logf(logger.Allow, "wayland", "bound %s (version %d)", iface, g.version)

	case evRegistryGlobalRemove:
		name := ev.uint32()
		for iface, g := range b.globals {
			if g.name == name {
				logger.Logf(logger.Allow, "wayland", "%s removed by compositor", iface)
			}
		}
	}
	return nil
}

// bind sends the bind request for the global and returns the ID of the new
// object
func (b *Backend) bind(registry uint32, iface string, g *global) uint32 {
	var dispatch func(ev *event) error
	switch iface {
	case ifaceSeat:
		dispatch = b.seatEvent
	case ifaceWmBase:
		dispatch = b.wmBaseEvent
	case ifaceShm:
		// format events are of no interest. ARGB8888 is always supported
		dispatch = quiet
	}

	id := b.newObject(iface, dispatch)
	b.conn.send(newRequest(registry, opRegistryBind).uint32(g.name).string(iface).uint32(g.version).uint32(id))
	return id
}

// require returns the object ID of the bound global
func (b *Backend) require(iface string) (uint32, error) {
	g, ok := b.globals[iface]
	if !ok || g.id == 0 {
		return 0, curated.Errorf(MissingGlobal, iface)
	}
	return g.id, nil
}

// optional returns the object ID of the bound global or zero if the global
// was not advertised
func (b *Backend) optional(iface string) uint32 {
	if g, ok := b.globals[iface]; ok {
		return g.id
	}
	return 0
}

func (b *Backend) seatEvent(ev *event) error {
	if ev.opcode != evSeatCapabilities {
		return nil
	}
	caps := ev.uint32()
	if caps&seatCapabilityKeyboard != 0 && b.keyboard == 0 {
		b.keyboard = b.newObject("wl_keyboard", b.keyboardEvent)
		b.conn.send(newRequest(ev.sender, opSeatGetKeyboard).uint32(b.keyboard))
		logger.Log(logger.Allow, "wayland", "keyboard available")
	}
	return nil
}

func (b *Backend) keyboardEvent(ev *event) error {
	switch ev.opcode {
	case evKeyboardKeymap:
		_ = ev.uint32()
		fd := ev.fd()
		if fd >= 0 {
			unix.Close(fd)
		}
	case evKeyboardKey:
		_ = ev.uint32()
		_ = ev.uint32()
		key := ev.uint32()
		state := ev.uint32()
		if ev.err == nil {
			b.pending = append(b.pending, compositor.Key{Code: key, Pressed: state == keyStatePressed})
		}
	default:
		return b.unexpected(ev)
	}
	return nil
}

func (b *Backend) wmBaseEvent(ev *event) error {
	if ev.opcode != evWmBasePing {
		return b.unexpected(ev)
	}
	serial := ev.uint32()
	if ev.err == nil {
		b.pending = append(b.pending, compositor.Ping{Serial: serial})
	}
	return nil
}

func (b *Backend) xdgSurfaceEvent(ev *event) error {
	if ev.opcode != evXdgSurfaceConfigure {
		return b.unexpected(ev)
	}
	serial := ev.uint32()
	if ev.err == nil {
		b.pending = append(b.pending, compositor.SurfaceConfigure{Serial: serial})
	}
	return nil
}

func (b *Backend) toplevelEvent(ev *event) error {
	switch ev.opcode {
	case evToplevelConfigure:
		w := ev.int32()
		h := ev.int32()
		_ = ev.array()
		if ev.err == nil {
			b.pending = append(b.pending, compositor.ToplevelConfigure{Width: w, Height: h})
		}
	case evToplevelClose:
		b.pending = append(b.pending, compositor.CloseRequest{})
	default:
		return b.unexpected(ev)
	}
	return nil
}

// CreateBuffer implements the compositor.Allocator interface. The buffer is
// backed by its own shared memory pool.
func (b *Backend) CreateBuffer(col compositor.Color, slot int) (compositor.Buffer, error) {
	shm, err := b.require(ifaceShm)
	if err != nil {
		return nil, err
	}

	fd, err := unix.MemfdCreate("fifopacer-buffer", unix.MFD_CLOEXEC)
	if err != nil {
		return nil, curated.Errorf(TransportError, err)
	}
	px := col.Pixel()
	if _, err := unix.Write(fd, px[:]); err != nil {
		unix.Close(fd)
		return nil, curated.Errorf(TransportError, err)
	}

	pool := b.newObject("wl_shm_pool", nil)
	b.conn.send(newRequest(shm, opShmCreatePool).uint32(pool).fd(fd).int32(compositor.BytesPerPixel))

	buf := &Buffer{slot: slot}
	buf.id = b.newObject("wl_buffer", func(ev *event) error {
		if ev.opcode == evBufferRelease {
			b.pending = append(b.pending, compositor.BufferReleased{Slot: buf.slot})
		}
		return nil
	})
	b.conn.send(newRequest(pool, opShmPoolCreateBuffer).
		uint32(buf.id).
		int32(0).
		int32(1).
		int32(1).
		int32(compositor.BytesPerPixel).
		uint32(shmFormatARGB8888))

	// the buffer keeps the memory alive
	b.conn.send(newRequest(pool, opShmPoolDestroy))

	return buf, nil
}

// CreateSurface implements the compositor.Backend interface.
func (b *Backend) CreateSurface() (compositor.Surface, error) {
	return b.createSurface()
}

func (b *Backend) createSurface() (*Surface, error) {
	comp, err := b.require(ifaceCompositor)
	if err != nil {
		return nil, err
	}
	viewporter, err := b.require(ifaceViewporter)
	if err != nil {
		return nil, err
	}

	s := &Surface{b: b}
	s.id = b.newObject("wl_surface", quiet)
	b.conn.send(newRequest(comp, opCompositorCreateSurface).uint32(s.id))

	s.viewport = &Viewport{b: b}
	s.viewport.id = b.newObject("wp_viewport", nil)
	b.conn.send(newRequest(viewporter, opViewporterGetViewport).uint32(s.viewport.id).uint32(s.id))

	return s, nil
}

func surfaceOf(s compositor.Surface) (*Surface, error) {
	switch s := s.(type) {
	case *Surface:
		return s, nil
	case *Subsurface:
		return s.Surface, nil
	}
	return nil, curated.Errorf(WrongType, s)
}

// CreateSubsurface implements the compositor.Backend interface. The
// subsurface is in synchronized mode.
func (b *Backend) CreateSubsurface(parent compositor.Surface) (compositor.Subsurface, error) {
	p, err := surfaceOf(parent)
	if err != nil {
		return nil, err
	}
	sub, err := b.require(ifaceSubcompositor)
	if err != nil {
		return nil, err
	}

	s, err := b.createSurface()
	if err != nil {
		return nil, err
	}

	ss := &Subsurface{Surface: s}
	ss.role = b.newObject("wl_subsurface", nil)
	b.conn.send(newRequest(sub, opSubcompositorGetSubsurface).uint32(ss.role).uint32(s.id).uint32(p.id))
	b.conn.send(newRequest(ss.role, opSubsurfaceSetSync))

	return ss, nil
}

// CreateWindow implements the compositor.Backend interface. Server side
// decorations are requested if the compositor supports them. The surface is
// committed without a buffer so that the compositor sends the first configure
// events.
func (b *Backend) CreateWindow(primary compositor.Surface, title string) error {
	s, err := surfaceOf(primary)
	if err != nil {
		return err
	}
	wmBase, err := b.require(ifaceWmBase)
	if err != nil {
		return err
	}

	b.xdgSurface = b.newObject("xdg_surface", b.xdgSurfaceEvent)
	b.conn.send(newRequest(wmBase, opWmBaseGetXdgSurface).uint32(b.xdgSurface).uint32(s.id))

	b.toplevel = b.newObject("xdg_toplevel", b.toplevelEvent)
	b.conn.send(newRequest(b.xdgSurface, opXdgSurfaceGetToplevel).uint32(b.toplevel))

	b.title = title
	b.conn.send(newRequest(b.toplevel, opToplevelSetTitle).string(title))
	b.conn.send(newRequest(b.toplevel, opToplevelSetAppID).string(AppID))

	if mgr := b.optional(ifaceDecorationMgr); mgr != 0 {
		deco := b.newObject("zxdg_toplevel_decoration_v1", quiet)
		b.conn.send(newRequest(mgr, opDecorationMgrGetToplevelDecoration).uint32(deco).uint32(b.toplevel))
		b.conn.send(newRequest(deco, opDecorationSetMode).uint32(decorationModeServerSide))
	}

	s.Commit()

	return nil
}

// CreatePacer implements the compositor.Backend interface.
func (b *Backend) CreatePacer(surface compositor.Surface) (compositor.Pacer, bool) {
	mgr := b.optional(ifaceFifoManager)
	if mgr == 0 {
		return nil, false
	}
	s, err := surfaceOf(surface)
	if err != nil {
		return nil, false
	}

	p := &Pacer{b: b}
	p.id = b.newObject("wp_fifo_v1", nil)
	b.conn.send(newRequest(mgr, opFifoManagerGetFifo).uint32(p.id).uint32(s.id))

	return p, true
}

// AckConfigure implements the compositor.Backend interface.
func (b *Backend) AckConfigure(serial uint32) {
	b.conn.send(newRequest(b.xdgSurface, opXdgSurfaceAckConfigure).uint32(serial))
}

// Pong implements the compositor.Backend interface.
func (b *Backend) Pong(serial uint32) {
	if wmBase := b.optional(ifaceWmBase); wmBase != 0 {
		b.conn.send(newRequest(wmBase, opWmBasePong).uint32(serial))
	}
}

// WaitEvent implements the compositor.Backend interface.
func (b *Backend) WaitEvent() (compositor.Event, error) {
	for len(b.pending) == 0 {
		if err := b.pump(); err != nil {
			return nil, err
		}
	}
	ev := b.pending[0]
	b.pending = b.pending[1:]
	return ev, nil
}

// Notify implements the notifications.Notify interface. The window title
// shows the effective presentation mode.
func (b *Backend) Notify(notice notifications.Notice) error {
	if b.toplevel == 0 {
		return nil
	}
	title := b.title
	if s := notifications.Title(notice); s != "" {
		title = fmt.Sprintf("%s [%s]", b.title, s)
	}
	b.conn.send(newRequest(b.toplevel, opToplevelSetTitle).string(title))
	return nil
}

// Close implements the compositor.Backend interface.
func (b *Backend) Close() error {
	_ = b.conn.flush()
	return b.conn.close()
}
