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
	"testing"

	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/test"
	"golang.org/x/sys/unix"
)

// fakeCompositor is the server end of a socket pair
type fakeCompositor struct {
	t    *testing.T
	conn *conn
}

// request blocks until the next request arrives
func (fc *fakeCompositor) request() *event {
	for {
		ev, err := fc.conn.next()
		if err != nil {
			fc.t.Errorf("fake compositor: %v", err)
			return nil
		}
		if ev != nil {
			return ev
		}
		if err := fc.conn.read(); err != nil {
			fc.t.Errorf("fake compositor: %v", err)
			return nil
		}
	}
}

// skipBinds discards the bind requests sent after the handshake
func (fc *fakeCompositor) skipBinds() {
	for range len(fakeGlobals) - 1 {
		fc.request()
	}
}

func (fc *fakeCompositor) send(r *request) {
	fc.conn.send(r)
	if err := fc.conn.flush(); err != nil {
		fc.t.Errorf("fake compositor: %v", err)
	}
}

// the globals advertised by the fake compositor. the client binds them in
// this order
var fakeGlobals = []struct {
	iface   string
	version uint32
}{
	{ifaceCompositor, 6},
	{ifaceSubcompositor, 1},
	{ifaceShm, 1},
	{ifaceViewporter, 1},
	{ifaceWmBase, 5},
	{ifaceFifoManager, 1},
	{"wl_output", 4},
}

// IDs the client will allocate
const (
	registryID      = 2
	callbackID      = 3
	compositorID    = 4
	subcompositorID = 5
	shmID           = 6
	viewporterID    = 7
	wmBaseID        = 8
	fifoManagerID   = 9
	firstDynamicID  = 10
)

// handshake answers the initial round trip. globals named in omit are not
// advertised
func (fc *fakeCompositor) handshake(omit ...string) {
	ev := fc.request()
	if ev == nil || ev.sender != displayID || ev.opcode != opDisplayGetRegistry {
		fc.t.Errorf("fake compositor: expected get_registry")
		return
	}
	registry := ev.uint32()

	ev = fc.request()
	if ev == nil || ev.sender != displayID || ev.opcode != opDisplaySync {
		fc.t.Errorf("fake compositor: expected sync")
		return
	}
	callback := ev.uint32()

	skip := make(map[string]bool)
	for _, o := range omit {
		skip[o] = true
	}
	for i, g := range fakeGlobals {
		if skip[g.iface] {
			continue
		}
		fc.send(newRequest(registry, evRegistryGlobal).uint32(uint32(i+1)).string(g.iface).uint32(g.version))
	}
	// a compositor flushes the callback and its delete_id together
	fc.conn.send(newRequest(callback, evCallbackDone).uint32(0))
	fc.send(newRequest(displayID, evDisplayDeleteID).uint32(callback))
}

func connectFake(t *testing.T, omit ...string) (*Backend, *fakeCompositor) {
	t.Helper()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	test.DemandSuccess(t, err)

	fc := &fakeCompositor{t: t, conn: newConn(fds[1])}
	t.Cleanup(func() {
		fc.conn.close()
	})

	done := make(chan bool)
	go func() {
		fc.handshake(omit...)
		done <- true
	}()

	b, err := newBackend(newConn(fds[0]))
	<-done
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		b.Close()
	})

	return b, fc
}

func TestHandshake(t *testing.T) {
	b, fc := connectFake(t)

	// binding is the first thing the client sends after the round trip
	test.DemandSuccess(t, b.conn.flush())

	expected := []struct {
		iface   string
		version uint32
		id      uint32
	}{
		{ifaceCompositor, 4, compositorID},
		{ifaceSubcompositor, 1, subcompositorID},
		{ifaceShm, 1, shmID},
		{ifaceViewporter, 1, viewporterID},
		{ifaceWmBase, 1, wmBaseID},
		{ifaceFifoManager, 1, fifoManagerID},
	}

	for i, e := range expected {
		ev := fc.request()
		if ev == nil {
			t.FailNow()
		}
		test.ExpectEquality(t, ev.sender, uint32(registryID), e.iface)
		test.ExpectEquality(t, ev.opcode, uint16(opRegistryBind), e.iface)
		test.ExpectEquality(t, ev.uint32(), uint32(i+1), e.iface)
		test.ExpectEquality(t, ev.string(), e.iface)
		test.ExpectEquality(t, ev.uint32(), e.version, e.iface)
		test.ExpectEquality(t, ev.uint32(), e.id, e.iface)

		test.ExpectEquality(t, b.globals[e.iface].version, e.version, e.iface)
	}

	// wl_output is not wanted
	_, ok := b.globals["wl_output"]
	test.ExpectFailure(t, ok)

	// the callback was deleted by the compositor
	_, ok = b.handlers[callbackID]
	test.ExpectFailure(t, ok)
}

func TestMissingGlobals(t *testing.T) {
	b, _ := connectFake(t, ifaceShm, ifaceFifoManager)

	_, err := b.CreateBuffer(compositor.White, 0)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, MissingGlobal))

	s, err := b.CreateSurface()
	test.DemandSuccess(t, err)
	p, ok := b.CreatePacer(s)
	test.ExpectFailure(t, ok)
	test.ExpectEquality[compositor.Pacer](t, p, nil)
}

func TestCreateSurfaces(t *testing.T) {
	b, fc := connectFake(t)

	primary, err := b.CreateSurface()
	test.DemandSuccess(t, err)
	_, err = b.CreateSubsurface(primary)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.conn.flush())
	fc.skipBinds()

	// primary surface and viewport
	ev := fc.request()
	test.ExpectEquality(t, ev.sender, uint32(compositorID))
	test.ExpectEquality(t, ev.opcode, uint16(opCompositorCreateSurface))
	test.ExpectEquality(t, ev.uint32(), uint32(firstDynamicID))

	ev = fc.request()
	test.ExpectEquality(t, ev.sender, uint32(viewporterID))
	test.ExpectEquality(t, ev.uint32(), uint32(firstDynamicID+1))
	test.ExpectEquality(t, ev.uint32(), uint32(firstDynamicID))

	// overlay surface and viewport
	fc.request()
	fc.request()

	// subsurface role
	ev = fc.request()
	test.ExpectEquality(t, ev.sender, uint32(subcompositorID))
	test.ExpectEquality(t, ev.opcode, uint16(opSubcompositorGetSubsurface))
	test.ExpectEquality(t, ev.uint32(), uint32(firstDynamicID+4))
	test.ExpectEquality(t, ev.uint32(), uint32(firstDynamicID+2))
	test.ExpectEquality(t, ev.uint32(), uint32(firstDynamicID))

	ev = fc.request()
	test.ExpectEquality(t, ev.sender, uint32(firstDynamicID+4))
	test.ExpectEquality(t, ev.opcode, uint16(opSubsurfaceSetSync))
}

func TestCreateBuffer(t *testing.T) {
	b, fc := connectFake(t)

	buf, err := b.CreateBuffer(compositor.Black, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, buf.Slot(), 2)
	test.DemandSuccess(t, b.conn.flush())
	fc.skipBinds()

	ev := fc.request()
	test.ExpectEquality(t, ev.sender, uint32(shmID))
	test.ExpectEquality(t, ev.opcode, uint16(opShmCreatePool))
	test.ExpectEquality(t, ev.uint32(), uint32(firstDynamicID))
	test.ExpectEquality(t, ev.int32(), int32(4))

	// the pixel is stored in the shared memory
	fd := ev.fd()
	test.DemandSuccess(t, ev.err)
	px := make([]byte, 4)
	n, err := unix.Pread(fd, px, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 4)
	test.ExpectEquality(t, [4]byte(px), compositor.Black.Pixel())
	unix.Close(fd)

	ev = fc.request()
	test.ExpectEquality(t, ev.sender, uint32(firstDynamicID))
	test.ExpectEquality(t, ev.opcode, uint16(opShmPoolCreateBuffer))
	test.ExpectEquality(t, ev.uint32(), uint32(firstDynamicID+1))
	test.ExpectEquality(t, ev.int32(), int32(0))
	test.ExpectEquality(t, ev.int32(), int32(1))
	test.ExpectEquality(t, ev.int32(), int32(1))
	test.ExpectEquality(t, ev.int32(), int32(compositor.BytesPerPixel))
	test.ExpectEquality(t, ev.uint32(), uint32(shmFormatARGB8888))
	test.ExpectEquality(t, len(ev.data), 24)

	ev = fc.request()
	test.ExpectEquality(t, ev.opcode, uint16(opShmPoolDestroy))

	// release of the buffer
	fc.send(newRequest(firstDynamicID+1, evBufferRelease))
	rel, err := b.WaitEvent()
	test.DemandSuccess(t, err)
	test.ExpectEquality[compositor.Event](t, rel, compositor.BufferReleased{Slot: 2})
}

func TestEvents(t *testing.T) {
	b, fc := connectFake(t)

	primary, err := b.CreateSurface()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.CreateWindow(primary, "test"))

	// surface 10, viewport 11, xdg_surface 12, toplevel 13
	const xdgSurfaceID = firstDynamicID + 2
	const toplevelID = firstDynamicID + 3

	fc.send(newRequest(wmBaseID, evWmBasePing).uint32(42))
	fc.send(newRequest(toplevelID, evToplevelConfigure).int32(800).int32(600).uint32(0))
	fc.send(newRequest(xdgSurfaceID, evXdgSurfaceConfigure).uint32(7))
	fc.send(newRequest(toplevelID, evToplevelClose))

	// an event the harness has no use for
	fc.send(newRequest(toplevelID, 3).int32(0).int32(0))

	expected := []compositor.Event{
		compositor.Ping{Serial: 42},
		compositor.ToplevelConfigure{Width: 800, Height: 600},
		compositor.SurfaceConfigure{Serial: 7},
		compositor.CloseRequest{},
		compositor.Ignored{Source: "xdg_toplevel@13.3"},
	}

	for _, e := range expected {
		ev, err := b.WaitEvent()
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, ev, e)
	}
}

func TestKeyboard(t *testing.T) {
	b, fc := connectFake(t)

	// seat is bound out of the normal order
	const seatID = firstDynamicID
	fc.send(newRequest(registryID, evRegistryGlobal).uint32(50).string(ifaceSeat).uint32(7))
	fc.send(newRequest(seatID, evSeatCapabilities).uint32(3))
	fc.send(newRequest(seatID+1, evKeyboardKey).uint32(1).uint32(1000).uint32(compositor.KeySpace).uint32(keyStatePressed))
	fc.send(newRequest(seatID+1, evKeyboardKey).uint32(2).uint32(1001).uint32(compositor.KeySpace).uint32(0))

	ev, err := b.WaitEvent()
	test.DemandSuccess(t, err)
	test.ExpectEquality[compositor.Event](t, ev, compositor.Key{Code: compositor.KeySpace, Pressed: true})

	ev, err = b.WaitEvent()
	test.DemandSuccess(t, err)
	test.ExpectEquality[compositor.Event](t, ev, compositor.Key{Code: compositor.KeySpace, Pressed: false})

	test.ExpectEquality(t, b.globals[ifaceSeat].version, uint32(1))
	test.ExpectEquality(t, b.keyboard, uint32(seatID+1))
}

func TestProtocolError(t *testing.T) {
	b, fc := connectFake(t)
	fc.send(newRequest(displayID, evDisplayError).uint32(wmBaseID).uint32(3).string("bad thing"))

	_, err := b.WaitEvent()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, ProtocolError))
	test.ExpectEquality(t, err.Error(), "wayland: protocol error: xdg_wm_base@8: code 3: bad thing")
}

func TestConnectionClosed(t *testing.T) {
	b, fc := connectFake(t)
	fc.conn.close()

	_, err := b.WaitEvent()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, TransportError))
}
