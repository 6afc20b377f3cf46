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

// interface names as advertised by the registry
const (
	ifaceCompositor    = "wl_compositor"
	ifaceSubcompositor = "wl_subcompositor"
	ifaceShm           = "wl_shm"
	ifaceSeat          = "wl_seat"
	ifaceViewporter    = "wp_viewporter"
	ifaceWmBase        = "xdg_wm_base"
	ifaceDecorationMgr = "zxdg_decoration_manager_v1"
	ifaceFifoManager   = "wp_fifo_manager_v1"
)

// the version of each global the backend will bind to. a global advertised
// with a lower version is bound at that lower version
var wantedVersions = map[string]uint32{
	ifaceCompositor:    4,
	ifaceSubcompositor: 1,
	ifaceShm:           1,
	ifaceSeat:          1,
	ifaceViewporter:    1,
	ifaceWmBase:        1,
	ifaceDecorationMgr: 1,
	ifaceFifoManager:   1,
}

// the wl_display object always has ID 1
const displayID = 1

// request opcodes
const (
	// wl_display
	opDisplaySync        = 0
	opDisplayGetRegistry = 1

	// wl_registry
	opRegistryBind = 0

	// wl_compositor
	opCompositorCreateSurface = 0

	// wl_surface
	opSurfaceAttach = 1
	opSurfaceCommit = 6

	// wl_subcompositor
	opSubcompositorGetSubsurface = 1

	// wl_subsurface
	opSubsurfaceSetPosition = 1
	opSubsurfaceSetSync     = 4

	// wl_shm
	opShmCreatePool = 0

	// wl_shm_pool
	opShmPoolCreateBuffer = 0
	opShmPoolDestroy      = 1

	// wl_seat
	opSeatGetKeyboard = 1

	// wp_viewporter
	opViewporterGetViewport = 1

	// wp_viewport
	opViewportSetSource      = 1
	opViewportSetDestination = 2

	// xdg_wm_base
	opWmBaseGetXdgSurface = 2
	opWmBasePong          = 3

	// xdg_surface
	opXdgSurfaceGetToplevel  = 1
	opXdgSurfaceAckConfigure = 4

	// xdg_toplevel
	opToplevelSetTitle = 2
	opToplevelSetAppID = 3

	// zxdg_decoration_manager_v1
	opDecorationMgrGetToplevelDecoration = 1

	// zxdg_toplevel_decoration_v1
	opDecorationSetMode = 1

	// wp_fifo_manager_v1
	opFifoManagerGetFifo = 1

	// wp_fifo_v1
	opFifoSetBarrier  = 0
	opFifoWaitBarrier = 1
)

// event opcodes
const (
	// wl_display
	evDisplayError    = 0
	evDisplayDeleteID = 1

	// wl_registry
	evRegistryGlobal       = 0
	evRegistryGlobalRemove = 1

	// wl_callback
	evCallbackDone = 0

	// wl_buffer
	evBufferRelease = 0

	// wl_seat
	evSeatCapabilities = 0

	// wl_keyboard
	evKeyboardKeymap    = 0
	evKeyboardEnter     = 1
	evKeyboardLeave     = 2
	evKeyboardKey       = 3
	evKeyboardModifiers = 4

	// xdg_wm_base
	evWmBasePing = 0

	// xdg_surface
	evXdgSurfaceConfigure = 0

	// xdg_toplevel
	evToplevelConfigure = 0
	evToplevelClose     = 1
)

// enum values
const (
	shmFormatARGB8888 = 0

	seatCapabilityKeyboard = 2

	keyStatePressed = 1

	decorationModeServerSide = 2
)
