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
	"testing"

	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/test"
	"github.com/veandco/go-sdl2/sdl"
)

func TestScissor(t *testing.T) {
	// no scaling. a 160x120 overlay at the top left of a 600 pixel high
	// drawable starts 480 pixels from the bottom
	x, y, w, h := scissor(600, 0, 0, 160, 120, 1, 1)
	test.ExpectEquality(t, x, int32(0))
	test.ExpectEquality(t, y, int32(480))
	test.ExpectEquality(t, w, int32(160))
	test.ExpectEquality(t, h, int32(120))

	// bottom right corner
	x, y, _, _ = scissor(600, 640, 480, 160, 120, 1, 1)
	test.ExpectEquality(t, x, int32(640))
	test.ExpectEquality(t, y, int32(0))

	// drawable twice the size of the window
	x, y, w, h = scissor(1200, 100, 50, 160, 120, 2, 2)
	test.ExpectEquality(t, x, int32(200))
	test.ExpectEquality(t, y, int32(1200-100-240))
	test.ExpectEquality(t, w, int32(320))
	test.ExpectEquality(t, h, int32(240))
}

func TestViewport(t *testing.T) {
	var vp viewport
	vp.SetSource(0, 0, 1, 1)
	vp.SetDestination(800, 600)
	test.ExpectEquality(t, vp.dstWidth, int32(800))
	test.ExpectEquality(t, vp.dstHeight, int32(600))
}

func TestTranslate(t *testing.T) {
	var b Backend

	// events that are neither window nor keyboard events are not queued
	b.translate(&sdl.MouseMotionEvent{})
	b.translate(&sdl.MouseButtonEvent{})
	b.translate(&sdl.TextInputEvent{})
	test.ExpectEquality(t, len(b.pending), 0)

	// nor are window events other than a size change or close, keys other
	// than escape and space, or key repeats
	b.translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_MOVED})
	b.translate(&sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_A}})
	b.translate(&sdl.KeyboardEvent{State: sdl.PRESSED, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_SPACE}})
	test.ExpectEquality(t, len(b.pending), 0)

	b.translate(&sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_SPACE}})
	test.DemandEquality(t, len(b.pending), 1)
	test.ExpectEquality(t, b.pending[0], compositor.Event(compositor.Key{Code: compositor.KeySpace, Pressed: true}))

	b.translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 640, Data2: 480})
	test.DemandEquality(t, len(b.pending), 3)
	test.ExpectEquality(t, b.pending[1], compositor.Event(compositor.ToplevelConfigure{Width: 640, Height: 480}))
	test.ExpectEquality(t, b.pending[2], compositor.Event(compositor.SurfaceConfigure{Serial: 1}))

	b.translate(&sdl.QuitEvent{})
	test.DemandEquality(t, len(b.pending), 4)
	test.ExpectEquality(t, b.pending[3], compositor.Event(compositor.CloseRequest{}))
}
