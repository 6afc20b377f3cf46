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

package scheduler

import (
	"fmt"
	"io"

	"github.com/jetsetilly/fifopacer/bufferpool"
	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/frameclock"
	"github.com/jetsetilly/fifopacer/presentation"
)

// Scene is the set of compositor objects that make up a frame.
type Scene struct {
	Primary compositor.Surface
	Overlay compositor.Subsurface

	// the pacer for the primary surface. nil if the compositor has no pacing
	// support
	Pacer compositor.Pacer

	// the buffer attached to the overlay every frame
	Dark compositor.Buffer
}

// Scheduler produces frames for a Scene.
type Scheduler struct {
	scene  Scene
	pool   *bufferpool.Pool
	policy *presentation.Policy
	clock  *frameclock.Clock

	// frame rate reports are written to output
	output io.Writer

	geometry Geometry

	// the number of frames produced and the most recently reported frame rate
	rendered uint64
	fps      int
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler(scene Scene, pool *bufferpool.Pool, policy *presentation.Policy, clock *frameclock.Clock, output io.Writer) *Scheduler {
	return &Scheduler{
		scene:  scene,
		pool:   pool,
		policy: policy,
		clock:  clock,
		output: output,
	}
}

// Configure sets the window geometry for the next frame. Dimensions are
// clamped to MinDimension.
func (sch *Scheduler) Configure(width, height int32) {
	sch.geometry = Clamp(width, height)
}

// Geometry returns the current window geometry.
func (sch *Scheduler) Geometry() Geometry {
	return sch.geometry
}

// Rendered returns the number of frames produced since the scheduler was
// created.
func (sch *Scheduler) Rendered() uint64 {
	return sch.rendered
}

// FPS returns the most recently reported frame rate.
func (sch *Scheduler) FPS() int {
	return sch.fps
}

// Step produces a single frame. Returns false without doing anything if the
// window has not been configured or if there is no free buffer.
func (sch *Scheduler) Step() bool {
	if !sch.geometry.Valid() {
		return false
	}

	slot, ok := sch.pool.AcquireFree()
	if !ok {
		return false
	}

	if fps, ok := sch.clock.Tick(); ok {
		sch.fps = fps
		fmt.Fprintf(sch.output, "rendering at %d FPS\n", fps)
	}

	w, h := OverlaySize(sch.geometry)
	x, y := OrbitPosition(sch.clock.Elapsed(), sch.geometry)

	// overlay state is applied with the next commit of the primary surface
	vp := sch.scene.Overlay.Viewport()
	vp.SetSource(0, 0, 1, 1)
	vp.SetDestination(w, h)
	sch.scene.Overlay.SetPosition(x, y)
	sch.scene.Overlay.Attach(sch.scene.Dark)
	sch.scene.Overlay.Commit()

	vp = sch.scene.Primary.Viewport()
	vp.SetSource(0, 0, 1, 1)
	vp.SetDestination(sch.geometry.Width, sch.geometry.Height)
	sch.scene.Primary.Attach(sch.pool.Buffer(slot))
	if sch.policy.Throttled() && sch.scene.Pacer != nil {
		sch.scene.Pacer.SetBarrier()
		sch.scene.Pacer.WaitBarrier()
	}
	sch.scene.Primary.Commit()

	sch.rendered++

	return true
}

// Drain produces frames until Step() returns false. Returns the number of
// frames produced. The number of frames is bounded by the number of free
// buffers.
func (sch *Scheduler) Drain() int {
	var n int
	for sch.Step() {
		n++
	}
	return n
}
