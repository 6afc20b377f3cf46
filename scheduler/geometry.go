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
	"math"
	"time"
)

// MinDimension is the smallest width or height accepted from a configure
// event.
const MinDimension = 100

// the overlay is this fraction of the window size
const overlayDivisor = 5

// milliseconds per radian of the orbit. the orbit repeats every
// 2*pi*orbitRate milliseconds
const orbitRate = 500.0

// Geometry is the size of the window.
type Geometry struct {
	Width  int32
	Height int32
}

// Clamp returns the Geometry for the proposed size, with each dimension
// raised to MinDimension if necessary.
func Clamp(width, height int32) Geometry {
	return Geometry{
		Width:  max(width, MinDimension),
		Height: max(height, MinDimension),
	}
}

// Valid returns true if the geometry has a non-zero area. Geometry is not
// valid until the first configure event.
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}

// OverlaySize returns the size of the overlay surface for the geometry.
func OverlaySize(g Geometry) (int32, int32) {
	return g.Width / overlayDivisor, g.Height / overlayDivisor
}

// OrbitAt returns the overlay position for the elapsed number of milliseconds.
// The position is always inside the area of the window not covered by the
// overlay.
func OrbitAt(ms float64, g Geometry) (float64, float64) {
	w, h := OverlaySize(g)
	phase := ms / orbitRate
	x := ((math.Sin(phase) + 1) / 2) * float64(g.Width-w)
	y := ((math.Cos(phase) + 1) / 2) * float64(g.Height-h)
	return x, y
}

// OrbitPosition returns the overlay position in whole surface coordinates.
// Elapsed time is measured in whole milliseconds.
func OrbitPosition(elapsed time.Duration, g Geometry) (int32, int32) {
	x, y := OrbitAt(float64(elapsed.Milliseconds()), g)
	return int32(x), int32(y)
}
