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

// Package scheduler produces frames. Each frame is made up of two surfaces:
// the primary surface covering the whole window and an overlay surface one
// fifth the size of the window, which orbits the window over time.
//
// A frame is produced by Step(). Drain() produces frames until Step() fails,
// which will be when no buffer is free or when the window has not yet been
// configured. Drain() is what the harness calls after any event that may
// have made a frame possible.
//
// The position of the overlay is a function of elapsed time only. See
// OrbitPosition().
package scheduler
