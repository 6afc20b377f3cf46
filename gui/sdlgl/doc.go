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

// Package sdlgl is a compositor backend that presents frames in an SDL window
// with an OpenGL context.
//
// Surfaces are composed with scissored clears. Every buffer is a single
// pixel so a clear with the buffer's colour is all that is needed to draw
// it. Pacing is implemented with the swap interval: a commit that waited on a
// barrier is presented with a swap interval of one and a commit that did not
// is presented with a swap interval of zero.
//
// All functions must be called from the same goroutine as NewBackend(). The
// goroutine is locked to its OS thread.
package sdlgl
