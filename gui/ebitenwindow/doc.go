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

// Package ebitenwindow is a compositor backend that presents frames in an
// ebiten window.
//
// Ebiten must run on the main goroutine so the harness is run on a goroutine
// of its own. The two sides exchange events and frames through a queue
// protected by a mutex. Frames are presented by the game's Draw() function.
//
// A commit that waited on a barrier is presented with vsync enabled and the
// commit blocks until the previous frame has been drawn. A commit that did
// not wait replaces any frame that has not yet been drawn, releasing the
// buffer of the replaced frame straight away.
//
// Importing ebiten connects to the display during package initialisation.
// The main program only imports this package when built with the ebiten
// build tag.
package ebitenwindow
