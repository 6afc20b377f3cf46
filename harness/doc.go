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

// Package harness ties together a compositor backend with the frame scheduler
// and the presentation policy. The State type is the context record for a
// single run. It is created with NewState() and driven by Run(), which waits
// for compositor events and handles them one at a time until the window is
// closed or the escape key is pressed.
//
// All handlers run on the goroutine that called Run(). Handlers never block
// on the compositor; a handler may produce a run of frames, bounded by the
// number of free buffers, before it returns.
package harness
