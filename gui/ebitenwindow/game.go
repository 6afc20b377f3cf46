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

package ebitenwindow

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jetsetilly/fifopacer/compositor"
)

// game implements the ebiten.Game interface
type game struct {
	b *Backend

	vsync bool
}

// list of keys the harness is interested in
var keys = map[ebiten.Key]uint32{
	ebiten.KeyEscape: compositor.KeyEscape,
	ebiten.KeySpace:  compositor.KeySpace,
}

// Update implements the ebiten.Game interface.
func (g *game) Update() error {
	b := g.b

	b.crit.Lock()
	defer b.crit.Unlock()

	if b.closed {
		return ebiten.Termination
	}

	if b.vsync != g.vsync {
		ebiten.SetVsyncEnabled(b.vsync)
		g.vsync = b.vsync
	}

	for k, code := range keys {
		if inpututil.IsKeyJustPressed(k) {
			b.push(compositor.Key{Code: code, Pressed: true})
		}
		if inpututil.IsKeyJustReleased(k) {
			b.push(compositor.Key{Code: code, Pressed: false})
		}
	}

	if ebiten.IsWindowBeingClosed() && !b.closeSent {
		b.closeSent = true
		b.push(compositor.CloseRequest{})
	}

	return nil
}

// Draw implements the ebiten.Game interface.
func (g *game) Draw(screen *ebiten.Image) {
	b := g.b

	b.crit.Lock()
	defer b.crit.Unlock()

	if b.next != nil {
		displaced := b.shown
		b.shown = b.next
		b.next = nil
		if displaced != nil && displaced.primary != b.shown.primary {
			b.release(displaced)
		}
		b.cond.Broadcast()
	}

	f := b.shown
	if f == nil || f.primary == nil {
		return
	}

	screen.Fill(f.primary.col)
	if f.overlay != nil && !f.rect.Empty() {
		screen.SubImage(f.rect).(*ebiten.Image).Fill(f.overlay.col)
	}
}

// Layout implements the ebiten.Game interface. The logical size of the
// screen is the size of the window. A change of size is a configure event
// for the harness.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.b

	b.crit.Lock()
	defer b.crit.Unlock()

	if !b.running || outsideWidth != b.width || outsideHeight != b.height {
		b.running = true
		b.width = outsideWidth
		b.height = outsideHeight
		b.serial++
		b.push(compositor.ToplevelConfigure{Width: int32(outsideWidth), Height: int32(outsideHeight)},
			compositor.SurfaceConfigure{Serial: b.serial})
	}

	return outsideWidth, outsideHeight
}
