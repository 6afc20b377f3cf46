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

//go:build ebiten

package main

import (
	"github.com/jetsetilly/fifopacer/gui/ebitenwindow"
	"github.com/jetsetilly/fifopacer/modalflag"
)

func runEbiten(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md, "")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	pref, err := c.preferences()
	if err != nil {
		return err
	}

	w, h := pref.Size()
	sync.creator <- func() (mainThreadBackend, error) {
		return ebitenwindow.NewBackend(int(w), int(h)), nil
	}

	var backend mainThreadBackend
	select {
	case backend = <-sync.creation:
	case err := <-sync.creationError:
		return err
	}

	// closing the backend ends the game loop and returns the main thread
	defer backend.Close()

	return c.run(backend, pref)
}
