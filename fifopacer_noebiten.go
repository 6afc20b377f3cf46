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

//go:build !ebiten

package main

import (
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/modalflag"
)

// ebiten opens a display connection when the package is initialised, so it
// is only linked into builds that ask for it:
//
//	go build -tags ebiten .
const ebitenUnavailable = "EBITEN mode is not available in this build (rebuild with -tags ebiten)"

func runEbiten(_ *modalflag.Modes, _ *mainSync) error {
	return curated.Errorf(ebitenUnavailable)
}
