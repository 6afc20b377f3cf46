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

package harness_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/harness"
	"github.com/jetsetilly/fifopacer/prefs"
	"github.com/jetsetilly/fifopacer/presentation"
	"github.com/jetsetilly/fifopacer/test"
)

func TestPreferencesDefaults(t *testing.T) {
	p, err := harness.NewPreferences("")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.Load())

	cfg := p.Config()
	test.ExpectEquality(t, cfg.Mode, presentation.Fifo)
	test.ExpectEquality(t, cfg.Title, harness.DefaultTitle)

	w, h := p.Size()
	test.ExpectEquality(t, w, int32(800))
	test.ExpectEquality(t, h, int32(600))
	test.ExpectApproximate(t, p.RefreshInterval(), time.Second/60, 0.001)
}

func TestPreferencesLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "fifopacer.toml")
	err := os.WriteFile(fn, []byte(`
[presentation]
mode = "mailbox"

[window]
title = "pacing test"
width = 1024

[headless]
refresh = 8
`), 0600)
	test.DemandSuccess(t, err)

	p, err := harness.NewPreferences(fn)
	test.DemandSuccess(t, err)

	prefs.PushCommandLineStack("window.height::768")
	defer prefs.PopCommandLineStack()

	test.DemandSuccess(t, p.Load())

	cfg := p.Config()
	test.ExpectEquality(t, cfg.Mode, presentation.Mailbox)
	test.ExpectEquality(t, cfg.Title, "pacing test")

	w, h := p.Size()
	test.ExpectEquality(t, w, int32(1024))
	test.ExpectEquality(t, h, int32(768))
	test.ExpectEquality(t, p.RefreshInterval(), 8*time.Millisecond)

	test.ExpectSuccess(t, p.SetDefaults())
	test.ExpectEquality(t, p.Config().Mode, presentation.Fifo)
}

func TestPreferencesRejected(t *testing.T) {
	p, err := harness.NewPreferences("")
	test.DemandSuccess(t, err)

	err = p.Mode.Set("immediate")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, presentation.UnknownMode))
	test.ExpectEquality(t, p.Mode.String(), "fifo")

	err = p.Width.Set(0)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, harness.BadPreference))

	test.ExpectFailure(t, p.Refresh.Set(-1.0))

	// rejected values from the command line are reported by Load()
	prefs.PushCommandLineStack("presentation.mode::vsync")
	defer prefs.PopCommandLineStack()
	test.ExpectFailure(t, p.Load())
}
