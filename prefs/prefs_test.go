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

package prefs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/prefs"
	"github.com/jetsetilly/fifopacer/test"
)

func writeToml(t *testing.T, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "fifopacer.toml")
	if err := os.WriteFile(fn, []byte(content), 0600); err != nil {
		t.Fatalf("error writing toml file: %v", err)
	}
	return fn
}

func TestBool(t *testing.T) {
	var v prefs.Bool
	test.ExpectEquality(t, v.Get().(bool), false)

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectEquality(t, v.Get().(bool), true)
	test.ExpectEquality(t, v.String(), "true")

	// anything other than "true" is false
	test.ExpectSuccess(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get().(bool), false)
	test.ExpectSuccess(t, v.Set("TRUE"))
	test.ExpectEquality(t, v.Get().(bool), true)

	err := v.Set(1)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, prefs.CannotConvert))

	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.Get().(bool), false)
}

func TestString(t *testing.T) {
	var v prefs.String
	test.ExpectEquality(t, v.String(), "")

	test.ExpectSuccess(t, v.Set("fifopacer"))
	test.ExpectEquality(t, v.String(), "fifopacer")

	v.SetMaxLen(4)
	test.ExpectEquality(t, v.String(), "fifopacer")
	test.ExpectSuccess(t, v.Set("mailbox"))
	test.ExpectEquality(t, v.String(), "mail")

	test.ExpectFailure(t, v.Set(10))
}

func TestInt(t *testing.T) {
	var v prefs.Int
	test.ExpectEquality(t, v.Get().(int), 0)

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectEquality(t, v.Get().(int), 10)

	test.ExpectSuccess(t, v.Set(int64(800)))
	test.ExpectEquality(t, v.Get().(int), 800)

	test.ExpectSuccess(t, v.Set(" 99 "))
	test.ExpectEquality(t, v.String(), "99")

	err := v.Set("ninety-nine")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, prefs.BadValue))
	test.ExpectEquality(t, v.Get().(int), 99)
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectEquality(t, v.Get().(float64), 0.0)

	test.ExpectSuccess(t, v.Set(16.5))
	test.ExpectEquality(t, v.String(), "16.5")

	test.ExpectSuccess(t, v.Set(int64(16)))
	test.ExpectEquality(t, v.Get().(float64), 16.0)

	test.ExpectSuccess(t, v.Set("8.25"))
	test.ExpectEquality(t, v.Get().(float64), 8.25)

	test.ExpectFailure(t, v.Set("fast"))
	test.ExpectFailure(t, v.Set(true))
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var post int

	v.SetHookPre(func(value prefs.Value) error {
		if value.(int) < 0 {
			return errors.New("negative")
		}
		return nil
	})
	v.SetHookPost(func(value prefs.Value) error {
		post = value.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(5))
	test.ExpectEquality(t, post, 5)

	// rejected value leaves everything unchanged
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 5)
	test.ExpectEquality(t, post, 5)
}

func TestSetDuplicate(t *testing.T) {
	var v, w prefs.Bool
	set := prefs.NewSet("")
	test.ExpectSuccess(t, set.Add("log.echo", &v))
	err := set.Add("log.echo", &w)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, prefs.DuplicateKey))
}

func TestSetLoad(t *testing.T) {
	fn := writeToml(t, `
[presentation]
mode = "mailbox"

[window]
title = "pacing"
width = 640
height = 480

[headless]
refresh = 16

[unused]
key = 1
`)

	var mode, title prefs.String
	var width, height prefs.Int
	var refresh prefs.Float
	var echo prefs.Bool

	set := prefs.NewSet(fn)
	test.ExpectSuccess(t, set.Add("presentation.mode", &mode))
	test.ExpectSuccess(t, set.Add("window.title", &title))
	test.ExpectSuccess(t, set.Add("window.width", &width))
	test.ExpectSuccess(t, set.Add("window.height", &height))
	test.ExpectSuccess(t, set.Add("headless.refresh", &refresh))
	test.ExpectSuccess(t, set.Add("log.echo", &echo))

	// command line takes precedence over the file
	prefs.PushCommandLineStack("window.width::320; log.echo::true")
	defer prefs.PopCommandLineStack()

	test.ExpectSuccess(t, set.Load())
	test.ExpectEquality(t, mode.String(), "mailbox")
	test.ExpectEquality(t, title.String(), "pacing")
	test.ExpectEquality(t, width.Get().(int), 320)
	test.ExpectEquality(t, height.Get().(int), 480)
	test.ExpectEquality(t, refresh.Get().(float64), 16.0)
	test.ExpectEquality(t, echo.Get().(bool), true)

	test.ExpectEquality(t, set.String(), `headless.refresh :: 16
log.echo :: true
presentation.mode :: mailbox
window.height :: 480
window.title :: pacing
window.width :: 320
`)

	test.ExpectSuccess(t, set.Reset())
	test.ExpectEquality(t, width.Get().(int), 0)
}

func TestSetLoadMissing(t *testing.T) {
	var width prefs.Int
	set := prefs.NewSet(filepath.Join(t.TempDir(), "missing.toml"))
	test.ExpectSuccess(t, set.Add("window.width", &width))
	test.ExpectSuccess(t, width.Set(800))
	test.ExpectSuccess(t, set.Load())
	test.ExpectEquality(t, width.Get().(int), 800)
}

func TestSetLoadErrors(t *testing.T) {
	var width prefs.Int

	// not toml
	set := prefs.NewSet(writeToml(t, "window.width :: 640"))
	test.ExpectSuccess(t, set.Add("window.width", &width))
	err := set.Load()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, prefs.LoadError))

	// wrong type for key
	set = prefs.NewSet(writeToml(t, "[window]\nwidth = true\n"))
	test.ExpectSuccess(t, set.Add("window.width", &width))
	err = set.Load()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, prefs.ApplyError))
}
