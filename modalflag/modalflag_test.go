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

package modalflag_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/fifopacer/modalflag"
	"github.com/jetsetilly/fifopacer/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
}

func TestFlagsAndArgs(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-log", "-duration", "2s", "one", "two"})
	log := md.AddBool("log", false, "echo log")
	duration := md.AddDuration("duration", time.Second, "length of run")

	test.ExpectFailure(t, *log)

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *log)
	test.ExpectEquality(t, *duration, 2*time.Second)
	test.DemandEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(0), "one")
	test.ExpectEquality(t, md.GetArg(1), "two")
	test.ExpectEquality(t, md.GetArg(2), "")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-nonsense"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestSubModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-version", "sdl", "-log", "extra"})
	version := md.AddBool("version", false, "print version")
	md.AddSubMode("RUN", "wayland")
	md.AddSubMode("SDL", "sdl")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *version)
	test.ExpectEquality(t, md.Mode(), "SDL")

	md.NewMode()
	log := md.AddBool("log", false, "echo log")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *log)
	test.ExpectEquality(t, md.Path(), "SDL")
	test.ExpectEquality(t, md.GetArg(0), "extra")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-log"})
	md.AddSubMode("RUN", "wayland")
	md.AddSubMode("SDL", "sdl")

	// the -log flag belongs to the RUN mode
	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")

	md.NewMode()
	log := md.AddBool("log", false, "echo log")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *log)

	md.NewArgs([]string{"file"})
	md.AddSubMode("RUN", "wayland")
	md.AddSubMode("SDL", "sdl")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")
	test.ExpectEquality(t, md.GetArg(0), "file")
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, tw.Compare("No help available\n"), tw.String())
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubMode("RUN", "present in a Wayland window")
	md.AddSubMode("PERFORMANCE", "measure frame rates")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    \ttest flag (default true)\n" +
		"\n" +
		"  sub-modes:\n" +
		"    RUN          present in a Wayland window (default)\n" +
		"    PERFORMANCE  measure frame rates\n"

	test.ExpectSuccess(t, tw.Compare(expectedHelp), tw.String())
}

func TestFuncFlag(t *testing.T) {
	var collected []string

	md := modalflag.Modes{}
	md.NewArgs([]string{"-prefs", "a::1", "-prefs", "b::2"})
	md.AddFunc("prefs", "preference", func(s string) error {
		collected = append(collected, s)
		return nil
	})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(collected), 2)
	test.ExpectEquality(t, collected[1], "b::2")
}
