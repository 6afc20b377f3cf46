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
	"testing"

	"github.com/jetsetilly/fifopacer/prefs"
	"github.com/jetsetilly/fifopacer/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("presentation.mode::fifo")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "presentation.mode::fifo")

	// surrounding space is trimmed
	prefs.PushCommandLineStack("   window.width:: 640 ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "window.width::640")

	// remaining string is sorted
	prefs.PushCommandLineStack("window.width::640; window.height::480")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "window.height::480; window.width::640")

	// invalid prefs string
	prefs.PushCommandLineStack("window.width_640")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// partially invalid prefs string
	prefs.PushCommandLineStack("window.width_640;window.height::480")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "window.height::480")

	// retrieved values are removed from the group
	prefs.PushCommandLineStack("presentation.mode::mailbox;log.echo_true")
	ok, _ := prefs.GetCommandLinePref("log.echo")
	test.ExpectFailure(t, ok)
	ok, v := prefs.GetCommandLinePref("presentation.mode")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "mailbox")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineStack(t *testing.T) {
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	prefs.PushCommandLineStack("presentation.mode::fifo")
	prefs.PushCommandLineStack("presentation.mode::mailbox")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)

	// only the top group is consulted
	ok, v := prefs.GetCommandLinePref("presentation.mode")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "mailbox")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// first group still exists
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "presentation.mode::fifo")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}
