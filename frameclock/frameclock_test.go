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

package frameclock_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/fifopacer/frameclock"
	"github.com/jetsetilly/fifopacer/test"
)

// fakeTime is advanced by the test
type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time {
	return f.t
}

func (f *fakeTime) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func TestElapsed(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	clk := frameclock.NewClock(ft.now)
	test.ExpectEquality(t, clk.Elapsed(), 0)

	ft.advance(1500 * time.Millisecond)
	test.ExpectEquality(t, clk.Elapsed(), 1500*time.Millisecond)
}

func TestReportWindows(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	clk := frameclock.NewClock(ft.now)

	// the first frame after the start reports zero
	ft.advance(time.Millisecond)
	fps, ok := clk.Tick()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, fps, 0)
	test.ExpectEquality(t, clk.Frames(), 1)

	// 299 more frames inside the window. no report
	for range 299 {
		ft.advance(time.Millisecond)
		_, ok = clk.Tick()
		test.ExpectFailure(t, ok)
	}
	test.ExpectEquality(t, clk.Frames(), 300)

	// move past the end of the window. 300 frames in three seconds is 100fps
	ft.advance(frameclock.ReportWindow)
	fps, ok = clk.Tick()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, fps, 100)

	// counter was reset and the reporting frame is the first of the new window
	test.ExpectEquality(t, clk.Frames(), 1)
}

func TestReportIsFloored(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	clk := frameclock.NewClock(ft.now)
	ft.advance(time.Millisecond)
	clk.Tick()

	// 8 frames in total. 8/3 is floored to 2
	for range 7 {
		clk.Tick()
	}
	ft.advance(frameclock.ReportWindow + time.Millisecond)
	fps, ok := clk.Tick()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, fps, 2)
}

func TestNoReportWithoutTime(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	clk := frameclock.NewClock(ft.now)

	// time has not moved since the clock was created so the window has not
	// ended yet
	_, ok := clk.Tick()
	test.ExpectFailure(t, ok)
}
