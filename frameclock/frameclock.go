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

// Package frameclock measures time since the start of rendering and counts
// rendered frames in fixed report windows.
//
// The clock has no goroutine of its own. The frame rate is checked whenever
// a frame is counted, so a report is only ever produced while frames are
// being rendered.
package frameclock

import (
	"time"
)

// ReportWindow is the length of a frame rate measurement window.
const ReportWindow = 3 * time.Second

// Clock tracks elapsed time and the number of frames in the current report
// window.
type Clock struct {
	now func() time.Time

	start    time.Time
	frames   int
	reportAt time.Time
}

// NewClock is the preferred method of initialisation for the Clock type. The
// now argument is the source of the current time. If it is nil then
// time.Now() is used.
//
// The end of the first report window is the start time, meaning the first
// frame counted will produce a report of zero.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Clock{
		now:      now,
		start:    t,
		reportAt: t,
	}
}

// Elapsed returns the time since the clock was created.
func (c *Clock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}

// Frames returns the number of frames counted in the current report window.
func (c *Clock) Frames() int {
	return c.frames
}

// Tick counts a frame. If the current report window has ended then the frame
// rate for that window is returned along with true. The frame being counted
// belongs to the new window.
func (c *Clock) Tick() (int, bool) {
	var fps int
	var report bool

	t := c.now()
	if t.After(c.reportAt) {
		fps = c.frames / int(ReportWindow/time.Second)
		report = true
		c.reportAt = t.Add(ReportWindow)
		c.frames = 0
	}
	c.frames++

	return fps, report
}
