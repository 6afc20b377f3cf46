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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/harness"
	"github.com/jetsetilly/fifopacer/headless"
	"github.com/jetsetilly/fifopacer/paths"
	"github.com/jetsetilly/fifopacer/presentation"
)

// Sentinal error patterns.
const (
	CheckError = "performance: %s: %v"
)

// Config for the Check() function.
type Config struct {
	// modes to check. each mode is a separate run
	Modes []presentation.Mode

	// length of each run
	Duration time.Duration

	// the simulated refresh interval applied to paced commits
	Refresh time.Duration

	// initial window size. if either value is zero then harness.DefaultWidth
	// and harness.DefaultHeight are used
	Width  int32
	Height int32

	Profile Profile
}

// Result of a single run.
type Result struct {
	Session     uuid.UUID
	Mode        presentation.Mode
	Frames      uint64
	Elapsed     time.Duration
	FPS         float64
	Accuracy    float64
	MaxInFlight int
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %.2f fps (%d frames in %.2f seconds) %.1f%% of refresh, %d in flight [%s]",
		r.Mode, r.FPS, r.Frames, r.Elapsed.Seconds(), r.Accuracy, r.MaxInFlight, r.Session)
}

// Check the frame rate of each mode in the Config. A line is written to
// output for every completed run.
func Check(output io.Writer, cfg Config) ([]Result, error) {
	results := make([]Result, 0, len(cfg.Modes))

	for _, mode := range cfg.Modes {
		r, err := check(cfg, mode)
		if err != nil {
			return results, curated.Errorf(CheckError, mode, err)
		}
		results = append(results, r)
		fmt.Fprintln(output, r)
	}

	return results, nil
}

func check(cfg Config, mode presentation.Mode) (Result, error) {
	// the headless compositor only configures the window when it is given a
	// size. without a configure nothing is ever rendered
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = harness.DefaultWidth, harness.DefaultHeight
	}

	comp := headless.NewCompositor(
		headless.WithAutoRelease(cfg.Refresh),
		headless.WithDuration(cfg.Duration),
		headless.WithInitialSize(w, h),
	)
	defer comp.Close()

	st, err := harness.NewState(comp, harness.Config{Mode: mode})
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	err = RunProfiler(cfg.Profile, paths.UniqueFilename("performance", mode.String()), st.Run)
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	r := Result{
		Session:     st.Session,
		Mode:        mode,
		Frames:      st.Scheduler.Rendered(),
		Elapsed:     elapsed,
		MaxInFlight: comp.MaxInFlight,
	}
	r.FPS, r.Accuracy = CalcFPS(r.Frames, elapsed.Seconds(), cfg.Refresh)

	return r, nil
}
