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

package harness

import (
	"os"
	"time"

	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/logger"
	"github.com/jetsetilly/fifopacer/prefs"
	"github.com/jetsetilly/fifopacer/presentation"
)

// BadPreference is the pattern for preference values rejected by the harness.
const BadPreference = "harness: preference: %s"

// Default preference values.
const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultRefresh = 1000.0 / 60.0
)

// Preferences for the harness and the backends it runs on. Values are read
// from the TOML file (if any) and the command line stack by Load().
type Preferences struct {
	set *prefs.Set

	// initial presentation mode. "fifo" or "mailbox"
	Mode prefs.String

	// window title. the effective mode is appended by backends that show it
	Title prefs.String

	// initial window size requested by backends that choose their own size
	Width  prefs.Int
	Height prefs.Int

	// simulated refresh interval, in milliseconds, used by the headless
	// compositor
	Refresh prefs.Float

	// echo log entries to stderr
	LogEcho prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The path argument can be empty.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{
		set: prefs.NewSet(path),
	}

	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	p.Mode.SetHookPre(func(v prefs.Value) error {
		_, err := presentation.ParseMode(v.(string))
		return err
	})
	p.Width.SetHookPre(positive)
	p.Height.SetHookPre(positive)
	p.Refresh.SetHookPre(func(v prefs.Value) error {
		if v.(float64) < 0 {
			return curated.Errorf(BadPreference, "refresh cannot be negative")
		}
		return nil
	})
	p.LogEcho.SetHookPost(func(v prefs.Value) error {
		if v.(bool) {
			logger.SetEcho(os.Stderr)
		} else {
			logger.SetEcho(nil)
		}
		return nil
	})

	if err := p.add(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Preferences) add() error {
	if err := p.set.Add("presentation.mode", &p.Mode); err != nil {
		return err
	}
	if err := p.set.Add("window.title", &p.Title); err != nil {
		return err
	}
	if err := p.set.Add("window.width", &p.Width); err != nil {
		return err
	}
	if err := p.set.Add("window.height", &p.Height); err != nil {
		return err
	}
	if err := p.set.Add("headless.refresh", &p.Refresh); err != nil {
		return err
	}
	return p.set.Add("log.echo", &p.LogEcho)
}

func positive(v prefs.Value) error {
	if v.(int) <= 0 {
		return curated.Errorf(BadPreference, "size must be positive")
	}
	return nil
}

func (p *Preferences) String() string {
	return p.set.String()
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() error {
	for _, err := range []error{
		p.Mode.Set(presentation.Fifo.String()),
		p.Title.Set(DefaultTitle),
		p.Width.Set(DefaultWidth),
		p.Height.Set(DefaultHeight),
		p.Refresh.Set(DefaultRefresh),
		p.LogEcho.Set(false),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Load preferences from the TOML file and then the command line stack.
func (p *Preferences) Load() error {
	return p.set.Load()
}

// Config returns the harness configuration described by the preferences.
func (p *Preferences) Config() Config {
	// the pre hook guarantees the mode string is valid
	mode, _ := presentation.ParseMode(p.Mode.String())
	return Config{
		Mode:  mode,
		Title: p.Title.String(),
	}
}

// RefreshInterval returns the Refresh preference as a time.Duration.
func (p *Preferences) RefreshInterval() time.Duration {
	return time.Duration(p.Refresh.Get().(float64) * float64(time.Millisecond))
}

// Size returns the Width and Height preferences.
func (p *Preferences) Size() (int32, int32) {
	return int32(p.Width.Get().(int)), int32(p.Height.Get().(int))
}
