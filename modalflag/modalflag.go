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

package modalflag

import (
	"flag"
	"io"
	"strings"
	"time"
)

const modeSeparator = "/"

// SubMode is a named mode with a one line description for the help text.
type SubMode struct {
	Name string
	Help string
}

// Modes handles command line arguments for a program with modes. The Output
// field should be set before calling Parse() or help messages will be lost.
type Modes struct {
	// where help messages are written
	Output io.Writer

	// flags for the current mode. a new flagset is created by NewArgs() and
	// NewMode()
	flags *flag.FlagSet

	// the arguments given to NewArgs() and the index of the first argument
	// that has not been consumed by a Parse()
	args    []string
	argsIdx int

	// sub-modes for the next call to Parse()
	subModes []SubMode

	// every mode selected so far. it is never reset
	path []string

	additionalHelp string
	parsed         bool
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode. Returns the empty string if no
// mode has been selected.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, joined with a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs starts parsing of a new list of arguments.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode starts a new set of flags and sub-modes for the arguments that
// remain after the previous Parse().
func (md *Modes) NewMode() {
	md.subModes = nil
	md.additionalHelp = ""
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.parsed = false
}

// AdditionalHelp is printed after the flags and sub-modes in the help text.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns true if Parse() has been called since the most recent call
// to NewArgs() or NewMode(). Parse() is considered to have been called even if
// it returned an error.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// Parsing was successful. If sub-modes were added then Mode() returns the
	// selected sub-mode.
	ParseContinue ParseResult = iota

	// Help was requested and has been written to the Output field.
	ParseHelp

	// Parsing failed. The error is the second return value of Parse().
	ParseError
)

// Parse the arguments for the current mode.
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	// the flag package writes its usage text in the event of an error. we
	// only want it when help has been requested
	hw := &helpWriter{}
	md.flags.SetOutput(hw)
	md.flags.Usage = func() {
		md.flags.PrintDefaults()
	}

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			hw.help(md.Output, md.Path(), md.subModes, md.additionalHelp)
			return ParseHelp, nil
		}

		// an unknown flag is assumed to belong to the default sub-mode. the
		// arguments are left for the next Parse()
		if len(md.subModes) > 0 {
			md.path = append(md.path, md.subModes[0].Name)
			return ParseContinue, nil
		}

		return ParseError, err
	}

	// the flagset has consumed the flags. remaining arguments begin after
	// them
	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) > 0 {
		mode := md.subModes[0].Name
		if arg := strings.ToUpper(md.flags.Arg(0)); arg != "" {
			for _, s := range md.subModes {
				if s.Name == arg {
					mode = arg
					md.argsIdx++
					break // for loop
				}
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs returns the arguments that are not flags or the name of the
// selected sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// GetArg returns the numbered remaining argument. Returns the empty string if
// there is no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddSubMode adds a sub-mode for the next call to Parse(). The first sub-mode
// added is the default.
func (md *Modes) AddSubMode(name string, help string) {
	md.subModes = append(md.subModes, SubMode{
		Name: strings.ToUpper(name),
		Help: help,
	})
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddFloat64 flag for next call to Parse().
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddFunc adds a flag that calls fn every time it appears in the arguments.
func (md *Modes) AddFunc(name string, usage string, fn func(string) error) {
	md.flags.Func(name, usage, fn)
}

// Visit calls fn with the name of every flag that has been set, in
// lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
