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

// Package modalflag wraps the flag package from the standard library and adds
// program modes. Each mode has its own set of flags and can have sub-modes of
// its own.
//
// Arguments are given to NewArgs() and then flags and sub-modes for the top
// level are added before Parse() is called:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	version := md.AddBool("version", false, "print version information")
//	md.AddSubMode("RUN", "present in a Wayland window")
//	md.AddSubMode("SDL", "present in an SDL window")
//
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// After a successful Parse() the selected sub-mode is returned by Mode(). The
// first sub-mode added is the default and is selected when the first
// remaining argument is not the name of a sub-mode. Sub-mode names are not
// case sensitive.
//
// Calling NewMode() starts a new set of flags for the arguments that follow
// the sub-mode. Path() returns every mode selected so far, separated by a
// slash.
//
// A -help flag is always available. Help output is written to the Output
// field and Parse() returns ParseHelp.
package modalflag
