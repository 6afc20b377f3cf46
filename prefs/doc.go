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

// Package prefs holds typed preference values and the means to populate
// them.
//
// The Bool, Int, Float and String types can be used on their own but are
// normally added to a Set under a dotted key. Set.Load() reads a TOML file,
// where the key "window.width" names the width entry of the [window] table,
// and then applies any matching entries from the command line stack.
//
// The command line stack is populated with PushCommandLineStack(). Entries
// take the form:
//
//	presentation.mode::mailbox; window.width::640
//
// Hook functions can be attached to any value. A pre hook can reject a value
// by returning an error; a post hook is useful for propagating the new value
// to the rest of the program.
package prefs
