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

// Package curated is a helper package for the plain Go language error type.
// A curated error is created with Errorf() and remembers the pattern it was
// created with. The pattern is what identifies the error, not the formatted
// message, so callers can test for a class of error without string matching
// the output:
//
//	const MissingGlobal = "wayland: missing global: %s"
//
//	err := curated.Errorf(MissingGlobal, "wl_compositor")
//	if curated.Is(err, MissingGlobal) {
//		...
//	}
//
// Has() looks for the pattern anywhere in the chain of curated errors. A chain
// is made by passing one error as a value to the Errorf() of another:
//
//	f := curated.Errorf("harness: %v", err)
//	curated.Has(f, MissingGlobal) // true
//	curated.Is(f, MissingGlobal)  // false
//
// Error messages are normalised so that a chain does not repeat an adjacent
// part. This means a package can prefix its errors without checking whether
// the error it is wrapping already carries the same prefix:
//
//	curated.Errorf("wayland: %v", curated.Errorf("wayland: broken pipe"))
//
// prints as "wayland: broken pipe".
//
// Patterns used with Is() and Has() should be exported as constants from the
// package that raises the error.
package curated
