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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/test"
)

const testPattern = "test error: %s"
const wrapPattern = "wrapped: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectFailure(t, curated.Is(e, wrapPattern))

	// plain errors are not curated
	test.ExpectFailure(t, curated.IsAny(errors.New("plain")))
	test.ExpectFailure(t, curated.Is(nil, testPattern))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testPattern, "foo")
	f := curated.Errorf(wrapPattern, e)
	test.ExpectSuccess(t, curated.Has(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, wrapPattern))
	test.ExpectFailure(t, curated.Is(f, testPattern))

	// errors package can see the wrapped error
	u := errors.Unwrap(f)
	test.ExpectSuccess(t, curated.Is(u, testPattern))
	test.ExpectEquality(t, u.Error(), e.Error())
}

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("wayland: %v", curated.Errorf("wayland: %v", "broken pipe"))
	test.ExpectEquality(t, e.Error(), "wayland: broken pipe")

	// duplicate parts that are not adjacent are kept
	e = curated.Errorf("a: b: %v", curated.Errorf("a: c"))
	test.ExpectEquality(t, e.Error(), "a: b: a: c")
}
