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

package assert_test

import (
	"testing"

	"github.com/jetsetilly/fifopacer/assert"
	"github.com/jetsetilly/fifopacer/test"
)

func TestGoRoutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	test.ExpectInequality(t, id, 0)
	test.ExpectEquality(t, assert.GetGoRoutineID(), id)

	other := make(chan uint64)
	go func() {
		other <- assert.GetGoRoutineID()
	}()
	test.ExpectInequality(t, <-other, id)
}

func TestOwner(t *testing.T) {
	var o assert.Owner
	test.ExpectFailure(t, o.Claimed())

	// unclaimed owner never panics
	o.Check("unclaimed")

	o.Claim()
	test.ExpectSuccess(t, o.Claimed())
	o.Check("claimed")

	panicked := make(chan bool)
	go func() {
		defer func() {
			panicked <- recover() != nil
		}()
		o.Check("claimed")
	}()
	test.ExpectSuccess(t, <-panicked)
}
