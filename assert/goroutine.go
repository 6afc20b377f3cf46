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

// Package assert helps enforce that a piece of state is only ever touched by
// a single goroutine. It should only be used for debugging, testing and for
// guarding invariants that would otherwise fail silently.
package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identifier for the calling goroutine. The result
// is different between goroutines and consistent for a given goroutine.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner records the goroutine that claimed ownership of something. The zero
// value is unclaimed.
type Owner struct {
	id uint64
}

// Claim ownership for the calling goroutine. A previous claim is replaced.
func (o *Owner) Claim() {
	o.id = GetGoRoutineID()
}

// Claimed returns true if Claim() has been called.
func (o *Owner) Claimed() bool {
	return o.id != 0
}

// Check panics if ownership has been claimed by a goroutine other than the
// calling goroutine. The what argument names the owned thing in the panic
// message.
func (o *Owner) Check(what string) {
	if o.id == 0 {
		return
	}
	if id := GetGoRoutineID(); id != o.id {
		panic(fmt.Sprintf("%s: used by goroutine %d. owned by goroutine %d", what, id, o.id))
	}
}
