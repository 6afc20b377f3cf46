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

// Package bufferpool manages a fixed set of presentable buffers. Buffers are
// created once, by Allocate(), and are reused for the lifetime of the pool.
//
// A buffer is acquired for a frame with AcquireFree() and released with
// Release() when the compositor has finished with it. When no buffer is free
// the frame is not produced. The pool never queues requests.
package bufferpool

import (
	"fmt"

	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/curated"
)

// Size is the number of buffers in the pool used by the harness.
const Size = 3

// AllocationError is the pattern for errors returned by Allocate().
const AllocationError = "bufferpool: %v"

// Pool is a fixed size collection of buffers along with a parallel in-use
// bitmap.
type Pool struct {
	buffers []compositor.Buffer
	inUse   []bool
}

// Allocate creates count buffers, each filled with the colour, with the
// Allocator. The slot of each buffer is its index in the pool. All buffers
// start free.
func Allocate(alloc compositor.Allocator, count int, col compositor.Color) (*Pool, error) {
	if count <= 0 {
		return nil, curated.Errorf(AllocationError, fmt.Sprintf("invalid pool size (%d)", count))
	}

	p := &Pool{
		buffers: make([]compositor.Buffer, count),
		inUse:   make([]bool, count),
	}

	for i := range p.buffers {
		b, err := alloc.CreateBuffer(col, i)
		if err != nil {
			return nil, curated.Errorf(AllocationError, err)
		}
		p.buffers[i] = b
	}

	return p, nil
}

func (p *Pool) String() string {
	s := make([]byte, len(p.inUse))
	for i, u := range p.inUse {
		if u {
			s[i] = '#'
		} else {
			s[i] = '-'
		}
	}
	return string(s)
}

// Len returns the number of buffers in the pool.
func (p *Pool) Len() int {
	return len(p.buffers)
}

// Buffer returns the buffer in the slot. It panics if the slot is out of
// range.
func (p *Pool) Buffer(slot int) compositor.Buffer {
	return p.buffers[slot]
}

// AcquireFree returns the first free slot, in pool order, and marks it as in
// use. Returns false if there are no free slots.
func (p *Pool) AcquireFree() (int, bool) {
	for i, u := range p.inUse {
		if !u {
			p.inUse[i] = true
			return i, true
		}
	}
	return -1, false
}

// Release marks the slot as free. Returns true if the slot was in use.
// Releasing a free slot, or a slot that is out of range, does nothing.
func (p *Pool) Release(slot int) bool {
	if slot < 0 || slot >= len(p.inUse) {
		return false
	}
	if !p.inUse[slot] {
		return false
	}
	p.inUse[slot] = false
	return true
}

// IsFree returns true if the slot is not in use.
func (p *Pool) IsFree(slot int) bool {
	if slot < 0 || slot >= len(p.inUse) {
		return false
	}
	return !p.inUse[slot]
}

// InUse returns the number of slots currently in use.
func (p *Pool) InUse() int {
	var n int
	for _, u := range p.inUse {
		if u {
			n++
		}
	}
	return n
}
