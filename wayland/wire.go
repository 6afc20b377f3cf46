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

package wayland

import (
	"encoding/binary"
	"math"

	"github.com/jetsetilly/fifopacer/curated"
)

// wire format is native endian. the backend only supports little-endian
// platforms
var order = binary.LittleEndian

// the size of a message header in bytes
const headerSize = 8

// the largest message the protocol allows
const maxMessageSize = 4096

// MalformedMessage is returned when an event is shorter than its arguments
// require.
const MalformedMessage = "wayland: malformed message: %s"

// request is a message being built for sending to the compositor.
type request struct {
	b   []byte
	fds []int
}

func newRequest(object uint32, opcode uint16) *request {
	r := &request{b: make([]byte, headerSize, 32)}
	order.PutUint32(r.b[0:], object)
	order.PutUint16(r.b[4:], opcode)
	return r
}

func (r *request) uint32(v uint32) *request {
	r.b = order.AppendUint32(r.b, v)
	return r
}

func (r *request) int32(v int32) *request {
	return r.uint32(uint32(v))
}

// fixed point value with 8 bits of fraction
func (r *request) fixed(v float64) *request {
	return r.int32(toFixed(v))
}

func (r *request) string(s string) *request {
	r.uint32(uint32(len(s) + 1))
	r.b = append(r.b, s...)
	r.b = append(r.b, 0)
	for len(r.b)%4 != 0 {
		r.b = append(r.b, 0)
	}
	return r
}

// file descriptors are not part of the message body
func (r *request) fd(fd int) *request {
	r.fds = append(r.fds, fd)
	return r
}

// bytes returns the completed message with the size field filled in.
func (r *request) bytes() []byte {
	order.PutUint16(r.b[6:], uint16(len(r.b)))
	return r.b
}

func toFixed(v float64) int32 {
	return int32(math.Round(v * 256))
}

func fromFixed(v int32) float64 {
	return float64(v) / 256
}

// event is a message received from the compositor. argument accessors record
// the first error and return the zero value after that.
type event struct {
	sender uint32
	opcode uint16
	data   []byte
	off    int

	// the queue of file descriptors received from the compositor. fds are
	// taken from the queue in the order arguments are decoded
	fds *[]int

	// name of the event for error messages
	name string

	err error
}

// parseHeader returns the sender, opcode and total size of a message. The
// buffer must be at least headerSize long.
func parseHeader(b []byte) (uint32, uint16, int) {
	sender := order.Uint32(b[0:])
	opcode := order.Uint16(b[4:])
	size := int(order.Uint16(b[6:]))
	return sender, opcode, size
}

func (ev *event) fail() {
	if ev.err == nil {
		ev.err = curated.Errorf(MalformedMessage, ev.name)
	}
}

func (ev *event) uint32() uint32 {
	if ev.err != nil {
		return 0
	}
	if ev.off+4 > len(ev.data) {
		ev.fail()
		return 0
	}
	v := order.Uint32(ev.data[ev.off:])
	ev.off += 4
	return v
}

func (ev *event) int32() int32 {
	return int32(ev.uint32())
}

func (ev *event) fixed() float64 {
	return fromFixed(ev.int32())
}

// bytes returns the content of an array or string argument, including any
// terminating zero
func (ev *event) bytes() []byte {
	n := int(ev.uint32())
	if ev.err != nil {
		return nil
	}
	padded := (n + 3) &^ 3
	if ev.off+padded > len(ev.data) {
		ev.fail()
		return nil
	}
	b := ev.data[ev.off : ev.off+n]
	ev.off += padded
	return b
}

func (ev *event) string() string {
	b := ev.bytes()
	if len(b) == 0 {
		return ""
	}
	return string(b[:len(b)-1])
}

func (ev *event) array() []byte {
	return ev.bytes()
}

// fd takes the next file descriptor received with the event
func (ev *event) fd() int {
	if ev.err != nil {
		return -1
	}
	if ev.fds == nil || len(*ev.fds) == 0 {
		ev.fail()
		return -1
	}
	fd := (*ev.fds)[0]
	*ev.fds = (*ev.fds)[1:]
	return fd
}
