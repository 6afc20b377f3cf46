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
	"github.com/jetsetilly/fifopacer/curated"
	"golang.org/x/sys/unix"
)

// TransportError is returned for any failure of the connection to the
// compositor.
const TransportError = "wayland: transport: %v"

// the most file descriptors that will be accepted with a single read
const maxFdsPerRead = 28

// conn is the socket connection to the compositor. Requests are buffered
// until flush() is called.
type conn struct {
	fd int

	// received data that has not yet been dispatched and received file
	// descriptors not yet claimed by an event
	in  []byte
	fds []int

	// buffered requests
	out    []byte
	outFds []int

	rbuf []byte
	oob  []byte
}

func newConn(fd int) *conn {
	return &conn{
		fd:   fd,
		rbuf: make([]byte, maxMessageSize),
		oob:  make([]byte, unix.CmsgSpace(maxFdsPerRead*4)),
	}
}

// dial connects to the compositor listening on the socket at path.
func dial(path string) (*conn, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, curated.Errorf(TransportError, err)
	}
	err = unix.Connect(fd, &unix.SockaddrUnix{Name: path})
	if err != nil {
		unix.Close(fd)
		return nil, curated.Errorf(TransportError, err)
	}
	return newConn(fd), nil
}

// send queues the request. file descriptors attached to the request are owned
// by the conn from this point and are closed once they have been sent.
func (c *conn) send(r *request) {
	c.out = append(c.out, r.bytes()...)
	c.outFds = append(c.outFds, r.fds...)
}

// flush writes all buffered requests to the socket.
func (c *conn) flush() error {
	for len(c.out) > 0 {
		var oob []byte
		if len(c.outFds) > 0 {
			oob = unix.UnixRights(c.outFds...)
		}

		n, err := unix.SendmsgN(c.fd, c.out, oob, nil, unix.MSG_NOSIGNAL)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return curated.Errorf(TransportError, err)
		}

		// file descriptors are sent with the first byte of the write
		for _, fd := range c.outFds {
			unix.Close(fd)
		}
		c.outFds = c.outFds[:0]

		c.out = c.out[n:]
	}
	c.out = c.out[:0]
	return nil
}

// read performs a single read from the socket. it blocks if there is nothing
// to read.
func (c *conn) read() error {
	for {
		n, oobn, _, _, err := unix.Recvmsg(c.fd, c.rbuf, c.oob, unix.MSG_CMSG_CLOEXEC)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return curated.Errorf(TransportError, err)
		}

		if oobn > 0 {
			msgs, err := unix.ParseSocketControlMessage(c.oob[:oobn])
			if err != nil {
				return curated.Errorf(TransportError, err)
			}
			for i := range msgs {
				fds, err := unix.ParseUnixRights(&msgs[i])
				if err != nil {
					continue
				}
				c.fds = append(c.fds, fds...)
			}
		}

		if n == 0 {
			return curated.Errorf(TransportError, "connection closed by compositor")
		}

		c.in = append(c.in, c.rbuf[:n]...)
		return nil
	}
}

// next returns the next complete event in the receive buffer. returns nil if
// there is no complete event.
func (c *conn) next() (*event, error) {
	if len(c.in) < headerSize {
		return nil, nil
	}

	sender, opcode, size := parseHeader(c.in)
	if size < headerSize || size%4 != 0 {
		return nil, curated.Errorf(TransportError, "corrupt message header")
	}
	if len(c.in) < size {
		return nil, nil
	}

	ev := &event{
		sender: sender,
		opcode: opcode,
		data:   make([]byte, size-headerSize),
		fds:    &c.fds,
	}
	copy(ev.data, c.in[headerSize:size])

	c.in = c.in[size:]

	return ev, nil
}

// wait blocks until the socket or the additional file descriptor (if it is
// not negative) is readable. returns the readiness of each.
func (c *conn) wait(extra int) (bool, bool, error) {
	pfd := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}
	if extra >= 0 {
		pfd = append(pfd, unix.PollFd{Fd: int32(extra), Events: unix.POLLIN})
	}

	for {
		_, err := unix.Poll(pfd, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return false, false, curated.Errorf(TransportError, err)
		}
		break
	}

	sock := pfd[0].Revents != 0
	var ext bool
	if len(pfd) > 1 {
		ext = pfd[1].Revents&unix.POLLIN != 0
	}
	return sock, ext, nil
}

func (c *conn) close() error {
	for _, fd := range c.fds {
		unix.Close(fd)
	}
	c.fds = nil
	for _, fd := range c.outFds {
		unix.Close(fd)
	}
	c.outFds = nil
	return unix.Close(c.fd)
}
