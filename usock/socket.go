/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package usock

import (
	"golang.org/x/sys/unix"

	"github.com/nabbar/scalesock/aio"
)

// Socket is a non-blocking OS socket wrapped as an aio.FSM. At most one
// send and one receive operation are ever outstanding at a time, per
// spec.md §4.3's "at-most-one" invariant.
type Socket struct {
	fsm   *aio.FSM
	state State

	fd     int
	family int
	typ    int

	sending   bool
	receiving bool

	listenBacklog int

	// sendBuf/recvBuf hold the in-flight operation's buffers between
	// the initiating call and the EvReadyOut/EvReadyIn that lets the
	// worker actually perform the syscall.
	sendBuf [][]byte
	recvBuf []byte
}

// New constructs an idle Socket bound to ctx. Call Start or
// StartFromFD next.
func New(ctx *aio.Context, name string) *Socket {
	s := &Socket{state: StateIdle}
	s.fsm = aio.New(ctx, name, s.handle)
	return s
}

// FSM exposes the underlying state machine so a parent can SetOwner,
// Start, and Stop it.
func (s *Socket) FSM() *aio.FSM {
	return s.fsm
}

// FD returns the underlying OS descriptor, or -1 if not started.
func (s *Socket) FD() int {
	if s.state == StateIdle {
		return -1
	}
	return s.fd
}

func (s *Socket) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart:
		s.state = StateStarted
		return
	case aio.EvStop:
		s.doStop()
		return
	}

	switch event {
	case aio.EvReadyIn:
		s.onReadable()
		return
	case aio.EvReadyOut:
		s.onWritable()
		return
	case aio.EvReadyErr:
		s.fail(ErrorSyscall.Error())
		return
	}

	s.fsm.Fatal(s.state.String(), event)
}

// Start opens a fresh non-blocking socket of the given family/type,
// e.g. unix.AF_INET + unix.SOCK_STREAM for TCP, unix.AF_UNIX +
// unix.SOCK_STREAM for IPC.
func (s *Socket) Start(family, typ int) error {
	if s.state != StateIdle {
		return ErrorAlreadyStarted.Error()
	}

	fd, err := unix.Socket(family, typ|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return ErrorSyscall.Error(err)
	}

	s.fd = fd
	s.family = family
	s.typ = typ
	s.state = StateStarted
	return nil
}

// StartFromFD wraps an already-connected, already-nonblocking
// descriptor (the accept() result) as an active Socket.
func StartFromFD(ctx *aio.Context, name string, fd int) *Socket {
	s := New(ctx, name)
	s.fd = fd
	s.state = StateActive
	return s
}

// Bind binds addr. For AF_UNIX, any preexisting socket file at the
// path is unlinked first (ENOENT ignored), per spec.md §4.3
// "Unix-domain-specific".
func (s *Socket) Bind(addr unix.Sockaddr) error {
	if s.state != StateStarted {
		return ErrorNotStarted.Error()
	}

	if ua, ok := addr.(*unix.SockaddrUnix); ok && ua.Name != "" {
		if err := unix.Unlink(ua.Name); err != nil && err != unix.ENOENT {
			return ErrorSyscall.Error(err)
		}
	}

	if err := unix.Bind(s.fd, addr); err != nil {
		return ErrorSyscall.Error(err)
	}
	return nil
}

// Listen transitions to StateListening and begins watching for
// incoming connections (the worker registration happens here); each
// connection is accepted internally on EvReadyIn and reported to the
// owner as EvAccepted.
func (s *Socket) Listen(backlog int) error {
	if s.state != StateStarted {
		return ErrorNotStarted.Error()
	}
	if err := unix.Listen(s.fd, backlog); err != nil {
		return ErrorSyscall.Error(err)
	}

	s.listenBacklog = backlog
	s.state = StateListening
	return s.fsm.Context().Worker().Add(s.fd, aio.InterestIn, s.fsm, selfSrc)
}

// accept is called by onReadable, not by the owner, whenever a
// listening Socket observes EvReadyIn; each accepted descriptor is
// raised to the owner as EvAccepted. It is synchronous and returns
// -1 with a nil error once no connection is pending.
func (s *Socket) accept() (int, error) {
	nfd, _, err := unix.Accept4(s.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return -1, nil
		}
		return -1, ErrorSyscall.Error(err)
	}
	return nfd, nil
}

// Connect starts a non-blocking connect to addr. EvConnected is raised
// to the owner once the connection completes (or EvError on failure).
func (s *Socket) Connect(addr unix.Sockaddr) error {
	if s.state != StateStarted {
		return ErrorNotStarted.Error()
	}

	err := unix.Connect(s.fd, addr)
	if err != nil && err != unix.EINPROGRESS {
		return ErrorSyscall.Error(err)
	}

	s.state = StateConnecting
	return s.fsm.Context().Worker().Add(s.fd, aio.InterestOut, s.fsm, selfSrc)
}

// Send queues iov for a single vectored write. At most one Send may be
// outstanding; callers must wait for EvSent before issuing another.
func (s *Socket) Send(iov [][]byte) error {
	if s.state != StateActive {
		return ErrorNotConnected.Error()
	}
	if s.sending {
		return ErrorOpInFlight.Error()
	}

	s.sending = true
	s.sendBuf = iov
	return s.fsm.Context().Worker().Add(s.fd, aio.InterestOut, s.fsm, selfSrc)
}

// Recv queues a read into a buffer of len(buf) capacity. At most one
// Recv may be outstanding; callers must wait for EvReceived before
// issuing another.
func (s *Socket) Recv(buf []byte) error {
	if s.state != StateActive {
		return ErrorNotConnected.Error()
	}
	if s.receiving {
		return ErrorOpInFlight.Error()
	}

	s.receiving = true
	s.recvBuf = buf
	return s.fsm.Context().Worker().Add(s.fd, aio.InterestIn, s.fsm, selfSrc)
}

func (s *Socket) onWritable() {
	switch s.state {
	case StateConnecting:
		if errno, err := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR); err != nil || errno != 0 {
			s.fail(ErrorSyscall.Error())
			return
		}
		s.state = StateActive
		s.fsm.Raise(EvConnected, s)
		return
	case StateActive:
		if !s.sending {
			return
		}
		n, err := unix.Writev(s.fd, s.sendBuf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				return
			}
			s.fail(ErrorSyscall.Error(err))
			return
		}
		_ = n
		s.sending = false
		s.sendBuf = nil
		s.fsm.Raise(EvSent, nil)
		return
	default:
		s.fsm.Fatal(s.state.String(), aio.EvReadyOut)
	}
}

func (s *Socket) onReadable() {
	switch s.state {
	case StateListening:
		for {
			nfd, err := s.accept()
			if err != nil {
				s.fail(ErrorSyscall.Error())
				return
			}
			if nfd < 0 {
				return
			}
			s.fsm.Raise(EvAccepted, nfd)
		}
	case StateActive:
		if !s.receiving {
			return
		}
		n, err := unix.Read(s.fd, s.recvBuf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				return
			}
			s.fail(ErrorSyscall.Error(err))
			return
		}
		if n == 0 {
			s.fsm.Raise(EvShutdown, nil)
			return
		}
		s.receiving = false
		out := s.recvBuf[:n]
		s.recvBuf = nil
		s.fsm.Raise(EvReceived, out)
		return
	default:
		s.fsm.Fatal(s.state.String(), aio.EvReadyIn)
	}
}

func (s *Socket) fail(err error) {
	s.fsm.Raise(EvError, err)
}

func (s *Socket) doStop() {
	if s.state == StateIdle || s.state == StateStopping {
		return
	}

	prev := s.state
	s.state = StateStopping
	if prev != StateIdle {
		_ = s.fsm.Context().Worker().Remove(s.fd)
		_ = unix.Close(s.fd)
	}
	s.state = StateIdle
	s.fsm.Raise(aio.EvStopped, nil)
}
