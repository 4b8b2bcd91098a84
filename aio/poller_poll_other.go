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

//go:build !linux

package aio

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// pollPoller is the portable fallback backend, built on unix.Poll. The
// spec's "epoll, kqueue, or poll" menu is narrowed to these two build
// paths — see DESIGN.md's Open Question resolution — since a true
// kqueue backend is BSD/Darwin-specific and poll gives the same
// readiness semantics this package needs.
type pollPoller struct {
	mu     sync.Mutex
	fds    map[int]Interest
	wakeR  int
	wakeW  int
}

func newPoller() (poller, error) {
	fds := make([]int, 2)
	if err := unix.Pipe2(fds, unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return nil, ErrorPollFailed.Error(err)
	}

	p := &pollPoller{
		fds:   make(map[int]Interest),
		wakeR: fds[0],
		wakeW: fds[1],
	}
	p.fds[p.wakeR] = InterestIn
	return p, nil
}

func (p *pollPoller) Add(fd int, interest Interest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fds[fd] = interest
	return nil
}

func (p *pollPoller) Remove(fd int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.fds, fd)
	return nil
}

func (p *pollPoller) Wait(timeout time.Duration) ([]readyEvent, error) {
	p.mu.Lock()
	fds := make([]unix.PollFd, 0, len(p.fds))
	for fd, interest := range p.fds {
		var events int16
		if interest&InterestIn != 0 {
			events |= unix.POLLIN
		}
		if interest&InterestOut != 0 {
			events |= unix.POLLOUT
		}
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: events})
	}
	p.mu.Unlock()

	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}

	for {
		n, err := unix.Poll(fds, ms)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, ErrorPollFailed.Error(err)
		}
		if n == 0 {
			return nil, nil
		}

		out := make([]readyEvent, 0, n)
		for _, f := range fds {
			if f.Revents == 0 {
				continue
			}
			var k readyKind
			if f.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
				k |= readyErr
			}
			if f.Revents&unix.POLLIN != 0 {
				k |= readyIn
			}
			if f.Revents&unix.POLLOUT != 0 {
				k |= readyOut
			}
			out = append(out, readyEvent{fd: int(f.Fd), kind: k})
		}
		return out, nil
	}
}

func (p *pollPoller) Wake() error {
	_, err := unix.Write(p.wakeW, []byte{1})
	if err != nil && err != unix.EAGAIN {
		return ErrorPollFailed.Error(err)
	}
	return nil
}

func (p *pollPoller) DrainWake() {
	var b [64]byte
	for {
		_, err := unix.Read(p.wakeR, b[:])
		if err != nil {
			return
		}
	}
}

func (p *pollPoller) Close() error {
	_ = unix.Close(p.wakeR)
	return unix.Close(p.wakeW)
}
