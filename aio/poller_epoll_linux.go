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

//go:build linux

package aio

import (
	"time"

	"golang.org/x/sys/unix"
)

// epollPoller drives the worker's readiness loop via Linux epoll, edge
// triggered. Grounded on the raw-epoll patterns found in the retrieval
// pack (mdlayher/socket's unix.RawConn-adjacent style, and the
// standalone raw-epoll HTTP server in other_examples/); unlike those,
// registrations here feed aio.Worker events rather than net.Conn.
type epollPoller struct {
	epfd   int
	wakeFD int
}

func newPoller() (poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, ErrorPollFailed.Error(err)
	}

	wfd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		_ = unix.Close(epfd)
		return nil, ErrorPollFailed.Error(err)
	}

	p := &epollPoller{epfd: epfd, wakeFD: wfd}
	if err = p.Add(wfd, InterestIn); err != nil {
		_ = unix.Close(wfd)
		_ = unix.Close(epfd)
		return nil, err
	}
	return p, nil
}

func epollEvents(interest Interest) uint32 {
	var ev uint32 = unix.EPOLLERR | unix.EPOLLHUP
	if interest&InterestIn != 0 {
		ev |= unix.EPOLLIN
	}
	if interest&InterestOut != 0 {
		ev |= unix.EPOLLOUT
	}
	return ev
}

func (p *epollPoller) Add(fd int, interest Interest) error {
	ev := &unix.EpollEvent{Events: epollEvents(interest), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, ev); err != nil {
		if err == unix.EEXIST {
			return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, ev)
		}
		return ErrorPollFailed.Error(err)
	}
	return nil
}

func (p *epollPoller) Remove(fd int) error {
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil && err != unix.ENOENT {
		return ErrorPollFailed.Error(err)
	}
	return nil
}

func (p *epollPoller) Wait(timeout time.Duration) ([]readyEvent, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}

	buf := make([]unix.EpollEvent, 64)
	for {
		n, err := unix.EpollWait(p.epfd, buf, ms)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, ErrorPollFailed.Error(err)
		}

		out := make([]readyEvent, 0, n)
		for i := 0; i < n; i++ {
			var k readyKind
			if buf[i].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				k |= readyErr
			}
			if buf[i].Events&unix.EPOLLIN != 0 {
				k |= readyIn
			}
			if buf[i].Events&unix.EPOLLOUT != 0 {
				k |= readyOut
			}
			out = append(out, readyEvent{fd: int(buf[i].Fd), kind: k})
		}
		return out, nil
	}
}

func (p *epollPoller) Wake() error {
	var b [8]byte
	b[7] = 1
	_, err := unix.Write(p.wakeFD, b[:])
	if err != nil && err != unix.EAGAIN {
		return ErrorPollFailed.Error(err)
	}
	return nil
}

func (p *epollPoller) DrainWake() {
	var b [8]byte
	for {
		_, err := unix.Read(p.wakeFD, b[:])
		if err != nil {
			return
		}
	}
}

func (p *epollPoller) Close() error {
	_ = unix.Close(p.wakeFD)
	return unix.Close(p.epfd)
}
