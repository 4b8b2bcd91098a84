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

package socket

import "golang.org/x/sys/unix"

// notifyFD is the one-byte eventfd-equivalent spec.md §9 describes for
// external-poll integration: "a pipe that the worker writes when the
// socket transitions to ready-to-send/receive, and that blocking user
// calls clear as they consume the resource". Built on unix.Pipe2
// rather than unix.Eventfd so it needs no Linux-only build tag, unlike
// the poller's own wake mechanism (aio/poller_epoll_linux.go).
type notifyFD struct {
	r, w   int
	active bool
}

func newNotifyFD() (*notifyFD, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, ErrorInvalid.Error(err)
	}
	return &notifyFD{r: fds[0], w: fds[1]}, nil
}

// fd is the read end, exposed through the SNDFD/RCVFD option.
func (n *notifyFD) fd() int {
	return n.r
}

// set marks the resource ready, waking any external poller blocked on
// n.fd(). A no-op if already signaled.
func (n *notifyFD) set() {
	if n == nil || n.active {
		return
	}
	n.active = true
	var b [1]byte
	_, _ = unix.Write(n.w, b[:])
}

// clear drains the pipe, called once the resource is no longer ready.
func (n *notifyFD) clear() {
	if n == nil || !n.active {
		return
	}
	n.active = false
	var b [1]byte
	for {
		if _, err := unix.Read(n.r, b[:]); err != nil {
			return
		}
	}
}

func (n *notifyFD) close() {
	if n == nil {
		return
	}
	_ = unix.Close(n.r)
	_ = unix.Close(n.w)
}
