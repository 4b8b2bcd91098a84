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

package aio

import "time"

// Interest is a bitmask of the readiness directions a descriptor is
// registered for.
type Interest uint8

const (
	InterestIn Interest = 1 << iota
	InterestOut
)

// readyKind distinguishes the three event kinds the poller can report
// for a descriptor, matching spec.md §4.1 ("IN / OUT / ERR").
type readyKind uint8

const (
	readyIn readyKind = 1 << iota
	readyOut
	readyErr
)

// readyEvent is one readiness notification returned by a poller Wait
// call; fd is resolved back to an *FSM by the Worker's registration
// table.
type readyEvent struct {
	fd   int
	kind readyKind
}

// poller is the OS-level readiness multiplexing backend a Worker
// drives. Exactly one implementation is compiled in per platform,
// selected by build tag (poller_epoll_linux.go on linux,
// poller_poll_other.go elsewhere).
type poller interface {
	// Add registers fd for the given interest. Re-registering an
	// already-added fd updates its interest set.
	Add(fd int, interest Interest) error
	Remove(fd int) error
	// Wait blocks up to timeout (negative means forever) and returns
	// the batch of ready descriptors. EINTR is retried internally;
	// any other error is returned to the caller, which treats it as
	// fatal per spec.md §4.1 "Failure semantics".
	Wait(timeout time.Duration) ([]readyEvent, error)
	// Wake interrupts a blocked Wait from another goroutine; Post
	// calls it after enqueueing a task so the worker loop notices the
	// task queue without waiting for the next timer or I/O event.
	Wake() error
	// DrainWake consumes the byte(s) written by Wake so the wake
	// descriptor's readiness is reset for the next poll.
	DrainWake()
	Close() error
}
