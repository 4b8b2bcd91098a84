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

import "sync"

// raisedEvent is a pending dispatch queued by Raise, processed before
// the owning Context's lock is released.
type raisedEvent struct {
	target *FSM
	src    int
	event  Event
	data   interface{}
}

// Context is the serialization domain shared by one socket and every
// FSM descending from it (its protocol instance, its endpoints, their
// usocks, pipes, and stream framers). Every FSM sharing a Context runs
// its Handler under the same mutex: at most one Handler invocation is
// ever active per Context.
type Context struct {
	mu      sync.Mutex
	worker  *Worker
	pending []raisedEvent
}

// NewContext creates a Context pinned to worker. Pinning happens once,
// at socket creation, and never changes for the Context's lifetime.
func NewContext(worker *Worker) *Context {
	return &Context{worker: worker}
}

// Worker returns the Context's pinned worker. FSMs use this to install
// timers and descriptor registrations on the correct worker, per
// aio.FSM's "worker affinity" contract.
func (c *Context) Worker() *Worker {
	return c.worker
}

// Dispatch invokes target's Handler for (src, event, data) under the
// Context lock, then drains any events Raised during that call before
// releasing the lock. This is the framework's single entry point for
// delivering an event to an FSM; Worker.Run is the only caller outside
// tests.
func (c *Context) Dispatch(target *FSM, src int, event Event, data interface{}) {
	c.mu.Lock()
	defer c.unlock()

	target.invoke(src, event, data)
}

// enqueue appends a Raise()d event to the pending queue. Must be
// called with the Context lock held (i.e. from within a Handler).
func (c *Context) enqueue(target *FSM, src int, event Event, data interface{}) {
	c.pending = append(c.pending, raisedEvent{target: target, src: src, event: event, data: data})
}

// unlock drains the pending queue — FIFO, same critical section — and
// then releases the mutex. A Handler invoked while draining may itself
// enqueue further events; they are appended to the same slice and
// processed before unlock returns.
func (c *Context) unlock() {
	for len(c.pending) > 0 {
		ev := c.pending[0]
		c.pending = c.pending[1:]
		ev.target.invoke(ev.src, ev.event, ev.data)
	}
	c.mu.Unlock()
}
