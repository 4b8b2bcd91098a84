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

// Handler is the single entry point every FSM component implements.
// src identifies which child raised/caused the event (a small integer
// tag the owner assigned when constructing that child); it is
// meaningless for events the FSM raises to itself.
type Handler func(src int, event Event, data interface{})

// FSM is a node in the state-machine tree. It carries no state of its
// own beyond the plumbing needed to dispatch and raise events; the
// component embedding an FSM supplies the Handler closure and keeps
// its own state in its own struct.
type FSM struct {
	name    string
	ctx     *Context
	handler Handler

	owner    *FSM
	ownerTag int
}

// New constructs an FSM bound to ctx. handler is invoked by Dispatch
// and by Raise; it must not block and must not acquire ctx's lock
// itself (Dispatch already holds it).
func New(ctx *Context, name string, handler Handler) *FSM {
	return &FSM{name: name, ctx: ctx, handler: handler}
}

// Name returns the FSM's diagnostic name (component + instance label),
// used in log lines and panics on bad transitions.
func (f *FSM) Name() string {
	return f.name
}

// Context returns the FSM's serialization domain.
func (f *FSM) Context() *Context {
	return f.ctx
}

// SetOwner records the parent FSM and the source tag the parent should
// see when this FSM raises events to it. Only meaningful before Start;
// an FSM's owner never changes afterward.
func (f *FSM) SetOwner(owner *FSM, tag int) {
	f.owner = owner
	f.ownerTag = tag
}

// Owner returns the parent FSM and this FSM's source tag as seen by
// that parent, or (nil, 0) for a root FSM (a socket's protocol
// instance has no owner).
func (f *FSM) Owner() (*FSM, int) {
	return f.owner, f.ownerTag
}

// invoke calls the Handler directly. Callers must already hold the
// Context lock (Dispatch and Context.unlock are the only callers).
func (f *FSM) invoke(src int, event Event, data interface{}) {
	f.handler(src, event, data)
}

// Start delivers EvStart synchronously under the Context lock. Start
// is always called by the constructing parent, never self-scheduled.
func (f *FSM) Start() {
	f.ctx.Dispatch(f, 0, EvStart, nil)
}

// Stop delivers EvStop synchronously. The Handler is expected to begin
// an orderly shutdown and eventually call Raise(EvStopped, nil) (which
// the owner observes as src == this FSM's ownerTag) once idle; Stop
// itself does not block for that to happen.
func (f *FSM) Stop() {
	f.ctx.Dispatch(f, 0, EvStop, nil)
}

// Raise enqueues event for delivery to this FSM's owner, tagged with
// this FSM's ownerTag, processed before the current Context critical
// section releases its lock. Raise must only be called from within a
// Handler invocation (i.e. with the Context lock already held);
// calling it from a user thread is a programming error.
func (f *FSM) Raise(event Event, data interface{}) {
	if f.owner == nil {
		return
	}
	f.ctx.enqueue(f.owner, f.ownerTag, event, data)
}

// RaiseSelf enqueues event for delivery back to this same FSM,
// bypassing the owner indirection — used by components that need to
// re-enter their own Handler once the current call returns (e.g. a
// connector advancing resolving -> connecting in one logical step
// without recursing).
func (f *FSM) RaiseSelf(src int, event Event, data interface{}) {
	f.ctx.enqueue(f, src, event, data)
}

// Fatal panics with an ErrorBadTransition assertion (nothing is logged
// before the panic): event is not
// defined for the current state in state. Per aio's FSM framework
// contract, this is a programming error, not a runtime failure, and
// components call it from the default arm of their state switch.
func (f *FSM) Fatal(state string, event Event) {
	panic(ErrorBadTransition.Errorf(f.name, state, event.String()))
}
