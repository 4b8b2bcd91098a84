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

// Package aio implements the hierarchical, event-driven state-machine
// runtime shared by every other package: a fixed pool of OS worker
// threads, each running an epoll/poll readiness loop, a timer set, and
// a cross-thread task queue, dispatching typed events to FSM nodes
// under a per-socket serializing Context.
package aio

// Event is a typed signal delivered to an FSM's Handler. The framework
// reserves the low range; every component built on top of aio defines
// its own event codes starting at EvComponentBase, disjoint per component
// by construction (each component only interprets events it raised or
// was told to expect from a named child source tag).
type Event int

const (
	// EvStart is delivered exactly once, right after Start.
	EvStart Event = iota
	// EvStop is delivered by Stop; the FSM must begin an orderly
	// shutdown and eventually raise EvStopped to its owner.
	EvStop
	// EvStopped is raised by a child to its owner once the child's
	// Handler has processed EvStop and reached an idle state.
	EvStopped
	// EvUserBase is a reserved code between the lifecycle events and
	// the worker readiness events; components do not use it (their
	// codes start at EvComponentBase).
	EvUserBase

	// EvReadyIn/EvReadyOut/EvReadyErr are raised by a Worker to the
	// FSM registered against a ready descriptor (usock, almost
	// always). They live in the reserved range rather than
	// EvUserBase-relative because the Worker, not the component, is
	// the one raising them.
	EvReadyIn
	EvReadyOut
	EvReadyErr

	// EvComponentBase is the first event code components should use
	// for their own, component-specific events (e.g. usock's
	// EvConnected, stream's EvDeliver).
	EvComponentBase
)

func (e Event) String() string {
	switch e {
	case EvStart:
		return "START"
	case EvStop:
		return "STOP"
	case EvStopped:
		return "STOPPED"
	default:
		return "USER"
	}
}
