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

// Package usock wraps a non-blocking OS socket as an aio.FSM, exactly
// as spec.md §4.3 describes: start/bind/listen/connect/accept/send/
// recv are all requests a parent issues, answered asynchronously via
// events raised back to that parent once the worker observes readiness.
package usock

import "github.com/nabbar/scalesock/aio"

// State is usock's top-level state, matching spec.md §4.3's table.
type State uint8

const (
	StateIdle State = iota
	StateStarting
	StateStarted
	StateListening
	StateAccepting
	StateConnecting
	StateActive
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateStarted:
		return "started"
	case StateListening:
		return "listening"
	case StateAccepting:
		return "accepting"
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Events raised by a Socket to its owner, component-specific codes
// starting at aio.EvComponentBase per the FSM framework's numbering
// convention (see aio/event.go).
const (
	EvConnected aio.Event = aio.EvComponentBase + iota
	EvAccepted
	EvSent
	EvReceived
	EvError
	EvShutdown
)

// src tags a Socket uses internally to distinguish its own fd
// readiness registration from a listening parent's accept-loop
// registration. usock only ever registers one fd per instance, so this
// is always 0; kept named for readability at call sites.
const selfSrc = 0
