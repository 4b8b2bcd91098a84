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

// Package message implements the wire-level Message type shared by
// every protocol and transport component: a growable/trimmable header
// byte range (used for REQ/REP backtrace, BUS origin tagging, and
// SURVEY ids) plus a reference-counted body Buffer.
package message

import "github.com/nabbar/scalesock/errors"

// Message is a structured payload with a protocol header (grown and
// trimmed as it traverses protocol layers) and a body. It is not safe
// for concurrent use: callers must hold the owning socket's context
// lock, per the FSM serialization invariant.
type Message struct {
	header []byte
	body   Buffer
}

// NewHeap allocates a Message whose body is backed by a plain Go slice.
func NewHeap(body []byte) *Message {
	return &Message{body: newHeapBuffer(body)}
}

// NewUser allocates a Message whose body is a caller-owned slice,
// released via free on the last Free call. Used by usock's zero-copy
// recvmsg path.
func NewUser(body []byte, free func()) *Message {
	return &Message{body: newUserBuffer(body, free)}
}

// Header returns the current header bytes. The slice is only valid
// until the next PushHeader, ShiftHeader, or Free.
func (m *Message) Header() []byte {
	if m == nil {
		return nil
	}
	return m.header
}

// Body returns the current body bytes, or nil if the message has
// already been freed.
func (m *Message) Body() []byte {
	if m == nil || m.body == nil {
		return nil
	}
	return m.body.Bytes()
}

// PushHeader prepends b to the header, growing it. Used when a
// protocol layer adds a routing hop (e.g. REQ adding the request id,
// a device adding a pipe id to the backtrace).
func (m *Message) PushHeader(b []byte) {
	if m == nil || len(b) == 0 {
		return
	}

	h := make([]byte, 0, len(b)+len(m.header))
	h = append(h, b...)
	h = append(h, m.header...)
	m.header = h
}

// ShiftHeader removes and returns the first n bytes of the header.
// Used when a protocol layer consumes a routing hop while unwinding a
// backtrace (REP replying, a device forwarding downstream).
func (m *Message) ShiftHeader(n int) ([]byte, errors.Error) {
	if m == nil {
		return nil, ErrorHeaderUnderflow.Error()
	}

	if n > len(m.header) {
		return nil, ErrorHeaderUnderflow.Error()
	}

	out := m.header[:n:n]
	m.header = m.header[n:]
	return out, nil
}

// Clone increments the body's reference count and returns an
// independent Message sharing the same underlying storage. The header
// is copied since each clone mutates its own backtrace independently
// (e.g. PUB fan-out to pipes that each prepend a different subscriber
// tag).
func (m *Message) Clone() *Message {
	if m == nil || m.body == nil {
		return nil
	}

	shared := m.body.Clone()
	m.body = shared

	h := make([]byte, len(m.header))
	copy(h, m.header)

	return &Message{header: h, body: shared}
}

// Free releases this Message's share of the body buffer. Storage is
// only returned to its allocator once every clone has called Free.
// Free is idempotent-safe to call at most once per Message; calling it
// twice on the same Message returns ErrorAlreadyFree.
func (m *Message) Free() errors.Error {
	if m == nil {
		return nil
	}

	if m.body == nil {
		return ErrorAlreadyFree.Error()
	}

	m.body.Free()
	m.body = nil
	m.header = nil
	return nil
}
