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

package protocol

// Device pumps every message recv'd on s1 to s2 and vice versa,
// unmodified (including headers), per spec.md §4.8 "Devices". Both
// sockets should be raw variants — a cooked protocol's Recv/Send
// already strips/stamps the id header a device must leave untouched.
//
// Pump is driven by the caller (typically the façade's own worker
// loop, invoked whenever either side signals IN); each call forwards
// every message immediately available from s1 to s2, then from s2 to
// s1, stopping a direction at the first empty Recv or failed Send, so
// it never blocks.
type Device struct {
	s1, s2 SockBase
}

// NewDevice builds a two-socket device. s1 and s2 must be of
// compatible raw protocol types (e.g. a raw REQ paired with a raw REP)
// — mismatched types will simply fail to move traffic since Recv/Send
// are wired directly, no compatibility check is performed here (the
// check already happened when each socket's pipes were attached).
func NewDevice(s1, s2 SockBase) *Device {
	return &Device{s1: s1, s2: s2}
}

// Pump relays whatever is immediately available in both directions,
// returning the total number of messages forwarded.
func (d *Device) Pump() int {
	n := 0
	for {
		msg := d.s1.Recv()
		if msg == nil {
			break
		}
		if err := d.s2.Send(msg); err != nil {
			break
		}
		n++
	}
	for {
		msg := d.s2.Recv()
		if msg == nil {
			break
		}
		if err := d.s1.Send(msg); err != nil {
			break
		}
		n++
	}
	return n
}

// Loopback pumps a single raw socket back into itself, per spec.md
// "with one raw socket and no second argument, messages loop back".
type Loopback struct {
	s SockBase
}

// NewLoopback builds a loopback device over s.
func NewLoopback(s SockBase) *Loopback {
	return &Loopback{s: s}
}

// Pump relays every immediately available message from s back into s.
func (l *Loopback) Pump() int {
	n := 0
	for {
		msg := l.s.Recv()
		if msg == nil {
			break
		}
		if err := l.s.Send(msg); err != nil {
			break
		}
		n++
	}
	return n
}
