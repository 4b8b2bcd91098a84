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

import (
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
)

// Distribution implements broadcast send: every attached pipe
// currently signalling OUT gets a clone of the message; pipes that are
// not ready are skipped, a best-effort lossy fan-out for PUB/BUS/
// SURVEYOR, per spec.md §4.7.
type Distribution struct {
	all []*pipe.Pipe
}

// Add registers p as a broadcast target.
func (d *Distribution) Add(p *pipe.Pipe) {
	d.all = append(d.all, p)
}

// Remove detaches p.
func (d *Distribution) Remove(p *pipe.Pipe) {
	d.all = removePipe(d.all, p)
}

// Send clones msg once per currently-ready pipe and sends each clone;
// the original msg is freed once every clone has been handed off (or
// immediately, if no pipe was ready — the message is simply dropped).
func (d *Distribution) Send(msg *message.Message) {
	sent := false
	for _, p := range d.all {
		if !p.CanSend() {
			continue
		}
		_ = p.Send(msg.Clone())
		sent = true
	}
	if !sent {
		_ = msg.Free()
		return
	}
	_ = msg.Free()
}

// Pipes returns the full attached set, used by BUS to exclude the
// message's originating pipe from the broadcast.
func (d *Distribution) Pipes() []*pipe.Pipe {
	return d.all
}
