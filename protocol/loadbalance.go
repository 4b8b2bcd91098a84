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

// LoadBalance implements round-robin send across whichever attached
// pipes are currently signalling OUT — the dual of FairQueue, per
// spec.md §4.7. Outbound priority ordering (§4.7 "Priority") is
// layered on top by Priority, which holds one LoadBalance per
// priority band.
type LoadBalance struct {
	active []*pipe.Pipe
	cursor int
}

// MarkReady marks p as eligible for the outbound rotation once it
// signals OUT.
func (l *LoadBalance) MarkReady(p *pipe.Pipe) {
	for _, a := range l.active {
		if a == p {
			return
		}
	}
	l.active = append(l.active, p)
}

// MarkNotReady removes p from the rotation.
func (l *LoadBalance) MarkNotReady(p *pipe.Pipe) {
	l.active = removePipe(l.active, p)
	if l.cursor > len(l.active) {
		l.cursor = 0
	}
}

// Remove detaches p entirely (pipe torn down).
func (l *LoadBalance) Remove(p *pipe.Pipe) {
	l.MarkNotReady(p)
}

// Send picks the pipe at the current cursor among ready pipes and
// sends msg to it, advancing the cursor. Returns ErrorNoPipe if no
// pipe is currently ready.
func (l *LoadBalance) Send(msg *message.Message) error {
	for len(l.active) > 0 {
		if l.cursor >= len(l.active) {
			l.cursor = 0
		}
		p := l.active[l.cursor]
		if !p.CanSend() {
			l.active = append(l.active[:l.cursor], l.active[l.cursor+1:]...)
			continue
		}

		err := p.Send(msg)
		if !p.CanSend() {
			l.active = append(l.active[:l.cursor], l.active[l.cursor+1:]...)
		} else {
			l.cursor++
		}
		return err
	}
	return ErrorNoPipe.Error()
}

// Ready reports whether any pipe can currently accept a send.
func (l *LoadBalance) Ready() bool {
	return len(l.active) > 0
}
