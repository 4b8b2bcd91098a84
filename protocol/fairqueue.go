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

// Package protocol implements the scalability-pattern state machines
// (spec.md §4.8) and the routing primitives they share (§4.7): fair
// queue, load balance, distribution, priority ordering, a subscription
// trie, and exponential backoff.
package protocol

import (
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
)

// FairQueue implements round-robin receive across whichever attached
// pipes are currently signalling IN, per spec.md §4.7.
type FairQueue struct {
	all    []*pipe.Pipe
	active []*pipe.Pipe
	cursor int
}

// Add registers p as attached; it starts out inactive until MarkReady
// observes its first EvIn.
func (q *FairQueue) Add(p *pipe.Pipe) {
	q.all = append(q.all, p)
}

// Remove detaches p from both the full set and the active rotation.
func (q *FairQueue) Remove(p *pipe.Pipe) {
	q.all = removePipe(q.all, p)
	q.active = removePipe(q.active, p)
	if q.cursor > len(q.active) {
		q.cursor = 0
	}
}

// MarkReady adds p to the active rotation if not already present.
func (q *FairQueue) MarkReady(p *pipe.Pipe) {
	for _, a := range q.active {
		if a == p {
			return
		}
	}
	q.active = append(q.active, p)
}

// MarkNotReady removes p from the active rotation.
func (q *FairQueue) MarkNotReady(p *pipe.Pipe) {
	q.active = removePipe(q.active, p)
	if q.cursor > len(q.active) {
		q.cursor = 0
	}
}

// Recv polls the pipe at the current cursor; if it has nothing, the
// pipe is removed from the active set and the next is tried, until a
// message is found or the active set is exhausted.
func (q *FairQueue) Recv() *message.Message {
	m, _ := q.RecvFrom()
	return m
}

// RecvFrom behaves like Recv but also reports which pipe the message
// came from, used by REP/RESPONDENT to save the reply backtrace.
func (q *FairQueue) RecvFrom() (*message.Message, *pipe.Pipe) {
	for len(q.active) > 0 {
		if q.cursor >= len(q.active) {
			q.cursor = 0
		}
		p := q.active[q.cursor]
		m := p.Recv()
		if m == nil {
			q.active = append(q.active[:q.cursor], q.active[q.cursor+1:]...)
			continue
		}
		if !p.CanRecv() {
			q.active = append(q.active[:q.cursor], q.active[q.cursor+1:]...)
		} else {
			q.cursor++
		}
		return m, p
	}
	return nil, nil
}

// Ready reports whether any pipe currently has a message queued.
func (q *FairQueue) Ready() bool {
	return len(q.active) > 0
}

func removePipe(s []*pipe.Pipe, p *pipe.Pipe) []*pipe.Pipe {
	for i, v := range s {
		if v == p {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
