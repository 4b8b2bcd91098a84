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

// Timer is an opaque handle returned by Worker.AddTimer, passed back
// to Worker.CancelTimer.
type Timer struct {
	seq      uint64
	deadline time.Time
	target   *FSM
	src      int
	event    Event
	data     interface{}
	canceled bool
}

// timerSet is a deadline-ordered collection of pending Timers. It is
// only ever touched from the owning worker's goroutine, so it needs no
// locking of its own; cross-thread cancellation goes through
// Worker.Post.
type timerSet struct {
	items []*Timer
	seq   uint64
}

// insert adds t in deadline order, ties broken by insertion sequence
// (the seq field, assigned increasing), matching spec.md's "ties break
// by insertion order".
func (s *timerSet) insert(t *Timer) {
	s.seq++
	t.seq = s.seq

	i := len(s.items)
	for i > 0 && less(t, s.items[i-1]) {
		i--
	}
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = t
}

func less(a, b *Timer) bool {
	if a.deadline.Equal(b.deadline) {
		return a.seq < b.seq
	}
	return a.deadline.Before(b.deadline)
}

// remove cancels t; O(1) would require a position index, but the
// common case (cancel shortly after insert, e.g. a superseded
// reconnect backoff) keeps the linear scan cheap in practice — a
// position-indexed variant is not worth the bookkeeping at the sizes
// this library runs at (one timer per connector/survey/REQ resend).
func (s *timerSet) remove(t *Timer) bool {
	for i, it := range s.items {
		if it == t {
			t.canceled = true
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// next returns the earliest pending deadline, or false if none.
func (s *timerSet) next() (time.Time, bool) {
	if len(s.items) == 0 {
		return time.Time{}, false
	}
	return s.items[0].deadline, true
}

// expired pops and returns every Timer whose deadline is <= now.
func (s *timerSet) expired(now time.Time) []*Timer {
	i := 0
	for i < len(s.items) && !s.items[i].deadline.After(now) {
		i++
	}
	if i == 0 {
		return nil
	}
	out := s.items[:i]
	s.items = s.items[i:]
	return out
}
