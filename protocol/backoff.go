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
	"math/rand"
	"time"
)

// Backoff computes the exponential jittered reconnect/resend delay
// used by transport's Connector and InprocConnector (RECONNECT_IVL ..
// RECONNECT_IVL_MAX), per spec.md §4.7/§4.9. REQ's resend timer uses a
// fixed RESEND_IVL and does not use Backoff.
//
// Not safe for concurrent use; each connector/request keeps its own
// instance.
type Backoff struct {
	min, max time.Duration
	cur      time.Duration
	rnd      *rand.Rand
}

// NewBackoff seeds a Backoff bounded by [min, max]. A zero max disables
// growth: Next always returns min plus its jitter.
func NewBackoff(min, max time.Duration) *Backoff {
	if max < min {
		max = min
	}
	return &Backoff{min: min, max: max, rnd: rand.New(rand.NewSource(int64(min) + 1))}
}

// Next returns the next delay and doubles the internal interval toward
// max, jittered by up to 1 second as nanomsg's reconnect backoff does.
func (b *Backoff) Next() time.Duration {
	if b.cur < b.min {
		b.cur = b.min
	}

	d := b.cur

	next := b.cur * 2
	if next > b.max || next <= 0 {
		next = b.max
	}
	b.cur = next

	if b.rnd != nil {
		jitter := time.Duration(b.rnd.Int63n(int64(time.Second)))
		d += jitter
	}
	return d
}

// Reset restores the interval to min, called once a connection
// succeeds so the next failure starts the backoff over.
func (b *Backoff) Reset() {
	b.cur = b.min
}
