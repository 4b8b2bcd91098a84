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

// MinPriority and MaxPriority bound the SNDPRIO/RCVPRIO option range
// from spec.md §4.9: 1 is the highest priority band, 16 the lowest.
const (
	MinPriority = 1
	MaxPriority = 16
)

// Priority layers MaxPriority LoadBalance rotations: Send always drains
// the lowest-numbered non-empty band first, so pipes placed in band 1
// starve every lower-priority band for as long as they keep accepting
// sends, per spec.md §4.7 "Priority".
type Priority struct {
	bands  [MaxPriority]LoadBalance
	prioOf map[*pipe.Pipe]int
}

func clampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// Add registers p in the given priority band (1-16, clamped).
func (pr *Priority) Add(p *pipe.Pipe, prio int) {
	prio = clampPriority(prio)
	if pr.prioOf == nil {
		pr.prioOf = make(map[*pipe.Pipe]int)
	}
	pr.prioOf[p] = prio
}

// MarkReady marks p eligible for send within its registered band.
func (pr *Priority) MarkReady(p *pipe.Pipe) {
	pr.bands[pr.bandIndex(p)].MarkReady(p)
}

// MarkNotReady removes p from its band's rotation.
func (pr *Priority) MarkNotReady(p *pipe.Pipe) {
	pr.bands[pr.bandIndex(p)].MarkNotReady(p)
}

// Remove detaches p entirely.
func (pr *Priority) Remove(p *pipe.Pipe) {
	pr.bands[pr.bandIndex(p)].Remove(p)
	delete(pr.prioOf, p)
}

func (pr *Priority) bandIndex(p *pipe.Pipe) int {
	return clampPriority(pr.prioOf[p]) - 1
}

// Send tries each band from highest priority (1) to lowest (16),
// sending through the first band with a ready pipe.
func (pr *Priority) Send(msg *message.Message) error {
	for i := range pr.bands {
		if pr.bands[i].Ready() {
			return pr.bands[i].Send(msg)
		}
	}
	return ErrorNoPipe.Error()
}

// Ready reports whether any band has a ready pipe.
func (pr *Priority) Ready() bool {
	for i := range pr.bands {
		if pr.bands[i].Ready() {
			return true
		}
	}
	return false
}
