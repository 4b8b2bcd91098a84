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

import (
	"sync/atomic"

	libloh "github.com/nabbar/scalesock/logger"
	"golang.org/x/sync/errgroup"
)

// Pool is the fixed-size set of workers a socket's Context is pinned
// to at creation, round-robin. Grounded on the teacher's use of
// golang.org/x/sync/errgroup to supervise worker goroutine lifetimes,
// so a worker's fatal poll error propagates to an orderly abort of the
// whole pool instead of a silently leaked goroutine.
type Pool struct {
	workers []*Worker
	next    uint64

	grp *errgroup.Group
}

// NewPool starts n workers (n <= 0 defaults to runtime.NumCPU by the
// caller, typically config.Options.WorkerCount) and begins running
// their event loops immediately.
func NewPool(n int, log libloh.FuncLog) (*Pool, error) {
	if n <= 0 {
		n = 1
	}

	p := &Pool{workers: make([]*Worker, 0, n)}
	g := &errgroup.Group{}
	p.grp = g

	for i := 0; i < n; i++ {
		w, err := NewWorker(i, log)
		if err != nil {
			p.Stop()
			return nil, err
		}
		p.workers = append(p.workers, w)

		worker := w
		g.Go(func() error {
			worker.Run()
			return nil
		})
	}

	return p, nil
}

// Pin returns the next worker in round-robin order. Called once per
// socket, at creation; the result is fixed for that socket's lifetime.
func (p *Pool) Pin() *Worker {
	i := atomic.AddUint64(&p.next, 1) - 1
	return p.workers[int(i)%len(p.workers)]
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stop halts every worker and waits for their event loops to return.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		w.Stop()
	}
	_ = p.grp.Wait()
}
