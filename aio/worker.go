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
	"context"
	"sync"
	"time"

	libloh "github.com/nabbar/scalesock/logger"
)

// descReg binds a registered file descriptor back to the FSM + source
// tag that should receive its readiness events.
type descReg struct {
	target *FSM
	src    int
}

// Worker is a single OS thread running the event loop described in
// spec.md §4.1: poll OS readiness, drain the task queue, service
// expired timers, dispatch readiness events, repeat.
type Worker struct {
	id  int
	log libloh.FuncLog

	poll poller

	mu    sync.Mutex
	descs map[int]descReg
	tasks []func()
	timers timerSet

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewWorker creates worker id, selecting the build-tagged poller
// backend. log may be nil (falls back to a discarding logger).
func NewWorker(id int, log libloh.FuncLog) (*Worker, error) {
	p, err := newPoller()
	if err != nil {
		return nil, err
	}

	return &Worker{
		id:     id,
		log:    log,
		poll:   p,
		descs:  make(map[int]descReg),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}, nil
}

func (w *Worker) logger() libloh.Logger {
	if w.log != nil {
		if l := w.log(); l != nil {
			return l
		}
	}
	return libloh.New(context.Background())
}

// ID returns the worker's pool-assigned index.
func (w *Worker) ID() int {
	return w.id
}

// Add registers fd for interest, delivering readiness to target as the
// fixed EvReadyIn/EvReadyOut/EvReadyErr events tagged with src (see
// usock for how a component maps those to its own IN/OUT events).
func (w *Worker) Add(fd int, interest Interest, target *FSM, src int) error {
	w.mu.Lock()
	w.descs[fd] = descReg{target: target, src: src}
	w.mu.Unlock()
	return w.poll.Add(fd, interest)
}

// Remove cancels fd's registration.
func (w *Worker) Remove(fd int) error {
	w.mu.Lock()
	delete(w.descs, fd)
	w.mu.Unlock()
	return w.poll.Remove(fd)
}

// AddTimer schedules event to be dispatched to target (tagged src)
// after d elapses. Safe to call from any goroutine; the insertion is
// always posted as a task, whichever goroutine calls it, per
// spec.md §5 "Timer cancellation... guaranteed... after the subsequent
// round-trip".
func (w *Worker) AddTimer(d time.Duration, target *FSM, src int, event Event) *Timer {
	t := &Timer{deadline: time.Now().Add(d), target: target, src: src, event: event}
	w.Post(func() {
		w.timers.insert(t)
	})
	return t
}

// CancelTimer cancels t. See AddTimer for the cross-thread guarantee.
func (w *Worker) CancelTimer(t *Timer) {
	w.Post(func() {
		w.timers.remove(t)
	})
}

// Post enqueues task for execution on this worker's goroutine and
// wakes the poller if it is blocked in Wait.
func (w *Worker) Post(task func()) {
	w.mu.Lock()
	w.tasks = append(w.tasks, task)
	w.mu.Unlock()
	_ = w.poll.Wake()
}

// Run executes the event loop until Stop is called. Intended to be
// run as `go worker.Run()` by the owning Pool.
func (w *Worker) Run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			w.drainTasks()
			return
		default:
		}

		sleep := w.sleepBound()

		events, err := w.poll.Wait(sleep)
		if err != nil {
			w.logger().Fatal("worker poll failed", err, "worker", w.id)
			return
		}

		w.drainTasks()
		w.fireTimers()
		w.dispatchReady(events)
	}
}

func (w *Worker) sleepBound() time.Duration {
	w.mu.Lock()
	hasTasks := len(w.tasks) > 0
	w.mu.Unlock()
	if hasTasks {
		return 0
	}

	if next, ok := w.timers.next(); ok {
		d := time.Until(next)
		if d < 0 {
			d = 0
		}
		return d
	}
	return -1
}

func (w *Worker) drainTasks() {
	w.mu.Lock()
	tasks := w.tasks
	w.tasks = nil
	w.mu.Unlock()

	w.poll.DrainWake()

	for _, t := range tasks {
		t()
	}
}

func (w *Worker) fireTimers() {
	for _, t := range w.timers.expired(time.Now()) {
		if t.canceled || t.target == nil {
			continue
		}
		t.target.Context().Dispatch(t.target, t.src, t.event, t.data)
	}
}

func (w *Worker) dispatchReady(events []readyEvent) {
	for _, ev := range events {
		w.mu.Lock()
		reg, ok := w.descs[ev.fd]
		w.mu.Unlock()
		if !ok {
			continue
		}

		ctx := reg.target.Context()
		if ev.kind&readyErr != 0 {
			ctx.Dispatch(reg.target, reg.src, EvReadyErr, nil)
			continue
		}
		if ev.kind&readyIn != 0 {
			ctx.Dispatch(reg.target, reg.src, EvReadyIn, nil)
		}
		if ev.kind&readyOut != 0 {
			ctx.Dispatch(reg.target, reg.src, EvReadyOut, nil)
		}
	}
}

// Stop halts the event loop and waits for Run to return.
func (w *Worker) Stop() {
	close(w.stopCh)
	_ = w.poll.Wake()
	<-w.doneCh
	_ = w.poll.Close()
}
