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

// Package core holds the process-wide state a C caller would reach
// through a global table of integer handles, spec.md §4.10: the fixed-
// capacity socket table, the aio.Pool every socket's Context is pinned
// into, the loaded options, the logger and the metrics collector. The
// transport and protocol registries live in their own packages.
package core

import "sync"

// Entry is the narrow interface the socket table needs from whatever
// it holds a slot for. socket.Socket implements it; Term calls Zombify
// on every live entry and then waits for each one to Free its own slot
// once fully drained, per spec.md §9's zombie-socket close sequence.
type Entry interface {
	Zombify()
}

// Table is a fixed-capacity sparse vector with a free-list, spec.md
// §4.10 "fixed capacity, default 512; beyond it, Open returns
// TOO_MANY_OPEN". Slot 0 is never issued so a zero handle reads as
// invalid, matching the original implementation's reserved-zero
// convention (see original_source's socket table).
type Table struct {
	mu       sync.Mutex
	cond     *sync.Cond
	slots    []Entry
	freeList []int
	count    int
}

// NewTable allocates a table with room for capacity live entries.
func NewTable(capacity int) *Table {
	t := &Table{
		slots: make([]Entry, capacity+1),
	}
	t.cond = sync.NewCond(&t.mu)

	t.freeList = make([]int, 0, capacity)
	for i := capacity; i >= 1; i-- {
		t.freeList = append(t.freeList, i)
	}
	return t
}

// Alloc reserves a slot for e and returns its handle. Returns
// ErrorTooManyOpen once every slot is occupied.
func (t *Table) Alloc(e Entry) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.freeList) == 0 {
		return 0, ErrorTooManyOpen.Error()
	}

	n := len(t.freeList) - 1
	id := t.freeList[n]
	t.freeList = t.freeList[:n]

	t.slots[id] = e
	t.count++
	return id, nil
}

// Get returns the entry at id, or (nil, false) if id is out of range
// or currently free.
func (t *Table) Get(id int) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id <= 0 || id >= len(t.slots) || t.slots[id] == nil {
		return nil, false
	}
	return t.slots[id], true
}

// Free releases id back to the free-list. Safe to call more than once
// for the same id; the second call is a no-op.
func (t *Table) Free(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id <= 0 || id >= len(t.slots) || t.slots[id] == nil {
		return
	}
	t.slots[id] = nil
	t.freeList = append(t.freeList, id)
	t.count--
	if t.count == 0 {
		t.cond.Broadcast()
	}
}

// Range calls fn for every currently occupied slot. fn must not call
// back into Alloc/Free/Range on the same table.
func (t *Table) Range(fn func(id int, e Entry)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, e := range t.slots {
		if e != nil {
			fn(id, e)
		}
	}
}

// Count returns the number of occupied slots.
func (t *Table) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Wait blocks until every slot has been Freed, used by Term to wait
// out each zombified socket's linger drain before the worker pool
// stops, per spec.md §9.
func (t *Table) Wait() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for t.count > 0 {
		t.cond.Wait()
	}
}
