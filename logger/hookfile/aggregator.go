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

// Package hookfile provides file-based logging hooks for logrus.
// This file handles log file aggregation and rotation detection.
// It manages multiple writers to the same log file efficiently.
package hookfile

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/nabbar/scalesock/atomic"
)

// fileAgg is a reference-counted, mutex-guarded writer shared by every hook
// pointing at the same file path. A background goroutine periodically syncs
// the descriptor and detects external rotation (e.g. logrotate).
type fileAgg struct {
	i *atomic.Int64
	m sync.Mutex
	f *os.File
	p string
	d chan struct{}
}

var agg = libatm.NewMapTyped[string, *fileAgg]()

func init() {
	runtime.SetFinalizer(agg, func(a libatm.MapTyped[string, *fileAgg]) {
		a.Range(func(k string, v *fileAgg) bool {
			if v != nil {
				_ = v.close()
			}
			return true
		})
	})
}

func setAgg(k string, m os.FileMode, cre bool) (io.Writer, error) {
	i, l := agg.Load(k)

	if l && i != nil {
		i.i.Add(1)
		agg.Store(k, i)
		return i, nil
	}

	var e error
	i, e = newAgg(k, m, cre)

	if e != nil {
		return nil, e
	}

	agg.Store(k, i)
	return i, nil
}

func delAgg(k string) {
	i, _ := agg.Load(k)
	if i == nil {
		return
	}

	if i.i.Add(-1) > 0 {
		agg.Store(k, i)
	} else {
		agg.Delete(k)
		_ = i.close()
	}
}

func newAgg(p string, m os.FileMode, cre bool) (*fileAgg, error) {
	fl := os.O_WRONLY | os.O_APPEND
	if cre {
		fl = fl | os.O_CREATE
	}

	f, e := os.OpenFile(p, fl, m)
	if e != nil {
		return nil, e
	}

	i := &fileAgg{
		i: new(atomic.Int64),
		f: f,
		p: p,
		d: make(chan struct{}),
	}
	i.i.Store(1)

	go i.watchRotate(cre)

	return i, nil
}

// watchRotate periodically checks if the file on disk still matches the
// open descriptor, reopening it when an external tool has rotated it.
func (i *fileAgg) watchRotate(cre bool) {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-i.d:
			return
		case <-t.C:
			i.m.Lock()

			syncErr := i.f.Sync()
			needReopen := syncErr != nil

			if !needReopen && cre {
				cur, e1 := i.f.Stat()
				dsk, e2 := os.Stat(i.p)

				if e2 != nil || (e1 == nil && !os.SameFile(cur, dsk)) {
					needReopen = true
				}
			}

			if needReopen {
				fl := os.O_WRONLY | os.O_APPEND
				if cre {
					fl = fl | os.O_CREATE
				}

				_ = i.f.Close()

				if f, e := os.OpenFile(i.p, fl, 0644); e == nil {
					i.f = f
				} else {
					_, _ = fmt.Fprintf(os.Stderr, "error opening file %s: %v\n", i.p, e)
				}
			}

			i.m.Unlock()
		}
	}
}

// Write implements io.Writer.
func (i *fileAgg) Write(p []byte) (int, error) {
	i.m.Lock()
	defer i.m.Unlock()
	return i.f.Write(p)
}

func (i *fileAgg) close() error {
	i.m.Lock()
	defer i.m.Unlock()

	select {
	case <-i.d:
	default:
		close(i.d)
	}

	if i.f == nil {
		return nil
	}

	e := i.f.Close()
	i.f = nil
	return e
}

// ResetOpenFiles closes all open file aggregators and clears the aggregator map.
// This function is primarily used for testing and cleanup purposes.
func ResetOpenFiles() {
	agg.Range(func(k string, v *fileAgg) bool {
		_ = v.close()
		agg.Delete(k)
		return true
	})
}
