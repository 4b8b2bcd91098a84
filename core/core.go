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

package core

import (
	"context"
	"runtime"
	"sync"

	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/config"
	libloh "github.com/nabbar/scalesock/logger"
	"github.com/nabbar/scalesock/stats"
	"github.com/nabbar/scalesock/transport"
)

// global is the single process-wide instance Init installs, mirroring
// the original implementation's single static symbol table: spec.md
// §4.10 describes one global context, not one per caller.
var (
	globalMu sync.Mutex
	global   *Core
)

// Core is the process-wide runtime: the worker pool every socket's
// Context is pinned into, and the fixed-capacity socket table.
type Core struct {
	pool  *aio.Pool
	table *Table
	opts  *config.Options
	log   libloh.Logger
	stats *stats.Collector
}

// Init starts the worker pool and allocates the socket table per opts.
// Only one Core may be live at a time; a second Init before Term
// returns ErrorAlreadyInitialized.
func Init(opts *config.Options) (*Core, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return nil, ErrorAlreadyInitialized.Error()
	}
	if opts == nil {
		opts = config.Defaults()
	}

	n := opts.WorkerCount
	if n <= 0 {
		n = runtime.NumCPU()
	}

	log := libloh.New(context.Background())
	pool, err := aio.NewPool(n, func() libloh.Logger { return log })
	if err != nil {
		return nil, err
	}

	cap := opts.SocketTableCapacity
	if cap <= 0 {
		cap = 512
	}

	c := &Core{
		pool:  pool,
		table: NewTable(cap),
		opts:  opts,
		log:   log,
		stats: stats.New(),
	}
	transport.SetCollector(c.stats)
	global = c
	return c, nil
}

// Get returns the live Core instance, or nil if Init has not been
// called (or Term already ran).
func Get() *Core {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global
}

// Pool returns the worker pool sockets pin their Context into.
func (c *Core) Pool() *aio.Pool {
	return c.pool
}

// Table returns the socket table.
func (c *Core) Table() *Table {
	return c.table
}

// Options returns the defaults this Core was initialized with.
func (c *Core) Options() *config.Options {
	return c.opts
}

// Log returns the process-wide logger every worker was started with.
func (c *Core) Log() libloh.Logger {
	return c.log
}

// Stats returns the process-wide metrics collector. An embedding
// application reaches the underlying prometheus.Registry through
// Stats().Registry() to serve it on its own metrics endpoint.
func (c *Core) Stats() *stats.Collector {
	return c.stats
}

// Term zombifies every live socket, waits for each to finish its
// linger drain and free its table slot, then stops the worker pool,
// per spec.md §9's shutdown sequence applied to the whole process
// rather than one socket. Safe to call once; a second call without an
// intervening Init is a no-op.
func Term() {
	globalMu.Lock()
	c := global
	global = nil
	globalMu.Unlock()

	if c == nil {
		return
	}

	c.table.Range(func(id int, e Entry) {
		e.Zombify()
	})
	c.table.Wait()
	c.pool.Stop()
	transport.SetCollector(nil)
}
