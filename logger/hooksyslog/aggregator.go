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

package hooksyslog

import (
	"fmt"
	"io"
	"net"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/nabbar/scalesock/atomic"
	libptc "github.com/nabbar/scalesock/network/protocol"
)

// sysAgg manages a shared, reference-counted connection to a syslog endpoint.
// It wraps a raw net.Conn with a mutex-guarded writer so several hooks pointing
// at the same destination can share one socket instead of dialing one each.
type sysAgg struct {
	i *atomic.Int64 // i is a reference counter for the number of hooks using this aggregator.
	m sync.Mutex    // m guards c against concurrent writes/reconnects.
	c net.Conn      // c is the underlying connection to the syslog endpoint.
	p libptc.NetworkProtocol
	a string // a is the dial address.
	l bool   // l indicates if the connection is to a local (auto-discovered) syslog.
}

var (
	// agg is a global, thread-safe map that stores shared sysAgg instances.
	// The key is a unique identifier for the syslog endpoint (protocol + address),
	// and the value is the corresponding sysAgg instance. This allows multiple
	// hooks pointing to the same destination to share a single network connection.
	agg = libatm.NewMapTyped[string, *sysAgg]()
)

// init sets up a finalizer for the global aggregator map.
// This ensures that all open network connections are closed gracefully
// when the program exits, preventing resource leaks.
func init() {
	runtime.SetFinalizer(agg, func(a libatm.MapTyped[string, *sysAgg]) {
		a.Range(func(k string, v *sysAgg) bool {
			if v != nil {
				v.close()
			}
			return true
		})
	})
}

// ResetOpenSyslog closes all active syslog connections and clears the aggregator map.
// This is primarily useful for testing or for scenarios requiring a full reset
// of the logging infrastructure.
func ResetOpenSyslog() {
	agg.Range(func(k string, v *sysAgg) bool {
		v.close()
		agg.Delete(k)
		return true
	})
}

// setKey generates a unique key for a syslog endpoint based on its protocol and address.
func setKey(ptc libptc.NetworkProtocol, adr string) string {
	if adr == "" {
		ptc = libptc.NetworkEmpty
		adr = "localhost"
	}

	return fmt.Sprintf("%s-%s", ptc.Code(), adr)
}

// setAgg retrieves or creates a shared aggregator for a given syslog endpoint.
// If an aggregator for the endpoint already exists, its reference count is incremented.
// Otherwise, a new aggregator and its underlying network connection are created.
func setAgg(ptc libptc.NetworkProtocol, adr string) (io.Writer, bool, error) {
	k := setKey(ptc, adr)
	i, l := agg.Load(k)

	if l && i != nil {
		i.i.Add(1)
		agg.Store(k, i)
		return i, i.l, nil
	}

	var e error
	i, e = newAgg(ptc, adr)

	if e != nil {
		return nil, false, e
	}

	agg.Store(k, i)
	return i, i.l, nil
}

// delAgg decrements the reference count for a syslog endpoint's aggregator.
// If the reference count drops to zero, the aggregator is shut down, its network
// connection is closed, and it is removed from the global map.
func delAgg(ptc libptc.NetworkProtocol, adr string) {
	k := setKey(ptc, adr)
	i, _ := agg.Load(k)
	if i == nil {
		return
	}

	if i.i.Add(-1) > 0 {
		agg.Store(k, i)
	} else {
		agg.Delete(k)
		i.close()
	}
}

// newAgg creates a new sysAgg instance and establishes the initial connection.
func newAgg(ptc libptc.NetworkProtocol, adr string) (*sysAgg, error) {
	i := &sysAgg{
		i: new(atomic.Int64),
		p: ptc,
	}

	if adr == "" {
		var err error
		ptc, adr, err = systemSyslog()
		if err != nil {
			return nil, err
		}
		i.p = ptc
		i.l = true
	}

	i.a = adr

	if e := i.dial(); e != nil {
		return nil, e
	}

	i.i.Store(1)
	return i, nil
}

// dial (re)establishes the underlying connection, replacing any previous one.
func (i *sysAgg) dial() error {
	i.m.Lock()
	defer i.m.Unlock()

	if i.c != nil {
		_ = i.c.Close()
		i.c = nil
	}

	c, e := net.DialTimeout(i.p.Code(), i.a, 5*time.Second)
	if e != nil {
		return e
	}

	i.c = c
	return nil
}

// Write implements io.Writer, transparently retrying once after a reconnect.
func (i *sysAgg) Write(p []byte) (int, error) {
	i.m.Lock()
	c := i.c
	i.m.Unlock()

	if c != nil {
		if n, e := c.Write(p); e == nil {
			return n, nil
		}
	}

	if e := i.dial(); e != nil {
		return 0, e
	}

	i.m.Lock()
	defer i.m.Unlock()
	return i.c.Write(p)
}

// Close implements io.Closer.
func (i *sysAgg) Close() error {
	return i.close()
}

func (i *sysAgg) close() error {
	i.m.Lock()
	defer i.m.Unlock()

	if i.c == nil {
		return nil
	}

	e := i.c.Close()
	i.c = nil
	return e
}
