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

package transport

import (
	"sync"

	"golang.org/x/sys/unix"
)

// Endpoint supplies the OS-socket-family-specific knowledge the
// generic Listener/Connector need: which unix.Sockaddr an Address
// resolves to, and any transport-specific step to run right after
// usock.Start (e.g. TCP's BindToDevice for an "iface;host:port"
// address). Implemented by TCP (tcp.go) and IPC (ipc.go); inproc
// (inproc.go) does not use usock at all and implements its own
// Listener/Connector pair directly.
type Endpoint interface {
	// Scheme is the URI scheme this Endpoint answers for ("tcp", "ipc").
	Scheme() string
	// Family and SockType select the unix.Socket(2,3) arguments.
	Family() int
	SockType() int
	// ListenSockaddr resolves addr for Bind+Listen.
	ListenSockaddr(addr *Address) (unix.Sockaddr, error)
	// DialSockaddr resolves addr for Connect.
	DialSockaddr(addr *Address) (unix.Sockaddr, error)
	// Prepare runs any extra setup against the raw fd before Bind or
	// Connect (TCP's NO_DELAY, local-interface BindToDevice). fd is the
	// started (but not yet bound/connected) descriptor.
	Prepare(fd int, addr *Address) error
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Endpoint)
)

// Register installs e under e.Scheme(). Called once per process, from
// the init of tcp.go and ipc.go, per spec.md §4.5's "one factory
// per registered scheme".
func Register(e Endpoint) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[e.Scheme()]; ok {
		return ErrorSchemeAlreadyRegistered.Errorf(e.Scheme())
	}
	registry[e.Scheme()] = e
	return nil
}

// Lookup returns the Endpoint registered for scheme, if any.
func Lookup(scheme string) (Endpoint, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := registry[scheme]
	return e, ok
}

// Schemes returns every registered scheme name, used by
// core.Symbols() introspection.
func Schemes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]string, 0, len(registry))
	for s := range registry {
		out = append(out, s)
	}
	return out
}
