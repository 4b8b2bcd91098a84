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
	"golang.org/x/sys/unix"

	"github.com/nabbar/scalesock/usock"
)

// IPC is the ipc:// Endpoint, spec.md §4.5: a standard AF_UNIX stream
// socket whose bind path is unlinked before bind (handled by
// usock.Socket.Bind itself, per spec.md §4.3's "Unix-domain-specific").
type IPC struct{}

// NewIPC constructs an IPC Endpoint.
func NewIPC() *IPC { return &IPC{} }

func (i *IPC) Scheme() string { return "ipc" }

func (i *IPC) Family() int { return unix.AF_UNIX }

func (i *IPC) SockType() int { return unix.SOCK_STREAM }

func (i *IPC) ListenSockaddr(addr *Address) (unix.Sockaddr, error) {
	if addr.Rest == "" {
		return nil, ErrorAddressInvalid.Errorf(addr.Raw)
	}
	return usock.UnixSockaddr(addr.Rest), nil
}

func (i *IPC) DialSockaddr(addr *Address) (unix.Sockaddr, error) {
	return i.ListenSockaddr(addr)
}

// Prepare has nothing to do for IPC: no NO_DELAY-equivalent option,
// no local-interface binding.
func (i *IPC) Prepare(fd int, addr *Address) error { return nil }

func init() {
	_ = Register(NewIPC())
}
