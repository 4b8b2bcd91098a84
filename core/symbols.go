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
	"sort"

	"github.com/nabbar/scalesock/protocol"
	"github.com/nabbar/scalesock/transport"
)

// Symbols is the supplemented introspection surface of spec.md §10:
// every registered transport scheme, every protocol id's symbolic
// name, and the fixed SOL_SOCKET option table, so a caller (or a
// future CLI) can enumerate what a build actually supports instead of
// hard-coding it.
type Symbols struct {
	Transports []string
	Protocols  map[string]uint16
	SockOpts   []SockOptSymbol
}

// SockOptSymbol names one SOL_SOCKET-level option and whether it is
// read-only, mirroring the table in spec.md §4.9. Duplicated here
// (rather than imported from package socket) to avoid a cyclic
// dependency: socket.Socket registers itself into this package's
// Table, so core must not import socket.
type SockOptSymbol struct {
	Name     string
	ReadOnly bool
}

var sockOptSymbols = []SockOptSymbol{
	{Name: "LINGER"},
	{Name: "SNDBUF"},
	{Name: "RCVBUF"},
	{Name: "SNDTIMEO"},
	{Name: "RCVTIMEO"},
	{Name: "RECONNECT_IVL"},
	{Name: "RECONNECT_IVL_MAX"},
	{Name: "SNDPRIO"},
	{Name: "RCVPRIO"},
	{Name: "IPV4ONLY"},
	{Name: "SNDFD", ReadOnly: true},
	{Name: "RCVFD", ReadOnly: true},
	{Name: "DOMAIN", ReadOnly: true},
	{Name: "PROTOCOL", ReadOnly: true},
	{Name: "RCVMAXSIZE"},
}

// GetSymbols reports every transport scheme and protocol id this build
// registers, plus the fixed SOL_SOCKET option table.
func GetSymbols() Symbols {
	protos := make(map[string]uint16, len(protocol.Names()))
	for id, name := range protocol.Names() {
		protos[name] = uint16(id)
	}

	schemes := transport.Schemes()
	sort.Strings(schemes)

	return Symbols{
		Transports: schemes,
		Protocols:  protos,
		SockOpts:   sockOptSymbols,
	}
}
