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

// Package transport implements the pipeline that sits between a
// socket's protocol instance and the byte-stream framer: URI parsing,
// a per-scheme factory registry, the generic listener ("binder") and
// connector state machines, and the post-handshake protocol-id
// exchange that turns a raw connection into a pipe.Pipe.
package transport

import "strings"

// MaxAddressLen is the largest address this library accepts, including
// the trailing NUL a C caller would need; spec.md §4.5/§6.
const MaxAddressLen = 128

// Address is a parsed scheme://rest endpoint.
type Address struct {
	Scheme string
	Rest   string
	Raw    string
}

// ParseAddress splits raw into its scheme and remainder, enforcing the
// 128-byte (including NUL) length limit.
func ParseAddress(raw string) (*Address, error) {
	if len(raw)+1 > MaxAddressLen {
		return nil, ErrorAddressInvalid.Errorf(raw)
	}

	i := strings.Index(raw, "://")
	if i <= 0 || i+3 >= len(raw) {
		return nil, ErrorAddressInvalid.Errorf(raw)
	}

	return &Address{
		Scheme: raw[:i],
		Rest:   raw[i+3:],
		Raw:    raw,
	}, nil
}

// SplitInterface splits a tcp "[iface;]host:port" remainder into its
// optional local-interface name and the "host:port" tail, per spec.md
// §4.5's local-interface binding syntax.
func SplitInterface(rest string) (iface, hostport string) {
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		return rest[:i], rest[i+1:]
	}
	return "", rest
}
