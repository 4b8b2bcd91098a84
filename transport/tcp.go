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
	"net"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/nabbar/scalesock/usock"
)

// TCP is the tcp:// Endpoint, spec.md §4.5: IPv4 and IPv6, an optional
// local interface prefix ("iface;host:port"), and the NO_DELAY option.
type TCP struct {
	NoDelay  bool
	IPv4Only bool
}

// NewTCP constructs a TCP Endpoint with NO_DELAY off, matching spec.md
// §4.5's documented default.
func NewTCP() *TCP {
	return &TCP{}
}

func (t *TCP) Scheme() string { return "tcp" }

func (t *TCP) Family() int {
	if t.IPv4Only {
		return unix.AF_INET
	}
	return unix.AF_INET6
}

func (t *TCP) SockType() int { return unix.SOCK_STREAM }

func (t *TCP) ListenSockaddr(addr *Address) (unix.Sockaddr, error) {
	_, hostport := SplitInterface(addr.Rest)
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return nil, ErrorAddressInvalid.Errorf(addr.Raw)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, ErrorAddressInvalid.Errorf(addr.Raw)
	}

	ip := net.IPv6zero
	if host != "" && host != "*" {
		ip = net.ParseIP(host)
		if ip == nil {
			resolved, err := net.ResolveIPAddr("ip", host)
			if err != nil {
				return nil, ErrorAddressInvalid.Errorf(addr.Raw)
			}
			ip = resolved.IP
		}
	}

	return usock.TCPSockaddr(ip, port), nil
}

func (t *TCP) DialSockaddr(addr *Address) (unix.Sockaddr, error) {
	_, hostport := SplitInterface(addr.Rest)
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return nil, ErrorAddressInvalid.Errorf(addr.Raw)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, ErrorAddressInvalid.Errorf(addr.Raw)
	}

	ip := net.ParseIP(host)
	if ip == nil {
		resolved, err := net.ResolveIPAddr("ip", host)
		if err != nil {
			return nil, ErrorAddressInvalid.Errorf(addr.Raw)
		}
		ip = resolved.IP
	}

	return usock.TCPSockaddr(ip, port), nil
}

// Prepare applies NO_DELAY and, when the address carries an
// "iface;host:port" prefix, binds the socket to that local interface
// via SO_BINDTODEVICE before connect/listen.
func (t *TCP) Prepare(fd int, addr *Address) error {
	if t.NoDelay {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); err != nil {
			return ErrorAddressInvalid.Errorf(addr.Raw)
		}
	}

	iface, _ := SplitInterface(addr.Rest)
	if iface != "" {
		if err := unix.BindToDevice(fd, iface); err != nil {
			return ErrorAddressInvalid.Errorf(addr.Raw)
		}
	}

	return nil
}

func init() {
	_ = Register(NewTCP())
}
