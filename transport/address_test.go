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

package transport_test

import (
	"strings"

	"github.com/nabbar/scalesock/transport"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseAddress", func() {
	It("splits scheme and remainder", func() {
		a, err := transport.ParseAddress("tcp://127.0.0.1:5555")
		Expect(err).ToNot(HaveOccurred())
		Expect(a.Scheme).To(Equal("tcp"))
		Expect(a.Rest).To(Equal("127.0.0.1:5555"))
	})

	It("rejects a missing scheme separator", func() {
		_, err := transport.ParseAddress("not-a-uri")
		Expect(err).To(HaveOccurred())
	})

	It("rejects an address at or beyond the 128-byte-including-NUL limit", func() {
		long := "tcp://" + strings.Repeat("a", 128)
		_, err := transport.ParseAddress(long)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("SplitInterface", func() {
	It("separates an iface;host:port remainder", func() {
		iface, hostport := transport.SplitInterface("eth0;127.0.0.1:5555")
		Expect(iface).To(Equal("eth0"))
		Expect(hostport).To(Equal("127.0.0.1:5555"))
	})

	It("returns no interface when none is present", func() {
		iface, hostport := transport.SplitInterface("127.0.0.1:5555")
		Expect(iface).To(BeEmpty())
		Expect(hostport).To(Equal("127.0.0.1:5555"))
	})
})
