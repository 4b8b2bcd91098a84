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
	"github.com/nabbar/scalesock/stats"
	"github.com/nabbar/scalesock/transport"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(g interface{ Write(*dto.Metric) error }) float64 {
	m := &dto.Metric{}
	_ = g.Write(m)
	return m.GetGauge().GetValue()
}

var _ = Describe("Collector wiring", func() {
	AfterEach(func() {
		transport.SetCollector(nil)
	})

	It("tolerates no collector ever being installed", func() {
		transport.SetCollector(nil)
		Expect(func() {
			transport.Schemes()
		}).ToNot(Panic())
	})

	It("accepts a real collector without disturbing the scheme registry", func() {
		c := stats.New()
		transport.SetCollector(c)

		c.SocketOpened()
		Expect(gaugeValue(c.SocketsOpen)).To(Equal(1.0))
		Expect(transport.Schemes()).To(ContainElement("tcp"))
	})
})
