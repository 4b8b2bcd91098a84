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

	"github.com/nabbar/scalesock/stats"
)

// metrics is the process-wide collector Connector and Session report
// reconnect attempts and handshake failures into. core.Init installs
// it; nil before that (or in a package using transport standalone) is
// a silent no-op, same as every stats.Collector method on a nil
// receiver.
var (
	metricsMu sync.RWMutex
	metrics   *stats.Collector
)

// SetCollector installs the collector every Connector/Session reports
// into. core.Init calls this once per process.
func SetCollector(c *stats.Collector) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	metrics = c
}

func collector() *stats.Collector {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return metrics
}
