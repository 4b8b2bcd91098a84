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

// Package config loads the library-wide defaults that seed core.Init
// and socket.Socket's per-socket option store: worker-pool sizing,
// socket table capacity, and the default SOL_SOCKET values spec.md
// §4.9 lists (LINGER, SNDTIMEO/RCVTIMEO, RECONNECT_IVL/_MAX,
// RCVMAXSIZE). A process that never calls Load gets Defaults().
package config

import "time"

// Options holds every process-wide and per-socket default. Per-socket
// values are only defaults: socket.Socket.SetOption overrides them
// per instance, as spec.md §4.9 describes for transport-specific
// options "settable on the socket as defaults inherited on
// bind/connect".
type Options struct {
	// WorkerCount is the aio.Pool size. Zero means runtime.NumCPU.
	WorkerCount int `mapstructure:"worker_count"`

	// SocketTableCapacity bounds core's global socket table, spec.md
	// §4.10 ("fixed capacity, default 512").
	SocketTableCapacity int `mapstructure:"socket_table_capacity"`

	// Linger is the default SOL_SOCKET LINGER value.
	Linger time.Duration `mapstructure:"linger"`

	// SndTimeout / RcvTimeout are the default SNDTIMEO/RCVTIMEO.
	// Negative means block forever.
	SndTimeout time.Duration `mapstructure:"snd_timeout"`
	RcvTimeout time.Duration `mapstructure:"rcv_timeout"`

	// ReconnectIvl / ReconnectIvlMax bound the connector backoff.
	ReconnectIvl    time.Duration `mapstructure:"reconnect_ivl"`
	ReconnectIvlMax time.Duration `mapstructure:"reconnect_ivl_max"`

	// RcvMaxSize is the default RCVMAXSIZE frame-size cap; <= 0 means
	// unlimited.
	RcvMaxSize int64 `mapstructure:"rcv_max_size"`

	// SndBuf / RcvBuf bound the per-socket outbound/inbound queue byte
	// budget, enforced via golang.org/x/sync/semaphore.Weighted by the
	// socket façade (spec.md §5).
	SndBuf int64 `mapstructure:"snd_buf"`
	RcvBuf int64 `mapstructure:"rcv_buf"`
}

// Defaults returns the library's built-in defaults, matching spec.md
// §4.9's documented defaults (LINGER 1000ms, RECONNECT_IVL unspecified
// upstream so nanomsg's own 100ms/"original_source/src/core/global.c"
// default is carried here) and §4.10's 512-socket table.
func Defaults() *Options {
	return &Options{
		WorkerCount:         0,
		SocketTableCapacity: 512,
		Linger:              1000 * time.Millisecond,
		SndTimeout:          -1,
		RcvTimeout:          -1,
		ReconnectIvl:        100 * time.Millisecond,
		ReconnectIvlMax:     0,
		RcvMaxSize:          1024 * 1024,
		SndBuf:              128 * 1024,
		RcvBuf:              128 * 1024,
	}
}
