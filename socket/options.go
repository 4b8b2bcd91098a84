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

package socket

import "time"

// Level selects which option namespace SetOption/GetOption addresses,
// spec.md §4.9 "setsockopt/getsockopt over levels SOL_SOCKET,
// protocol-specific, and per-transport".
type Level int

const (
	SolSocket Level = iota
	SolProtocol
	SolTransport
)

// The fifteen SOL_SOCKET option names from spec.md §4.9's table.
const (
	OptLinger          = "LINGER"
	OptSndBuf          = "SNDBUF"
	OptRcvBuf          = "RCVBUF"
	OptSndTimeo        = "SNDTIMEO"
	OptRcvTimeo        = "RCVTIMEO"
	OptReconnectIvl    = "RECONNECT_IVL"
	OptReconnectIvlMax = "RECONNECT_IVL_MAX"
	OptSndPrio         = "SNDPRIO"
	OptRcvPrio         = "RCVPRIO"
	OptIPv4Only        = "IPV4ONLY"
	OptSndFD           = "SNDFD"
	OptRcvFD           = "RCVFD"
	OptDomain          = "DOMAIN"
	OptProtocol        = "PROTOCOL"
	OptRcvMaxSize      = "RCVMAXSIZE"
)

// solSocketOpts holds the generic option values every Socket carries,
// independent of its protocol instance or transport endpoints, per
// spec.md §4.9 "generic options stored in the socket struct".
type solSocketOpts struct {
	linger          time.Duration
	sndBuf          int64
	rcvBuf          int64
	sndTimeo        time.Duration
	rcvTimeo        time.Duration
	reconnectIvl    time.Duration
	reconnectIvlMax time.Duration
	sndPrio         int
	rcvPrio         int
	ipv4Only        bool
	rcvMaxSize      int64
}
