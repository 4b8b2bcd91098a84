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

package protocol

import (
	"github.com/nabbar/scalesock/errors"
)

const (
	// ErrorNoPipe is returned by Send when no attached pipe is
	// currently ready to accept a message.
	ErrorNoPipe errors.CodeError = errors.MinPkgProtocol + iota
	// ErrorIncompatiblePeer is returned when Add rejects a pipe whose
	// negotiated peer protocol id is not in the local protocol's
	// Compatibility set.
	ErrorIncompatiblePeer
	// ErrorNoState is returned when an operation does not apply to the
	// protocol or its current state: REP/RESPONDENT Send with no
	// request awaiting a reply, Send on SUB or PULL, an option the
	// protocol does not support, or UNSUBSCRIBE of an unknown topic.
	// Mismatched REQ replies and SURVEYOR votes are discarded silently.
	ErrorNoState
	// ErrorStateBusy is not returned by any protocol in this package:
	// REQ.Send replaces an outstanding request instead of failing.
	ErrorStateBusy
	// ErrorUnknownProtocol is returned by New for a ProtoID outside the
	// twenty patterns this package implements.
	ErrorUnknownProtocol
)

func init() {
	errors.RegisterIdFctMessage(ErrorNoPipe, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorNoPipe:
		return "no pipe is currently ready to accept a message"
	case ErrorIncompatiblePeer:
		return "peer protocol is not compatible with the local socket type"
	case ErrorNoState:
		return "operation not valid in the protocol's current state"
	case ErrorStateBusy:
		return "a request is already outstanding"
	case ErrorUnknownProtocol:
		return "no such protocol id"
	}
	return ""
}
