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

import "github.com/nabbar/scalesock/errors"

// The façade's user-visible error taxonomy, spec.md §6. AGAIN and
// TERMINATED are the two codes every blocking Send/Recv can surface;
// the rest mirror option/URI/state misuse.
const (
	ErrorAgain errors.CodeError = iota + errors.MinPkgSocket
	ErrorTerminated
	ErrorBadFSM
	ErrorInvalid
	ErrorUnknownOption
	ErrorNoSuchEndpoint
	ErrorTooManyOpen
	ErrorTimeout
)

func init() {
	errors.RegisterIdFctMessage(ErrorAgain, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorAgain:
		return "operation would block"
	case ErrorTerminated:
		return "library is shutting down"
	case ErrorBadFSM:
		return "operation not legal in current protocol state"
	case ErrorInvalid:
		return "invalid argument"
	case ErrorUnknownOption:
		return "unknown or read-only option"
	case ErrorNoSuchEndpoint:
		return "no endpoint with this id on this socket"
	case ErrorTooManyOpen:
		return "socket table full"
	case ErrorTimeout:
		return "SNDTIMEO/RCVTIMEO elapsed before the operation completed"
	}
	return ""
}
