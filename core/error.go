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

package core

import "github.com/nabbar/scalesock/errors"

const (
	// ErrorNotInitialized is returned by any core call made before Init
	// or after Term.
	ErrorNotInitialized errors.CodeError = iota + errors.MinPkgCore
	// ErrorAlreadyInitialized is returned by a second Init call without
	// an intervening Term.
	ErrorAlreadyInitialized
	// ErrorTooManyOpen is returned by the socket table when its fixed
	// capacity (spec.md §4.10, default 512) is exhausted.
	ErrorTooManyOpen
	// ErrorBadHandle is returned for a socket id outside the table's
	// range, or one whose slot is currently free.
	ErrorBadHandle
)

func init() {
	errors.RegisterIdFctMessage(ErrorNotInitialized, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorNotInitialized:
		return "core library not initialized"
	case ErrorAlreadyInitialized:
		return "core library already initialized"
	case ErrorTooManyOpen:
		return "socket table is full"
	case ErrorBadHandle:
		return "no socket with this id"
	}
	return ""
}
