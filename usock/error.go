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

package usock

import "github.com/nabbar/scalesock/errors"

const (
	ErrorAlreadyStarted errors.CodeError = iota + errors.MinPkgUSock
	ErrorNotStarted
	ErrorOpInFlight
	ErrorNotListening
	ErrorNotConnected
	ErrorSyscall
)

func init() {
	errors.RegisterIdFctMessage(ErrorAlreadyStarted, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorAlreadyStarted:
		return "usock already started"
	case ErrorNotStarted:
		return "usock operation requires a started socket"
	case ErrorOpInFlight:
		return "usock already has an outstanding operation of this kind"
	case ErrorNotListening:
		return "usock is not in listening state"
	case ErrorNotConnected:
		return "usock is not connected"
	case ErrorSyscall:
		return "underlying OS socket call failed"
	}
	return ""
}
