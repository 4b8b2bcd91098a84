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
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
)

// Pair implements the PAIR pattern, spec.md §4.8: exactly one peer
// pipe, both directions pass straight through.
type Pair struct {
	raw bool
	p   *pipe.Pipe
}

// NewPair constructs a cooked PAIR instance.
func NewPair() *Pair { return &Pair{} }

// NewPairRaw constructs the AF_SP_RAW variant, used inside devices.
func NewPairRaw() *Pair { return &Pair{raw: true} }

func (s *Pair) Type() ProtoID {
	if s.raw {
		return ProtoPairRaw
	}
	return ProtoPair
}

func (s *Pair) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	if s.p != nil {
		return ErrorIncompatiblePeer.Error()
	}
	s.p = p
	return nil
}

func (s *Pair) Rm(p *pipe.Pipe) {
	if s.p == p {
		s.p = nil
	}
}

func (s *Pair) In(p *pipe.Pipe)  {}
func (s *Pair) Out(p *pipe.Pipe) {}

func (s *Pair) Send(msg *message.Message) error {
	if s.p == nil || !s.p.CanSend() {
		return ErrorNoPipe.Error()
	}
	return s.p.Send(msg)
}

func (s *Pair) Recv() *message.Message {
	if s.p == nil {
		return nil
	}
	return s.p.Recv()
}

func (s *Pair) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}

func (s *Pair) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *Pair) Events() EventMask {
	var m EventMask
	if s.p == nil {
		return 0
	}
	if s.p.CanRecv() {
		m |= EventIn
	}
	if s.p.CanSend() {
		m |= EventOut
	}
	return m
}

func (s *Pair) Destroy() { s.p = nil }
