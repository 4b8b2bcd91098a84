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

// Pull implements the PULL pattern, spec.md §4.8: fair-queued receive,
// no send side.
type Pull struct {
	raw bool
	fq  FairQueue
}

// NewPull constructs a PULL instance.
func NewPull() *Pull { return &Pull{} }

// NewPullRaw constructs the raw variant, used inside devices.
func NewPullRaw() *Pull { return &Pull{raw: true} }

func (s *Pull) Type() ProtoID {
	if s.raw {
		return ProtoPullRaw
	}
	return ProtoPull
}

func (s *Pull) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.fq.Add(p)
	return nil
}

func (s *Pull) Rm(p *pipe.Pipe)  { s.fq.Remove(p) }
func (s *Pull) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *Pull) Out(p *pipe.Pipe) {}

func (s *Pull) Send(msg *message.Message) error {
	return ErrorNoState.Error()
}

func (s *Pull) Recv() *message.Message {
	return s.fq.Recv()
}

func (s *Pull) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}

func (s *Pull) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *Pull) Events() EventMask {
	if s.fq.Ready() {
		return EventIn
	}
	return 0
}

func (s *Pull) Destroy() {}
