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

// Pub implements the PUB pattern, spec.md §4.8: broadcast on send, no
// receive side at all (a pipe offered to PUB never needs to raise IN;
// PUB simply ignores it if it does).
type Pub struct {
	dist Distribution
}

// NewPub constructs a PUB instance.
func NewPub() *Pub { return &Pub{} }

func (s *Pub) Type() ProtoID { return ProtoPub }

func (s *Pub) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.dist.Add(p)
	return nil
}

func (s *Pub) Rm(p *pipe.Pipe) { s.dist.Remove(p) }
func (s *Pub) In(p *pipe.Pipe) {}
func (s *Pub) Out(p *pipe.Pipe) {}

func (s *Pub) Send(msg *message.Message) error {
	s.dist.Send(msg)
	return nil
}

func (s *Pub) Recv() *message.Message { return nil }

func (s *Pub) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}

func (s *Pub) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *Pub) Events() EventMask {
	if len(s.dist.Pipes()) > 0 {
		return EventOut
	}
	return 0
}

func (s *Pub) Destroy() {}
