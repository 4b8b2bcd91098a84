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

// Bus implements the BUS pattern, spec.md §4.8: every message sent by
// the application is broadcast to all other peers; receive is
// fair-queued across all peers.
//
// A raw relay forwarding a message it just received (e.g. to build a
// multi-hub bus topology via a device) should call Forward instead of
// Send so the originating pipe is excluded, matching nanomsg's
// "message origin in header, suppressed on echo" behaviour; Send
// itself has no receive-side context and always reaches every pipe.
type Bus struct {
	raw  bool
	dist Distribution
	fq   FairQueue
}

// NewBus constructs a cooked BUS instance.
func NewBus() *Bus { return &Bus{} }

// NewBusRaw constructs the raw variant, used by devices relaying
// between bus hubs.
func NewBusRaw() *Bus { return &Bus{raw: true} }

func (s *Bus) Type() ProtoID {
	if s.raw {
		return ProtoBusRaw
	}
	return ProtoBus
}

func (s *Bus) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.dist.Add(p)
	s.fq.Add(p)
	return nil
}

func (s *Bus) Rm(p *pipe.Pipe) {
	s.dist.Remove(p)
	s.fq.Remove(p)
}

func (s *Bus) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *Bus) Out(p *pipe.Pipe) {}

func (s *Bus) Send(msg *message.Message) error {
	s.dist.Send(msg)
	return nil
}

// Forward broadcasts msg to every pipe except origin, the echo path
// used when relaying a message this instance just received.
func (s *Bus) Forward(msg *message.Message, origin *pipe.Pipe) {
	sent := false
	for _, p := range s.dist.Pipes() {
		if p == origin || !p.CanSend() {
			continue
		}
		_ = p.Send(msg.Clone())
		sent = true
	}
	if !sent {
		_ = msg.Free()
		return
	}
	_ = msg.Free()
}

func (s *Bus) Recv() *message.Message {
	return s.fq.Recv()
}

func (s *Bus) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}

func (s *Bus) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *Bus) Events() EventMask {
	var m EventMask
	if s.fq.Ready() {
		m |= EventIn
	}
	if len(s.dist.Pipes()) > 0 {
		m |= EventOut
	}
	return m
}

func (s *Bus) Destroy() {}
