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

// SUB option names, passed to SetOption.
const (
	OptSubscribe   = "SUBSCRIBE"
	OptUnsubscribe = "UNSUBSCRIBE"
)

// Sub implements the SUB pattern, spec.md §4.8: no send side,
// fair-queued receive filtered through a subscription trie.
type Sub struct {
	raw  bool
	fq   FairQueue
	subs SubTrie
}

// NewSub constructs a cooked SUB instance with no active
// subscriptions (matches nothing until Subscribe("") or a prefix is
// added).
func NewSub() *Sub { return &Sub{subs: *NewSubTrie()} }

// NewSubRaw constructs the raw variant, which does not filter by
// subscription at all — every message fair-queues through.
func NewSubRaw() *Sub { return &Sub{raw: true, subs: *NewSubTrie()} }

func (s *Sub) Type() ProtoID {
	if s.raw {
		return ProtoSubRaw
	}
	return ProtoSub
}

func (s *Sub) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.fq.Add(p)
	return nil
}

func (s *Sub) Rm(p *pipe.Pipe) { s.fq.Remove(p) }
func (s *Sub) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *Sub) Out(p *pipe.Pipe) {}

func (s *Sub) Send(msg *message.Message) error {
	return ErrorNoState.Error()
}

// Recv returns the next message whose body matches an active
// subscription (or any message, for the raw variant). A cooked SUB
// with no active subscriptions drops every message — matching
// nanomsg's "no subscription means nothing matches".
func (s *Sub) Recv() *message.Message {
	for {
		m := s.fq.Recv()
		if m == nil {
			return nil
		}
		if s.raw || s.subs.Matches(m.Body()) {
			return m
		}
		_ = m.Free()
	}
}

func (s *Sub) SetOption(name string, value interface{}) error {
	topic, _ := value.([]byte)
	switch name {
	case OptSubscribe:
		s.subs.Subscribe(topic)
		return nil
	case OptUnsubscribe:
		if !s.subs.Unsubscribe(topic) {
			return ErrorNoState.Error()
		}
		return nil
	}
	return ErrorNoState.Error()
}

func (s *Sub) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *Sub) Events() EventMask {
	if s.fq.Ready() {
		return EventIn
	}
	return 0
}

func (s *Sub) Destroy() {}
