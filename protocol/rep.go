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
	"encoding/binary"

	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
)

// Rep implements the REP pattern, spec.md §4.8: fair-queued receive
// that records the request's 4-byte request id and the pipe it came
// in on, and replies to that pipe with the id. Only that one 4-byte
// word is read; no stack of intermediary pipe ids is recorded or
// unwound, so a reply goes back over the single pipe the request
// arrived on.
type Rep struct {
	fq FairQueue

	backtraceID uint32
	replyTo     *pipe.Pipe
	awaiting    bool
}

// NewRep constructs a REP instance.
func NewRep() *Rep { return &Rep{} }

func (s *Rep) Type() ProtoID { return ProtoRep }

func (s *Rep) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.fq.Add(p)
	return nil
}

func (s *Rep) Rm(p *pipe.Pipe) {
	s.fq.Remove(p)
	if s.replyTo == p {
		s.replyTo = nil
		s.awaiting = false
	}
}

func (s *Rep) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *Rep) Out(p *pipe.Pipe) {}

// Recv pops the next request, saves its originating pipe and request
// id as the pending backtrace, and strips the request-id header
// before handing the body to the caller.
func (s *Rep) Recv() *message.Message {
	for {
		msg, from := s.fq.RecvFrom()
		if msg == nil {
			return nil
		}

		hdr, err := msg.ShiftHeader(4)
		if err != nil {
			_ = msg.Free()
			continue
		}

		s.backtraceID = binary.BigEndian.Uint32(hdr)
		s.replyTo = from
		s.awaiting = true
		return msg
	}
}

// Send replies to the most recently received request, restoring the
// reply bit on the request id and routing to the saved backtrace
// pipe. Returns ErrorNoState if no request is currently awaiting a
// reply.
func (s *Rep) Send(msg *message.Message) error {
	if !s.awaiting {
		return ErrorNoState.Error()
	}

	hdr := make([]byte, 4)
	binary.BigEndian.PutUint32(hdr, s.backtraceID|replyBit)
	msg.PushHeader(hdr)

	s.awaiting = false
	p := s.replyTo
	s.replyTo = nil

	if p == nil || !p.CanSend() {
		_ = msg.Free()
		return ErrorNoPipe.Error()
	}
	return p.Send(msg)
}

func (s *Rep) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}

func (s *Rep) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *Rep) Events() EventMask {
	var m EventMask
	if s.fq.Ready() {
		m |= EventIn
	}
	if s.awaiting {
		m |= EventOut
	}
	return m
}

func (s *Rep) Destroy() {}
