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

// Respondent implements the RESPONDENT pattern, spec.md §4.8: the
// survey-answering dual of Surveyor. Fair-queues incoming surveys,
// saves the survey backtrace (origin pipe plus survey id), and routes
// a reply back along it.
type Respondent struct {
	fq FairQueue

	surveyID uint32
	replyTo  *pipe.Pipe
	awaiting bool
}

// NewRespondent constructs a RESPONDENT instance.
func NewRespondent() *Respondent { return &Respondent{} }

func (s *Respondent) Type() ProtoID { return ProtoRespondent }

func (s *Respondent) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.fq.Add(p)
	return nil
}

func (s *Respondent) Rm(p *pipe.Pipe) {
	s.fq.Remove(p)
	if s.replyTo == p {
		s.replyTo = nil
		s.awaiting = false
	}
}

func (s *Respondent) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *Respondent) Out(p *pipe.Pipe) {}

func (s *Respondent) Recv() *message.Message {
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

		s.surveyID = binary.BigEndian.Uint32(hdr)
		s.replyTo = from
		s.awaiting = true
		return msg
	}
}

func (s *Respondent) Send(msg *message.Message) error {
	if !s.awaiting {
		return ErrorNoState.Error()
	}

	hdr := make([]byte, 4)
	binary.BigEndian.PutUint32(hdr, s.surveyID)
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

func (s *Respondent) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}

func (s *Respondent) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *Respondent) Events() EventMask {
	var m EventMask
	if s.fq.Ready() {
		m |= EventIn
	}
	if s.awaiting {
		m |= EventOut
	}
	return m
}

func (s *Respondent) Destroy() {}
