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
	"time"

	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
)

// DefaultSurveyDeadline is SURVEYOR's default survey deadline.
const DefaultSurveyDeadline = 1 * time.Second

const evSurveyDeadline aio.Event = aio.EvComponentBase + 201

// Surveyor implements the SURVEYOR pattern, spec.md §4.8: broadcasts a
// survey to every pipe, fair-queues incoming votes filtered by the
// current survey id, and discards anything arriving after the
// deadline timer fires.
type Surveyor struct {
	fsm  *aio.FSM
	dist Distribution
	fq   FairQueue

	deadline time.Duration
	timer    *aio.Timer

	surveyID uint32
	expired  bool
	active   bool
}

// NewSurveyor constructs a SURVEYOR instance rooted on ctx.
func NewSurveyor(ctx *aio.Context) *Surveyor {
	s := &Surveyor{deadline: DefaultSurveyDeadline}
	s.fsm = aio.New(ctx, "surveyor", s.handle)
	return s
}

func (s *Surveyor) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart, aio.EvStop:
		return
	case evSurveyDeadline:
		s.expired = true
		s.active = false
		return
	}
	s.fsm.Fatal("surveyor", event)
}

func (s *Surveyor) Type() ProtoID { return ProtoSurveyor }

func (s *Surveyor) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.dist.Add(p)
	s.fq.Add(p)
	return nil
}

func (s *Surveyor) Rm(p *pipe.Pipe) {
	s.dist.Remove(p)
	s.fq.Remove(p)
}

func (s *Surveyor) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *Surveyor) Out(p *pipe.Pipe) {}

// Send starts a new survey, cancelling any previous one still in
// flight, per spec.md "a new send starts a new survey and cancels the
// previous".
func (s *Surveyor) Send(msg *message.Message) error {
	if s.timer != nil {
		s.fsm.Context().Worker().CancelTimer(s.timer)
		s.timer = nil
	}

	s.surveyID = nextRequestID()
	hdr := make([]byte, 4)
	binary.BigEndian.PutUint32(hdr, s.surveyID)
	msg.PushHeader(hdr)

	s.active = true
	s.expired = false
	s.timer = s.fsm.Context().Worker().AddTimer(s.deadline, s.fsm, 0, evSurveyDeadline)

	s.dist.Send(msg)
	return nil
}

// Recv returns the next vote matching the current survey id, silently
// discarding late or mismatched votes; returns nil once the deadline
// has expired (the socket façade reports a nil Recv as ErrorAgain).
func (s *Surveyor) Recv() *message.Message {
	if s.expired {
		return nil
	}
	for {
		msg := s.fq.Recv()
		if msg == nil {
			return nil
		}

		hdr, err := msg.ShiftHeader(4)
		if err != nil {
			_ = msg.Free()
			continue
		}

		if binary.BigEndian.Uint32(hdr) != s.surveyID || !s.active {
			_ = msg.Free()
			continue
		}
		return msg
	}
}

func (s *Surveyor) SetOption(name string, value interface{}) error {
	if name == "SURVEYOR_DEADLINE" {
		if d, ok := value.(time.Duration); ok {
			s.deadline = d
			return nil
		}
	}
	return ErrorNoState.Error()
}

func (s *Surveyor) GetOption(name string) (interface{}, error) {
	if name == "SURVEYOR_DEADLINE" {
		return s.deadline, nil
	}
	return nil, ErrorNoState.Error()
}

func (s *Surveyor) Events() EventMask {
	var m EventMask
	if len(s.dist.Pipes()) > 0 {
		m |= EventOut
	}
	if s.active && !s.expired && s.fq.Ready() {
		m |= EventIn
	}
	return m
}

func (s *Surveyor) Destroy() {
	if s.timer != nil {
		s.fsm.Context().Worker().CancelTimer(s.timer)
		s.timer = nil
	}
}
