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

	"github.com/google/uuid"

	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
)

// nextRequestID derives a 31-bit request id from a fresh uuid, leaving
// the high bit for REQ/REP's reply flag, per spec.md §4.8 "Request/
// reply details". A collision within one outstanding request is
// astronomically unlikely and, unlike a simple counter, does not leak
// information about how many requests a REQ socket has ever sent.
func nextRequestID() uint32 {
	u := uuid.New()
	return binary.BigEndian.Uint32(u[:4]) & 0x7fffffff
}

// replyBit marks a REQ/REP header id as a reply rather than a request,
// per spec.md §4.8 "Request/reply details".
const replyBit uint32 = 1 << 31

// DefaultResendInterval is REQ's default resend_ivl.
const DefaultResendInterval = 60 * time.Second

const evResend aio.Event = aio.EvComponentBase + 200

// Req implements the REQ pattern, spec.md §4.8: load-balanced send
// that stamps a 32-bit request id, matches replies by id, and resends
// the outstanding request when resend_ivl elapses.
type Req struct {
	fsm *aio.FSM
	lb  LoadBalance
	fq  FairQueue

	resendIvl time.Duration
	timer     *aio.Timer

	pending    bool
	pendingID  uint32
	pendingMsg *message.Message
}

// NewReq constructs a REQ instance rooted on ctx (needed for its
// resend timer); ctx is typically the owning socket's Context.
func NewReq(ctx *aio.Context) *Req {
	r := &Req{resendIvl: DefaultResendInterval}
	r.fsm = aio.New(ctx, "req", r.handle)
	return r
}

func (s *Req) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart, aio.EvStop:
		return
	case evResend:
		s.onResend()
		return
	}
	s.fsm.Fatal("req", event)
}

func (s *Req) Type() ProtoID { return ProtoReq }

func (s *Req) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.fq.Add(p)
	return nil
}

func (s *Req) Rm(p *pipe.Pipe) {
	s.lb.Remove(p)
	s.fq.Remove(p)
}
func (s *Req) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *Req) Out(p *pipe.Pipe) { s.lb.MarkReady(p) }

// Send starts a new request, replacing any currently outstanding one
// (permitted per spec.md: "send on REQ while waiting for a reply is
// permitted and replaces the outstanding request").
func (s *Req) Send(msg *message.Message) error {
	if s.pending {
		s.cancelTimer()
		if s.pendingMsg != nil {
			_ = s.pendingMsg.Free()
		}
	}

	id := nextRequestID()

	hdr := make([]byte, 4)
	binary.BigEndian.PutUint32(hdr, id)
	msg.PushHeader(hdr)

	s.pending = true
	s.pendingID = id
	s.pendingMsg = msg.Clone()

	s.armTimer()
	return s.lb.Send(msg)
}

func (s *Req) armTimer() {
	s.timer = s.fsm.Context().Worker().AddTimer(s.resendIvl, s.fsm, 0, evResend)
}

func (s *Req) cancelTimer() {
	if s.timer != nil {
		s.fsm.Context().Worker().CancelTimer(s.timer)
		s.timer = nil
	}
}

func (s *Req) onResend() {
	if !s.pending || s.pendingMsg == nil {
		return
	}
	_ = s.lb.Send(s.pendingMsg.Clone())
	s.armTimer()
}

// Recv drains fair-queued replies, discarding any whose id does not
// match the outstanding request, and returns the first that matches
// (or nil if none of the currently queued replies match).
func (s *Req) Recv() *message.Message {
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

		id := binary.BigEndian.Uint32(hdr) &^ replyBit
		if !s.pending || id != s.pendingID {
			_ = msg.Free()
			continue
		}

		s.pending = false
		s.cancelTimer()
		if s.pendingMsg != nil {
			_ = s.pendingMsg.Free()
			s.pendingMsg = nil
		}
		return msg
	}
}

func (s *Req) SetOption(name string, value interface{}) error {
	if name == "RESEND_IVL" {
		if d, ok := value.(time.Duration); ok {
			s.resendIvl = d
			return nil
		}
	}
	return ErrorNoState.Error()
}

func (s *Req) GetOption(name string) (interface{}, error) {
	if name == "RESEND_IVL" {
		return s.resendIvl, nil
	}
	return nil, ErrorNoState.Error()
}

func (s *Req) Events() EventMask {
	var m EventMask
	if !s.pending && s.lb.Ready() {
		m |= EventOut
	}
	if s.pending && s.fq.Ready() {
		m |= EventIn
	}
	return m
}

func (s *Req) Destroy() {
	s.cancelTimer()
	if s.pendingMsg != nil {
		_ = s.pendingMsg.Free()
		s.pendingMsg = nil
	}
}
