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

// RawReq is the AF_SP_RAW variant of REQ, spec.md §4.8 "Raw variants":
// it neither strips nor synthesises the request-id header and keeps no
// per-request state, so a device can relay REQ traffic through it
// without interpreting the header it carries.
type RawReq struct {
	lb LoadBalance
	fq FairQueue
}

// NewRawReq constructs a raw REQ instance.
func NewRawReq() *RawReq { return &RawReq{} }

func (s *RawReq) Type() ProtoID { return ProtoReqRaw }

func (s *RawReq) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.fq.Add(p)
	return nil
}

func (s *RawReq) Rm(p *pipe.Pipe) {
	s.lb.Remove(p)
	s.fq.Remove(p)
}

func (s *RawReq) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *RawReq) Out(p *pipe.Pipe) { s.lb.MarkReady(p) }

func (s *RawReq) Send(msg *message.Message) error { return s.lb.Send(msg) }
func (s *RawReq) Recv() *message.Message           { return s.fq.Recv() }

func (s *RawReq) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}
func (s *RawReq) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *RawReq) Events() EventMask {
	var m EventMask
	if s.lb.Ready() {
		m |= EventOut
	}
	if s.fq.Ready() {
		m |= EventIn
	}
	return m
}

func (s *RawReq) Destroy() {}

// RawRep is the AF_SP_RAW variant of REP: fair-queued receive,
// load-balanced send, no backtrace bookkeeping — the header a device
// built from several hops of raw REQ/REP passes through untouched.
type RawRep struct {
	lb LoadBalance
	fq FairQueue
}

// NewRawRep constructs a raw REP instance.
func NewRawRep() *RawRep { return &RawRep{} }

func (s *RawRep) Type() ProtoID { return ProtoRepRaw }

func (s *RawRep) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.fq.Add(p)
	return nil
}

func (s *RawRep) Rm(p *pipe.Pipe) {
	s.lb.Remove(p)
	s.fq.Remove(p)
}

func (s *RawRep) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *RawRep) Out(p *pipe.Pipe) { s.lb.MarkReady(p) }

func (s *RawRep) Send(msg *message.Message) error { return s.lb.Send(msg) }
func (s *RawRep) Recv() *message.Message           { return s.fq.Recv() }

func (s *RawRep) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}
func (s *RawRep) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *RawRep) Events() EventMask {
	var m EventMask
	if s.lb.Ready() {
		m |= EventOut
	}
	if s.fq.Ready() {
		m |= EventIn
	}
	return m
}

func (s *RawRep) Destroy() {}

// RawPub is the AF_SP_RAW variant of PUB. Cooked PUB already carries no
// protocol header of its own to strip or synthesise, so RawPub's
// behaviour is identical to Pub's — it exists only so a raw-PUB socket
// can be opened at all and paired with RawSub inside a Device, per
// spec.md §4.8 "Raw variants".
type RawPub struct {
	dist Distribution
}

// NewRawPub constructs a raw PUB instance.
func NewRawPub() *RawPub { return &RawPub{} }

func (s *RawPub) Type() ProtoID { return ProtoPubRaw }

func (s *RawPub) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.dist.Add(p)
	return nil
}

func (s *RawPub) Rm(p *pipe.Pipe)  { s.dist.Remove(p) }
func (s *RawPub) In(p *pipe.Pipe)  {}
func (s *RawPub) Out(p *pipe.Pipe) {}

func (s *RawPub) Send(msg *message.Message) error {
	s.dist.Send(msg)
	return nil
}

func (s *RawPub) Recv() *message.Message { return nil }

func (s *RawPub) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}
func (s *RawPub) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *RawPub) Events() EventMask {
	if len(s.dist.Pipes()) > 0 {
		return EventOut
	}
	return 0
}

func (s *RawPub) Destroy() {}

// RawSurveyor is the AF_SP_RAW variant of SURVEYOR: broadcast send,
// fair-queued receive, no survey-id filtering or deadline timer.
type RawSurveyor struct {
	dist Distribution
	fq   FairQueue
}

// NewRawSurveyor constructs a raw SURVEYOR instance.
func NewRawSurveyor() *RawSurveyor { return &RawSurveyor{} }

func (s *RawSurveyor) Type() ProtoID { return ProtoSurveyorRaw }

func (s *RawSurveyor) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.dist.Add(p)
	s.fq.Add(p)
	return nil
}

func (s *RawSurveyor) Rm(p *pipe.Pipe) {
	s.dist.Remove(p)
	s.fq.Remove(p)
}

func (s *RawSurveyor) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *RawSurveyor) Out(p *pipe.Pipe) {}

func (s *RawSurveyor) Send(msg *message.Message) error {
	s.dist.Send(msg)
	return nil
}
func (s *RawSurveyor) Recv() *message.Message { return s.fq.Recv() }

func (s *RawSurveyor) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}
func (s *RawSurveyor) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *RawSurveyor) Events() EventMask {
	var m EventMask
	if len(s.dist.Pipes()) > 0 {
		m |= EventOut
	}
	if s.fq.Ready() {
		m |= EventIn
	}
	return m
}

func (s *RawSurveyor) Destroy() {}

// RawRespondent is the AF_SP_RAW variant of RESPONDENT: fair-queued
// receive, load-balanced send, no backtrace bookkeeping.
type RawRespondent struct {
	lb LoadBalance
	fq FairQueue
}

// NewRawRespondent constructs a raw RESPONDENT instance.
func NewRawRespondent() *RawRespondent { return &RawRespondent{} }

func (s *RawRespondent) Type() ProtoID { return ProtoRespondentRaw }

func (s *RawRespondent) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.fq.Add(p)
	return nil
}

func (s *RawRespondent) Rm(p *pipe.Pipe) {
	s.lb.Remove(p)
	s.fq.Remove(p)
}

func (s *RawRespondent) In(p *pipe.Pipe)  { s.fq.MarkReady(p) }
func (s *RawRespondent) Out(p *pipe.Pipe) { s.lb.MarkReady(p) }

func (s *RawRespondent) Send(msg *message.Message) error { return s.lb.Send(msg) }
func (s *RawRespondent) Recv() *message.Message           { return s.fq.Recv() }

func (s *RawRespondent) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}
func (s *RawRespondent) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *RawRespondent) Events() EventMask {
	var m EventMask
	if s.lb.Ready() {
		m |= EventOut
	}
	if s.fq.Ready() {
		m |= EventIn
	}
	return m
}

func (s *RawRespondent) Destroy() {}
