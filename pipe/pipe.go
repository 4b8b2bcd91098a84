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

// Package pipe implements the bidirectional message conduit between a
// socket's protocol instance and a single connected peer, spec.md
// §4.6. A Pipe sits directly on top of a stream.Framer (or, for
// inproc, a direct hand-off — see transport/inproc.go) and tracks
// independent can_send/can_recv readiness flags.
package pipe

import (
	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/message"
)

// Events raised by a Pipe to the protocol instance it is attached to.
const (
	// EvIn signals a message may now be received without blocking.
	EvIn aio.Event = aio.EvComponentBase + iota
	// EvOut signals a message may now be sent without blocking.
	EvOut
	// EvClosed signals the underlying connection ended; the protocol
	// must Rm the pipe.
	EvClosed
)

// Sender is the narrow interface a Pipe needs from its transport (a
// *stream.Framer, or the inproc direct hand-off peer).
type Sender interface {
	Send(msg *message.Message) error
}

// Pipe is one conduit between a protocol instance and one connected
// peer. Not safe for concurrent use outside the owning socket's
// Context lock, per the FSM serialization invariant.
type Pipe struct {
	fsm *aio.FSM

	transport Sender
	peerType  uint16

	canSend bool
	canRecv bool

	userData interface{}

	inbox []*message.Message
	outBusy bool
}

// New constructs a Pipe fronting transport, tagged with the peer's
// announced protocol id (used by the protocol's rejection path, see
// Compatibility in package protocol).
func New(ctx *aio.Context, name string, transport Sender, peerType uint16) *Pipe {
	p := &Pipe{transport: transport, peerType: peerType}
	p.fsm = aio.New(ctx, name, p.handle)
	return p
}

// FSM exposes the Pipe's state machine so the owning protocol can
// SetOwner/Start/Stop it.
func (p *Pipe) FSM() *aio.FSM {
	return p.fsm
}

// PeerType returns the peer's announced protocol id, consulted by
// protocol.Compatibility when a protocol decides whether to accept
// this pipe via Add.
func (p *Pipe) PeerType() uint16 {
	return p.peerType
}

// SetUserData attaches an opaque value the protocol wants to retrieve
// later (e.g. REP's backtrace bookkeeping keys pipes by identity, not
// by this field, but some protocols cache small scalars here).
func (p *Pipe) SetUserData(v interface{}) {
	p.userData = v
}

// UserData returns the value set by SetUserData, or nil.
func (p *Pipe) UserData() interface{} {
	return p.userData
}

// CanSend reports whether Send would currently succeed without
// queuing past the transport's own outstanding-send limit.
func (p *Pipe) CanSend() bool {
	return p.canSend
}

// CanRecv reports whether Recv currently has a message ready.
func (p *Pipe) CanRecv() bool {
	return p.canRecv
}

// Deliver is called by the owning transport session when a framed
// message arrives (stream.EvDeliver). It is not part of the protocol
// layer's API.
func (p *Pipe) Deliver(msg *message.Message) {
	p.inbox = append(p.inbox, msg)
	if !p.canRecv {
		p.canRecv = true
		p.fsm.Raise(EvIn, nil)
	}
}

// Recv pops the next ready message, or nil if none is queued.
func (p *Pipe) Recv() *message.Message {
	if len(p.inbox) == 0 {
		return nil
	}
	m := p.inbox[0]
	p.inbox = p.inbox[1:]
	if len(p.inbox) == 0 {
		p.canRecv = false
	}
	return m
}

// Send hands msg to the underlying transport. The caller (a protocol's
// load-balance/distribution primitive) must check CanSend first;
// Send returns an error if a send is already outstanding.
func (p *Pipe) Send(msg *message.Message) error {
	if p.outBusy {
		return ErrorSendBusy.Error()
	}
	if err := p.transport.Send(msg); err != nil {
		return err
	}
	p.outBusy = true
	p.canSend = false
	return nil
}

// MarkSendable is called by the owning transport session on
// stream.EvSent.
func (p *Pipe) MarkSendable() {
	p.outBusy = false
	if !p.canSend {
		p.canSend = true
		p.fsm.Raise(EvOut, nil)
	}
}

// MarkWritable is called once, right after the Pipe is attached, to
// seed the initial OUT readiness (a freshly attached pipe can accept
// one send immediately).
func (p *Pipe) MarkWritable() {
	if !p.canSend {
		p.canSend = true
		p.fsm.Raise(EvOut, nil)
	}
}

// Close marks the pipe as torn down; the owning protocol must stop
// routing through it.
func (p *Pipe) Close() {
	p.canSend = false
	p.canRecv = false
	p.fsm.Raise(EvClosed, nil)
}
