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

package transport

import (
	"encoding/binary"

	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
	"github.com/nabbar/scalesock/protocol"
	"github.com/nabbar/scalesock/stream"
	"github.com/nabbar/scalesock/usock"
)

// Events a Session raises to its owner (a Listener or a Connector).
const (
	// EvPipeUp carries the *pipe.Pipe once the protocol-id exchange
	// completes; the owner hands it to the socket's protocol instance
	// via SockBase.Add.
	EvPipeUp aio.Event = aio.EvComponentBase + iota
	// EvPipeDown signals the connection ended (handshake failure,
	// stream error, or peer shutdown); the owner must Rm the pipe
	// (if EvPipeUp already fired) and tear the Session down.
	EvPipeDown
)

// Session drives one connection from a freshly active usock.Socket
// through the stream handshake, a one-message protocol-id exchange,
// and then forwards framed messages to the resulting pipe.Pipe.
// spec.md's wire preamble (§6) carries no protocol-id field of its
// own, so the exchange happens as the first application message once
// the framer signals EvReady — symmetric for both the accepting and
// the connecting side.
type Session struct {
	fsm    *aio.FSM
	framer *stream.Framer
	pipe   *pipe.Pipe

	localID protocol.ProtoID
	up      bool
}

// NewSession wraps sock (already active: post EvConnected, or a
// freshly accepted child) in a Framer and a Session FSM. localID is
// announced to the peer once the handshake completes.
func NewSession(ctx *aio.Context, name string, sock *usock.Socket, localID protocol.ProtoID, maxRecv int64) *Session {
	s := &Session{localID: localID}
	s.framer = stream.New(ctx, name+"-framer", sock, maxRecv)
	s.fsm = aio.New(ctx, name, s.handle)
	s.framer.FSM().SetOwner(s.fsm, 0)
	return s
}

// FSM exposes the Session's state machine for the owning Listener or
// Connector to SetOwner/Start/Stop.
func (s *Session) FSM() *aio.FSM {
	return s.fsm
}

// Pipe returns the constructed pipe once EvPipeUp has fired, or nil
// beforehand.
func (s *Session) Pipe() *pipe.Pipe {
	return s.pipe
}

func (s *Session) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart:
		s.framer.FSM().Start()
		return
	case aio.EvStop:
		s.framer.FSM().Stop()
		s.fsm.Raise(aio.EvStopped, nil)
		return
	}

	switch event {
	case stream.EvReady:
		s.onFramerReady()
		return
	case stream.EvDeliver:
		s.onDeliver(data.(*message.Message))
		return
	case stream.EvSent:
		if s.pipe != nil {
			s.pipe.MarkSendable()
		}
		return
	case stream.EvError:
		s.onTornDown()
		return
	}

	s.fsm.Fatal("session", event)
}

func (s *Session) onFramerReady() {
	_ = s.framer.Send(message.NewHeap(encodeProtoID(s.localID)))
}

func (s *Session) onDeliver(msg *message.Message) {
	if s.pipe == nil {
		body := msg.Body()
		_ = msg.Free()

		if len(body) != 2 {
			s.onTornDown()
			return
		}

		peerID := decodeProtoID(body)
		s.pipe = pipe.New(s.fsm.Context(), s.fsm.Name()+"-pipe", s, uint16(peerID))
		s.pipe.MarkWritable()
		s.up = true
		s.fsm.Raise(EvPipeUp, s.pipe)
		return
	}

	s.pipe.Deliver(msg)
}

// Send implements pipe.Sender, forwarding the pipe's outbound
// messages to the underlying Framer.
func (s *Session) Send(msg *message.Message) error {
	return s.framer.Send(msg)
}

func (s *Session) onTornDown() {
	if s.pipe != nil {
		s.pipe.Close()
	} else {
		collector().HandshakeFailure()
	}
	s.up = false
	s.fsm.Raise(EvPipeDown, nil)
}

func encodeProtoID(id protocol.ProtoID) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(id))
	return b
}

func decodeProtoID(b []byte) protocol.ProtoID {
	return protocol.ProtoID(binary.BigEndian.Uint16(b))
}
