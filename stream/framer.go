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

// Package stream implements the byte-stream framer sitting between a
// usock.Socket and a pipe: the 8-byte handshake preamble and the
// 8-byte-big-endian length-prefix message framing described in
// spec.md §4.4.
package stream

import (
	"encoding/binary"
	"time"

	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/usock"
)

// Preamble is the 8-byte handshake value sent and expected in each
// direction immediately after the transport connects, per spec.md §6:
// "\0SP\0" followed by four reserved zero bytes.
var Preamble = [8]byte{0x00, 0x53, 0x50, 0x00, 0x00, 0x00, 0x00, 0x00}

// HandshakeTimeout is the default deadline for the preamble exchange.
const HandshakeTimeout = 1000 * time.Millisecond

// Events raised by a Framer to its owner (a pipe or a transport
// session FSM).
const (
	// EvReady signals the handshake completed successfully; the owner
	// may now call Send and should expect EvDeliver as messages
	// arrive.
	EvReady aio.Event = aio.EvComponentBase + iota
	// EvDeliver carries a *message.Message completed on the inbound
	// side.
	EvDeliver
	// EvSent acknowledges a completed outbound Send.
	EvSent
	// EvError carries an error: bad preamble, oversize frame, or a
	// stream error/EOF mid-message. The owner tears the connection
	// down on receipt.
	EvError
)

type phase uint8

const (
	phaseHandshake phase = iota
	phaseEstablished
)

// Framer drives a usock.Socket through the preamble handshake and then
// the length-prefixed message loop. One Framer per connection; it is
// the sole owner of the wrapped Socket's FSM.
type Framer struct {
	fsm  *aio.FSM
	sock *usock.Socket

	maxRecv int64 // <= 0 means unlimited, matching RCVMAXSIZE's -1 sentinel

	ph phase

	hsLocalSent  bool
	hsRemoteRecv bool
	hsBuf        []byte
	hsTimer      *aio.Timer

	inLenBuf  []byte
	inBody    []byte
	inLen     uint64
	inReadLen bool

	outBusy bool
	outLen  [8]byte
	outMsg  *message.Message
}

// New wraps sock in a Framer. sock must already be active (post
// EvConnected / a freshly accepted child).
func New(ctx *aio.Context, name string, sock *usock.Socket, maxRecv int64) *Framer {
	f := &Framer{sock: sock, maxRecv: maxRecv, inReadLen: true}
	f.fsm = aio.New(ctx, name, f.handle)
	sock.FSM().SetOwner(f.fsm, 0)
	return f
}

// FSM exposes the Framer's state machine for the owning session to
// SetOwner/Start/Stop.
func (f *Framer) FSM() *aio.FSM {
	return f.fsm
}

func (f *Framer) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart:
		f.startHandshake()
		return
	case aio.EvStop:
		f.sock.FSM().Stop()
		f.fsm.Raise(aio.EvStopped, nil)
		return
	}

	switch event {
	case usock.EvSent:
		f.onSent()
		return
	case usock.EvReceived:
		f.onReceived(data.([]byte))
		return
	case usock.EvError:
		f.fail(data)
		return
	case usock.EvShutdown:
		f.fail(ErrorStreamClosed.Error())
		return
	case usock.EvConnected, usock.EvAccepted:
		// A session may reuse this Framer's sock owner slot for
		// transport-level notifications; Framer itself only cares
		// about Sent/Received/Error/Shutdown on an already-active
		// socket.
		return
	}

	if event == evHandshakeTimeout {
		f.fail(ErrorHandshakeTimeout.Error())
		return
	}

	f.fsm.Fatal("framer", event)
}

// evHandshakeTimeout is a private event code raised by the handshake
// timer to this Framer's own FSM.
const evHandshakeTimeout = aio.EvComponentBase + 100

func (f *Framer) startHandshake() {
	f.hsBuf = make([]byte, 8)
	_ = f.sock.Recv(f.hsBuf)
	_ = f.sock.Send([][]byte{append([]byte{}, Preamble[:]...)})

	f.hsTimer = f.fsm.Context().Worker().AddTimer(HandshakeTimeout, f.fsm, 0, evHandshakeTimeout)
}

func (f *Framer) onSent() {
	switch f.ph {
	case phaseHandshake:
		f.hsLocalSent = true
		f.maybeHandshakeDone()
	case phaseEstablished:
		f.outBusy = false
		if f.outMsg != nil {
			_ = f.outMsg.Free()
			f.outMsg = nil
		}
		f.fsm.Raise(EvSent, nil)
	}
}

func (f *Framer) onReceived(b []byte) {
	switch f.ph {
	case phaseHandshake:
		f.onHandshakeBytes(b)
	case phaseEstablished:
		f.onStreamBytes(b)
	}
}

func (f *Framer) onHandshakeBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		if b[i] != Preamble[i] {
			f.fail(ErrorBadPreamble.Error())
			return
		}
	}
	f.hsRemoteRecv = true
	f.maybeHandshakeDone()
}

func (f *Framer) maybeHandshakeDone() {
	if !f.hsLocalSent || !f.hsRemoteRecv {
		return
	}

	f.fsm.Context().Worker().CancelTimer(f.hsTimer)
	f.ph = phaseEstablished
	f.fsm.Raise(EvReady, nil)
	f.beginRecvLen()
}

func (f *Framer) beginRecvLen() {
	f.inReadLen = true
	f.inLenBuf = make([]byte, 8)
	_ = f.sock.Recv(f.inLenBuf)
}

func (f *Framer) onStreamBytes(b []byte) {
	if f.inReadLen {
		f.inLen = binary.BigEndian.Uint64(b)
		if f.maxRecv > 0 && int64(f.inLen) > f.maxRecv {
			f.fail(ErrorOversize.Error())
			return
		}

		f.inReadLen = false
		if f.inLen == 0 {
			f.deliver(nil)
			return
		}

		f.inBody = make([]byte, f.inLen)
		_ = f.sock.Recv(f.inBody)
		return
	}

	f.deliver(b)
}

func (f *Framer) deliver(body []byte) {
	msg := message.NewHeap(body)
	f.fsm.Raise(EvDeliver, msg)
	f.beginRecvLen()
}

// Send encodes msg as length + header + body and issues a single
// vectored write. The caller must wait for EvSent before calling Send
// again, per usock's at-most-one-outstanding-send invariant.
func (f *Framer) Send(msg *message.Message) error {
	if f.outBusy {
		return ErrorSendInFlight.Error()
	}

	header := msg.Header()
	body := msg.Body()
	binary.BigEndian.PutUint64(f.outLen[:], uint64(len(header)+len(body)))

	f.outBusy = true
	f.outMsg = msg
	return f.sock.Send([][]byte{append([]byte{}, f.outLen[:]...), header, body})
}

func (f *Framer) fail(data interface{}) {
	f.fsm.Raise(EvError, data)
}
