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

// ProtoID identifies a scalability-protocol instance, exchanged during
// the post-handshake compatibility check (see Compatibility) and
// reported by the socket façade's PROTOCOL option, per spec.md §4.9.
// Values are this implementation's own numbering; only relative
// pairing (raw vs cooked, peer compatibility) matters on the wire.
type ProtoID uint16

const (
	ProtoPair ProtoID = 16 + iota
	ProtoPairRaw
	ProtoPub
	ProtoPubRaw
	ProtoSub
	ProtoSubRaw
	ProtoReq
	ProtoReqRaw
	ProtoRep
	ProtoRepRaw
	ProtoPush
	ProtoPushRaw
	ProtoPull
	ProtoPullRaw
	ProtoSurveyor
	ProtoSurveyorRaw
	ProtoRespondent
	ProtoRespondentRaw
	ProtoBus
	ProtoBusRaw
)

// EventMask reports socket-level readiness, the bitmask returned by
// SockBase.Events and exposed through the façade's SNDFD/RCVFD.
type EventMask uint8

const (
	EventIn EventMask = 1 << iota
	EventOut
)

// SockBase is the interface every scalability protocol implements,
// mirroring spec.md §4.8's "add(pipe), rm(pipe), in(pipe), out(pipe),
// send(msg), recv(msg) -> msg, setopt, getopt, events(), destroy".
// The socket façade drives these calls from the socket's own worker,
// already serialized by the owning aio.Context — implementations need
// no internal locking.
type SockBase interface {
	// Type reports this instance's protocol id (for the raw variant,
	// the *Raw id).
	Type() ProtoID

	// Add attaches a newly-established pipe. Returns
	// ErrorIncompatiblePeer if p's peer protocol id is not accepted by
	// this protocol's Compatibility set.
	Add(p *pipe.Pipe) error
	// Rm detaches a pipe that is being torn down.
	Rm(p *pipe.Pipe)
	// In is called when p raises pipe.EvIn.
	In(p *pipe.Pipe)
	// Out is called when p raises pipe.EvOut.
	Out(p *pipe.Pipe)

	// Send enqueues or transmits msg per the protocol's outbound
	// policy. Returns ErrorNoPipe (or a protocol-specific error) if the
	// send cannot proceed right now; the façade turns that into AGAIN
	// or blocks the caller per SNDTIMEO.
	Send(msg *message.Message) error
	// Recv returns the next available message, or nil if none is
	// ready; the façade turns a nil into AGAIN or a blocking wait per
	// RCVTIMEO.
	Recv() *message.Message

	// SetOption applies a protocol-specific option (e.g. SUB's
	// SUBSCRIBE/UNSUBSCRIBE, REQ's RESEND_IVL, SURVEYOR's DEADLINE).
	SetOption(name string, value interface{}) error
	// GetOption reads a protocol-specific option.
	GetOption(name string) (interface{}, error)

	// Events reports the current socket-level readiness bitmask.
	Events() EventMask

	// Destroy releases any protocol-held state (timers, pending
	// backtraces); called once every pipe has been removed.
	Destroy()
}
