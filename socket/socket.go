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

// Package socket is the user-facing façade of spec.md §4.9: Open,
// Bind/Connect, Send/Recv and their message-level counterparts,
// SetOption/GetOption, and the zombie-socket close sequence. Every
// public function takes the integer handle Open returns, mirroring
// the original implementation's C-style socket table API, and funnels
// the actual work through the socket's own root FSM via aio.Context's
// Dispatch so every field access happens under the owning Context's
// single mutex, per the library's serialization invariant.
package socket

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/core"
	"github.com/nabbar/scalesock/errors"
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
	"github.com/nabbar/scalesock/protocol"
	"github.com/nabbar/scalesock/transport"
)

// Flags for Send/Recv.
const (
	// DontWait requests non-blocking behavior regardless of SNDTIMEO/
	// RCVTIMEO: returns ErrorAgain immediately instead of waiting.
	DontWait = 1 << iota
)

const evLingerExpire = aio.EvComponentBase + 1000

// control events dispatched to a Socket's own root FSM, funneling
// every public call through the Context's single mutex.
const (
	evCtlBind aio.Event = aio.EvComponentBase + 2000 + iota
	evCtlConnect
	evCtlShutdown
	evCtlSend
	evCtlRecv
	evCtlSetOpt
	evCtlGetOpt
	evCtlClose
	evCtlZombify
)

type bindReq struct {
	addr string
	id   int
	err  error
}

type connectReq struct {
	addr string
	id   int
	err  error
}

type shutdownReq struct {
	epID int
	err  error
}

type sendReq struct {
	msg *message.Message
	err error
}

type recvReq struct {
	msg *message.Message
	err error
}

type optReq struct {
	level Level
	name  string
	value interface{}
	err   error
}

type closeReq struct {
	err error
}

// Socket is one open scalability-protocol endpoint: a protocol
// instance, the set of transport endpoints bound or connected to it,
// and the pipes those endpoints have established.
type Socket struct {
	id      int
	core    *core.Core
	ctx     *aio.Context
	fsm     *aio.FSM
	proto   protocol.SockBase
	protoID protocol.ProtoID

	opts   solSocketOpts
	sndSem *semaphore.Weighted
	rcvSem *semaphore.Weighted

	sndNotify *notifyFD
	rcvNotify *notifyFD

	endpoints map[int]*Endpoint
	pipes     map[int]*pipe.Pipe
	tagSeq    int

	zombie      bool
	lingerTimer *aio.Timer

	waitMu sync.Mutex
	outCh  chan struct{}
	inCh   chan struct{}
}

// Open allocates a socket table slot for a fresh instance of protoID,
// pinned to the next worker in the process-wide pool, per spec.md
// §4.10's "create" step. Returns ErrorTooManyOpen once the table is
// full.
func Open(protoID protocol.ProtoID) (int, error) {
	c := core.Get()
	if c == nil {
		return 0, core.ErrorNotInitialized.Error()
	}

	ctx := aio.NewContext(c.Pool().Pin())
	proto, err := protocol.New(ctx, protoID)
	if err != nil {
		return 0, err
	}

	opts := c.Options()
	s := &Socket{
		core:      c,
		ctx:       ctx,
		proto:     proto,
		protoID:   protoID,
		endpoints: make(map[int]*Endpoint),
		pipes:     make(map[int]*pipe.Pipe),
		outCh:     make(chan struct{}),
		inCh:      make(chan struct{}),
		opts: solSocketOpts{
			linger:          opts.Linger,
			sndBuf:          opts.SndBuf,
			rcvBuf:          opts.RcvBuf,
			sndTimeo:        opts.SndTimeout,
			rcvTimeo:        opts.RcvTimeout,
			reconnectIvl:    opts.ReconnectIvl,
			reconnectIvlMax: opts.ReconnectIvlMax,
			rcvMaxSize:      opts.RcvMaxSize,
		},
	}
	s.fsm = aio.New(ctx, fmt.Sprintf("socket-%s", protocol.Name(protoID)), s.handle)
	s.sndSem = semaphore.NewWeighted(sembound(s.opts.sndBuf))
	s.rcvSem = semaphore.NewWeighted(sembound(s.opts.rcvBuf))

	var nerr error
	if s.sndNotify, nerr = newNotifyFD(); nerr != nil {
		return 0, nerr
	}
	if s.rcvNotify, nerr = newNotifyFD(); nerr != nil {
		s.sndNotify.close()
		return 0, nerr
	}

	id, err := c.Table().Alloc(s)
	if err != nil {
		s.sndNotify.close()
		s.rcvNotify.close()
		return 0, err
	}
	s.id = id
	c.Stats().SocketOpened()
	return id, nil
}

func sembound(n int64) int64 {
	if n <= 0 {
		return 1
	}
	return n
}

func lookup(id int) (*Socket, error) {
	c := core.Get()
	if c == nil {
		return nil, core.ErrorNotInitialized.Error()
	}
	e, ok := c.Table().Get(id)
	if !ok {
		return nil, core.ErrorBadHandle.Error()
	}
	s, ok := e.(*Socket)
	if !ok {
		return nil, core.ErrorBadHandle.Error()
	}
	return s, nil
}

// Close begins the zombie-socket close sequence for id: blocking
// Send/Recv calls wake with ErrorTerminated, outstanding endpoints are
// stopped, and the socket's table slot is freed once LINGER drains (or
// immediately if LINGER is zero).
func Close(id int) error {
	s, err := lookup(id)
	if err != nil {
		return err
	}
	req := &closeReq{}
	s.ctx.Dispatch(s.fsm, 0, evCtlClose, req)
	return req.err
}

// Bind starts listening on addr ("tcp://...", "ipc://...",
// "inproc://...") and returns an endpoint id for later Shutdown.
func Bind(id int, addr string) (int, error) {
	s, err := lookup(id)
	if err != nil {
		return 0, err
	}
	req := &bindReq{addr: addr}
	s.ctx.Dispatch(s.fsm, 0, evCtlBind, req)
	return req.id, req.err
}

// Connect starts dialing addr and returns an endpoint id for later
// Shutdown. The connector retries with jittered backoff until
// Shutdown or Close.
func Connect(id int, addr string) (int, error) {
	s, err := lookup(id)
	if err != nil {
		return 0, err
	}
	req := &connectReq{addr: addr}
	s.ctx.Dispatch(s.fsm, 0, evCtlConnect, req)
	return req.id, req.err
}

// Shutdown tears down one endpoint without closing the socket.
func Shutdown(id, epID int) error {
	s, err := lookup(id)
	if err != nil {
		return err
	}
	req := &shutdownReq{epID: epID}
	s.ctx.Dispatch(s.fsm, 0, evCtlShutdown, req)
	return req.err
}

// Send copies body and hands it to the protocol instance, blocking per
// SNDTIMEO unless flags carries DontWait.
func Send(id int, body []byte, flags int) error {
	s, err := lookup(id)
	if err != nil {
		return err
	}
	return s.send(message.NewHeap(body), flags)
}

// SendMsg hands msg to the protocol instance directly, letting the
// caller construct a zero-copy message.NewUser body (or a pre-built
// header/body pair from a prior receive) instead of forcing a copy.
func SendMsg(id int, msg *message.Message, flags int) error {
	s, err := lookup(id)
	if err != nil {
		_ = msg.Free()
		return err
	}
	return s.send(msg, flags)
}

func (s *Socket) send(msg *message.Message, flags int) error {
	for {
		if !s.sndSem.TryAcquire(1) {
			if flags&DontWait != 0 {
				_ = msg.Free()
				return ErrorAgain.Error()
			}
			if !s.waitWritable() {
				_ = msg.Free()
				return ErrorTimeout.Error()
			}
			continue
		}

		req := &sendReq{msg: msg}
		s.ctx.Dispatch(s.fsm, 0, evCtlSend, req)
		s.sndSem.Release(1)

		if req.err == nil {
			return nil
		}
		if !errors.IsCode(req.err, ErrorAgain) {
			_ = msg.Free()
			return req.err
		}
		if flags&DontWait != 0 {
			_ = msg.Free()
			return ErrorAgain.Error()
		}
		if !s.waitWritable() {
			_ = msg.Free()
			return ErrorTimeout.Error()
		}
	}
}

// Recv returns the next message's body, blocking per RCVTIMEO unless
// flags carries DontWait.
func Recv(id int, flags int) ([]byte, error) {
	s, err := lookup(id)
	if err != nil {
		return nil, err
	}
	msg, err := s.recv(flags)
	if err != nil {
		return nil, err
	}
	body := append([]byte(nil), msg.Body()...)
	_ = msg.Free()
	return body, nil
}

// RecvMsg returns the next raw message.Message, letting the caller
// inspect the header or hold the body without an extra copy.
func RecvMsg(id int, flags int) (*message.Message, error) {
	s, err := lookup(id)
	if err != nil {
		return nil, err
	}
	return s.recv(flags)
}

func (s *Socket) recv(flags int) (*message.Message, error) {
	for {
		if !s.rcvSem.TryAcquire(1) {
			if flags&DontWait != 0 {
				return nil, ErrorAgain.Error()
			}
			if !s.waitReadable() {
				return nil, ErrorTimeout.Error()
			}
			continue
		}

		req := &recvReq{}
		s.ctx.Dispatch(s.fsm, 0, evCtlRecv, req)
		s.rcvSem.Release(1)

		if req.err == nil {
			return req.msg, nil
		}
		if !errors.IsCode(req.err, ErrorAgain) {
			return nil, req.err
		}
		if flags&DontWait != 0 {
			return nil, ErrorAgain.Error()
		}
		if !s.waitReadable() {
			return nil, ErrorTimeout.Error()
		}
	}
}

// SetOption applies an option at level; name is one of the Opt*
// constants for SolSocket, or a protocol-specific name for
// SolProtocol.
func SetOption(id int, level Level, name string, value interface{}) error {
	s, err := lookup(id)
	if err != nil {
		return err
	}
	req := &optReq{level: level, name: name, value: value}
	s.ctx.Dispatch(s.fsm, 0, evCtlSetOpt, req)
	return req.err
}

// GetOption reads an option at level.
func GetOption(id int, level Level, name string) (interface{}, error) {
	s, err := lookup(id)
	if err != nil {
		return nil, err
	}
	req := &optReq{level: level, name: name}
	s.ctx.Dispatch(s.fsm, 0, evCtlGetOpt, req)
	return req.value, req.err
}

// SndFD returns the read end of the SNDFD notification pipe: readable
// whenever the socket can currently accept a Send without blocking.
func SndFD(id int) (int, error) {
	s, err := lookup(id)
	if err != nil {
		return -1, err
	}
	return s.sndNotify.fd(), nil
}

// RcvFD returns the read end of the RCVFD notification pipe: readable
// whenever a Recv would currently return a message without blocking.
func RcvFD(id int) (int, error) {
	s, err := lookup(id)
	if err != nil {
		return -1, err
	}
	return s.rcvNotify.fd(), nil
}

// Zombify implements core.Entry: Term calls this on every live socket
// during process shutdown.
func (s *Socket) Zombify() {
	s.ctx.Dispatch(s.fsm, 0, evCtlZombify, nil)
}

func (s *Socket) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart:
		return
	case aio.EvStop:
		return
	}

	if src == 0 {
		switch event {
		case evCtlBind:
			s.doBind(data.(*bindReq))
			return
		case evCtlConnect:
			s.doConnect(data.(*connectReq))
			return
		case evCtlShutdown:
			s.doShutdown(data.(*shutdownReq))
			return
		case evCtlSend:
			s.doSend(data.(*sendReq))
			return
		case evCtlRecv:
			s.doRecv(data.(*recvReq))
			return
		case evCtlSetOpt:
			s.doSetOpt(data.(*optReq))
			return
		case evCtlGetOpt:
			s.doGetOpt(data.(*optReq))
			return
		case evCtlClose:
			s.doClose(data.(*closeReq))
			return
		case evCtlZombify:
			s.doZombify()
			return
		case evLingerExpire:
			s.finishShutdown()
			return
		}
	}

	if p, ok := s.pipes[src]; ok {
		switch event {
		case pipe.EvIn:
			s.proto.In(p)
			s.onReadiness()
			return
		case pipe.EvOut:
			s.proto.Out(p)
			s.onReadiness()
			return
		case pipe.EvClosed:
			s.proto.Rm(p)
			delete(s.pipes, src)
			s.core.Stats().PipeDetached()
			s.onReadiness()
			s.maybeFinishDrain()
			return
		}
	}

	if _, ok := s.endpoints[src]; ok {
		switch event {
		case transport.EvPipeUp:
			s.attachPipe(data.(*pipe.Pipe))
			return
		case transport.EvPipeDown:
			return
		case aio.EvStopped:
			delete(s.endpoints, src)
			s.maybeFinishDrain()
			return
		}
	}

	s.fsm.Fatal("socket", event)
}

func (s *Socket) nextTag() int {
	s.tagSeq++
	return s.tagSeq
}

func (s *Socket) attachPipe(p *pipe.Pipe) {
	tag := s.nextTag()
	p.FSM().SetOwner(s.fsm, tag)
	s.pipes[tag] = p
	_ = s.proto.Add(p)
	s.core.Stats().PipeAttached()
	s.onReadiness()
}

func (s *Socket) doBind(req *bindReq) {
	addr, err := transport.ParseAddress(req.addr)
	if err != nil {
		req.err = err
		return
	}

	tag := s.nextTag()
	name := fmt.Sprintf("%s-bind-%d", s.fsm.Name(), tag)

	if addr.Scheme == "inproc" {
		l, err := transport.NewInprocListener(s.ctx, name, addr.Rest, s.protoID)
		if err != nil {
			req.err = err
			return
		}
		l.FSM().SetOwner(s.fsm, tag)
		l.FSM().Start()
		s.endpoints[tag] = &Endpoint{id: tag, kind: endpointInprocListener, inprocL: l, addr: req.addr}
		req.id = tag
		return
	}

	ep, ok := transport.Lookup(addr.Scheme)
	if !ok {
		req.err = transport.ErrorSchemeUnknown.Error()
		return
	}
	ln, err := transport.NewListener(s.ctx, name, ep, addr, s.protoID, s.opts.rcvMaxSize, 128)
	if err != nil {
		req.err = err
		return
	}
	ln.FSM().SetOwner(s.fsm, tag)
	s.endpoints[tag] = &Endpoint{id: tag, kind: endpointListener, listener: ln, addr: req.addr}
	req.id = tag
}

func (s *Socket) doConnect(req *connectReq) {
	addr, err := transport.ParseAddress(req.addr)
	if err != nil {
		req.err = err
		return
	}

	tag := s.nextTag()
	name := fmt.Sprintf("%s-conn-%d", s.fsm.Name(), tag)

	if addr.Scheme == "inproc" {
		c := transport.NewInprocConnector(s.ctx, name, addr.Rest, s.protoID, s.opts.reconnectIvl, s.opts.reconnectIvlMax)
		c.FSM().SetOwner(s.fsm, tag)
		c.FSM().Start()
		s.endpoints[tag] = &Endpoint{id: tag, kind: endpointInprocConnector, inprocC: c, addr: req.addr}
		req.id = tag
		return
	}

	ep, ok := transport.Lookup(addr.Scheme)
	if !ok {
		req.err = transport.ErrorSchemeUnknown.Error()
		return
	}
	c := transport.NewConnector(s.ctx, name, ep, addr, s.protoID, s.opts.rcvMaxSize, s.opts.reconnectIvl, s.opts.reconnectIvlMax)
	c.FSM().SetOwner(s.fsm, tag)
	c.FSM().Start()
	s.endpoints[tag] = &Endpoint{id: tag, kind: endpointConnector, connector: c, addr: req.addr}
	req.id = tag
}

func (s *Socket) doShutdown(req *shutdownReq) {
	ep, ok := s.endpoints[req.epID]
	if !ok {
		req.err = ErrorNoSuchEndpoint.Error()
		return
	}
	ep.Stop()
}

func (s *Socket) doSend(req *sendReq) {
	if s.zombie {
		_ = req.msg.Free()
		req.err = ErrorTerminated.Error()
		return
	}
	if err := s.proto.Send(req.msg); err != nil {
		// Ownership of req.msg stays with the caller on this path: no
		// pipe accepted it, so send() must be able to retry the same
		// message once a pipe becomes writable instead of it being
		// freed out from under the retry.
		req.err = ErrorAgain.Error()
		return
	}
	req.err = nil
	s.core.Stats().Sent(protocol.Name(s.protoID))
	s.onReadiness()
}

func (s *Socket) doRecv(req *recvReq) {
	msg := s.proto.Recv()
	if msg == nil {
		if s.zombie {
			req.err = ErrorTerminated.Error()
			return
		}
		req.err = ErrorAgain.Error()
		return
	}
	req.msg = msg
	s.core.Stats().Received(protocol.Name(s.protoID))
	s.onReadiness()
}

func (s *Socket) doSetOpt(req *optReq) {
	switch req.level {
	case SolProtocol:
		req.err = s.proto.SetOption(req.name, req.value)
		return
	case SolTransport:
		req.err = ErrorUnknownOption.Error()
		return
	}

	switch req.name {
	case OptLinger:
		if d, ok := req.value.(time.Duration); ok {
			s.opts.linger = d
			return
		}
	case OptSndBuf:
		if n, ok := req.value.(int64); ok {
			s.opts.sndBuf = n
			s.sndSem = semaphore.NewWeighted(sembound(n))
			return
		}
	case OptRcvBuf:
		if n, ok := req.value.(int64); ok {
			s.opts.rcvBuf = n
			s.rcvSem = semaphore.NewWeighted(sembound(n))
			return
		}
	case OptSndTimeo:
		if d, ok := req.value.(time.Duration); ok {
			s.opts.sndTimeo = d
			return
		}
	case OptRcvTimeo:
		if d, ok := req.value.(time.Duration); ok {
			s.opts.rcvTimeo = d
			return
		}
	case OptReconnectIvl:
		if d, ok := req.value.(time.Duration); ok {
			s.opts.reconnectIvl = d
			return
		}
	case OptReconnectIvlMax:
		if d, ok := req.value.(time.Duration); ok {
			s.opts.reconnectIvlMax = d
			return
		}
	case OptSndPrio:
		if n, ok := req.value.(int); ok {
			s.opts.sndPrio = n
			_ = s.proto.SetOption(OptSndPrio, n)
			return
		}
	case OptRcvPrio:
		if n, ok := req.value.(int); ok {
			s.opts.rcvPrio = n
			_ = s.proto.SetOption(OptRcvPrio, n)
			return
		}
	case OptIPv4Only:
		if b, ok := req.value.(bool); ok {
			s.opts.ipv4Only = b
			return
		}
	case OptRcvMaxSize:
		if n, ok := req.value.(int64); ok {
			s.opts.rcvMaxSize = n
			return
		}
	case OptSndFD, OptRcvFD, OptDomain, OptProtocol:
		req.err = ErrorUnknownOption.Error()
		return
	}
	req.err = ErrorInvalid.Error()
}

func (s *Socket) doGetOpt(req *optReq) {
	switch req.level {
	case SolProtocol:
		req.value, req.err = s.proto.GetOption(req.name)
		return
	case SolTransport:
		req.err = ErrorUnknownOption.Error()
		return
	}

	switch req.name {
	case OptLinger:
		req.value = s.opts.linger
	case OptSndBuf:
		req.value = s.opts.sndBuf
	case OptRcvBuf:
		req.value = s.opts.rcvBuf
	case OptSndTimeo:
		req.value = s.opts.sndTimeo
	case OptRcvTimeo:
		req.value = s.opts.rcvTimeo
	case OptReconnectIvl:
		req.value = s.opts.reconnectIvl
	case OptReconnectIvlMax:
		req.value = s.opts.reconnectIvlMax
	case OptSndPrio:
		req.value = s.opts.sndPrio
	case OptRcvPrio:
		req.value = s.opts.rcvPrio
	case OptIPv4Only:
		req.value = s.opts.ipv4Only
	case OptRcvMaxSize:
		req.value = s.opts.rcvMaxSize
	case OptSndFD:
		req.value = s.sndNotify.fd()
	case OptRcvFD:
		req.value = s.rcvNotify.fd()
	case OptDomain:
		req.value = domainOf(s.protoID)
	case OptProtocol:
		req.value = uint16(s.protoID)
	default:
		req.err = ErrorUnknownOption.Error()
	}
}

// domainOf reports AF_SP (1) for a cooked pattern and AF_SP_RAW (2)
// for a *_RAW one, matching spec.md §4.9's DOMAIN option.
func domainOf(id protocol.ProtoID) int {
	switch id {
	case protocol.ProtoPairRaw, protocol.ProtoPubRaw, protocol.ProtoSubRaw, protocol.ProtoReqRaw,
		protocol.ProtoRepRaw, protocol.ProtoPushRaw, protocol.ProtoPullRaw,
		protocol.ProtoSurveyorRaw, protocol.ProtoRespondentRaw, protocol.ProtoBusRaw:
		return 2
	}
	return 1
}

func (s *Socket) doClose(req *closeReq) {
	s.doZombify()
	req.err = nil
}

func (s *Socket) doZombify() {
	if s.zombie {
		return
	}
	s.zombie = true
	s.broadcastAll()

	for _, ep := range s.endpoints {
		ep.Stop()
	}

	switch {
	case s.opts.linger == 0:
		s.finishShutdown()
	case s.opts.linger > 0:
		s.lingerTimer = s.ctx.Worker().AddTimer(s.opts.linger, s.fsm, 0, evLingerExpire)
	default:
		s.maybeFinishDrain()
	}
}

// maybeFinishDrain closes the socket once every endpoint and pipe has
// torn down, for the infinite-LINGER case where there is no timer to
// fall back on.
func (s *Socket) maybeFinishDrain() {
	if s.zombie && s.lingerTimer == nil && s.opts.linger < 0 && len(s.endpoints) == 0 && len(s.pipes) == 0 {
		s.finishShutdown()
	}
}

func (s *Socket) finishShutdown() {
	if s.lingerTimer != nil {
		s.ctx.Worker().CancelTimer(s.lingerTimer)
		s.lingerTimer = nil
	}
	s.proto.Destroy()
	s.sndNotify.close()
	s.rcvNotify.close()
	if s.core != nil {
		s.core.Stats().SocketClosed()
		s.core.Table().Free(s.id)
	}
}

// onReadiness updates the SNDFD/RCVFD notification pipes and wakes any
// goroutine blocked in waitWritable/waitReadable.
func (s *Socket) onReadiness() {
	mask := s.proto.Events()

	if mask&protocol.EventOut != 0 {
		s.sndNotify.set()
	} else {
		s.sndNotify.clear()
	}
	if mask&protocol.EventIn != 0 {
		s.rcvNotify.set()
	} else {
		s.rcvNotify.clear()
	}

	s.broadcastAll()
}

func (s *Socket) broadcastAll() {
	s.waitMu.Lock()
	oldOut, oldIn := s.outCh, s.inCh
	s.outCh = make(chan struct{})
	s.inCh = make(chan struct{})
	s.waitMu.Unlock()
	close(oldOut)
	close(oldIn)
}

func (s *Socket) getOutCh() chan struct{} {
	s.waitMu.Lock()
	defer s.waitMu.Unlock()
	return s.outCh
}

func (s *Socket) getInCh() chan struct{} {
	s.waitMu.Lock()
	defer s.waitMu.Unlock()
	return s.inCh
}

// waitWritable blocks until onReadiness fires (or SNDTIMEO elapses),
// per spec.md §4.9's blocking Send semantics. Returns false on
// timeout.
func (s *Socket) waitWritable() bool {
	return waitOn(s.getOutCh(), s.opts.sndTimeo)
}

// waitReadable is waitWritable's RCVTIMEO counterpart.
func (s *Socket) waitReadable() bool {
	return waitOn(s.getInCh(), s.opts.rcvTimeo)
}

func waitOn(ch chan struct{}, timeout time.Duration) bool {
	if timeout < 0 {
		<-ch
		return true
	}
	if timeout == 0 {
		select {
		case <-ch:
			return true
		default:
			return false
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-ch:
		return true
	case <-t.C:
		return false
	}
}
