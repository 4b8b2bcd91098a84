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
	"sync"
	"time"

	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
	"github.com/nabbar/scalesock/protocol"
)

// inproc's own private event range, disjoint from EvPipeUp/EvPipeDown
// (which every transport's Listener/Connector raises to its owner the
// same way) and from the evReconnectTimer used by the TCP/IPC
// Connector.
const (
	evInprocDeliver aio.Event = aio.EvComponentBase + 200 + iota
	evInprocClosed
	evInprocBind
	evInprocBound
	evInprocRetry
	evInprocSent
)

// inprocRegistry is the process-wide name -> InprocListener table,
// spec.md §4.5 "In-process": "A binder registers under a name in a
// process-wide name registry; a connector looks up the name and
// performs a direct pipe hand-off."
var (
	inprocMu  sync.RWMutex
	inprocReg = make(map[string]*InprocListener)
)

func registerInproc(name string, l *InprocListener) error {
	inprocMu.Lock()
	defer inprocMu.Unlock()

	if _, ok := inprocReg[name]; ok {
		return ErrorSchemeAlreadyRegistered.Errorf(name)
	}
	inprocReg[name] = l
	return nil
}

func unregisterInproc(name string, l *InprocListener) {
	inprocMu.Lock()
	defer inprocMu.Unlock()

	if cur, ok := inprocReg[name]; ok && cur == l {
		delete(inprocReg, name)
	}
}

func lookupInproc(name string) (*InprocListener, bool) {
	inprocMu.RLock()
	defer inprocMu.RUnlock()

	l, ok := inprocReg[name]
	return l, ok
}

// inprocLink is the pipe.Sender each side of an established inproc
// connection presents to its own pipe.Pipe. Send crosses into the
// peer's Context by posting to its worker's task queue rather than
// calling into it directly, matching spec.md §5's "events raised
// across contexts go through the worker task queue" — the two ends of
// an inproc pipe usually belong to different sockets, each pinned to
// its own worker.
type inprocLink struct {
	localPipe *pipe.Pipe
	localCtx  *aio.Context
	localFSM  *aio.FSM
	peerCtx   *aio.Context
	peerFSM   *aio.FSM
}

func (l *inprocLink) Send(msg *message.Message) error {
	if l.peerCtx == nil || l.peerFSM == nil {
		_ = msg.Free()
		return ErrorPeerGone.Error()
	}

	clone := msg.Clone()
	_ = msg.Free()

	peerCtx, peerFSM := l.peerCtx, l.peerFSM
	peerCtx.Worker().Post(func() {
		peerCtx.Dispatch(peerFSM, 0, evInprocDeliver, clone)
	})

	// An inproc send never actually blocks on I/O, so the local pipe
	// is sendable again almost immediately — but pipe.Send (our caller)
	// has not yet cleared canSend when this runs, so marking it ready
	// here would be a same-call no-op (the canSend guard in
	// MarkSendable). Post a self-task instead, the same way a
	// byte-stream Session only re-marks its pipe on a later EvSent,
	// so the re-mark lands after pipe.Send finishes flipping canSend.
	localCtx, localFSM := l.localCtx, l.localFSM
	localCtx.Worker().Post(func() {
		localCtx.Dispatch(localFSM, 0, evInprocSent, nil)
	})
	return nil
}

// inprocEnd is one side of an established inproc connection: a
// pipe.Pipe plus the FSM that receives cross-context delivery/close
// notifications and raises EvPipeUp/EvPipeDown to its owner (an
// InprocListener or an InprocConnector), exactly as transport.Session
// does for the byte-stream transports.
type inprocEnd struct {
	fsm  *aio.FSM
	pipe *pipe.Pipe
	link *inprocLink
}

func newInprocEnd(ctx *aio.Context, name string, peerID protocol.ProtoID) *inprocEnd {
	e := &inprocEnd{link: &inprocLink{}}
	e.pipe = pipe.New(ctx, name+"-pipe", e.link, uint16(peerID))
	e.link.localPipe = e.pipe
	e.link.localCtx = ctx
	e.fsm = aio.New(ctx, name, e.handle)
	e.link.localFSM = e.fsm
	return e
}

func (e *inprocEnd) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart:
		return
	case aio.EvStop:
		e.teardownLink()
		e.fsm.Raise(aio.EvStopped, nil)
		return
	case evInprocDeliver:
		e.pipe.Deliver(data.(*message.Message))
		return
	case evInprocSent:
		e.pipe.MarkSendable()
		return
	case evInprocClosed:
		e.teardownLink()
		e.pipe.Close()
		e.fsm.Raise(EvPipeDown, nil)
		return
	}
	e.fsm.Fatal("inproc-end", event)
}

func (e *inprocEnd) teardownLink() {
	peerCtx, peerFSM := e.link.peerCtx, e.link.peerFSM
	e.link.peerCtx = nil
	e.link.peerFSM = nil
	if peerCtx != nil {
		peerCtx.Worker().Post(func() {
			peerCtx.Dispatch(peerFSM, 0, evInprocClosed, nil)
		})
	}
}

// InprocListener registers name in the process-wide inproc registry
// and builds a fresh inprocEnd (and raises EvPipeUp with its pipe) for
// every InprocConnector that subsequently looks name up. No OS socket
// is ever involved, per spec.md §4.5.
type InprocListener struct {
	fsm     *aio.FSM
	ctx     *aio.Context
	name    string
	localID protocol.ProtoID

	ends map[int]*inprocEnd
	seq  int
}

// NewInprocListener registers name and returns the listener. Returns
// ErrorSchemeAlreadyRegistered if name is already bound.
func NewInprocListener(ctx *aio.Context, fsmName, name string, localID protocol.ProtoID) (*InprocListener, error) {
	l := &InprocListener{ctx: ctx, name: name, localID: localID, ends: make(map[int]*inprocEnd)}
	l.fsm = aio.New(ctx, fsmName, l.handle)

	if err := registerInproc(name, l); err != nil {
		return nil, err
	}
	return l, nil
}

// FSM exposes the listener's state machine for the owning socket
// endpoint to SetOwner/Start/Stop.
func (l *InprocListener) FSM() *aio.FSM {
	return l.fsm
}

func (l *InprocListener) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart:
		return
	case aio.EvStop:
		unregisterInproc(l.name, l)
		for _, e := range l.ends {
			e.fsm.Stop()
		}
		l.fsm.Raise(aio.EvStopped, nil)
		return
	}

	if src == 0 && event == evInprocBind {
		l.onBind(data.(inprocBindReq))
		return
	}

	if e, ok := l.ends[src]; ok {
		switch event {
		case EvPipeDown:
			e.fsm.Stop()
			return
		case aio.EvStopped:
			delete(l.ends, src)
			return
		}
	}

	l.fsm.Fatal("inproc-listener", event)
}

// inprocBindReq is what an InprocConnector posts to the target
// listener's worker: the connector-side end already built under the
// connector's own Context, plus the connector's own FSM (distinct from
// the end's FSM) so the listener knows where to post the evInprocBound
// reply.
type inprocBindReq struct {
	end       *inprocEnd
	callerCtx *aio.Context
	callerFSM *aio.FSM
}

// onBind is reached (under l.ctx's lock, via Worker.Post) each time an
// InprocConnector finds this listener in the registry. It builds this
// side's inprocEnd, cross-wires both ends' links, seeds each pipe's
// initial OUT readiness, and raises EvPipeUp on both sides.
func (l *InprocListener) onBind(req inprocBindReq) {
	l.seq++
	tag := l.seq

	lEnd := newInprocEnd(l.ctx, l.fsm.Name()+"-end", l.localID)
	lEnd.fsm.SetOwner(l.fsm, tag)
	l.ends[tag] = lEnd
	lEnd.fsm.Start()

	lEnd.link.peerCtx = req.end.fsm.Context()
	lEnd.link.peerFSM = req.end.fsm
	lEnd.pipe.MarkWritable()
	l.fsm.Raise(EvPipeUp, lEnd.pipe)

	lCtx, lFSM := l.ctx, lEnd.fsm
	callerCtx, callerFSM := req.callerCtx, req.callerFSM
	callerCtx.Worker().Post(func() {
		callerCtx.Dispatch(callerFSM, 0, evInprocBound, inprocBound{ctx: lCtx, fsm: lFSM})
	})
}

// inprocBound carries the listener-side end's context/FSM back to the
// connector, letting the connector's end finish wiring its own link.
type inprocBound struct {
	ctx *aio.Context
	fsm *aio.FSM
}

// InprocConnector looks name up in the registry and, once found, hands
// off to the named InprocListener. If name is not yet registered it
// retries with the same exponential jittered backoff the byte-stream
// Connector uses, since a dial against an unbound inproc name behaves
// like connection-refused.
type InprocConnector struct {
	fsm     *aio.FSM
	ctx     *aio.Context
	name    string
	localID protocol.ProtoID

	end     *inprocEnd
	backoff *protocol.Backoff
	timer   *aio.Timer
}

// NewInprocConnector constructs an idle InprocConnector. Call
// FSM().Start() to begin dialing.
func NewInprocConnector(ctx *aio.Context, fsmName, name string, localID protocol.ProtoID, reconnectIvl, reconnectIvlMax time.Duration) *InprocConnector {
	c := &InprocConnector{
		ctx:     ctx,
		name:    name,
		localID: localID,
		backoff: protocol.NewBackoff(reconnectIvl, reconnectIvlMax),
	}
	c.fsm = aio.New(ctx, fsmName, c.handle)
	return c
}

// FSM exposes the connector's state machine for the owning socket
// endpoint to SetOwner/Start/Stop.
func (c *InprocConnector) FSM() *aio.FSM {
	return c.fsm
}

func (c *InprocConnector) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart:
		c.dial()
		return
	case aio.EvStop:
		c.doStop()
		return
	}

	if src == 0 {
		switch event {
		case evInprocBound:
			c.onBound(data.(inprocBound))
			return
		case EvPipeDown:
			c.end = nil
			c.fsm.Raise(EvPipeDown, nil)
			c.scheduleRetry()
			return
		case aio.EvStopped:
			c.end = nil
			return
		case evInprocRetry:
			c.dial()
			return
		}
	}

	c.fsm.Fatal("inproc-connector", event)
}

func (c *InprocConnector) dial() {
	listener, ok := lookupInproc(c.name)
	if !ok {
		c.scheduleRetry()
		return
	}

	e := newInprocEnd(c.ctx, c.fsm.Name()+"-end", c.localID)
	e.fsm.SetOwner(c.fsm, 0)
	c.end = e
	e.fsm.Start()

	req := inprocBindReq{end: e, callerCtx: c.ctx, callerFSM: c.fsm}
	lctx := listener.ctx
	lctx.Worker().Post(func() {
		lctx.Dispatch(listener.fsm, 0, evInprocBind, req)
	})
}

func (c *InprocConnector) onBound(b inprocBound) {
	if c.end == nil {
		return
	}
	c.end.link.peerCtx = b.ctx
	c.end.link.peerFSM = b.fsm
	c.end.pipe.MarkWritable()
	c.backoff.Reset()
	c.fsm.Raise(EvPipeUp, c.end.pipe)
}

func (c *InprocConnector) scheduleRetry() {
	c.timer = c.ctx.Worker().AddTimer(c.backoff.Next(), c.fsm, 0, evInprocRetry)
}

func (c *InprocConnector) doStop() {
	if c.timer != nil {
		c.ctx.Worker().CancelTimer(c.timer)
	}
	if c.end != nil {
		c.end.fsm.Stop()
	}
	c.fsm.Raise(aio.EvStopped, nil)
}
