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
	"fmt"

	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/protocol"
	"github.com/nabbar/scalesock/usock"
)

// Listener is the generic "binder" FSM, spec.md §4.5: owns a listening
// usock.Socket and spawns one Session per accepted connection,
// forwarding each Session's EvPipeUp/EvPipeDown to its own owner (the
// socket façade's endpoint, which hands the pipe to the protocol
// instance via SockBase.Add/Rm).
type Listener struct {
	fsm  *aio.FSM
	ctx  *aio.Context
	sock *usock.Socket

	ep      Endpoint
	addr    *Address
	localID protocol.ProtoID
	maxRecv int64

	sessions map[int]*Session
	seq      int
}

// NewListener starts a listening socket for ep/addr and begins
// accepting connections. backlog is the listen(2) backlog.
func NewListener(ctx *aio.Context, name string, ep Endpoint, addr *Address, localID protocol.ProtoID, maxRecv int64, backlog int) (*Listener, error) {
	l := &Listener{
		ctx:      ctx,
		ep:       ep,
		addr:     addr,
		localID:  localID,
		maxRecv:  maxRecv,
		sessions: make(map[int]*Session),
	}

	l.sock = usock.New(ctx, name+"-listen")
	l.fsm = aio.New(ctx, name, l.handle)
	l.sock.FSM().SetOwner(l.fsm, 0)

	if err := l.sock.Start(ep.Family(), ep.SockType()); err != nil {
		return nil, err
	}
	if err := ep.Prepare(l.sock.FD(), addr); err != nil {
		return nil, err
	}

	sa, err := ep.ListenSockaddr(addr)
	if err != nil {
		return nil, err
	}
	if err := l.sock.Bind(sa); err != nil {
		return nil, err
	}
	if err := l.sock.Listen(backlog); err != nil {
		return nil, err
	}

	return l, nil
}

// FSM exposes the Listener's state machine so the owning socket
// endpoint can SetOwner/Stop it (Start is implicit: NewListener
// already begins accepting).
func (l *Listener) FSM() *aio.FSM {
	return l.fsm
}

// Addr returns the address this Listener is bound to.
func (l *Listener) Addr() *Address {
	return l.addr
}

// FD returns the listening socket's raw descriptor, e.g. to read back
// an ephemeral port via unix.Getsockname.
func (l *Listener) FD() int {
	return l.sock.FD()
}

func (l *Listener) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart:
		return
	case aio.EvStop:
		l.doStop()
		return
	}

	if src == 0 {
		switch event {
		case usock.EvAccepted:
			l.onAccepted(data.(int))
			return
		case usock.EvError:
			return
		}
	}

	if sess, ok := l.sessions[src]; ok {
		switch event {
		case EvPipeUp:
			l.fsm.Raise(EvPipeUp, data)
			return
		case EvPipeDown:
			sess.FSM().Stop()
			return
		case aio.EvStopped:
			delete(l.sessions, src)
			return
		}
	}

	l.fsm.Fatal("listener", event)
}

func (l *Listener) onAccepted(fd int) {
	l.seq++
	tag := l.seq

	childSock := usock.StartFromFD(l.ctx, fmt.Sprintf("%s-conn-%d", l.fsm.Name(), tag), fd)
	sess := NewSession(l.ctx, fmt.Sprintf("%s-session-%d", l.fsm.Name(), tag), childSock, l.localID, l.maxRecv)
	sess.FSM().SetOwner(l.fsm, tag)

	l.sessions[tag] = sess
	sess.FSM().Start()
}

func (l *Listener) doStop() {
	for _, sess := range l.sessions {
		sess.FSM().Stop()
	}
	l.sock.FSM().Stop()
	l.fsm.Raise(aio.EvStopped, nil)
}
