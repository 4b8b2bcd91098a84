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
	"time"

	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/pipe"
	"github.com/nabbar/scalesock/protocol"
	"github.com/nabbar/scalesock/usock"
)

// evReconnectTimer is the private event a Connector's backoff timer
// raises to itself.
const evReconnectTimer = aio.EvComponentBase + 50

// connState names the Connector's coarse lifecycle, spec.md §4.5:
// idle -> connecting -> active, with a waiting state between failed
// attempts while the backoff timer runs.
type connState uint8

const (
	connIdle connState = iota
	connConnecting
	connActive
	connWaiting
	connStopped
)

// Connector is the generic dialing FSM: repeatedly attempts to
// connect, wraps a successful connection in a Session, and retries
// with exponential jittered backoff (RECONNECT_IVL..RECONNECT_IVL_MAX)
// on failure or disconnection.
type Connector struct {
	fsm *aio.FSM
	ctx *aio.Context

	ep      Endpoint
	addr    *Address
	localID protocol.ProtoID
	maxRecv int64

	state   connState
	sock    *usock.Socket
	sess    *Session
	backoff *protocol.Backoff
	timer   *aio.Timer
}

// NewConnector constructs an idle Connector. Call FSM().Start() to
// begin dialing.
func NewConnector(ctx *aio.Context, name string, ep Endpoint, addr *Address, localID protocol.ProtoID, maxRecv int64, reconnectIvl, reconnectIvlMax time.Duration) *Connector {
	c := &Connector{
		ctx:     ctx,
		ep:      ep,
		addr:    addr,
		localID: localID,
		maxRecv: maxRecv,
		backoff: protocol.NewBackoff(reconnectIvl, reconnectIvlMax),
	}
	c.fsm = aio.New(ctx, name, c.handle)
	return c
}

// FSM exposes the Connector's state machine so the owning socket
// endpoint can SetOwner/Start/Stop it.
func (c *Connector) FSM() *aio.FSM {
	return c.fsm
}

// Pipe returns the currently active pipe, or nil while disconnected.
func (c *Connector) Pipe() *pipe.Pipe {
	if c.sess == nil {
		return nil
	}
	return c.sess.Pipe()
}

func (c *Connector) handle(src int, event aio.Event, data interface{}) {
	switch event {
	case aio.EvStart:
		c.dial()
		return
	case aio.EvStop:
		c.doStop()
		return
	}

	if src == 0 && c.sock != nil {
		switch event {
		case usock.EvConnected:
			c.onConnected()
			return
		case usock.EvError, usock.EvShutdown:
			c.onSockFailed()
			return
		}
	}

	if src == 1 && c.sess != nil {
		switch event {
		case EvPipeUp:
			c.state = connActive
			c.backoff.Reset()
			c.fsm.Raise(EvPipeUp, data)
			return
		case EvPipeDown:
			c.onSessionDown()
			return
		}
	}

	if event == evReconnectTimer {
		c.dial()
		return
	}

	c.fsm.Fatal("connector", event)
}

func (c *Connector) dial() {
	c.state = connConnecting
	c.sock = usock.New(c.ctx, c.fsm.Name()+"-sock")
	c.sock.FSM().SetOwner(c.fsm, 0)

	if err := c.sock.Start(c.ep.Family(), c.ep.SockType()); err != nil {
		c.scheduleRetry()
		return
	}
	if err := c.ep.Prepare(c.sock.FD(), c.addr); err != nil {
		c.scheduleRetry()
		return
	}

	sa, err := c.ep.DialSockaddr(c.addr)
	if err != nil {
		c.scheduleRetry()
		return
	}
	if err := c.sock.Connect(sa); err != nil {
		c.scheduleRetry()
		return
	}
}

func (c *Connector) onConnected() {
	c.sess = NewSession(c.ctx, c.fsm.Name()+"-session", c.sock, c.localID, c.maxRecv)
	c.sess.FSM().SetOwner(c.fsm, 1)
	c.sess.FSM().Start()
}

func (c *Connector) onSockFailed() {
	c.sock = nil
	c.scheduleRetry()
}

func (c *Connector) onSessionDown() {
	if c.sess != nil {
		c.sess.FSM().Stop()
	}
	c.sess = nil
	c.sock = nil
	c.fsm.Raise(EvPipeDown, nil)
	c.scheduleRetry()
}

func (c *Connector) scheduleRetry() {
	c.state = connWaiting
	collector().Reconnected(c.addr.Scheme)
	d := c.backoff.Next()
	c.timer = c.fsm.Context().Worker().AddTimer(d, c.fsm, 0, evReconnectTimer)
}

func (c *Connector) doStop() {
	c.state = connStopped
	if c.timer != nil {
		c.fsm.Context().Worker().CancelTimer(c.timer)
	}
	if c.sess != nil {
		c.sess.FSM().Stop()
	}
	if c.sock != nil {
		c.sock.FSM().Stop()
	}
	c.fsm.Raise(aio.EvStopped, nil)
}
