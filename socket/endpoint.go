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

package socket

import "github.com/nabbar/scalesock/transport"

// endpointKind distinguishes which of the four transport constructors
// backs an Endpoint, since transport.Listener/Connector and
// transport.InprocListener/InprocConnector share no common interface
// beyond FSM() and Stop-via-FSM.
type endpointKind uint8

const (
	endpointListener endpointKind = iota
	endpointConnector
	endpointInprocListener
	endpointInprocConnector
)

// Endpoint is one bound or connected address on a Socket, tagged with
// the id Bind/Connect returned, per spec.md §4.9's "Shutdown(endpoint
// id)".
type Endpoint struct {
	id   int
	kind endpointKind
	addr string

	listener  *transport.Listener
	connector *transport.Connector
	inprocL   *transport.InprocListener
	inprocC   *transport.InprocConnector
}

// ID returns the endpoint id, as returned by Bind/Connect and passed
// back to Shutdown.
func (e *Endpoint) ID() int {
	return e.id
}

// Addr returns the address string this Endpoint was bound or
// connected against.
func (e *Endpoint) Addr() string {
	return e.addr
}

// Stop tears the endpoint down. Asynchronous: the underlying FSM
// raises aio.EvStopped to the socket's root FSM once fully drained.
func (e *Endpoint) Stop() {
	switch e.kind {
	case endpointListener:
		e.listener.FSM().Stop()
	case endpointConnector:
		e.connector.FSM().Stop()
	case endpointInprocListener:
		e.inprocL.FSM().Stop()
	case endpointInprocConnector:
		e.inprocC.FSM().Stop()
	}
}
