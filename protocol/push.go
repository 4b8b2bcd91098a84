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

// Push implements the PUSH pattern, spec.md §4.8: load-balanced send,
// no receive side, outbound pipes ordered by per-pipe priority.
type Push struct {
	raw  bool
	prio Priority
}

// NewPush constructs a PUSH instance.
func NewPush() *Push { return &Push{} }

// NewPushRaw constructs the raw variant, used inside devices.
func NewPushRaw() *Push { return &Push{raw: true} }

func (s *Push) Type() ProtoID {
	if s.raw {
		return ProtoPushRaw
	}
	return ProtoPush
}

func (s *Push) Add(p *pipe.Pipe) error {
	if !Accepts(s.Type(), p.PeerType()) {
		return ErrorIncompatiblePeer.Error()
	}
	s.prio.Add(p, MinPriority)
	return nil
}

func (s *Push) Rm(p *pipe.Pipe) { s.prio.Remove(p) }
func (s *Push) In(p *pipe.Pipe) {}
func (s *Push) Out(p *pipe.Pipe) { s.prio.MarkReady(p) }

func (s *Push) Send(msg *message.Message) error {
	return s.prio.Send(msg)
}

func (s *Push) Recv() *message.Message { return nil }

// SetPipePriority reassigns p's send priority (1 = highest). Add places
// every new pipe at MinPriority, and nothing in the socket façade calls
// SetPipePriority: the SNDPRIO option is stored on the socket and
// passed to SetOption, which Push rejects, so it does not change the
// priority of any pipe.
func (s *Push) SetPipePriority(p *pipe.Pipe, prio int) {
	s.prio.Add(p, prio)
}

func (s *Push) SetOption(name string, value interface{}) error {
	return ErrorNoState.Error()
}

func (s *Push) GetOption(name string) (interface{}, error) {
	return nil, ErrorNoState.Error()
}

func (s *Push) Events() EventMask {
	if s.prio.Ready() {
		return EventOut
	}
	return 0
}

func (s *Push) Destroy() {}
