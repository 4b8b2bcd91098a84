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

package protocol_test

import (
	"github.com/nabbar/scalesock/aio"
	"github.com/nabbar/scalesock/message"
	"github.com/nabbar/scalesock/pipe"
	"github.com/nabbar/scalesock/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// wirePipe hands every Send straight to peer's Deliver, modelling the
// direct in-process hand-off transport/inproc.go uses — enough to drive
// two protocol instances back to back without a real transport.
type wirePipe struct {
	peer *pipe.Pipe
}

func (w *wirePipe) Send(msg *message.Message) error {
	w.peer.Deliver(msg)
	return nil
}

func wireUp(ctx *aio.Context, clientType, serverType uint16) (client, server *pipe.Pipe) {
	toServer := &wirePipe{}
	toClient := &wirePipe{}

	client = pipe.New(ctx, "client", toServer, serverType)
	server = pipe.New(ctx, "server", toClient, clientType)
	toServer.peer = server
	toClient.peer = client

	client.FSM().SetOwner(aio.New(ctx, "client-owner", func(int, aio.Event, interface{}) {}), 0)
	server.FSM().SetOwner(aio.New(ctx, "server-owner", func(int, aio.Event, interface{}) {}), 0)

	return client, server
}

var _ = Describe("REQ/REP", func() {
	It("matches a reply to its outstanding request", func() {
		pool, err := aio.NewPool(1, nil)
		Expect(err).NotTo(HaveOccurred())
		defer pool.Stop()
		ctx := aio.NewContext(pool.Pin())

		client, server := wireUp(ctx, uint16(protocol.ProtoReq), uint16(protocol.ProtoRep))
		client.MarkWritable()
		server.MarkWritable()

		req := protocol.NewReq(ctx)
		rep := protocol.NewRep()

		Expect(req.Add(client)).To(Succeed())
		Expect(rep.Add(server)).To(Succeed())
		req.Out(client)
		rep.Out(server)

		Expect(req.Send(message.NewHeap([]byte("ping")))).To(Succeed())
		rep.In(server)

		request := rep.Recv()
		Expect(request).NotTo(BeNil())
		Expect(request.Body()).To(Equal([]byte("ping")))

		Expect(rep.Send(message.NewHeap([]byte("pong")))).To(Succeed())
		req.In(client)

		reply := req.Recv()
		Expect(reply).NotTo(BeNil())
		Expect(reply.Body()).To(Equal([]byte("pong")))

		req.Destroy()
	})
})
