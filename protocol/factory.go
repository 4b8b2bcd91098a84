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

import "github.com/nabbar/scalesock/aio"

// New constructs the SockBase instance for id. Req and Surveyor need
// ctx for their resend/deadline timers; every other pattern is
// stateless with respect to the Context and ignores it. This is a
// plain switch rather than a registration table because the
// constructors do not share a signature (ctx, or none).
func New(ctx *aio.Context, id ProtoID) (SockBase, error) {
	switch id {
	case ProtoPair:
		return NewPair(), nil
	case ProtoPairRaw:
		return NewPairRaw(), nil
	case ProtoPub:
		return NewPub(), nil
	case ProtoPubRaw:
		return NewRawPub(), nil
	case ProtoSub:
		return NewSub(), nil
	case ProtoSubRaw:
		return NewSubRaw(), nil
	case ProtoReq:
		return NewReq(ctx), nil
	case ProtoReqRaw:
		return NewRawReq(), nil
	case ProtoRep:
		return NewRep(), nil
	case ProtoRepRaw:
		return NewRawRep(), nil
	case ProtoPush:
		return NewPush(), nil
	case ProtoPushRaw:
		return NewPushRaw(), nil
	case ProtoPull:
		return NewPull(), nil
	case ProtoPullRaw:
		return NewPullRaw(), nil
	case ProtoSurveyor:
		return NewSurveyor(ctx), nil
	case ProtoSurveyorRaw:
		return NewRawSurveyor(), nil
	case ProtoRespondent:
		return NewRespondent(), nil
	case ProtoRespondentRaw:
		return NewRawRespondent(), nil
	case ProtoBus:
		return NewBus(), nil
	case ProtoBusRaw:
		return NewBusRaw(), nil
	}
	return nil, ErrorUnknownProtocol.Errorf(id)
}

// names maps each ProtoID to the symbol core.Symbols() reports.
var names = map[ProtoID]string{
	ProtoPair:          "PAIR",
	ProtoPairRaw:       "PAIR_RAW",
	ProtoPub:           "PUB",
	ProtoPubRaw:        "PUB_RAW",
	ProtoSub:           "SUB",
	ProtoSubRaw:        "SUB_RAW",
	ProtoReq:           "REQ",
	ProtoReqRaw:        "REQ_RAW",
	ProtoRep:           "REP",
	ProtoRepRaw:        "REP_RAW",
	ProtoPush:          "PUSH",
	ProtoPushRaw:       "PUSH_RAW",
	ProtoPull:          "PULL",
	ProtoPullRaw:       "PULL_RAW",
	ProtoSurveyor:      "SURVEYOR",
	ProtoSurveyorRaw:   "SURVEYOR_RAW",
	ProtoRespondent:    "RESPONDENT",
	ProtoRespondentRaw: "RESPONDENT_RAW",
	ProtoBus:           "BUS",
	ProtoBusRaw:        "BUS_RAW",
}

// Name returns id's symbolic name, or "" if id is not one of the
// twenty patterns this package implements.
func Name(id ProtoID) string {
	return names[id]
}

// Names returns every known ProtoID's symbolic name, used by
// core.Symbols() introspection.
func Names() map[ProtoID]string {
	out := make(map[ProtoID]string, len(names))
	for k, v := range names {
		out[k] = v
	}
	return out
}
