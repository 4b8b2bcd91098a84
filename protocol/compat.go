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

// Compatibility maps each ProtoID to the set of peer ProtoIDs it will
// accept in SockBase.Add, grounded in nanomsg's pattern-pairing rule
// (src/pattern.h's sp_socktype domain/protocol pairing): a cooked
// protocol pairs with its direct counterpart, a raw variant pairs with
// anything of matching shape so it can sit inside a device.
var Compatibility = map[ProtoID]map[ProtoID]bool{
	ProtoPair:    {ProtoPair: true, ProtoPairRaw: true},
	ProtoPairRaw: {ProtoPair: true, ProtoPairRaw: true},

	ProtoPub:    {ProtoSub: true, ProtoSubRaw: true},
	ProtoPubRaw: {ProtoSub: true, ProtoSubRaw: true, ProtoPubRaw: true},
	ProtoSub:    {ProtoPub: true, ProtoPubRaw: true},
	ProtoSubRaw: {ProtoPub: true, ProtoPubRaw: true, ProtoSubRaw: true},

	ProtoReq:    {ProtoRep: true, ProtoRepRaw: true},
	ProtoReqRaw: {ProtoRep: true, ProtoRepRaw: true, ProtoReqRaw: true},
	ProtoRep:    {ProtoReq: true, ProtoReqRaw: true},
	ProtoRepRaw: {ProtoReq: true, ProtoReqRaw: true, ProtoRepRaw: true},

	ProtoPush:    {ProtoPull: true, ProtoPullRaw: true},
	ProtoPushRaw: {ProtoPull: true, ProtoPullRaw: true},
	ProtoPull:    {ProtoPush: true, ProtoPushRaw: true},
	ProtoPullRaw: {ProtoPush: true, ProtoPushRaw: true},

	ProtoSurveyor:    {ProtoRespondent: true, ProtoRespondentRaw: true},
	ProtoRespondent:  {ProtoSurveyor: true, ProtoSurveyorRaw: true},
	ProtoRespondentRaw: {ProtoSurveyor: true, ProtoSurveyorRaw: true, ProtoRespondentRaw: true},
	ProtoSurveyorRaw: {ProtoRespondent: true, ProtoRespondentRaw: true, ProtoSurveyorRaw: true},

	ProtoBus:    {ProtoBus: true, ProtoBusRaw: true},
	ProtoBusRaw: {ProtoBus: true, ProtoBusRaw: true},
}

// Accepts reports whether peer may attach to a socket of type self.
func Accepts(self, peer ProtoID) bool {
	m, ok := Compatibility[self]
	if !ok {
		return false
	}
	return m[peer]
}
