/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package hub

import (
	"encoding/base32"
	"strconv"

	"github.com/nabbar/ncdc/internal/protocol/adc"
	"github.com/nabbar/ncdc/internal/tth"
)

// b32 is the unpadded base32 encoding ADC uses for salts and password
// hashes on the wire.
var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// ModernEvent mirrors LegacyEvent for the modern dialect.
type ModernEvent struct {
	Kind string // "search", "search-result", "connect-to-me", "rev-connect-to-me", "chat", "password-request", "fatal-status", "advisory-status"
	From adc.SID
	Data any
}

// HandleModern feeds one decoded hub-context ADC message through the join
// state machine and the user table.
func (h *Hub) HandleModern(msg adc.Message, ownCID string) (replies []adc.Message, ev *ModernEvent) {
	switch msg.Cmd {
	case adc.CmdSUP:
		if h.State() == StateProtocol {
			sup := adc.Message{Kind: adc.KindHub, Cmd: adc.CmdSUP,
				Params: adc.Params{{Name: "AD", Value: "ADBASE"}, {Name: "AD", Value: "ADTIGR"}}}
			replies = append(replies, sup)
		}

	case adc.CmdSID:
		// ISID carries the assigned session id as a bare argument, decoded
		// by ParseHub straight into msg.From (there is no sender yet).
		h.SetOwnSID(msg.From)
		h.setState(StateIdentify)
		replies = append(replies, h.buildInfMessage(msg.From, ownCID))

	case adc.CmdGPA:
		h.setState(StateVerify)
		if h.Password != "" {
			replies = append(replies, buildPAS(h.Password, msg.Bare))
		} else {
			ev = &ModernEvent{Kind: "password-request", From: msg.From, Data: msg.Bare}
		}

	case adc.CmdSTA:
		// STA 2xx is fatal (the hub is terminating the session, e.g. a bad
		// password); 1xx is advisory only. Either way this never advances
		// the join state machine — StateNormal is only reached once our own
		// self-INF is echoed back (see CmdINF below).
		if code, ok := msg.Params.Get("CO"); ok && len(code) > 0 {
			switch code[0] {
			case '2':
				ev = &ModernEvent{Kind: "fatal-status", From: msg.From, Data: code}
			case '1':
				ev = &ModernEvent{Kind: "advisory-status", From: msg.From, Data: code}
			}
		}

	case adc.CmdINF:
		h.applyINF(msg)
		if msg.From == h.OwnSID() {
			h.setState(StateNormal)
		}

	case adc.CmdQUI:
		if sidStr, ok := msg.Params.Get("ID"); ok {
			sid, err := adc.ParseSID(sidStr)
			if err == nil {
				if u, found := h.Users.GetBySID(sid); found {
					h.Users.Remove(u.Nick)
				}
			}
		}

	case adc.CmdSCH:
		ev = &ModernEvent{Kind: "search", From: msg.From, Data: msg.Params}

	case adc.CmdRES:
		ev = &ModernEvent{Kind: "search-result", From: msg.From, Data: msg.Params}

	case adc.CmdCTM:
		ev = &ModernEvent{Kind: "connect-to-me", From: msg.From, Data: msg.Params}

	case adc.CmdRCM:
		ev = &ModernEvent{Kind: "rev-connect-to-me", From: msg.From, Data: msg.Params}

	case adc.CmdMSG:
		ev = &ModernEvent{Kind: "chat", From: msg.From, Data: msg.Params}
	}

	return replies, ev
}

func (h *Hub) applyINF(msg adc.Message) {
	u, existed := h.Users.GetBySID(msg.From)
	if !existed {
		u = &User{SID: msg.From}
	}
	if nick, ok := msg.Params.Get("NI"); ok {
		u.Nick = nick
	}
	if desc, ok := msg.Params.Get("DE"); ok {
		u.Description = desc
	}
	if cid, ok := msg.Params.Get("ID"); ok {
		u.UID = DeriveUID(h.ID, []byte(cid))
	}
	u.ShareSize = msg.Params.GetInt64("SS")
	u.Slots = int(msg.Params.GetInt64("SL"))
	if ip, ok := msg.Params.Get("I4"); ok {
		u.IP4 = ip
	}
	u.HasInfo = true
	h.Users.Put(u)
}

// buildPAS answers a GPA challenge: PAS = base32(Tiger(password ++ salt)),
// salt being the base32-encoded bare argument the hub sent with GPA
// (§4.5's Verify phase).
func buildPAS(password, saltB32 string) adc.Message {
	salt, err := b32.DecodeString(saltB32)
	if err != nil {
		salt = nil
	}
	sum := tth.Sum192(append([]byte(password), salt...))
	return adc.Message{Kind: adc.KindHub, Cmd: adc.CmdPAS, Bare: b32.EncodeToString(sum[:])}
}

// buildInfMessage renders our own self-INF broadcast once a SID is
// assigned: the modern-dialect equivalent of legacy's $MyINFO.
func (h *Hub) buildInfMessage(sid adc.SID, ownCID string) adc.Message {
	return adc.Message{
		Kind: adc.KindBroadcast,
		Cmd:  adc.CmdINF,
		From: sid,
		Params: adc.Params{
			{Name: "ID", Value: ownCID},
			{Name: "NI", Value: h.OwnNick},
		},
	}
}

// BuildINF renders the periodic own-info re-broadcast once joined, used
// whenever ShouldBroadcast reports true.
func (h *Hub) BuildINF(ownCID, description string, slots int, share int64) adc.Message {
	return adc.Message{
		Kind: adc.KindBroadcast,
		Cmd:  adc.CmdINF,
		From: h.OwnSID(),
		Params: adc.Params{
			{Name: "ID", Value: ownCID},
			{Name: "NI", Value: h.OwnNick},
			{Name: "DE", Value: description},
			{Name: "SS", Value: strconv.FormatInt(share, 10)},
			{Name: "SL", Value: strconv.Itoa(slots)},
		},
	}
}
