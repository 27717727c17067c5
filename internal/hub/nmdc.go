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
	"fmt"

	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/protocol/nmdc"
)

// LegacyEvent is a decoded legacy-dialect frame handed up to the caller for
// the bits that need access to the share index, download queue or the
// active-mode listener's own IP/port — state this package deliberately
// doesn't own (§3 Ownership).
type LegacyEvent struct {
	Kind string // "search", "search-result", "connect-to-me", "rev-connect-to-me", "chat", "pm", "force-move", "nick-taken", "password-request"
	Nick string
	Data any
}

// HandleLegacy feeds one unescaped legacy frame through the join state
// machine and the user table, returning any reply frames to send and any
// event the caller must act on.
func (h *Hub) HandleLegacy(raw string, nick, password string, hubEncode func(string) string) (replies []string, ev *LegacyEvent) {
	msg := nmdc.Parse(raw)

	switch msg.Cmd {
	case "Lock":
		lock := nmdc.ParseLock(msg.Arg)
		key := nmdc.LockToKey([]byte(lock.Lock))
		replies = append(replies,
			nmdc.Encode("Supports", "NoGetINFO NoHello UserIP2 TTHSearch ADCGet"),
			nmdc.Encode("Key", string(key)),
			nmdc.Encode("ValidateNick", nick),
		)
		h.setState(StateIdentify)

	case "HubName":
		h.Name = msg.Arg

	case "GetPass":
		h.setState(StateVerify)
		if password != "" {
			replies = append(replies, nmdc.Encode("MyPass", password))
		} else {
			ev = &LegacyEvent{Kind: "password-request"}
		}

	case "BadPass":
		if h.log != nil {
			h.log.Warn("hub rejected password", nclog.Fields{"hub": h.Name})
		}

	case "Hello":
		h.setState(StateNormal)
		replies = append(replies, nmdc.Encode("Version", "1,0091"), nmdc.Encode("GetNickList", ""))

	case "ValidateDenide":
		ev = &LegacyEvent{Kind: "nick-taken"}

	case "Quit":
		h.Users.Remove(msg.Arg)

	case "MyINFO":
		info, err := nmdc.ParseMyINFO(msg.Arg)
		if err == nil {
			h.applyMyINFO(info)
		}

	case "Search":
		s, err := nmdc.ParseSearch(msg.Arg)
		if err == nil {
			ev = &LegacyEvent{Kind: "search", Data: s}
		}

	case "SR":
		sr, err := nmdc.ParseSearchResult(msg.Arg)
		if err == nil {
			ev = &LegacyEvent{Kind: "search-result", Data: sr}
		}

	case "ConnectToMe":
		ev = &LegacyEvent{Kind: "connect-to-me", Data: msg.Arg}

	case "RevConnectToMe":
		ev = &LegacyEvent{Kind: "rev-connect-to-me", Data: msg.Arg}

	case "To":
		ev = &LegacyEvent{Kind: "pm", Data: msg.Arg}

	case "ForceMove":
		ev = &LegacyEvent{Kind: "force-move", Data: msg.Arg}

	case "":
		if msg.Raw != "" {
			ev = &LegacyEvent{Kind: "chat", Data: msg.Raw}
		}
	}

	return replies, ev
}

func (h *Hub) applyMyINFO(info nmdc.MyINFO) {
	u, existed := h.Users.Get(info.Nick)
	if !existed {
		u = &User{Nick: info.Nick}
		u.UID = DeriveUID(h.ID, []byte(info.Nick))
	}
	u.Description = info.Description
	u.Tag = info.Tag
	u.Connection = info.Connection
	u.Mail = info.Mail
	u.ShareSize = info.ShareSize
	u.HasInfo = true
	h.Users.Put(u)
}

// BuildMyINFO renders the own-info broadcast frame for the current
// snapshot, for the caller to send whenever ShouldBroadcast reports true.
func (h *Hub) BuildMyINFO(description, connection, mail string, slots int, share int64) string {
	flag := byte('1')
	return nmdc.Encode("MyINFO", nmdc.EncodeMyINFO(nmdc.MyINFO{
		Nick:        h.OwnNick,
		Description: description,
		Connection:  connection,
		Flag:        flag,
		Mail:        mail,
		ShareSize:   share,
	}))
}

// BuildSearch renders a $Search frame for dispatch against this hub.
func BuildSearch(s nmdc.Search) string {
	return nmdc.Encode("Search", nmdc.EncodeSearch(s))
}

// BuildConnectToMe renders a $ConnectToMe frame aimed at target, advertising
// our own ip:port for an active-mode inbound connection.
func BuildConnectToMe(target, ip string, port int) string {
	return nmdc.Encode("ConnectToMe", fmt.Sprintf("%s %s:%d", target, ip, port))
}

// BuildRevConnectToMe renders a $RevConnectToMe frame, used when we're
// passive and ask target to connect to us instead.
func BuildRevConnectToMe(ourNick, target string) string {
	return nmdc.Encode("RevConnectToMe", ourNick+" "+target)
}
