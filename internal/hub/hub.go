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
	"crypto/tls"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nabbar/ncdc/internal/expect"
	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/ncdcerr"
	"github.com/nabbar/ncdc/internal/netconn"
	"github.com/nabbar/ncdc/internal/protocol/adc"
	"github.com/nabbar/ncdc/internal/rate"
)

// Dialect selects which frame codec and handshake a Hub session speaks.
type Dialect int

const (
	DialectLegacy Dialect = iota
	DialectModern
)

// State is the hub session's own join progress. Modern dialect passes
// through every state in order. Legacy dialect moves to Identify on $Lock,
// to Verify on $GetPass (only when the hub asks for a password) and to
// Normal on $Hello. Only the modern dialect's state is held to the
// "only advances monotonically" invariant of §3 (see setState).
type State int32

const (
	StateProtocol State = iota
	StateIdentify
	StateVerify
	StateNormal
)

func (s State) String() string {
	switch s {
	case StateProtocol:
		return "protocol"
	case StateIdentify:
		return "identify"
	case StateVerify:
		return "verify"
	case StateNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// ReconnectDelay is the wait imposed before a non-user-initiated hub
// disconnect is retried (§4.5).
const ReconnectDelay = 30 * time.Second

// Hub is one hub session: connection state machine, user table, and the
// own-info broadcast snapshot used to suppress redundant re-announces.
type Hub struct {
	ID      uint64
	Name    string
	Addr    string
	Dialect Dialect

	net   *netconn.Endpoint
	state atomic.Int32

	OwnNick  string
	Password string
	ownSID   adc.SID
	ownUID   UID

	Users *Table

	lastSnapshot *snapshot

	disconnectedAt   atomic.Int64
	userInitiated    atomic.Bool
	reconnectEnabled atomic.Bool

	log    nclog.Logger
	expect *expect.Table
}

// New creates an unconnected Hub session.
func New(id uint64, name string, dialect Dialect, log nclog.Logger, exp *expect.Table) *Hub {
	h := &Hub{ID: id, Name: name, Dialect: dialect, Users: NewTable(), log: log, expect: exp}
	h.reconnectEnabled.Store(true)
	return h
}

// Connect dials addr and wraps the connection into the hub's Net endpoint,
// using '|' framing for legacy and '\n' framing for modern (§4.3).
func (h *Hub) Connect(addr string, useTLS bool, cert *tls.Certificate, keepalive bool, in, out *rate.Meter, global *rate.Global) ncdcerr.Error {
	h.Addr = addr
	conn, err := netconn.Dial("tcp", addr)
	if err != nil {
		return err
	}
	if useTLS {
		conn = netconn.WrapTLS(conn, false, cert, nil)
	}

	delim := byte('|')
	if h.Dialect == DialectModern {
		delim = '\n'
	}
	h.net = netconn.New(conn, delim, in, out, global, keepalive)
	h.state.Store(int32(StateProtocol))
	h.userInitiated.Store(false)
	return nil
}

// Net exposes the underlying endpoint for the event loop's recv/send pump.
func (h *Hub) Net() *netconn.Endpoint { return h.net }

// State returns the join-progress state atomically.
func (h *Hub) State() State { return State(h.state.Load()) }

// setState enforces the monotonic advance invariant on modern dialect;
// a legacy-dialect state is stored as given.
func (h *Hub) setState(s State) {
	if h.Dialect == DialectModern && s < h.State() {
		return
	}
	h.state.Store(int32(s))
	if h.log != nil {
		h.log.Debug("hub state transition", nclog.Fields{"hub": h.Name, "state": s.String()})
	}
}

// Disconnect tears down the connection. userInitiated suppresses the
// scheduler's automatic 30-second reconnect (§4.5).
func (h *Hub) Disconnect(userInitiated bool) {
	if h.net != nil {
		h.net.Disconnect()
	}
	h.expect.RemoveHub(h.Name)
	h.userInitiated.Store(userInitiated)
	h.disconnectedAt.Store(time.Now().UnixNano())
	h.setState(StateProtocol)
}

// ReconnectDue reports whether the automatic-reconnect delay has elapsed
// since a non-user-initiated disconnect.
func (h *Hub) ReconnectDue() bool {
	if h.userInitiated.Load() || !h.reconnectEnabled.Load() {
		return false
	}
	at := h.disconnectedAt.Load()
	if at == 0 {
		return false
	}
	return time.Since(time.Unix(0, at)) >= ReconnectDelay
}

// CancelReconnect stops any pending automatic reconnect, e.g. in response
// to a user /disconnect while the retry is still pending.
func (h *Hub) CancelReconnect() { h.reconnectEnabled.Store(false) }

// ownSnapshot builds the would-be broadcast snapshot from the given own
// share totals and the current user-count breakdown.
func (h *Hub) ownSnapshot(description, connection, mail string, slots int, share int64, ip4 string) snapshot {
	norm, reg, op := h.Users.Counts()
	return snapshot{
		description: description,
		connection:  connection,
		mail:        mail,
		slots:       slots,
		hNorm:       norm,
		hReg:        reg,
		hOp:         op,
		share:       share,
		ip4:         ip4,
	}
}

// ShouldBroadcast reports whether the own-info fields have changed enough
// to warrant a fresh MyINFO/INF broadcast, and records the new snapshot as
// current when they have (§4.5, §4.11's periodic re-broadcast tick).
func (h *Hub) ShouldBroadcast(description, connection, mail string, slots int, share int64, ip4 string) bool {
	cur := h.ownSnapshot(description, connection, mail, slots, share, ip4)
	if !infoChanged(h.lastSnapshot, cur) {
		return false
	}
	h.lastSnapshot = &cur
	return true
}

// SetOwnSID records the session ID the hub assigned us (modern dialect's
// "ISID" message).
func (h *Hub) SetOwnSID(sid adc.SID) { h.ownSID = sid }

// OwnSID returns our assigned session ID.
func (h *Hub) OwnSID() adc.SID { return h.ownSID }

// SetOwnUID records our derived 64-bit identity once CID (modern) or
// hub-encoded nick (legacy) is known.
func (h *Hub) SetOwnUID(u UID) { h.ownUID = u }

// OwnUID returns our derived identity.
func (h *Hub) OwnUID() UID { return h.ownUID }

// String identifies the hub for logging.
func (h *Hub) String() string { return fmt.Sprintf("%s (%s)", h.Name, h.Addr) }
