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

package cc

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/netconn"
)

// State is one node of the CC session state machine (§4.6).
type State int

const (
	StateConn State = iota
	StateHandshake
	StateIdle
	StateUpload
	StateDownload
	StateDisconnect
)

func (s State) String() string {
	switch s {
	case StateConn:
		return "conn"
	case StateHandshake:
		return "handshake"
	case StateIdle:
		return "idle"
	case StateUpload:
		return "upload"
	case StateDownload:
		return "download"
	case StateDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

// DisconnectGrace is the window between the Disconnect state and object
// destruction (§4.6).
const DisconnectGrace = 30 * time.Second

// Dialect distinguishes the legacy/modern handshake the session negotiated.
type Dialect int

const (
	DialectLegacy Dialect = iota
	DialectModern
)

// Request is a decoded ADCGET/$ADCGET upload request.
type Request struct {
	Type  string // "file", "tthl", "list"
	ID    string
	Start int64
	Bytes int64
}

// kind classifies the ADCGET error codes of §4.6.
const (
	ErrProtocol     = 40
	ErrInternal     = 50
	ErrFileNotAvail = 51
	ErrPartNotAvail = 52
	ErrNoSlots      = 53
)

// Session is one CC (client-to-client) transfer connection.
type Session struct {
	net     *netconn.Endpoint
	dialect Dialect
	state   atomic.Int32

	incoming bool // accepted on the listener, hub determined by handshake
	peerKey  SlotKey
	hubName  string

	slotGranted bool
	slotMini    bool

	// recvLeft/fileLeft are the atomic progress counters workers update,
	// read by the idle/keepalive "activity" definition (§4.4) and by UI
	// surfaces; per §5 these are the only cross-thread-safe progress field.
	recvLeft atomic.Int64
	fileLeft atomic.Int64

	disconnectedAt atomic.Int64 // unix nanos, 0 = not yet disconnected

	log    nclog.Logger
	slots  *SlotPolicy
}

// New creates a CC session wrapping an established Net endpoint.
func New(ep *netconn.Endpoint, dialect Dialect, incoming bool, slots *SlotPolicy, log nclog.Logger) *Session {
	s := &Session{net: ep, dialect: dialect, incoming: incoming, slots: slots, log: log}
	s.state.Store(int32(StateConn))
	return s
}

// Net exposes the underlying endpoint for the protocol-level read/write loop.
func (s *Session) Net() *netconn.Endpoint { return s.net }

// Incoming reports whether this session was accepted on the listener
// (true) or dialed out by us (false).
func (s *Session) Incoming() bool { return s.incoming }

// State returns the current state atomically.
func (s *Session) State() State { return State(s.state.Load()) }

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
	if s.log != nil {
		s.log.Debug("cc state transition", nclog.Fields{"state": st.String()})
	}
}

// EnterHandshake transitions Conn -> Handshake once the TCP connect (or
// accept) completes.
func (s *Session) EnterHandshake() {
	s.setState(StateHandshake)
}

// HandshakeDone transitions Handshake -> Idle once the nick/CID exchange
// and slot-capable $Supports/CSUP negotiation complete.
func (s *Session) HandshakeDone(peerKey SlotKey, hubName string) {
	s.peerKey = peerKey
	s.hubName = hubName
	s.setState(StateIdle)
}

// BeginUpload/BeginDownload/EndTransfer move between Idle and an active
// transfer direction.
func (s *Session) BeginUpload()   { s.setState(StateUpload) }
func (s *Session) BeginDownload() { s.setState(StateDownload) }
func (s *Session) EndTransfer()   { s.setState(StateIdle) }

// Disconnect tears down the net endpoint, releases any granted slot, and
// enters the terminal Disconnect state with its 30-second destruction
// grace.
func (s *Session) Disconnect() {
	if s.slotGranted && s.slots != nil {
		s.slots.Release(s.peerKey)
		s.slotGranted = false
	}
	s.net.Disconnect()
	s.setState(StateDisconnect)
	s.disconnectedAt.Store(time.Now().UnixNano())
}

// ReadyForDestruction reports whether the post-disconnect grace has
// elapsed.
func (s *Session) ReadyForDestruction() bool {
	at := s.disconnectedAt.Load()
	if at == 0 {
		return false
	}
	return time.Since(time.Unix(0, at)) >= DisconnectGrace
}

// SetRecvLeft/SetFileLeft update the atomic progress counters a worker
// thread reports back without synchronising with the event loop (§5).
func (s *Session) SetRecvLeft(n int64) { s.recvLeft.Store(n) }
func (s *Session) SetFileLeft(n int64) { s.fileLeft.Store(n) }
func (s *Session) RecvLeft() int64     { return s.recvLeft.Load() }
func (s *Session) FileLeft() int64     { return s.fileLeft.Load() }

// InTransfer reports whether this session currently counts toward slot
// occupancy: nonzero file_left, mirroring the original's u_len/f_len
// tracking (SPEC_FULL §C).
func (s *Session) InTransfer() bool { return s.fileLeft.Load() > 0 }

// ParseRequestID classifies an ADCGET/$ADCGET id field per the table in
// §4.6: a TTH reference, a virtual path, or the literal file-list name.
func ParseRequestID(id string) (isTTH bool, tthStr string, isList bool, isDir bool) {
	if strings.HasPrefix(id, "TTH/") {
		return true, strings.TrimPrefix(id, "TTH/"), false, false
	}
	if id == "files.xml.bz2" {
		return false, "", true, false
	}
	if strings.HasSuffix(id, "/") {
		return false, "", false, true
	}
	return false, "", false, false
}

// ClassifyRequest validates a Request against the type/id-form table of
// §4.6, returning a protocol error code when it's malformed.
func ClassifyRequest(r Request) (code int, ok bool) {
	switch r.Type {
	case "file":
		return 0, true
	case "tthl":
		isTTH, _, _, _ := ParseRequestID(r.ID)
		if !isTTH || r.Start != 0 || r.Bytes != -1 {
			return ErrProtocol, false
		}
		return 0, true
	case "list":
		_, _, _, isDir := ParseRequestID(r.ID)
		if !isDir || r.Start != 0 || r.Bytes != -1 {
			return ErrProtocol, false
		}
		return 0, true
	default:
		return ErrProtocol, false
	}
}
