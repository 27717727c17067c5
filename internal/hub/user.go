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

// Package hub implements the Hub session of spec §4.5: the dual legacy/
// modern state machines, the per-hub user table, and the share-size/
// INF-change-detection invariants of §3.
package hub

import (
	"sync"

	"github.com/nabbar/ncdc/internal/protocol/adc"
	"github.com/nabbar/ncdc/internal/tth"
)

// UID is a 64-bit user identifier, derived per §3: Tiger(HubId‖CID) on
// modern dialect, Tiger(HubId‖hub-encoded nick) on legacy.
type UID uint64

// User is one HubUser (§3).
type User struct {
	UID         UID
	HubNick     string // hub-encoded bytes, legacy dialect
	Nick        string // UTF-8
	Description string
	Mail        string
	Connection  string
	Tag         string
	ShareSize   int64
	Slots       int
	IP4         string
	UDPPort     int
	SID         adc.SID // modern dialect only

	Op           bool
	Active       bool
	SupportsUDP4 bool
	Joined       bool
	HasInfo      bool
}

// snapshot captures the fields whose change triggers an INF re-broadcast,
// per §4.5's "last broadcast snapshot".
type snapshot struct {
	description, connection, mail string
	slots                         int
	hNorm, hReg, hOp              int
	share                         int64
	ip4                           string
}

func takeSnapshot(u *User, hNorm, hReg, hOp int) snapshot {
	return snapshot{
		description: u.Description,
		connection:  u.Connection,
		mail:        u.Mail,
		slots:       u.Slots,
		hNorm:       hNorm,
		hReg:        hReg,
		hOp:         hOp,
		share:       u.ShareSize,
		ip4:         u.IP4,
	}
}

// infoChanged reports whether cur differs from prev. A nil prev (no
// previous snapshot yet) always differs, matching the original's
// suppression of the very first broadcast comparison (SPEC_FULL §C).
func infoChanged(prev *snapshot, cur snapshot) bool {
	if prev == nil {
		return true
	}
	return *prev != cur
}

// Table is the per-hub user table, keyed both by hub-local name and by
// session ID (modern dialect), kept in agreement per §3's invariant.
type Table struct {
	mu       sync.RWMutex
	byName   map[string]*User
	bySID    map[adc.SID]*User
	shareTot int64
}

// NewTable creates an empty user table.
func NewTable() *Table {
	return &Table{byName: map[string]*User{}, bySID: map[adc.SID]*User{}}
}

// Put inserts or updates a user, adjusting the running share-size total by
// delta (§3's incremental-maintenance invariant).
func (t *Table) Put(u *User) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if old, ok := t.byName[u.Nick]; ok {
		t.shareTot -= old.ShareSize
	}
	t.shareTot += u.ShareSize

	t.byName[u.Nick] = u
	if u.SID != (adc.SID{}) {
		t.bySID[u.SID] = u
	}
}

// Remove deletes a user by nick (QUIT / hub disconnect), per §3.
func (t *Table) Remove(nick string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if u, ok := t.byName[nick]; ok {
		t.shareTot -= u.ShareSize
		delete(t.byName, nick)
		delete(t.bySID, u.SID)
	}
}

// Get looks up a user by hub-local nick.
func (t *Table) Get(nick string) (*User, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	u, ok := t.byName[nick]
	return u, ok
}

// GetBySID looks up a user by modern-dialect session ID.
func (t *Table) GetBySID(sid adc.SID) (*User, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	u, ok := t.bySID[sid]
	return u, ok
}

// ShareTotal returns the running share-size total.
func (t *Table) ShareTotal() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.shareTot
}

// Counts returns the normal/registered/op user counts used in the
// broadcast snapshot's h_norm/h_reg/h_op fields.
func (t *Table) Counts() (norm, reg, op int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, u := range t.byName {
		switch {
		case u.Op:
			op++
		default:
			norm++
		}
	}
	return norm, reg, op
}

// Len reports the number of users in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byName)
}

// DeriveUID computes the 64-bit UID for a modern-dialect user from its CID,
// or a legacy-dialect user from its hub-encoded nick, per §3: Tiger-hashed
// and folded to 64 bits.
func DeriveUID(hubID uint64, key []byte) UID {
	buf := make([]byte, 8+len(key))
	for i := 0; i < 8; i++ {
		buf[i] = byte(hubID >> (56 - 8*i))
	}
	copy(buf[8:], key)
	sum := tth.Sum192(buf)
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(sum[i])
	}
	return UID(v)
}
