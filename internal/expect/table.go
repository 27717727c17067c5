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

// Package expect implements the connection-expectation table of spec §4.7:
// short-lived records asserting that an inbound CC connection from a given
// peer is anticipated, swept after a 300-second TTL.
package expect

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nabbar/ncdc/internal/nclog"
)

// TTL is how long an unmatched expectation survives before the sweep
// removes it.
const TTL = 300 * time.Second

// SweepInterval is the cadence of the periodic sweep (§4.7, §4.11).
const SweepInterval = 120 * time.Second

// Entry is one expectation record.
type Entry struct {
	Hub      string
	Key      string // nick (legacy) or token (modern)
	UserID   string // CID, when known ahead of time
	WantDL   bool
	Token    string
	Inserted time.Time
}

// Predicate reports whether a candidate inbound connection matches e.
type Predicate func(e Entry) bool

// Table is the ordered (oldest-first) expectation queue.
type Table struct {
	mu      sync.Mutex
	entries []Entry
	log     nclog.Logger
}

// New creates an empty Table.
func New(log nclog.Logger) *Table {
	return &Table{log: log}
}

// Insert stamps the current time, mints a fresh random token and appends
// a new expectation.
func (t *Table) Insert(hub, key, userID string, wantDL bool) Entry {
	e := Entry{
		Hub:      hub,
		Key:      key,
		UserID:   userID,
		WantDL:   wantDL,
		Token:    uuid.NewString(),
		Inserted: time.Now(),
	}
	t.mu.Lock()
	t.entries = append(t.entries, e)
	t.mu.Unlock()
	return e
}

// MatchAndRemove returns the first entry matching pred, removing it from
// the table. ok is false if nothing matched.
func (t *Table) MatchAndRemove(pred Predicate) (e Entry, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, cand := range t.entries {
		if pred(cand) {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return cand, true
		}
	}
	return Entry{}, false
}

// RemoveHub drops every expectation belonging to hub, called when a hub
// session closes.
func (t *Table) RemoveHub(hub string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.Hub != hub {
			kept = append(kept, e)
		}
	}
	t.entries = kept
}

// Sweep removes entries older than TTL, logging each as an unmatched
// expectation. Called from the scheduler's 120-second tick.
func (t *Table) Sweep() {
	now := time.Now()
	t.mu.Lock()
	kept := t.entries[:0]
	var expired []Entry
	for _, e := range t.entries {
		if now.Sub(e.Inserted) > TTL {
			expired = append(expired, e)
			continue
		}
		kept = append(kept, e)
	}
	t.entries = kept
	t.mu.Unlock()

	if t.log == nil {
		return
	}
	for _, e := range expired {
		t.log.Warn("expected connection from peer, received none", nclog.Fields{
			"key": e.Key, "hub": e.Hub,
		})
	}
}

// Len reports the current number of outstanding expectations.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
