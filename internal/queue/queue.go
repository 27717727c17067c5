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

// Package queue implements the download queue of spec §4.10: DLItem/DLUser
// records, priority-driven scheduling, and the error taxonomy that parks an
// item on integrity failure.
package queue

import (
	"regexp"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/tth"
)

// Priority orders DLItems for scheduling (§4.10).
type Priority int

const (
	PriorityOff Priority = -100
	PriorityErr Priority = -99
	PriorityLow Priority = -2
	PriorityNormal Priority = 0
	PriorityHigh Priority = 2
)

// ErrorKind is the persisted error taxonomy of §4.10.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrInvTTHL
	ErrNoFile
	ErrIOIncomplete
	ErrIODest
	ErrHash
)

// DLUser is one candidate source for a DLItem.
type DLUser struct {
	TTH      tth.Root
	UID      string
	ErrKind  ErrorKind
	ErrMsg   string
	inError  bool
	online   bool
}

// DLItem is one queued download.
type DLItem struct {
	TTH         tth.Root
	Size        int64
	Destination string
	Priority    Priority
	ErrKind     ErrorKind
	ErrMsg      string
	LeafBlob    []byte // tthl, once fetched from a source

	Users map[string]*DLUser

	// verified tracks which TTH leaf blocks have already been hash
	// verified, so resumption can compute the next unverified offset in
	// O(1) instead of rescanning the file (SPEC_FULL §B).
	verified *bitset.BitSet
	received int64
}

// NumBlocks returns the total leaf-block count for this item, once its
// leaf size is known (requires LeafBlob to have been fetched).
func (d *DLItem) NumBlocks() uint {
	if len(d.LeafBlob) == 0 {
		return 0
	}
	return uint(len(d.LeafBlob) / tth.Size)
}

// MarkVerified records that block n passed hash verification.
func (d *DLItem) MarkVerified(n uint) {
	if d.verified == nil {
		d.verified = bitset.New(d.NumBlocks())
	}
	d.verified.Set(n)
}

// IsVerified reports whether block n has already been verified.
func (d *DLItem) IsVerified(n uint) bool {
	if d.verified == nil {
		return false
	}
	return d.verified.Test(n)
}

// NextUnverified returns the index of the first unverified block, or the
// total block count if every block is verified (download complete).
func (d *DLItem) NextUnverified() uint {
	total := d.NumBlocks()
	if d.verified == nil {
		return 0
	}
	for i := uint(0); i < total; i++ {
		if !d.verified.Test(i) {
			return i
		}
	}
	return total
}

// Queue owns the DLItem/DLUser set (§4.10).
type Queue struct {
	mu    sync.Mutex
	items map[tth.Root]*DLItem
	log   nclog.Logger

	// ExcludeRegex filters candidate paths during file-list matching.
	ExcludeRegex *regexp.Regexp
}

// New creates an empty Queue.
func New(log nclog.Logger) *Queue {
	return &Queue{items: make(map[tth.Root]*DLItem), log: log}
}

// Enqueue adds a new DLItem, optionally seeded with initial sources.
func (q *Queue) Enqueue(root tth.Root, size int64, dest string, sources []string) *DLItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	item := &DLItem{TTH: root, Size: size, Destination: dest, Priority: PriorityNormal, Users: map[string]*DLUser{}}
	for _, uid := range sources {
		item.Users[uid] = &DLUser{TTH: root, UID: uid, online: true}
	}
	q.items[root] = item
	return item
}

// Remove deletes a DLItem and, transactionally (in-process, single-threaded
// event loop — see §5), all of its DLUsers.
func (q *Queue) Remove(root tth.Root) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.items, root)
}

// RemoveUser removes one source from the DLItem for root (allItems == true
// ignores root and removes the user from every item).
func (q *Queue) RemoveUser(uid string, root tth.Root, allItems bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !allItems {
		if it, ok := q.items[root]; ok {
			delete(it.Users, uid)
		}
		return
	}
	for _, it := range q.items {
		delete(it.Users, uid)
	}
}

// SetPriority reprioritises an item; Off parks it out of scheduling without
// clearing its error state.
func (q *Queue) SetPriority(root tth.Root, p Priority) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if it, ok := q.items[root]; ok {
		it.Priority = p
	}
}

// ReceivedBytes records n additional bytes received for (root, uid),
// called by a file-IO worker's completion callback (§5).
func (q *Queue) ReceivedBytes(root tth.Root, uid string, n int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if it, ok := q.items[root]; ok {
		it.received += n
	}
}

// Completed marks a DLItem fully received; callers rename the incomplete
// file to its destination before calling this (§4.10).
func (q *Queue) Completed(root tth.Root, uid string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.items, root)
}

// Failed records a per-source error. InvTTHL and Hash additionally park the
// whole DLItem as Err, requiring manual recovery (§4.10).
func (q *Queue) Failed(root tth.Root, uid string, kind ErrorKind, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	it, ok := q.items[root]
	if !ok {
		return
	}
	if u, ok := it.Users[uid]; ok {
		u.ErrKind = kind
		u.ErrMsg = msg
		u.inError = true
	}
	if kind == ErrInvTTHL || kind == ErrHash {
		it.Priority = PriorityErr
		it.ErrKind = kind
		it.ErrMsg = msg
	}
}

// SetUserOnline updates a source's online flag as the owning hub session's
// user table changes.
func (q *Queue) SetUserOnline(root tth.Root, uid string, online bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if it, ok := q.items[root]; ok {
		if u, ok := it.Users[uid]; ok {
			u.online = online
		}
	}
}

// AddSource records uid as an additional candidate source for an
// already-queued item, e.g. when a search result or MyINFO update reveals
// another peer holding root (§4.10). A no-op if root isn't queued or uid is
// already a known source.
func (q *Queue) AddSource(root tth.Root, uid string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	it, ok := q.items[root]
	if !ok {
		return
	}
	if _, exists := it.Users[uid]; exists {
		return
	}
	it.Users[uid] = &DLUser{TTH: root, UID: uid, online: true}
}

// Item returns the DLItem for root, if present.
func (q *Queue) Item(root tth.Root) (*DLItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	it, ok := q.items[root]
	return it, ok
}

// Len reports the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
