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

// Package cc implements the client-to-client transfer session of spec §4.6:
// the Conn/Handshake/Idle/Upload|Download/Disconnect state machine, the
// upload slot policy, and ADCGET/ADCSND request handling.
package cc

import "sync"

// MinislotSize is the smallest configurable threshold under which a file
// request is eligible for a mini-slot (§4.6: "at least 64 KiB").
const MinislotSize = 64 * 1024

// SlotKey identifies a granted slot's owner: the peer's hub-specific name
// (legacy) or CID (modern). Slots are process-lifetime only (§4.6).
type SlotKey string

// SlotPolicy tracks process-wide upload slot and mini-slot accounting.
type SlotPolicy struct {
	mu sync.Mutex

	slots     int
	minislots int

	granted     map[SlotKey]bool
	grantedMini map[SlotKey]bool
}

// NewSlotPolicy creates a policy with the configured slot/mini-slot counts.
func NewSlotPolicy(slots, minislots int) *SlotPolicy {
	return &SlotPolicy{
		slots:       slots,
		minislots:   minislots,
		granted:     make(map[SlotKey]bool),
		grantedMini: make(map[SlotKey]bool),
	}
}

// RequestSlot implements the slot decision table of §4.6, in the original's
// precedence order (SPEC_FULL §C): already granted, full slot available,
// mini-slot available (non-full requests only), op overflow, else deny.
func (p *SlotPolicy) RequestSlot(key SlotKey, needFull, isOp bool) (ok, mini bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.granted[key] {
		return true, false
	}
	if p.grantedMini[key] {
		return true, true
	}

	if len(p.granted) < p.slots {
		p.granted[key] = true
		return true, false
	}
	if !needFull && len(p.grantedMini) < p.minislots {
		p.grantedMini[key] = true
		return true, true
	}
	if !needFull && isOp {
		p.granted[key] = true
		return true, false
	}
	return false, false
}

// Release frees a previously granted slot when its CC session ends.
func (p *SlotPolicy) Release(key SlotKey) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.granted, key)
	delete(p.grantedMini, key)
}

// UsedSlots and UsedMinislots report current occupancy, for UI/status
// surfaces.
func (p *SlotPolicy) UsedSlots() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.granted)
}

func (p *SlotPolicy) UsedMinislots() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.grantedMini)
}

// NeedsFullSlot reports whether a request of size bytes (−1 = unknown, e.g.
// tthl) requires a full slot rather than qualifying for a mini-slot. The
// files.xml.bz2 root list always qualifies for a mini-slot regardless of
// size (§4.6).
func NeedsFullSlot(isRootFileList bool, size int64) bool {
	if isRootFileList {
		return false
	}
	if size < 0 {
		return true
	}
	return size >= MinislotSize
}
