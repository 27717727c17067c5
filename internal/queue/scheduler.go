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

package queue

import "github.com/nabbar/ncdc/internal/tth"

// Pick is one scheduling decision: start (or continue) a download of item
// from source uid.
type Pick struct {
	Item *DLItem
	UID  string
}

// Tick walks DLItems in priority order (highest first) and, for each
// eligible item not already at its active-slot budget, picks one online,
// non-errored source — never fanning a single item out to all of its
// sources in one pass, matching the original's single-source-per-pass
// scheduling (SPEC_FULL §C). active lists TTH roots already occupying a
// download slot this pass, so Tick does not repick them.
func (q *Queue) Tick(maxSlots int, active map[tth.Root]bool) []Pick {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]*DLItem, 0, len(q.items))
	for _, it := range q.items {
		items = append(items, it)
	}
	sortByPriorityDesc(items)

	var picks []Pick
	used := len(active)
	for _, it := range items {
		if used >= maxSlots {
			break
		}
		if active[it.TTH] {
			continue
		}
		if it.Priority == PriorityOff || it.Priority == PriorityErr {
			continue
		}
		uid, ok := pickSource(it)
		if !ok {
			continue
		}
		picks = append(picks, Pick{Item: it, UID: uid})
		used++
	}
	return picks
}

func pickSource(it *DLItem) (string, bool) {
	for uid, u := range it.Users {
		if u.online && !u.inError {
			return uid, true
		}
	}
	return "", false
}

// sortByPriorityDesc is an insertion sort: queues are expected to stay
// small (tens to low hundreds of items), matching §8's size budget note
// for the download queue component.
func sortByPriorityDesc(items []*DLItem) {
	for i := 1; i < len(items); i++ {
		j := i
		for j > 0 && items[j-1].Priority < items[j].Priority {
			items[j-1], items[j] = items[j], items[j-1]
			j--
		}
	}
}
