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

package share

import (
	"os"
	"sync/atomic"

	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/tth"
)

// hashJob is one file queued for background hashing.
type hashJob struct {
	node *Node
	path string
	gen  int64
}

// Result is delivered back to the event loop via idle-callback injection
// (§5) on completion of one hash job.
type Result struct {
	Node  *Node
	Root  tth.Root
	Blob  []byte
	Error error
}

// Hasher is the single background FIFO hasher of §4.9. Cancellation is
// cooperative: Reset() bumps a generation counter the worker checks between
// chunks; a job started under a stale generation discards its result.
type Hasher struct {
	queue   chan hashJob
	gen     atomic.Int64
	log     nclog.Logger
	results chan Result
}

// NewHasher creates a Hasher with the given job backlog capacity and starts
// its single worker goroutine.
func NewHasher(log nclog.Logger, backlog int, results chan Result) *Hasher {
	h := &Hasher{
		queue:   make(chan hashJob, backlog),
		log:     log,
		results: results,
	}
	go h.run()
	return h
}

// Enqueue schedules node (backed by the file at path) for hashing.
func (h *Hasher) Enqueue(node *Node, path string) {
	h.queue <- hashJob{node: node, path: path, gen: h.gen.Load()}
}

// Reset increments the cancellation generation, aborting whatever job is
// currently in flight at its next chunk boundary.
func (h *Hasher) Reset() {
	h.gen.Add(1)
}

func (h *Hasher) run() {
	for job := range h.queue {
		res := h.hashOne(job)
		if res != nil {
			h.results <- *res
		}
	}
}

// hashOne hashes one file, checking the generation counter between chunks
// so a Reset aborts cleanly within one buffer's delay (§5). Returns nil if
// the job was cancelled before producing a usable result.
func (h *Hasher) hashOne(job hashJob) *Result {
	f, err := os.Open(job.path)
	if err != nil {
		return &Result{Node: job.node, Error: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return &Result{Node: job.node, Error: err}
	}
	expected := info.Size()

	leaf := tth.ChooseLeafSize(expected)
	tree := tth.NewTree(leaf)

	buf := make([]byte, 256*1024)
	var total int64
	for {
		if h.gen.Load() != job.gen {
			if h.log != nil {
				h.log.Debug("hash job cancelled", nclog.Fields{"path": job.path})
			}
			return nil
		}
		n, err := f.Read(buf)
		if n > 0 {
			_, _ = tree.Write(buf[:n])
			total += int64(n)
		}
		if err != nil {
			break
		}
	}

	if total != expected {
		// file changed size under the hasher: discard, per §4.9.
		return nil
	}

	root, blob := tree.Final()
	return &Result{Node: job.node, Root: root, Blob: blob}
}
