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

package queue_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/queue"
	"github.com/nabbar/ncdc/internal/tth"
)

func TestQueue(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Download Queue Suite")
}

var root = tth.Root{0x01, 0x02, 0x03}

var _ = Describe("Queue", func() {
	var q *queue.Queue

	BeforeEach(func() {
		q = queue.New(nclog.New(nclog.Fields{"component": "queue_test"}))
	})

	It("enqueues an item with its initial sources", func() {
		item := q.Enqueue(root, 4096, "/tmp/dest", []string{"alice", "bob"})
		Expect(item.Priority).To(Equal(queue.PriorityNormal))
		Expect(item.Users).To(HaveLen(2))
		Expect(q.Len()).To(Equal(1))
	})

	It("reprioritises an item", func() {
		q.Enqueue(root, 4096, "/tmp/dest", nil)
		q.SetPriority(root, queue.PriorityHigh)
		item, ok := q.Item(root)
		Expect(ok).To(BeTrue())
		Expect(item.Priority).To(Equal(queue.PriorityHigh))
	})

	It("parks an item as Err on invalid TTHL or hash failure", func() {
		q.Enqueue(root, 4096, "/tmp/dest", []string{"alice"})
		q.Failed(root, "alice", queue.ErrHash, "checksum mismatch")

		item, ok := q.Item(root)
		Expect(ok).To(BeTrue())
		Expect(item.Priority).To(Equal(queue.PriorityErr))
		Expect(item.ErrKind).To(Equal(queue.ErrHash))
		Expect(item.Users["alice"].ErrKind).To(Equal(queue.ErrHash))
	})

	It("removes a single source without dropping the item", func() {
		q.Enqueue(root, 4096, "/tmp/dest", []string{"alice", "bob"})
		q.RemoveUser("bob", root, false)

		item, ok := q.Item(root)
		Expect(ok).To(BeTrue())
		Expect(item.Users).To(HaveKey("alice"))
		Expect(item.Users).ToNot(HaveKey("bob"))
	})

	It("removes an item entirely on completion", func() {
		q.Enqueue(root, 4096, "/tmp/dest", []string{"alice"})
		q.Completed(root, "alice")
		Expect(q.Len()).To(Equal(0))
	})

	It("tracks verified blocks against the tthl-derived block count", func() {
		item := q.Enqueue(root, int64(4*tth.Size), "/tmp/dest", nil)
		item.LeafBlob = make([]byte, 4*tth.Size)

		Expect(item.NumBlocks()).To(Equal(uint(4)))
		Expect(item.NextUnverified()).To(Equal(uint(0)))

		item.MarkVerified(0)
		item.MarkVerified(1)
		Expect(item.IsVerified(1)).To(BeTrue())
		Expect(item.NextUnverified()).To(Equal(uint(2)))
	})
})
