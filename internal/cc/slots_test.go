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

package cc_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/ncdc/internal/cc"
)

func TestSlots(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CC Slot Policy Suite")
}

var _ = Describe("NeedsFullSlot", func() {
	It("always mini-slots the root file list regardless of size", func() {
		Expect(cc.NeedsFullSlot(true, 10*1024*1024)).To(BeFalse())
	})

	It("requires a full slot when the size is unknown", func() {
		Expect(cc.NeedsFullSlot(false, -1)).To(BeTrue())
	})

	It("mini-slots requests strictly below the threshold", func() {
		Expect(cc.NeedsFullSlot(false, cc.MinislotSize-1)).To(BeFalse())
		Expect(cc.NeedsFullSlot(false, cc.MinislotSize)).To(BeTrue())
	})
})

var _ = Describe("SlotPolicy", func() {
	var p *cc.SlotPolicy

	BeforeEach(func() {
		p = cc.NewSlotPolicy(1, 1)
	})

	It("grants a full slot while one is free", func() {
		ok, mini := p.RequestSlot("alice", true, false)
		Expect(ok).To(BeTrue())
		Expect(mini).To(BeFalse())
		Expect(p.UsedSlots()).To(Equal(1))
	})

	It("returns the same grant on a repeat request from the same key", func() {
		p.RequestSlot("alice", true, false)
		ok, mini := p.RequestSlot("alice", true, false)
		Expect(ok).To(BeTrue())
		Expect(mini).To(BeFalse())
		Expect(p.UsedSlots()).To(Equal(1))
	})

	It("falls back to a mini-slot once full slots are exhausted", func() {
		p.RequestSlot("alice", true, false)
		ok, mini := p.RequestSlot("bob", false, false)
		Expect(ok).To(BeTrue())
		Expect(mini).To(BeTrue())
		Expect(p.UsedMinislots()).To(Equal(1))
	})

	It("lets an op through on mini-slot overflow for a non-full request", func() {
		p.RequestSlot("alice", true, false)
		p.RequestSlot("bob", false, false) // exhausts the single minislot
		ok, mini := p.RequestSlot("carol", false, true)
		Expect(ok).To(BeTrue())
		Expect(mini).To(BeFalse())
	})

	It("denies a non-op request once every slot and mini-slot is exhausted", func() {
		p.RequestSlot("alice", true, false)
		p.RequestSlot("bob", false, false)
		ok, _ := p.RequestSlot("dave", false, false)
		Expect(ok).To(BeFalse())
	})

	It("frees a slot on release so a new request can be granted", func() {
		p.RequestSlot("alice", true, false)
		p.Release("alice")
		Expect(p.UsedSlots()).To(Equal(0))

		ok, _ := p.RequestSlot("bob", true, false)
		Expect(ok).To(BeTrue())
	})
})
