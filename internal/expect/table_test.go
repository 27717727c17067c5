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

package expect_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/ncdc/internal/expect"
	"github.com/nabbar/ncdc/internal/nclog"
)

func TestExpect(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expect Table Suite")
}

var _ = Describe("Table", func() {
	var tbl *expect.Table

	BeforeEach(func() {
		tbl = expect.New(nclog.New(nclog.Fields{"component": "expect_test"}))
	})

	It("inserts an entry and mints a token", func() {
		e := tbl.Insert("hubA", "alice", "", false)
		Expect(e.Hub).To(Equal("hubA"))
		Expect(e.Token).ToNot(BeEmpty())
		Expect(tbl.Len()).To(Equal(1))
	})

	It("matches and removes the first entry satisfying the predicate", func() {
		tbl.Insert("hubA", "alice", "", false)
		tbl.Insert("hubA", "bob", "", true)

		match, ok := tbl.MatchAndRemove(func(e expect.Entry) bool { return e.Key == "bob" })
		Expect(ok).To(BeTrue())
		Expect(match.Key).To(Equal("bob"))
		Expect(tbl.Len()).To(Equal(1))

		_, ok = tbl.MatchAndRemove(func(e expect.Entry) bool { return e.Key == "bob" })
		Expect(ok).To(BeFalse())
	})

	It("removes every entry belonging to a closed hub", func() {
		tbl.Insert("hubA", "alice", "", false)
		tbl.Insert("hubB", "carol", "", false)

		tbl.RemoveHub("hubA")

		Expect(tbl.Len()).To(Equal(1))
		_, ok := tbl.MatchAndRemove(func(e expect.Entry) bool { return e.Hub == "hubA" })
		Expect(ok).To(BeFalse())
	})

	It("sweep leaves fresh entries untouched", func() {
		tbl.Insert("hubA", "alice", "", false)
		tbl.Sweep()
		Expect(tbl.Len()).To(Equal(1))
	})
})
