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

package hub_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/ncdc/internal/expect"
	"github.com/nabbar/ncdc/internal/hub"
	"github.com/nabbar/ncdc/internal/nclog"
)

func TestHub(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Hub Session Suite")
}

func newHub(dialect hub.Dialect) *hub.Hub {
	log := nclog.New(nclog.Fields{"component": "hub_test"})
	return hub.New(1, "testhub", dialect, log, expect.New(log))
}

var _ = Describe("User Table", func() {
	It("maintains a running share-size total as users are added and removed", func() {
		tbl := hub.NewTable()
		tbl.Put(&hub.User{Nick: "alice", ShareSize: 100})
		tbl.Put(&hub.User{Nick: "bob", ShareSize: 200})
		Expect(tbl.ShareTotal()).To(Equal(int64(300)))

		tbl.Remove("alice")
		Expect(tbl.ShareTotal()).To(Equal(int64(200)))
		Expect(tbl.Len()).To(Equal(1))
	})

	It("replaces a user's share contribution on re-Put rather than double counting", func() {
		tbl := hub.NewTable()
		tbl.Put(&hub.User{Nick: "alice", ShareSize: 100})
		tbl.Put(&hub.User{Nick: "alice", ShareSize: 150})
		Expect(tbl.ShareTotal()).To(Equal(int64(150)))
	})

	It("derives the same UID for the same hub and key", func() {
		a := hub.DeriveUID(7, []byte("alice"))
		b := hub.DeriveUID(7, []byte("alice"))
		c := hub.DeriveUID(7, []byte("bob"))
		Expect(a).To(Equal(b))
		Expect(a).ToNot(Equal(c))
	})
})

var _ = Describe("Hub state machine", func() {
	It("starts a new session in the protocol state", func() {
		h := newHub(hub.DialectModern)
		Expect(h.State()).To(Equal(hub.StateProtocol))
	})

	It("reports a broadcast as needed the first time regardless of values", func() {
		h := newHub(hub.DialectLegacy)
		Expect(h.ShouldBroadcast("desc", "conn", "mail@example.com", 3, 1024, "1.2.3.4")).To(BeTrue())
	})

	It("suppresses a repeat broadcast when nothing has changed", func() {
		h := newHub(hub.DialectLegacy)
		h.ShouldBroadcast("desc", "conn", "mail@example.com", 3, 1024, "1.2.3.4")
		Expect(h.ShouldBroadcast("desc", "conn", "mail@example.com", 3, 1024, "1.2.3.4")).To(BeFalse())
	})

	It("requires a fresh broadcast once the share size changes", func() {
		h := newHub(hub.DialectLegacy)
		h.ShouldBroadcast("desc", "conn", "mail@example.com", 3, 1024, "1.2.3.4")
		Expect(h.ShouldBroadcast("desc", "conn", "mail@example.com", 3, 2048, "1.2.3.4")).To(BeTrue())
	})
})
