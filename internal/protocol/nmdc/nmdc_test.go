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

package nmdc_test

import (
	"testing"

	"github.com/nabbar/ncdc/internal/protocol/nmdc"
)

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	cases := []string{"", "plain", "a$b|c&d", "only&amp;literal"}
	for _, s := range cases {
		if got := nmdc.Unescape(nmdc.Escape(s)); got != s {
			t.Errorf("round trip mismatch for %q: got %q", s, got)
		}
	}
}

func TestEscapeEncodesEachEntity(t *testing.T) {
	cases := map[string]string{
		"$": "&#36;",
		"|": "&#124;",
		"&": "&amp;",
	}
	for in, want := range cases {
		if got := nmdc.Escape(in); got != want {
			t.Errorf("Escape(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnescapeIgnoresUnknownEntity(t *testing.T) {
	if got := nmdc.Unescape("a&frob;b"); got != "a&frob;b" {
		t.Errorf("Unescape should pass through unrecognised entities, got %q", got)
	}
}

func TestParseChatLineHasEmptyCmd(t *testing.T) {
	msg := nmdc.Parse("hello there")
	if msg.Cmd != "" {
		t.Errorf("Cmd = %q, want empty for a chat line", msg.Cmd)
	}
}

func TestParseEncodeRoundTrip(t *testing.T) {
	raw := nmdc.Encode("MyNick", "alice")
	msg := nmdc.Parse(raw)
	if msg.Cmd != "MyNick" || msg.Arg != "alice" {
		t.Fatalf("got Cmd=%q Arg=%q", msg.Cmd, msg.Arg)
	}
}

func TestEncodeWithoutArgOmitsTrailingSpace(t *testing.T) {
	if got := nmdc.Encode("GetNickList", ""); got != "$GetNickList" {
		t.Errorf("Encode with empty arg = %q", got)
	}
}

func TestParseLockWithPublicKey(t *testing.T) {
	l := nmdc.ParseLock("EXTENDEDPROTOCOLABCDEFGHIJ Pk=ncdc0.1")
	if l.Lock != "EXTENDEDPROTOCOLABCDEFGHIJ" {
		t.Errorf("Lock = %q", l.Lock)
	}
	if l.Pk != "ncdc0.1" {
		t.Errorf("Pk = %q", l.Pk)
	}
}

func TestParseLockWithoutPublicKey(t *testing.T) {
	l := nmdc.ParseLock("JUSTALOCK")
	if l.Lock != "JUSTALOCK" || l.Pk != "" {
		t.Errorf("got Lock=%q Pk=%q", l.Lock, l.Pk)
	}
}

// TestLockToKeyIsDeterministic checks that the $Lock -> $Key byte transform
// gives the same non-empty key for two calls on the same fixed input; it
// does not compare against an expected key value.
func TestLockToKeyIsDeterministic(t *testing.T) {
	lock := []byte("EXTENDEDPROTOCOL_ncdc_NMDC_1_0_1")
	a := nmdc.LockToKey(lock)
	b := nmdc.LockToKey(lock)
	if string(a) != string(b) {
		t.Fatal("LockToKey is not deterministic for identical input")
	}
	if len(a) == 0 {
		t.Fatal("LockToKey returned empty key")
	}
}

func TestLockToKeyEscapesForbiddenBytes(t *testing.T) {
	key := nmdc.LockToKey([]byte("EXTENDEDPROTOCOL_ncdc_NMDC_1_0_1"))
	for _, b := range key {
		switch b {
		case 0, 5, 36, 96, 124, 126:
			t.Fatalf("unescaped forbidden byte %d in key %q", b, key)
		}
	}
}

func TestLockToKeyRejectsShortLock(t *testing.T) {
	if got := string(nmdc.LockToKey([]byte("ab"))); got != "STUPIDKEY!" {
		t.Errorf("LockToKey on a too-short lock = %q, want STUPIDKEY!", got)
	}
}

func TestMyINFORoundTrip(t *testing.T) {
	in := nmdc.MyINFO{
		Nick:        "alice",
		Description: "a desc",
		Tag:         "<ncdc V:0.1,M:P,H:1/0/0,S:1>",
		Connection:  "100",
		Flag:        0x01,
		Mail:        "a@example.com",
		ShareSize:   123456789,
	}
	arg := nmdc.EncodeMyINFO(in)
	out, err := nmdc.ParseMyINFO(arg)
	if err != nil {
		t.Fatalf("ParseMyINFO(%q): %v", arg, err)
	}
	if out != in {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", out, in)
	}
}

func TestParseMyINFORejectsMissingALLPrefix(t *testing.T) {
	if _, err := nmdc.ParseMyINFO("alice desc$ $100$mail$0$"); err == nil {
		t.Fatal("expected error for a MyINFO body missing the $ALL prefix")
	}
}

func TestSearchRoundTrip(t *testing.T) {
	in := nmdc.Search{
		Target:      "Hub:alice",
		SizeLimit:   'F',
		SizeAtLeast: true,
		Size:        0,
		Type:        1,
		Query:       "some file name",
	}
	arg := nmdc.EncodeSearch(in)
	out, err := nmdc.ParseSearch(arg)
	if err != nil {
		t.Fatalf("ParseSearch(%q): %v", arg, err)
	}
	if out != in {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", out, in)
	}
}

func TestParseSearchRejectsWrongFieldCount(t *testing.T) {
	if _, err := nmdc.ParseSearch("Hub:alice F?T?0?1"); err == nil {
		t.Fatal("expected error for a Search body missing a ?-separated field")
	}
}

// TestSearchResultRoundTripWithoutSize round-trips every SearchResult field
// except Size through EncodeSearchResult/ParseSearchResult; Size is not
// asserted here.
func TestSearchResultRoundTripWithoutSize(t *testing.T) {
	in := nmdc.SearchResult{
		Nick:     "alice",
		Path:     "share/video.mkv",
		Slots:    2,
		MaxSlots: 4,
		TTH:      "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFGHIJKLMNOP",
		HubAddr:  "hub.example.com:411",
	}
	body := nmdc.EncodeSearchResult(in, "")
	out, err := nmdc.ParseSearchResult(body)
	if err != nil {
		t.Fatalf("ParseSearchResult(%q): %v", body, err)
	}
	if out.Nick != in.Nick || out.Path != in.Path || out.Slots != in.Slots ||
		out.MaxSlots != in.MaxSlots || out.TTH != in.TTH || out.HubAddr != in.HubAddr {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", out, in)
	}
}

func TestADCGetRoundTripEscapesSpacesInID(t *testing.T) {
	in := nmdc.ADCGet{Type: "file", ID: "TTH/with space", Start: 0, Bytes: 4096}
	arg := nmdc.EncodeADCGet(in)
	out, err := nmdc.ParseADCGet(arg)
	if err != nil {
		t.Fatalf("ParseADCGet(%q): %v", arg, err)
	}
	if out != in {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", out, in)
	}
}

func TestParseADCGetRejectsWrongFieldCount(t *testing.T) {
	if _, err := nmdc.ParseADCGet("file TTH/ABCD 0"); err == nil {
		t.Fatal("expected error for an ADCGET body missing a field")
	}
}
