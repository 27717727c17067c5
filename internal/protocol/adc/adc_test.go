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

package adc_test

import (
	"testing"

	"github.com/nabbar/ncdc/internal/protocol/adc"
)

func TestSIDRoundTrip(t *testing.T) {
	cases := []string{"AAAA", "ABCD", "WXYZ", "\x00\x00\x00\x00", "\xff\xff\xff\xff"}
	for _, s := range cases {
		sid, err := adc.ParseSID(s)
		if err != nil {
			t.Fatalf("ParseSID(%q): %v", s, err)
		}
		if got := sid.String(); got != s {
			t.Errorf("round trip mismatch: ParseSID(%q).String() = %q", s, got)
		}
	}
}

func TestParseSIDRejectsWrongLength(t *testing.T) {
	for _, s := range []string{"", "AB", "ABCDE"} {
		if _, err := adc.ParseSID(s); err == nil {
			t.Errorf("ParseSID(%q): expected error, got none", s)
		}
	}
}

func TestNextSIDUsesBase32Alphabet(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	for _, counter := range []uint32{0, 1, 31, 32, 1 << 20} {
		sid := adc.NextSID(counter)
		for _, b := range sid {
			if !containsByte(alphabet, b) {
				t.Fatalf("NextSID(%d) = %q, byte %q not in base32 alphabet", counter, sid.String(), b)
			}
		}
	}
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	cases := []string{"", "plain", "has space", "back\\slash", "line\nbreak", `mix \s and\n literal`}
	for _, s := range cases {
		if got := adc.Unescape(adc.Escape(s)); got != s {
			t.Errorf("round trip mismatch for %q: got %q", s, got)
		}
	}
}

func TestEscapeLeavesPlainTextUntouched(t *testing.T) {
	if got := adc.Escape("alice"); got != "alice" {
		t.Errorf("Escape(%q) = %q, want unchanged", "alice", got)
	}
}

func TestSplitFieldsHonoursEscapedSpaces(t *testing.T) {
	fields := adc.SplitFields(`NIalice\swith\sspace DEa description`)
	if len(fields) != 3 {
		t.Fatalf("SplitFields: got %d fields, want 3: %v", len(fields), fields)
	}
	if fields[0] != `NIalice\swith\sspace` {
		t.Errorf("fields[0] = %q", fields[0])
	}
	if fields[1] != "DEa" {
		t.Errorf("fields[1] = %q", fields[1])
	}
}

func TestParseParamsUnescapesValues(t *testing.T) {
	params, err := adc.ParseParams([]string{`NIalice\sbob`, "SL5"})
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	if v, ok := params.Get("NI"); !ok || v != "alice bob" {
		t.Errorf("NI = %q, ok=%v", v, ok)
	}
	if v, ok := params.Get("SL"); !ok || v != "5" {
		t.Errorf("SL = %q, ok=%v", v, ok)
	}
}

func TestParseParamsRejectsShortToken(t *testing.T) {
	if _, err := adc.ParseParams([]string{"N"}); err == nil {
		t.Fatal("expected error for a token shorter than 2 characters")
	}
}

func TestParamsEncodeRoundTrip(t *testing.T) {
	var p adc.Params
	p = p.Set("NI", "alice bob")
	p = p.Set("SL", "5")

	fields := adc.SplitFields(p.Encode())
	back, err := adc.ParseParams(fields)
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	if v, _ := back.Get("NI"); v != "alice bob" {
		t.Errorf("NI round trip = %q", v)
	}
	if v, _ := back.Get("SL"); v != "5" {
		t.Errorf("SL round trip = %q", v)
	}
}

func TestParseHubBroadcastCarriesFromSID(t *testing.T) {
	msg, err := adc.ParseHub("BINF AAAA NIalice")
	if err != nil {
		t.Fatalf("ParseHub: %v", err)
	}
	if msg.Kind != adc.KindBroadcast || msg.Cmd != "INF" {
		t.Fatalf("got Kind=%q Cmd=%q", string(msg.Kind), msg.Cmd)
	}
	if msg.From.String() != "AAAA" {
		t.Errorf("From = %q, want AAAA", msg.From.String())
	}
	if v, _ := msg.Params.Get("NI"); v != "alice" {
		t.Errorf("NI = %q", v)
	}
}

func TestParseHubDirectCarriesFromAndToSID(t *testing.T) {
	msg, err := adc.ParseHub("DMSG AAAA BBBB PMhello")
	if err != nil {
		t.Fatalf("ParseHub: %v", err)
	}
	if msg.From.String() != "AAAA" || !msg.HasTo || msg.To.String() != "BBBB" {
		t.Fatalf("From=%q HasTo=%v To=%q", msg.From.String(), msg.HasTo, msg.To.String())
	}
}

// TestParseHubISIDReadsAssignedSIDFromFrom covers the split introduced for
// "ISID": the assigned session id is a positional SID token, read off
// msg.From for symmetry with every other SID-bearing message kind, and must
// not be mistaken for a bare token or a named parameter.
func TestParseHubISIDReadsAssignedSIDFromFrom(t *testing.T) {
	msg, err := adc.ParseHub("ISID CDEF")
	if err != nil {
		t.Fatalf("ParseHub: %v", err)
	}
	if msg.Kind != adc.KindInfo || msg.Cmd != adc.CmdSID {
		t.Fatalf("got Kind=%q Cmd=%q", string(msg.Kind), msg.Cmd)
	}
	if msg.From.String() != "CDEF" {
		t.Errorf("From = %q, want CDEF", msg.From.String())
	}
	if msg.Bare != "" {
		t.Errorf("Bare = %q, want empty for ISID", msg.Bare)
	}
	if len(msg.Params) != 0 {
		t.Errorf("Params = %v, want none", msg.Params)
	}
}

// TestParseHubIGPAReadsSaltFromBare covers the other half of the split:
// IGPA's one positional token is a password salt, not a SID, so it belongs
// in msg.Bare rather than msg.From.
func TestParseHubIGPAReadsSaltFromBare(t *testing.T) {
	msg, err := adc.ParseHub("IGPA ABCDEF0123")
	if err != nil {
		t.Fatalf("ParseHub: %v", err)
	}
	if msg.Cmd != adc.CmdGPA {
		t.Fatalf("got Cmd=%q", msg.Cmd)
	}
	if msg.Bare != "ABCDEF0123" {
		t.Errorf("Bare = %q, want ABCDEF0123", msg.Bare)
	}
	if msg.From != (adc.SID{}) {
		t.Errorf("From = %q, want zero value for IGPA", msg.From.String())
	}
}

// TestParseHubSTAReadsSeverityFromNamedParam covers the STA severity fix:
// the status code rides the named "CO" parameter (not msg.Bare, which is
// reserved for ISID/IGPA's one special-cased positional token), so the
// fatal/advisory split in HandleModern can read it via Params.Get("CO").
func TestParseHubSTAReadsSeverityFromNamedParam(t *testing.T) {
	msg, err := adc.ParseHub("ISTA CO200 TXbad\\spassword")
	if err != nil {
		t.Fatalf("ParseHub: %v", err)
	}
	if msg.From != (adc.SID{}) {
		t.Errorf("From = %q, want zero value for ISTA", msg.From.String())
	}
	code, ok := msg.Params.Get("CO")
	if !ok || code != "200" {
		t.Fatalf("CO = %q, ok=%v, want \"200\"", code, ok)
	}
}

func TestEncodeHubRoundTripBroadcast(t *testing.T) {
	sid, _ := adc.ParseSID("AAAA")
	msg := adc.Message{Kind: adc.KindBroadcast, Cmd: adc.CmdINF, From: sid}
	msg.Params = msg.Params.Set("NI", "alice")

	line := adc.EncodeHub(msg)
	back, err := adc.ParseHub(line)
	if err != nil {
		t.Fatalf("ParseHub(%q): %v", line, err)
	}
	if back.Kind != msg.Kind || back.Cmd != msg.Cmd || back.From != msg.From {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, msg)
	}
	if v, _ := back.Params.Get("NI"); v != "alice" {
		t.Errorf("NI round trip = %q", v)
	}
}

func TestEncodeHubRoundTripISID(t *testing.T) {
	sid, _ := adc.ParseSID("CDEF")
	line := adc.EncodeHub(adc.Message{Kind: adc.KindInfo, Cmd: adc.CmdSID, From: sid})
	back, err := adc.ParseHub(line)
	if err != nil {
		t.Fatalf("ParseHub(%q): %v", line, err)
	}
	if back.From != sid {
		t.Errorf("From round trip = %q, want %q", back.From.String(), sid.String())
	}
}

func TestParseClientHasNoSIDHeader(t *testing.T) {
	var p adc.Params
	p = p.Set("TY", "file")
	p = p.Set("ID", "TTHABCD")
	line := adc.EncodeClient("GET", p)

	msg, err := adc.ParseClient(line)
	if err != nil {
		t.Fatalf("ParseClient(%q): %v", line, err)
	}
	if msg.Cmd != "GET" {
		t.Errorf("Cmd = %q", msg.Cmd)
	}
	if v, _ := msg.Params.Get("TY"); v != "file" {
		t.Errorf("TY = %q", v)
	}
}

// TestParseClientRejectsBarePositionalTokens documents why CC sessions in
// this client use legacy NMDC framing rather than ADC's GET/SND: a real
// ADC GET's positional tokens ("file TTH/XXXX 0 100") aren't two-letter
// named parameters, so ParseParams rejects any token under 2 characters.
func TestParseClientRejectsBarePositionalTokens(t *testing.T) {
	if _, err := adc.ParseClient("GET file TTH/ABCD 0 100"); err == nil {
		t.Fatal("expected ParseClient to reject positional (non-named-param) tokens")
	}
}
