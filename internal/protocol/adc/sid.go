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

package adc

import "fmt"

// SID is a 4-byte ADC session identifier. On the wire it is just the 4
// bytes taken literally as ASCII characters — there is no base32 packing
// across byte boundaries, matching how real ADC implementations treat a
// SID string as memcpy'd raw bytes rather than a bit-packed integer. A hub
// minting SIDs (NextSID) is what keeps those bytes within the printable
// base32 alphabet; String/ParseSID themselves don't enforce it, so they
// round-trip every possible 4-byte value.
type SID [4]byte

const sidAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// String renders the SID as its 4 raw bytes.
func (s SID) String() string {
	return string(s[:])
}

// ParseSID decodes a 4-character SID string back into its raw bytes. The
// only requirement is length; ParseSID(s.String()) == s for every SID s.
func ParseSID(s string) (SID, error) {
	if len(s) != 4 {
		return SID{}, fmt.Errorf("adc: SID %q is not 4 characters", s)
	}
	return SID{s[0], s[1], s[2], s[3]}, nil
}

// NextSID derives the next SID in sequence from a monotonically increasing
// counter, used by a hub-role session minting identifiers for its clients.
// Each byte is drawn from the base32 alphabet so the minted SID is always
// displayable, the way a real hub's SID pool is.
func NextSID(counter uint32) SID {
	var out SID
	for i := 3; i >= 0; i-- {
		out[i] = sidAlphabet[counter&0x1f]
		counter >>= 5
	}
	return out
}
