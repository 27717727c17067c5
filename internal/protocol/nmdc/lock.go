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

package nmdc

import "fmt"

// forbidden lists the byte values that may never appear literally in a
// $Key reply; each must be emitted through the "/%DCN<ddd>%/" escape.
var forbidden = map[byte]bool{0: true, 5: true, 36: true, 96: true, 124: true, 126: true}

// LockToKey implements the $Lock -> $Key challenge transform (spec §4.3):
// byte i (i>0) is XORed with its predecessor, byte 0 is XORed with the
// last two lock bytes and a constant 5, the nibbles of every result byte
// are swapped, and values that would collide with protocol-significant
// bytes are escaped as "/%DCN<ddd>%/".
func LockToKey(lock []byte) []byte {
	n := len(lock)
	if n < 3 {
		return []byte("STUPIDKEY!")
	}

	x := make([]byte, n)
	copy(x, lock)

	fst := x[0] ^ x[n-1] ^ x[n-2] ^ 5
	for i := n - 1; i > 0; i-- {
		x[i] = x[i] ^ x[i-1]
	}
	x[0] = fst

	for i := range x {
		x[i] = (x[i] << 4) | (x[i] >> 4)
	}

	out := make([]byte, 0, n)
	for _, b := range x {
		if forbidden[b] {
			out = append(out, []byte(fmt.Sprintf("/%%DCN%03d%%/", b))...)
		} else {
			out = append(out, b)
		}
	}
	return out
}
