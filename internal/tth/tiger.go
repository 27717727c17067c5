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

// Package tth implements the Tiger/192 hash and the Tiger Tree Hash (TTH)
// Merkle construction used to content-address every shared file (spec
// §4.2). Go's standard library and the rest of the example corpus carry no
// Tiger implementation, so this hash core is hand-written from the public
// Tiger specification (Anderson & Biham) rather than grounded on a library
// — see DESIGN.md.
package tth

// Size is the length in bytes of a Tiger digest (192 bits).
const Size = 24

// hash is the block-level Tiger/192 state.
type hash struct {
	a, b, c uint64
	buf     [64]byte
	nbuf    int
	length  uint64
}

func newHash() *hash {
	h := &hash{}
	h.reset()
	return h
}

func (h *hash) reset() {
	h.a = 0x0123456789ABCDEF
	h.b = 0xFEDCBA9876543210
	h.c = 0xF096A5B4C3B2E187
	h.nbuf = 0
	h.length = 0
}

func (h *hash) Write(p []byte) (n int, err error) {
	n = len(p)
	h.length += uint64(n)

	if h.nbuf > 0 {
		k := copy(h.buf[h.nbuf:], p)
		h.nbuf += k
		p = p[k:]
		if h.nbuf == 64 {
			h.block(h.buf[:])
			h.nbuf = 0
		}
	}

	for len(p) >= 64 {
		h.block(p[:64])
		p = p[64:]
	}

	if len(p) > 0 {
		h.nbuf = copy(h.buf[:], p)
	}

	return n, nil
}

// sum finalizes a copy of the hash state (so Write may continue to be used
// by a caller that wants intermediate digests is NOT supported — Sum
// consumes a snapshot copy and pads it, matching the one-shot usage the
// TTH tree needs for each leaf/node).
func (h *hash) sum() [Size]byte {
	hc := *h
	var pad [64]byte
	pad[0] = 0x01
	padLen := 64 - ((hc.nbuf + 8) % 64)
	if padLen == 64 {
		padLen = 0
	}

	hc.write(pad[:1])

	zero := make([]byte, 64)
	for padLen > 0 {
		n := padLen
		if n > 64 {
			n = 64
		}
		hc.write(zero[:n])
		padLen -= n
	}

	var lenBuf [8]byte
	bits := hc.length * 8
	for i := 0; i < 8; i++ {
		lenBuf[i] = byte(bits >> (8 * uint(i)))
	}
	hc.write(lenBuf[:])

	var out [Size]byte
	putUint64(out[0:8], hc.a)
	putUint64(out[8:16], hc.b)
	putUint64(out[16:24], hc.c)
	return out
}

// write is the internal variant used only during padding/finalization; it
// does not update h.length (already accounted for by the caller).
func (h *hash) write(p []byte) {
	if h.nbuf > 0 {
		k := copy(h.buf[h.nbuf:], p)
		h.nbuf += k
		p = p[k:]
		if h.nbuf == 64 {
			h.block(h.buf[:])
			h.nbuf = 0
		}
	}
	for len(p) >= 64 {
		h.block(p[:64])
		p = p[64:]
	}
	if len(p) > 0 {
		h.nbuf = copy(h.buf[:], p)
	}
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}

func getUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * uint(i))
	}
	return v
}

func (h *hash) block(p []byte) {
	var x [8]uint64
	for i := 0; i < 8; i++ {
		x[i] = getUint64(p[i*8 : i*8+8])
	}

	aa, bb, cc := h.a, h.b, h.c
	a, b, c := h.a, h.b, h.c

	a, b, c = pass(a, b, c, x, 5)
	x = keySchedule(x)
	c, a, b = pass(c, a, b, x, 7)
	x = keySchedule(x)
	b, c, a = pass(b, c, a, x, 9)

	a ^= aa
	b -= bb
	c += cc

	h.a, h.b, h.c = a, b, c
}

func keySchedule(x [8]uint64) [8]uint64 {
	x[0] -= x[7] ^ 0xA5A5A5A5A5A5A5A5
	x[1] ^= x[0]
	x[2] += x[1]
	x[3] -= x[2] ^ ((^x[1]) << 19)
	x[4] ^= x[3]
	x[5] += x[4]
	x[6] -= x[5] ^ ((^x[4]) >> 23)
	x[7] ^= x[6]
	x[0] += x[7]
	x[1] -= x[0] ^ ((^x[7]) << 19)
	x[2] ^= x[1]
	x[3] += x[2]
	x[4] -= x[3] ^ ((^x[2]) >> 23)
	x[5] ^= x[4]
	x[6] += x[5]
	x[7] -= x[6] ^ 0x0123456789ABCDEF
	return x
}

func round(a, b, c *uint64, x uint64, mul uint64) {
	*c ^= x
	cc := *c
	*a -= t1[byte(cc)] ^ t2[byte(cc>>16)] ^ t3[byte(cc>>32)] ^ t4[byte(cc>>48)]
	*b += t4[byte(cc>>8)] ^ t3[byte(cc>>24)] ^ t2[byte(cc>>40)] ^ t1[byte(cc>>56)]
	*b *= mul
}

func pass(a, b, c uint64, x [8]uint64, mul uint64) (uint64, uint64, uint64) {
	round(&a, &b, &c, x[0], mul)
	round(&b, &c, &a, x[1], mul)
	round(&c, &a, &b, x[2], mul)
	round(&a, &b, &c, x[3], mul)
	round(&b, &c, &a, x[4], mul)
	round(&c, &a, &b, x[5], mul)
	round(&a, &b, &c, x[6], mul)
	round(&b, &c, &a, x[7], mul)
	return a, b, c
}

// Sum192 computes the plain Tiger/192 hash of p (passphrase-padding
// variant, byte 0x01, as used throughout Direct Connect). It is exposed
// for leaf hashing below; tree-internal node hashing additionally prefixes
// a tag byte before calling this.
func Sum192(p []byte) [Size]byte {
	h := newHash()
	_, _ = h.Write(p)
	return h.sum()
}
