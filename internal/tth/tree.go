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

package tth

import (
	"bytes"
	"errors"
	"io"
)

const (
	leafTag  byte = 0x00
	nodeTag  byte = 0x01

	// MinLeaf is the smallest power-of-two leaf size the engine ever
	// picks (1024 bytes, per spec §4.2).
	MinLeaf = 1024

	// KeepLevel bounds the number of leaves a tree retains, per spec
	// §4.2's "keep-level" constant used when replying to peers asking
	// for a given tree depth.
	KeepLevel = 1 << 10 // 1024 leaves retained at the chosen granularity
)

// Root is a 24-byte Tiger Tree Hash root.
type Root [Size]byte

// LeafHash is one 24-byte leaf digest.
type LeafHash [Size]byte

// ChooseLeafSize returns the smallest power of two >= MinLeaf that
// produces at most KeepLevel leaves for a file of the given size.
func ChooseLeafSize(size int64) int64 {
	leaf := int64(MinLeaf)
	for NumBlocks(size, leaf) > KeepLevel {
		leaf *= 2
	}
	return leaf
}

// NumBlocks returns the number of leaves a file of the given size and leaf
// granularity is split into: max(1, ceil(size/leaf)).
func NumBlocks(size, leaf int64) int64 {
	if leaf <= 0 {
		return 1
	}
	n := (size + leaf - 1) / leaf
	if n < 1 {
		n = 1
	}
	return n
}

// Tree is a streaming TTH builder: Write file bytes in chunks of any size
// (Write splits them into leaves of the size given to NewTree, typically
// while reading a file sequentially) and call Final to obtain the root and
// the flat leaf-hash blob.
type Tree struct {
	leafSize int64
	cur      *hash
	curLen   int64
	leaves   []LeafHash
}

// NewTree creates a Tree that hashes leaves of leafSize bytes.
func NewTree(leafSize int64) *Tree {
	return &Tree{leafSize: leafSize, cur: newLeafHash()}
}

func newLeafHash() *hash {
	h := newHash()
	_, _ = h.Write([]byte{leafTag})
	return h
}

// Write feeds file bytes into the tree, splitting into leaves internally.
func (t *Tree) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		room := t.leafSize - t.curLen
		n := int64(len(p))
		if n > room {
			n = room
		}
		_, _ = t.cur.Write(p[:n])
		t.curLen += n
		p = p[n:]

		if t.curLen == t.leafSize {
			t.leaves = append(t.leaves, LeafHash(t.cur.sum()))
			t.cur = newLeafHash()
			t.curLen = 0
		}
	}
	return total, nil
}

// Final closes the last (possibly short) leaf and returns the Merkle root
// plus the flat concatenation of leaf hashes (the "tthl" blob of §4.6).
func (t *Tree) Final() (Root, []byte) {
	if t.curLen > 0 || len(t.leaves) == 0 {
		t.leaves = append(t.leaves, LeafHash(t.cur.sum()))
		t.cur = newLeafHash()
		t.curLen = 0
	}

	root := RootFromLeaves(t.leaves)

	blob := make([]byte, len(t.leaves)*Size)
	for i, l := range t.leaves {
		copy(blob[i*Size:], l[:])
	}
	return root, blob
}

// RootFromLeaves combines a leaf-hash slice into a Merkle root by pairwise
// internal-node hashing (odd leaves bubble up unchanged), per spec §4.2.
func RootFromLeaves(leaves []LeafHash) Root {
	if len(leaves) == 0 {
		return Root(Sum192([]byte{leafTag}))
	}
	level := make([][Size]byte, len(leaves))
	for i, l := range leaves {
		level[i] = [Size]byte(l)
	}

	for len(level) > 1 {
		next := make([][Size]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				buf := make([]byte, 0, 1+2*Size)
				buf = append(buf, nodeTag)
				buf = append(buf, level[i][:]...)
				buf = append(buf, level[i+1][:]...)
				next = append(next, Sum192(buf))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}
	return Root(level[0])
}

// LeavesFromBlob splits a concatenated leaf-hash blob back into individual
// leaves, as received over the wire from a peer's "tthl" response.
func LeavesFromBlob(blob []byte) ([]LeafHash, error) {
	if len(blob)%Size != 0 {
		return nil, errors.New("tth: leaf blob length is not a multiple of 24")
	}
	out := make([]LeafHash, len(blob)/Size)
	for i := range out {
		copy(out[i][:], blob[i*Size:(i+1)*Size])
	}
	return out, nil
}

// VerifyRoot reports whether the leaves in blob combine to root.
func VerifyRoot(root Root, blob []byte) bool {
	leaves, err := LeavesFromBlob(blob)
	if err != nil {
		return false
	}
	got := RootFromLeaves(leaves)
	return bytes.Equal(got[:], root[:])
}

// VerifyBlock reports whether data hashes (as a leaf) to the block-th
// entry of leaves, the per-block download verification of spec §4.6/§8
// property 9.
func VerifyBlock(leaves []LeafHash, block int, data []byte) bool {
	if block < 0 || block >= len(leaves) {
		return false
	}
	h := newLeafHash()
	_, _ = h.Write(data)
	got := h.sum()
	return bytes.Equal(got[:], leaves[block][:])
}

// HashReader streams r through a Tree at its natural leaf size chosen by
// ChooseLeafSize(size), returning the root and leaf blob. size may be -1
// if unknown, in which case MinLeaf is used and re-chosen lazily would
// require buffering; callers that know the size up front (the common
// share-hashing path) should pass it.
func HashReader(r io.Reader, size int64) (Root, []byte, error) {
	leaf := ChooseLeafSize(size)
	if size < 0 {
		leaf = MinLeaf
	}
	t := NewTree(leaf)
	buf := make([]byte, 256*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = t.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Root{}, nil, err
		}
	}
	root, blob := t.Final()
	return root, blob, nil
}
