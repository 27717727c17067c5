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

package tth_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/nabbar/ncdc/internal/tth"
)

func TestNumBlocks(t *testing.T) {
	cases := []struct {
		size, leaf, want int64
	}{
		{0, 1024, 1},
		{1, 1024, 1},
		{1024, 1024, 1},
		{1025, 1024, 2},
		{2048, 1024, 2},
		{2049, 1024, 3},
	}
	for _, c := range cases {
		if got := tth.NumBlocks(c.size, c.leaf); got != c.want {
			t.Errorf("NumBlocks(%d,%d) = %d, want %d", c.size, c.leaf, got, c.want)
		}
	}
}

func TestRootRoundTripFromLeafBlob(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for _, size := range []int64{0, 1, 1023, 1024, 1025, 5000, 3 * 1024 * 1024} {
		data := make([]byte, size)
		_, _ = rnd.Read(data)

		leaf := tth.ChooseLeafSize(size)
		tree := tth.NewTree(leaf)
		_, _ = tree.Write(data)
		root, blob := tree.Final()

		if !tth.VerifyRoot(root, blob) {
			t.Fatalf("size %d: VerifyRoot failed on engine's own leaf blob", size)
		}

		leaves, err := tth.LeavesFromBlob(blob)
		if err != nil {
			t.Fatalf("size %d: LeavesFromBlob: %v", size, err)
		}
		if got := tth.RootFromLeaves(leaves); !bytes.Equal(got[:], root[:]) {
			t.Fatalf("size %d: reconstructed root mismatch", size)
		}
	}
}

func TestVerifyBlockDetectsCorruption(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 4096)
	leaf := int64(1024)
	tree := tth.NewTree(leaf)
	_, _ = tree.Write(data)
	_, blob := tree.Final()
	leaves, _ := tth.LeavesFromBlob(blob)

	block1 := data[1024:2048]
	if !tth.VerifyBlock(leaves, 1, block1) {
		t.Fatal("expected block 1 to verify against its own data")
	}

	corrupt := append([]byte{}, block1...)
	corrupt[0] ^= 0xFF
	if tth.VerifyBlock(leaves, 1, corrupt) {
		t.Fatal("expected corrupted block to fail verification")
	}
}

func TestLeavesFromBlobRejectsShortBlob(t *testing.T) {
	if _, err := tth.LeavesFromBlob(make([]byte, 23)); err == nil {
		t.Fatal("expected error for non-multiple-of-24 blob")
	}
}
