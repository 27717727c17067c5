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

// Package share implements the share index of spec §4.9: a FileListNode
// tree rooted at a synthetic nameless root, a TTH secondary index for
// multi-source replies, and a cooperatively-cancellable background hasher.
package share

import (
	"strings"
	"time"

	"github.com/nabbar/ncdc/internal/tth"
)

// Node is one entry in the share tree: a directory or a file. Directories
// carry Children; files carry Size/Mtime/TTH.
type Node struct {
	Name     string
	IsDir    bool
	Size     int64
	Mtime    time.Time
	TTH      tth.Root
	HasTTH   bool
	Children []*Node
	parent   *Node
}

// NewRoot builds the synthetic nameless root node.
func NewRoot() *Node {
	return &Node{Name: "", IsDir: true}
}

// AddRoot attaches a named shared root (a directory alias) under the
// nameless root.
func (n *Node) AddRoot(alias string) *Node {
	child := &Node{Name: alias, IsDir: true, parent: n}
	n.Children = append(n.Children, child)
	return child
}

// Path renders the node's full virtual path from the nameless root.
func (n *Node) Path() string {
	if n.parent == nil || n.parent.Name == "" && n.parent.parent == nil {
		return n.Name
	}
	return n.parent.Path() + "/" + n.Name
}

// find returns the child with the given name, or nil.
func (n *Node) find(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// foldKey is the case-insensitive UTF-8-folded sort key used by the diff
// algorithm (§4.9: "sorted order (case-insensitive by UTF-8-folded name)").
func foldKey(s string) string {
	return strings.ToLower(s)
}

// sortedChildren returns Children sorted by fold key, without mutating n.
func sortedChildren(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && foldKey(out[j-1].Name) > foldKey(out[j].Name) {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

// DiffOp names one action the three-way diff of Index.Refresh applies.
type DiffOp int

const (
	DiffKeep DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffEntry is one outcome of diffing a candidate subtree against the
// existing tree at the same path.
type DiffEntry struct {
	Op       DiffOp
	Old, New *Node
}

// Diff walks old and candidate's children in sorted order and classifies
// each name as keep/insert/delete, per §4.9.
func Diff(old, candidate *Node) []DiffEntry {
	oldChildren := sortedChildren(old.Children)
	newChildren := sortedChildren(candidate.Children)

	var out []DiffEntry
	i, j := 0, 0
	for i < len(oldChildren) || j < len(newChildren) {
		switch {
		case i >= len(oldChildren):
			out = append(out, DiffEntry{Op: DiffInsert, New: newChildren[j]})
			j++
		case j >= len(newChildren):
			out = append(out, DiffEntry{Op: DiffDelete, Old: oldChildren[i]})
			i++
		default:
			ok, nk := foldKey(oldChildren[i].Name), foldKey(newChildren[j].Name)
			switch {
			case ok == nk:
				out = append(out, DiffEntry{Op: DiffKeep, Old: oldChildren[i], New: newChildren[j]})
				i++
				j++
			case ok < nk:
				out = append(out, DiffEntry{Op: DiffDelete, Old: oldChildren[i]})
				i++
			default:
				out = append(out, DiffEntry{Op: DiffInsert, New: newChildren[j]})
				j++
			}
		}
	}
	return out
}

// NeedsHash reports whether a kept file entry must be re-enqueued for
// hashing: its mtime or size changed, or it has no TTH yet.
func NeedsHash(old, candidate *Node) bool {
	if candidate.IsDir {
		return false
	}
	if !old.HasTTH {
		return true
	}
	return !old.Mtime.Equal(candidate.Mtime) || old.Size != candidate.Size
}
