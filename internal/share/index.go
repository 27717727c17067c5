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

package share

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/tth"
)

// Index owns the volatile FileListNode tree and the TTH secondary index.
// Persistent hashdata/hashfiles storage is an external collaborator (out of
// scope per §1); Index only keeps the in-memory view the core operates on.
type Index struct {
	mu      sync.RWMutex
	root    *Node
	byTTH   map[tth.Root][]*Node
	watcher *fsnotify.Watcher
	log     nclog.Logger

	hasher *Hasher

	roots map[string]string   // alias -> filesystem path, for periodic RefreshAll
	blobs map[tth.Root][]byte // tthl leaf blob, kept for CC upload-side $ADCGET type=tthl
}

// New creates an empty Index with a fresh nameless root.
func New(log nclog.Logger, hasher *Hasher) *Index {
	return &Index{
		root:   NewRoot(),
		byTTH:  make(map[tth.Root][]*Node),
		log:    log,
		hasher: hasher,
		roots:  make(map[string]string),
		blobs:  make(map[tth.Root][]byte),
	}
}

// AddSharedRoot registers a filesystem directory as a named shared root and
// performs its initial scan.
func (idx *Index) AddSharedRoot(alias, path string) error {
	idx.mu.Lock()
	node := idx.root.find(alias)
	if node == nil {
		node = idx.root.AddRoot(alias)
	}
	idx.roots[alias] = path
	idx.mu.Unlock()

	return idx.Refresh(node, path)
}

// RefreshAll re-scans every registered shared root, per the scheduler's
// periodic share-refresh tick (§4.11).
func (idx *Index) RefreshAll() error {
	idx.mu.RLock()
	roots := make(map[string]string, len(idx.roots))
	for alias, path := range idx.roots {
		roots[alias] = path
	}
	idx.mu.RUnlock()

	for alias, path := range roots {
		idx.mu.Lock()
		node := idx.root.find(alias)
		idx.mu.Unlock()
		if node == nil {
			continue
		}
		if err := idx.Refresh(node, path); err != nil {
			return err
		}
	}
	return nil
}

// Watch starts an fsnotify watch on path and logs every write/create/
// remove/rename event at debug level (§4.9's "optional filesystem watch"
// supplement, SPEC_FULL §B). It does not refresh the affected subtree.
func (idx *Index) Watch(path string) error {
	if idx.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		idx.watcher = w
		go idx.watchLoop()
	}
	return idx.watcher.Add(path)
}

func (idx *Index) watchLoop() {
	for {
		select {
		case ev, ok := <-idx.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			dir := filepath.Dir(ev.Name)
			if idx.log != nil {
				idx.log.Debug("share watch event", nclog.Fields{"path": ev.Name, "op": ev.Op.String()})
			}
			_ = dir // no refresh is dispatched from here
		case err, ok := <-idx.watcher.Errors:
			if !ok {
				return
			}
			if idx.log != nil {
				idx.log.Warn("share watch error", nclog.Fields{"error": err.Error()})
			}
		}
	}
}

// Refresh scans path, builds a candidate subtree, diffs it against node and
// applies the three-way diff (§4.9).
func (idx *Index) Refresh(node *Node, path string) error {
	candidate, err := scan(path)
	if err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	diff := Diff(node, candidate)
	var children []*Node
	for _, d := range diff {
		switch d.Op {
		case DiffKeep:
			d.Old.Size = d.New.Size
			d.Old.Mtime = d.New.Mtime
			if NeedsHash(d.Old, d.New) {
				d.Old.HasTTH = false
				if idx.hasher != nil {
					idx.hasher.Enqueue(d.Old, filepath.Join(path, d.Old.Name))
				}
			}
			children = append(children, d.Old)
		case DiffInsert:
			d.New.parent = node
			children = append(children, d.New)
			if !d.New.IsDir && idx.hasher != nil {
				idx.hasher.Enqueue(d.New, filepath.Join(path, d.New.Name))
			}
		case DiffDelete:
			idx.removeTTH(d.Old)
		}
	}
	node.Children = children
	return nil
}

func scan(path string) (*Node, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	node := &Node{IsDir: true}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		child := &Node{Name: e.Name(), IsDir: e.IsDir()}
		if !e.IsDir() {
			child.Size = info.Size()
			child.Mtime = info.ModTime()
		}
		node.Children = append(node.Children, child)
	}
	sort.Slice(node.Children, func(i, j int) bool {
		return foldKey(node.Children[i].Name) < foldKey(node.Children[j].Name)
	})
	return node, nil
}

// SetTTH records a completed hash result and indexes it, called by the
// hasher on success. blob is the tree's leaf hash list, kept so a later
// CC upload can answer a $ADCGET type=tthl request without re-hashing.
func (idx *Index) SetTTH(n *Node, root tth.Root, blob []byte) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if n.HasTTH {
		idx.removeTTHLocked(n)
	}
	n.TTH = root
	n.HasTTH = true
	idx.byTTH[root] = append(idx.byTTH[root], n)
	idx.blobs[root] = blob
}

// TTHBlob returns the tthl leaf blob recorded for root, if any.
func (idx *Index) TTHBlob(root tth.Root) ([]byte, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	b, ok := idx.blobs[root]
	return b, ok
}

func (idx *Index) removeTTH(n *Node) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeTTHLocked(n)
}

func (idx *Index) removeTTHLocked(n *Node) {
	if !n.HasTTH {
		return
	}
	list := idx.byTTH[n.TTH]
	for i, c := range list {
		if c == n {
			idx.byTTH[n.TTH] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(idx.byTTH[n.TTH]) == 0 {
		delete(idx.byTTH, n.TTH)
		delete(idx.blobs, n.TTH)
	}
}

// Lookup returns every node sharing the given TTH root.
func (idx *Index) Lookup(root tth.Root) []*Node {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*Node, len(idx.byTTH[root]))
	copy(out, idx.byTTH[root])
	return out
}

// TotalSize and TotalFiles give the running share totals used for §3's
// sharecount/sharesize invariant.
func (idx *Index) TotalSize() int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var total int64
	var walk func(*Node)
	walk = func(n *Node) {
		if !n.IsDir {
			total += n.Size
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(idx.root)
	return total
}

func (idx *Index) TotalFiles() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var total int
	var walk func(*Node)
	walk = func(n *Node) {
		if !n.IsDir {
			total++
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(idx.root)
	return total
}

// Root returns the nameless root node (read access only; mutate through
// Refresh/SetTTH to keep the TTH index consistent).
func (idx *Index) Root() *Node {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.root
}

// FilesystemPath resolves n's virtual path (alias/sub/path) back to an
// absolute path on disk by looking up its leading alias in roots, for CC
// upload serving to open the real file behind a shared node.
func (idx *Index) FilesystemPath(n *Node) (string, bool) {
	virtual := n.Path()
	alias, rest, hasRest := strings.Cut(virtual, "/")

	idx.mu.RLock()
	root, ok := idx.roots[alias]
	idx.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !hasRest {
		return root, true
	}
	return filepath.Join(root, filepath.FromSlash(rest)), true
}
