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

package queue

import "github.com/nabbar/ncdc/internal/filelist"

// MatchFileList walks a peer's downloaded file list and, for every entry
// whose TTH matches an existing DLItem, adds uid as a DLUser of that item
// — subject to the queue's ExcludeRegex filtering candidate paths (§4.10).
func (q *Queue) MatchFileList(uid string, list *filelist.FileList) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	matched := 0
	var walk func(dir *filelist.Directory, path string)
	walk = func(dir *filelist.Directory, path string) {
		for _, f := range dir.Files {
			full := path + "/" + f.Name
			if q.ExcludeRegex != nil && q.ExcludeRegex.MatchString(full) {
				continue
			}
			if it, ok := q.items[f.TTH]; ok {
				if _, exists := it.Users[uid]; !exists {
					it.Users[uid] = &DLUser{TTH: f.TTH, UID: uid, online: true}
					matched++
				}
			}
		}
		for _, sub := range dir.Dirs {
			walk(sub, path+"/"+sub.Name)
		}
	}
	walk(list.Root, "")
	return matched
}
