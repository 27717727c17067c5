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

// Package filelist is the interface-only file-list XML codec named by
// SPEC_FULL §D (full XML schema fidelity and the share-refresh walker are
// Non-goals per spec.md §1). It exposes just enough of the "files.xml.bz2"
// shape for the download queue's file-list matching and the CC session's
// list-type ADCGET response to exercise a real encoder/decoder pair.
package filelist

import (
	"bytes"
	"compress/bzip2"
	"encoding/xml"
	"io"

	dsbzip2 "github.com/dsnet/compress/bzip2"

	"github.com/nabbar/ncdc/internal/tth"
)

// File is one leaf entry in a file list.
type File struct {
	Name string `xml:"Name,attr"`
	Size int64  `xml:"Size,attr"`
	TTH  tth.Root
}

// Directory is one branch entry, recursively containing files and
// subdirectories.
type Directory struct {
	Name  string       `xml:"Name,attr"`
	Dirs  []*Directory `xml:"Directory"`
	Files []*File      `xml:"File"`
}

// FileList is a full decoded file list, rooted at the synthetic top-level
// directory matching share.Index's nameless root.
type FileList struct {
	CID  string
	Root *Directory
}

type xmlFile struct {
	Name string `xml:"Name,attr"`
	Size int64  `xml:"Size,attr"`
	TTH  string `xml:"TTH,attr"`
}

type xmlDir struct {
	Name  string    `xml:"Name,attr"`
	Dirs  []*xmlDir `xml:"Directory"`
	Files []xmlFile `xml:"File"`
}

type xmlFileListing struct {
	XMLName xml.Name `xml:"FileListing"`
	CID     string   `xml:"CID,attr"`
	Base    string   `xml:"Base,attr"`
	Dirs    []*xmlDir `xml:"Directory"`
	Files   []xmlFile `xml:"File"`
}

func toXMLDir(d *Directory) *xmlDir {
	xd := &xmlDir{Name: d.Name}
	for _, f := range d.Files {
		xd.Files = append(xd.Files, xmlFile{Name: f.Name, Size: f.Size, TTH: encodeTTH(f.TTH)})
	}
	for _, sub := range d.Dirs {
		xd.Dirs = append(xd.Dirs, toXMLDir(sub))
	}
	return xd
}

func fromXMLDir(xd *xmlDir) *Directory {
	d := &Directory{Name: xd.Name}
	for _, f := range xd.Files {
		d.Files = append(d.Files, &File{Name: f.Name, Size: f.Size, TTH: decodeTTH(f.TTH)})
	}
	for _, sub := range xd.Dirs {
		d.Dirs = append(d.Dirs, fromXMLDir(sub))
	}
	return d
}

func encodeTTH(r tth.Root) string {
	return base32NoPad(r[:])
}

func decodeTTH(s string) tth.Root {
	var r tth.Root
	b := base32NoPadDecode(s)
	copy(r[:], b)
	return r
}

// Marshal renders a FileList to bzip2-compressed "files.xml.bz2" bytes,
// using dsnet/compress/bzip2 since the standard library's compress/bzip2
// is decode-only (SPEC_FULL §B).
func Marshal(fl *FileList) ([]byte, error) {
	root := toXMLDir(fl.Root)
	doc := xmlFileListing{CID: fl.CID, Base: "/", Dirs: root.Dirs, Files: root.Files}

	xmlBytes, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	xmlBytes = append([]byte(xml.Header), xmlBytes...)

	var buf bytes.Buffer
	w, err := dsbzip2.NewWriter(&buf, &dsbzip2.WriterConfig{Level: dsbzip2.BestCompression})
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(xmlBytes); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes bzip2-compressed file-list bytes, as downloaded from a
// peer, using the standard library's decode-only compress/bzip2.
func Unmarshal(data []byte) (*FileList, error) {
	r := bzip2.NewReader(bytes.NewReader(data))
	xmlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc xmlFileListing
	if err := xml.Unmarshal(xmlBytes, &doc); err != nil {
		return nil, err
	}

	root := &Directory{Name: ""}
	for _, f := range doc.Files {
		root.Files = append(root.Files, &File{Name: f.Name, Size: f.Size, TTH: decodeTTH(f.TTH)})
	}
	for _, d := range doc.Dirs {
		root.Dirs = append(root.Dirs, fromXMLDir(d))
	}

	return &FileList{CID: doc.CID, Root: root}, nil
}

// FindDirectory walks a virtual path (e.g. "music/albums") and returns the
// matching Directory, for the CC session's list-type ADCGET response.
func (fl *FileList) FindDirectory(path string) *Directory {
	cur := fl.Root
	for _, seg := range splitPath(path) {
		var next *Directory
		for _, d := range cur.Dirs {
			if d.Name == seg {
				next = d
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func splitPath(path string) []string {
	var out []string
	cur := ""
	for _, c := range path {
		if c == '/' {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			continue
		}
		cur += string(c)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
