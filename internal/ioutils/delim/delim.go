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

// Package delim scans a byte stream for single-byte message terminators.
// It backs internal/netconn's framed receive mode: a hub connection reads
// '|'-terminated legacy frames or '\n'-terminated modern frames through the
// same Reader, with the terminator chosen per connection.
package delim

import (
	"bufio"
	"errors"
	"io"
)

// ErrOverflow is returned when a message exceeds the configured maximum
// length before a terminator is found (spec §4.4: 1 MiB frame cap).
var ErrOverflow = errors.New("delim: message exceeds maximum length")

// Reader reads delimiter-terminated messages from an underlying io.Reader.
type Reader struct {
	src     *bufio.Reader
	delim   byte
	max     int
	started bool
}

// New wraps r with a Reader splitting on delim, enforcing maxLen per
// message (0 disables the limit).
func New(r io.Reader, delim byte, maxLen int) *Reader {
	return &Reader{src: bufio.NewReaderSize(r, 64*1024), delim: delim, max: maxLen}
}

// ReadMessage returns the next delimiter-terminated message with the
// delimiter stripped. A single leading NUL byte before the first real
// message is silently discarded, tolerating the known-buggy hub behaviour
// documented in spec §4.4.
func (d *Reader) ReadMessage() ([]byte, error) {
	if !d.started {
		d.started = true
		b, err := d.src.Peek(1)
		if err == nil && len(b) == 1 && b[0] == 0 {
			_, _ = d.src.Discard(1)
		}
	}

	var line []byte
	for {
		frag, err := d.src.ReadSlice(d.delim)
		line = append(line, frag...)
		n := len(line)
		if err == nil {
			n--
		}
		if d.max > 0 && n > d.max {
			return nil, ErrOverflow
		}
		if err == nil {
			return line[:n], nil
		}
		if err != bufio.ErrBufferFull {
			return nil, err
		}
	}
}

// Unread returns bytes currently buffered but not yet consumed, used when
// switching from framed to raw receive mode mid-stream.
func (d *Reader) Unread() []byte {
	n := d.src.Buffered()
	if n == 0 {
		return nil
	}
	b, _ := d.src.Peek(n)
	out := make([]byte, len(b))
	copy(out, b)
	_, _ = d.src.Discard(n)
	return out
}

// ReadFull reads exactly n raw bytes, honouring any data already buffered
// from the framed parser (spec §4.4 raw-receive mode).
func (d *Reader) ReadFull(buf []byte) (int, error) {
	return io.ReadFull(d.src, buf)
}
