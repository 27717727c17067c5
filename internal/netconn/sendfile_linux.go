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

//go:build linux

package netconn

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// trySendfile attempts the zero-copy sendfile(2) path for a pending file
// chunk. ok is false when conn is not a *net.TCPConn (the bounce-buffer
// fallback then runs instead).
func trySendfile(conn net.Conn, f *pendingFile) (ok bool, err error) {
	tc, isTCP := conn.(*net.TCPConn)
	if !isTCP {
		return false, nil
	}
	raw, err := tc.SyscallConn()
	if err != nil {
		return false, nil
	}

	want := f.remaining
	if want > bounceBufSize*8 {
		want = bounceBufSize * 8
	}

	var n int
	var sendErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		off := f.offset
		n, sendErr = syscall.Sendfile(int(fd), int(f.f.Fd()), &off, int(want))
	})
	if ctrlErr != nil {
		return false, nil
	}
	if sendErr != nil {
		return false, sendErr
	}
	f.offset += int64(n)
	f.remaining -= int64(n)
	return true, nil
}

// hintDrop advises the kernel to drop cached pages for the file range just
// sent, the "flush-hint" behaviour of §4.4.
func hintDrop(f interface{ Fd() uintptr }, upto int64) {
	_ = unix.Fadvise(int(f.Fd()), 0, upto, unix.FADV_DONTNEED)
}
