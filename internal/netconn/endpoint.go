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

// Package netconn implements the Net endpoint contract of §4.4: a
// single-message-framed bidirectional stream with raw byte-range delivery,
// zero-copy file send, bandwidth metering and idle/keepalive enforcement.
package netconn

import (
	"crypto/tls"
	"net"
	"os"
	"sync"
	"time"

	"github.com/nabbar/ncdc/internal/ioutils/delim"
	"github.com/nabbar/ncdc/internal/ncdcerr"
	"github.com/nabbar/ncdc/internal/rate"
)

const (
	// MaxMessage is the framed-receive overflow threshold (§4.4).
	MaxMessage = 1 << 20

	// IdleTimeout is the no-keepalive inactivity deadline.
	IdleTimeout = 30 * time.Second

	// KeepaliveInterval is the empty-frame cadence when keepalive is on.
	KeepaliveInterval = 120 * time.Second

	// ReconnectCooldown is imposed after every disconnect() call.
	ReconnectCooldown = 5 * time.Second

	// ConnectTimeout bounds outbound Dial regardless of keepalive config,
	// confirmed against the original's net.c (SPEC_FULL §C).
	ConnectTimeout = 30 * time.Second

	bounceBufSize = 32 * 1024
)

// RawCallback receives a byte range delivered outside the framed parser.
type RawCallback func(p []byte) error

// pendingFile is an outstanding file-send descriptor (§4.4 "Send").
type pendingFile struct {
	f         *os.File
	offset    int64
	remaining int64
	flushHint bool
}

// Endpoint is one Net endpoint: a framed message stream plus raw byte-range
// delivery, file-send precedence, rate metering and idle/keepalive timers.
type Endpoint struct {
	mu sync.Mutex

	conn   net.Conn
	reader *delim.Reader
	delim  byte

	in, out *rate.Meter
	global  *rate.Global

	keepalive bool
	lastIO    time.Time

	sendMu   sync.Mutex
	sendQ    [][]byte
	file     *pendingFile
	writing  bool
	closed   bool

	rawActive bool
	rawLeft   int64
	rawCB     RawCallback

	lastDisconnect time.Time
}

// New wraps an established connection into a framed Net endpoint.
func New(conn net.Conn, delimiter byte, in, out *rate.Meter, global *rate.Global, keepalive bool) *Endpoint {
	return &Endpoint{
		conn:      conn,
		reader:    delim.New(conn, delimiter, MaxMessage),
		delim:     delimiter,
		in:        in,
		out:       out,
		global:    global,
		keepalive: keepalive,
		lastIO:    time.Now(),
	}
}

// Dial opens a new outbound TCP connection with the fixed 30-second connect
// timeout mandated regardless of the endpoint's own keepalive setting.
func Dial(network, addr string) (net.Conn, ncdcerr.Error) {
	c, err := net.DialTimeout(network, addr, ConnectTimeout)
	if err != nil {
		return nil, ncdcerr.New(ncdcerr.KindTransport, "netconn: dial", err)
	}
	return c, nil
}

// WrapTLS wraps conn in a TLS client or server connection. On the server
// side cert is the local certificate; on the client side accept, if
// non-nil, overrides the default (validation-off) behaviour — the system
// CA database is never consulted, per §4.4.
func WrapTLS(conn net.Conn, isServer bool, cert *tls.Certificate, accept func(*tls.ConnectionState) error) net.Conn {
	cfg := &tls.Config{InsecureSkipVerify: true}
	if isServer && cert != nil {
		cfg.Certificates = []tls.Certificate{*cert}
		return tls.Server(conn, cfg)
	}
	tc := tls.Client(conn, cfg)
	if accept != nil {
		_ = tc.Handshake()
		if err := accept(ptr(tc.ConnectionState())); err != nil {
			_ = tc.Close()
		}
	}
	return tc
}

func ptr[T any](v T) *T { return &v }

// touch records I/O activity for the idle/keepalive audit.
func (e *Endpoint) touch() {
	e.mu.Lock()
	e.lastIO = time.Now()
	e.mu.Unlock()
}

// RecvMessage blocks for the next framed message (a leading NUL is already
// stripped by the delim reader, per §4.4).
func (e *Endpoint) RecvMessage() ([]byte, ncdcerr.Error) {
	msg, err := e.reader.ReadMessage()
	if err != nil {
		return nil, ncdcerr.New(ncdcerr.KindTransport, "netconn: recv", err)
	}
	n := int64(len(msg) + 1)
	e.meterIn(n)
	e.touch()
	return msg, nil
}

// RecvRaw delivers the next n bytes to cb instead of the framed parser.
// background selects the worker-thread draining mode mandatory for file
// downloads (§4.4); inline runs cb synchronously on the caller's goroutine
// (the event loop, for small raw reads).
func (e *Endpoint) RecvRaw(n int64, background bool, cb RawCallback) ncdcerr.Error {
	e.mu.Lock()
	e.rawActive = true
	e.rawLeft = n
	e.rawCB = cb
	e.mu.Unlock()

	drain := func() ncdcerr.Error {
		buf := make([]byte, bounceBufSize)
		left := n
		for left > 0 {
			want := int64(len(buf))
			if left < want {
				want = left
			}
			got, err := e.reader.ReadFull(buf[:want])
			if err != nil {
				return ncdcerr.New(ncdcerr.KindTransport, "netconn: recv raw", err)
			}
			e.meterIn(int64(got))
			e.touch()
			if err := cb(buf[:got]); err != nil {
				return ncdcerr.New(ncdcerr.KindLocalIO, "netconn: raw callback", err)
			}
			left -= int64(got)
			e.mu.Lock()
			e.rawLeft = left
			e.mu.Unlock()
		}
		return nil
	}

	if background {
		errCh := make(chan ncdcerr.Error, 1)
		go func() { errCh <- drain(); e.mu.Lock(); e.rawActive = false; e.mu.Unlock() }()
		return <-errCh
	}
	defer func() { e.mu.Lock(); e.rawActive = false; e.mu.Unlock() }()
	return drain()
}

func (e *Endpoint) meterIn(n int64) {
	if e.in != nil {
		e.in.Record(n)
	}
	if e.global != nil {
		e.global.In.Record(n)
	}
}

func (e *Endpoint) meterOut(n int64) {
	if e.out != nil {
		e.out.Record(n)
	}
	if e.global != nil {
		e.global.Out.Record(n)
	}
}

// SendMessage enqueues a framed message. If a file-send is in progress the
// message write is deferred until it completes (§4.4 "Send").
func (e *Endpoint) SendMessage(p []byte) {
	frame := make([]byte, len(p)+1)
	copy(frame, p)
	frame[len(p)] = e.delim

	e.sendMu.Lock()
	e.sendQ = append(e.sendQ, frame)
	e.sendMu.Unlock()

	go e.pump()
}

// SendFile enqueues a file-send descriptor, taking precedence over any
// queued plain messages until it completes.
func (e *Endpoint) SendFile(f *os.File, offset, length int64, flushHint bool) {
	e.sendMu.Lock()
	e.file = &pendingFile{f: f, offset: offset, remaining: length, flushHint: flushHint}
	e.sendMu.Unlock()

	go e.pump()
}

// pump drains the send queue, honouring file-send precedence. Safe to call
// concurrently; only one worker actually writes at a time.
func (e *Endpoint) pump() {
	e.sendMu.Lock()
	if e.writing {
		e.sendMu.Unlock()
		return
	}
	e.writing = true
	e.sendMu.Unlock()

	defer func() {
		e.sendMu.Lock()
		e.writing = false
		e.sendMu.Unlock()
	}()

	for {
		e.sendMu.Lock()
		if e.file != nil {
			f := e.file
			e.sendMu.Unlock()
			if err := e.sendFileChunk(f); err != nil {
				return
			}
			e.sendMu.Lock()
			if f.remaining <= 0 {
				e.file = nil
			}
			e.sendMu.Unlock()
			continue
		}
		if len(e.sendQ) == 0 {
			e.sendMu.Unlock()
			return
		}
		frame := e.sendQ[0]
		e.sendQ = e.sendQ[1:]
		e.sendMu.Unlock()

		if _, err := e.conn.Write(frame); err != nil {
			return
		}
		e.meterOut(int64(len(frame)))
		e.touch()
	}
}

// sendFileChunk writes up to bounceBufSize bytes of a pending file-send.
// The zero-copy syscall path lives in sendfile_linux.go; this is the
// bounce-buffer fallback used when that is unavailable.
func (e *Endpoint) sendFileChunk(f *pendingFile) error {
	if ok, err := trySendfile(e.conn, f); ok {
		if err == nil {
			e.meterOut(f.chunkSize())
			e.touch()
			if f.remaining <= 0 && f.flushHint {
				hintDrop(f.f, f.offset)
			}
		}
		return err
	}

	buf := make([]byte, bounceBufSize)
	want := int64(len(buf))
	if f.remaining < want {
		want = f.remaining
	}
	n, err := f.f.ReadAt(buf[:want], f.offset)
	if n > 0 {
		if _, werr := e.conn.Write(buf[:n]); werr != nil {
			return werr
		}
		f.offset += int64(n)
		f.remaining -= int64(n)
		e.meterOut(int64(n))
		e.touch()
	}
	if f.remaining <= 0 && f.flushHint {
		hintDrop(f.f, f.offset)
	}
	return err
}

func (f *pendingFile) chunkSize() int64 { return bounceBufSize }

// IdleAudit reports whether the endpoint has exceeded its idle/keepalive
// deadline and what action follows: a keepalive write or a fatal timeout.
// Called by the scheduler's 5-second idle-audit tick (§4.11, SPEC_FULL §C).
func (e *Endpoint) IdleAudit() (keepaliveDue bool, timedOut bool) {
	e.mu.Lock()
	since := time.Since(e.lastIO)
	raw := e.rawActive
	e.mu.Unlock()

	if raw {
		return false, false
	}
	if e.keepalive {
		return since >= KeepaliveInterval, false
	}
	return false, since >= IdleTimeout
}

// SendKeepalive writes a single empty frame and resets the activity clock.
func (e *Endpoint) SendKeepalive() {
	e.SendMessage(nil)
}

// Disconnect cancels in-flight I/O, closes the socket and imposes the
// 5-second reconnect cooldown. Buffered plain messages are dropped; a
// file-send already being written is retained so the write worker observes
// stable memory until its current chunk completes (§4.4).
func (e *Endpoint) Disconnect() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.lastDisconnect = time.Now()
	e.mu.Unlock()

	e.sendMu.Lock()
	e.sendQ = nil
	e.sendMu.Unlock()

	_ = e.conn.Close()
}

// ReconnectReady reports whether the cooldown imposed by Disconnect has
// elapsed.
func (e *Endpoint) ReconnectReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return time.Since(e.lastDisconnect) >= ReconnectCooldown
}
