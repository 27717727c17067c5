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

package netconn

import (
	"net"

	"github.com/nabbar/ncdc/internal/ncdcerr"
	"github.com/nabbar/ncdc/internal/rate"
)

// UDPCallback receives one inbound datagram and its source address.
type UDPCallback func(p []byte, from *net.UDPAddr)

// Shared is the process-wide shared UDP datagram socket used for ADC
// passive search results and NMDC UDP search hits (§4.4 "shared UDP
// datagram socket").
type Shared struct {
	conn   *net.UDPConn
	in     *rate.Meter
	out    *rate.Meter
	global *rate.Global
	done   chan struct{}
}

// ListenShared opens the shared UDP socket on addr (":0" to auto-assign).
func ListenShared(addr string, in, out *rate.Meter, global *rate.Global) (*Shared, ncdcerr.Error) {
	a, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, ncdcerr.New(ncdcerr.KindConfig, "netconn: resolve udp addr", err)
	}
	c, err := net.ListenUDP("udp", a)
	if err != nil {
		return nil, ncdcerr.New(ncdcerr.KindTransport, "netconn: listen udp", err)
	}
	return &Shared{conn: c, in: in, out: out, global: global, done: make(chan struct{})}, nil
}

// LocalAddr returns the bound address, for advertising in $Search/RES
// target fields.
func (s *Shared) LocalAddr() *net.UDPAddr {
	return s.conn.LocalAddr().(*net.UDPAddr)
}

// Serve reads datagrams until Close, invoking cb for each. Intended to run
// on a dedicated goroutine; delivers into the event loop via the caller's
// own idle-callback injection if cb itself only enqueues.
func (s *Shared) Serve(cb UDPCallback) {
	buf := make([]byte, 64*1024)
	for {
		n, from, err := s.conn.ReadFromUDP(buf)
		select {
		case <-s.done:
			return
		default:
		}
		if err != nil {
			continue
		}
		if s.in != nil {
			s.in.Record(int64(n))
		}
		if s.global != nil {
			s.global.In.Record(int64(n))
		}
		dup := make([]byte, n)
		copy(dup, buf[:n])
		cb(dup, from)
	}
}

// Send writes a single datagram to addr.
func (s *Shared) Send(p []byte, addr *net.UDPAddr) ncdcerr.Error {
	n, err := s.conn.WriteToUDP(p, addr)
	if err != nil {
		return ncdcerr.New(ncdcerr.KindTransport, "netconn: udp send", err)
	}
	if s.out != nil {
		s.out.Record(int64(n))
	}
	if s.global != nil {
		s.global.Out.Record(int64(n))
	}
	return nil
}

// Close shuts down the shared UDP socket.
func (s *Shared) Close() error {
	close(s.done)
	return s.conn.Close()
}
