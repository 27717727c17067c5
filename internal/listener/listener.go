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

// Package listener implements the active-mode TCP/TLS/UDP listener of
// spec §4.8, with automatic fallback to passive mode when any of its
// sockets fail to open.
package listener

import (
	"bytes"
	"crypto/tls"
	"net"
	"strconv"

	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/netconn"
)

// AcceptCallback receives a newly accepted incoming TCP connection, to be
// wrapped into a CC session with no hub and the "incoming" flag (§4.8).
type AcceptCallback func(conn net.Conn)

// UDPCallback receives a raw datagram payload for dialect dispatch.
type UDPCallback func(payload []byte, from *net.UDPAddr)

// Listener owns the active-mode TCP, optional TLS, and UDP sockets.
type Listener struct {
	tcp    net.Listener
	tlsLn  net.Listener
	udp    *netconn.Shared

	log    nclog.Logger
	active bool
}

// New creates an unstarted Listener.
func New(log nclog.Logger) *Listener {
	return &Listener{log: log}
}

// Start opens the TCP listener on port (0 = kernel-assigned), an adjacent
// TLS listener on port+1 when cert is non-nil, and a UDP socket on the same
// port. If any open fails, Start tears down everything it already opened
// and returns false: the caller reverts to passive mode, a user-visible
// transition (§4.8).
func (l *Listener) Start(ip string, port int, cert *tls.Certificate) bool {
	addr := net.JoinHostPort(ip, strconv.Itoa(port))
	tcp, err := net.Listen("tcp", addr)
	if err != nil {
		l.logFail("tcp listen failed, reverting to passive mode", err)
		return false
	}

	actualPort := tcp.Addr().(*net.TCPAddr).Port

	var tlsLn net.Listener
	if cert != nil {
		tlsAddr := net.JoinHostPort(ip, strconv.Itoa(actualPort+1))
		raw, err := net.Listen("tcp", tlsAddr)
		if err != nil {
			_ = tcp.Close()
			l.logFail("tls listen failed, reverting to passive mode", err)
			return false
		}
		tlsLn = tls.NewListener(raw, &tls.Config{Certificates: []tls.Certificate{*cert}})
	}

	udp, uerr := netconn.ListenShared(net.JoinHostPort(ip, strconv.Itoa(actualPort)), nil, nil, nil)
	if uerr != nil {
		_ = tcp.Close()
		if tlsLn != nil {
			_ = tlsLn.Close()
		}
		l.logFail("udp listen failed, reverting to passive mode", uerr)
		return false
	}

	l.tcp, l.tlsLn, l.udp = tcp, tlsLn, udp
	l.active = true
	return true
}

func (l *Listener) logFail(msg string, err error) {
	if l.log != nil {
		l.log.Warn(msg, nclog.Fields{"error": err.Error()})
	}
}

// ServeTCP accepts connections until Stop is called, invoking cb for each.
func (l *Listener) ServeTCP(ln net.Listener, cb AcceptCallback) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		cb(conn)
	}
}

// Serve starts accept loops for the plain and TLS listeners and the UDP
// dispatch loop. Intended to be called once after a successful Start.
func (l *Listener) Serve(accept AcceptCallback, udpCB UDPCallback) {
	if l.tcp != nil {
		go l.ServeTCP(l.tcp, accept)
	}
	if l.tlsLn != nil {
		go l.ServeTCP(l.tlsLn, accept)
	}
	if l.udp != nil {
		go l.udp.Serve(func(p []byte, from *net.UDPAddr) {
			l.dispatchUDP(p, from, udpCB)
		})
	}
}

// dispatchUDP splits a datagram into dialect-terminated messages and hands
// each non-empty one to cb without its terminator. The first byte picks the
// dialect for the whole datagram: 'U' means modern frames split on '\n',
// '$' means legacy frames split on '|' (§4.8). A datagram with any other
// leading byte is logged and dropped.
func (l *Listener) dispatchUDP(payload []byte, from *net.UDPAddr, cb UDPCallback) {
	if len(payload) == 0 {
		return
	}
	var term byte
	switch payload[0] {
	case 'U':
		term = '\n'
	case '$':
		term = '|'
	default:
		if l.log != nil {
			l.log.Debug("unrecognised udp datagram prefix, dropped", nclog.Fields{"from": from.String()})
		}
		return
	}
	for _, msg := range bytes.Split(payload, []byte{term}) {
		if len(msg) > 0 {
			cb(msg, from)
		}
	}
}

// IsActive reports whether active-mode sockets are currently open.
func (l *Listener) IsActive() bool { return l.active }

// LocalUDPAddr returns the bound UDP address, for advertising to peers.
func (l *Listener) LocalUDPAddr() *net.UDPAddr {
	if l.udp == nil {
		return nil
	}
	return l.udp.LocalAddr()
}

// LocalTCPPort returns the bound TCP port, resolved from the kernel when
// the configured port was 0, for advertising our own address in a
// $ConnectToMe/CTM we send.
func (l *Listener) LocalTCPPort() int {
	if l.tcp == nil {
		return 0
	}
	return l.tcp.Addr().(*net.TCPAddr).Port
}

// Stop is idempotent and closes every open socket, reverting to passive
// mode.
func (l *Listener) Stop() {
	if l.tcp != nil {
		_ = l.tcp.Close()
		l.tcp = nil
	}
	if l.tlsLn != nil {
		_ = l.tlsLn.Close()
		l.tlsLn = nil
	}
	if l.udp != nil {
		_ = l.udp.Close()
		l.udp = nil
	}
	l.active = false
}
