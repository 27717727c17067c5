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

package main

import (
	"encoding/base32"
	"fmt"
	"io"
	"net"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/nabbar/ncdc/internal/cc"
	"github.com/nabbar/ncdc/internal/config"
	"github.com/nabbar/ncdc/internal/hub"
	"github.com/nabbar/ncdc/internal/listener"
	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/netconn"
	"github.com/nabbar/ncdc/internal/protocol/nmdc"
	"github.com/nabbar/ncdc/internal/queue"
	"github.com/nabbar/ncdc/internal/rate"
	"github.com/nabbar/ncdc/internal/share"
	"github.com/nabbar/ncdc/internal/tth"
)

// core bundles the runtime state the CC/download event handlers need —
// share index, download queue, slot policy, hub set and the active-mode
// listener — kept out of hub/cc/queue themselves per their own stated
// ownership boundaries (§3).
type core struct {
	cfg    *config.Config
	log    nclog.Logger
	global *rate.Global
	share  *share.Index
	dq     *queue.Queue
	slots  *cc.SlotPolicy
	ln     *listener.Listener
	hubs   []*hub.Hub

	dl downloadManager
}

// pendingDownload is a queue pick waiting for its CC connection to land,
// keyed by the peer's nick since an inbound accept has no hub context yet.
type pendingDownload struct {
	item *queue.DLItem
	uid  string
}

// downloadManager tracks which TTH roots currently occupy a download slot
// (so queue.Tick doesn't repick them) and which queued item a just-sent
// CTM/RCM expects its resulting connection to serve.
type downloadManager struct {
	mu      sync.Mutex
	active  map[tth.Root]bool
	pending map[string]pendingDownload
}

func newDownloadManager() downloadManager {
	return downloadManager{active: make(map[tth.Root]bool), pending: make(map[string]pendingDownload)}
}

func (d *downloadManager) snapshot() map[tth.Root]bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[tth.Root]bool, len(d.active))
	for k, v := range d.active {
		out[k] = v
	}
	return out
}

func (d *downloadManager) start(root tth.Root) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active[root] {
		return false
	}
	d.active[root] = true
	return true
}

func (d *downloadManager) finish(root tth.Root) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.active, root)
}

func (d *downloadManager) await(nick string, item *queue.DLItem, uid string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending[nick] = pendingDownload{item: item, uid: uid}
}

func (d *downloadManager) take(nick string) (*queue.DLItem, string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pending[nick]
	if !ok {
		return nil, "", false
	}
	delete(d.pending, nick)
	return p.item, p.uid, true
}

// b32NoPad is the unpadded base32 encoding TTH roots use on the wire and in
// ADCGET ids.
var b32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

func tthToBase32(root tth.Root) string { return b32NoPad.EncodeToString(root[:]) }

func tthFromBase32(s string) (tth.Root, error) {
	b, err := b32NoPad.DecodeString(s)
	if err != nil {
		return tth.Root{}, err
	}
	var root tth.Root
	if len(b) != len(root) {
		return tth.Root{}, fmt.Errorf("ncdc: TTH root must be %d bytes, got %d", len(root), len(b))
	}
	copy(root[:], b)
	return root, nil
}

// leavesToBlob re-flattens a parsed leaf list back into the blob form
// DLItem.LeafBlob persists, mirroring tth.Tree.Final's own encoding.
func leavesToBlob(leaves []tth.LeafHash) []byte {
	blob := make([]byte, len(leaves)*tth.Size)
	for i, l := range leaves {
		copy(blob[i*tth.Size:], l[:])
	}
	return blob
}

// sourceUID composes a DLUser identifier from the hub it was seen on and
// its hub-local nick, so the download scheduler's Pick can be routed back
// to the right hub connection for its CTM/RCM.
func sourceUID(hubAddr, nick string) string { return hubAddr + "\x00" + nick }

func splitSourceUID(uid string) (hubAddr, nick string, ok bool) {
	return strings.Cut(uid, "\x00")
}

// searchShare walks the share tree for files whose name contains every
// whitespace-separated token of query, case-insensitively — the same
// token-AND matching $Search/SCH use (§4.9's TTH/AND-token search surface).
func searchShare(idx *share.Index, query string) []*share.Node {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}
	var out []*share.Node
	var walk func(n *share.Node)
	walk = func(n *share.Node) {
		for _, c := range n.Children {
			if c.IsDir {
				walk(c)
				continue
			}
			name := strings.ToLower(c.Name)
			matched := true
			for _, t := range tokens {
				if !strings.Contains(name, t) {
					matched = false
					break
				}
			}
			if matched {
				out = append(out, c)
			}
		}
	}
	walk(idx.Root())
	return out
}

// dialCC opens an outbound CC connection, framed legacy-style regardless of
// which hub dialect discovered the peer (§ scope decision: a second
// ADC-native CC codec isn't implemented).
func dialCC(addr string, global *rate.Global) (*netconn.Endpoint, error) {
	conn, err := netconn.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return netconn.New(conn, '|', rate.New(nil, nil), rate.New(nil, nil), global, true), nil
}

// peekNick reads frames until the peer's $MyNick arrives, since neither a
// listener accept nor a connect-to-me dial carries the peer's identity
// before the CC handshake starts.
func peekNick(ep *netconn.Endpoint) (string, error) {
	for i := 0; i < 4; i++ {
		raw, rerr := ep.RecvMessage()
		if rerr != nil {
			return "", rerr
		}
		msg := nmdc.Parse(nmdc.Unescape(string(raw)))
		if msg.Cmd == "MyNick" {
			return msg.Arg, nil
		}
	}
	return "", fmt.Errorf("ncdc: no $MyNick within first frames")
}

// runCCSession decides upload vs download for a freshly connected CC socket
// once its peer's nick is known, and drives the session to completion on
// its own goroutine.
func (c *core) runCCSession(ep *netconn.Endpoint, incoming bool) {
	nick, err := peekNick(ep)
	if err != nil {
		ep.Disconnect()
		return
	}
	key := cc.SlotKey(nick)
	item, uid, ok := c.dl.take(nick)
	sess := cc.New(ep, cc.DialectLegacy, incoming, c.slots, c.log)

	if ok {
		go c.runDownloadSession(sess, item, key, uid)
		return
	}
	go func() {
		if err := sess.ServeUpload(c.cfg.Nickname, key, c.resolveUpload); err != nil {
			c.log.Debug("cc upload session ended", nclog.Fields{"nick": nick, "error": err.Error()})
		}
	}()
}

// acceptInbound wraps a listener-accepted connection into a CC session.
func (c *core) acceptInbound(conn net.Conn) {
	ep := netconn.New(conn, '|', rate.New(nil, nil), rate.New(nil, nil), c.global, true)
	c.runCCSession(ep, true)
}

// resolveUpload implements cc.FileSource against the share index: TTH-keyed
// file and tthl requests are served, file-list and path-keyed requests are
// refused (file-list generation isn't implemented, SPEC_FULL §C).
func (c *core) resolveUpload(req cc.Request) (*os.File, int64, int) {
	isTTH, tthStr, isList, _ := cc.ParseRequestID(req.ID)
	if isList || !isTTH {
		return nil, 0, cc.ErrFileNotAvail
	}
	root, err := tthFromBase32(tthStr)
	if err != nil {
		return nil, 0, cc.ErrProtocol
	}

	switch req.Type {
	case "tthl":
		blob, ok := c.share.TTHBlob(root)
		if !ok {
			return nil, 0, cc.ErrFileNotAvail
		}
		f, err := blobTempFile(blob)
		if err != nil {
			return nil, 0, cc.ErrInternal
		}
		return f, int64(len(blob)), 0

	case "file":
		nodes := c.share.Lookup(root)
		if len(nodes) == 0 {
			return nil, 0, cc.ErrFileNotAvail
		}
		path, ok := c.share.FilesystemPath(nodes[0])
		if !ok {
			return nil, 0, cc.ErrFileNotAvail
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, cc.ErrFileNotAvail
		}
		info, err := f.Stat()
		if err != nil {
			_ = f.Close()
			return nil, 0, cc.ErrInternal
		}
		return f, info.Size(), 0

	default:
		return nil, 0, cc.ErrProtocol
	}
}

// blobTempFile spills an in-memory tthl blob to a temp file so it can ride
// the same ep.SendFile path as a real upload; SendFile is fire-and-forget
// with no completion callback, so cleanup is deferred to a finalizer rather
// than an explicit close/remove after the call returns.
func blobTempFile(blob []byte) (*os.File, error) {
	f, err := os.CreateTemp("", "ncdc-tthl-*")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(blob); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}
	name := f.Name()
	runtime.SetFinalizer(f, func(f *os.File) {
		_ = f.Close()
		_ = os.Remove(name)
	})
	return f, nil
}

// runDownloadSession drives one RunDownload against an already-queued item,
// writing verified blocks straight to their destination offset and folding
// progress/errors back into the queue (§4.10).
func (c *core) runDownloadSession(sess *cc.Session, item *queue.DLItem, key cc.SlotKey, uid string) {
	defer c.dl.finish(item.TTH)

	dest, err := os.OpenFile(item.Destination, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		c.dq.Failed(item.TTH, uid, queue.ErrIODest, err.Error())
		sess.Disconnect()
		return
	}
	defer func() { _ = dest.Close() }()

	plan := &cc.DownloadPlan{TTHRoot: tthToBase32(item.TTH), Size: item.Size, LeafSize: tth.ChooseLeafSize(item.Size)}
	if len(item.LeafBlob) > 0 {
		if leaves, lerr := tth.LeavesFromBlob(item.LeafBlob); lerr == nil {
			plan.Leaves = leaves
		}
	}

	total := uint(tth.NumBlocks(item.Size, plan.LeafSize))
	next := item.NextUnverified()

	cb := cc.DownloadCallbacks{
		Leaves: func(leaves []tth.LeafHash) {
			item.LeafBlob = leavesToBlob(leaves)
		},
		NextBlock: func() (int, bool) {
			if next >= total {
				return 0, false
			}
			b := next
			next++
			return int(b), true
		},
		Block: func(block int, start int64, data []byte) error {
			if _, err := dest.WriteAt(data, start); err != nil {
				return err
			}
			item.MarkVerified(uint(block))
			c.dq.ReceivedBytes(item.TTH, uid, int64(len(data)))
			return nil
		},
		Failed: func(block int, err error) {
			c.dq.Failed(item.TTH, uid, queue.ErrHash, err.Error())
		},
	}

	if err := sess.RunDownload(c.cfg.Nickname, key, plan, cb); err != nil {
		c.log.Warn("cc download session failed", nclog.Fields{"tth": plan.TTHRoot, "error": err.Error()})
		return
	}
	if item.NextUnverified() >= total {
		c.dq.Completed(item.TTH, uid)
	}
}

// tickDownloads implements sched.DownloadFunc: one pass of the download
// queue scheduler, dialing or requesting a connection for each fresh pick.
func (c *core) tickDownloads() {
	active := c.dl.snapshot()
	for _, pick := range c.dq.Tick(c.cfg.DownloadSlots, active) {
		c.startDownload(pick)
	}
}

func (c *core) startDownload(pick queue.Pick) {
	hubAddr, nick, ok := splitSourceUID(pick.UID)
	if !ok {
		return
	}
	h := c.findHub(hubAddr)
	if h == nil || h.Net() == nil || h.Dialect != hub.DialectLegacy {
		return // modern-dialect CTM/RCM isn't wired, see DESIGN.md
	}
	if !c.dl.start(pick.Item.TTH) {
		return
	}
	c.dl.await(nick, pick.Item, pick.UID)

	if c.ln != nil && c.ln.IsActive() {
		h.Net().SendMessage([]byte(hub.BuildConnectToMe(nick, c.cfg.ListenIP, c.ln.LocalTCPPort())))
		return
	}
	h.Net().SendMessage([]byte(hub.BuildRevConnectToMe(c.cfg.Nickname, nick)))
}

// findHub resolves a sourceUID's hub component back to a live *hub.Hub by
// address, matching the convention $SR's trailing (<hub>) segment uses
// (replySearchLegacy fills it from h.Addr, not the user-facing hub name).
func (c *core) findHub(addr string) *hub.Hub {
	for _, h := range c.hubs {
		if h.Addr == addr {
			return h
		}
	}
	return nil
}

// handleLegacyEvent acts on the events HandleLegacy hands back: search
// replies, new sources for a queued download, the connect-to-me/
// rev-connect-to-me dance, and best-effort logging for the rest (§4.5-§4.8).
func (c *core) handleLegacyEvent(h *hub.Hub, ev *hub.LegacyEvent) {
	if ev == nil {
		return
	}
	switch ev.Kind {
	case "search":
		if s, ok := ev.Data.(nmdc.Search); ok {
			c.replySearchLegacy(h, s)
		}
	case "search-result":
		if sr, ok := ev.Data.(nmdc.SearchResult); ok {
			c.applySearchResultLegacy(h, sr)
		}
	case "chat":
		line, _ := ev.Data.(string)
		c.log.Info("hub chat", nclog.Fields{"hub": h.Name, "line": line})
	case "pm":
		line, _ := ev.Data.(string)
		c.log.Info("private message", nclog.Fields{"hub": h.Name, "line": line})
	case "connect-to-me":
		if arg, ok := ev.Data.(string); ok {
			c.acceptConnectToMe(h, arg)
		}
	case "rev-connect-to-me":
		if arg, ok := ev.Data.(string); ok {
			c.acceptRevConnectToMe(h, arg)
		}
	case "force-move":
		addr, _ := ev.Data.(string)
		c.log.Warn("hub requested force-move, not following automatically", nclog.Fields{"hub": h.Name, "target": addr})
	case "nick-taken":
		c.log.Warn("nickname rejected by hub", nclog.Fields{"hub": h.Name, "nick": h.OwnNick})
	case "password-request":
		c.log.Warn("hub requires a password but none is configured", nclog.Fields{"hub": h.Name})
	}
}

// handleModernEvent mirrors handleLegacyEvent for the modern dialect.
// search/connect-to-me/rev-connect-to-me are logged rather than acted on:
// real ADC SCH/RES/CTM/RCM carry positional tokens adc.ParseParams can't
// decode (it reads the first two characters of every field as a parameter
// name and rejects shorter tokens), and
// building a second ADC-native tokenizer is out of scope here.
func (c *core) handleModernEvent(h *hub.Hub, ev *hub.ModernEvent) (fatal bool) {
	if ev == nil {
		return false
	}
	switch ev.Kind {
	case "fatal-status":
		c.log.Warn("hub sent fatal status, disconnecting", nclog.Fields{"hub": h.Name})
		return true
	case "advisory-status":
		c.log.Info("hub status", nclog.Fields{"hub": h.Name})
	case "password-request":
		c.log.Warn("hub requires a password but none is configured", nclog.Fields{"hub": h.Name})
	case "chat":
		c.log.Info("hub chat", nclog.Fields{"hub": h.Name})
	default:
		c.log.Debug("modern event not dispatched", nclog.Fields{"hub": h.Name, "kind": ev.Kind})
	}
	return false
}

// replySearchLegacy answers a $Search against the share index, relaying
// through the hub when the searcher asked for passive (Hub:<nick>) replies
// and sending a direct UDP datagram otherwise (§4.9).
func (c *core) replySearchLegacy(h *hub.Hub, s nmdc.Search) {
	matches := searchShare(c.share, s.Query)
	if len(matches) == 0 {
		return
	}
	if len(matches) > 10 {
		matches = matches[:10] // cap replies per request, as real clients do
	}

	askerNick := strings.TrimPrefix(s.Target, "Hub:")
	relay := askerNick != s.Target

	for _, n := range matches {
		sr := nmdc.SearchResult{
			Nick:     c.cfg.Nickname,
			Path:     n.Path(),
			Size:     n.Size,
			Slots:    c.cfg.Slots - c.slots.UsedSlots(),
			MaxSlots: c.cfg.Slots,
			HubAddr:  h.Addr,
		}
		if n.HasTTH {
			sr.TTH = tthToBase32(n.TTH)
		}

		if relay {
			h.Net().SendMessage([]byte(nmdc.Encode("SR", nmdc.EncodeSearchResult(sr, askerNick))))
			continue
		}
		c.sendUDP(s.Target, nmdc.Encode("SR", nmdc.EncodeSearchResult(sr, "")))
	}
}

func (c *core) sendUDP(addr, frame string) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		c.log.Debug("udp search reply failed", nclog.Fields{"addr": addr, "error": err.Error()})
		return
	}
	defer func() { _ = conn.Close() }()
	_, _ = conn.Write([]byte(frame + "|"))
}

// applySearchResultLegacy attaches a newly discovered peer as a download
// source when its TTH matches an item we already have queued.
func (c *core) applySearchResultLegacy(h *hub.Hub, sr nmdc.SearchResult) {
	if sr.TTH == "" {
		return
	}
	root, err := tthFromBase32(sr.TTH)
	if err != nil {
		return
	}
	if _, ok := c.dq.Item(root); !ok {
		return
	}
	c.dq.AddSource(root, sourceUID(h.Addr, sr.Nick))
}

// acceptConnectToMe dials the address a peer advertised, regardless of
// whether we're being asked to upload or to take delivery of a pending
// download (decided once the CC handshake reveals their nick).
func (c *core) acceptConnectToMe(h *hub.Hub, arg string) {
	parts := strings.Fields(arg)
	if len(parts) == 0 {
		return
	}
	addr := parts[len(parts)-1]
	ep, err := dialCC(addr, c.global)
	if err != nil {
		c.log.Debug("connect-to-me dial failed", nclog.Fields{"hub": h.Name, "addr": addr, "error": err.Error()})
		return
	}
	c.runCCSession(ep, false)
}

// acceptRevConnectToMe answers a passive peer's request by sending our own
// ConnectToMe, only possible when we're in active mode ourselves.
func (c *core) acceptRevConnectToMe(h *hub.Hub, arg string) {
	parts := strings.Fields(arg)
	if len(parts) < 1 {
		return
	}
	fromNick := parts[0]
	if c.ln == nil || !c.ln.IsActive() {
		c.log.Debug("ignoring rev-connect-to-me, we are passive too", nclog.Fields{"hub": h.Name, "from": fromNick})
		return
	}
	h.Net().SendMessage([]byte(hub.BuildConnectToMe(fromNick, c.cfg.ListenIP, c.ln.LocalTCPPort())))
}

// udpCallback decodes a dialect-dispatched datagram. Only the legacy $SR
// search-result frame is acted on; anything else is logged and dropped.
func (c *core) udpCallback(payload []byte, from *net.UDPAddr) {
	if len(payload) == 0 || payload[0] != '$' {
		return
	}
	msg := nmdc.Parse(nmdc.Unescape(strings.TrimSuffix(string(payload), "|")))
	if msg.Cmd != "SR" {
		return
	}
	sr, err := nmdc.ParseSearchResult(msg.Arg)
	if err != nil {
		c.log.Debug("malformed udp $SR", nclog.Fields{"from": from.String(), "error": err.Error()})
		return
	}
	if sr.TTH == "" {
		return
	}
	root, err := tthFromBase32(sr.TTH)
	if err != nil {
		return
	}
	if _, ok := c.dq.Item(root); !ok {
		return
	}
	c.dq.AddSource(root, sourceUID(sr.HubAddr, sr.Nick))
}
