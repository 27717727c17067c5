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

package cc

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/nabbar/ncdc/internal/protocol/nmdc"
	"github.com/nabbar/ncdc/internal/tth"
)

// FileSource resolves an upload request onto a real, already-opened file
// and its total size, or a nil file with one of the §4.6 ADCGET error
// codes when the request can't be served.
type FileSource func(req Request) (f *os.File, size int64, code int)

// ServeUpload drives one legacy-dialect CC session on the serving side:
// the $MyNick/$Lock/$Key handshake, $Direction negotiation, and every
// $ADCGET this peer sends on the connection, until it disconnects.
// resolve maps a decoded Request onto a real file; peerKey identifies the
// peer for slot accounting.
func (s *Session) ServeUpload(ownNick string, peerKey SlotKey, resolve FileSource) error {
	s.EnterHandshake()
	ep := s.net

	ep.SendMessage([]byte(nmdc.Encode("MyNick", ownNick)))
	ep.SendMessage([]byte(nmdc.Encode("Lock", fmt.Sprintf("EXTENDEDGENERATEDLOCKNCDC%08x Pk=ncdc", rand.Uint32()))))

	for {
		raw, rerr := ep.RecvMessage()
		if rerr != nil {
			s.Disconnect()
			return rerr
		}
		msg := nmdc.Parse(nmdc.Unescape(string(raw)))

		switch msg.Cmd {
		case "Lock":
			l := nmdc.ParseLock(msg.Arg)
			ep.SendMessage([]byte(nmdc.Encode("Key", string(nmdc.LockToKey([]byte(l.Lock))))))

		case "Direction":
			s.HandshakeDone(peerKey, "")
			ep.SendMessage([]byte(nmdc.Encode("Direction", "Upload 0")))

		case "ADCGET":
			s.handleADCGet(msg.Arg, peerKey, resolve)

		case "Quit":
			s.Disconnect()
			return nil
		}
	}
}

func (s *Session) handleADCGet(arg string, peerKey SlotKey, resolve FileSource) {
	ep := s.net

	g, err := nmdc.ParseADCGet(arg)
	if err != nil {
		ep.SendMessage([]byte(fmt.Sprintf("$Error %d malformed request", ErrProtocol)))
		return
	}
	req := Request{Type: g.Type, ID: g.ID, Start: g.Start, Bytes: g.Bytes}
	if code, ok := ClassifyRequest(req); !ok {
		ep.SendMessage([]byte(fmt.Sprintf("$Error %d", code)))
		return
	}

	_, _, isList, _ := ParseRequestID(req.ID)

	ok, mini := s.slots.RequestSlot(peerKey, NeedsFullSlot(isList, g.Bytes), false)
	if !ok {
		ep.SendMessage([]byte(fmt.Sprintf("$Error %d no slots available", ErrNoSlots)))
		return
	}
	s.slotGranted = true
	s.slotMini = mini

	f, size, code := resolve(req)
	if f == nil {
		s.slots.Release(peerKey)
		s.slotGranted = false
		ep.SendMessage([]byte(fmt.Sprintf("$Error %d", code)))
		return
	}

	length := g.Bytes
	if length < 0 {
		length = size - g.Start
	}

	s.BeginUpload()
	s.SetFileLeft(length)
	ep.SendMessage([]byte(nmdc.Encode("ADCSnd", nmdc.EncodeADCSnd(nmdc.ADCGet{Type: g.Type, ID: g.ID, Start: g.Start, Bytes: length}))))
	ep.SendFile(f, g.Start, length, true)
}

// DownloadPlan describes one outstanding fetch to drive against a peer.
// Leaves is nil until the tthl fetch has completed.
type DownloadPlan struct {
	TTHRoot  string // base32-encoded TTH root, used as the ADCGET id
	Size     int64
	LeafSize int64
	Leaves   []tth.LeafHash
}

// DownloadCallbacks lets the caller react to each stage of a download
// without cc owning download-queue or filesystem state directly (§3
// Ownership).
type DownloadCallbacks struct {
	// Leaves is called once the tthl blob has been fetched and parsed.
	Leaves func(leaves []tth.LeafHash)
	// NextBlock returns the next block to fetch, or ok=false when nothing
	// is left (download complete).
	NextBlock func() (block int, ok bool)
	// Block is called with one hash-verified block's bytes at the given
	// file offset; the caller writes it to disk and updates the queue.
	Block func(block int, start int64, data []byte) error
	// Failed is called when a block cannot be fetched or fails hash
	// verification.
	Failed func(block int, err error)
}

// RunDownload drives one legacy-dialect CC session on the requesting side:
// handshake, $Direction negotiation, a $ADCGET tthl fetch if plan.Leaves is
// nil, and then a sequence of $ADCGET file block fetches, each verified
// against the tthl leaves before being handed to cb.Block.
func (s *Session) RunDownload(ownNick string, peerKey SlotKey, plan *DownloadPlan, cb DownloadCallbacks) error {
	s.EnterHandshake()
	ep := s.net

	ep.SendMessage([]byte(nmdc.Encode("MyNick", ownNick)))
	ep.SendMessage([]byte(nmdc.Encode("Lock", fmt.Sprintf("EXTENDEDGENERATEDLOCKNCDC%08x Pk=ncdc", rand.Uint32()))))

	keyed := false
	directed := false
	for !directed {
		raw, rerr := ep.RecvMessage()
		if rerr != nil {
			s.Disconnect()
			return rerr
		}
		msg := nmdc.Parse(nmdc.Unescape(string(raw)))
		switch msg.Cmd {
		case "Lock":
			l := nmdc.ParseLock(msg.Arg)
			ep.SendMessage([]byte(nmdc.Encode("Key", string(nmdc.LockToKey([]byte(l.Lock))))))
			keyed = true
		case "Direction":
			if keyed {
				ep.SendMessage([]byte(nmdc.Encode("Direction", fmt.Sprintf("Download %d", rand.Uint32()%1000))))
				directed = true
			}
		}
	}
	s.HandshakeDone(peerKey, "")
	s.BeginDownload()

	if plan.Leaves == nil {
		leaves, err := s.fetchTTHL(plan)
		if err != nil {
			s.Disconnect()
			return err
		}
		plan.Leaves = leaves
		if cb.Leaves != nil {
			cb.Leaves(leaves)
		}
	}

	for {
		block, ok := cb.NextBlock()
		if !ok {
			break
		}
		start := int64(block) * plan.LeafSize
		length := plan.LeafSize
		if start+length > plan.Size {
			length = plan.Size - start
		}

		data, err := s.fetchBlock(plan, start, length)
		if err != nil {
			cb.Failed(block, err)
			s.Disconnect()
			return err
		}
		if !tth.VerifyBlock(plan.Leaves, block, data) {
			cb.Failed(block, fmt.Errorf("cc: block %d failed hash verification", block))
			continue
		}
		s.SetRecvLeft(plan.Size - start - length)
		if err := cb.Block(block, start, data); err != nil {
			s.Disconnect()
			return err
		}
	}

	s.EndTransfer()
	s.Disconnect()
	return nil
}

func (s *Session) fetchTTHL(plan *DownloadPlan) ([]tth.LeafHash, error) {
	ep := s.net
	ep.SendMessage([]byte(nmdc.Encode("ADCGET", nmdc.EncodeADCGet(nmdc.ADCGet{Type: "tthl", ID: "TTH/" + plan.TTHRoot, Start: 0, Bytes: -1}))))

	raw, rerr := ep.RecvMessage()
	if rerr != nil {
		return nil, rerr
	}
	msg := nmdc.Parse(nmdc.Unescape(string(raw)))
	if msg.Cmd != "ADCSnd" {
		return nil, fmt.Errorf("cc: expected ADCSnd reply to tthl request, got %q", msg.Cmd)
	}
	snd, err := nmdc.ParseADCGet(msg.Arg)
	if err != nil {
		return nil, err
	}

	var blob []byte
	if rerr := ep.RecvRaw(snd.Bytes, true, func(p []byte) error {
		blob = append(blob, p...)
		return nil
	}); rerr != nil {
		return nil, rerr
	}
	return tth.LeavesFromBlob(blob)
}

func (s *Session) fetchBlock(plan *DownloadPlan, start, length int64) ([]byte, error) {
	ep := s.net
	ep.SendMessage([]byte(nmdc.Encode("ADCGET", nmdc.EncodeADCGet(nmdc.ADCGet{Type: "file", ID: "TTH/" + plan.TTHRoot, Start: start, Bytes: length}))))

	raw, rerr := ep.RecvMessage()
	if rerr != nil {
		return nil, rerr
	}
	msg := nmdc.Parse(nmdc.Unescape(string(raw)))
	if msg.Cmd != "ADCSnd" {
		return nil, fmt.Errorf("cc: expected ADCSnd reply to file request, got %q", msg.Cmd)
	}
	snd, err := nmdc.ParseADCGet(msg.Arg)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, snd.Bytes)
	if rerr := ep.RecvRaw(snd.Bytes, true, func(p []byte) error {
		data = append(data, p...)
		return nil
	}); rerr != nil {
		return nil, rerr
	}
	return data, nil
}
