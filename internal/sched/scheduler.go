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

// Package sched is the event loop of spec §4.11: the six periodic ticks
// (rate metering, expectation sweep / INF re-broadcast, hub reconnect,
// share refresh, idle/keepalive audit, download scheduling) and the
// bounded worker pool that
// runs hashing and file I/O off the tick goroutine.
package sched

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/nabbar/ncdc/internal/expect"
	"github.com/nabbar/ncdc/internal/hub"
	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/netconn"
	"github.com/nabbar/ncdc/internal/rate"
	"github.com/nabbar/ncdc/internal/share"
)

const (
	rateTick     = 1 * time.Second
	sweepTick    = 120 * time.Second
	reconnectTick = 30 * time.Second
	shareTick    = 60 * time.Second
	idleTick     = 5 * time.Second
	downloadTick = 5 * time.Second

	// MinShareRefreshInterval floors the configured share-refresh period
	// at ten minutes (§4.11, SPEC_FULL §C); 0 disables periodic refresh.
	MinShareRefreshInterval = 10 * time.Minute
)

// HubSource supplies the live hub set and endpoint set each tick, kept
// outside this package per §3 Ownership (the core, not the scheduler, owns
// Hub/CC lifetime).
type HubSource func() []*hub.Hub

// EndpointSource supplies every live Net endpoint needing idle/keepalive
// auditing: hub connections plus active CC sessions.
type EndpointSource func() []*netconn.Endpoint

// ReconnectFunc is invoked for a hub whose 30-second reconnect delay has
// elapsed.
type ReconnectFunc func(h *hub.Hub)

// RebroadcastFunc is invoked once per hub on the 120-second tick so the
// core can recompute share/slot totals and decide whether to broadcast.
type RebroadcastFunc func(h *hub.Hub)

// DownloadFunc drives one pass of the download connection scheduler
// (§4.10's queue.Tick), owned by the core since it needs the live queue,
// slot budget and hub user tables to turn a Pick into an outbound dial.
type DownloadFunc func()

// Scheduler drives the periodic ticks and a bounded worker pool for
// background jobs (hashing, file I/O) submitted by the core.
type Scheduler struct {
	log    nclog.Logger
	global *rate.Global
	expect *expect.Table
	share  *share.Index

	hubs          HubSource
	endpoints     EndpointSource
	onRebroadcast RebroadcastFunc
	reconnect     ReconnectFunc
	onDownload    DownloadFunc

	shareRefreshInterval time.Duration
	lastShareRefresh     time.Time

	sem *semaphore.Weighted
}

// New creates a Scheduler. maxWorkers bounds the hashing/file-I/O pool
// (§4.11's "bounded worker pool"), following the same weighted-semaphore
// shape golib's worker helpers use around errgroup.
func New(log nclog.Logger, global *rate.Global, exp *expect.Table, idx *share.Index,
	hubs HubSource, endpoints EndpointSource, reconnect ReconnectFunc, rebroadcast RebroadcastFunc,
	download DownloadFunc, shareRefreshInterval time.Duration, maxWorkers int64) *Scheduler {

	if shareRefreshInterval > 0 && shareRefreshInterval < MinShareRefreshInterval {
		shareRefreshInterval = MinShareRefreshInterval
	}

	return &Scheduler{
		log:                  log,
		global:               global,
		expect:               exp,
		share:                idx,
		hubs:                 hubs,
		endpoints:            endpoints,
		reconnect:            reconnect,
		onRebroadcast:        rebroadcast,
		onDownload:           download,
		shareRefreshInterval: shareRefreshInterval,
		sem:                  semaphore.NewWeighted(maxWorkers),
	}
}

// Submit runs fn on the bounded worker pool, blocking until a slot is free
// or ctx is cancelled.
func (s *Scheduler) Submit(ctx context.Context, fn func(context.Context) error) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	go func() {
		defer s.sem.Release(1)
		if err := fn(ctx); err != nil && s.log != nil {
			s.log.Warn("background job failed", nclog.Fields{"error": err.Error()})
		}
	}()
	return nil
}

// Run drives every periodic tick until ctx is cancelled, using an
// errgroup so a tick goroutine's panic-free error still tears down the
// others.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.loop(ctx, rateTick, s.tickRate) })
	g.Go(func() error { return s.loop(ctx, sweepTick, s.tickSweep) })
	g.Go(func() error { return s.loop(ctx, reconnectTick, s.tickReconnect) })
	g.Go(func() error { return s.loop(ctx, shareTick, s.tickShare) })
	g.Go(func() error { return s.loop(ctx, idleTick, s.tickIdle) })
	g.Go(func() error { return s.loop(ctx, downloadTick, s.tickDownload) })

	return g.Wait()
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, fn func()) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			fn()
		}
	}
}

// tickRate folds the last second's traffic into the smoothed global rate
// (§4.1, §4.11).
func (s *Scheduler) tickRate() {
	if s.global != nil {
		s.global.Tick()
	}
}

// tickSweep expires stale connection expectations and triggers each hub's
// own-info re-broadcast decision (§4.7, §4.11).
func (s *Scheduler) tickSweep() {
	if s.expect != nil {
		s.expect.Sweep()
	}
	if s.hubs == nil || s.onRebroadcast == nil {
		return
	}
	for _, h := range s.hubs() {
		s.onRebroadcast(h)
	}
}

// tickReconnect retries any hub whose 30-second automatic-reconnect delay
// has elapsed (§4.5, §4.11).
func (s *Scheduler) tickReconnect() {
	if s.hubs == nil || s.reconnect == nil {
		return
	}
	for _, h := range s.hubs() {
		if h.ReconnectDue() {
			s.reconnect(h)
		}
	}
}

// tickShare re-scans the share roots once the configured interval (floored
// at ten minutes) has elapsed (§4.11, SPEC_FULL §C).
func (s *Scheduler) tickShare() {
	if s.share == nil || s.shareRefreshInterval == 0 {
		return
	}
	if time.Since(s.lastShareRefresh) < s.shareRefreshInterval {
		return
	}
	s.lastShareRefresh = time.Now()
	if err := s.share.RefreshAll(); err != nil && s.log != nil {
		s.log.Warn("share refresh failed", nclog.Fields{"error": err.Error()})
	}
}

// tickIdle audits every live Net endpoint, sending a keepalive or letting
// the caller know a connection timed out (§4.4, §4.11).
func (s *Scheduler) tickIdle() {
	if s.endpoints == nil {
		return
	}
	for _, ep := range s.endpoints() {
		keepaliveDue, timedOut := ep.IdleAudit()
		switch {
		case timedOut:
			ep.Disconnect()
		case keepaliveDue:
			ep.SendKeepalive()
		}
	}
}

// tickDownload drives one pass of the download connection scheduler
// (§4.10, §4.11).
func (s *Scheduler) tickDownload() {
	if s.onDownload != nil {
		s.onDownload()
	}
}
