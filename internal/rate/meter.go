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

// Package rate implements the sliding one-second bandwidth meter of spec
// §4.1: an exponentially smoothed rate plus a monotonic total, safe to feed
// from worker goroutines while read from the event loop.
package rate

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Meter is a single-direction traffic counter for one stream or the
// process-wide aggregate.
type Meter struct {
	pending atomic.Int64 // bytes recorded since the last tick, not yet folded in
	rate    atomic.Int64 // smoothed bytes/second
	total   atomic.Uint64

	gaugeRate  prometheus.Gauge
	counterTot prometheus.Counter
}

// New creates a Meter. Either gauge may be nil when Prometheus export is
// not wired for this instance (per-endpoint meters are typically unexported;
// the two Global meters are exported).
func New(gaugeRate prometheus.Gauge, counterTot prometheus.Counter) *Meter {
	return &Meter{gaugeRate: gaugeRate, counterTot: counterTot}
}

// Record accounts n bytes transferred. Safe to call from any goroutine.
func (m *Meter) Record(n int64) {
	if n <= 0 {
		return
	}
	m.pending.Add(n)
	m.total.Add(uint64(n))
	if m.counterTot != nil {
		m.counterTot.Add(float64(n))
	}
}

// Tick folds the bytes recorded during the last second into the smoothed
// rate with weight 0.5, per spec §4.1. Must be called once per second from
// the scheduler.
func (m *Meter) Tick() {
	newBytes := m.pending.Swap(0)
	old := m.rate.Load()
	next := old + (newBytes-old)/2
	m.rate.Store(next)
	if m.gaugeRate != nil {
		m.gaugeRate.Set(float64(next))
	}
}

// Rate returns the current smoothed bytes-per-second estimate.
func (m *Meter) Rate() int64 { return m.rate.Load() }

// Total returns the monotonic byte counter since creation.
func (m *Meter) Total() uint64 { return m.total.Load() }

// Global aggregates every endpoint's ingress or egress traffic. Per the
// spec, per-endpoint meters are NOT folded into these counters twice: a
// caller that owns both an endpoint Meter and the Global pair calls Record
// on the endpoint meter and on the matching Global meter independently, so
// Global is an aggregate of recorded calls, not a parent of the per-
// endpoint set.
type Global struct {
	In  *Meter
	Out *Meter
}

// NewGlobal builds the process-wide ingress/egress pair, registering
// Prometheus gauges/counters under the ncdc_traffic_* names.
func NewGlobal(reg prometheus.Registerer) *Global {
	inRate := prometheus.NewGauge(prometheus.GaugeOpts{Name: "ncdc_traffic_in_bytes_per_second"})
	outRate := prometheus.NewGauge(prometheus.GaugeOpts{Name: "ncdc_traffic_out_bytes_per_second"})
	inTotal := prometheus.NewCounter(prometheus.CounterOpts{Name: "ncdc_traffic_in_bytes_total"})
	outTotal := prometheus.NewCounter(prometheus.CounterOpts{Name: "ncdc_traffic_out_bytes_total"})

	if reg != nil {
		reg.MustRegister(inRate, outRate, inTotal, outTotal)
	}

	return &Global{
		In:  New(inRate, inTotal),
		Out: New(outRate, outTotal),
	}
}

// Tick ticks both directions.
func (g *Global) Tick() {
	g.In.Tick()
	g.Out.Tick()
}
