// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes the scheduler's Prometheus collectors: a gauge
// guard pattern translated directly into prometheus/client_golang
// collectors registered against a caller-supplied registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors bundles the scheduler's observability surface. A nil
// *Collectors disables metrics entirely; every method on it is a safe
// no-op.
type Collectors struct {
	PendingSize      prometheus.Gauge
	NurseryDepth     prometheus.Gauge
	Transmits        prometheus.Counter
	Evictions        prometheus.Counter
	CyclesDetected   prometheus.Counter
}

// NewCollectors registers the scheduler's collectors against reg and
// returns them. Passing a nil reg disables registration but still returns
// usable collectors, so callers never need a nil check on a *Collectors
// returned from here. A nil *Collectors for "metrics off" call sites is
// written directly by the caller.
func NewCollectors(reg prometheus.Registerer, namespace string) *Collectors {
	c := &Collectors{
		PendingSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_size",
			Help:      "Number of transactions currently in the pending set.",
		}),
		NurseryDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nursery_depth",
			Help:      "Number of send events currently deferred in the nursery.",
		}),
		Transmits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transmits_total",
			Help:      "Total number of transactions handed to the transmit callback.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of transaction ids evicted on unconfirmed check.",
		}),
		CyclesDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycle_detected_total",
			Help:      "Total number of ticks aborted due to a dependency cycle.",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.PendingSize, c.NurseryDepth, c.Transmits, c.Evictions, c.CyclesDetected)
	}
	return c
}

func (c *Collectors) setPending(n int) {
	if c == nil {
		return
	}
	c.PendingSize.Set(float64(n))
}

func (c *Collectors) setNursery(n int) {
	if c == nil {
		return
	}
	c.NurseryDepth.Set(float64(n))
}

func (c *Collectors) addTransmits(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.Transmits.Add(float64(n))
}

func (c *Collectors) addEvictions(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.Evictions.Add(float64(n))
}

func (c *Collectors) incCycleDetected() {
	if c == nil {
		return
	}
	c.CyclesDetected.Inc()
}

// Observe updates every gauge/counter for one completed tick. pendingSize
// and nurseryDepth are absolute snapshots; transmitted and evicted are
// deltas for this tick.
func (c *Collectors) Observe(pendingSize, nurseryDepth, transmitted, evicted int) {
	c.setPending(pendingSize)
	c.setNursery(nurseryDepth)
	c.addTransmits(transmitted)
	c.addEvictions(evicted)
}

// ObserveCycleDetected records that a tick aborted due to a dependency
// cycle.
func (c *Collectors) ObserveCycleDetected() {
	c.incCycleDetected()
}
