// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package submission implements the wallet transaction submission
// scheduler: a slot-driven retry/eviction engine. It owns a pending set
// and a schedule, performs per-tick topological gating against in-flight
// ancestors, and delegates actual network transmission to an injected
// resubmission function.
//
// A single owning struct constructed once, mutated only through its own
// exported operations, instrumented with optional metrics the way a
// transaction pool instruments subpool reservations.
package submission

import (
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"

	"github.com/luxfi/walletsubmit/internal/pending"
	"github.com/luxfi/walletsubmit/internal/resubmit"
	"github.com/luxfi/walletsubmit/internal/schedule"
	"github.com/luxfi/walletsubmit/internal/slot"
	"github.com/luxfi/walletsubmit/internal/txaux"
	"github.com/luxfi/walletsubmit/internal/txid"
	"github.com/luxfi/walletsubmit/metrics"
)

// Scheduler is the single-owner, single-threaded submission scheduler.
// Every mutating method returns a new *Scheduler; callers embedding it in a
// concurrent environment are responsible for serializing access, per the
// concurrency model: Tick is the only operation that yields control to the
// injected resubmission function.
type Scheduler struct {
	pending  pending.Set
	sched    schedule.Schedule
	current  slot.Slot
	resubmit resubmit.Func
	metrics  *metrics.Collectors
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithMetrics attaches a metrics.Collectors updated on every Tick. A nil
// collectors value disables metrics, which is also the default.
func WithMetrics(c *metrics.Collectors) Option {
	return func(s *Scheduler) { s.metrics = c }
}

// New builds a fresh scheduler at slot zero with an empty pending set and
// an empty schedule, parameterized by the resubmission function that Tick
// delegates ready events to.
func New(resubmitFn resubmit.Func, opts ...Option) *Scheduler {
	s := &Scheduler{
		pending:  pending.Empty(),
		sched:    schedule.Empty(),
		current:  slot.Zero,
		resubmit: resubmitFn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) clone() *Scheduler {
	return &Scheduler{
		pending:  s.pending,
		sched:    s.sched,
		current:  s.current,
		resubmit: s.resubmit,
		metrics:  s.metrics,
	}
}

// AddPending unions batch into the pending set and prepends one send event
// per id in batch at current_slot+1 with submission count 0 — one slot in
// the future, so that a downstream Tick for the current slot does not
// double-emit them.
func (s *Scheduler) AddPending(batch map[txid.ID]txaux.TxAux) *Scheduler {
	next := s.clone()
	next.pending = s.pending.Union(batch)

	sends := make([]schedule.SendEvent, 0, len(batch))
	// iterate the unioned set's deterministic order so the freshly added
	// ids are prepended in a stable order regardless of map iteration.
	tmp := pending.Empty().Union(batch)
	tmp.Iter(func(id txid.ID, aux txaux.TxAux) {
		sends = append(sends, schedule.SendEvent{ID: id, Aux: aux, Count: 0})
	})
	at := s.current.Next()
	next.sched = s.sched.Prepend(at, schedule.Events{Sends: sends})
	return next
}

// RemPending removes ids from the pending set. It does not prune the
// schedule; stale send events are filtered lazily during Tick.
func (s *Scheduler) RemPending(ids []txid.ID) *Scheduler {
	next := s.clone()
	next.pending = s.pending.Difference(ids)
	return next
}

// AddToSchedule is an escape hatch for tests and for resubmission functions
// that wish to splice extra events into the schedule directly.
func (s *Scheduler) AddToSchedule(at slot.Slot, sends []schedule.SendEvent, confirms []schedule.ConfirmEvent) *Scheduler {
	next := s.clone()
	next.sched = s.sched.Prepend(at, schedule.Events{Sends: sends, Confirms: confirms})
	return next
}

// Pending returns the current pending set.
func (s *Scheduler) Pending() pending.Set { return s.pending }

// Schedule returns the current schedule.
func (s *Scheduler) Schedule() schedule.Schedule { return s.sched }

// CurrentSlot returns the slot the next Tick will process.
func (s *Scheduler) CurrentSlot() slot.Slot { return s.current }

// Tick advances the scheduler by one slot. It pops the due bucket, merges
// in the nursery, filters out ids no longer pending, topologically sorts
// the remainder, partitions it into ready/deferred, delegates the ready
// list to the resubmission function, computes evictions from due confirm
// events still pending, prunes them, and advances the slot.
//
// If the candidates form a dependency cycle, onError is invoked with a
// *LoopDetectedError and the scheduler is returned unchanged: the pop and
// every subsequent step only commit once the topological sort succeeds, so
// an aborted tick leaves state genuinely untouched.
func (s *Scheduler) Tick(onError func(error)) ([]txid.ID, *Scheduler) {
	current := s.current
	bucket, afterPop := s.sched.Pop(current)

	candidates := make([]schedule.SendEvent, 0, len(bucket.ToSend)+len(afterPop.Nursery()))
	candidates = append(candidates, bucket.ToSend...)
	candidates = append(candidates, afterPop.Nursery()...)

	var filtered []schedule.SendEvent
	for _, ev := range candidates {
		if s.pending.Contains(ev.ID) {
			filtered = append(filtered, ev)
		}
	}

	sorted, ok := toposort(filtered)
	if !ok {
		ids := make([]txid.ID, len(filtered))
		for i, ev := range filtered {
			ids[i] = ev.ID
		}
		if s.metrics != nil {
			s.metrics.ObserveCycleDetected()
		}
		if onError != nil {
			onError(&LoopDetectedError{Pending: ids})
		}
		return nil, s
	}

	ready, deferred := partition(sorted, s.pending)

	sched2 := afterPop.SetNursery(deferred)
	sched3 := s.resubmit(current, ready, sched2)

	var evicted []txid.ID
	for _, ev := range bucket.ToConfirm {
		if s.pending.Contains(ev.ID) {
			evicted = append(evicted, ev.ID)
		}
	}

	next := s.clone()
	next.pending = s.pending.Difference(evicted)
	next.sched = sched3
	next.current = current.Next()

	if s.metrics != nil {
		s.metrics.Observe(next.pending.Len(), len(next.sched.Nursery()), len(ready), len(evicted))
	}
	log.Debug("submission tick complete", "slot", current, "ready", len(ready), "deferred", len(deferred), "evicted", len(evicted))

	return evicted, next
}

// partition splits the topologically sorted candidates into ready and
// deferred, walking front-to-back and tracking which ids have already been
// committed to the ready list. An event is deferred iff one of its
// non-unknown inputs is itself pending and has not already joined ready.
func partition(sorted []schedule.SendEvent, pendingSet pending.Set) (ready, deferred []schedule.SendEvent) {
	readyIDs := set.NewSet[txid.ID](len(sorted))
	for _, ev := range sorted {
		blocked := false
		for _, in := range ev.Aux.Inputs {
			if !in.Known {
				continue
			}
			if !pendingSet.Contains(in.Producer) {
				continue
			}
			if readyIDs.Contains(in.Producer) {
				continue
			}
			blocked = true
			break
		}
		if blocked {
			deferred = append(deferred, ev)
			continue
		}
		ready = append(ready, ev)
		readyIDs.Add(ev.ID)
	}
	return ready, deferred
}
