// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package schedule implements the scheduler's slot -> bucket map and its
// nursery of dependency-deferred send events.
package schedule

import (
	"github.com/luxfi/walletsubmit/internal/slot"
	"github.com/luxfi/walletsubmit/internal/txaux"
	"github.com/luxfi/walletsubmit/internal/txid"
)

// SendEvent is an obligation to transmit a transaction at a given slot with
// a given attempt count.
type SendEvent struct {
	ID    txid.ID
	Aux   txaux.TxAux
	Count uint64
}

// ConfirmEvent is an obligation to check, at a given slot, whether a
// transaction is still pending; if so it is evicted.
type ConfirmEvent struct {
	ID txid.ID
}

// Bucket holds the events due at a single slot. The two lists are
// independent; within each, events from the most recent Prepend call come
// first, and each call's events keep their own order.
type Bucket struct {
	ToSend    []SendEvent
	ToConfirm []ConfirmEvent
}

// Events bundles the sends and confirms passed to Prepend/AddToSchedule in
// a single call.
type Events struct {
	Sends    []SendEvent
	Confirms []ConfirmEvent
}

// Schedule is the scheduler's outstanding-obligations map: a slot -> bucket
// map plus a nursery of deferred send events. Every mutating method returns
// a new Schedule value.
type Schedule struct {
	buckets map[int64]Bucket
	nursery []SendEvent
}

// Empty returns a schedule with no scheduled buckets and an empty nursery.
func Empty() Schedule {
	return Schedule{buckets: map[int64]Bucket{}}
}

// Pop returns the bucket scheduled at s (the zero Bucket if none was
// scheduled) and a Schedule with that slot's entry removed. The nursery is
// carried over unchanged.
func (sch Schedule) Pop(s slot.Slot) (Bucket, Schedule) {
	key := s.Key()
	bucket := sch.buckets[key]

	out := make(map[int64]Bucket, len(sch.buckets))
	for k, b := range sch.buckets {
		if k == key {
			continue
		}
		out[k] = b
	}
	return bucket, Schedule{buckets: out, nursery: sch.nursery}
}

// Prepend concatenates events into the bucket at s, creating it if absent.
// The most recently prepended events come first within the bucket: two
// calls to Prepend for the same slot are associative but not commutative.
func (sch Schedule) Prepend(s slot.Slot, events Events) Schedule {
	key := s.Key()
	out := make(map[int64]Bucket, len(sch.buckets)+1)
	for k, b := range sch.buckets {
		out[k] = b
	}
	existing := out[key]
	out[key] = Bucket{
		ToSend:    append(append([]SendEvent{}, events.Sends...), existing.ToSend...),
		ToConfirm: append(append([]ConfirmEvent{}, events.Confirms...), existing.ToConfirm...),
	}
	return Schedule{buckets: out, nursery: sch.nursery}
}

// SetNursery replaces the nursery with events, per the rule that the
// nursery is replaced (not merged) every tick: the previous nursery's
// contents were already folded into this tick's candidate set.
func (sch Schedule) SetNursery(events []SendEvent) Schedule {
	return Schedule{buckets: sch.buckets, nursery: events}
}

// Nursery returns the send events currently deferred awaiting an ancestor.
func (sch Schedule) Nursery() []SendEvent {
	return sch.nursery
}

// BucketAt returns the bucket scheduled at s without popping it, for
// read-only inspection (tests, CLI summaries).
func (sch Schedule) BucketAt(s slot.Slot) Bucket {
	return sch.buckets[s.Key()]
}
