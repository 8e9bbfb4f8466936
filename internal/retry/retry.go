// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package retry implements the pure (submission count, current slot) ->
// next-event policies that decide whether a scheduled transaction is sent
// again or handed off to a confirmation probe.
package retry

import (
	"github.com/holiman/uint256"

	"github.com/luxfi/walletsubmit/internal/slot"
)

// Kind discriminates the two NextEvent variants.
type Kind uint8

const (
	// SendIn schedules another send attempt at Slot.
	SendIn Kind = iota
	// CheckConfirmedIn gives up sending and schedules a confirmation probe
	// at Slot.
	CheckConfirmedIn
)

// NextEvent is the result of consulting a Policy: either another send, or a
// confirmation probe.
type NextEvent struct {
	Kind Kind
	Slot slot.Slot
}

// Policy is a pure total function mapping an event's submission count (the
// number of times it has been sent, including the send just made) and the
// current slot to the next scheduled event. Implementations must
// never error and must converge to CheckConfirmedIn once a retry budget is
// exhausted, for any input including counts at or beyond that budget.
type Policy interface {
	Next(submissionCount uint64, current slot.Slot) NextEvent
}

// Constant implements "constant retry": the next slot is always at least
// one slot past current (current.Next() + max(0, skip), so a zero skip
// still guarantees forward progress instead of re-landing an event in the
// bucket this tick just popped, which would strand it forever); it yields
// SendIn while submissionCount < MaxRetries, else CheckConfirmedIn at that
// same computed slot.
type Constant struct {
	Skip       int64
	MaxRetries uint64
}

// NewConstant builds a Constant retry policy.
func NewConstant(skip int64, maxRetries uint64) Constant {
	return Constant{Skip: skip, MaxRetries: maxRetries}
}

// Next implements Policy.
func (c Constant) Next(submissionCount uint64, current slot.Slot) NextEvent {
	next := slot.BoundedAdd(current.Next(), c.Skip)
	if submissionCount < c.MaxRetries {
		return NextEvent{Kind: SendIn, Slot: next}
	}
	return NextEvent{Kind: CheckConfirmedIn, Slot: next}
}

// Exponential implements "exponential backoff": the next slot is
// current+floor(Base^priorSubmissions), where priorSubmissions is the
// number of times the event had already been sent before this attempt
// (submissionCount-1); same SendIn/CheckConfirmedIn cutover at MaxRetries.
// Base^0 is always 1, so this policy guarantees forward progress on its
// own without needing Constant's +1 adjustment. The floor computation is
// deterministic and clamps to a non-negative integer delta, never
// overflowing or erroring regardless of how large submissionCount grows.
type Exponential struct {
	MaxRetries uint64
	Base       uint64
}

// NewExponential builds an Exponential backoff policy.
func NewExponential(maxRetries, base uint64) Exponential {
	if base == 0 {
		base = 1
	}
	return Exponential{MaxRetries: maxRetries, Base: base}
}

// Next implements Policy.
func (e Exponential) Next(submissionCount uint64, current slot.Slot) NextEvent {
	var priorSubmissions uint64
	if submissionCount > 0 {
		priorSubmissions = submissionCount - 1
	}
	delta := e.pow(priorSubmissions)
	next := current.Add(delta)
	if submissionCount < e.MaxRetries {
		return NextEvent{Kind: SendIn, Slot: next}
	}
	return NextEvent{Kind: CheckConfirmedIn, Slot: next}
}

// pow computes floor(Base^count) clamped into a uint64, using uint256 for
// the intermediate exponentiation so that large counts saturate instead of
// overflowing or panicking.
func (e Exponential) pow(count uint64) uint64 {
	base := uint256.NewInt(e.Base)
	result := uint256.NewInt(1)

	// Cap the loop at 64 multiplications: for any base of 2 or more the
	// product then no longer fits a uint64 and the max representative delta
	// is returned, while a base of 0 or 1 keeps its exact value.
	const maxIterations = 64
	iterations := count
	if iterations > maxIterations {
		iterations = maxIterations
	}

	overflow := false
	for i := uint64(0); i < iterations; i++ {
		var next uint256.Int
		if _, ov := next.MulOverflow(result, base); ov {
			overflow = true
			break
		}
		result = &next
	}
	if overflow || !result.IsUint64() {
		return ^uint64(0)
	}
	return result.Uint64()
}
