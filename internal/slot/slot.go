// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package slot implements the scheduler's opaque, monotonically advancing
// clock. A Slot wraps an unsigned counter; wrap-around is tolerated by
// design, since a wallet session is expected to run far shorter than the
// counter's range.
package slot

// signed is the set of integer types BoundedAdd accepts for its delta
// argument. No example in the pack this module is grounded on defines or
// imports a numeric constraints package, so this is a narrow local
// interface rather than an import.
type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Slot is an opaque tick of the scheduler's clock.
type Slot uint64

// Zero is the slot a freshly constructed scheduler starts at.
const Zero Slot = 0

// Next returns the successor slot.
func (s Slot) Next() Slot {
	return s + 1
}

// Add returns s advanced by delta slots. Wrap-around past the top of the
// uint64 range is tolerated and intentional.
func (s Slot) Add(delta uint64) Slot {
	return s + Slot(delta)
}

// Before reports whether s precedes other.
func (s Slot) Before(other Slot) bool {
	return s < other
}

// Key projects s into a signed integer suitable for use as a map key even
// across wrap-around, preserving distinctness as long as the live window of
// outstanding slots stays below half the counter's range.
func (s Slot) Key() int64 {
	return int64(s)
}

// boundedAdd clamps delta to a non-negative value of T before adding,
// shared by the retry policies when computing a next slot from a possibly
// negative "skip" configuration value.
func boundedAdd[T signed](base Slot, delta T) Slot {
	if delta < 0 {
		return base
	}
	return base.Add(uint64(delta))
}

// BoundedAdd is the exported form of boundedAdd used by internal/retry.
func BoundedAdd[T signed](base Slot, delta T) Slot {
	return boundedAdd(base, delta)
}
