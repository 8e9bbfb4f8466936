// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package retry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/walletsubmit/internal/slot"
)

func TestConstantRetrySendsUntilMaxRetries(t *testing.T) {
	p := NewConstant(0, 3)

	for count := uint64(0); count < 3; count++ {
		next := p.Next(count, slot.Slot(10))
		require.Equal(t, SendIn, next.Kind)
		require.Equal(t, slot.Slot(11), next.Slot)
	}
	next := p.Next(3, slot.Slot(10))
	require.Equal(t, CheckConfirmedIn, next.Kind)
	require.Equal(t, slot.Slot(11), next.Slot)
}

func TestConstantRetryNeverErrorsBeyondMaxRetries(t *testing.T) {
	p := NewConstant(0, 3)
	for _, count := range []uint64{3, 4, 100, 1 << 40} {
		next := p.Next(count, slot.Slot(1))
		require.Equal(t, CheckConfirmedIn, next.Kind)
	}
}

func TestConstantRetrySkip(t *testing.T) {
	p := NewConstant(5, 3)
	next := p.Next(0, slot.Slot(10))
	require.Equal(t, slot.Slot(16), next.Slot)
}

func TestConstantRetryNegativeSkipClampsToZero(t *testing.T) {
	p := NewConstant(-5, 3)
	next := p.Next(0, slot.Slot(10))
	require.Equal(t, slot.Slot(11), next.Slot)
}

func TestExponentialBackoffSlots(t *testing.T) {
	p := NewExponential(4, 2)
	// base=2, held at a fixed current slot: submissionCount counts
	// completed sends (1..4), so priorSubmissions = submissionCount-1
	// gives deltas 2^0=1, 2^1=2, 2^2=4.
	want := []uint64{1, 2, 4}
	current := slot.Slot(0)
	for i, delta := range want {
		next := p.Next(uint64(i+1), current)
		require.Equal(t, slot.Slot(delta), next.Slot)
		require.Equal(t, SendIn, next.Kind)
	}
	next := p.Next(4, slot.Slot(0))
	require.Equal(t, CheckConfirmedIn, next.Kind)
	require.Equal(t, slot.Slot(8), next.Slot)
}

// TestExponentialBackoffScenarioS5 drives the policy the way resubmit.Default
// does across successive ticks, reproducing send slots 1, 2, 4, 8 and a
// confirm probe at slot 16 for base=2, max_retries=4.
func TestExponentialBackoffScenarioS5(t *testing.T) {
	p := NewExponential(4, 2)

	type step struct {
		current      slot.Slot
		oldCount     uint64
		wantKind     Kind
		wantNextSlot slot.Slot
	}
	steps := []step{
		{current: 1, oldCount: 0, wantKind: SendIn, wantNextSlot: 2},
		{current: 2, oldCount: 1, wantKind: SendIn, wantNextSlot: 4},
		{current: 4, oldCount: 2, wantKind: SendIn, wantNextSlot: 8},
		{current: 8, oldCount: 3, wantKind: CheckConfirmedIn, wantNextSlot: 16},
	}
	for _, s := range steps {
		next := p.Next(s.oldCount+1, s.current)
		require.Equal(t, s.wantKind, next.Kind)
		require.Equal(t, s.wantNextSlot, next.Slot)
	}
}

func TestExponentialBackoffNeverPanicsOnLargeCounts(t *testing.T) {
	p := NewExponential(4, 2)
	require.NotPanics(t, func() {
		next := p.Next(1<<20, slot.Slot(0))
		require.Equal(t, CheckConfirmedIn, next.Kind)
	})
}

func TestExponentialBackoffBaseZeroTreatedAsOne(t *testing.T) {
	p := NewExponential(2, 0)
	next := p.Next(0, slot.Slot(10))
	require.Equal(t, slot.Slot(11), next.Slot)
}
