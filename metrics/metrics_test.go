// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewCollectorsRegistersAgainstRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollectors(reg, "walletsubmit")

	c.Observe(3, 1, 2, 1)
	c.ObserveCycleDetected()

	require.Equal(t, float64(3), testutil.ToFloat64(c.PendingSize))
	require.Equal(t, float64(1), testutil.ToFloat64(c.NurseryDepth))
	require.Equal(t, float64(2), testutil.ToFloat64(c.Transmits))
	require.Equal(t, float64(1), testutil.ToFloat64(c.Evictions))
	require.Equal(t, float64(1), testutil.ToFloat64(c.CyclesDetected))
}

func TestObserveIgnoresNonPositiveDeltas(t *testing.T) {
	c := NewCollectors(prometheus.NewRegistry(), "walletsubmit")
	c.Observe(0, 0, 0, 0)
	require.Equal(t, float64(0), testutil.ToFloat64(c.Transmits))
	require.Equal(t, float64(0), testutil.ToFloat64(c.Evictions))
}

func TestNilCollectorsIsSafeNoOp(t *testing.T) {
	var c *Collectors
	require.NotPanics(t, func() {
		c.Observe(5, 5, 5, 5)
		c.ObserveCycleDetected()
	})
}

func TestNewCollectorsWithNilRegistryStillUsable(t *testing.T) {
	c := NewCollectors(nil, "walletsubmit")
	require.NotPanics(t, func() {
		c.Observe(1, 1, 1, 1)
	})
}
