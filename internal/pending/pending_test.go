// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pending

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/walletsubmit/internal/txaux"
	"github.com/luxfi/walletsubmit/internal/txid"
)

func id(b byte) txid.ID {
	var out txid.ID
	out[0] = b
	return out
}

func TestUnionIsLeftBiased(t *testing.T) {
	s := Empty().Union(map[txid.ID]txaux.TxAux{id(1): {Payload: []byte("old")}})
	s = s.Union(map[txid.ID]txaux.TxAux{id(1): {Payload: []byte("new")}})

	aux, ok := s.Get(id(1))
	require.True(t, ok)
	require.Equal(t, []byte("old"), aux.Payload)
}

func TestDifferenceIgnoresMissing(t *testing.T) {
	s := Empty().Union(map[txid.ID]txaux.TxAux{id(1): {}})
	s = s.Difference([]txid.ID{id(2)})
	require.True(t, s.Contains(id(1)))
	require.Equal(t, 1, s.Len())
}

func TestAddThenRemoveTwiceIsIdempotent(t *testing.T) {
	start := Empty()
	added := start.Union(map[txid.ID]txaux.TxAux{id(1): {}})
	removedOnce := added.Difference([]txid.ID{id(1)})
	removedTwice := removedOnce.Difference([]txid.ID{id(1)})

	require.Equal(t, removedOnce.Len(), removedTwice.Len())
	require.Equal(t, start.Len(), removedOnce.Len())
}

func TestIterDeterministicOrder(t *testing.T) {
	s := Empty().Union(map[txid.ID]txaux.TxAux{
		id(3): {}, id(1): {}, id(2): {},
	})
	var order []txid.ID
	s.Iter(func(i txid.ID, _ txaux.TxAux) { order = append(order, i) })
	require.Equal(t, []txid.ID{id(1), id(2), id(3)}, order)
}
