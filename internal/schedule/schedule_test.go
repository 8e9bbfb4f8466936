// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/walletsubmit/internal/slot"
	"github.com/luxfi/walletsubmit/internal/txid"
)

func id(b byte) txid.ID {
	var out txid.ID
	out[0] = b
	return out
}

func TestPrependOrderIsMostRecentFirst(t *testing.T) {
	sch := Empty()
	sch = sch.Prepend(slot.Slot(1), Events{Sends: []SendEvent{{ID: id(1)}}})
	sch = sch.Prepend(slot.Slot(1), Events{Sends: []SendEvent{{ID: id(2)}}})

	bucket := sch.BucketAt(slot.Slot(1))
	require.Equal(t, []txid.ID{id(2), id(1)}, []txid.ID{bucket.ToSend[0].ID, bucket.ToSend[1].ID})
}

func TestPopRemovesSlotKeepsNursery(t *testing.T) {
	sch := Empty()
	sch = sch.Prepend(slot.Slot(1), Events{Sends: []SendEvent{{ID: id(1)}}})
	sch = sch.SetNursery([]SendEvent{{ID: id(9)}})

	bucket, after := sch.Pop(slot.Slot(1))
	require.Len(t, bucket.ToSend, 1)
	require.Equal(t, Bucket{}, after.BucketAt(slot.Slot(1)))
	require.Equal(t, []SendEvent{{ID: id(9)}}, after.Nursery())
}

func TestPopEmptySlotReturnsZeroBucket(t *testing.T) {
	sch := Empty()
	bucket, _ := sch.Pop(slot.Slot(42))
	require.Equal(t, Bucket{}, bucket)
}

func TestSetNurseryReplacesNotMerges(t *testing.T) {
	sch := Empty().SetNursery([]SendEvent{{ID: id(1)}})
	sch = sch.SetNursery([]SendEvent{{ID: id(2)}})
	require.Equal(t, []SendEvent{{ID: id(2)}}, sch.Nursery())
}
