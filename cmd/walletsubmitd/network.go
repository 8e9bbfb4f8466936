// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/luxfi/log"

	"github.com/luxfi/walletsubmit/internal/txaux"
	"github.com/luxfi/walletsubmit/internal/txid"
)

// fakeNetwork stands in for the unreliable broadcast channel and adoption
// notifier collaborators external to the scheduler. It counts how many
// times each transaction has been handed to its transmit callback and
// reports a transaction adopted once it has been sighted adoptAfter
// times, a crude stand-in for "the blockchain eventually includes it."
type fakeNetwork struct {
	adoptAfter int
	sightings  map[txid.ID]int
	adopted    map[txid.ID]bool
}

func newFakeNetwork(adoptAfter int) *fakeNetwork {
	return &fakeNetwork{
		adoptAfter: adoptAfter,
		sightings:  make(map[txid.ID]int),
		adopted:    make(map[txid.ID]bool),
	}
}

// transmit is the scheduler's Transmitter capability: it just records
// sightings and logs them. The transmit callback's return value is
// irrelevant to the scheduler.
func (n *fakeNetwork) transmit(batch []txaux.TxAux) {
	for _, aux := range batch {
		id := txid.FromBytes(aux.Payload)
		n.sightings[id]++
		log.Info("walletsubmitd: transmitted", "id", id, "sightings", n.sightings[id])
	}
}

// newlyAdopted returns the ids the demo network now considers confirmed and
// have not yet been reported, simulating the chain-adoption pipeline's
// "confirmed / no longer pending" id stream.
func (n *fakeNetwork) newlyAdopted() []txid.ID {
	if n.adoptAfter <= 0 {
		return nil
	}
	var out []txid.ID
	for id, count := range n.sightings {
		if count >= n.adoptAfter && !n.adopted[id] {
			n.adopted[id] = true
			out = append(out, id)
		}
	}
	return out
}
