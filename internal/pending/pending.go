// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pending implements the scheduler's pending set: the mapping from
// transaction id to transaction blob that the scheduler is told about by
// its wallet-side collaborator and never decides the membership of on its
// own.
package pending

import (
	"github.com/luxfi/math/set"

	"github.com/luxfi/walletsubmit/internal/txaux"
	"github.com/luxfi/walletsubmit/internal/txid"
)

// Set is an immutable-update id -> blob mapping. Every mutating method
// returns a new Set; the receiver is left untouched, matching the
// persistent-update style the scheduler core exposes.
type Set struct {
	m map[txid.ID]txaux.TxAux
}

// Empty is the zero pending set.
func Empty() Set {
	return Set{m: map[txid.ID]txaux.TxAux{}}
}

// Union returns a set containing every entry of s and other. Entries
// already present in s win on collision (left-biased).
func (s Set) Union(other map[txid.ID]txaux.TxAux) Set {
	out := make(map[txid.ID]txaux.TxAux, len(s.m)+len(other))
	for id, aux := range other {
		out[id] = aux
	}
	for id, aux := range s.m {
		out[id] = aux
	}
	return Set{m: out}
}

// Difference returns s with every id in ids removed. Ids absent from s are
// silently ignored.
func (s Set) Difference(ids []txid.ID) Set {
	if len(ids) == 0 {
		return s
	}
	drop := set.NewSet[txid.ID](len(ids))
	for _, id := range ids {
		drop.Add(id)
	}
	out := make(map[txid.ID]txaux.TxAux, len(s.m))
	for id, aux := range s.m {
		if drop.Contains(id) {
			continue
		}
		out[id] = aux
	}
	return Set{m: out}
}

// Contains reports whether id is present in s.
func (s Set) Contains(id txid.ID) bool {
	_, ok := s.m[id]
	return ok
}

// Get returns the blob for id, and whether it was present.
func (s Set) Get(id txid.ID) (txaux.TxAux, bool) {
	aux, ok := s.m[id]
	return aux, ok
}

// Len returns the number of entries in s.
func (s Set) Len() int {
	return len(s.m)
}

// Iter calls fn for every entry in s in deterministic id order.
func (s Set) Iter(fn func(id txid.ID, aux txaux.TxAux)) {
	for _, id := range s.sortedIDs() {
		fn(id, s.m[id])
	}
}

// IDs returns the ids in s in deterministic order.
func (s Set) IDs() []txid.ID {
	return s.sortedIDs()
}

func (s Set) sortedIDs() []txid.ID {
	ids := make([]txid.ID, 0, len(s.m))
	for id := range s.m {
		ids = append(ids, id)
	}
	// insertion sort is fine here: candidate sets are bounded by a single
	// slot's worth of events, never the whole wallet history.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j].Less(ids[j-1]); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}
