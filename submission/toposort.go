// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import (
	"github.com/luxfi/math/set"

	"github.com/luxfi/walletsubmit/internal/schedule"
)

// toposort orders candidates so that no event depends, via a consumed
// outpoint, on an event appearing later in the result. It recomputes the
// dependency graph from scratch on every call, per the design note that the
// candidate set is small enough (a single slot's bucket plus the nursery)
// that persisting a graph across ticks buys nothing.
//
// The sort is stable with respect to the input order: among events with no
// remaining unsatisfied dependency, the one appearing earliest in
// candidates is emitted first. ok is false iff the dependency relation
// contains a cycle, in which case the returned slice is meaningless.
func toposort(candidates []schedule.SendEvent) (sorted []schedule.SendEvent, ok bool) {
	n := len(candidates)
	if n == 0 {
		return nil, true
	}

	indegree := make([]int, n)
	// dependents[j] lists the indices that depend on candidates[j].
	dependents := make([][]int, n)

	for i, e := range candidates {
		for j, other := range candidates {
			if i == j {
				continue
			}
			if e.Aux.DependsOn(other.ID) {
				indegree[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	emitted := set.NewSet[int](n)
	out := make([]schedule.SendEvent, 0, n)

	for len(out) < n {
		next := -1
		for i := 0; i < n; i++ {
			if emitted.Contains(i) || indegree[i] > 0 {
				continue
			}
			next = i
			break
		}
		if next == -1 {
			return nil, false // cycle
		}
		emitted.Add(next)
		out = append(out, candidates[next])
		for _, dep := range dependents[next] {
			indegree[dep]--
		}
	}
	return out, true
}
