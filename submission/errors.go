// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import (
	"fmt"
	"strings"

	"github.com/luxfi/walletsubmit/internal/txid"
)

// LoopDetectedError is the scheduler's single error kind: it is raised from
// Tick when the candidates for a slot form a dependency cycle. It is not
// recoverable locally; Tick's caller decides policy via the onError
// callback. Tick leaves the scheduler's state unchanged when this occurs.
type LoopDetectedError struct {
	// Pending lists the ids of every candidate event of the aborted tick
	// (after filtering out ids no longer pending), in candidate order. This
	// includes the events in the cycle and any other candidates of that
	// tick.
	Pending []txid.ID
}

func (e *LoopDetectedError) Error() string {
	ids := make([]string, len(e.Pending))
	for i, id := range e.Pending {
		ids[i] = id.String()
	}
	return fmt.Sprintf("submission: dependency cycle detected among pending ids [%s]", strings.Join(ids, ", "))
}
