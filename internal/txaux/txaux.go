// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txaux defines the opaque transaction payload the scheduler
// schedules and diffuses, along with its dependency-relevant inputs.
package txaux

import "github.com/luxfi/walletsubmit/internal/txid"

// Outpoint references the producer of a consumed input. An outpoint whose
// Known is false refers to a transaction the wallet does not track (e.g.
// already-confirmed change) and is ignored for dependency analysis.
type Outpoint struct {
	Producer txid.ID
	Known    bool
}

// TxAux is the opaque payload diffused to the network, plus the inputs the
// scheduler inspects to build a dependency graph. Payload is never
// interpreted by the scheduler.
type TxAux struct {
	Payload []byte
	Inputs  []Outpoint
}

// DependsOn reports whether this transaction consumes an output produced by
// id, i.e. whether it must not be sent before id is sent or accepted.
func (t TxAux) DependsOn(id txid.ID) bool {
	for _, in := range t.Inputs {
		if in.Known && in.Producer == id {
			return true
		}
	}
	return false
}
