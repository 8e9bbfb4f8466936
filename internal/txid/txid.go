// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txid defines the content-hash identifier used throughout the
// wallet submission scheduler to name transactions.
package txid

import (
	"bytes"
	"encoding/hex"
)

// Size is the length in bytes of an ID.
const Size = 32

// ID is a transaction's content hash. It is comparable, usable as a map
// key, and totally ordered via Less so that tests and deterministic
// iteration can rely on a stable order.
type ID [Size]byte

// FromBytes truncates or zero-pads b into an ID. Callers that already have
// a well-formed 32-byte hash can use a direct conversion instead; this
// helper also accepts shorter or longer byte sequences.
func FromBytes(b []byte) ID {
	var id ID
	copy(id[:], b)
	return id
}

// String returns the hex encoding of the id, matching go-ethereum's
// common.Hash.String convention.
func (id ID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Less reports whether id sorts before other in the deterministic order
// used for candidate lists and test fixtures.
func (id ID) Less(other ID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id == ID{}
}
