// Package id defines the 16-byte opaque identifier used throughout GRC-20
// and the deterministic derivation scheme for UUIDv8 ids.
package id

import (
	"crypto/sha256"

	"github.com/google/uuid"
)

// Id is a 16-byte opaque identifier. Equality is byte-equality; ordering
// (used only by canonical encoding) is lexicographic on bytes.
//
// Id is a type alias over google/uuid's UUID array type, which gives us
// String, MarshalBinary/UnmarshalBinary, and Parse for free while keeping
// the wire representation exactly 16 raw bytes.
type Id = uuid.UUID

// relationEntityDomain tags the input to RelationEntityID so that deriving
// a reified entity id from a relation id can never collide with deriving a
// relation id from (from, to, type) — the two derivations draw from
// disjoint SHA-256 input spaces.
const relationEntityDomain = "grc20:relation-entity:"

// New generates a random (version 4) Id.
func New() Id {
	return uuid.New()
}

// Nil is the all-zero Id.
var Nil = uuid.Nil

// Less reports whether a sorts before b under the byte-lexicographic order
// canonical encoding uses for dictionary entries.
func Less(a, b Id) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Derive computes a deterministic UUIDv8 from input: the first 16 bytes of
// SHA-256(input), with the version nibble forced to 1000 (byte 6, high
// nibble) and the variant bits forced to 10 (byte 8, top two bits), per
// RFC 4122 §4.1.3/§4.1.1 applied to the custom version 8 space.
func Derive(input []byte) Id {
	sum := sha256.Sum256(input)

	var out Id
	copy(out[:], sum[:16])

	out[6] = (out[6] & 0x0F) | 0x80 // version = 1000 (8)
	out[8] = (out[8] & 0x3F) | 0x80 // variant = 10

	return out
}

// UniqueRelationID derives the deterministic id of a "unique"-mode relation
// from its endpoints and type: Derive(from ‖ to ‖ relationType), 48 bytes
// concatenated.
func UniqueRelationID(from, to, relationType Id) Id {
	var input [48]byte
	copy(input[0:16], from[:])
	copy(input[16:32], to[:])
	copy(input[32:48], relationType[:])

	return Derive(input[:])
}

// RelationEntityID derives the id of the reified entity-node form of
// relation r: Derive("grc20:relation-entity:" ‖ r).
func RelationEntityID(r Id) Id {
	input := make([]byte, 0, len(relationEntityDomain)+16)
	input = append(input, relationEntityDomain...)
	input = append(input, r[:]...)

	return Derive(input)
}
