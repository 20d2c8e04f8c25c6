// Package grc20 provides a binary wire format for decentralized
// property-graph updates: a compact, optionally zstd-compressed encoding
// of an Edit (an atomic, author-authored batch of graph-update
// operations), along with the dictionary-interning scheme that keeps the
// format small and the structural-validation discipline that keeps the
// decoder safe against adversarial input.
//
// # Basic usage
//
//	e := edit.New(id.New(), "add a person", nil, time.Now().UnixMicro(), []op.Op{
//	    op.NewCreateEntity(op.CreateEntityOp{
//	        ID:     personID,
//	        Values: []value.PropertyValue{value.New(nameProperty, value.NewText("Alice"))},
//	    }),
//	})
//
//	bytes, err := grc20.EncodeEdit(e)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := grc20.DecodeEdit(bytes)
//
// # Package structure
//
// This package is a thin façade over the packages that do the actual
// work: id (the 16-byte identifier and its derivation scheme), value and
// op (the in-memory data model), dict (wire dictionary tables), wire
// (byte-level primitives and the value payload codec), and codec (the op
// codec and the top-level frame codec). Most callers only need this
// package and id/value/op/edit for building an Edit; codec, dict, and
// wire are exported for hosts that need the lower-level building blocks
// (e.g. to implement the fluent edit-builder surface this repository
// intentionally does not provide).
package grc20

import (
	"github.com/Apex-Algorithms/grc-20/codec"
	"github.com/Apex-Algorithms/grc-20/edit"
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/limits"
)

// Id is the 16-byte opaque identifier used throughout GRC-20.
type Id = id.Id

// Edit is an atomic, author-authored batch of graph-update operations.
type Edit = edit.Edit

// Limits bounds the sizes a single decode call is willing to trust.
type Limits = limits.Limits

// DefaultCompressionLevel is the conventional zstd level for callers to pass
// to EncodeEditCompressed, which always uses the level it is given.
const DefaultCompressionLevel = codec.DefaultCompressionLevel

// EncodeEdit serializes e, preserving insertion order in its dictionaries
// and op list.
func EncodeEdit(e Edit) ([]byte, error) {
	return codec.EncodeEdit(e)
}

// EncodeEditCanonical serializes e with deterministic, sorted dictionary
// order, guaranteeing byte-identical output for equal inputs regardless of
// original insertion order. Use this before hashing or content-addressing
// an edit.
func EncodeEditCanonical(e Edit) ([]byte, error) {
	return codec.EncodeEditCanonical(e)
}

// EncodeEditCompressed serializes e and wraps it in the transparent GRC2Z
// zstd frame at the given level (conventionally 1, 3, 9, or 22).
func EncodeEditCompressed(e Edit, level int) ([]byte, error) {
	return codec.EncodeEditCompressed(e, level)
}

// DecodeEdit decodes data, auto-detecting the GRC2Z compression frame and
// enforcing the package-default Limits.
func DecodeEdit(data []byte) (Edit, error) {
	return codec.DecodeEdit(data)
}

// DecodeEditWithLimits decodes data against a caller-supplied Limits.
func DecodeEditWithLimits(data []byte, lim Limits) (Edit, error) {
	return codec.DecodeEditWithLimits(data, lim)
}

// IsCompressed reports whether data begins with the GRC2Z frame magic.
func IsCompressed(data []byte) bool {
	return codec.IsCompressed(data)
}

// Fingerprint returns a non-wire content digest of e's canonical encoding,
// for diagnostic logging/dedup use above the codec. Not part of the wire
// contract.
func Fingerprint(e Edit) (uint64, error) {
	return codec.Fingerprint(e)
}

// NewId generates a random (version 4) Id.
func NewId() Id {
	return id.New()
}

// DerivedId computes a deterministic UUIDv8 Id from input, the first 16
// bytes of SHA-256(input) with the version and variant bits fixed up.
func DerivedId(input []byte) Id {
	return id.Derive(input)
}

// UniqueRelationId derives the deterministic id of a "unique"-mode
// relation from its endpoints and type.
func UniqueRelationId(from, to, relationType Id) Id {
	return id.UniqueRelationID(from, to, relationType)
}

// RelationEntityId derives the id of the reified entity-node form of
// relation r.
func RelationEntityId(r Id) Id {
	return id.RelationEntityID(r)
}
