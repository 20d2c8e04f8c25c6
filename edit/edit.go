// Package edit defines the Edit record: an atomic, author-authored batch of
// operations with metadata. Edit is pure data — no I/O, no validation logic
// beyond construction; encoding and structural validation live in the
// wire/dict/codec packages above it.
package edit

import (
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/op"
)

// Edit is one atomic batch of graph-update operations.
type Edit struct {
	ID        id.Id
	Name      string
	Authors   []id.Id
	CreatedAt int64 // microseconds since the Unix epoch
	Ops       []op.Op
}

// New constructs an Edit. Ops order is preserved verbatim by the codec on
// both encode and decode; it is the caller's responsibility to order Ops
// meaningfully before encoding.
func New(id_ id.Id, name string, authors []id.Id, createdAt int64, ops []op.Op) Edit {
	return Edit{ID: id_, Name: name, Authors: authors, CreatedAt: createdAt, Ops: ops}
}
