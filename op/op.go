// Package op defines the nine state-change primitives an Edit carries, as a
// tagged union: a flat Op struct tagged by Kind, with exactly one of the
// nine variant pointers populated. This mirrors the Value tagged union in
// package value — no virtual dispatch, a flat switch on Kind at the codec
// layer.
package op

import (
	"fmt"

	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/value"
)

// Kind identifies an Op variant. Kind's numeric value IS the one-byte
// op-type tag written to the wire (§4.4): there is no separate mapping
// table between in-memory and on-wire op identity.
type Kind uint8

const (
	KindCreateEntity Kind = iota + 1
	KindUpdateEntity
	KindDeleteEntity
	KindRestoreEntity
	KindCreateRelation
	KindUpdateRelation
	KindDeleteRelation
	KindRestoreRelation
	KindCreateProperty
)

// String renders the Kind name.
func (k Kind) String() string {
	switch k {
	case KindCreateEntity:
		return "CreateEntity"
	case KindUpdateEntity:
		return "UpdateEntity"
	case KindDeleteEntity:
		return "DeleteEntity"
	case KindRestoreEntity:
		return "RestoreEntity"
	case KindCreateRelation:
		return "CreateRelation"
	case KindUpdateRelation:
		return "UpdateRelation"
	case KindDeleteRelation:
		return "DeleteRelation"
	case KindRestoreRelation:
		return "RestoreRelation"
	case KindCreateProperty:
		return "CreateProperty"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the nine recognized op kinds.
func (k Kind) Valid() bool {
	return k >= KindCreateEntity && k <= KindCreateProperty
}

// UnsetField names a property (and, where relevant, its language/unit
// qualifier) to clear from an entity in an UpdateEntity op.
type UnsetField struct {
	Property id.Id
	Language *id.Id
	Unit     *id.Id
}

// RelationIDMode selects how a CreateRelation op's id is established.
type RelationIDMode uint8

const (
	// RelationIDUnique derives the relation's id deterministically from
	// (from, to, relationType) via id.UniqueRelationID, so that creating
	// the same (from, to, type) triple twice names the same relation.
	RelationIDUnique RelationIDMode = 0
	// RelationIDMany uses an explicit, caller-supplied id, allowing many
	// relations to share the same (from, to, type) triple.
	RelationIDMany RelationIDMode = 1
)

// Valid reports whether m is one of the two recognized id modes.
func (m RelationIDMode) Valid() bool {
	return m == RelationIDUnique || m == RelationIDMany
}

// CreateEntityOp creates a new entity carrying an initial set of property
// values.
type CreateEntityOp struct {
	ID     id.Id
	Values []value.PropertyValue
}

// UpdateEntityOp sets and/or unsets properties on an existing entity.
type UpdateEntityOp struct {
	ID     id.Id
	Set    []value.PropertyValue
	Unset  []UnsetField
}

// DeleteEntityOp marks an entity deleted.
type DeleteEntityOp struct {
	ID id.Id
}

// RestoreEntityOp reverses a prior DeleteEntityOp.
type RestoreEntityOp struct {
	ID id.Id
}

// CreateRelationOp creates a directed, typed edge between two entities,
// optionally reified as its own entity node and optionally pinned to a
// specific space/version on either endpoint.
type CreateRelationOp struct {
	IDMode       RelationIDMode
	ID           id.Id // explicit id when IDMode == RelationIDMany; when IDMode == RelationIDUnique it is not written on encode, and the decoder derives it via id.UniqueRelationID
	RelationType id.Id
	From         id.Id
	To           id.Id
	Entity       *id.Id // reified relation-entity node, if any
	Position     *string

	FromSpace   *id.Id
	FromVersion *id.Id
	ToSpace     *id.Id
	ToVersion   *id.Id
}

// UpdateRelationUnset selects which optional CreateRelationOp-style fields
// an UpdateRelationOp should clear.
type UpdateRelationUnset struct {
	Position    bool
	Entity      bool
	FromSpace   bool
	FromVersion bool
	ToSpace     bool
	ToVersion   bool
}

// Any reports whether at least one field is flagged for unset.
func (u UpdateRelationUnset) Any() bool {
	return u.Position || u.Entity || u.FromSpace || u.FromVersion || u.ToSpace || u.ToVersion
}

// UpdateRelationOp updates the mutable fields of an existing relation.
type UpdateRelationOp struct {
	ID       id.Id
	Position *string

	Entity      *id.Id
	FromSpace   *id.Id
	FromVersion *id.Id
	ToSpace     *id.Id
	ToVersion   *id.Id

	Unset UpdateRelationUnset
}

// DeleteRelationOp marks a relation deleted.
type DeleteRelationOp struct {
	ID id.Id
}

// RestoreRelationOp reverses a prior DeleteRelationOp.
type RestoreRelationOp struct {
	ID id.Id
}

// CreatePropertyOp declares a new property and the DataType its values will
// carry. The id is written inline on the wire (not dictionary-interned)
// because a property defined in this edit is immediately used by it.
type CreatePropertyOp struct {
	ID       id.Id
	DataType value.DataType
}

// Op is the tagged union of the nine op variants. Exactly the field named
// by Kind is non-nil.
type Op struct {
	Kind Kind

	CreateEntity    *CreateEntityOp
	UpdateEntity    *UpdateEntityOp
	DeleteEntity    *DeleteEntityOp
	RestoreEntity   *RestoreEntityOp
	CreateRelation  *CreateRelationOp
	UpdateRelation  *UpdateRelationOp
	DeleteRelation  *DeleteRelationOp
	RestoreRelation *RestoreRelationOp
	CreateProperty  *CreatePropertyOp
}

func NewCreateEntity(o CreateEntityOp) Op { return Op{Kind: KindCreateEntity, CreateEntity: &o} }
func NewUpdateEntity(o UpdateEntityOp) Op { return Op{Kind: KindUpdateEntity, UpdateEntity: &o} }
func NewDeleteEntity(o DeleteEntityOp) Op { return Op{Kind: KindDeleteEntity, DeleteEntity: &o} }
func NewRestoreEntity(o RestoreEntityOp) Op {
	return Op{Kind: KindRestoreEntity, RestoreEntity: &o}
}
func NewCreateRelation(o CreateRelationOp) Op {
	return Op{Kind: KindCreateRelation, CreateRelation: &o}
}
func NewUpdateRelation(o UpdateRelationOp) Op {
	return Op{Kind: KindUpdateRelation, UpdateRelation: &o}
}
func NewDeleteRelation(o DeleteRelationOp) Op {
	return Op{Kind: KindDeleteRelation, DeleteRelation: &o}
}
func NewRestoreRelation(o RestoreRelationOp) Op {
	return Op{Kind: KindRestoreRelation, RestoreRelation: &o}
}
func NewCreateProperty(o CreatePropertyOp) Op {
	return Op{Kind: KindCreateProperty, CreateProperty: &o}
}
