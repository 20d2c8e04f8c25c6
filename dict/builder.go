package dict

import (
	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/value"
)

// Builder collects the unique ids referenced by one edit into the five
// dictionary tables, in first-seen order, detecting property/datatype
// conflicts along the way. Build a fresh Builder per encode call; it is not
// safe for concurrent use.
type Builder struct {
	propertyTypes map[id.Id]value.DataType
	propertyList  []id.Id

	relationTypes     map[id.Id]struct{}
	relationTypesList []id.Id

	languages     map[id.Id]struct{}
	languagesList []id.Id

	units     map[id.Id]struct{}
	unitsList []id.Id

	objects     map[id.Id]struct{}
	objectsList []id.Id
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		propertyTypes: make(map[id.Id]value.DataType),
		relationTypes: make(map[id.Id]struct{}),
		languages:     make(map[id.Id]struct{}),
		units:         make(map[id.Id]struct{}),
		objects:       make(map[id.Id]struct{}),
	}
}

// AddProperty records that propertyID is used with dataType somewhere in
// the edit. Returns errs.ErrPropertyDatatypeConflict if propertyID was
// already recorded with a different DataType.
func (b *Builder) AddProperty(propertyID id.Id, dataType value.DataType) error {
	if existing, ok := b.propertyTypes[propertyID]; ok {
		if existing != dataType {
			return errs.PropertyDatatypeConflict(propertyID)
		}

		return nil
	}

	b.propertyTypes[propertyID] = dataType
	b.propertyList = append(b.propertyList, propertyID)

	return nil
}

// AddRelationType records a relation-type id reference.
func (b *Builder) AddRelationType(v id.Id) {
	if _, ok := b.relationTypes[v]; ok {
		return
	}

	b.relationTypes[v] = struct{}{}
	b.relationTypesList = append(b.relationTypesList, v)
}

// AddLanguage records a language id reference.
func (b *Builder) AddLanguage(v id.Id) {
	if _, ok := b.languages[v]; ok {
		return
	}

	b.languages[v] = struct{}{}
	b.languagesList = append(b.languagesList, v)
}

// AddUnit records a unit id reference.
func (b *Builder) AddUnit(v id.Id) {
	if _, ok := b.units[v]; ok {
		return
	}

	b.units[v] = struct{}{}
	b.unitsList = append(b.unitsList, v)
}

// AddObject records an entity/relation object id reference.
func (b *Builder) AddObject(v id.Id) {
	if _, ok := b.objects[v]; ok {
		return
	}

	b.objects[v] = struct{}{}
	b.objectsList = append(b.objectsList, v)
}

// Build materializes the five tables in first-seen insertion order. Callers
// that want canonical (sorted) output should call Canonical on the result.
func (b *Builder) Build() Tables {
	props := make([]PropertyEntry, len(b.propertyList))
	for i, pid := range b.propertyList {
		props[i] = PropertyEntry{ID: pid, DataType: b.propertyTypes[pid]}
	}

	return Tables{
		Properties:    props,
		RelationTypes: append([]id.Id(nil), b.relationTypesList...),
		Languages:     append([]id.Id(nil), b.languagesList...),
		Units:         append([]id.Id(nil), b.unitsList...),
		Objects:       append([]id.Id(nil), b.objectsList...),
	}
}
