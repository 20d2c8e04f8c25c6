package dict

import "github.com/Apex-Algorithms/grc-20/id"

// Index resolves an id to its position within a built Tables, for the
// encode path. Build once per Tables via Tables.Index; reuse across every
// op body written for that edit.
type Index struct {
	properties    map[id.Id]int
	relationTypes map[id.Id]int
	languages     map[id.Id]int
	units         map[id.Id]int
	objects       map[id.Id]int
}

// Index builds an Index over t. Call this once, after deciding whether to
// use t or t.Canonical(), and reuse the result for every lookup during that
// encode.
func (t Tables) Index() Index {
	ix := Index{
		properties:    make(map[id.Id]int, len(t.Properties)),
		relationTypes: make(map[id.Id]int, len(t.RelationTypes)),
		languages:     make(map[id.Id]int, len(t.Languages)),
		units:         make(map[id.Id]int, len(t.Units)),
		objects:       make(map[id.Id]int, len(t.Objects)),
	}

	for i, p := range t.Properties {
		ix.properties[p.ID] = i
	}
	for i, v := range t.RelationTypes {
		ix.relationTypes[v] = i
	}
	for i, v := range t.Languages {
		ix.languages[v] = i
	}
	for i, v := range t.Units {
		ix.units[v] = i
	}
	for i, v := range t.Objects {
		ix.objects[v] = i
	}

	return ix
}

// Property returns the properties-table index of v. ok is false if v was
// never registered in the Builder this Tables was built from, which
// indicates a bug in the caller (every referenced id must be registered
// before Build).
func (ix Index) Property(v id.Id) (int, bool) {
	i, ok := ix.properties[v]
	return i, ok
}

// RelationType returns the relation_types-table index of v.
func (ix Index) RelationType(v id.Id) (int, bool) {
	i, ok := ix.relationTypes[v]
	return i, ok
}

// Language returns the languages-table index of v.
func (ix Index) Language(v id.Id) (int, bool) {
	i, ok := ix.languages[v]
	return i, ok
}

// Unit returns the units-table index of v.
func (ix Index) Unit(v id.Id) (int, bool) {
	i, ok := ix.units[v]
	return i, ok
}

// Object returns the objects-table index of v.
func (ix Index) Object(v id.Id) (int, bool) {
	i, ok := ix.objects[v]
	return i, ok
}
