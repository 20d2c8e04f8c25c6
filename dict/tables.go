// Package dict implements the five wire-only dictionary tables that intern
// repeated ids within one edit: properties (with their datatype), relation
// types, languages, units, and objects (entities and relations referenced
// by operations). Dictionaries exist only across the span of one encode or
// one decode call; they carry no identity beyond that call.
package dict

import (
	"sort"

	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/value"
	"github.com/Apex-Algorithms/grc-20/wire"
)

// PropertyEntry is one row of the properties dictionary: a property id
// paired with the single DataType it is used with throughout the edit.
type PropertyEntry struct {
	ID       id.Id
	DataType value.DataType
}

// Tables holds the five resolved dictionary tables for one encode or
// decode call. Indices into each table are plain 0-based positions; the
// "index 0 means absent" convention for the language and unit references
// inside a PropertyValue is a property of the wire's reference encoding
// (see package codec's property_value.go), not of Tables itself.
type Tables struct {
	Properties    []PropertyEntry
	RelationTypes []id.Id
	Languages     []id.Id
	Units         []id.Id
	Objects       []id.Id
}

// Canonical returns a copy of t with every table sorted into lexicographic
// id order. Canonical order is part of the deterministic-encoding contract
// and must be applied before indices are resolved for encoding.
func (t Tables) Canonical() Tables {
	out := Tables{
		Properties:    append([]PropertyEntry(nil), t.Properties...),
		RelationTypes: append([]id.Id(nil), t.RelationTypes...),
		Languages:     append([]id.Id(nil), t.Languages...),
		Units:         append([]id.Id(nil), t.Units...),
		Objects:       append([]id.Id(nil), t.Objects...),
	}

	sort.Slice(out.Properties, func(i, j int) bool { return id.Less(out.Properties[i].ID, out.Properties[j].ID) })
	sortIDs(out.RelationTypes)
	sortIDs(out.Languages)
	sortIDs(out.Units)
	sortIDs(out.Objects)

	return out
}

func sortIDs(ids []id.Id) {
	sort.Slice(ids, func(i, j int) bool { return id.Less(ids[i], ids[j]) })
}

// PropertyAt resolves a bounds-checked properties-table index.
func (t Tables) PropertyAt(index int) (PropertyEntry, error) {
	if index < 0 || index >= len(t.Properties) {
		return PropertyEntry{}, errs.IndexOutOfBounds("properties", index, len(t.Properties))
	}

	return t.Properties[index], nil
}

// RelationTypeAt resolves a bounds-checked relation_types-table index.
func (t Tables) RelationTypeAt(index int) (id.Id, error) {
	if index < 0 || index >= len(t.RelationTypes) {
		return id.Nil, errs.IndexOutOfBounds("relation_types", index, len(t.RelationTypes))
	}

	return t.RelationTypes[index], nil
}

// LanguageAt resolves a bounds-checked languages-table index.
func (t Tables) LanguageAt(index int) (id.Id, error) {
	if index < 0 || index >= len(t.Languages) {
		return id.Nil, errs.IndexOutOfBounds("languages", index, len(t.Languages))
	}

	return t.Languages[index], nil
}

// UnitAt resolves a bounds-checked units-table index.
func (t Tables) UnitAt(index int) (id.Id, error) {
	if index < 0 || index >= len(t.Units) {
		return id.Nil, errs.IndexOutOfBounds("units", index, len(t.Units))
	}

	return t.Units[index], nil
}

// ObjectAt resolves a bounds-checked objects-table index.
func (t Tables) ObjectAt(index int) (id.Id, error) {
	if index < 0 || index >= len(t.Objects) {
		return id.Nil, errs.IndexOutOfBounds("objects", index, len(t.Objects))
	}

	return t.Objects[index], nil
}

// Encode appends the five dictionary tables, in spec order, to w.
func (t Tables) Encode(w *wire.Writer) {
	w.WriteUvarint(uint64(len(t.Properties)))
	for _, p := range t.Properties {
		w.WriteID(p.ID)
		w.WriteByte(byte(p.DataType))
	}

	encodeIDList(w, t.RelationTypes)
	encodeIDList(w, t.Languages)
	encodeIDList(w, t.Units)
	encodeIDList(w, t.Objects)
}

func encodeIDList(w *wire.Writer, ids []id.Id) {
	w.WriteUvarint(uint64(len(ids)))
	for _, v := range ids {
		w.WriteID(v)
	}
}

// Decode reads the five dictionary tables, in spec order, from r. Every
// table's declared count is bounds-checked against maxDictSize before any
// entries are read.
func Decode(r *wire.Reader, maxDictSize int) (Tables, error) {
	n, err := readCount(r, "properties", maxDictSize)
	if err != nil {
		return Tables{}, err
	}

	props := make([]PropertyEntry, 0, n)
	for i := 0; i < n; i++ {
		pid, err := r.ReadID("properties.id")
		if err != nil {
			return Tables{}, err
		}

		b, err := r.ReadByte("properties.data_type")
		if err != nil {
			return Tables{}, err
		}

		dt := value.DataType(b)
		if !dt.Valid() {
			return Tables{}, errs.InvalidDataType(b)
		}

		props = append(props, PropertyEntry{ID: pid, DataType: dt})
	}

	relTypes, err := decodeIDList(r, "relation_types", maxDictSize)
	if err != nil {
		return Tables{}, err
	}

	languages, err := decodeIDList(r, "languages", maxDictSize)
	if err != nil {
		return Tables{}, err
	}

	units, err := decodeIDList(r, "units", maxDictSize)
	if err != nil {
		return Tables{}, err
	}

	objects, err := decodeIDList(r, "objects", maxDictSize)
	if err != nil {
		return Tables{}, err
	}

	return Tables{
		Properties:    props,
		RelationTypes: relTypes,
		Languages:     languages,
		Units:         units,
		Objects:       objects,
	}, nil
}

func readCount(r *wire.Reader, field string, maxDictSize int) (int, error) {
	n, err := r.ReadUvarint(field + ".count")
	if err != nil {
		return 0, err
	}

	if n > uint64(maxDictSize) {
		return 0, errs.LengthExceedsLimit(field+".count", int(n), maxDictSize)
	}

	return int(n), nil
}

func decodeIDList(r *wire.Reader, field string, maxDictSize int) ([]id.Id, error) {
	n, err := readCount(r, field, maxDictSize)
	if err != nil {
		return nil, err
	}

	ids := make([]id.Id, 0, n)
	for i := 0; i < n; i++ {
		v, err := r.ReadID(field + ".id")
		if err != nil {
			return nil, err
		}

		ids = append(ids, v)
	}

	return ids, nil
}
