package codec

import (
	"github.com/Apex-Algorithms/grc-20/dict"
	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/limits"
	"github.com/Apex-Algorithms/grc-20/op"
	"github.com/Apex-Algorithms/grc-20/value"
	"github.com/Apex-Algorithms/grc-20/wire"
)

// usesLanguage and usesUnit report which optional qualifier, if any, a
// given DataType carries on the wire, per §4.4's PropertyValue layout.
func usesLanguage(dt value.DataType) bool {
	return dt == value.Text
}

func usesUnit(dt value.DataType) bool {
	return dt == value.Int64 || dt == value.Float64 || dt == value.Decimal
}

// encodePropertyValue appends property_index, the value payload, and
// (depending on the property's DataType) a language or unit index. Index 0
// means absent; a present qualifier is written as its dictionary index + 1.
func encodePropertyValue(w *wire.Writer, pv value.PropertyValue, ix dict.Index) error {
	propIndex, ok := ix.Property(pv.Property)
	if !ok {
		return errs.UnknownPropertyDatatype(pv.Property)
	}
	w.WriteUvarint(uint64(propIndex))

	if err := wire.EncodeValue(w, pv.Value); err != nil {
		return err
	}

	switch {
	case usesLanguage(pv.Value.Type):
		writeOptionalIndex(w, pv.Language, ix.Language)

	case usesUnit(pv.Value.Type):
		writeOptionalIndex(w, pv.Unit, ix.Unit)
	}

	return nil
}

func writeOptionalIndex(w *wire.Writer, v *id.Id, resolve func(id.Id) (int, bool)) {
	if v == nil {
		w.WriteUvarint(0)
		return
	}

	idx, _ := resolve(*v)
	w.WriteUvarint(uint64(idx) + 1)
}

// decodePropertyValue is the inverse of encodePropertyValue, resolving
// property_index and any language/unit index against tables.
func decodePropertyValue(r *wire.Reader, tables dict.Tables, lim limits.Limits) (value.PropertyValue, error) {
	propIndex, err := r.ReadUvarint("property_value.property_index")
	if err != nil {
		return value.PropertyValue{}, err
	}

	entry, err := tables.PropertyAt(int(propIndex))
	if err != nil {
		return value.PropertyValue{}, err
	}

	v, err := wire.DecodeValue(r, entry.DataType, lim)
	if err != nil {
		return value.PropertyValue{}, err
	}

	pv := value.New(entry.ID, v)

	switch {
	case usesLanguage(entry.DataType):
		lang, err := readOptionalIndex(r, "property_value.language_index")
		if err != nil {
			return value.PropertyValue{}, err
		}
		if lang != nil {
			resolved, err := tables.LanguageAt(*lang)
			if err != nil {
				return value.PropertyValue{}, err
			}
			pv = pv.WithLanguage(resolved)
		}

	case usesUnit(entry.DataType):
		unit, err := readOptionalIndex(r, "property_value.unit_index")
		if err != nil {
			return value.PropertyValue{}, err
		}
		if unit != nil {
			resolved, err := tables.UnitAt(*unit)
			if err != nil {
				return value.PropertyValue{}, err
			}
			pv = pv.WithUnit(resolved)
		}
	}

	return pv, nil
}

// readOptionalIndex reads a varint where 0 means absent and n>0 means
// dictionary index n-1.
func readOptionalIndex(r *wire.Reader, field string) (*int, error) {
	n, err := r.ReadUvarint(field)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil
	}

	idx := int(n - 1)

	return &idx, nil
}

// encodeUnsetField appends an UpdateEntity unset entry: property_index,
// then a language or unit index depending on the property's DataType as
// already recorded in tables.
func encodeUnsetField(w *wire.Writer, u op.UnsetField, ix dict.Index, propertyTypes map[id.Id]value.DataType) error {
	propIndex, ok := ix.Property(u.Property)
	if !ok {
		return errs.UnknownPropertyDatatype(u.Property)
	}
	w.WriteUvarint(uint64(propIndex))

	dt, ok := propertyTypes[u.Property]
	if !ok {
		return errs.UnknownPropertyDatatype(u.Property)
	}

	switch {
	case usesLanguage(dt):
		writeOptionalIndex(w, u.Language, ix.Language)
	case usesUnit(dt):
		writeOptionalIndex(w, u.Unit, ix.Unit)
	}

	return nil
}

// decodeUnsetField is the inverse of encodeUnsetField.
func decodeUnsetField(r *wire.Reader, tables dict.Tables) (op.UnsetField, error) {
	propIndex, err := r.ReadUvarint("unset_field.property_index")
	if err != nil {
		return op.UnsetField{}, err
	}

	entry, err := tables.PropertyAt(int(propIndex))
	if err != nil {
		return op.UnsetField{}, err
	}

	u := op.UnsetField{Property: entry.ID}

	switch {
	case usesLanguage(entry.DataType):
		lang, err := readOptionalIndex(r, "unset_field.language_index")
		if err != nil {
			return op.UnsetField{}, err
		}
		if lang != nil {
			resolved, err := tables.LanguageAt(*lang)
			if err != nil {
				return op.UnsetField{}, err
			}
			u.Language = &resolved
		}

	case usesUnit(entry.DataType):
		unit, err := readOptionalIndex(r, "unset_field.unit_index")
		if err != nil {
			return op.UnsetField{}, err
		}
		if unit != nil {
			resolved, err := tables.UnitAt(*unit)
			if err != nil {
				return op.UnsetField{}, err
			}
			u.Unit = &resolved
		}
	}

	return u, nil
}
