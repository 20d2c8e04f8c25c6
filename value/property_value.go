package value

import "github.com/Apex-Algorithms/grc-20/id"

// PropertyValue pairs a property id with its Value, plus the two optional
// wire-only qualifiers: Language (meaningful only for Text values) and Unit
// (meaningful only for Int64/Float64/Decimal values). Both are carried as
// dictionary indices on the wire (see package dict); in memory they are
// plain *id.Id, nil meaning absent.
type PropertyValue struct {
	Property id.Id
	Value    Value
	Language *id.Id
	Unit     *id.Id
}

// New constructs a PropertyValue with no language or unit qualifier.
func New(property id.Id, v Value) PropertyValue {
	return PropertyValue{Property: property, Value: v}
}

// WithLanguage returns a copy of pv with its Language qualifier set.
// Only meaningful when pv.Value.Type == Text.
func (pv PropertyValue) WithLanguage(language id.Id) PropertyValue {
	pv.Language = &language
	return pv
}

// WithUnit returns a copy of pv with its Unit qualifier set.
// Only meaningful when pv.Value.Type is Int64, Float64, or Decimal.
func (pv PropertyValue) WithUnit(unit id.Id) PropertyValue {
	pv.Unit = &unit
	return pv
}
