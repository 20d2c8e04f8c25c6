package codec

import (
	"github.com/Apex-Algorithms/grc-20/dict"
	"github.com/Apex-Algorithms/grc-20/edit"
	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/op"
	"github.com/Apex-Algorithms/grc-20/value"
)

// buildDictionaries makes a single pass over e's ops, registering every id
// they reference into the appropriate table of a dict.Builder. Property
// datatypes are learned from CreateProperty ops and from the Value carried
// by every PropertyValue; an UpdateEntity unset entry whose property's
// datatype cannot be learned this way is an encode-time error, since the
// codec would otherwise have no way to decide whether a language or unit
// index follows it on the wire.
func buildDictionaries(e edit.Edit) (*dict.Builder, error) {
	b := dict.NewBuilder()

	var pending []id.Id

	addPropertyValue := func(pv value.PropertyValue) error {
		if err := b.AddProperty(pv.Property, pv.Value.Type); err != nil {
			return err
		}
		if pv.Language != nil {
			b.AddLanguage(*pv.Language)
		}
		if pv.Unit != nil {
			b.AddUnit(*pv.Unit)
		}

		return nil
	}

	for _, o := range e.Ops {
		switch o.Kind {
		case op.KindCreateEntity:
			b.AddObject(o.CreateEntity.ID)
			for _, pv := range o.CreateEntity.Values {
				if err := addPropertyValue(pv); err != nil {
					return nil, err
				}
			}

		case op.KindUpdateEntity:
			b.AddObject(o.UpdateEntity.ID)
			for _, pv := range o.UpdateEntity.Set {
				if err := addPropertyValue(pv); err != nil {
					return nil, err
				}
			}
			for _, u := range o.UpdateEntity.Unset {
				pending = append(pending, u.Property)
				if u.Language != nil {
					b.AddLanguage(*u.Language)
				}
				if u.Unit != nil {
					b.AddUnit(*u.Unit)
				}
			}

		case op.KindDeleteEntity:
			b.AddObject(o.DeleteEntity.ID)

		case op.KindRestoreEntity:
			b.AddObject(o.RestoreEntity.ID)

		case op.KindCreateRelation:
			cr := o.CreateRelation
			if cr.IDMode == op.RelationIDMany {
				b.AddObject(cr.ID)
			}
			b.AddRelationType(cr.RelationType)
			b.AddObject(cr.From)
			b.AddObject(cr.To)
			if cr.Entity != nil {
				b.AddObject(*cr.Entity)
			}
			if cr.FromSpace != nil {
				b.AddObject(*cr.FromSpace)
			}
			if cr.FromVersion != nil {
				b.AddObject(*cr.FromVersion)
			}
			if cr.ToSpace != nil {
				b.AddObject(*cr.ToSpace)
			}
			if cr.ToVersion != nil {
				b.AddObject(*cr.ToVersion)
			}

		case op.KindUpdateRelation:
			ur := o.UpdateRelation
			b.AddObject(ur.ID)
			if ur.Entity != nil {
				b.AddObject(*ur.Entity)
			}
			if ur.FromSpace != nil {
				b.AddObject(*ur.FromSpace)
			}
			if ur.FromVersion != nil {
				b.AddObject(*ur.FromVersion)
			}
			if ur.ToSpace != nil {
				b.AddObject(*ur.ToSpace)
			}
			if ur.ToVersion != nil {
				b.AddObject(*ur.ToVersion)
			}

		case op.KindDeleteRelation:
			b.AddObject(o.DeleteRelation.ID)

		case op.KindRestoreRelation:
			b.AddObject(o.RestoreRelation.ID)

		case op.KindCreateProperty:
			if err := b.AddProperty(o.CreateProperty.ID, o.CreateProperty.DataType); err != nil {
				return nil, err
			}
		}
	}

	if len(pending) > 0 {
		props := b.Build().Properties
		known := make(map[id.Id]struct{}, len(props))
		for _, p := range props {
			known[p.ID] = struct{}{}
		}

		for _, propertyID := range pending {
			if _, ok := known[propertyID]; !ok {
				return nil, errs.UnknownPropertyDatatype(propertyID)
			}
		}
	}

	return b, nil
}
