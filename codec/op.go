package codec

import (
	"sort"

	"github.com/Apex-Algorithms/grc-20/dict"
	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/limits"
	"github.com/Apex-Algorithms/grc-20/op"
	"github.com/Apex-Algorithms/grc-20/value"
	"github.com/Apex-Algorithms/grc-20/wire"
)

// The flag* bits select which optional CreateRelation/UpdateRelation
// fields are present, packed into a single presence byte per §4.4.
const (
	flagPosition = 1 << iota
	flagEntity
	flagFromSpace
	flagFromVersion
	flagToSpace
	flagToVersion
)

func encodeObjectRef(w *wire.Writer, v id.Id, ix dict.Index) error {
	idx, ok := ix.Object(v)
	if !ok {
		return errs.IndexOutOfBounds("objects", -1, 0)
	}
	w.WriteUvarint(uint64(idx))

	return nil
}

func decodeObjectRef(r *wire.Reader, field string, tables dict.Tables) (id.Id, error) {
	idx, err := r.ReadUvarint(field)
	if err != nil {
		return id.Nil, err
	}

	return tables.ObjectAt(int(idx))
}

// sortedPropertyValues returns a copy of pvs ordered by property id when
// canonical is true, leaving the caller's slice untouched either way.
func sortedPropertyValues(pvs []value.PropertyValue, canonical bool) []value.PropertyValue {
	out := make([]value.PropertyValue, len(pvs))
	copy(out, pvs)

	if canonical {
		sort.Slice(out, func(i, j int) bool { return id.Less(out[i].Property, out[j].Property) })
	}

	return out
}

// sortedUnsetFields is sortedPropertyValues's counterpart for UpdateEntity's
// unset list.
func sortedUnsetFields(us []op.UnsetField, canonical bool) []op.UnsetField {
	out := make([]op.UnsetField, len(us))
	copy(out, us)

	if canonical {
		sort.Slice(out, func(i, j int) bool { return id.Less(out[i].Property, out[j].Property) })
	}

	return out
}

// encodeOp appends o's one-byte kind tag followed by its fields, per §4.4.
// When canonical is true, each op's variable-set entries are emitted in
// property-id order so that encoding the same logical edit twice, built in
// different insertion orders, yields byte-identical output.
func encodeOp(w *wire.Writer, o op.Op, ix dict.Index, propertyTypes map[id.Id]value.DataType, canonical bool) error {
	w.WriteByte(byte(o.Kind))

	switch o.Kind {
	case op.KindCreateEntity:
		return encodeCreateEntity(w, o.CreateEntity, ix, canonical)

	case op.KindUpdateEntity:
		return encodeUpdateEntity(w, o.UpdateEntity, ix, propertyTypes, canonical)

	case op.KindDeleteEntity:
		return encodeObjectRef(w, o.DeleteEntity.ID, ix)

	case op.KindRestoreEntity:
		return encodeObjectRef(w, o.RestoreEntity.ID, ix)

	case op.KindCreateRelation:
		return encodeCreateRelation(w, o.CreateRelation, ix)

	case op.KindUpdateRelation:
		return encodeUpdateRelation(w, o.UpdateRelation, ix)

	case op.KindDeleteRelation:
		return encodeObjectRef(w, o.DeleteRelation.ID, ix)

	case op.KindRestoreRelation:
		return encodeObjectRef(w, o.RestoreRelation.ID, ix)

	case op.KindCreateProperty:
		w.WriteID(o.CreateProperty.ID)
		w.WriteByte(byte(o.CreateProperty.DataType))

		return nil

	default:
		return errs.InvalidOpType(byte(o.Kind))
	}
}

func encodeCreateEntity(w *wire.Writer, c *op.CreateEntityOp, ix dict.Index, canonical bool) error {
	if err := encodeObjectRef(w, c.ID, ix); err != nil {
		return err
	}

	values := sortedPropertyValues(c.Values, canonical)

	w.WriteUvarint(uint64(len(values)))
	for _, pv := range values {
		if err := encodePropertyValue(w, pv, ix); err != nil {
			return err
		}
	}

	return nil
}

func encodeUpdateEntity(w *wire.Writer, u *op.UpdateEntityOp, ix dict.Index, propertyTypes map[id.Id]value.DataType, canonical bool) error {
	if err := encodeObjectRef(w, u.ID, ix); err != nil {
		return err
	}

	set := sortedPropertyValues(u.Set, canonical)

	w.WriteUvarint(uint64(len(set)))
	for _, pv := range set {
		if err := encodePropertyValue(w, pv, ix); err != nil {
			return err
		}
	}

	unset := sortedUnsetFields(u.Unset, canonical)

	w.WriteUvarint(uint64(len(unset)))
	for _, u := range unset {
		if err := encodeUnsetField(w, u, ix, propertyTypes); err != nil {
			return err
		}
	}

	return nil
}

func encodeCreateRelation(w *wire.Writer, c *op.CreateRelationOp, ix dict.Index) error {
	w.WriteByte(byte(c.IDMode))

	if c.IDMode == op.RelationIDMany {
		if err := encodeObjectRef(w, c.ID, ix); err != nil {
			return err
		}
	}

	relTypeIdx, ok := ix.RelationType(c.RelationType)
	if !ok {
		return errs.IndexOutOfBounds("relation_types", -1, 0)
	}
	w.WriteUvarint(uint64(relTypeIdx))

	if err := encodeObjectRef(w, c.From, ix); err != nil {
		return err
	}
	if err := encodeObjectRef(w, c.To, ix); err != nil {
		return err
	}

	flags := byte(0)
	if c.Position != nil {
		flags |= flagPosition
	}
	if c.Entity != nil {
		flags |= flagEntity
	}
	if c.FromSpace != nil {
		flags |= flagFromSpace
	}
	if c.FromVersion != nil {
		flags |= flagFromVersion
	}
	if c.ToSpace != nil {
		flags |= flagToSpace
	}
	if c.ToVersion != nil {
		flags |= flagToVersion
	}
	w.WriteByte(flags)

	if c.Position != nil {
		w.WriteString(*c.Position)
	}
	if c.Entity != nil {
		if err := encodeObjectRef(w, *c.Entity, ix); err != nil {
			return err
		}
	}
	if c.FromSpace != nil {
		if err := encodeObjectRef(w, *c.FromSpace, ix); err != nil {
			return err
		}
	}
	if c.FromVersion != nil {
		if err := encodeObjectRef(w, *c.FromVersion, ix); err != nil {
			return err
		}
	}
	if c.ToSpace != nil {
		if err := encodeObjectRef(w, *c.ToSpace, ix); err != nil {
			return err
		}
	}
	if c.ToVersion != nil {
		if err := encodeObjectRef(w, *c.ToVersion, ix); err != nil {
			return err
		}
	}

	return nil
}

func encodeUpdateRelation(w *wire.Writer, u *op.UpdateRelationOp, ix dict.Index) error {
	if err := encodeObjectRef(w, u.ID, ix); err != nil {
		return err
	}

	flags := byte(0)
	if u.Position != nil {
		flags |= flagPosition
	}
	if u.Entity != nil || u.Unset.Entity {
		flags |= flagEntity
	}
	if u.FromSpace != nil || u.Unset.FromSpace {
		flags |= flagFromSpace
	}
	if u.FromVersion != nil || u.Unset.FromVersion {
		flags |= flagFromVersion
	}
	if u.ToSpace != nil || u.Unset.ToSpace {
		flags |= flagToSpace
	}
	if u.ToVersion != nil || u.Unset.ToVersion {
		flags |= flagToVersion
	}
	w.WriteByte(flags)

	// Position, when flagged, is written as a plain string. For each flagged
	// id field after it, a presence-of-value byte distinguishes "set to this
	// value" (1, value follows) from "unset" (0, nothing follows).
	if u.Position != nil {
		w.WriteString(*u.Position)
	}

	writeUpdateRef := func(present bool, unset bool, v *id.Id) error {
		if !present {
			return nil
		}
		if unset {
			w.WriteByte(0)

			return nil
		}
		w.WriteByte(1)

		return encodeObjectRef(w, *v, ix)
	}

	if err := writeUpdateRef(u.Entity != nil || u.Unset.Entity, u.Unset.Entity, u.Entity); err != nil {
		return err
	}
	if err := writeUpdateRef(u.FromSpace != nil || u.Unset.FromSpace, u.Unset.FromSpace, u.FromSpace); err != nil {
		return err
	}
	if err := writeUpdateRef(u.FromVersion != nil || u.Unset.FromVersion, u.Unset.FromVersion, u.FromVersion); err != nil {
		return err
	}
	if err := writeUpdateRef(u.ToSpace != nil || u.Unset.ToSpace, u.Unset.ToSpace, u.ToSpace); err != nil {
		return err
	}
	if err := writeUpdateRef(u.ToVersion != nil || u.Unset.ToVersion, u.Unset.ToVersion, u.ToVersion); err != nil {
		return err
	}

	return nil
}

// decodeOp reads one op-type tag and its fields.
func decodeOp(r *wire.Reader, tables dict.Tables, lim limits.Limits) (op.Op, error) {
	tagByte, err := r.ReadByte("op.kind")
	if err != nil {
		return op.Op{}, err
	}

	kind := op.Kind(tagByte)
	if !kind.Valid() {
		return op.Op{}, errs.InvalidOpType(tagByte)
	}

	switch kind {
	case op.KindCreateEntity:
		return decodeCreateEntity(r, tables, lim)

	case op.KindUpdateEntity:
		return decodeUpdateEntity(r, tables, lim)

	case op.KindDeleteEntity:
		v, err := decodeObjectRef(r, "delete_entity.id", tables)
		if err != nil {
			return op.Op{}, err
		}

		return op.NewDeleteEntity(op.DeleteEntityOp{ID: v}), nil

	case op.KindRestoreEntity:
		v, err := decodeObjectRef(r, "restore_entity.id", tables)
		if err != nil {
			return op.Op{}, err
		}

		return op.NewRestoreEntity(op.RestoreEntityOp{ID: v}), nil

	case op.KindCreateRelation:
		return decodeCreateRelation(r, tables)

	case op.KindUpdateRelation:
		return decodeUpdateRelation(r, tables)

	case op.KindDeleteRelation:
		v, err := decodeObjectRef(r, "delete_relation.id", tables)
		if err != nil {
			return op.Op{}, err
		}

		return op.NewDeleteRelation(op.DeleteRelationOp{ID: v}), nil

	case op.KindRestoreRelation:
		v, err := decodeObjectRef(r, "restore_relation.id", tables)
		if err != nil {
			return op.Op{}, err
		}

		return op.NewRestoreRelation(op.RestoreRelationOp{ID: v}), nil

	case op.KindCreateProperty:
		propID, err := r.ReadID("create_property.id")
		if err != nil {
			return op.Op{}, err
		}

		dtByte, err := r.ReadByte("create_property.data_type")
		if err != nil {
			return op.Op{}, err
		}

		dt := value.DataType(dtByte)
		if !dt.Valid() {
			return op.Op{}, errs.InvalidDataType(dtByte)
		}

		return op.NewCreateProperty(op.CreatePropertyOp{ID: propID, DataType: dt}), nil

	default:
		return op.Op{}, errs.InvalidOpType(tagByte)
	}
}

func decodeCreateEntity(r *wire.Reader, tables dict.Tables, lim limits.Limits) (op.Op, error) {
	entityID, err := decodeObjectRef(r, "create_entity.id", tables)
	if err != nil {
		return op.Op{}, err
	}

	n, err := r.ReadUvarint("create_entity.values.count")
	if err != nil {
		return op.Op{}, err
	}
	if n > uint64(lim.MaxValuesPerEntity) {
		return op.Op{}, errs.LengthExceedsLimit("create_entity.values.count", int(n), lim.MaxValuesPerEntity)
	}

	values := make([]value.PropertyValue, 0, n)
	for i := uint64(0); i < n; i++ {
		pv, err := decodePropertyValue(r, tables, lim)
		if err != nil {
			return op.Op{}, err
		}

		values = append(values, pv)
	}

	return op.NewCreateEntity(op.CreateEntityOp{ID: entityID, Values: values}), nil
}

func decodeUpdateEntity(r *wire.Reader, tables dict.Tables, lim limits.Limits) (op.Op, error) {
	entityID, err := decodeObjectRef(r, "update_entity.id", tables)
	if err != nil {
		return op.Op{}, err
	}

	setCount, err := r.ReadUvarint("update_entity.set.count")
	if err != nil {
		return op.Op{}, err
	}
	if setCount > uint64(lim.MaxValuesPerEntity) {
		return op.Op{}, errs.LengthExceedsLimit("update_entity.set.count", int(setCount), lim.MaxValuesPerEntity)
	}

	set := make([]value.PropertyValue, 0, setCount)
	for i := uint64(0); i < setCount; i++ {
		pv, err := decodePropertyValue(r, tables, lim)
		if err != nil {
			return op.Op{}, err
		}

		set = append(set, pv)
	}

	unsetCount, err := r.ReadUvarint("update_entity.unset.count")
	if err != nil {
		return op.Op{}, err
	}
	if unsetCount > uint64(lim.MaxValuesPerEntity) {
		return op.Op{}, errs.LengthExceedsLimit("update_entity.unset.count", int(unsetCount), lim.MaxValuesPerEntity)
	}

	unset := make([]op.UnsetField, 0, unsetCount)
	for i := uint64(0); i < unsetCount; i++ {
		u, err := decodeUnsetField(r, tables)
		if err != nil {
			return op.Op{}, err
		}

		unset = append(unset, u)
	}

	return op.NewUpdateEntity(op.UpdateEntityOp{ID: entityID, Set: set, Unset: unset}), nil
}

func decodeCreateRelation(r *wire.Reader, tables dict.Tables) (op.Op, error) {
	modeByte, err := r.ReadByte("create_relation.id_mode")
	if err != nil {
		return op.Op{}, err
	}
	mode := op.RelationIDMode(modeByte)
	if !mode.Valid() {
		return op.Op{}, errs.InvalidRelationIDMode(modeByte)
	}

	c := op.CreateRelationOp{IDMode: mode}

	if mode == op.RelationIDMany {
		relID, err := decodeObjectRef(r, "create_relation.id", tables)
		if err != nil {
			return op.Op{}, err
		}

		c.ID = relID
	}

	relTypeIdx, err := r.ReadUvarint("create_relation.relation_type_index")
	if err != nil {
		return op.Op{}, err
	}

	relType, err := tables.RelationTypeAt(int(relTypeIdx))
	if err != nil {
		return op.Op{}, err
	}
	c.RelationType = relType

	c.From, err = decodeObjectRef(r, "create_relation.from", tables)
	if err != nil {
		return op.Op{}, err
	}
	c.To, err = decodeObjectRef(r, "create_relation.to", tables)
	if err != nil {
		return op.Op{}, err
	}

	if mode == op.RelationIDUnique {
		c.ID = id.UniqueRelationID(c.From, c.To, c.RelationType)
	}

	flags, err := r.ReadByte("create_relation.flags")
	if err != nil {
		return op.Op{}, err
	}

	if flags&flagPosition != 0 {
		s, err := r.ReadString("create_relation.position", limits.MaxStringLen)
		if err != nil {
			return op.Op{}, err
		}

		c.Position = &s
	}
	if flags&flagEntity != 0 {
		v, err := decodeObjectRef(r, "create_relation.entity", tables)
		if err != nil {
			return op.Op{}, err
		}

		c.Entity = &v
	}
	if flags&flagFromSpace != 0 {
		v, err := decodeObjectRef(r, "create_relation.from_space", tables)
		if err != nil {
			return op.Op{}, err
		}

		c.FromSpace = &v
	}
	if flags&flagFromVersion != 0 {
		v, err := decodeObjectRef(r, "create_relation.from_version", tables)
		if err != nil {
			return op.Op{}, err
		}

		c.FromVersion = &v
	}
	if flags&flagToSpace != 0 {
		v, err := decodeObjectRef(r, "create_relation.to_space", tables)
		if err != nil {
			return op.Op{}, err
		}

		c.ToSpace = &v
	}
	if flags&flagToVersion != 0 {
		v, err := decodeObjectRef(r, "create_relation.to_version", tables)
		if err != nil {
			return op.Op{}, err
		}

		c.ToVersion = &v
	}

	return op.NewCreateRelation(c), nil
}

func decodeUpdateRelation(r *wire.Reader, tables dict.Tables) (op.Op, error) {
	relID, err := decodeObjectRef(r, "update_relation.id", tables)
	if err != nil {
		return op.Op{}, err
	}

	flags, err := r.ReadByte("update_relation.flags")
	if err != nil {
		return op.Op{}, err
	}

	u := op.UpdateRelationOp{ID: relID}

	if flags&flagPosition != 0 {
		s, err := r.ReadString("update_relation.position", limits.MaxStringLen)
		if err != nil {
			return op.Op{}, err
		}

		u.Position = &s
	}

	readUpdateRef := func(flagged bool, field string) (*id.Id, bool, error) {
		if !flagged {
			return nil, false, nil
		}

		presence, err := r.ReadByte(field + ".presence")
		if err != nil {
			return nil, false, err
		}

		if presence == 0 {
			return nil, true, nil
		}

		v, err := decodeObjectRef(r, field, tables)
		if err != nil {
			return nil, false, err
		}

		return &v, false, nil
	}

	if v, unset, err := readUpdateRef(flags&flagEntity != 0, "update_relation.entity"); err != nil {
		return op.Op{}, err
	} else {
		u.Entity, u.Unset.Entity = v, unset
	}
	if v, unset, err := readUpdateRef(flags&flagFromSpace != 0, "update_relation.from_space"); err != nil {
		return op.Op{}, err
	} else {
		u.FromSpace, u.Unset.FromSpace = v, unset
	}
	if v, unset, err := readUpdateRef(flags&flagFromVersion != 0, "update_relation.from_version"); err != nil {
		return op.Op{}, err
	} else {
		u.FromVersion, u.Unset.FromVersion = v, unset
	}
	if v, unset, err := readUpdateRef(flags&flagToSpace != 0, "update_relation.to_space"); err != nil {
		return op.Op{}, err
	} else {
		u.ToSpace, u.Unset.ToSpace = v, unset
	}
	if v, unset, err := readUpdateRef(flags&flagToVersion != 0, "update_relation.to_version"); err != nil {
		return op.Op{}, err
	} else {
		u.ToVersion, u.Unset.ToVersion = v, unset
	}

	return op.NewUpdateRelation(u), nil
}
