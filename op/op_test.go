package op_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/op"
	"github.com/Apex-Algorithms/grc-20/value"
)

func TestKindValid(t *testing.T) {
	require.True(t, op.KindCreateEntity.Valid())
	require.True(t, op.KindCreateProperty.Valid())
	require.False(t, op.Kind(0).Valid())
	require.False(t, op.Kind(10).Valid())
}

func TestKindString(t *testing.T) {
	require.Equal(t, "CreateEntity", op.KindCreateEntity.String())
	require.Contains(t, op.Kind(99).String(), "99")
}

func TestNewConstructorsSetKindAndVariant(t *testing.T) {
	entityID := id.New()

	o := op.NewCreateEntity(op.CreateEntityOp{ID: entityID})
	require.Equal(t, op.KindCreateEntity, o.Kind)
	require.NotNil(t, o.CreateEntity)
	require.Equal(t, entityID, o.CreateEntity.ID)
	require.Nil(t, o.UpdateEntity)

	d := op.NewDeleteRelation(op.DeleteRelationOp{ID: entityID})
	require.Equal(t, op.KindDeleteRelation, d.Kind)
	require.NotNil(t, d.DeleteRelation)
	require.Nil(t, d.CreateEntity)
}

func TestUpdateRelationUnsetAny(t *testing.T) {
	var u op.UpdateRelationUnset
	require.False(t, u.Any())

	u.ToVersion = true
	require.True(t, u.Any())
}

func TestRelationIDModeValid(t *testing.T) {
	require.True(t, op.RelationIDUnique.Valid())
	require.True(t, op.RelationIDMany.Valid())
	require.False(t, op.RelationIDMode(2).Valid())
	require.False(t, op.RelationIDMode(255).Valid())
}

func TestCreateRelationIDModeDistinguishesUniqueFromMany(t *testing.T) {
	from, to, relType := id.New(), id.New(), id.New()

	unique := op.NewCreateRelation(op.CreateRelationOp{
		IDMode: op.RelationIDUnique, From: from, To: to, RelationType: relType,
	})
	require.Equal(t, op.RelationIDUnique, unique.CreateRelation.IDMode)

	explicitID := id.New()
	many := op.NewCreateRelation(op.CreateRelationOp{
		IDMode: op.RelationIDMany, ID: explicitID, From: from, To: to, RelationType: relType,
	})
	require.Equal(t, explicitID, many.CreateRelation.ID)
}

func TestUnsetFieldCarriesPropertyAndQualifiers(t *testing.T) {
	prop := id.New()
	lang := id.New()

	u := op.UnsetField{Property: prop, Language: &lang}
	require.Equal(t, prop, u.Property)
	require.Equal(t, lang, *u.Language)
	require.Nil(t, u.Unit)
}

func TestCreatePropertyOpCarriesDataType(t *testing.T) {
	o := op.NewCreateProperty(op.CreatePropertyOp{ID: id.New(), DataType: value.Int64})
	require.Equal(t, value.Int64, o.CreateProperty.DataType)
}
