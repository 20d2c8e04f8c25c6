package grc20_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	grc20 "github.com/Apex-Algorithms/grc-20"
	"github.com/Apex-Algorithms/grc-20/op"
	"github.com/Apex-Algorithms/grc-20/value"
)

func TestEncodeDecodeRoundtripThroughFacade(t *testing.T) {
	person := grc20.NewId()
	nameProp := grc20.NewId()

	e := grc20.Edit{
		ID:        grc20.NewId(),
		Name:      "add a person",
		CreatedAt: 1_700_000_000_000_000,
		Ops: []op.Op{
			op.NewCreateEntity(op.CreateEntityOp{
				ID:     person,
				Values: []value.PropertyValue{value.New(nameProp, value.NewText("Alice"))},
			}),
		},
	}

	encoded, err := grc20.EncodeEdit(e)
	require.NoError(t, err)

	got, err := grc20.DecodeEdit(encoded)
	require.NoError(t, err)
	require.Equal(t, person, got.Ops[0].CreateEntity.ID)
}

func TestUniqueRelationIdMatchesDerivedScheme(t *testing.T) {
	from, to, relType := grc20.NewId(), grc20.NewId(), grc20.NewId()

	got := grc20.UniqueRelationId(from, to, relType)
	other := grc20.UniqueRelationId(to, from, relType)

	input := append(append(append([]byte(nil), from[:]...), to[:]...), relType[:]...)
	require.Equal(t, grc20.DerivedId(input), got)
	require.NotEqual(t, got, other)
}

func TestRelationEntityIdDerivedFromRelationId(t *testing.T) {
	r := grc20.NewId()
	entity := grc20.RelationEntityId(r)

	require.NotEqual(t, r, entity)
}

func TestDerivedIdDeterministic(t *testing.T) {
	a := grc20.DerivedId([]byte("same input"))
	b := grc20.DerivedId([]byte("same input"))
	require.Equal(t, a, b)
}

func TestCompressedRoundtripThroughFacade(t *testing.T) {
	e := grc20.Edit{ID: grc20.NewId(), Name: "c", Ops: nil}

	encoded, err := grc20.EncodeEditCompressed(e, grc20.DefaultCompressionLevel)
	require.NoError(t, err)
	require.True(t, grc20.IsCompressed(encoded))

	got, err := grc20.DecodeEdit(encoded)
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)
}

func TestDecodeEditWithLimitsRejectsOversizedFrame(t *testing.T) {
	e := grc20.Edit{ID: grc20.NewId(), Name: "x"}
	encoded, err := grc20.EncodeEdit(e)
	require.NoError(t, err)

	lim := grc20.Limits{}
	_, err = grc20.DecodeEditWithLimits(encoded, lim)
	require.Error(t, err, "zero-value Limits should reject everything")
}
