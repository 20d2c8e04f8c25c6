package id_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apex-Algorithms/grc-20/id"
)

func TestDeriveSetsVersionAndVariant(t *testing.T) {
	got := id.Derive([]byte("grc20:test-input"))

	require.Equal(t, byte(0x80), got[6]&0xF0, "version nibble")
	require.Equal(t, byte(0x80), got[8]&0xC0, "variant bits")
}

func TestDeriveDeterministic(t *testing.T) {
	a := id.Derive([]byte("same input"))
	b := id.Derive([]byte("same input"))
	require.Equal(t, a, b)

	c := id.Derive([]byte("different input"))
	require.NotEqual(t, a, c)
}

func TestUniqueRelationIDDeterministic(t *testing.T) {
	from, to, relType := id.New(), id.New(), id.New()

	a := id.UniqueRelationID(from, to, relType)
	b := id.UniqueRelationID(from, to, relType)
	require.Equal(t, a, b)

	other := id.UniqueRelationID(to, from, relType)
	require.NotEqual(t, a, other, "order of endpoints must matter")
}

func TestRelationEntityIDDiffersFromRelationID(t *testing.T) {
	r := id.New()
	entityID := id.RelationEntityID(r)

	require.NotEqual(t, r, entityID)

	// Deriving a relation id from (r, r, r) must never collide with
	// deriving a reified-entity id from r, since the two derivations are
	// domain-tagged with disjoint input prefixes.
	collision := id.UniqueRelationID(r, r, r)
	require.NotEqual(t, collision, entityID)
}

func TestLessIsByteLexicographic(t *testing.T) {
	var a, b id.Id
	a[0] = 0x01
	b[0] = 0x02

	require.True(t, id.Less(a, b))
	require.False(t, id.Less(b, a))
	require.False(t, id.Less(a, a))
}
