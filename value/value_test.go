package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/value"
)

func TestEqualSameTypeDifferentPayload(t *testing.T) {
	require.False(t, value.NewInt64(1).Equal(value.NewInt64(2)))
	require.False(t, value.NewBool(true).Equal(value.NewBool(false)))
	require.False(t, value.NewText("a").Equal(value.NewText("b")))
}

func TestEqualDifferentTypesNeverEqual(t *testing.T) {
	require.False(t, value.NewInt64(1).Equal(value.NewFloat64(1)))
}

func TestEqualDecimalComparesActiveMantissaOnly(t *testing.T) {
	a := value.NewDecimalInt64(-2, 100)
	b := value.NewDecimalInt64(-2, 100)
	require.True(t, a.Equal(b))

	c := value.NewDecimalBytes(-2, []byte{0x01})
	require.False(t, a.Equal(c), "different mantissa tags must not compare equal")
}

func TestBinaryByteLenRoundsUp(t *testing.T) {
	require.Equal(t, 0, value.BinaryByteLen(0))
	require.Equal(t, 1, value.BinaryByteLen(1))
	require.Equal(t, 1, value.BinaryByteLen(8))
	require.Equal(t, 2, value.BinaryByteLen(9))
}

func TestEmbeddingSubTypeElementSize(t *testing.T) {
	require.Equal(t, 4, value.EmbeddingF32.ElementSize())
	require.Equal(t, 1, value.EmbeddingI8.ElementSize())
	require.Equal(t, 0, value.EmbeddingBinary.ElementSize())
}

func TestDataTypeValid(t *testing.T) {
	require.True(t, value.Bool.Valid())
	require.True(t, value.Embedding.Valid())
	require.False(t, value.DataType(0).Valid())
	require.False(t, value.DataType(11).Valid())
}

func TestPropertyValueWithLanguageAndUnit(t *testing.T) {
	lang := id.New()
	unit := id.New()

	pv := value.New(id.New(), value.NewText("hola")).WithLanguage(lang)
	require.NotNil(t, pv.Language)
	require.Equal(t, lang, *pv.Language)
	require.Nil(t, pv.Unit)

	pv2 := value.New(id.New(), value.NewInt64(5)).WithUnit(unit)
	require.NotNil(t, pv2.Unit)
	require.Equal(t, unit, *pv2.Unit)
}
