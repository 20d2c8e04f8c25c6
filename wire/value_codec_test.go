package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/limits"
	"github.com/Apex-Algorithms/grc-20/value"
	"github.com/Apex-Algorithms/grc-20/wire"
)

func roundtripValue(t *testing.T, v value.Value) value.Value {
	t.Helper()

	w := wire.NewWriter()
	require.NoError(t, wire.EncodeValue(w, v))

	r := wire.NewReader(w.Finish())
	got, err := wire.DecodeValue(r, v.Type, limits.Default())
	require.NoError(t, err)
	require.Zero(t, r.Remaining())

	return got
}

func TestValueRoundtripAllTypes(t *testing.T) {
	values := []value.Value{
		value.NewBool(true),
		value.NewBool(false),
		value.NewInt64(-12345),
		value.NewFloat64(3.14159),
		value.NewDecimalInt64(-2, 12345),
		value.NewText("Alice"),
		value.NewBytes([]byte{0x01, 0x02, 0x03}),
		value.NewTimestamp(1_700_000_000_000_000),
		value.NewDate("2024-01-15"),
		value.NewPoint(37.7749, -122.4194),
		value.NewEmbedding(value.EmbeddingF32, 4, make([]byte, 16)),
	}

	for _, v := range values {
		got := roundtripValue(t, v)
		require.True(t, v.Equal(got), "roundtrip mismatch for %s", v.Type)
	}
}

func TestDecimalBigMantissaRoundtrip(t *testing.T) {
	// A 9-byte mantissa (2^71-1), too large for int64: the big-bytes path.
	mantissa := []byte{0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	v := value.NewDecimalBytes(0, mantissa)

	got := roundtripValue(t, v)
	require.True(t, v.Equal(got))
}

func TestPointOutOfRangeLatitudeRejectedOnEncode(t *testing.T) {
	v := value.NewPoint(91.0, 0)

	w := wire.NewWriter()
	err := wire.EncodeValue(w, v)
	require.ErrorIs(t, err, errs.ErrPointOutOfRange)
}

func TestPointOutOfRangeLatitudeRejectedOnDecode(t *testing.T) {
	w := wire.NewWriter()
	require.NoError(t, w.WriteFloat64("lat", 91.0))
	require.NoError(t, w.WriteFloat64("lon", 0))

	r := wire.NewReader(w.Finish())
	_, err := wire.DecodeValue(r, value.Point, limits.Default())
	require.ErrorIs(t, err, errs.ErrPointOutOfRange)
}

func TestEmbeddingByteCountMismatchRejected(t *testing.T) {
	v := value.NewEmbedding(value.EmbeddingF32, 4, make([]byte, 15)) // wants 16

	w := wire.NewWriter()
	err := wire.EncodeValue(w, v)
	require.ErrorIs(t, err, errs.ErrLengthExceedsLimit)
}

func TestEmbeddingBinaryByteLen(t *testing.T) {
	// 9 dims bit-packed needs ceil(9/8) = 2 bytes.
	v := value.NewEmbedding(value.EmbeddingBinary, 9, make([]byte, 2))
	got := roundtripValue(t, v)
	require.True(t, v.Equal(got))
}

func TestEmbeddingDimsExceedsLimit(t *testing.T) {
	w := wire.NewWriter()
	w.WriteByte(byte(value.EmbeddingF32))
	w.WriteUvarint(uint64(limits.MaxEmbeddingDims) + 1)

	r := wire.NewReader(w.Finish())
	_, err := wire.DecodeValue(r, value.Embedding, limits.Default())
	require.ErrorIs(t, err, errs.ErrLengthExceedsLimit)
}
