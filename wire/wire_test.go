package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/wire"
)

func TestUvarintRoundtrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16383, 16384, ^uint64(0)}

	for _, v := range values {
		w := wire.NewWriter()
		w.WriteUvarint(v)
		r := wire.NewReader(w.Finish())

		got, err := r.ReadUvarint("v")
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Zero(t, r.Remaining())
	}
}

func TestFinishReturnsIndependentCopy(t *testing.T) {
	w := wire.NewWriter()
	w.WriteRaw([]byte("payload"))
	out := w.Finish()

	want := append([]byte(nil), out...)

	// Finish returns its pooled scratch buffer to the writer pool; drive a
	// lot of further NewWriter/Finish cycles (certain to recycle that same
	// backing array) and confirm the first call's bytes were never aliased.
	for i := 0; i < 1000; i++ {
		w2 := wire.NewWriter()
		w2.WriteRaw([]byte("some other unrelated content, long enough to force growth"))
		_ = w2.Finish()
	}

	require.Equal(t, want, out)
}

func TestVarintRoundtrip(t *testing.T) {
	values := []int64{0, 1, -1, 1<<63 - 1, -(1 << 63)}

	for _, v := range values {
		w := wire.NewWriter()
		w.WriteVarint(v)
		r := wire.NewReader(w.Finish())

		got, err := r.ReadVarint("v")
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestUvarintTruncatedIsUnexpectedEOF(t *testing.T) {
	w := wire.NewWriter()
	w.WriteUvarint(16384) // needs 3 bytes
	full := w.Finish()

	r := wire.NewReader(full[:1])
	_, err := r.ReadUvarint("v")
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestUvarintOverlongIsVarintTooLong(t *testing.T) {
	overlong := make([]byte, 11)
	for i := range overlong[:10] {
		overlong[i] = 0x80
	}
	overlong[10] = 0x01

	r := wire.NewReader(overlong)
	_, err := r.ReadUvarint("v")
	require.ErrorIs(t, err, errs.ErrVarintTooLong)
}

func TestFloat64RejectsNaN(t *testing.T) {
	w := wire.NewWriter()
	err := w.WriteFloat64("f", nan())
	require.ErrorIs(t, err, errs.ErrNaNNotAllowed)
}

func TestFloat64DecodeRejectsNaNBytes(t *testing.T) {
	// IEEE-754 little-endian NaN: all exponent bits set, non-zero mantissa.
	nanBytes := []byte{0x01, 0, 0, 0, 0, 0, 0xF8, 0x7F}

	r := wire.NewReader(nanBytes)
	_, err := r.ReadFloat64("f")
	require.ErrorIs(t, err, errs.ErrNaNNotAllowed)
}

func TestBoolInvalidByte(t *testing.T) {
	r := wire.NewReader([]byte{0x02})
	_, err := r.ReadBool("b")
	require.ErrorIs(t, err, errs.ErrInvalidBoolByte)
}

func TestStringRejectsInvalidUTF8(t *testing.T) {
	w := wire.NewWriter()
	w.WriteUvarint(1)
	w.WriteRaw([]byte{0xff})
	r := wire.NewReader(w.Finish())

	_, err := r.ReadString("s", 1024)
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestStringRoundtripUTF8Edges(t *testing.T) {
	cases := []string{"", "a", "héllo", "🎉", "BCE -0044"}
	for _, s := range cases {
		w := wire.NewWriter()
		w.WriteString(s)
		r := wire.NewReader(w.Finish())

		got, err := r.ReadString("s", 1024)
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestBytesLengthExceedsLimit(t *testing.T) {
	w := wire.NewWriter()
	w.WriteBytes(make([]byte, 10))
	r := wire.NewReader(w.Finish())

	_, err := r.ReadBytes("b", 5)
	require.ErrorIs(t, err, errs.ErrLengthExceedsLimit)
}

func TestIDRoundtrip(t *testing.T) {
	want := id.New()

	w := wire.NewWriter()
	w.WriteID(want)
	r := wire.NewReader(w.Finish())

	got, err := r.ReadID("id")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func nan() float64 {
	var zero float64
	return zero / zero //nolint:staticcheck
}
