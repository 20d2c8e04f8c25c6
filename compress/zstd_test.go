package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressDecompressRoundtrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")

	for _, level := range []int{1, 3, 9, 22} {
		compressed := Compress(data, level)
		decompressed, err := Decompress(compressed, len(data))
		require.NoError(t, err)
		require.Equal(t, data, decompressed)
	}
}

func TestDecompressInvalidInput(t *testing.T) {
	_, err := Decompress([]byte{0x01, 0x02, 0x03}, 1024)
	require.Error(t, err)
}

func TestCompressEmpty(t *testing.T) {
	compressed := Compress(nil, 3)
	decompressed, err := Decompress(compressed, 0)
	require.NoError(t, err)
	require.Empty(t, decompressed)
}

func TestDecompressRejectsOversizedOutput(t *testing.T) {
	// A small, highly compressible payload whose true decompressed size is
	// much larger than the maxSize bound, simulating a decompression bomb:
	// Decompress must stop short rather than fully inflating it first.
	data := make([]byte, 1<<20)
	compressed := Compress(data, 19)

	_, err := Decompress(compressed, 1024)
	require.ErrorIs(t, err, ErrDecompressedTooLarge)
}

func TestDecompressAcceptsExactBound(t *testing.T) {
	data := []byte("exact size bound")
	compressed := Compress(data, 3)

	decompressed, err := Decompress(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}
