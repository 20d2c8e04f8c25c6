// Package compress wraps zstd compression for the GRC2Z frame. The wire
// grammar defines exactly one compressed-frame format (§4.5), so unlike a
// multi-backend codec registry this package exposes two functions, not an
// interface: there is nothing to select between at decode time beyond the
// GRC2 / GRC2Z magic itself.
package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var decoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd decoder: %v", err))
		}

		return dec
	},
}

var (
	encoderPoolsMu sync.Mutex
	encoderPools   = make(map[zstd.EncoderLevel]*sync.Pool)
)

func encoderPoolFor(level zstd.EncoderLevel) *sync.Pool {
	encoderPoolsMu.Lock()
	defer encoderPoolsMu.Unlock()

	if p, ok := encoderPools[level]; ok {
		return p
	}

	p := &sync.Pool{
		New: func() any {
			enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderCRC(false))
			if err != nil {
				panic(fmt.Sprintf("compress: failed to create zstd encoder: %v", err))
			}

			return enc
		},
	}
	encoderPools[level] = p

	return p
}

// levelTier maps a conventional zstd compression level (the {1,3,9,22}
// scale the codec's public API accepts) to the nearest klauspost speed
// tier; klauspost does not expose the full 1-22 integer scale directly.
func levelTier(level int) zstd.EncoderLevel {
	switch {
	case level <= 1:
		return zstd.SpeedFastest
	case level <= 3:
		return zstd.SpeedDefault
	case level <= 9:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

// Compress zstd-compresses data at the requested level, using a pooled
// encoder for that level's speed tier.
func Compress(data []byte, level int) []byte {
	pool := encoderPoolFor(levelTier(level))
	enc, _ := pool.Get().(*zstd.Encoder)
	defer pool.Put(enc)

	return enc.EncodeAll(data, nil)
}

// ErrDecompressedTooLarge is returned by Decompress when the decompressed
// stream runs past maxSize bytes, so a caller never has to fully inflate a
// decompression bomb to discover it is one.
var ErrDecompressedTooLarge = fmt.Errorf("compress: decompressed output exceeds declared size")

// Decompress reverses Compress, using a pooled decoder, and stops reading
// the moment the decompressed stream would exceed maxSize bytes rather than
// inflating the whole thing first and checking its length after the fact.
// Callers pass the size the frame itself declares, so a small frame that
// claims a small size but decompresses to something far larger is caught
// mid-stream instead of fully allocated.
func Decompress(data []byte, maxSize int) ([]byte, error) {
	dec, _ := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(dec)

	if err := dec.Reset(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	limited := io.LimitReader(dec, int64(maxSize)+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if len(out) > maxSize {
		return nil, ErrDecompressedTooLarge
	}

	return out, nil
}
