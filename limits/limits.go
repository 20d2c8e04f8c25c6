// Package limits holds the hard ceilings the decoder enforces against
// untrusted input. Every limit is checked before the allocation it guards.
package limits

import "github.com/Apex-Algorithms/grc-20/internal/options"

// Default values, per the wire contract. A host may override a subset of
// these at decode time via codec.DecodeEditWithLimits; they are compile-time
// constants here because the encoder and the package-default decode path
// must agree on them without plumbing a config value through every call.
const (
	// MaxVarintBytes bounds the length of any single LEB128 varint.
	MaxVarintBytes = 10

	// MaxStringLen bounds any length-prefixed UTF-8 string payload (Text
	// values, Date values, edit names).
	MaxStringLen = 16 * 1024 * 1024 // 16 MiB

	// MaxBytesLen bounds any length-prefixed raw byte payload (Bytes
	// values, big decimal mantissas). Embedding payloads carry no length
	// prefix; their size follows from dims, bounded by MaxEmbeddingDims.
	MaxBytesLen = 64 * 1024 * 1024 // 64 MiB

	// MaxEmbeddingDims bounds the declared dimensionality of an Embedding
	// value.
	MaxEmbeddingDims = 65536

	// MaxOpsPerEdit bounds the declared op count of a single edit.
	MaxOpsPerEdit = 1_000_000

	// MaxValuesPerEntity bounds the number of PropertyValues a single
	// CreateEntity/UpdateEntity op may carry.
	MaxValuesPerEntity = 10_000

	// MaxAuthors bounds the declared author count of a single edit.
	MaxAuthors = 1_000

	// MaxDictSize bounds the declared entry count of any one dictionary
	// table.
	MaxDictSize = 1_000_000

	// MaxEditSize bounds the total size of a decoded (post-decompression)
	// edit buffer.
	MaxEditSize = 256 * 1024 * 1024 // 256 MiB
)

// Limits is a mutable snapshot of the hard limits above, usable to tighten
// (never loosen beyond the package defaults' byte-size guarantees, though
// the type does not itself enforce that) the ceilings a single decode call
// is willing to trust. The zero value is not valid; use Default().
type Limits struct {
	MaxVarintBytes     int
	MaxStringLen       int
	MaxBytesLen        int
	MaxEmbeddingDims   int
	MaxOpsPerEdit      int
	MaxValuesPerEntity int
	MaxAuthors         int
	MaxDictSize        int
	MaxEditSize        int
}

// Default returns the package-default Limits, matching the constants above.
func Default() Limits {
	return Limits{
		MaxVarintBytes:     MaxVarintBytes,
		MaxStringLen:       MaxStringLen,
		MaxBytesLen:        MaxBytesLen,
		MaxEmbeddingDims:   MaxEmbeddingDims,
		MaxOpsPerEdit:      MaxOpsPerEdit,
		MaxValuesPerEntity: MaxValuesPerEntity,
		MaxAuthors:         MaxAuthors,
		MaxDictSize:        MaxDictSize,
		MaxEditSize:        MaxEditSize,
	}
}

// Option tightens a single field of a Limits built by New. Options are
// applied in order over Default(), so a host picks only the ceilings it
// wants to override.
type Option = options.Option[*Limits]

// New builds a Limits starting from Default() and applies opts over it, for
// a host that wants to tighten a handful of ceilings without restating every
// field of Limits.
func New(opts ...Option) Limits {
	lim := Default()
	// Option.apply never returns an error for any constructor below; New
	// panicking here would indicate a bug in this package, not bad input.
	if err := options.Apply(&lim, opts...); err != nil {
		panic(err)
	}

	return lim
}

// WithMaxEditSize overrides the decoded-edit size ceiling.
func WithMaxEditSize(n int) Option {
	return options.NoError(func(l *Limits) { l.MaxEditSize = n })
}

// WithMaxOpsPerEdit overrides the per-edit op-count ceiling.
func WithMaxOpsPerEdit(n int) Option {
	return options.NoError(func(l *Limits) { l.MaxOpsPerEdit = n })
}

// WithMaxStringLen overrides the UTF-8 string length ceiling.
func WithMaxStringLen(n int) Option {
	return options.NoError(func(l *Limits) { l.MaxStringLen = n })
}

// WithMaxDictSize overrides the per-table dictionary entry-count ceiling.
func WithMaxDictSize(n int) Option {
	return options.NoError(func(l *Limits) { l.MaxDictSize = n })
}
