// Package codec implements the top-level GRC-20 edit frame: magic bytes,
// version byte, edit header, dictionary tables, op count, and op bodies,
// plus the transparent zstd compression frame and its auto-detection. This
// is where the op and value codecs (op.go, property_value.go in this
// package) are assembled into the single EncodeEdit/DecodeEdit contract.
package codec

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Apex-Algorithms/grc-20/compress"
	"github.com/Apex-Algorithms/grc-20/dict"
	"github.com/Apex-Algorithms/grc-20/edit"
	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/internal/hash"
	"github.com/Apex-Algorithms/grc-20/limits"
	"github.com/Apex-Algorithms/grc-20/op"
	"github.com/Apex-Algorithms/grc-20/value"
	"github.com/Apex-Algorithms/grc-20/wire"
)

const (
	magicPlain      = "GRC2"
	magicCompressed = "GRC2Z"
	wireVersion     = 0x01

	// DefaultCompressionLevel is the conventional zstd level for callers to
	// pass to EncodeEditCompressed, which always uses the level it is given.
	DefaultCompressionLevel = 3
)

// EncodeEdit serializes e in insertion order: dictionaries are built by a
// single scan over e's ops and emitted in first-seen order.
func EncodeEdit(e edit.Edit) ([]byte, error) {
	return encodeEdit(e, false)
}

// EncodeEditCanonical serializes e with every dictionary sorted into
// lexicographic id order, guaranteeing byte-identical output for equal
// inputs regardless of original insertion order.
func EncodeEditCanonical(e edit.Edit) ([]byte, error) {
	return encodeEdit(e, true)
}

func encodeEdit(e edit.Edit, canonical bool) ([]byte, error) {
	if len(e.Authors) > limits.MaxAuthors {
		return nil, errs.LengthExceedsLimit("edit.authors", len(e.Authors), limits.MaxAuthors)
	}
	if len(e.Ops) > limits.MaxOpsPerEdit {
		return nil, errs.LengthExceedsLimit("edit.ops", len(e.Ops), limits.MaxOpsPerEdit)
	}

	builder, err := buildDictionaries(e)
	if err != nil {
		return nil, err
	}

	tables := builder.Build()
	if canonical {
		tables = tables.Canonical()
	}

	propertyTypes := make(map[id.Id]value.DataType, len(tables.Properties))
	for _, p := range tables.Properties {
		propertyTypes[p.ID] = p.DataType
	}
	ix := tables.Index()

	w := wire.NewWriter()
	w.WriteRaw([]byte(magicPlain))
	w.WriteByte(wireVersion)
	w.WriteID(e.ID)
	w.WriteString(e.Name)

	authors := e.Authors
	if canonical {
		authors = make([]id.Id, len(e.Authors))
		copy(authors, e.Authors)
		sort.Slice(authors, func(i, j int) bool { return id.Less(authors[i], authors[j]) })
	}

	w.WriteUvarint(uint64(len(authors)))
	for _, a := range authors {
		w.WriteID(a)
	}

	w.WriteVarint(e.CreatedAt)

	tables.Encode(w)

	w.WriteUvarint(uint64(len(e.Ops)))
	for _, o := range e.Ops {
		if err := encodeOp(w, o, ix, propertyTypes, canonical); err != nil {
			return nil, err
		}
	}

	return w.Finish(), nil
}

// EncodeEditCompressed serializes e in insertion order, as EncodeEdit does
// (not canonically), then wraps it in the GRC2Z zstd frame at the given level.
func EncodeEditCompressed(e edit.Edit, level int) ([]byte, error) {
	inner, err := encodeEdit(e, false)
	if err != nil {
		return nil, err
	}

	compressed := compress.Compress(inner, level)

	w := wire.NewWriter()
	w.WriteRaw([]byte(magicCompressed))
	w.WriteUvarint(uint64(len(inner)))
	w.WriteRaw(compressed)

	return w.Finish(), nil
}

// IsCompressed reports whether data begins with the GRC2Z frame magic.
func IsCompressed(data []byte) bool {
	return len(data) >= len(magicCompressed) && string(data[:len(magicCompressed)]) == magicCompressed
}

// DecodeEdit decodes data, auto-detecting the GRC2Z compression frame, and
// enforcing the package-default Limits.
func DecodeEdit(data []byte) (edit.Edit, error) {
	return DecodeEditWithLimits(data, limits.Default())
}

// DecodeEditWithLimits decodes data against a caller-supplied Limits,
// letting a host tighten (never loosen below what the wire format itself
// guarantees) the ceilings a single decode call is willing to trust.
func DecodeEditWithLimits(data []byte, lim limits.Limits) (edit.Edit, error) {
	if IsCompressed(data) {
		inner, err := decompressFrame(data, lim)
		if err != nil {
			return edit.Edit{}, err
		}

		return decodePlainFrame(inner, lim)
	}

	return decodePlainFrame(data, lim)
}

func decompressFrame(data []byte, lim limits.Limits) ([]byte, error) {
	r := wire.NewReader(data)

	if err := r.Skip(len(magicCompressed)); err != nil {
		return nil, err
	}

	declaredSize, err := r.ReadUvarint("frame.uncompressed_size")
	if err != nil {
		return nil, err
	}
	if declaredSize > uint64(lim.MaxEditSize) {
		return nil, errs.LengthExceedsLimit("frame.uncompressed_size", int(declaredSize), lim.MaxEditSize)
	}

	payload, err := r.ReadRaw("frame.zstd_payload", r.Remaining())
	if err != nil {
		return nil, err
	}

	out, err := compress.Decompress(payload, int(declaredSize))
	if err != nil {
		if errors.Is(err, compress.ErrDecompressedTooLarge) {
			return nil, errs.UncompressedSizeMismatch(int(declaredSize), int(declaredSize)+1)
		}

		return nil, errs.DecompressionFailed(err)
	}

	if uint64(len(out)) != declaredSize {
		return nil, errs.UncompressedSizeMismatch(int(declaredSize), len(out))
	}

	return out, nil
}

func decodePlainFrame(data []byte, lim limits.Limits) (edit.Edit, error) {
	if len(data) > lim.MaxEditSize {
		return edit.Edit{}, errs.LengthExceedsLimit("frame", len(data), lim.MaxEditSize)
	}

	r := wire.NewReader(data)

	magic, err := r.ReadRaw("frame.magic", len(magicPlain))
	if err != nil {
		return edit.Edit{}, err
	}
	if string(magic) != magicPlain {
		return edit.Edit{}, fmt.Errorf("%w: frame.magic", errs.ErrInvalidMagic)
	}

	version, err := r.ReadByte("frame.version")
	if err != nil {
		return edit.Edit{}, err
	}
	if version != wireVersion {
		return edit.Edit{}, fmt.Errorf("%w: frame.version 0x%02x", errs.ErrUnsupportedVersion, version)
	}

	editID, err := r.ReadID("frame.edit_id")
	if err != nil {
		return edit.Edit{}, err
	}

	name, err := r.ReadString("frame.name", lim.MaxStringLen)
	if err != nil {
		return edit.Edit{}, err
	}

	authorCount, err := r.ReadUvarint("frame.authors.count")
	if err != nil {
		return edit.Edit{}, err
	}
	if authorCount > uint64(lim.MaxAuthors) {
		return edit.Edit{}, errs.LengthExceedsLimit("frame.authors.count", int(authorCount), lim.MaxAuthors)
	}

	authors := make([]id.Id, 0, authorCount)
	for i := uint64(0); i < authorCount; i++ {
		a, err := r.ReadID("frame.authors.id")
		if err != nil {
			return edit.Edit{}, err
		}

		authors = append(authors, a)
	}

	createdAt, err := r.ReadVarint("frame.created_at")
	if err != nil {
		return edit.Edit{}, err
	}

	tables, err := dict.Decode(r, lim.MaxDictSize)
	if err != nil {
		return edit.Edit{}, err
	}

	opCount, err := r.ReadUvarint("frame.op_count")
	if err != nil {
		return edit.Edit{}, err
	}
	if opCount > uint64(lim.MaxOpsPerEdit) {
		return edit.Edit{}, errs.LengthExceedsLimit("frame.op_count", int(opCount), lim.MaxOpsPerEdit)
	}

	ops := make([]op.Op, 0, opCount)
	for i := uint64(0); i < opCount; i++ {
		o, err := decodeOp(r, tables, lim)
		if err != nil {
			return edit.Edit{}, err
		}

		ops = append(ops, o)
	}

	return edit.New(editID, name, authors, createdAt, ops), nil
}

// Fingerprint returns a non-wire xxHash64 digest of e's canonical
// encoding. It is a diagnostic convenience for logging/dedup at layers
// above the codec, not part of the wire contract: two Edits with the same
// Fingerprint are very likely (not guaranteed) semantically identical.
func Fingerprint(e edit.Edit) (uint64, error) {
	encoded, err := EncodeEditCanonical(e)
	if err != nil {
		return 0, err
	}

	return hash.Bytes(encoded), nil
}
