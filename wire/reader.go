package wire

import (
	"math"
	"unicode/utf8"

	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/id"
)

// Reader reads encoded fields off a fixed byte slice, tracking a cursor.
// It never copies the input; slices returned by ReadBytes alias data.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for sequential reads starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current read offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n int) error {
	if r.Remaining() < n {
		return errs.UnexpectedEOF("skip")
	}

	r.pos += n

	return nil
}

// ReadByte reads a single raw byte.
func (r *Reader) ReadByte(field string) (byte, error) {
	if r.Remaining() < 1 {
		return 0, errs.UnexpectedEOF(field)
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// ReadBool reads a Bool value payload. Any byte other than 0x00/0x01 is
// rejected with errs.ErrInvalidBoolByte.
func (r *Reader) ReadBool(field string) (bool, error) {
	b, err := r.ReadByte(field)
	if err != nil {
		return false, err
	}

	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errs.InvalidBoolByte(b)
	}
}

// ReadUvarint reads an unsigned LEB128 varint, rejecting encodings longer
// than limits.MaxVarintBytes and overflowing ones.
func (r *Reader) ReadUvarint(field string) (uint64, error) {
	var result uint64
	var shift uint

	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.ReadByte(field)
		if err != nil {
			return 0, err
		}

		if i == maxVarintBytes-1 && b > 1 && b < 0x80 {
			return 0, errs.VarintOverflow(field)
		}

		result |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return result, nil
		}

		shift += 7
	}

	return 0, errs.VarintTooLong(field, maxVarintBytes)
}

// ReadVarint reads a zig-zag encoded signed varint.
func (r *Reader) ReadVarint(field string) (int64, error) {
	u, err := r.ReadUvarint(field)
	if err != nil {
		return 0, err
	}

	return zigZagDecode(u), nil
}

// ReadFloat64 reads 8 raw little-endian bytes as a float64, rejecting NaN
// bit patterns.
func (r *Reader) ReadFloat64(field string) (float64, error) {
	if r.Remaining() < 8 {
		return 0, errs.UnexpectedEOF(field)
	}

	bits := uint64LE(r.data[r.pos : r.pos+8])
	r.pos += 8

	f := math.Float64frombits(bits)
	if math.IsNaN(f) {
		return 0, errs.NaNNotAllowed(field)
	}

	return f, nil
}

// ReadID reads a fixed 16-byte id.
func (r *Reader) ReadID(field string) (id.Id, error) {
	if r.Remaining() < 16 {
		return id.Nil, errs.UnexpectedEOF(field)
	}

	var v id.Id
	copy(v[:], r.data[r.pos:r.pos+16])
	r.pos += 16

	return v, nil
}

// ReadBytes reads an unsigned varint length followed by that many raw
// bytes. The length is checked against maxLen, and against the reader's
// remaining input, before any allocation or copy is attempted, so a
// corrupt or hostile length prefix cannot force an oversized allocation.
// The returned slice aliases the reader's input.
func (r *Reader) ReadBytes(field string, maxLen int) ([]byte, error) {
	n, err := r.ReadUvarint(field)
	if err != nil {
		return nil, err
	}

	if n > uint64(maxLen) {
		length := n
		if length > math.MaxInt {
			length = math.MaxInt
		}

		return nil, errs.LengthExceedsLimit(field, int(length), maxLen)
	}

	if r.Remaining() < int(n) {
		return nil, errs.UnexpectedEOF(field)
	}

	b := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)

	return b, nil
}

// ReadRaw reads exactly n bytes with no length prefix of its own; n is
// derived from an already-read field (e.g. an Embedding's dims). The
// returned slice aliases the reader's input.
func (r *Reader) ReadRaw(field string, n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, errs.UnexpectedEOF(field)
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// ReadString reads a length-prefixed byte string and validates it as
// UTF-8.
func (r *Reader) ReadString(field string, maxLen int) (string, error) {
	b, err := r.ReadBytes(field, maxLen)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", errs.InvalidUTF8(field)
	}

	return string(b), nil
}

const maxVarintBytes = 10
