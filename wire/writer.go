// Package wire implements the byte-level primitives of the GRC-20 wire
// grammar: unsigned LEB128 varints, zig-zag signed varints, length-prefixed
// slices, fixed little-endian float64, and fixed 16-byte ids. The Value
// payload codec (value_codec.go in this package) and the Op codec (package
// codec) are built entirely out of these primitives.
package wire

import (
	"math"

	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/id"
	"github.com/Apex-Algorithms/grc-20/internal/pool"
)

// Writer appends encoded fields to a growable buffer. The zero value is not
// valid; use NewWriter. Writer is not safe for concurrent use.
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter creates a Writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetWriterBuffer()}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the bytes written so far. The returned slice aliases the
// writer's internal buffer and is invalidated by further writes; callers
// that need a stable snapshot before Finish should copy it.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Finish returns the final encoded bytes, copied out of the writer's pooled
// scratch buffer into caller-owned memory, and returns that scratch buffer
// to the pool so the next NewWriter call can reuse it. The Writer must not
// be used after calling Finish.
func (w *Writer) Finish() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())

	pool.PutWriterBuffer(w.buf)
	w.buf = nil

	return out
}

// WriteByte appends a single raw byte.
func (w *Writer) WriteByte(b byte) {
	w.buf.MustWrite([]byte{b})
}

// WriteBool appends a Bool value payload: 0x00 or 0x01.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
}

// WriteUvarint appends v as an unsigned LEB128 varint, the shortest form
// for v's magnitude.
func (w *Writer) WriteUvarint(v uint64) {
	var tmp [10]byte
	n := 0
	for v >= 0x80 {
		tmp[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	tmp[n] = byte(v)
	n++

	w.buf.MustWrite(tmp[:n])
}

// WriteVarint zig-zag encodes v, then appends it as an unsigned varint.
// Round-trips every int64 value, with small magnitudes of either sign
// fitting in one byte.
func (w *Writer) WriteVarint(v int64) {
	w.WriteUvarint(zigZagEncode(v))
}

// WriteFloat64 appends v as 8 raw little-endian bytes. Returns
// errs.ErrNaNNotAllowed if v is NaN; field names the value in the error.
func (w *Writer) WriteFloat64(field string, v float64) error {
	if math.IsNaN(v) {
		return errs.NaNNotAllowed(field)
	}

	bits := math.Float64bits(v)
	var tmp [8]byte
	putUint64LE(tmp[:], bits)
	w.buf.MustWrite(tmp[:])

	return nil
}

// WriteID appends id verbatim, 16 raw bytes.
func (w *Writer) WriteID(v id.Id) {
	w.buf.MustWrite(v[:])
}

// WriteRaw appends data with no length prefix. Used where the length is
// implied by an already-written field (e.g. an Embedding's dims), not
// self-describing on the wire.
func (w *Writer) WriteRaw(data []byte) {
	w.buf.MustWrite(data)
}

// WriteBytes appends an unsigned varint length followed by data.
func (w *Writer) WriteBytes(data []byte) {
	w.WriteUvarint(uint64(len(data)))
	w.buf.MustWrite(data)
}

// WriteString appends s as a length-prefixed UTF-8 byte string. Callers are
// responsible for s already being valid UTF-8 (Go string invariant holds
// for any string built from valid UTF-8 sources; WriteString does not
// re-validate).
func (w *Writer) WriteString(s string) {
	w.WriteUvarint(uint64(len(s)))
	w.buf.MustWrite([]byte(s))
}

// zigZagEncode maps a signed int64 to an unsigned uint64 so that small
// magnitudes of either sign encode to small unsigned values:
// encode(n) = (n << 1) ^ (n >> 63).
func zigZagEncode(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63) //nolint:gosec
}

// zigZagDecode reverses zigZagEncode.
func zigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}

func putUint64LE(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

func uint64LE(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
