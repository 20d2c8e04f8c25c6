// Package pool provides a pooled, growable byte buffer used by the wire
// writer to amortize allocations across repeated encode calls.
//
// Adapted from mebo's internal/pool.ByteBuffer. The growth policy differs
// from the upstream time-series buffer (which grows by a fixed chunk, then
// by 25% once large): the edit codec's Primitives spec calls for doubling
// growth, so Grow here doubles capacity instead.
package pool

import "sync"

// WriterBufferDefaultSize is the initial capacity handed out by the pool.
// Most edits encode to a few hundred bytes to a few KiB.
const (
	WriterBufferDefaultSize  = 512
	WriterBufferMaxThreshold = 1024 * 1024 // 1MiB; larger buffers are discarded, not pooled
)

// ByteBuffer is a growable byte slice with a doubling growth policy.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given initial capacity.
func NewByteBuffer(initialCap int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, initialCap)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of bytes currently written.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the buffer's current capacity.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it first if needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// SetLength sets the buffer's length to n. Panics if n is out of [0, cap].
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("pool: SetLength out of range")
	}
	bb.B = bb.B[:n]
}

// ExtendOrGrow extends the buffer's length by n bytes, growing the backing
// array first if there isn't enough spare capacity.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	bb.Grow(n)
	bb.B = bb.B[:len(bb.B)+n]
}

// Grow ensures the buffer can accept at least n more bytes without
// reallocating, doubling the current capacity (or starting from
// WriterBufferDefaultSize) until there's enough room.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	newCap := cap(bb.B)
	if newCap == 0 {
		newCap = WriterBufferDefaultSize
	}
	for newCap-len(bb.B) < n {
		newCap *= 2
	}

	newBuf := make([]byte, len(bb.B), newCap)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool pools ByteBuffers of a given default size via sync.Pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize and are
// discarded (not retained) once they grow past maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool, unless it has grown past the pool's
// maxThreshold, in which case it is discarded to avoid memory bloat.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var writerPool = NewByteBufferPool(WriterBufferDefaultSize, WriterBufferMaxThreshold)

// GetWriterBuffer retrieves a ByteBuffer from the default writer pool.
func GetWriterBuffer() *ByteBuffer {
	return writerPool.Get()
}

// PutWriterBuffer returns a ByteBuffer to the default writer pool.
//
// wire.Writer.Finish copies its buffer's bytes out before calling this, so
// a returned buffer is always free of any memory a caller still holds; a
// future Get() is safe to reuse its backing array immediately.
func PutWriterBuffer(bb *ByteBuffer) {
	writerPool.Put(bb)
}
