package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 64, bb.Cap())
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("abc"))
	assert.Equal(t, []byte("abc"), bb.Bytes())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("abc"))
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, bb.Cap(), "Reset must not shrink the backing array")
}

func TestByteBuffer_Len(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("abcde"))
	assert.Equal(t, 5, bb.Len())
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.MustWrite([]byte("hello"))
	assert.Equal(t, []byte("hello"), bb.Bytes())
}

func TestByteBuffer_MustWrite_EmptyData(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite(nil)
	assert.Equal(t, 0, bb.Len())
}

func TestByteBuffer_MustWrite_Multiple(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.MustWrite([]byte("foo"))
	bb.MustWrite([]byte("bar"))
	assert.Equal(t, []byte("foobar"), bb.Bytes())
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.SetLength(5)
	assert.Equal(t, 5, bb.Len())
}

func TestByteBuffer_SetLength_OutOfRangePanics(t *testing.T) {
	bb := NewByteBuffer(4)
	assert.Panics(t, func() { bb.SetLength(5) })
	assert.Panics(t, func() { bb.SetLength(-1) })
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.ExtendOrGrow(10)
	assert.Equal(t, 10, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 10)
}

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(WriterBufferDefaultSize)
	originalCap := bb.Cap()

	bb.Grow(100)

	assert.Equal(t, originalCap, bb.Cap(), "should not reallocate when capacity is sufficient")
}

func TestByteBuffer_Grow_DoublesUntilEnoughRoom(t *testing.T) {
	bb := NewByteBuffer(WriterBufferDefaultSize)
	bb.SetLength(WriterBufferDefaultSize) // fill to capacity

	bb.Grow(1024)

	assert.GreaterOrEqual(t, bb.Cap(), WriterBufferDefaultSize+1024)
	// Doubling from WriterBufferDefaultSize must land on a power-of-two
	// multiple of it, not grow by exactly the requested amount.
	assert.Equal(t, 0, (bb.Cap()/WriterBufferDefaultSize)&(bb.Cap()/WriterBufferDefaultSize-1),
		"capacity should be a power-of-two multiple of the starting size")
}

func TestByteBuffer_Grow_FromZeroCapacity(t *testing.T) {
	bb := NewByteBuffer(0)

	bb.Grow(1)

	assert.Equal(t, WriterBufferDefaultSize, bb.Cap())
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(4)
	testData := []byte("important data that must be preserved")
	bb.MustWrite(testData)

	bb.Grow(1024) // force reallocation

	assert.Equal(t, testData, bb.Bytes())
}

func TestByteBuffer_Grow_ZeroBytes(t *testing.T) {
	bb := NewByteBuffer(WriterBufferDefaultSize)
	originalCap := bb.Cap()

	bb.Grow(0)

	assert.Equal(t, originalCap, bb.Cap())
}

func TestGetPutWriterBuffer(t *testing.T) {
	bb := GetWriterBuffer()
	assert.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("reuse me"))
	PutWriterBuffer(bb)
}

func TestPutWriterBuffer_NilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { PutWriterBuffer(nil) })
}

func TestByteBufferPool_GetPut_ResetsData(t *testing.T) {
	p := NewByteBufferPool(64, 1024)

	bb := p.Get()
	bb.MustWrite([]byte("leftover"))
	p.Put(bb)

	bb2 := p.Get()
	assert.Equal(t, 0, bb2.Len())
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := NewByteBuffer(64)
	bb.Grow(256) // exceeds maxThreshold
	p.Put(bb)

	// A discarded buffer is simply not retained; Get() still succeeds by
	// falling back to pool.New.
	got := p.Get()
	assert.NotNil(t, got)
}

func TestByteBufferPool_MaxThreshold_Zero_NeverDiscards(t *testing.T) {
	p := NewByteBufferPool(64, 0)

	bb := NewByteBuffer(64)
	bb.Grow(1 << 20)
	assert.NotPanics(t, func() { p.Put(bb) })
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	p := NewByteBufferPool(64, 4096)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bb := p.Get()
			bb.MustWrite([]byte("x"))
			p.Put(bb)
		}()
	}
	wg.Wait()
}
