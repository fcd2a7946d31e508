// Package pool provides pooled byte buffers for the writer's nested node
// buffers and for leaf payload reads.
package pool

import (
	"io"
	"sync"
)

const (
	// NodeBufferDefaultSize is the default capacity of a ByteBuffer obtained
	// from the pool. Most asset chunks fit comfortably.
	NodeBufferDefaultSize = 1024 * 16 // 16KiB
	// NodeBufferMaxThreshold is the largest buffer the pool will retain.
	// Oversized buffers (whole texture containers) are dropped instead of
	// pinning memory between calls.
	NodeBufferMaxThreshold = 1024 * 512 // 512KiB
)

// ByteBuffer is a growable byte slice with explicit control over length and
// capacity. The underlying slice is exported so codecs can patch bytes in
// place (the writer backfills chunk sizes this way).
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer, retaining the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the current length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// ExtendOrGrow lengthens the buffer by n bytes, growing capacity as needed.
// The new bytes are not zeroed beyond what append guarantees; callers are
// expected to overwrite them.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by NodeBufferDefaultSize; larger ones by
// 25% of capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := NodeBufferDefaultSize
	if cap(bb.B) > 4*NodeBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It implements io.Writer and never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the buffer's contents to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers with a retention threshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize and
// are discarded on Put once their capacity exceeds maxThreshold.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var nodeDefaultPool = NewByteBufferPool(NodeBufferDefaultSize, NodeBufferMaxThreshold)

// GetNodeBuffer retrieves a ByteBuffer from the default node pool.
func GetNodeBuffer() *ByteBuffer {
	return nodeDefaultPool.Get()
}

// PutNodeBuffer returns a ByteBuffer to the default node pool.
func PutNodeBuffer(bb *ByteBuffer) {
	nodeDefaultPool.Put(bb)
}
