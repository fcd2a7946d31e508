package node

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/munge/endian"
	"github.com/arloliu/munge/internal/options"
	"github.com/arloliu/munge/internal/pool"
)

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithPayloadSource supplies the reader that lazy fields were decoded from,
// so re-encoding a decoded record can pull their payload bytes. Records
// authored in memory do not need a source.
func WithPayloadSource(src *Reader) WriterOption {
	return options.NoError(func(w *Writer) {
		w.src = src
	})
}

// Writer assembles chunk containers by composition: nested Node calls build
// the whole tree in one pooled buffer, and each chunk's size field is
// patched in place once its children are written. The finished container is
// emitted with a single Write, so any io.Writer works as a sink; no seeking
// is ever required.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	src    *Reader
}

// NewWriter creates a Writer backed by a pooled buffer. Call Close when
// done to return the buffer to the pool.
func NewWriter(opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		buf:    pool.GetNodeBuffer(),
		engine: endian.GetLittleEndianEngine(),
	}

	if err := options.Apply(w, opts...); err != nil {
		pool.PutNodeBuffer(w.buf)
		return nil, err
	}

	return w, nil
}

// Engine returns the writer's endian engine.
func (w *Writer) Engine() endian.EndianEngine {
	return w.engine
}

// Node writes a container chunk: a header for tag, then whatever build
// emits as the chunk's children. The payload size is backfilled as the
// exact byte count build produced.
func (w *Writer) Node(tag Tag, build func(w *Writer) error) error {
	start := w.buf.Len()
	w.buf.MustWrite(tag[:])
	w.buf.ExtendOrGrow(4) // size placeholder, patched below

	if err := build(w); err != nil {
		return err
	}

	payloadSize := w.buf.Len() - start - HeaderSize
	if int64(payloadSize) > math.MaxUint32 {
		return fmt.Errorf("chunk %s payload of %d bytes exceeds uint32 size field", tag, payloadSize)
	}
	w.engine.PutUint32(w.buf.B[start+4:start+HeaderSize], uint32(payloadSize))

	return nil
}

// Raw writes a leaf chunk with the given payload bytes.
func (w *Writer) Raw(tag Tag, payload []byte) error {
	if int64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("chunk %s payload of %d bytes exceeds uint32 size field", tag, len(payload))
	}

	w.buf.Grow(HeaderSize + len(payload))
	w.buf.B = AppendHeader(w.buf.B, w.engine, tag, uint32(len(payload)))
	w.buf.MustWrite(payload)

	return nil
}

// Bytes returns the container built so far. The slice aliases the writer's
// buffer and is invalidated by Reset or Close.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteTo emits the finished container to out in a single write.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	return w.buf.WriteTo(out)
}

// Reset discards written content, keeping the buffer for reuse.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Close returns the writer's buffer to the pool. The Writer must not be
// used afterwards.
func (w *Writer) Close() {
	pool.PutNodeBuffer(w.buf)
	w.buf = nil
}

// EncodeRecord serializes rec as a container chunk carrying tag, emitting
// each schema field in declared order as a nested chunk. This mirrors
// DecodeRecord exactly, which is what makes decode/encode round trips
// byte-identical when the schema fully captures the input.
func EncodeRecord(w *Writer, tag Tag, rec Record) error {
	return w.Node(tag, func(w *Writer) error {
		for _, f := range rec.Fields() {
			if f.Encode == nil {
				continue
			}
			if err := f.Encode(w); err != nil {
				return fmt.Errorf("field %q of %s: %w", f.Name, tag, err)
			}
		}

		return nil
	})
}
