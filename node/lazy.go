package node

import (
	"bytes"
	"fmt"

	"github.com/arloliu/munge/errs"
)

// DecodeFunc decodes a value of type T from the chunk described by h.
type DecodeFunc[T any] func(r *Reader, h Header) (T, error)

// RawPayload is the DecodeFunc for raw payload bytes.
func RawPayload(r *Reader, h Header) ([]byte, error) {
	return r.Payload(h)
}

// Lazy defers decoding of a chunk's payload until explicitly requested.
//
// A Lazy produced by decoding holds only the chunk's header: every Read
// re-parses from the stream, so two reads against equivalent bytes yield
// equal values and there is no cache to invalidate. The value is plain data
// and freely copyable across goroutines; the reader supplying the bytes is
// passed at read time, never stored.
//
// A Lazy produced by authoring (FromBytes) carries its payload bytes
// directly, which is what lets the writer serialize records that never
// touched a stream.
type Lazy[T any] struct {
	header Header
	staged []byte
}

// LazyFromHeader creates a Lazy deferring the chunk described by h.
func LazyFromHeader[T any](h Header) Lazy[T] {
	return Lazy[T]{header: h}
}

// LazyFromBytes creates an authored Lazy whose payload is data. The slice
// is copied so later caller mutations cannot leak into reads.
func LazyFromBytes[T any](data []byte) Lazy[T] {
	return Lazy[T]{staged: bytes.Clone(data)}
}

// Header returns the deferred chunk's header. For authored values the
// header is zero except for the payload size.
func (l Lazy[T]) Header() Header {
	if l.staged != nil {
		return Header{PayloadSize: uint32(len(l.staged))}
	}

	return l.header
}

// IsStaged reports whether the Lazy carries authored bytes rather than a
// stream reference.
func (l Lazy[T]) IsStaged() bool {
	return l.staged != nil
}

// Read decodes the deferred payload with decode. Decoding runs in full on
// every call; results of repeated calls over equivalent underlying bytes
// are equal.
//
// r supplies the payload bytes and may be any reader over the same
// underlying data the Lazy was decoded from. It is ignored (and may be nil)
// for authored values.
func (l Lazy[T]) Read(r *Reader, decode DecodeFunc[T]) (T, error) {
	var zero T

	if l.staged != nil {
		sub, err := NewReader(bytes.NewReader(l.staged))
		if err != nil {
			return zero, err
		}

		return decode(sub, Header{
			Tag:         l.header.Tag,
			PayloadSize: uint32(len(l.staged)),
		})
	}

	if r == nil {
		return zero, fmt.Errorf("%w: lazy read of %s needs a reader", errs.ErrNoPayloadSource, l.header.Tag)
	}

	return decode(r, l.header)
}

// payloadBytes returns the raw payload for re-encoding: staged bytes for
// authored values, a fresh stream read otherwise. src may be nil only for
// authored values.
func (l Lazy[T]) payloadBytes(src *Reader) ([]byte, error) {
	if l.staged != nil {
		return l.staged, nil
	}

	if src == nil {
		return nil, fmt.Errorf("%w: encoding %s requires the container it was decoded from",
			errs.ErrNoPayloadSource, l.header.Tag)
	}

	return src.Payload(l.header)
}
