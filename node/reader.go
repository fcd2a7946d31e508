package node

import (
	"fmt"
	"io"

	"github.com/arloliu/munge/endian"
	"github.com/arloliu/munge/errs"
	"github.com/arloliu/munge/internal/options"
)

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*Reader]

// WithStrict makes unknown child tags a decode error instead of skipping
// them. Shipped game data routinely carries tags newer than the schemas
// reading it, so skipping is the default; authoring tools opt in to strict
// mode to catch typos in what they themselves produced.
func WithStrict() ReaderOption {
	return options.NoError(func(r *Reader) {
		r.strict = true
	})
}

// Reader decodes chunk trees from an externally owned seekable stream.
//
// The Reader borrows the stream for the duration of each call and never
// stores payload bytes. It is not safe for concurrent use; open one Reader
// per goroutine over independent stream handles instead.
type Reader struct {
	rs     io.ReadSeeker
	engine endian.EndianEngine
	strict bool
}

// NewReader creates a Reader over rs. The stream remains owned by the
// caller; the Reader never closes it.
func NewReader(rs io.ReadSeeker, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		rs:     rs,
		engine: endian.GetLittleEndianEngine(),
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Engine returns the reader's endian engine.
func (r *Reader) Engine() endian.EndianEngine {
	return r.engine
}

// Strict reports whether unknown child tags are treated as errors.
func (r *Reader) Strict() bool {
	return r.strict
}

// Root parses the top-level chunk header at the start of the stream.
func (r *Reader) Root() (Header, error) {
	if _, err := r.rs.Seek(0, io.SeekStart); err != nil {
		return Header{}, fmt.Errorf("seek to stream start: %w", err)
	}

	return ParseHeader(r.rs, r.engine)
}

// Children enumerates parent's payload as a sequence of child chunk
// headers, in stream order. Only headers are materialized; each child's
// payload is seeked past, not read.
//
// Size accounting is exact: a child whose declared size would overrun the
// parent's payload boundary, or payload bytes left over that cannot hold a
// complete header, fail with errs.ErrSizeMismatch.
func (r *Reader) Children(parent Header) ([]Header, error) {
	if parent.PayloadSize == 0 {
		return nil, nil
	}

	if _, err := r.rs.Seek(parent.PayloadOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to payload of %s: %w", parent.Tag, err)
	}

	var children []Header
	total := int64(parent.PayloadSize)
	consumed := int64(0)

	for consumed < total {
		if total-consumed < HeaderSize {
			return nil, fmt.Errorf("%w: %d trailing bytes in %s cannot hold a chunk header",
				errs.ErrSizeMismatch, total-consumed, parent.Tag)
		}

		child, err := ParseHeader(r.rs, r.engine)
		if err != nil {
			return nil, err
		}
		consumed += HeaderSize

		if int64(child.PayloadSize) > total-consumed {
			return nil, fmt.Errorf("%w: child %s declares %d payload bytes but only %d remain in %s",
				errs.ErrSizeMismatch, child.Tag, child.PayloadSize, total-consumed, parent.Tag)
		}
		consumed += int64(child.PayloadSize)

		if _, err := r.rs.Seek(child.End(), io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek past child %s: %w", child.Tag, err)
		}

		children = append(children, child)
	}

	// The loop exits only when consumed lands exactly on total.
	return children, nil
}

// Payload reads h's payload bytes. The returned slice is freshly allocated
// and owned by the caller.
func (r *Reader) Payload(h Header) ([]byte, error) {
	if _, err := r.rs.Seek(h.PayloadOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to payload of %s: %w", h.Tag, err)
	}

	data := make([]byte, h.PayloadSize)
	if _, err := io.ReadFull(r.rs, data); err != nil {
		return nil, fmt.Errorf("read payload of %s: %w", h.Tag, err)
	}

	return data, nil
}
