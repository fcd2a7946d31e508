package node

import (
	"fmt"
	"io"

	"github.com/arloliu/munge/endian"
)

// HeaderSize is the fixed on-wire size of a chunk header: 4 tag bytes plus
// a little-endian uint32 payload size.
const HeaderSize = 8

// Header describes one chunk: its tag, declared payload size, and the
// absolute offset of the first payload byte in the stream it was parsed
// from. A Header is plain data with no stream reference, so it is freely
// copyable and safe to share across goroutines.
type Header struct {
	Tag           Tag
	PayloadSize   uint32
	PayloadOffset int64
}

// End returns the absolute offset of the first byte past the payload.
func (h Header) End() int64 {
	return h.PayloadOffset + int64(h.PayloadSize)
}

// ParseHeader reads one chunk header at the stream's current position and
// records the resulting position as the payload offset. Tag content is not
// validated; any 4 bytes are legal.
func ParseHeader(rs io.ReadSeeker, engine endian.EndianEngine) (Header, error) {
	var raw [HeaderSize]byte
	if _, err := io.ReadFull(rs, raw[:]); err != nil {
		return Header{}, fmt.Errorf("read chunk header: %w", err)
	}

	offset, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return Header{}, fmt.Errorf("locate chunk payload: %w", err)
	}

	var h Header
	copy(h.Tag[:], raw[0:4])
	h.PayloadSize = engine.Uint32(raw[4:8])
	h.PayloadOffset = offset

	return h, nil
}

// AppendHeader appends a chunk header for tag with the given payload size.
func AppendHeader(buf []byte, engine endian.EndianEngine, tag Tag, payloadSize uint32) []byte {
	buf = append(buf, tag[:]...)
	buf = engine.AppendUint32(buf, payloadSize)

	return buf
}
