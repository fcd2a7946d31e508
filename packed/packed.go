// Package packed implements the primitive value codec used inside chunk
// payloads: fixed-width little-endian scalars and null-terminated byte
// strings.
//
// A Decoder walks a leaf payload that has already been read into memory;
// the Append functions build payloads for the writer. Both sides share the
// endian engine so the byte order is stated once.
package packed

import (
	"fmt"
	"math"

	"github.com/arloliu/munge/endian"
	"github.com/arloliu/munge/errs"
)

// MaxCStringLen is the maximum length of a null-terminated string,
// exclusive of the terminator. Decoding fails with errs.ErrStringTooLong
// once this many bytes have been consumed without finding a terminator.
const MaxCStringLen = 8192

// Decoder reads packed values sequentially from a byte slice.
//
// The Decoder does not own the slice and never copies it; CString results
// are copied out so they remain valid after the payload buffer is reused.
type Decoder struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

// NewDecoder creates a Decoder over data using the given endian engine.
func NewDecoder(data []byte, engine endian.EndianEngine) *Decoder {
	return &Decoder{data: data, engine: engine}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.off
}

func (d *Decoder) need(n int) error {
	if d.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrShortPayload, n, d.Remaining())
	}

	return nil
}

// Uint8 decodes one unsigned byte.
func (d *Decoder) Uint8() (uint8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := d.data[d.off]
	d.off++

	return v, nil
}

// Int8 decodes one signed byte.
func (d *Decoder) Int8() (int8, error) {
	v, err := d.Uint8()
	return int8(v), err
}

// Uint16 decodes a little-endian unsigned 16-bit integer.
func (d *Decoder) Uint16() (uint16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := d.engine.Uint16(d.data[d.off : d.off+2])
	d.off += 2

	return v, nil
}

// Int16 decodes a little-endian signed 16-bit integer.
func (d *Decoder) Int16() (int16, error) {
	v, err := d.Uint16()
	return int16(v), err
}

// Uint32 decodes a little-endian unsigned 32-bit integer.
func (d *Decoder) Uint32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := d.engine.Uint32(d.data[d.off : d.off+4])
	d.off += 4

	return v, nil
}

// Int32 decodes a little-endian signed 32-bit integer.
func (d *Decoder) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v), err
}

// Float32 decodes a little-endian IEEE 754 32-bit float.
func (d *Decoder) Float32() (float32, error) {
	bits, err := d.Uint32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(bits), nil
}

// CString decodes a null-terminated byte string, consuming the terminator.
//
// Returns errs.ErrStringTooLong if MaxCStringLen bytes are consumed without
// encountering a terminator, and errs.ErrShortPayload if the payload ends
// first.
func (d *Decoder) CString() (string, error) {
	rest := d.data[d.off:]
	limit := len(rest)
	if limit > MaxCStringLen {
		limit = MaxCStringLen
	}

	for i := 0; i < limit; i++ {
		if rest[i] == 0 {
			s := string(rest[:i])
			d.off += i + 1

			return s, nil
		}
	}

	if len(rest) >= MaxCStringLen {
		return "", fmt.Errorf("%w: no terminator within %d bytes", errs.ErrStringTooLong, MaxCStringLen)
	}

	return "", fmt.Errorf("%w: unterminated string at end of payload", errs.ErrShortPayload)
}

// AppendUint8 appends v to buf.
func AppendUint8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

// AppendInt8 appends v to buf.
func AppendInt8(buf []byte, v int8) []byte {
	return append(buf, byte(v))
}

// AppendUint16 appends v to buf in little-endian order.
func AppendUint16(buf []byte, engine endian.EndianEngine, v uint16) []byte {
	return engine.AppendUint16(buf, v)
}

// AppendInt16 appends v to buf in little-endian order.
func AppendInt16(buf []byte, engine endian.EndianEngine, v int16) []byte {
	return engine.AppendUint16(buf, uint16(v))
}

// AppendUint32 appends v to buf in little-endian order.
func AppendUint32(buf []byte, engine endian.EndianEngine, v uint32) []byte {
	return engine.AppendUint32(buf, v)
}

// AppendInt32 appends v to buf in little-endian order.
func AppendInt32(buf []byte, engine endian.EndianEngine, v int32) []byte {
	return engine.AppendUint32(buf, uint32(v))
}

// AppendFloat32 appends v to buf as little-endian IEEE 754 bits.
func AppendFloat32(buf []byte, engine endian.EndianEngine, v float32) []byte {
	return engine.AppendUint32(buf, math.Float32bits(v))
}

// AppendCString appends s and a null terminator to buf. Strings of
// MaxCStringLen bytes or more cannot be decoded back (the scan budget would
// be exhausted before the terminator) and return errs.ErrStringTooLong.
func AppendCString(buf []byte, s string) ([]byte, error) {
	if len(s) >= MaxCStringLen {
		return buf, fmt.Errorf("%w: %d bytes exceeds maximum %d", errs.ErrStringTooLong, len(s), MaxCStringLen)
	}

	buf = append(buf, s...)
	buf = append(buf, 0)

	return buf, nil
}
