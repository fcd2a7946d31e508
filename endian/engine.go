// Package endian provides byte order utilities for the munge wire format.
//
// The chunk format is little-endian throughout; this package exposes the
// engine as an explicit value so every codec states its byte order instead
// of reaching for binary.LittleEndian ad hoc.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface. binary.LittleEndian and
// binary.BigEndian both satisfy it, so the engine is always a stateless,
// immutable value that is safe to share across goroutines.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. This is the byte
// order of the munge wire format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// CheckEndianness determines the host's native byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	// For little-endian hosts the low byte (0x00) sits at the lowest
	// address; for big-endian hosts the high byte (0x01) does.
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}
