// Package hash provides the two hash functions used by the munge codec:
// the game engine's FNV-1a variant that addresses pack chunks by name on
// the wire, and xxHash64 for in-memory resource indexing.
package hash

import "github.com/cespare/xxhash/v2"

const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// Name computes the engine's 32-bit FNV-1a variant of the given name.
//
// The variant ORs every input byte with 0x20 before mixing. For ASCII
// letters this folds case, but it is not true lower-casing: non-letter
// bytes such as '_' (0x5F -> 0x7F) are perturbed as well. Existing game
// data was hashed this way, so the transform must be preserved bit for
// bit rather than corrected.
func Name(name string) uint32 {
	h := fnvOffsetBasis
	for i := 0; i < len(name); i++ {
		h ^= uint32(name[i] | 0x20)
		h *= fnvPrime
	}

	return h
}

// NameBytes is Name for a byte slice input.
func NameBytes(name []byte) uint32 {
	h := fnvOffsetBasis
	for _, b := range name {
		h ^= uint32(b | 0x20)
		h *= fnvPrime
	}

	return h
}

// ID computes the xxHash64 of the given string. Used for fast in-memory
// lookup keys; never written to the wire.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
