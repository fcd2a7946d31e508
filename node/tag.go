package node

import (
	"bytes"
	"fmt"

	"github.com/arloliu/munge/endian"
)

// Tag is a chunk's 4-byte identifier. The bytes may be literal ASCII text
// ("NAME") or, for hash-addressed chunks, a raw little-endian uint32 hash.
// Any 4 bytes are legal on the wire.
type Tag [4]byte

// MakeTag builds a Tag from a 4-character string literal. It panics on any
// other length; use ParseTag for untrusted input.
func MakeTag(s string) Tag {
	t, err := ParseTag(s)
	if err != nil {
		panic(err)
	}

	return t
}

// ParseTag builds a Tag from a string, which must be exactly 4 bytes.
func ParseTag(s string) (Tag, error) {
	if len(s) != 4 {
		return Tag{}, fmt.Errorf("tag must be exactly 4 bytes, got %d", len(s))
	}

	var t Tag
	copy(t[:], s)

	return t, nil
}

// TagFromUint32 builds a Tag whose bytes are the little-endian encoding of
// v. This is how hash-addressed pack chunks carry their name hash.
func TagFromUint32(v uint32) Tag {
	var t Tag
	endian.GetLittleEndianEngine().PutUint32(t[:], v)

	return t
}

// Uint32 reinterprets the tag bytes as a little-endian uint32. For
// hash-addressed chunks this is the chunk's name hash.
func (t Tag) Uint32() uint32 {
	return endian.GetLittleEndianEngine().Uint32(t[:])
}

// HasPrefix reports whether the tag bytes start with prefix.
func (t Tag) HasPrefix(prefix string) bool {
	return len(prefix) <= len(t) && bytes.HasPrefix(t[:], []byte(prefix))
}

// String renders printable tags as text and anything else as the hex of the
// little-endian uint32 reinterpretation.
func (t Tag) String() string {
	for _, b := range t {
		if b < 0x20 || b > 0x7E {
			return fmt.Sprintf("0x%08X", t.Uint32())
		}
	}

	return string(t[:])
}

// Identity is a chunk identity: either a literal 4-byte tag or a hashed
// name. Schemas and lookups match through Identity so the two addressing
// modes are never conflated into one tag value.
type Identity struct {
	tag    Tag
	hashed bool
}

// LiteralID returns the identity of a literally-tagged chunk.
func LiteralID(tag Tag) Identity {
	return Identity{tag: tag}
}

// HashedID returns the identity of a chunk addressed by a name hash.
func HashedID(hash uint32) Identity {
	return Identity{tag: TagFromUint32(hash), hashed: true}
}

// IsHashed reports whether the identity is a hashed name rather than a
// literal tag.
func (id Identity) IsHashed() bool {
	return id.hashed
}

// Tag returns the wire representation of the identity. For hashed
// identities this is the little-endian encoding of the hash.
func (id Identity) Tag() Tag {
	return id.tag
}

// Hash returns the hashed name. The second result is false for literal
// identities.
func (id Identity) Hash() (uint32, bool) {
	if !id.hashed {
		return 0, false
	}

	return id.tag.Uint32(), true
}

// Matches reports whether a chunk carrying tag t has this identity.
func (id Identity) Matches(t Tag) bool {
	return id.tag == t
}

func (id Identity) String() string {
	if id.hashed {
		return fmt.Sprintf("hash:0x%08X", id.tag.Uint32())
	}

	return id.tag.String()
}
