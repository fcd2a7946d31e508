package node

import (
	"fmt"

	"github.com/arloliu/munge/errs"
	"github.com/arloliu/munge/internal/hash"
)

// HashName computes the engine's FNV-1a variant hash of a pack name. The
// hash, encoded little-endian, is the pack chunk's tag on the wire.
func HashName(name string) uint32 {
	return hash.Name(name)
}

// PackTag returns the wire tag of a pack with the given name.
func PackTag(name string) Tag {
	return TagFromUint32(hash.Name(name))
}

// ResolvePack validates h as a hash-addressed pack chunk and returns its
// name hash together with its contents.
//
// A pack chunk's tag bytes, reinterpreted as a little-endian uint32, are
// the hash of its name, and its payload must hold exactly one child chunk
// carrying the pack's actual contents. Zero or multiple children fail with
// errs.ErrInvalidPackContents.
func ResolvePack(r *Reader, h Header) (uint32, Header, error) {
	children, err := r.Children(h)
	if err != nil {
		return 0, Header{}, err
	}

	if len(children) != 1 {
		return 0, Header{}, fmt.Errorf("%w: pack 0x%08X holds %d chunks, want exactly 1",
			errs.ErrInvalidPackContents, h.Tag.Uint32(), len(children))
	}

	return h.Tag.Uint32(), children[0], nil
}
