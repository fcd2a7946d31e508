package format

import (
	"github.com/arloliu/munge/node"
)

// Pack is a hash-addressed data pack: a chunk whose own tag bytes,
// reinterpreted as a little-endian uint32, are the hash of the pack's name,
// and whose payload is exactly one nested chunk carrying the contents.
type Pack struct {
	NameHash uint32
	Contents node.Header
}

// DecodePack validates h as a pack chunk and captures its identity and
// contents. The contents header is returned undecoded; dispatch on its tag
// to pick a record type.
func DecodePack(r *node.Reader, h node.Header) (Pack, error) {
	hash, contents, err := node.ResolvePack(r, h)
	if err != nil {
		return Pack{}, err
	}

	return Pack{NameHash: hash, Contents: contents}, nil
}
