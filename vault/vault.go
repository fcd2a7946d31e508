// Package vault implements the asset-loading layer over a munge container:
// it parses the root chunk, dispatches direct children by tag, and resolves
// resources through nested hash-addressed packs by slash-separated path.
package vault

import (
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/munge/errs"
	"github.com/arloliu/munge/format"
	"github.com/arloliu/munge/internal/hash"
	"github.com/arloliu/munge/node"
)

// Entry is one direct child of the container's root chunk, classified as a
// literally-tagged record or a hash-addressed pack.
type Entry struct {
	Identity node.Identity
	Header   node.Header
}

// Vault is an opened munge container.
//
// A Vault borrows its stream for the lifetime of the value and is not safe
// for concurrent use; open one Vault per goroutine over independent stream
// handles. Errors surfaced by Load and Resolve are fatal for that resource
// only; it is the caller's policy whether to skip it and continue.
type Vault struct {
	r       *node.Reader
	root    node.Header
	entries []Entry

	// resolved paths are memoized under their xxhash64 key; headers are
	// plain data, so caching them never pins payload bytes.
	pathCache map[uint64]node.Header
}

// literal record tags the loader dispatches on. Anything else among a
// container's children is treated as a hash-addressed pack.
var knownTags = map[node.Tag]struct{}{
	format.TagScript:  {},
	format.TagTexture: {},
}

// Open parses the container's root chunk and classifies its direct
// children. The stream remains owned by the caller.
func Open(rs io.ReadSeeker, opts ...node.ReaderOption) (*Vault, error) {
	r, err := node.NewReader(rs, opts...)
	if err != nil {
		return nil, err
	}

	root, err := r.Root()
	if err != nil {
		return nil, err
	}

	children, err := r.Children(root)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		id := node.LiteralID(child.Tag)
		if _, known := knownTags[child.Tag]; !known {
			id = node.HashedID(child.Tag.Uint32())
		}
		entries = append(entries, Entry{Identity: id, Header: child})
	}

	return &Vault{
		r:         r,
		root:      root,
		entries:   entries,
		pathCache: make(map[uint64]node.Header),
	}, nil
}

// Root returns the container's top-level chunk header.
func (v *Vault) Root() node.Header {
	return v.root
}

// Entries returns the root's direct children in stream order.
func (v *Vault) Entries() []Entry {
	return v.entries
}

// Reader returns the vault's underlying chunk reader, for lazy payload
// reads against records decoded from this container.
func (v *Vault) Reader() *node.Reader {
	return v.r
}

// Resolve walks a slash-separated path of nested pack names down to the
// chunk it addresses. Each segment is hashed with the engine's FNV-1a
// variant and matched against pack tags among the current chunk's children;
// the matched pack's single inner chunk becomes the next level.
//
// Returns errs.ErrNotFound when any segment has no matching pack.
func (v *Vault) Resolve(path string) (node.Header, error) {
	key := hash.ID(path)
	if h, ok := v.pathCache[key]; ok {
		return h, nil
	}

	current := v.root
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			return node.Header{}, fmt.Errorf("%w: empty segment in path %q", errs.ErrNotFound, path)
		}

		children, err := v.r.Children(current)
		if err != nil {
			return node.Header{}, err
		}

		want := node.HashedID(hash.Name(segment))
		found := false
		for _, child := range children {
			if !want.Matches(child.Tag) {
				continue
			}
			_, inner, err := node.ResolvePack(v.r, child)
			if err != nil {
				return node.Header{}, err
			}
			current = inner
			found = true

			break
		}
		if !found {
			return node.Header{}, fmt.Errorf("%w: no pack %q under %s", errs.ErrNotFound, segment, current.Tag)
		}
	}

	v.pathCache[key] = current

	return current, nil
}

// ReadRaw resolves path and returns the addressed chunk's payload bytes.
func (v *Vault) ReadRaw(path string) ([]byte, error) {
	h, err := v.Resolve(path)
	if err != nil {
		return nil, err
	}

	return v.r.Payload(h)
}

// Export resolves path and writes the addressed chunk (header and payload)
// to out, producing a standalone munge file for that resource.
func (v *Vault) Export(out io.Writer, path string) error {
	h, err := v.Resolve(path)
	if err != nil {
		return err
	}

	payload, err := v.r.Payload(h)
	if err != nil {
		return err
	}

	header := node.AppendHeader(nil, v.r.Engine(), h.Tag, h.PayloadSize)
	if _, err := out.Write(header); err != nil {
		return fmt.Errorf("export %q: %w", path, err)
	}
	if _, err := out.Write(payload); err != nil {
		return fmt.Errorf("export %q: %w", path, err)
	}

	return nil
}

// Decode dispatches h by tag to a typed record: *format.Script for script
// chunks, *format.Texture for texture chunks, format.Pack for
// hash-addressed packs.
func (v *Vault) Decode(h node.Header) (any, error) {
	switch h.Tag {
	case format.TagScript:
		return format.DecodeScript(v.r, h)
	case format.TagTexture:
		return format.DecodeTexture(v.r, h)
	default:
		return format.DecodePack(v.r, h)
	}
}

// Load resolves path and decodes the addressed chunk as in Decode.
func (v *Vault) Load(path string) (any, error) {
	h, err := v.Resolve(path)
	if err != nil {
		return nil, err
	}

	return v.Decode(h)
}
