// Package munge reads and writes the game's chunked asset container
// format: a recursive, tag-addressed binary tree of chunks, each carrying a
// 4-byte tag, a little-endian uint32 payload size, and the payload itself.
//
// # Core features
//
//   - Exact size accounting while walking chunk trees, with O(depth)
//     reader state (headers only, payloads on demand)
//   - Schema-driven typed record decoding with forward-compatible
//     skipping of unknown tags
//   - Lazy payload handles for bulk data (script bytecode, texture mips)
//   - Hash-addressed packs using the engine's FNV-1a variant
//   - A symmetric buffer-then-emit writer with byte-exact round trips
//
// # Basic usage
//
// Opening a container and loading a resource by pack path:
//
//	f, _ := os.Open("side.lvl")
//	defer f.Close()
//
//	v, _ := munge.OpenVault(f)
//	res, _ := v.Load("side/tat2")
//	if s, ok := res.(*format.Script); ok {
//	    bytecode, _ := s.Data(v.Reader())
//	    // feed bytecode to the script VM
//	}
//
// Decoding a record directly:
//
//	r, _ := munge.NewReader(f)
//	root, _ := r.Root()
//	var s format.Script
//	_ = node.DecodeRecord(r, root, &s)
//
// # Package structure
//
// This package provides thin wrappers over the most common entry points.
// The node package holds the codec itself, format the known record shapes,
// vault the asset-loading layer, and manifest the build specification used
// by the command-line tools.
package munge

import (
	"io"

	"github.com/arloliu/munge/node"
	"github.com/arloliu/munge/vault"
)

// OpenVault opens a container for path-addressed resource loading. The
// stream remains owned by the caller.
func OpenVault(rs io.ReadSeeker, opts ...node.ReaderOption) (*vault.Vault, error) {
	return vault.Open(rs, opts...)
}

// NewReader creates a chunk reader over rs.
func NewReader(rs io.ReadSeeker, opts ...node.ReaderOption) (*node.Reader, error) {
	return node.NewReader(rs, opts...)
}

// NewWriter creates a container writer backed by a pooled buffer; call
// Close to return the buffer when done.
func NewWriter(opts ...node.WriterOption) (*node.Writer, error) {
	return node.NewWriter(opts...)
}

// HashName computes the engine's FNV-1a variant hash used to address packs
// by name.
func HashName(name string) uint32 {
	return node.HashName(name)
}
