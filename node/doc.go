// Package node implements the chunked container codec: the recursive,
// tag-addressed binary tree format the game stores its assets in.
//
// Every chunk on the wire is 4 tag bytes, a little-endian uint32 payload
// size, then exactly that many payload bytes. A payload is either raw typed
// bytes (a leaf) or a back-to-back sequence of complete child chunks whose
// header and payload lengths sum exactly to the declared size (a container).
// The format does not mark which of the two a chunk is; the schema of the
// record being decoded decides.
//
// # Reading
//
// A Reader borrows an externally owned io.ReadSeeker for the duration of
// each call and never stores payload bytes: walking a tree materializes
// child headers only, so active state is proportional to tree depth, not
// tree size. Leaf payloads are read on demand by the field mapper or by an
// explicit Lazy read.
//
//	r, _ := node.NewReader(file)
//	root, _ := r.Root()
//	var s format.Script
//	err := node.DecodeRecord(r, root, &s)
//
// # Schemas
//
// A record type describes its fields as an ordered table of bindings, each
// either an exact-tag single field or a tag-prefix repeated field. The table
// is plain data built by the field helpers (CString, Uint8, Repeated, ...)
// so a schema can be inspected and tested without decoding anything.
// Decoding is all-or-nothing: the first field failure aborts the record and
// every enclosing record. Children matching no binding are skipped unless
// the Reader was opened with WithStrict.
//
// # Writing
//
// The Writer composes nested chunks in a single pooled buffer and patches
// each chunk's size once its children are written, so the finished container
// is emitted with one Write and no seeking. EncodeRecord mirrors the field
// mapper, emitting fields in schema order for exact round-trip fidelity.
//
// All errors are fatal to the call that raises them; the codec has no
// partial results and no retry logic.
package node
