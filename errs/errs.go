// Package errs defines the sentinel errors shared across the munge codec.
//
// All errors are fatal to the decode or encode call that raises them: the
// codec never recovers locally or returns partial records. Callers match
// with errors.Is; call sites add context with fmt.Errorf("%w: ...").
package errs

import "errors"

// Wire-format errors raised by the node package.
var (
	// ErrShortPayload indicates a header or leaf payload ended before the
	// declared number of bytes could be read.
	ErrShortPayload = errors.New("short payload")

	// ErrSizeMismatch indicates a child chunk's declared size overruns its
	// parent's payload boundary, or the children do not sum to the parent's
	// declared payload size exactly.
	ErrSizeMismatch = errors.New("chunk size mismatch")

	// ErrStringTooLong indicates a null-terminated string exceeded the
	// maximum length without encountering a terminator.
	ErrStringTooLong = errors.New("string too long")
)

// Schema mapping errors.
var (
	// ErrMissingChild indicates a required single-tag schema field has no
	// matching child chunk.
	ErrMissingChild = errors.New("missing required child")

	// ErrUnknownChild indicates a child chunk matched no schema field while
	// decoding in strict mode. Outside strict mode unknown children are
	// skipped.
	ErrUnknownChild = errors.New("unknown child tag")

	// ErrInvalidDiscriminant indicates an enum field's integer value has no
	// matching variant.
	ErrInvalidDiscriminant = errors.New("invalid enum discriminant")

	// ErrNoPayloadSource indicates a lazy payload decoded from a stream was
	// re-encoded without a source reader to supply its bytes.
	ErrNoPayloadSource = errors.New("no payload source for lazy field")
)

// Pack and naming errors.
var (
	// ErrInvalidPackContents indicates a hash-addressed pack node does not
	// contain exactly one child chunk.
	ErrInvalidPackContents = errors.New("invalid pack contents")

	// ErrBadName indicates a name chunk holds bytes that are not valid
	// UTF-8 text.
	ErrBadName = errors.New("bad name")
)

// Tool-level errors raised by the vault and manifest packages.
var (
	// ErrNotFound indicates a pack path did not resolve to a chunk.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicatePack indicates two containers being merged both carry a
	// pack with the same hashed name.
	ErrDuplicatePack = errors.New("duplicate pack name hash")

	// ErrInvalidManifest indicates a build manifest is structurally invalid.
	ErrInvalidManifest = errors.New("invalid manifest")
)
