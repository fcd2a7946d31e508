package node

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/munge/errs"
	"github.com/arloliu/munge/packed"
)

// Record is implemented by any type that can describe its chunk layout as
// an ordered field table. Fields is called once per decode or encode; the
// helpers in this file build entries whose closures bind directly to the
// record's field pointers, so the same table drives both directions.
type Record interface {
	Fields() []Field
}

// Field is one schema binding: either an exact-tag single field (Prefix
// empty, the child must occur exactly once) or a tag-prefix repeated field
// (collects every matching child in stream order; zero matches is legal).
//
// The struct is plain data so schemas stay inspectable: tests can assert a
// record's bindings without touching any bytes.
type Field struct {
	// Name identifies the field in error messages.
	Name string
	// Tag is the exact child tag for single fields, or the representative
	// tag for repeated fields (informational only; matching uses Prefix).
	Tag Tag
	// Prefix, when non-empty, marks the field repeated: every child whose
	// tag starts with Prefix belongs to it.
	Prefix string
	// Reset clears accumulated state (repeated fields) before matching.
	Reset func()
	// Decode consumes one matching child chunk.
	Decode func(r *Reader, h Header) error
	// Encode emits the field's child chunk(s).
	Encode func(w *Writer) error
}

// Repeated reports whether the field collects every prefix match rather
// than requiring exactly one child.
func (f Field) Repeated() bool {
	return f.Prefix != ""
}

func (f Field) matches(t Tag) bool {
	if f.Repeated() {
		return t.HasPrefix(f.Prefix)
	}

	return t == f.Tag
}

// DecodeRecord maps parent's children onto rec's schema.
//
// Single-tag fields take the first exact match among direct children and
// fail with errs.ErrMissingChild when absent. Repeated fields collect all
// prefix matches in encountered order. Children matching no field are
// skipped, or fail with errs.ErrUnknownChild under a strict Reader.
// Decoding is all-or-nothing: the first field failure aborts the whole
// record and propagates.
func DecodeRecord(r *Reader, parent Header, rec Record) error {
	children, err := r.Children(parent)
	if err != nil {
		return err
	}

	fields := rec.Fields()
	claimed := make([]bool, len(children))

	for _, f := range fields {
		if f.Reset != nil {
			f.Reset()
		}

		if f.Repeated() {
			for i, child := range children {
				if !f.matches(child.Tag) {
					continue
				}
				claimed[i] = true
				if err := f.Decode(r, child); err != nil {
					return fmt.Errorf("field %q of %s: %w", f.Name, parent.Tag, err)
				}
			}

			continue
		}

		found := false
		for i, child := range children {
			if !f.matches(child.Tag) {
				continue
			}
			claimed[i] = true
			found = true
			if err := f.Decode(r, child); err != nil {
				return fmt.Errorf("field %q of %s: %w", f.Name, parent.Tag, err)
			}

			break
		}
		if !found {
			return fmt.Errorf("%w: field %q (%s) of %s", errs.ErrMissingChild, f.Name, f.Tag, parent.Tag)
		}
	}

	if r.strict {
		for i, child := range children {
			if !claimed[i] {
				return fmt.Errorf("%w: %s in %s", errs.ErrUnknownChild, child.Tag, parent.Tag)
			}
		}
	}

	return nil
}

// Element is one occurrence of a repeated field. The concrete tag is kept
// alongside the value so re-encoding reproduces the original child tags
// (repeated matching is by prefix; the suffix bytes vary per occurrence).
type Element[T any] struct {
	Tag   Tag
	Value T
}

// CString binds a null-terminated string leaf to dst.
func CString(name string, tag Tag, dst *string) Field {
	return Field{
		Name: name,
		Tag:  tag,
		Decode: func(r *Reader, h Header) error {
			payload, err := r.Payload(h)
			if err != nil {
				return err
			}
			s, err := packed.NewDecoder(payload, r.engine).CString()
			if err != nil {
				return err
			}
			if !utf8.ValidString(s) {
				return fmt.Errorf("%w: %s holds non-UTF-8 text", errs.ErrBadName, tag)
			}
			*dst = s

			return nil
		},
		Encode: func(w *Writer) error {
			payload, err := packed.AppendCString(nil, *dst)
			if err != nil {
				return err
			}

			return w.Raw(tag, payload)
		},
	}
}

// Uint8 binds an unsigned byte leaf to dst.
func Uint8(name string, tag Tag, dst *uint8) Field {
	return Field{
		Name: name,
		Tag:  tag,
		Decode: func(r *Reader, h Header) error {
			payload, err := r.Payload(h)
			if err != nil {
				return err
			}
			v, err := packed.NewDecoder(payload, r.engine).Uint8()
			if err != nil {
				return err
			}
			*dst = v

			return nil
		},
		Encode: func(w *Writer) error {
			return w.Raw(tag, []byte{*dst})
		},
	}
}

// Uint16 binds a little-endian uint16 leaf to dst.
func Uint16(name string, tag Tag, dst *uint16) Field {
	return Field{
		Name: name,
		Tag:  tag,
		Decode: func(r *Reader, h Header) error {
			payload, err := r.Payload(h)
			if err != nil {
				return err
			}
			v, err := packed.NewDecoder(payload, r.engine).Uint16()
			if err != nil {
				return err
			}
			*dst = v

			return nil
		},
		Encode: func(w *Writer) error {
			return w.Raw(tag, packed.AppendUint16(nil, w.engine, *dst))
		},
	}
}

// Uint32 binds a little-endian uint32 leaf to dst.
func Uint32(name string, tag Tag, dst *uint32) Field {
	return Field{
		Name: name,
		Tag:  tag,
		Decode: func(r *Reader, h Header) error {
			payload, err := r.Payload(h)
			if err != nil {
				return err
			}
			v, err := packed.NewDecoder(payload, r.engine).Uint32()
			if err != nil {
				return err
			}
			*dst = v

			return nil
		},
		Encode: func(w *Writer) error {
			return w.Raw(tag, packed.AppendUint32(nil, w.engine, *dst))
		},
	}
}

// Int32 binds a little-endian int32 leaf to dst.
func Int32(name string, tag Tag, dst *int32) Field {
	return Field{
		Name: name,
		Tag:  tag,
		Decode: func(r *Reader, h Header) error {
			payload, err := r.Payload(h)
			if err != nil {
				return err
			}
			v, err := packed.NewDecoder(payload, r.engine).Int32()
			if err != nil {
				return err
			}
			*dst = v

			return nil
		},
		Encode: func(w *Writer) error {
			return w.Raw(tag, packed.AppendInt32(nil, w.engine, *dst))
		},
	}
}

// Float32 binds a little-endian 32-bit float leaf to dst.
func Float32(name string, tag Tag, dst *float32) Field {
	return Field{
		Name: name,
		Tag:  tag,
		Decode: func(r *Reader, h Header) error {
			payload, err := r.Payload(h)
			if err != nil {
				return err
			}
			v, err := packed.NewDecoder(payload, r.engine).Float32()
			if err != nil {
				return err
			}
			*dst = v

			return nil
		},
		Encode: func(w *Writer) error {
			return w.Raw(tag, packed.AppendFloat32(nil, w.engine, *dst))
		},
	}
}

// Enum binds a one-byte enum leaf to dst. The decoded discriminant must
// satisfy valid; anything else fails with errs.ErrInvalidDiscriminant.
// Out-of-range values are never clamped.
func Enum[E ~uint8](name string, tag Tag, dst *E, valid func(E) bool) Field {
	return Field{
		Name: name,
		Tag:  tag,
		Decode: func(r *Reader, h Header) error {
			payload, err := r.Payload(h)
			if err != nil {
				return err
			}
			raw, err := packed.NewDecoder(payload, r.engine).Uint8()
			if err != nil {
				return err
			}
			v := E(raw)
			if !valid(v) {
				return fmt.Errorf("%w: %d has no variant", errs.ErrInvalidDiscriminant, raw)
			}
			*dst = v

			return nil
		},
		Encode: func(w *Writer) error {
			return w.Raw(tag, []byte{uint8(*dst)})
		},
	}
}

// Struct binds a nested record to the single child carrying tag. Decoding
// recurses into the mapper with rec's own schema.
func Struct(name string, tag Tag, rec Record) Field {
	return Field{
		Name: name,
		Tag:  tag,
		Decode: func(r *Reader, h Header) error {
			return DecodeRecord(r, h, rec)
		},
		Encode: func(w *Writer) error {
			return EncodeRecord(w, tag, rec)
		},
	}
}

// Repeated binds every child whose tag starts with prefix to dst, one
// decoded record per occurrence, in stream order. Zero occurrences leaves
// dst empty without error.
func Repeated[T any, PT interface {
	*T
	Record
}](name string, prefix string, dst *[]Element[T]) Field {
	return Field{
		Name:   name,
		Prefix: prefix,
		Reset: func() {
			*dst = nil
		},
		Decode: func(r *Reader, h Header) error {
			var v T
			if err := DecodeRecord(r, h, PT(&v)); err != nil {
				return err
			}
			*dst = append(*dst, Element[T]{Tag: h.Tag, Value: v})

			return nil
		},
		Encode: func(w *Writer) error {
			for i := range *dst {
				elem := &(*dst)[i]
				if err := EncodeRecord(w, elem.Tag, PT(&elem.Value)); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// LazyRaw binds a deferred raw-bytes leaf to dst. Decoding stores only the
// child's header; the payload is read when dst.Read is called.
func LazyRaw(name string, tag Tag, dst *Lazy[[]byte]) Field {
	return Field{
		Name: name,
		Tag:  tag,
		Decode: func(_ *Reader, h Header) error {
			*dst = LazyFromHeader[[]byte](h)

			return nil
		},
		Encode: func(w *Writer) error {
			payload, err := dst.payloadBytes(w.src)
			if err != nil {
				return err
			}

			return w.Raw(tag, payload)
		},
	}
}

// Custom binds a child with caller-supplied decode and encode functions,
// for leaves with packed multi-field layouts that none of the scalar
// helpers cover.
func Custom(name string, tag Tag, decode func(r *Reader, h Header) error, encode func(w *Writer) error) Field {
	return Field{
		Name:   name,
		Tag:    tag,
		Decode: decode,
		Encode: encode,
	}
}
