// Package options implements generic functional options shared by the
// reader, writer and vault configuration surfaces.
package options

// Option configures a target of type T. Implementations are created with
// New or NoError; packages expose type aliases such as
// `type ReaderOption = options.Option[*Reader]`.
type Option[T any] interface {
	apply(T) error
}

// Func wraps a configuration function as an Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an Option from a function that may fail validation.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an Option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
