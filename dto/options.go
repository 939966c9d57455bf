package dto

import (
	"reflect"

	"dtomap/internal/diagnostic"
)

// Option configures a schema at registration.
type Option func(*builder)

// Explicit disables convention-based method lookup. Only Getter and Setter
// options bind accessors and mutators. Generated registrations use it.
func Explicit() Option {
	return func(b *builder) {
		b.explicit = true
	}
}

// Getter binds fn as the accessor of key. Its result is emitted unconverted.
func Getter[T, V any](key string, fn func(*T) V) Option {
	return func(b *builder) {
		if !b.owns(reflect.TypeFor[T](), "Getter", key) {
			return
		}

		b.getters[key] = func(ptr reflect.Value) any {
			return fn(ptr.Interface().(*T))
		}
	}
}

// Setter binds fn as the mutator of key. Plain values are converted to V
// best-effort before the call; values that cannot be converted are skipped.
func Setter[T, V any](key string, fn func(*T, V)) Option {
	return func(b *builder) {
		if !b.owns(reflect.TypeFor[T](), "Setter", key) {
			return
		}

		b.setters[key] = func(ptr reflect.Value, value any) error {
			var v V
			if err := assign(reflect.ValueOf(&v).Elem(), value); err != nil {
				return err
			}

			fn(ptr.Interface().(*T), v)

			return nil
		}
	}
}

// ElemOf declares E as the DTO element type of the sequence field key. It
// is needed for []any fields; typed slices carry their element type already.
func ElemOf[E any](key string) Option {
	return func(b *builder) {
		b.elems[key] = reflect.TypeFor[E]()
	}
}

// Constructor replaces new(T) as the default constructor.
func Constructor[T any](fn func() *T) Option {
	return func(b *builder) {
		if !b.owns(reflect.TypeFor[T](), "Constructor", "") {
			return
		}

		b.newFn = func() reflect.Value {
			p := fn()
			if p == nil {
				return reflect.Value{}
			}

			return reflect.ValueOf(p)
		}
	}
}

func (b *builder) owns(t reflect.Type, what, key string) bool {
	if t == b.typ {
		return true
	}

	b.diags.Errorf(diagnostic.CodeOptionType, b.typ.String(), key,
		"%s option written for %s", what, t)

	return false
}
