package dto

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Registry holds the compiled schemas of DTO types. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[reflect.Type]*Schema
	// names resolves elem= annotations. A nil entry marks an ambiguous short name.
	names map[string]reflect.Type
}

// Default is the registry used by the package-level helpers and by
// generated registrations.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[reflect.Type]*Schema),
		names:   make(map[string]reflect.Type),
	}
}

// Register compiles the schema of struct type T and adds it to r,
// replacing any earlier registration of T.
func Register[T any](r *Registry, opts ...Option) error {
	return r.register(reflect.TypeFor[T](), opts)
}

// MustRegister is like Register but panics on error. It is meant for init
// functions.
func MustRegister[T any](r *Registry, opts ...Option) {
	if err := Register[T](r, opts...); err != nil {
		panic(err)
	}
}

// SchemaOf returns the schema of T.
func SchemaOf[T any](r *Registry) (*Schema, bool) {
	return r.Lookup(reflect.TypeFor[T]())
}

func (r *Registry) register(t reflect.Type, opts []Option) error {
	s, err := compile(t, opts)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas[t] = s
	r.indexName(t)

	return nil
}

func (r *Registry) indexName(t reflect.Type) {
	r.names[t.String()] = t

	if t.PkgPath() != "" {
		r.names[t.PkgPath()+"."+t.Name()] = t
	}

	short := t.Name()
	if prev, seen := r.names[short]; seen && prev != t {
		r.names[short] = nil

		return
	}

	r.names[short] = t
}

// Lookup returns the schema of t, or of the type t points to.
func (r *Registry) Lookup(t reflect.Type) (*Schema, bool) {
	t = indirect(t)
	if t == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[t]

	return s, ok
}

// IsDTO reports whether t is a registered DTO struct type.
func (r *Registry) IsDTO(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.schemas[t]

	return ok
}

// Types returns the registered types ordered by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reflect.Type, 0, len(r.schemas))
	for t := range r.schemas {
		out = append(out, t)
	}

	slices.SortFunc(out, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})

	return out
}

// resolveName maps an elem= annotation to a registered type. Short names
// registered for two different types resolve to nil.
func (r *Registry) resolveName(name string) reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.names[strings.TrimPrefix(name, "*")]
}
