package dto

import (
	"reflect"
	"strings"
	"sync/atomic"

	"dtomap/internal/diagnostic"
	"dtomap/internal/naming"
)

// Field is one declared field of a DTO schema.
type Field struct {
	key      string
	goName   string
	index    []int
	typ      reflect.Type
	elem     reflect.Type
	elemName string
	// named caches elemName once it resolves.
	named    atomic.Pointer[typeRef]
	get      func(ptr reflect.Value) any
	set      func(ptr reflect.Value, value any) error
}

type typeRef struct{ t reflect.Type }

// Key is the plain-data key.
func (f *Field) Key() string { return f.key }

// GoName is the struct field name.
func (f *Field) GoName() string { return f.goName }

// Type is the declared Go type.
func (f *Field) Type() reflect.Type { return f.typ }

// HasAccessor reports whether encoding goes through a bound accessor.
func (f *Field) HasAccessor() bool { return f.get != nil }

// HasMutator reports whether decoding goes through a bound mutator.
func (f *Field) HasMutator() bool { return f.set != nil }

// Schema is the compiled mapping schema of a DTO struct type.
type Schema struct {
	typ      reflect.Type
	fields   []*Field
	byKey    map[string]*Field
	newFn    func() reflect.Value
	warnings []diagnostic.Diagnostic
}

// Type is the DTO struct type.
func (s *Schema) Type() reflect.Type { return s.typ }

// Name is the unqualified type name.
func (s *Schema) Name() string { return s.typ.Name() }

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)

	return out
}

// Field returns the field declared under key.
func (s *Schema) Field(key string) (*Field, bool) {
	f, ok := s.byKey[key]
	return f, ok
}

// Warnings lists non-fatal problems found at registration, such as
// convention-named methods with an unusable signature.
func (s *Schema) Warnings() []string {
	out := make([]string, 0, len(s.warnings))
	for _, w := range s.warnings {
		out = append(out, w.String())
	}

	return out
}

// construct returns a pointer to a fresh default instance.
func (s *Schema) construct() (reflect.Value, error) {
	ptr := s.newFn()
	if !ptr.IsValid() || ptr.IsNil() {
		return reflect.Value{}, &ConstructionError{Type: s.typ, Reason: "constructor returned nil"}
	}

	return ptr, nil
}

// ParseTag returns the plain-data key of a struct field, the elem= option
// and whether the field is excluded. The `dto` tag wins over `json`; without
// either the Go name is the key.
func ParseTag(tag reflect.StructTag, goName string) (key, elem string, skip bool) {
	value, ok := tag.Lookup("dto")
	if !ok {
		value = tag.Get("json")
	}

	name, opts, hasOpts := strings.Cut(value, ",")
	if name == "-" && !hasOpts {
		return "", "", true
	}

	for _, opt := range strings.Split(opts, ",") {
		if v, ok := strings.CutPrefix(opt, "elem="); ok {
			elem = strings.TrimSpace(v)
		}
	}

	if name == "" {
		name = goName
	}

	return name, elem, false
}

// builder collects options while a schema compiles.
type builder struct {
	typ      reflect.Type
	explicit bool
	getters  map[string]func(reflect.Value) any
	setters  map[string]func(reflect.Value, any) error
	elems    map[string]reflect.Type
	newFn    func() reflect.Value
	diags    diagnostic.Diagnostics
}

func compile(t reflect.Type, opts []Option) (*Schema, error) {
	b := &builder{
		typ:     t,
		getters: make(map[string]func(reflect.Value) any),
		setters: make(map[string]func(reflect.Value, any) error),
		elems:   make(map[string]reflect.Type),
	}

	if t == nil || t.Kind() != reflect.Struct {
		b.diags.Errorf(diagnostic.CodeNotStruct, typeString(t), "", "DTO types must be structs")

		return nil, &SchemaError{Type: t, diags: b.diags}
	}

	for _, opt := range opts {
		opt(b)
	}

	s := &Schema{
		typ:   t,
		byKey: make(map[string]*Field),
		newFn: b.newFn,
	}

	if s.newFn == nil {
		s.newFn = func() reflect.Value { return reflect.New(t) }
	}

	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || throughPointer(t, sf.Index) {
			continue
		}

		if sf.Anonymous && indirect(sf.Type).Kind() == reflect.Struct {
			continue
		}

		key, elemName, skip := ParseTag(sf.Tag, sf.Name)
		if skip {
			continue
		}

		if _, dup := s.byKey[key]; dup {
			b.diags.Errorf(diagnostic.CodeDuplicateKey, t.String(), key, "key declared by more than one field")

			continue
		}

		f := &Field{
			key:      key,
			goName:   sf.Name,
			index:    sf.Index,
			typ:      sf.Type,
			elemName: elemName,
		}

		b.bindElem(f)
		b.bindAccessor(f)
		b.bindMutator(f)

		s.fields = append(s.fields, f)
		s.byKey[key] = f
	}

	b.checkKeys(s)

	if b.diags.HasErrors() {
		return nil, &SchemaError{Type: t, diags: b.diags}
	}

	s.warnings = b.diags.Warnings

	return s, nil
}

// throughPointer reports whether a promoted field is reached through an
// embedded pointer, which may be nil.
func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		sf := t.Field(i)
		if sf.Type.Kind() == reflect.Pointer {
			return true
		}

		t = sf.Type
	}

	return false
}

func (b *builder) bindElem(f *Field) {
	elem, ok := b.elems[f.key]
	if !ok {
		return
	}

	switch f.typ.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		b.diags.Errorf(diagnostic.CodeElemNotSequence, b.typ.String(), f.key,
			"element annotation on non-sequence field of type %s", f.typ)

		return
	}

	declared := f.typ.Elem()
	if declared.Kind() != reflect.Interface && indirect(declared) != indirect(elem) {
		b.diags.Errorf(diagnostic.CodeElemMismatch, b.typ.String(), f.key,
			"element annotation %s does not match declared element type %s", elem, declared)

		return
	}

	f.elem = elem
	f.elemName = ""
}

func (b *builder) bindAccessor(f *Field) {
	if fn, ok := b.getters[f.key]; ok {
		f.get = fn

		return
	}

	if b.explicit {
		return
	}

	name := naming.Accessor(f.key)

	m, ok := reflect.PointerTo(b.typ).MethodByName(name)
	if !ok {
		return
	}

	if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
		b.diags.Warnf(diagnostic.CodeAccessorSignature, b.typ.String(), f.key,
			"method %s has signature %s, want func() V; ignored", name, m.Type)

		return
	}

	fn := m.Func
	f.get = func(ptr reflect.Value) any {
		return fn.Call([]reflect.Value{ptr})[0].Interface()
	}
}

func (b *builder) bindMutator(f *Field) {
	if fn, ok := b.setters[f.key]; ok {
		f.set = fn

		return
	}

	if b.explicit {
		return
	}

	name := naming.Mutator(f.key)

	m, ok := reflect.PointerTo(b.typ).MethodByName(name)
	if !ok {
		return
	}

	if m.Type.NumIn() != 2 || m.Type.NumOut() != 0 || m.Type.IsVariadic() {
		b.diags.Warnf(diagnostic.CodeMutatorSignature, b.typ.String(), f.key,
			"method %s has signature %s, want func(V); ignored", name, m.Type)

		return
	}

	fn, param := m.Func, m.Type.In(1)
	f.set = func(ptr reflect.Value, value any) error {
		arg := reflect.New(param).Elem()
		if err := assign(arg, value); err != nil {
			return err
		}

		fn.Call([]reflect.Value{ptr, arg})

		return nil
	}
}

// checkKeys reports options naming keys the type does not declare.
func (b *builder) checkKeys(s *Schema) {
	check := func(what, key string) {
		if _, ok := s.byKey[key]; !ok {
			b.diags.Errorf(diagnostic.CodeUnknownKey, b.typ.String(), key, "%s given for undeclared key", what)
		}
	}

	for key := range b.getters {
		check("getter", key)
	}

	for key := range b.setters {
		check("setter", key)
	}

	for key := range b.elems {
		check("element annotation", key)
	}
}
