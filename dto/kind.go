package dto

import "reflect"

//go:generate go tool stringer -type=FieldKind -trimprefix=Kind -output=kind_string.go

// FieldKind is how a field takes part in mapping.
type FieldKind int

const (
	// KindPrimitive fields are assigned and emitted as raw values.
	KindPrimitive FieldKind = iota
	// KindNested fields hold a single DTO (T or *T).
	KindNested
	// KindSequence fields hold an ordered sequence of DTOs.
	KindSequence
)

// KindOf reports how f, a field of a schema registered in r, takes part in
// mapping. Fields annotated with a type name that is not registered yet are
// primitive until it is.
func (r *Registry) KindOf(f *Field) FieldKind {
	kind, _ := r.kindOf(f)

	return kind
}

// kindOf classifies f against the registry. For nested and sequence fields
// it also returns the DTO struct type involved.
func (r *Registry) kindOf(f *Field) (FieldKind, reflect.Type) {
	if t := indirect(f.typ); r.IsDTO(t) {
		return KindNested, t
	}

	switch f.typ.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return KindPrimitive, nil
	}

	switch {
	case f.elem != nil:
		if t := indirect(f.elem); r.IsDTO(t) {
			return KindSequence, t
		}
	case f.elemName != "":
		if t := r.elemType(f); t != nil {
			return KindSequence, t
		}
	default:
		if t := indirect(f.typ.Elem()); r.IsDTO(t) {
			return KindSequence, t
		}
	}

	return KindPrimitive, nil
}

// elemType resolves the elem= name of f. The first successful lookup is
// kept on the field, so later registrations do not change it.
func (r *Registry) elemType(f *Field) reflect.Type {
	if ref := f.named.Load(); ref != nil {
		return ref.t
	}

	t := r.resolveName(f.elemName)
	if t != nil {
		f.named.Store(&typeRef{t: t})
	}

	return t
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
