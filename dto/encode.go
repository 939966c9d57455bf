package dto

import (
	"reflect"

	"go.uber.org/zap"
)

// Encode converts a DTO (a struct value or a pointer to one) to an Object
// with keys in field declaration order. A nil pointer encodes to nil.
func (m *Mapper) Encode(v any) (Object, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			if _, err := m.schema(rv.Type()); err != nil {
				return nil, err
			}

			return nil, nil
		}

		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return nil, unregistered(nil)
	}

	return m.encode(rv, walk{})
}

// ToData is Encode with the result, and every object nested in it, as Data.
func (m *Mapper) ToData(v any) (Data, error) {
	obj, err := m.Encode(v)
	if err != nil || obj == nil {
		return nil, err
	}

	return obj.Data(), nil
}

// State is the plain form of v used by persistence layers. It is the same
// as ToData.
func (m *Mapper) State(v any) (Data, error) {
	return m.ToData(v)
}

func (m *Mapper) encode(v reflect.Value, w walk) (Object, error) {
	s, err := m.schema(v.Type())
	if err != nil {
		return nil, err
	}

	if err := m.checkDepth(s.typ, w); err != nil {
		return nil, err
	}

	// accessors take a pointer receiver
	var ptr reflect.Value
	if v.CanAddr() {
		ptr = v.Addr()
	} else {
		ptr = reflect.New(s.typ)
		ptr.Elem().Set(v)
	}

	out := make(Object, 0, len(s.fields))

	for _, f := range s.fields {
		if f.get != nil {
			out = append(out, Member{Key: f.key, Value: f.get(ptr)})

			continue
		}

		val, err := m.encodeField(s, f, ptr.Elem().FieldByIndex(f.index), w)
		if err != nil {
			return nil, err
		}

		out = append(out, Member{Key: f.key, Value: val})
	}

	return out, nil
}

func (m *Mapper) encodeField(s *Schema, f *Field, fv reflect.Value, w walk) (any, error) {
	if dv, ok := m.dtoValue(fv); ok {
		if !dv.IsValid() {
			return nil, nil
		}

		return m.encode(dv, w.enter(f.key))
	}

	sv := fv
	if sv.Kind() == reflect.Interface && !sv.IsNil() {
		sv = sv.Elem()
	}

	switch sv.Kind() {
	case reflect.Slice, reflect.Array:
		kind, _ := m.registry.kindOf(f)
		if kind == KindSequence || sv.Type().Elem().Kind() == reflect.Interface {
			return m.encodeSequence(s, f, sv, w.enter(f.key))
		}
	}

	return fv.Interface(), nil
}

func (m *Mapper) encodeSequence(s *Schema, f *Field, sv reflect.Value, w walk) ([]any, error) {
	out := make([]any, 0, sv.Len())

	for i := range sv.Len() {
		item := sv.Index(i)

		if dv, ok := m.dtoValue(item); ok && dv.IsValid() {
			obj, err := m.encode(dv, w.item(i))
			if err != nil {
				return nil, err
			}

			out = append(out, obj)

			continue
		}

		if m.dropForeign {
			m.log.Debug("dropping non-DTO sequence item",
				zap.Stringer("type", s.typ), zap.String("key", f.key), zap.Int("index", i))

			continue
		}

		out = append(out, item.Interface())
	}

	return out, nil
}

// dtoValue unwraps interfaces and pointers around a registered DTO. A nil
// pointer to a DTO reports ok with an invalid value.
func (m *Mapper) dtoValue(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			if v.Kind() == reflect.Pointer && m.registry.IsDTO(indirect(v.Type())) {
				return reflect.Value{}, true
			}

			return reflect.Value{}, false
		}

		v = v.Elem()
	}

	if !m.registry.IsDTO(v.Type()) {
		return reflect.Value{}, false
	}

	return v, true
}
