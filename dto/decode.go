package dto

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Decode builds a new *T from plain data. data may be a Source (Data,
// Object), a map with string keys, or anything else, which yields a default
// instance.
func Decode[T any](m *Mapper, data any) (*T, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, unregistered(t)
	}

	v, err := m.DecodeType(t, data)
	if err != nil {
		return nil, err
	}

	return v.(*T), nil
}

// DecodeList decodes every item of items as a T, preserving order. An empty
// input yields an empty, non-nil slice.
func DecodeList[T any, S ~[]E, E any](m *Mapper, items S) ([]*T, error) {
	out := make([]*T, 0, len(items))

	for i, item := range items {
		v, err := Decode[T](m, item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		out = append(out, v)
	}

	return out, nil
}

// DecodeType is Decode for a type known only at run time. The result is a
// pointer to a new instance of t (or of the struct t points to).
func (m *Mapper) DecodeType(t reflect.Type, data any) (any, error) {
	ptr, err := m.decode(indirect(t), data, walk{})
	if err != nil {
		return nil, err
	}

	return ptr.Interface(), nil
}

// Restore populates the existing DTO dst points to from state, leaving
// fields whose keys are absent untouched.
func (m *Mapper) Restore(dst any, state any) error {
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return fmt.Errorf("dto: restore target must be a non-nil pointer, got %T", dst)
	}

	s, err := m.schema(ptr.Elem().Type())
	if err != nil {
		return err
	}

	return m.populate(s, ptr, state, walk{})
}

func (m *Mapper) decode(t reflect.Type, data any, w walk) (reflect.Value, error) {
	s, err := m.schema(t)
	if err != nil {
		return reflect.Value{}, err
	}

	if err := m.checkDepth(t, w); err != nil {
		return reflect.Value{}, err
	}

	ptr, err := s.construct()
	if err != nil {
		return reflect.Value{}, err
	}

	if err := m.populate(s, ptr, data, w); err != nil {
		return reflect.Value{}, err
	}

	return ptr, nil
}

func (m *Mapper) populate(s *Schema, ptr reflect.Value, data any, w walk) error {
	src, ok := asSource(data)
	if !ok {
		if data != nil {
			m.log.Debug("input is not a mapping, keeping defaults",
				zap.Stringer("type", s.typ), zap.String("path", w.String()),
				zap.String("input", fmt.Sprintf("%T", data)))
		}

		return nil
	}

	var err error

	src.Range(func(key string, value any) bool {
		f, ok := s.byKey[key]
		if !ok {
			m.log.Debug("skipping undeclared key",
				zap.Stringer("type", s.typ), zap.String("path", w.String()), zap.String("key", key))

			return true
		}

		err = m.fill(s, f, ptr, value, w)

		return err == nil
	})

	return err
}

func (m *Mapper) fill(s *Schema, f *Field, ptr reflect.Value, value any, w walk) error {
	if f.set != nil {
		if err := f.set(ptr, value); err != nil {
			m.rejected(s, f, w, err)
		}

		return nil
	}

	dst := ptr.Elem().FieldByIndex(f.index)

	switch kind, dt := m.registry.kindOf(f); kind {
	case KindNested:
		if value == nil {
			dst.SetZero()

			return nil
		}

		child, err := m.decode(dt, value, w.enter(f.key))
		if err != nil {
			return err
		}

		dst.Set(fitDTO(dst.Type(), child))

		return nil

	case KindSequence:
		items, ok := listOf(value)
		if !ok {
			break
		}

		seq, err := m.decodeSequence(dst.Type(), dt, items, w.enter(f.key))
		if err != nil {
			return err
		}

		dst.Set(seq)

		return nil
	}

	if err := assign(dst, value); err != nil {
		m.rejected(s, f, w, err)
	}

	return nil
}

// decodeSequence decodes items as elem values. Items that do not fit the
// element type of st are left out and later items move up; arrays keep
// their zero tail.
func (m *Mapper) decodeSequence(st, elem reflect.Type, items []any, w walk) (reflect.Value, error) {
	var seq reflect.Value

	if st.Kind() == reflect.Array {
		seq = reflect.New(st).Elem()
		items = items[:min(len(items), st.Len())]
	} else {
		seq = reflect.MakeSlice(st, len(items), len(items))
	}

	et := st.Elem()
	n := 0

	for i, item := range items {
		child, err := m.decode(elem, item, w.item(i))
		if err != nil {
			return reflect.Value{}, err
		}

		v := fitDTO(et, child)
		if !v.Type().AssignableTo(et) {
			m.log.Debug("dropping element that does not fit sequence",
				zap.String("path", w.item(i).String()), zap.Stringer("element", v.Type()), zap.Stringer("sequence", st))

			continue
		}

		seq.Index(n).Set(v)
		n++
	}

	if st.Kind() == reflect.Slice {
		seq = seq.Slice(0, n)
	}

	return seq, nil
}

// fitDTO adapts a freshly decoded *T to a destination of type T, *T or an
// interface.
func fitDTO(dst reflect.Type, ptr reflect.Value) reflect.Value {
	if dst.Kind() == reflect.Pointer || dst.Kind() == reflect.Interface {
		return ptr
	}

	return ptr.Elem()
}

func (m *Mapper) rejected(s *Schema, f *Field, w walk, err error) {
	m.log.Debug("value rejected",
		zap.Stringer("type", s.typ), zap.String("path", w.String()),
		zap.String("key", f.key), zap.Error(err))
}
