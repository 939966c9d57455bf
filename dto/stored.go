package dto

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Stored wraps a DTO so persistence layers can keep it in its plain form:
// a JSON column through database/sql, a JSON or YAML document field. It
// uses the default mapper.
//
//	type Row struct {
//		ID      int64
//		Profile dto.Stored[Profile]
//	}
type Stored[T any] struct {
	DTO *T
}

// Store wraps v.
func Store[T any](v *T) Stored[T] {
	return Stored[T]{DTO: v}
}

// Value implements driver.Valuer. A nil DTO is stored as NULL.
func (s Stored[T]) Value() (driver.Value, error) {
	if s.DTO == nil {
		return nil, nil
	}

	text, err := std.ToText(s.DTO)
	if err != nil {
		return nil, err
	}

	return []byte(text), nil
}

// Scan implements sql.Scanner for JSON text columns.
func (s *Stored[T]) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		s.DTO = nil

		return nil
	case []byte:
		return s.restoreText(v)
	case string:
		return s.restoreText([]byte(v))
	default:
		return fmt.Errorf("dto: cannot scan %T into Stored[%s]", src, reflect.TypeFor[T]())
	}
}

// MarshalJSON implements json.Marshaler.
func (s Stored[T]) MarshalJSON() ([]byte, error) {
	if s.DTO == nil {
		return []byte("null"), nil
	}

	obj, err := std.Encode(s.DTO)
	if err != nil {
		return nil, err
	}

	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Stored[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		s.DTO = nil

		return nil
	}

	return s.restoreText(b)
}

// MarshalYAML implements yaml.Marshaler.
func (s Stored[T]) MarshalYAML() (any, error) {
	if s.DTO == nil {
		return nil, nil
	}

	return std.Encode(s.DTO)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Stored[T]) UnmarshalYAML(node *yaml.Node) error {
	var obj Object
	if err := obj.UnmarshalYAML(node); err != nil {
		return err
	}

	v, err := Decode[T](std, obj)
	if err != nil {
		return err
	}

	s.DTO = v

	return nil
}

// String returns the JSON text of the wrapped DTO.
func (s Stored[T]) String() string {
	if s.DTO == nil {
		return "null"
	}

	return std.String(s.DTO)
}

func (s *Stored[T]) restoreText(b []byte) error {
	var obj Object
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("dto: parse stored %s: %w", reflect.TypeFor[T](), err)
	}

	v, err := Decode[T](std, obj)
	if err != nil {
		return err
	}

	s.DTO = v

	return nil
}
