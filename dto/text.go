package dto

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToText returns the JSON text of Encode(v), keys in declaration order.
func (m *Mapper) ToText(v any) (string, error) {
	obj, err := m.Encode(v)
	if err != nil {
		return "", err
	}

	if obj == nil {
		return "null", nil
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("dto: marshal text: %w", err)
	}

	return string(b), nil
}

// ToYAML returns the YAML text of Encode(v), keys in declaration order.
func (m *Mapper) ToYAML(v any) (string, error) {
	obj, err := m.Encode(v)
	if err != nil {
		return "", err
	}

	b, err := yaml.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("dto: marshal yaml: %w", err)
	}

	return string(b), nil
}

// ToObject returns v as a canonical anonymous structure: Encode(v) passed
// through JSON and decoded generically, so numbers are float64 and nested
// objects are map[string]any.
func (m *Mapper) ToObject(v any) (map[string]any, error) {
	text, err := m.ToText(v)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("dto: canonical object: %w", err)
	}

	return out, nil
}

// DecodeText parses a JSON object, keeping key order, and decodes it as T.
func DecodeText[T any](m *Mapper, text string) (*T, error) {
	var obj Object
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("dto: parse text: %w", err)
	}

	return Decode[T](m, obj)
}

// DecodeYAML parses a YAML mapping, keeping key order, and decodes it as T.
func DecodeYAML[T any](m *Mapper, text string) (*T, error) {
	var obj Object
	if err := yaml.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("dto: parse yaml: %w", err)
	}

	return Decode[T](m, obj)
}
