package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// Source is key-iterable plain data. Range stops when fn returns false.
type Source interface {
	Range(fn func(key string, value any) bool)
}

// Data is an unordered plain mapping. Range visits keys in sorted order so
// decoding is deterministic.
type Data map[string]any

// Range implements Source.
func (d Data) Range(fn func(key string, value any) bool) {
	for _, key := range slices.Sorted(maps.Keys(d)) {
		if !fn(key, d[key]) {
			return
		}
	}
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is an ordered plain mapping. Encode produces it with keys in field
// declaration order, and its JSON and YAML forms keep that order.
type Object []Member

// Range implements Source.
func (o Object) Range(fn func(key string, value any) bool) {
	for _, m := range o {
		if !fn(m.Key, m.Value) {
			return
		}
	}
}

// Get returns the value of the last member named key.
func (o Object) Get(key string) (any, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}

	return nil, false
}

// Keys returns member keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}

	return keys
}

// Set replaces the value of key, or appends it.
func (o *Object) Set(key string, value any) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = value

			return
		}
	}

	*o = append(*o, Member{Key: key, Value: value})
}

// Data converts o, and every Object nested in it, to Data.
func (o Object) Data() Data {
	d := make(Data, len(o))
	for _, m := range o {
		d[m.Key] = unordered(m.Value)
	}

	return d
}

func unordered(v any) any {
	switch t := v.(type) {
	case Object:
		return t.Data()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = unordered(item)
		}

		return out
	default:
		return v
	}
}

// MarshalJSON writes members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", m.Key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping member order. Nested objects
// become Object and arrays become []any. Integral numbers become int64 and
// the rest float64.
func (o *Object) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	obj, err := readJSONObject(dec)
	if err != nil {
		return err
	}

	*o = obj

	return nil
}

func readJSONObject(dec *json.Decoder) (Object, error) {
	obj := Object{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		val, err := readJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		obj = append(obj, Member{Key: key, Value: val})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

func readJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if n, ok := tok.(json.Number); ok {
		return jsonNumber(n)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		return readJSONObject(dec)
	case '[':
		list := []any{}

		for dec.More() {
			item, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}

			list = append(list, item)
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

func jsonNumber(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}

	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("number %s: %w", n, err)
	}

	return f, nil
}

// MarshalYAML emits a mapping node with members in order.
func (o Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, m := range o {
		var key, val yaml.Node

		if err := key.Encode(m.Key); err != nil {
			return nil, err
		}

		if err := val.Encode(m.Value); err != nil {
			return nil, fmt.Errorf("key %q: %w", m.Key, err)
		}

		node.Content = append(node.Content, &key, &val)
	}

	return node, nil
}

// UnmarshalYAML reads a mapping node keeping member order.
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	v, err := fromYAMLNode(node)
	if err != nil {
		return err
	}

	obj, ok := v.(Object)
	if !ok {
		return fmt.Errorf("line %d: expected YAML mapping", node.Line)
	}

	*o = obj

	return nil
}

func fromYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return fromYAMLNode(node.Content[0])

	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)

	case yaml.MappingNode:
		obj := make(Object, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, err
			}

			val, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}

			obj = append(obj, Member{Key: key, Value: val})
		}

		return obj, nil

	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))

		for _, item := range node.Content {
			val, err := fromYAMLNode(item)
			if err != nil {
				return nil, err
			}

			list = append(list, val)
		}

		return list, nil

	default:
		var val any
		if err := node.Decode(&val); err != nil {
			return nil, err
		}

		return val, nil
	}
}

// asSource adapts decode input. Anything that is not key-iterable yields false.
func asSource(v any) (Source, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case *Object:
		if t == nil {
			return nil, false
		}

		return *t, true
	case Source:
		return t, true
	case map[string]any:
		return Data(t), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	d := make(Data, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		d[iter.Key().String()] = iter.Value().Interface()
	}

	return d, true
}

// listOf returns the items of a slice or array value.
func listOf(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	return items, true
}
