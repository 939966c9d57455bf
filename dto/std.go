package dto

// std is the mapper behind the package-level helpers: the Default registry,
// DefaultMaxDepth, non-DTO sequence items dropped, no logging.
var std = New()

// FromData decodes data into a new *T using the default mapper.
func FromData[T any](data any) (*T, error) {
	return Decode[T](std, data)
}

// FromList decodes each item as a T using the default mapper.
func FromList[T any, S ~[]E, E any](items S) ([]*T, error) {
	return DecodeList[T](std, items)
}

// FromText decodes JSON text into a new *T using the default mapper.
func FromText[T any](text string) (*T, error) {
	return DecodeText[T](std, text)
}

// FromYAML decodes YAML text into a new *T using the default mapper.
func FromYAML[T any](text string) (*T, error) {
	return DecodeYAML[T](std, text)
}

// ToData encodes v using the default mapper.
func ToData(v any) (Data, error) {
	return std.ToData(v)
}

// ToText encodes v as JSON text using the default mapper.
func ToText(v any) (string, error) {
	return std.ToText(v)
}

// ToYAML encodes v as YAML text using the default mapper.
func ToYAML(v any) (string, error) {
	return std.ToYAML(v)
}

// ToObject returns the canonical anonymous structure of v using the default
// mapper.
func ToObject(v any) (map[string]any, error) {
	return std.ToObject(v)
}

// State returns the persisted form of v using the default mapper.
func State(v any) (Data, error) {
	return std.State(v)
}

// Restore populates dst from a persisted state using the default mapper.
func Restore(dst any, state any) error {
	return std.Restore(dst, state)
}
