package dto

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Mapper converts between plain data and DTOs registered in its registry.
// A Mapper is immutable once built and safe for concurrent use.
type Mapper struct {
	registry    *Registry
	log         *zap.Logger
	maxDepth    int
	dropForeign bool
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithRegistry sets the registry schemas are looked up in. Default is Default.
func WithRegistry(r *Registry) MapperOption {
	return func(m *Mapper) {
		m.registry = r
	}
}

// WithLogger sets the logger. Skipped keys, dropped items and rejected
// values are logged at debug level.
func WithLogger(log *zap.Logger) MapperOption {
	return func(m *Mapper) {
		if log != nil {
			m.log = log
		}
	}
}

// WithMaxDepth limits DTO nesting. Values below 1 select DefaultMaxDepth.
func WithMaxDepth(depth int) MapperOption {
	return func(m *Mapper) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		m.maxDepth = depth
	}
}

// KeepForeignItems makes Encode pass non-DTO items of sequence fields
// through unchanged instead of dropping them.
func KeepForeignItems() MapperOption {
	return func(m *Mapper) {
		m.dropForeign = false
	}
}

// New creates a Mapper.
func New(opts ...MapperOption) *Mapper {
	m := &Mapper{
		registry:    Default,
		log:         zap.NewNop(),
		maxDepth:    DefaultMaxDepth,
		dropForeign: true,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// NewFromConfig creates a Mapper from cfg. opts are applied after the
// configuration.
func NewFromConfig(cfg Config, opts ...MapperOption) *Mapper {
	applyDefaults(&cfg)

	base := []MapperOption{WithMaxDepth(cfg.MaxDepth)}
	if !*cfg.DropForeignItems {
		base = append(base, KeepForeignItems())
	}

	return New(append(base, opts...)...)
}

// Registry returns the registry m resolves schemas in.
func (m *Mapper) Registry() *Registry {
	return m.registry
}

func (m *Mapper) schema(t reflect.Type) (*Schema, error) {
	s, ok := m.registry.Lookup(t)
	if !ok {
		return nil, unregistered(t)
	}

	return s, nil
}

// walk tracks the recursion depth and key path of a single conversion.
type walk struct {
	depth int
	path  []string
}

func (w walk) enter(key string) walk {
	return walk{depth: w.depth + 1, path: append(slices.Clip(w.path), key)}
}

func (w walk) item(i int) walk {
	path := slices.Clone(w.path)
	if n := len(path); n > 0 {
		path[n-1] += "[" + strconv.Itoa(i) + "]"
	} else {
		path = append(path, "["+strconv.Itoa(i)+"]")
	}

	return walk{depth: w.depth, path: path}
}

func (w walk) String() string {
	return strings.Join(w.path, ".")
}

func (m *Mapper) checkDepth(t reflect.Type, w walk) error {
	if w.depth <= m.maxDepth {
		return nil
	}

	return &DepthExceededError{Type: t, Limit: m.maxDepth, Path: w.String()}
}

// String returns the JSON text of v, or an error marker when v cannot be
// encoded.
func (m *Mapper) String(v any) string {
	text, err := m.ToText(v)
	if err != nil {
		return fmt.Sprintf("%%!dto(%v)", err)
	}

	return text
}
