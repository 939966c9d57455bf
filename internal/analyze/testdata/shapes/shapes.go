package shapes

import (
	"net/url"
	"time"
)

// Point is registered.
//
//dtomap:register
type Point struct {
	X float64 `dto:"x"`
	Y float64 `dto:"y"`
}

// Meta is embedded into Shape.
type Meta struct {
	ID      string    `dto:"id"`
	Created time.Time `dto:"created"`
}

// Hidden is embedded through a pointer; its fields are not mapped.
type Hidden struct {
	Secret string `dto:"secret"`
}

//dtomap:register
type Shape struct {
	Meta
	*Hidden

	Name     string   `dto:"name"`
	Points   []Point  `dto:"points"`
	Extra    []any    `dto:"extra,elem=Point"`
	Links    []any    `dto:"links,elem=url.URL"`
	Missing  []any    `dto:"missing,elem=Nowhere"`
	Skipped  string   `dto:"-"`
	Label    string   `json:"label,omitempty"`
	Weight   int      `dto:"weight"`
	Home     *url.URL `dto:"home"`
	internal int
}

// GetName is a usable accessor.
func (s *Shape) GetName() string { return s.Name }

// SetWeight has an unusable signature.
func (s *Shape) SetWeight(w int, unit string) { s.Weight = w }

// SetLabel is declared on the value receiver and still reachable through *Shape.
func (s Shape) SetLabel(v string) {}

// unexported helpers are ignored.
type unmarked struct {
	A int
}

type (
	// Grouped uses the doc comment of its spec.
	//
	//dtomap:register
	Grouped struct {
		Value string `dto:"value"`
	}

	// NotMarked has no directive.
	NotMarked struct{}
)
