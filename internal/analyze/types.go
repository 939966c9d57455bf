package analyze

import (
	"go/token"
	"maps"
	"slices"
)

// Directive marks a struct type for registration. It must appear in the
// type's doc comment.
const Directive = "//dtomap:register"

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "dtomap/examples/people"
	Name    string // e.g., "Person"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Package holds the DTOs found in one loaded package.
type Package struct {
	Path string // Import path
	Name string // Package name
	Dir  string // Directory of the package sources
	DTOs []*DTO
	// Imports maps import paths to package names for the packages element
	// types of DTOs refer to.
	Imports map[string]string
}

// ImportPaths returns the import paths in Imports, sorted.
func (p *Package) ImportPaths() []string {
	return slices.Sorted(maps.Keys(p.Imports))
}

// DTO is a struct type carrying the registration directive.
type DTO struct {
	ID     TypeID
	Pos    token.Position
	Fields []Field
}

// Bound returns the fields the generated registration has to mention: those
// with an accessor, a mutator or a resolved element type.
func (d *DTO) Bound() []Field {
	var out []Field

	for _, f := range d.Fields {
		if f.Getter != "" || f.Setter != "" || f.ElemType != "" {
			out = append(out, f)
		}
	}

	return out
}

// Field describes one mapped field of a DTO.
type Field struct {
	GoName string // Go field name
	Key    string // Plain-data key
	Type   string // Field type, qualified relative to the DTO's package
	Elem   string // Raw elem= tag option, if any
	// ElemType is the Go expression of the element DTO type, when Elem
	// names a struct the analyzer could resolve.
	ElemType string
	Getter   string // Accessor method name, if one with a usable signature exists
	Setter   string // Mutator method name, if one with a usable signature exists
}
