package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"dtomap/internal/diagnostic"
)

var (
	// ErrConstruction matches every *ConstructionError.
	ErrConstruction = errors.New("dto: cannot construct instance")
	// ErrSchema matches every *SchemaError.
	ErrSchema = errors.New("dto: invalid schema")
	// ErrDepthExceeded matches every *DepthExceededError.
	ErrDepthExceeded = errors.New("dto: maximum nesting depth exceeded")
)

// ConstructionError reports that no instance of Type could be created.
type ConstructionError struct {
	Type   reflect.Type
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("dto: cannot construct %s: %s", typeString(e.Type), e.Reason)
}

func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

// SchemaError reports that Type is not a usable DTO type: it is not
// registered, or its schema failed to compile.
type SchemaError struct {
	Type  reflect.Type
	diags diagnostic.Diagnostics
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dto: schema for %s: %s", typeString(e.Type), strings.Join(e.Problems(), "; "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// Problems lists the individual schema errors.
func (e *SchemaError) Problems() []string {
	out := make([]string, 0, len(e.diags.Errors))
	for _, d := range e.diags.Errors {
		out = append(out, d.String())
	}

	return out
}

func unregistered(t reflect.Type) *SchemaError {
	var d diagnostic.Diagnostics

	d.Errorf(diagnostic.CodeUnregistered, typeString(t), "", "type is not a registered DTO")

	return &SchemaError{Type: t, diags: d}
}

// DepthExceededError reports nesting deeper than the mapper allows. It is
// also how cyclic object graphs surface.
type DepthExceededError struct {
	Type  reflect.Type
	Limit int
	// Path is the key path at which the limit was hit, e.g. "parent.children[2].parent".
	Path string
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("dto: nesting depth %d exceeded at %q (%s)", e.Limit, e.Path, typeString(e.Type))
}

func (e *DepthExceededError) Is(target error) bool {
	return target == ErrDepthExceeded
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
