// Package analyze provides package loading and DTO discovery for code
// generation.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// structs marked with the //dtomap:register directive and to work out what
// their registration needs: field keys, element annotations, and the
// Get*/Set* methods of the pointer receiver with usable signatures.
//
// Key types:
//   - TypeID: package import path + type name
//   - DTO: a marked struct and its mapped fields
//   - Field: key, Go type, element type and bound methods
package analyze
