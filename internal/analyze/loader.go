package analyze

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"dtomap/dto"
	"dtomap/internal/diagnostic"
	"dtomap/internal/naming"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and collects the DTO types declared in them.
type Analyzer struct {
	log    *zap.Logger
	ignore string
	diags  diagnostic.Diagnostics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for progress messages.
func WithLogger(log *zap.Logger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

// IgnoreFile makes the analyzer read only the package clause of files with
// the given base name. Previously generated registrations may refer to
// methods that no longer exist; skipping them keeps such packages loadable.
func IgnoreFile(name string) Option {
	return func(a *Analyzer) {
		a.ignore = name
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Diagnostics returns the problems found by the last Load.
func (a *Analyzer) Diagnostics() diagnostic.Diagnostics {
	return a.diags
}

// Load loads the packages matching patterns and returns the DTOs declared
// in each. Patterns are standard Go package patterns (e.g., "./...",
// "dtomap/examples/people").
func (a *Analyzer) Load(patterns ...string) ([]*Package, error) {
	a.diags = diagnostic.Diagnostics{}

	cfg := &packages.Config{
		Mode:      LoadMode,
		ParseFile: a.parseFile,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	out := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		p := a.processPackage(pkg)
		a.log.Debug("package analyzed", zap.String("package", p.Path), zap.Int("dtos", len(p.DTOs)))
		out = append(out, p)
	}

	if err := a.diags.Err(); err != nil {
		return nil, fmt.Errorf("invalid DTO declarations: %w", err)
	}

	return out, nil
}

func (a *Analyzer) parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	mode := parser.ParseComments | parser.AllErrors
	if a.ignore != "" && filepath.Base(filename) == a.ignore {
		mode = parser.PackageClauseOnly
	}

	return parser.ParseFile(fset, filename, src, mode)
}

// processPackage finds the directive-marked structs of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) *Package {
	p := &Package{
		Path:    pkg.PkgPath,
		Name:    pkg.Name,
		Imports: make(map[string]string),
	}

	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				if !hasDirective(doc) {
					continue
				}

				if d := a.analyzeDTO(pkg, p, ts); d != nil {
					p.DTOs = append(p.DTOs, d)
				}
			}
		}
	}

	return p
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == Directive {
			return true
		}
	}

	return false
}

func (a *Analyzer) analyzeDTO(pkg *packages.Package, p *Package, ts *ast.TypeSpec) *DTO {
	id := TypeID{PkgPath: pkg.PkgPath, Name: ts.Name.Name}
	pos := pkg.Fset.Position(ts.Pos())

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil
	}

	named, ok := obj.Type().(*types.Named)
	if !ok || ts.Assign.IsValid() {
		a.diags.Errorf(diagnostic.CodeDirective, id.Name, "", "%s: directive on a type alias", pos)
		return nil
	}

	if ts.TypeParams != nil {
		a.diags.Errorf(diagnostic.CodeDirective, id.Name, "", "%s: generic types cannot be registered", pos)
		return nil
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		a.diags.Errorf(diagnostic.CodeNotStruct, id.Name, "", "%s: DTO types must be structs", pos)
		return nil
	}

	d := &DTO{ID: id, Pos: pos}
	rel := types.RelativeTo(pkg.Types)
	seen := make(map[string]bool)

	for _, v := range visibleFields(st) {
		key, elem, skip := dto.ParseTag(reflect.StructTag(v.tag), v.field.Name())
		if skip {
			continue
		}

		if seen[key] {
			a.diags.Errorf(diagnostic.CodeDuplicateKey, id.Name, key, "key declared by more than one field")
			continue
		}
		seen[key] = true

		f := Field{
			GoName: v.field.Name(),
			Key:    key,
			Type:   types.TypeString(v.field.Type(), rel),
			Elem:   elem,
		}

		if elem != "" {
			f.ElemType = a.resolveElem(pkg, p, id, key, v.field, elem)
		}

		f.Getter = a.accessor(pkg, named, id, key)
		f.Setter = a.mutator(pkg, named, id, key)

		d.Fields = append(d.Fields, f)
	}

	a.log.Debug("DTO found", zap.Stringer("type", id), zap.Int("fields", len(d.Fields)))

	return d
}

type visible struct {
	field *types.Var
	tag   string
	depth int
}

// visibleFields lists the exported fields a DTO maps, in declaration order,
// with fields of embedded structs promoted. Fields behind embedded pointers
// are left out, as are promoted fields hidden by a shallower field of the
// same name or clashing with one at the same depth.
func visibleFields(st *types.Struct) []visible {
	var all []visible

	var walk func(st *types.Struct, depth int)
	walk = func(st *types.Struct, depth int) {
		for i := range st.NumFields() {
			f := st.Field(i)

			if f.Embedded() {
				if s, ok := f.Type().Underlying().(*types.Struct); ok {
					walk(s, depth+1)
					continue
				}

				if ptr, ok := f.Type().Underlying().(*types.Pointer); ok {
					if _, ok := ptr.Elem().Underlying().(*types.Struct); ok {
						continue
					}
				}
			}

			if f.Exported() {
				all = append(all, visible{field: f, tag: st.Tag(i), depth: depth})
			}
		}
	}
	walk(st, 0)

	shallowest := make(map[string]int)
	count := make(map[string]int)

	for _, v := range all {
		name := v.field.Name()
		if d, ok := shallowest[name]; !ok || v.depth < d {
			shallowest[name] = v.depth
			count[name] = 0
		}

		if v.depth == shallowest[name] {
			count[name]++
		}
	}

	out := all[:0]

	for _, v := range all {
		name := v.field.Name()
		if v.depth == shallowest[name] && count[name] == 1 {
			out = append(out, v)
		}
	}

	return out
}

// resolveElem maps an elem= option to a Go type expression. Only interface
// element types need one; other sequences carry their element type.
func (a *Analyzer) resolveElem(pkg *packages.Package, p *Package, id TypeID, key string, field *types.Var, elem string) string {
	rel := types.RelativeTo(pkg.Types)

	var declared types.Type

	switch t := field.Type().Underlying().(type) {
	case *types.Slice:
		declared = t.Elem()
	case *types.Array:
		declared = t.Elem()
	default:
		a.diags.Errorf(diagnostic.CodeElemNotSequence, id.Name, key,
			"element annotation on non-sequence field of type %s", types.TypeString(field.Type(), rel))
		return ""
	}

	obj := lookupType(pkg.Types, strings.TrimPrefix(elem, "*"))
	if obj == nil {
		a.diags.Warnf(diagnostic.CodeUnregistered, id.Name, key,
			"element type %q not found, left to run-time resolution", elem)
		return ""
	}

	if _, ok := obj.Type().Underlying().(*types.Struct); !ok {
		a.diags.Errorf(diagnostic.CodeNotStruct, id.Name, key, "element type %s is not a struct", elem)
		return ""
	}

	if _, ok := declared.Underlying().(*types.Interface); !ok {
		if !types.Identical(deref(declared), obj.Type()) {
			a.diags.Errorf(diagnostic.CodeElemMismatch, id.Name, key,
				"element annotation %s does not match declared element type %s", elem, types.TypeString(declared, rel))
		}

		return ""
	}

	return types.TypeString(obj.Type(), qualifier(p, pkg.Types))
}

// lookupType resolves "Name" in pkg or "pkgname.Name" in one of its imports.
func lookupType(pkg *types.Package, name string) *types.TypeName {
	scope := pkg.Scope()

	if qual, short, ok := strings.Cut(name, "."); ok {
		scope = nil

		for _, imp := range pkg.Imports() {
			if imp.Name() == qual || imp.Path() == qual {
				scope = imp.Scope()
				break
			}
		}

		if scope == nil {
			return nil
		}

		name = short
	}

	obj, _ := scope.Lookup(name).(*types.TypeName)

	return obj
}

func (a *Analyzer) accessor(pkg *packages.Package, named *types.Named, id TypeID, key string) string {
	name := naming.Accessor(key)

	sig := method(pkg, named, name)
	if sig == nil {
		return ""
	}

	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		a.diags.Warnf(diagnostic.CodeAccessorSignature, id.Name, key,
			"method %s has signature %s, want func() V; ignored", name, sig)
		return ""
	}

	return name
}

func (a *Analyzer) mutator(pkg *packages.Package, named *types.Named, id TypeID, key string) string {
	name := naming.Mutator(key)

	sig := method(pkg, named, name)
	if sig == nil {
		return ""
	}

	if sig.Params().Len() != 1 || sig.Results().Len() != 0 || sig.Variadic() {
		a.diags.Warnf(diagnostic.CodeMutatorSignature, id.Name, key,
			"method %s has signature %s, want func(V); ignored", name, sig)
		return ""
	}

	return name
}

// method looks name up in the method set of *named.
func method(pkg *packages.Package, named *types.Named, name string) *types.Signature {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(named), false, pkg.Types, name)

	fn, ok := obj.(*types.Func)
	if !ok || !fn.Exported() {
		return nil
	}

	return fn.Type().(*types.Signature)
}

func deref(t types.Type) types.Type {
	for {
		ptr, ok := t.(*types.Pointer)
		if !ok {
			return t
		}

		t = ptr.Elem()
	}
}

// qualifier writes types of pkg unqualified and records every other
// package it is asked about in p.Imports.
func qualifier(p *Package, pkg *types.Package) types.Qualifier {
	return func(other *types.Package) string {
		if other == pkg {
			return ""
		}

		p.Imports[other.Path()] = other.Name()

		return other.Name()
	}
}
