package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"strconv"
	"text/template"

	"dtomap/internal/analyze"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file written into each DTO package.
	Filename string
	// DTOImport is the import path of the runtime mapper package.
	DTOImport string
	// Registry is the registry expression, relative to the dto import.
	Registry string
	// OutputDir overrides the package directory as the place generated files
	// (and unformatted debug copies) are written to.
	OutputDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:  "dtomap_gen.go",
		DTOImport: "dtomap/dto",
		Registry:  "Default",
	}
}

// Generator renders registration code for analyzed DTO packages.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()

	if config.Filename == "" {
		config.Filename = def.Filename
	}

	if config.DTOImport == "" {
		config.DTOImport = def.DTOImport
	}

	if config.Registry == "" {
		config.Registry = def.Registry
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "dtomap_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders the registration file of pkg. Packages without DTOs
// yield nil.
func (g *Generator) Generate(pkg *analyze.Package) (*GeneratedFile, error) {
	if len(pkg.DTOs) == 0 {
		return nil, nil
	}

	dir := pkg.Dir
	if g.config.OutputDir != "" {
		dir = g.config.OutputDir
	}

	data := g.buildTemplateData(pkg)

	var buf bytes.Buffer
	if err := registerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: keep the unformatted code next to the output for debugging.
		if dir != "" {
			_ = writeDebugUnformatted(dir, g.config.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Dir:      dir,
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Dir:      dir,
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

// GenerateAll renders every package that declares DTOs.
func (g *Generator) GenerateAll(pkgs []*analyze.Package) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, pkg := range pkgs {
		file, err := g.Generate(pkg)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pkg.Path, err)
		}

		if file != nil {
			files = append(files, *file)
		}
	}

	return files, nil
}

// templateData holds all data needed for the registration template.
type templateData struct {
	PackageName string
	DTOAlias    string
	DTOImport   string
	Registry    string
	Imports     []importSpec
	DTOs        []dtoData
}

type importSpec struct {
	Alias string
	Path  string
}

type dtoData struct {
	Name    string
	Options []string
}

func (g *Generator) buildTemplateData(pkg *analyze.Package) *templateData {
	data := &templateData{
		PackageName: pkg.Name,
		DTOAlias:    "dto",
		DTOImport:   g.config.DTOImport,
		Registry:    g.config.Registry,
	}

	// the dto import must not clash with packages element types come from
	taken := make(map[string]bool)
	for _, p := range pkg.ImportPaths() {
		taken[pkg.Imports[p]] = true
	}

	for i := 2; taken[data.DTOAlias]; i++ {
		data.DTOAlias = "dto" + strconv.Itoa(i)
	}

	for _, p := range pkg.ImportPaths() {
		if p == g.config.DTOImport {
			continue
		}

		spec := importSpec{Path: p}
		if name := pkg.Imports[p]; name != path.Base(p) {
			spec.Alias = name
		}

		data.Imports = append(data.Imports, spec)
	}

	for _, d := range pkg.DTOs {
		data.DTOs = append(data.DTOs, dtoData{
			Name:    d.ID.Name,
			Options: g.options(data.DTOAlias, d),
		})
	}

	return data
}

// options lists the registration options of d in field order.
func (g *Generator) options(alias string, d *analyze.DTO) []string {
	opts := []string{alias + ".Explicit()"}

	for _, f := range d.Bound() {
		key := strconv.Quote(f.Key)

		if f.Getter != "" {
			opts = append(opts, fmt.Sprintf("%s.Getter(%s, (*%s).%s)", alias, key, d.ID.Name, f.Getter))
		}

		if f.Setter != "" {
			opts = append(opts, fmt.Sprintf("%s.Setter(%s, (*%s).%s)", alias, key, d.ID.Name, f.Setter))
		}

		if f.ElemType != "" {
			opts = append(opts, fmt.Sprintf("%s.ElemOf[%s](%s)", alias, f.ElemType, key))
		}
	}

	return opts
}

var registerTemplate = template.Must(template.New("register").Parse(`// Code generated by dtomap-gen. DO NOT EDIT.

package {{.PackageName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
	{{if ne .DTOAlias "dto"}}{{.DTOAlias}} {{end}}"{{.DTOImport}}"
)

func init() {
{{- $alias := .DTOAlias}}{{$registry := .Registry}}
{{- range .DTOs}}
	{{$alias}}.MustRegister[{{.Name}}]({{$alias}}.{{$registry}},
{{- range .Options}}
		{{.}},
{{- end}}
	)
{{- end}}
}
`))
