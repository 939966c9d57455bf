package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dtoByName(t *testing.T, pkg *Package, name string) *DTO {
	t.Helper()

	for _, d := range pkg.DTOs {
		if d.ID.Name == name {
			return d
		}
	}

	t.Fatalf("DTO %s not found in %s", name, pkg.Path)

	return nil
}

func fieldByKey(t *testing.T, d *DTO, key string) Field {
	t.Helper()

	for _, f := range d.Fields {
		if f.Key == key {
			return f
		}
	}

	t.Fatalf("field %q not found in %s", key, d.ID)

	return Field{}
}

func TestAnalyzer_ExamplePackage(t *testing.T) {
	analyzer := NewAnalyzer(IgnoreFile("dtomap_gen.go"))

	pkgs, err := analyzer.Load("dtomap/examples/people")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	pkg := pkgs[0]
	assert.Equal(t, "dtomap/examples/people", pkg.Path)
	assert.Equal(t, "people", pkg.Name)
	assert.True(t, strings.HasSuffix(pkg.Dir, "people"))
	assert.Empty(t, pkg.Imports)

	var names []string
	for _, d := range pkg.DTOs {
		names = append(names, d.ID.Name)
	}
	assert.Equal(t, []string{"Address", "Contact", "Person"}, names)

	person := dtoByName(t, pkg, "Person")
	assert.Equal(t, TypeID{PkgPath: "dtomap/examples/people", Name: "Person"}, person.ID)
	assert.Equal(t, "dtomap/examples/people.Person", person.ID.String())
	assert.Equal(t, "people.go", person.Pos.Filename[len(person.Pos.Filename)-len("people.go"):])

	var keys []string
	for _, f := range person.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{
		"first_name", "last_name", "email", "address", "contacts", "history", "tags", "created_at",
	}, keys)

	assert.Equal(t, Field{GoName: "Email", Key: "email", Type: "string", Setter: "SetEmail"}, fieldByKey(t, person, "email"))
	assert.Equal(t, Field{GoName: "Tags", Key: "tags", Type: "[]string", Getter: "GetTags"}, fieldByKey(t, person, "tags"))
	assert.Equal(t, Field{
		GoName: "History", Key: "history", Type: "[]any", Elem: "Address", ElemType: "Address",
	}, fieldByKey(t, person, "history"))
	assert.Equal(t, "*Address", fieldByKey(t, person, "address").Type)
	assert.Equal(t, "time.Time", fieldByKey(t, person, "created_at").Type)

	var bound []string
	for _, f := range person.Bound() {
		bound = append(bound, f.Key)
	}
	assert.Equal(t, []string{"email", "history", "tags"}, bound)

	assert.Empty(t, analyzer.Diagnostics().Errors)
	assert.Empty(t, analyzer.Diagnostics().Warnings)
}

func TestAnalyzer_Shapes(t *testing.T) {
	analyzer := NewAnalyzer()

	pkgs, err := analyzer.Load("./testdata/shapes")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	pkg := pkgs[0]
	require.Len(t, pkg.DTOs, 3)
	dtoByName(t, pkg, "Point")
	dtoByName(t, pkg, "Grouped")

	shape := dtoByName(t, pkg, "Shape")

	var keys []string
	for _, f := range shape.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{
		"id", "created", "name", "points", "extra", "links", "missing", "label", "weight", "home",
	}, keys)

	assert.Equal(t, "GetName", fieldByKey(t, shape, "name").Getter)
	assert.Equal(t, "SetLabel", fieldByKey(t, shape, "label").Setter)
	assert.Empty(t, fieldByKey(t, shape, "weight").Setter)
	assert.Equal(t, "Point", fieldByKey(t, shape, "extra").ElemType)
	assert.Equal(t, "url.URL", fieldByKey(t, shape, "links").ElemType)
	assert.Empty(t, fieldByKey(t, shape, "missing").ElemType)
	assert.Empty(t, fieldByKey(t, shape, "points").ElemType)
	assert.Equal(t, "*url.URL", fieldByKey(t, shape, "home").Type)

	assert.Equal(t, map[string]string{"net/url": "url"}, pkg.Imports)
	assert.Equal(t, []string{"net/url"}, pkg.ImportPaths())

	diags := analyzer.Diagnostics()
	assert.Empty(t, diags.Errors)
	require.Len(t, diags.Warnings, 2)

	var codes []string
	for _, w := range diags.Warnings {
		codes = append(codes, w.Code)
	}
	assert.ElementsMatch(t, []string{"mutator-signature", "unregistered"}, codes)
}

func TestAnalyzer_InvalidDeclarations(t *testing.T) {
	analyzer := NewAnalyzer()

	_, err := analyzer.Load("./testdata/invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid DTO declarations")

	var codes []string
	for _, d := range analyzer.Diagnostics().Errors {
		codes = append(codes, d.Code)
	}
	assert.ElementsMatch(t, []string{"not-struct", "directive", "duplicate-key"}, codes)
}

func TestAnalyzer_LoadError(t *testing.T) {
	_, err := NewAnalyzer().Load("dtomap/does/not/exist")
	assert.Error(t, err)
}
