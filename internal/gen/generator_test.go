package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtomap/internal/analyze"
)

func TestGenerator_ExamplePackage(t *testing.T) {
	pkgs, err := analyze.NewAnalyzer(analyze.IgnoreFile("dtomap_gen.go")).Load("dtomap/examples/people")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pkgs[0])
	require.NoError(t, err)
	require.NotNil(t, file)

	want, err := os.ReadFile(filepath.Join("..", "..", "examples", "people", "dtomap_gen.go"))
	require.NoError(t, err)

	assert.Equal(t, "dtomap_gen.go", file.Filename)
	assert.Equal(t, pkgs[0].Dir, file.Dir)
	assert.Equal(t, string(want), string(file.Content), "checked-in registration is stale")
}

func TestGenerator_Options(t *testing.T) {
	pkg := &analyze.Package{
		Path:    "example.com/shop",
		Name:    "shop",
		Imports: map[string]string{"example.com/catalog/v2": "catalog"},
		DTOs: []*analyze.DTO{
			{
				ID: analyze.TypeID{PkgPath: "example.com/shop", Name: "Cart"},
				Fields: []analyze.Field{
					{GoName: "ID", Key: "id", Type: "string"},
					{GoName: "Owner", Key: "owner", Type: "string", Getter: "GetOwner", Setter: "SetOwner"},
					{GoName: "Items", Key: "items", Type: "[]any", Elem: "catalog.Item", ElemType: "catalog.Item"},
				},
			},
		},
	}

	file, err := NewGenerator(GeneratorConfig{}).Generate(pkg)
	require.NoError(t, err)

	assert.Equal(t, `// Code generated by dtomap-gen. DO NOT EDIT.

package shop

import (
	"dtomap/dto"
	catalog "example.com/catalog/v2"
)

func init() {
	dto.MustRegister[Cart](dto.Default,
		dto.Explicit(),
		dto.Getter("owner", (*Cart).GetOwner),
		dto.Setter("owner", (*Cart).SetOwner),
		dto.ElemOf[catalog.Item]("items"),
	)
}
`, string(file.Content))
}

func TestGenerator_DTOAliasClash(t *testing.T) {
	pkg := &analyze.Package{
		Name:    "api",
		Imports: map[string]string{"example.com/dto": "dto"},
		DTOs: []*analyze.DTO{{
			ID:     analyze.TypeID{Name: "Envelope"},
			Fields: []analyze.Field{{Key: "body", ElemType: "dto.Body"}},
		}},
	}

	file, err := NewGenerator(GeneratorConfig{}).Generate(pkg)
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, `dto2 "dtomap/dto"`)
	assert.Contains(t, content, `dto2.MustRegister[Envelope](dto2.Default,`)
	assert.Contains(t, content, `dto2.ElemOf[dto.Body]("body"),`)
}

func TestGenerator_NoDTOs(t *testing.T) {
	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(&analyze.Package{Name: "empty"})
	require.NoError(t, err)
	assert.Nil(t, file)

	files, err := NewGenerator(DefaultGeneratorConfig()).GenerateAll([]*analyze.Package{{Name: "empty"}})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGenerator_FormatFailureKeepsDebugCopy(t *testing.T) {
	dir := t.TempDir()

	pkg := &analyze.Package{
		Name: "broken",
		Dir:  dir,
		DTOs: []*analyze.DTO{{ID: analyze.TypeID{Name: "Bad Name"}}},
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pkg)
	require.Error(t, err)
	require.NotNil(t, file)
	assert.Contains(t, string(file.Content), "MustRegister[Bad Name]")
	assert.FileExists(t, filepath.Join(dir, "dtomap_gen.unformatted.go"))
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pkg")

	err := WriteFiles([]GeneratedFile{{Dir: dir, Filename: "dtomap_gen.go", Content: []byte("package pkg\n")}})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "dtomap_gen.go"))
	require.NoError(t, err)
	assert.Equal(t, "package pkg\n", string(got))

	assert.Error(t, WriteFiles([]GeneratedFile{{Filename: "x.go"}}))
}
