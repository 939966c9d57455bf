package dto_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtomap/dto"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantDepth int
		wantDrop  bool
		wantErr   bool
	}{
		{name: "empty", yaml: "", wantDepth: dto.DefaultMaxDepth, wantDrop: true},
		{name: "depth only", yaml: "max_depth: 8\n", wantDepth: 8, wantDrop: true},
		{name: "keep items", yaml: "drop_foreign_items: false\n", wantDepth: dto.DefaultMaxDepth, wantDrop: false},
		{name: "negative depth", yaml: "max_depth: -3\n", wantDepth: dto.DefaultMaxDepth, wantDrop: true},
		{name: "invalid", yaml: "max_depth: [1\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := dto.ParseConfig([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDepth, cfg.MaxDepth)
			require.NotNil(t, cfg.DropForeignItems)
			assert.Equal(t, tt.wantDrop, *cfg.DropForeignItems)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dtomap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 2\ndrop_foreign_items: false\n"), 0o600))

	cfg, err := dto.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxDepth)
	assert.False(t, *cfg.DropForeignItems)

	_, err = dto.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	r := dto.NewRegistry()
	require.NoError(t, dto.Register[Address](r))
	require.NoError(t, dto.Register[Team](r))
	require.NoError(t, dto.Register[Node](r))

	cfg, err := dto.ParseConfig([]byte("max_depth: 1\ndrop_foreign_items: false\n"))
	require.NoError(t, err)

	m := dto.NewFromConfig(cfg, dto.WithRegistry(r))
	assert.Same(t, r, m.Registry())

	data, err := m.ToData(&Team{Extra: []any{"x", Address{City: "c"}}})
	require.NoError(t, err)
	assert.Equal(t, []any{"x", dto.Data{"city": "c"}}, data["extra"])

	_, err = m.Encode(&Node{Next: &Node{Next: &Node{}}})
	assert.ErrorIs(t, err, dto.ErrDepthExceeded)

	def := dto.DefaultConfig()
	assert.Equal(t, dto.DefaultMaxDepth, def.MaxDepth)
	assert.True(t, *def.DropForeignItems)

	assert.Same(t, dto.Default, dto.NewFromConfig(dto.Config{}).Registry())
}
