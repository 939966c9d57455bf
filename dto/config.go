package dto

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = 64

// Config is the file form of mapper settings:
//
//	max_depth: 32
//	drop_foreign_items: false
type Config struct {
	// MaxDepth limits DTO nesting; 0 selects DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth"`
	// DropForeignItems drops non-DTO items from sequence fields on encode.
	// Unset means true.
	DropForeignItems *bool `yaml:"drop_foreign_items"`
}

// DefaultConfig returns the configuration New uses.
func DefaultConfig() Config {
	var cfg Config

	applyDefaults(&cfg)

	return cfg
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration and fills in defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	if cfg.DropForeignItems == nil {
		drop := true
		cfg.DropForeignItems = &drop
	}
}
