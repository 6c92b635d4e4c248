// Package config loads the compiler's on-disk configuration: the
// predefined function names a resolver seeds itself with, the default
// output format a compile invokes, and whether ABI-call tracing is on.
// Source format is YAML, conventionally named .vexc.yaml.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// EmitFormat names what a compile run produces.
type EmitFormat string

const (
	EmitResolvedIR EmitFormat = "resolved-ir"
	EmitTrace      EmitFormat = "trace"
)

// Config is the root of a .vexc.yaml document.
type Config struct {
	// PredefinedFunctions overrides resolver.DefaultPredefinedFunctions
	// when non-empty.
	PredefinedFunctions []string `yaml:"predefined_functions"`

	// Emit picks what `vexc emit` produces when --format is not given
	// on the command line.
	Emit EmitFormat `yaml:"emit"`

	// Trace turns on ABI-call tracing (internal/abitrace) during emit.
	Trace bool `yaml:"trace"`
}

// Default returns the configuration a bare `vexc` invocation runs with
// when no .vexc.yaml is found.
func Default() *Config {
	return &Config{
		Emit: EmitResolvedIR,
	}
}

// Load reads and parses the YAML configuration at path. A missing file is
// not an error: Load returns Default() so a repository without a
// .vexc.yaml still compiles.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
