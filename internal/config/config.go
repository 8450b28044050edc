// Package config handles loader configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/pureparts/pkg/formats"
	"github.com/Faultbox/pureparts/pkg/geometry"
)

// Config holds all settings.
type Config struct {
	Loader  LoaderConfig  `yaml:"loader"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoaderConfig holds model dispatch and format constants.
type LoaderConfig struct {
	BinaryExtension string                `yaml:"binary_extension"`  // Extension of binary models, with dot
	LOD1Marker      string                `yaml:"lod1_marker"`       // Filename substring selecting LOD1
	LOD3Marker      string                `yaml:"lod3_marker"`       // Filename substring selecting LOD3
	LOD3VertexCount int                   `yaml:"lod3_vertex_count"` // Fixed LOD3 vertex records
	LOD3IndexCount  int                   `yaml:"lod3_index_count"`  // Expected LOD3 indices, 0 disables the check
	Bounds          geometry.BoundsPolicy `yaml:"bounds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := formats.DefaultModelOptions()
	return &Config{
		Loader: LoaderConfig{
			BinaryExtension: ".model",
			LOD1Marker:      "LOD1",
			LOD3Marker:      "LOD3",
			LOD3VertexCount: opts.LOD3VertexCount,
			LOD3IndexCount:  opts.LOD3IndexCount,
			Bounds:          geometry.DefaultBoundsPolicy(),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ModelOptions returns the binary parser constants.
func (c LoaderConfig) ModelOptions() formats.ModelOptions {
	return formats.ModelOptions{
		LOD3VertexCount: c.LOD3VertexCount,
		LOD3IndexCount:  c.LOD3IndexCount,
	}
}

// Validate checks the loader settings for values no model could satisfy.
func (c LoaderConfig) Validate() error {
	if c.BinaryExtension == "" || c.BinaryExtension[0] != '.' {
		return fmt.Errorf("binary_extension must start with a dot, got %q", c.BinaryExtension)
	}
	if c.LOD1Marker == "" || c.LOD3Marker == "" {
		return fmt.Errorf("lod markers must not be empty")
	}
	if c.LOD3VertexCount < 0 || c.LOD3VertexCount > 1<<16 {
		return fmt.Errorf("lod3_vertex_count %d outside [0, 65536]", c.LOD3VertexCount)
	}
	if c.LOD3IndexCount < 0 {
		return fmt.Errorf("lod3_index_count must not be negative, got %d", c.LOD3IndexCount)
	}
	return c.Bounds.Validate()
}
