// Package config loads tool configuration from YAML with sensible
// defaults. Priority: defaults < file < flags (applied by the caller).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the mesh-export tool configuration.
type Config struct {
	// Script is the scene definition file to evaluate.
	Script string `yaml:"script"`
	// Output is the export target; the extension selects the format
	// (.gltf, .glb, .dxf).
	Output string `yaml:"output"`
	// MeshCells is the marching cubes resolution for boolean evaluation.
	MeshCells int `yaml:"mesh_cells"`
	// Recompute forces element geometry caches to rebuild before
	// resolution.
	Recompute bool `yaml:"recompute"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Output:    "scene.gltf",
		MeshCells: 200,
		LogLevel:  "info",
	}
}

// Load returns the defaults merged with the YAML file at path. An empty
// path yields plain defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
