// Package config loads the optional codie.yaml file used by the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

type Config struct {
	// Module overrides the module name found in the CODIE tree.
	Module string `yaml:"module"`
	// Registry is the path of the bbolt-backed hash registry.
	Registry string `yaml:"registry"`
	// Out is the path the rendered Move source is written to; stdout if empty.
	Out string `yaml:"out"`
}

// Load reads a YAML config file. A missing file is not an error: the zero
// config is returned.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
