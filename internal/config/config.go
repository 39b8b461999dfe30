package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

// Config represents the user's persisted defaults
type Config struct {
	TracesPath   string `json:"traces_path,omitempty"`
	TaxonomyPath string `json:"taxonomy_path,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{}
}

// globalConfigDir returns the global config directory path (~/.agentprofiler)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".agentprofiler"), nil
}

// globalConfigPath returns the global config file path (~/.agentprofiler/config.json)
func globalConfigPath() (string, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// projectConfigPath returns the project-level config path (.agentprofiler/config.json in cwd)
func projectConfigPath() string {
	return filepath.Join(".agentprofiler", "config.json")
}

// Load reads the config from disk, checking project config first, then global
func Load() (*Config, error) {
	if data, err := os.ReadFile(projectConfigPath()); err == nil {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(globalPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config exists, return default (don't auto-create)
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to the global location
func Save(cfg *Config) error {
	dir, err := globalConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path, err := globalConfigPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTaxonomy reads a group→tools mapping from a YAML file:
//
//	search:
//	  - web_search
//	  - grep
//	io:
//	  - read_file
//	  - write_file
//
// An empty path yields an empty taxonomy, which is valid: every tool
// then resolves to the "unknown" group.
func LoadTaxonomy(path string) (model.Taxonomy, error) {
	if path == "" {
		return model.Taxonomy{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy: %w", err)
	}
	var tx model.Taxonomy
	if err := yaml.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("decoding taxonomy: %w", err)
	}
	if tx == nil {
		tx = model.Taxonomy{}
	}
	return tx, nil
}
