// Package config handles configuration loading and validation
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kevherro/janus/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default config file names to search for
var defaultConfigFiles = []string{
	".janus-ci.yaml",
	".janus-ci.yml",
	"janus-ci.yaml",
	"janus-ci.yml",
}

// Load loads configuration from a specific file path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// LoadDefault searches for and loads configuration from default locations
// Search order:
// 1. Current directory
// 2. Parent directories (up to root)
// 3. User home directory (.config/janus-ci/)
func LoadDefault() (*Config, error) {
	if cfg, err := findInParents("."); err == nil {
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(homeDir, ".config", "janus-ci", "config.yaml")
		if cfg, err := Load(userConfigPath); err == nil {
			return cfg, nil
		}
	}

	// No config found - return the default pipeline
	return DefaultConfig(), nil
}

// LoadFromEnv loads config from environment variable path
// JANUS_CI_CONFIG can override the config file path
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("JANUS_CI_CONFIG"); path != "" {
		cfg, err := Load(path)
		if err != nil {
			return nil, err
		}
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	cfg, err := LoadDefault()
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// findInParents searches for config file in current directory and parent directories
func findInParents(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, filename := range defaultConfigFiles {
			configPath := filepath.Join(dir, filename)
			if _, err := os.Stat(configPath); err == nil {
				return Load(configPath)
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root
			break
		}
		dir = parentDir
	}

	return nil, errors.ConfigError("no config file found", nil)
}

// DefaultConfig returns the default pipeline configuration: two lint
// passes, the built-in source packer, and a test run against the
// installed artifact.
func DefaultConfig() *Config {
	cfg := &Config{
		Version: "1",
		Env: EnvConfig{
			Path: ".janus-env",
			Deps: []string{
				"go install honnef.co/go/tools/cmd/staticcheck@latest",
			},
		},
		Lint: LintConfig{
			Passes: []LintPassConfig{
				{Name: "vet", Command: "go vet ./..."},
				{Name: "staticcheck", Command: "staticcheck ./..."},
			},
		},
		Test: TestConfig{
			Command: "go test ./...",
		},
	}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for optional fields
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	// Env defaults
	if cfg.Env.Path == "" {
		cfg.Env.Path = ".janus-env"
	}

	// Styleguide defaults
	if cfg.Styleguide.Filename == "" {
		cfg.Styleguide.Filename = ".styleguide"
	}
	if cfg.Styleguide.CacheTTL == "" {
		cfg.Styleguide.CacheTTL = "24h"
	}

	// Lint defaults
	if cfg.Lint.Timeout == "" {
		cfg.Lint.Timeout = "5m"
	}

	// Build defaults
	if cfg.Build.DistDir == "" {
		cfg.Build.DistDir = "dist"
	}
	if cfg.Build.ArtifactGlob == "" {
		cfg.Build.ArtifactGlob = "*.tar.gz"
	}
	if cfg.Build.Timeout == "" {
		cfg.Build.Timeout = "10m"
	}

	// Test defaults
	if cfg.Test.Command == "" {
		cfg.Test.Command = "go test ./..."
	}
	if cfg.Test.TempPrefix == "" {
		cfg.Test.TempPrefix = "janus-test-"
	}
	if cfg.Test.Timeout == "" {
		cfg.Test.Timeout = "15m"
	}

	// Global defaults
	if cfg.Global.LogLevel == "" {
		cfg.Global.LogLevel = "info"
	}
	if cfg.Global.CacheDir == "" {
		cfg.Global.CacheDir = ".janus-cache"
	}
}

// applyEnvOverrides applies JANUS_CI_* environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("JANUS_CI_LOG_LEVEL"); val != "" {
		cfg.Global.LogLevel = val
	}
	if val := os.Getenv("JANUS_CI_CACHE_DIR"); val != "" {
		cfg.Global.CacheDir = val
	}
	if val := os.Getenv("JANUS_CI_ENV_PATH"); val != "" {
		cfg.Env.Path = val
	}
	if val := os.Getenv("JANUS_CI_STYLEGUIDE_URL"); val != "" {
		cfg.Styleguide.URL = val
	}
	if os.Getenv("JANUS_CI_KEEP_ENV") == "1" {
		cfg.Env.Keep = true
	}
	if os.Getenv("JANUS_CI_NO_COLOR") == "1" {
		cfg.Global.NoColor = true
	}
}
