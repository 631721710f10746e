// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package config provides configuration management for janus-ci.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Project Config: ./.janus-ci.yaml (searched upward to the repo root)
// 3. User Config: $HOME/.config/janus-ci/config.yaml
// 4. Environment Variables: JANUS_CI_*
package config

// Config represents the complete pipeline configuration.
type Config struct {
	Version    string           `yaml:"version"`
	Env        EnvConfig        `yaml:"env"`
	Styleguide StyleguideConfig `yaml:"styleguide"`
	Lint       LintConfig       `yaml:"lint"`
	Build      BuildConfig      `yaml:"build"`
	Test       TestConfig       `yaml:"test"`
	Hooks      []HookConfig     `yaml:"hooks,omitempty"`
	Global     GlobalConfig     `yaml:"global"`
}

// EnvConfig describes the isolated environment the pipeline runs in.
type EnvConfig struct {
	// Path is the sandbox directory, relative to the working directory.
	Path string `yaml:"path"`
	// Keep skips teardown, leaving the sandbox on disk after the run.
	Keep bool `yaml:"keep"`
	// Deps are the tool-installation commands run inside the sandbox
	// during the deps stage.
	Deps []string `yaml:"deps,omitempty"`
}

// StyleguideConfig describes the lint-configuration download.
type StyleguideConfig struct {
	// URL is the style-guide file to fetch. Empty disables the stage.
	URL string `yaml:"url,omitempty"`
	// Filename is where the file lands in the working directory.
	Filename string `yaml:"filename"`
	// CacheTTL is how long a downloaded copy stays valid, e.g. "24h".
	CacheTTL string `yaml:"cache_ttl"`
}

// LintPassConfig is one configured lint invocation.
type LintPassConfig struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command"`
}

// LintConfig contains the lint stage settings.
type LintConfig struct {
	Passes []LintPassConfig `yaml:"passes"`
	// BlockOn lists the finding categories that abort the pipeline.
	// Defaults to fatal, error, usage.
	BlockOn []string `yaml:"block_on,omitempty"`
	Timeout string   `yaml:"timeout"`
}

// BuildConfig contains the build stage settings.
type BuildConfig struct {
	// Command builds the distributable artifact. Empty uses the built-in
	// source packer.
	Command string `yaml:"command,omitempty"`
	// DistDir is where the artifact is produced.
	DistDir string `yaml:"dist_dir"`
	// ArtifactGlob matches the artifact inside DistDir.
	ArtifactGlob string `yaml:"artifact_glob"`
	Timeout      string `yaml:"timeout"`
}

// TestConfig contains the test stage settings.
type TestConfig struct {
	// Command runs the suite against the installed artifact.
	Command string `yaml:"command"`
	// TempPrefix names the temporary directory the suite runs from.
	TempPrefix string `yaml:"temp_prefix"`
	Timeout    string `yaml:"timeout"`
}

// HookConfig registers a command hook on a pipeline event.
type HookConfig struct {
	Name    string `yaml:"name"`
	Event   string `yaml:"event"`
	Command string `yaml:"command"`
	// Timeout in seconds. Zero uses the hook default.
	Timeout int `yaml:"timeout,omitempty"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	CacheDir string `yaml:"cache_dir"` // Path to the download cache
	NoColor  bool   `yaml:"no_color"`  // Disable colored report output
}
