// Package config handles configuration loading and validation
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/kevherro/janus/pkg/lint"
)

// MaxLintPasses is the maximum number of configured lint passes
const MaxLintPasses = 16

var validHookEvents = map[string]bool{
	"pre_setup":  true,
	"post_setup": true,
	"pre_lint":   true,
	"post_lint":  true,
	"pre_build":  true,
	"post_build": true,
	"pre_test":   true,
	"post_test":  true,
	"on_failure": true,
	"on_success": true,
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if c.Version == "" {
		return fmt.Errorf("config version is required")
	}

	if err := c.Env.Validate(); err != nil {
		return fmt.Errorf("env config: %w", err)
	}

	if err := c.Styleguide.Validate(); err != nil {
		return fmt.Errorf("styleguide config: %w", err)
	}

	if err := c.Lint.Validate(); err != nil {
		return fmt.Errorf("lint config: %w", err)
	}

	if err := c.Build.Validate(); err != nil {
		return fmt.Errorf("build config: %w", err)
	}

	if err := c.Test.Validate(); err != nil {
		return fmt.Errorf("test config: %w", err)
	}

	for i, hook := range c.Hooks {
		if err := hook.Validate(); err != nil {
			return fmt.Errorf("hooks[%d]: %w", i, err)
		}
	}

	if err := c.Global.Validate(); err != nil {
		return fmt.Errorf("global config: %w", err)
	}

	return nil
}

// Validate validates the environment configuration
func (e *EnvConfig) Validate() error {
	if strings.TrimSpace(e.Path) == "" {
		return fmt.Errorf("env path is required")
	}
	if e.Path == "." || e.Path == string(filepath.Separator) {
		return fmt.Errorf("env path must be a dedicated directory, got %q", e.Path)
	}
	for i, dep := range e.Deps {
		if strings.TrimSpace(dep) == "" {
			return fmt.Errorf("deps[%d]: command is empty", i)
		}
	}
	return nil
}

// Validate validates the styleguide configuration
func (s *StyleguideConfig) Validate() error {
	if s.URL != "" {
		u, err := url.Parse(s.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid styleguide url: %q", s.URL)
		}
	}
	if strings.TrimSpace(s.Filename) == "" {
		return fmt.Errorf("styleguide filename is required")
	}
	if strings.Contains(s.Filename, string(filepath.Separator)) {
		return fmt.Errorf("styleguide filename must not contain path separators: %q", s.Filename)
	}
	if _, err := time.ParseDuration(s.CacheTTL); err != nil {
		return fmt.Errorf("invalid cache_ttl: %w", err)
	}
	return nil
}

// Validate validates the lint configuration
func (l *LintConfig) Validate() error {
	if len(l.Passes) > MaxLintPasses {
		return fmt.Errorf("at most %d lint passes allowed, got %d", MaxLintPasses, len(l.Passes))
	}
	for i, pass := range l.Passes {
		if strings.TrimSpace(pass.Name) == "" {
			return fmt.Errorf("passes[%d]: name is required", i)
		}
		if strings.TrimSpace(pass.Command) == "" {
			return fmt.Errorf("passes[%d]: command is required", i)
		}
	}
	if _, err := l.BlockingCategories(); err != nil {
		return err
	}
	if _, err := time.ParseDuration(l.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

// BlockingCategories parses the block_on list.
// A nil result means the lint defaults apply.
func (l *LintConfig) BlockingCategories() ([]lint.Category, error) {
	if len(l.BlockOn) == 0 {
		return nil, nil
	}
	cats := make([]lint.Category, 0, len(l.BlockOn))
	for _, name := range l.BlockOn {
		cat, err := lint.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("block_on: %w", err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// Validate validates the build configuration
func (b *BuildConfig) Validate() error {
	if strings.TrimSpace(b.DistDir) == "" {
		return fmt.Errorf("dist_dir is required")
	}
	if strings.TrimSpace(b.ArtifactGlob) == "" {
		return fmt.Errorf("artifact_glob is required")
	}
	if _, err := filepath.Match(b.ArtifactGlob, ""); err != nil {
		return fmt.Errorf("invalid artifact_glob: %w", err)
	}
	if _, err := time.ParseDuration(b.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

// Validate validates the test configuration
func (t *TestConfig) Validate() error {
	if strings.TrimSpace(t.Command) == "" {
		return fmt.Errorf("test command is required")
	}
	if strings.TrimSpace(t.TempPrefix) == "" {
		return fmt.Errorf("temp_prefix is required")
	}
	if _, err := time.ParseDuration(t.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

// Validate validates a hook configuration
func (h *HookConfig) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("hook name is required")
	}
	if !validHookEvents[h.Event] {
		return fmt.Errorf("invalid hook event: %q", h.Event)
	}
	if strings.TrimSpace(h.Command) == "" {
		return fmt.Errorf("hook command is required")
	}
	if h.Timeout < 0 {
		return fmt.Errorf("hook timeout must be non-negative")
	}
	return nil
}

// Validate validates the global configuration
func (g *GlobalConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(g.LogLevel)] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", g.LogLevel)
	}
	if strings.TrimSpace(g.CacheDir) == "" {
		return fmt.Errorf("cache_dir is required")
	}
	return nil
}

// LintTimeout returns the parsed lint stage timeout.
func (c *Config) LintTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Lint.Timeout)
	return d
}

// BuildTimeout returns the parsed build stage timeout.
func (c *Config) BuildTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Build.Timeout)
	return d
}

// TestTimeout returns the parsed test stage timeout.
func (c *Config) TestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Test.Timeout)
	return d
}

// StyleguideTTL returns the parsed style-guide cache TTL.
func (c *Config) StyleguideTTL() time.Duration {
	d, _ := time.ParseDuration(c.Styleguide.CacheTTL)
	return d
}
