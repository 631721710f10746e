// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package config_test

import (
	"strings"
	"testing"

	"github.com/kevherro/janus/pkg/config"
)

func validConfig() *config.Config {
	return config.DefaultConfig()
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid default",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "missing version",
			mutate:  func(c *config.Config) { c.Version = "" },
			wantErr: "version",
		},
		{
			name:    "empty env path",
			mutate:  func(c *config.Config) { c.Env.Path = "" },
			wantErr: "env path",
		},
		{
			name:    "env path is current directory",
			mutate:  func(c *config.Config) { c.Env.Path = "." },
			wantErr: "dedicated directory",
		},
		{
			name:    "blank dep command",
			mutate:  func(c *config.Config) { c.Env.Deps = []string{"  "} },
			wantErr: "deps[0]",
		},
		{
			name:    "styleguide url with bad scheme",
			mutate:  func(c *config.Config) { c.Styleguide.URL = "ftp://example.com/sg" },
			wantErr: "styleguide url",
		},
		{
			name:    "styleguide filename with separator",
			mutate:  func(c *config.Config) { c.Styleguide.Filename = "conf/sg" },
			wantErr: "path separators",
		},
		{
			name:    "bad styleguide ttl",
			mutate:  func(c *config.Config) { c.Styleguide.CacheTTL = "soon" },
			wantErr: "cache_ttl",
		},
		{
			name: "lint pass without name",
			mutate: func(c *config.Config) {
				c.Lint.Passes = []config.LintPassConfig{{Command: "go vet ./..."}}
			},
			wantErr: "name is required",
		},
		{
			name: "lint pass without command",
			mutate: func(c *config.Config) {
				c.Lint.Passes = []config.LintPassConfig{{Name: "vet"}}
			},
			wantErr: "command is required",
		},
		{
			name: "too many lint passes",
			mutate: func(c *config.Config) {
				for i := 0; i <= config.MaxLintPasses; i++ {
					c.Lint.Passes = append(c.Lint.Passes, config.LintPassConfig{Name: "p", Command: "true"})
				}
			},
			wantErr: "lint passes",
		},
		{
			name:    "unknown blocking category",
			mutate:  func(c *config.Config) { c.Lint.BlockOn = []string{"everything"} },
			wantErr: "block_on",
		},
		{
			name:    "bad lint timeout",
			mutate:  func(c *config.Config) { c.Lint.Timeout = "five minutes" },
			wantErr: "timeout",
		},
		{
			name:    "empty dist dir",
			mutate:  func(c *config.Config) { c.Build.DistDir = "" },
			wantErr: "dist_dir",
		},
		{
			name:    "bad artifact glob",
			mutate:  func(c *config.Config) { c.Build.ArtifactGlob = "[" },
			wantErr: "artifact_glob",
		},
		{
			name:    "empty test command",
			mutate:  func(c *config.Config) { c.Test.Command = "" },
			wantErr: "test command",
		},
		{
			name:    "empty temp prefix",
			mutate:  func(c *config.Config) { c.Test.TempPrefix = "" },
			wantErr: "temp_prefix",
		},
		{
			name: "hook with unknown event",
			mutate: func(c *config.Config) {
				c.Hooks = []config.HookConfig{{Name: "h", Event: "pre_everything", Command: "true"}}
			},
			wantErr: "hook event",
		},
		{
			name: "hook with negative timeout",
			mutate: func(c *config.Config) {
				c.Hooks = []config.HookConfig{{Name: "h", Event: "on_failure", Command: "true", Timeout: -1}}
			},
			wantErr: "timeout",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *config.Config) { c.Global.LogLevel = "loud" },
			wantErr: "log_level",
		},
		{
			name:    "empty cache dir",
			mutate:  func(c *config.Config) { c.Global.CacheDir = "" },
			wantErr: "cache_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidHookEvents(t *testing.T) {
	events := []string{
		"pre_setup", "post_setup", "pre_lint", "post_lint",
		"pre_build", "post_build", "pre_test", "post_test",
		"on_failure", "on_success",
	}
	for _, event := range events {
		hook := config.HookConfig{Name: "h", Event: event, Command: "true"}
		if err := hook.Validate(); err != nil {
			t.Errorf("event %q rejected: %v", event, err)
		}
	}
}
