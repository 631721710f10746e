// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package sandbox manages the isolated, disposable environment a pipeline
// run installs tools and artifacts into.
package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kevherro/janus/pkg/errors"
	"github.com/kevherro/janus/pkg/observability"
	"github.com/kevherro/janus/pkg/proc"
)

const manifestName = "manifest.json"

// Manifest records the identity of a sandbox on disk.
type Manifest struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Installed []string  `json:"installed,omitempty"`
}

// Sandbox is an isolated environment rooted at a fixed path.
// Binaries installed during the deps stage land in bin/, artifacts
// installed during the build stage land in lib/.
type Sandbox struct {
	path     string
	log      observability.Logger
	manifest Manifest
}

// New creates a handle for the sandbox at path. The directory is not
// touched until Create is called.
func New(path string, log observability.Logger) *Sandbox {
	if log == nil {
		log = observability.Nop()
	}
	return &Sandbox{path: path, log: log}
}

// Path returns the sandbox root.
func (s *Sandbox) Path() string {
	return s.path
}

// BinDir returns the tool-installation directory.
func (s *Sandbox) BinDir() string {
	return filepath.Join(s.path, "bin")
}

// LibDir returns the artifact-installation directory.
func (s *Sandbox) LibDir() string {
	return filepath.Join(s.path, "lib")
}

// Exists reports whether a sandbox is present at the path.
func (s *Sandbox) Exists() bool {
	_, err := os.Stat(filepath.Join(s.path, manifestName))
	return err == nil
}

// Create builds a fresh sandbox, replacing any previous one at the same
// path so repeated runs start from identical state.
func (s *Sandbox) Create(ctx context.Context) error {
	if err := s.Remove(); err != nil {
		return err
	}

	for _, dir := range []string{s.BinDir(), s.LibDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.SandboxError(fmt.Sprintf("failed to create %s", dir), err)
		}
	}

	s.manifest = Manifest{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.writeManifest(); err != nil {
		return err
	}

	s.log.Debug("sandbox created",
		observability.String("path", s.path),
		observability.String("id", s.manifest.ID))
	return nil
}

// InstallDeps runs the tool-installation commands inside the sandbox.
// Commands run in the working directory with the sandbox environment, so
// installers that honor GOBIN/PATH land their binaries in bin/.
func (s *Sandbox) InstallDeps(ctx context.Context, commands []string) error {
	for _, command := range commands {
		s.log.Info("installing dependency", observability.String("command", command))

		p := proc.NewProcess(command).WithEnv(s.Environ())
		if _, err := p.Run(ctx); err != nil {
			return errors.SandboxError(fmt.Sprintf("dependency install failed: %s", command), err)
		}

		s.manifest.Installed = append(s.manifest.Installed, command)
	}
	return s.writeManifest()
}

// Environ returns the process environment for commands run inside the
// sandbox: bin/ is prepended to PATH and GOBIN points into the sandbox.
func (s *Sandbox) Environ() []string {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		abs = s.path
	}
	bin := filepath.Join(abs, "bin")

	env := []string{}
	for _, kv := range os.Environ() {
		if len(kv) >= 5 && kv[:5] == "PATH=" {
			env = append(env, "PATH="+bin+string(os.PathListSeparator)+kv[5:])
			continue
		}
		env = append(env, kv)
	}
	env = append(env,
		"GOBIN="+bin,
		"JANUS_ENV="+abs,
	)
	return env
}

// Remove tears the sandbox down. Removing an absent sandbox is a no-op.
func (s *Sandbox) Remove() error {
	if err := os.RemoveAll(s.path); err != nil {
		return errors.SandboxError("failed to remove sandbox", err)
	}
	return nil
}

// ReadManifest loads the manifest of an existing sandbox.
func (s *Sandbox) ReadManifest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.path, manifestName))
	if err != nil {
		return nil, errors.SandboxError("failed to read sandbox manifest", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.SandboxError("corrupt sandbox manifest", err)
	}
	return &m, nil
}

func (s *Sandbox) writeManifest() error {
	data, err := json.MarshalIndent(&s.manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.path, manifestName), data, 0o644); err != nil {
		return errors.SandboxError("failed to write sandbox manifest", err)
	}
	return nil
}
