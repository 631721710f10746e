// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package testrun executes the test suite against the installed artifact.
//
// The suite deliberately runs from a temporary directory outside the
// source tree: the tree under test is a copy of what the build stage
// installed into the sandbox, so a passing run proves the artifact, not
// the working copy.
package testrun

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevherro/janus/pkg/errors"
	"github.com/kevherro/janus/pkg/observability"
	"github.com/kevherro/janus/pkg/proc"
)

// Options configures a test run.
type Options struct {
	// InstalledRoot is the artifact tree installed into the sandbox.
	InstalledRoot string
	// Command is the test command, run with the copy as working directory.
	Command string
	// TempPrefix names the temporary directory.
	TempPrefix string
	// Env is the process environment (normally the sandbox environment).
	Env []string
	// SourceDir is the working copy; the run refuses to execute inside it.
	SourceDir string
}

// Result is the outcome of a test run.
type Result struct {
	Output   string
	ExitCode int
	// Dir is the temporary directory the suite ran from (removed on return).
	Dir string
}

// Runner runs test suites.
type Runner struct {
	log observability.Logger
}

// NewRunner creates a test runner.
func NewRunner(log observability.Logger) *Runner {
	if log == nil {
		log = observability.Nop()
	}
	return &Runner{log: log}
}

// Run copies the installed tree into a fresh temp directory, runs the
// test command there, and removes the directory afterwards.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.InstalledRoot == "" {
		return nil, errors.TestError("no installed artifact to test", nil)
	}

	tmpDir, err := os.MkdirTemp("", opts.TempPrefix)
	if err != nil {
		return nil, errors.TestError("failed to create test directory", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := r.ensureOutsideSource(tmpDir, opts.SourceDir); err != nil {
		return nil, err
	}

	if err := copyTree(opts.InstalledRoot, tmpDir); err != nil {
		return nil, errors.TestError("failed to stage installed artifact", err)
	}

	r.log.Info("running test suite",
		observability.String("command", opts.Command),
		observability.String("dir", tmpDir))

	p := proc.NewProcess(opts.Command).WithDir(tmpDir).WithEnv(opts.Env)
	output, runErr := p.Run(ctx)

	result := &Result{
		Output:   output,
		ExitCode: p.ExitCode(),
		Dir:      tmpDir,
	}

	if runErr != nil {
		if runErr == proc.ErrTimeout {
			return result, errors.TimeoutError("test suite timed out", runErr)
		}
		return result, errors.TestError(
			fmt.Sprintf("test suite failed (exit code %d)", result.ExitCode), runErr)
	}
	return result, nil
}

// ensureOutsideSource rejects a test directory inside the source tree.
func (r *Runner) ensureOutsideSource(testDir, sourceDir string) error {
	if sourceDir == "" {
		return nil
	}
	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}
	absTest, err := filepath.Abs(testDir)
	if err != nil {
		return err
	}
	if absTest == absSource || strings.HasPrefix(absTest, absSource+string(os.PathSeparator)) {
		return errors.TestError(
			fmt.Sprintf("test directory %s is inside the source tree %s", absTest, absSource), nil)
	}
	return nil
}

// copyTree copies a directory tree of regular files.
func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}
		target := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode()&0o777)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}
