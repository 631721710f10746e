// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package proc_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kevherro/janus/pkg/proc"
)

func TestRun(t *testing.T) {
	p := proc.NewProcess("echo hello")

	output, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if strings.TrimSpace(output) != "hello" {
		t.Errorf("output = %q, want hello", output)
	}
	if p.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", p.ExitCode())
	}
}

func TestRunEmptyCommand(t *testing.T) {
	p := proc.NewProcess("")

	if _, err := p.Run(context.Background()); !errors.Is(err, proc.ErrEmptyCommand) {
		t.Errorf("Run() error = %v, want ErrEmptyCommand", err)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	p := proc.NewProcess("exit 7")

	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Run() expected error for non-zero exit")
	}
	if p.ExitCode() != 7 {
		t.Errorf("ExitCode() = %d, want 7", p.ExitCode())
	}
}

func TestRunCapturesStderr(t *testing.T) {
	p := proc.NewProcess("echo oops >&2; exit 1")

	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Run() expected error")
	}
	if !strings.Contains(p.Stderr(), "oops") {
		t.Errorf("Stderr() = %q, want to contain oops", p.Stderr())
	}
}

func TestRunTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	p := proc.NewProcess("sleep 10")

	start := time.Now()
	_, err := p.Run(ctx)
	if !errors.Is(err, proc.ErrTimeout) {
		t.Fatalf("Run() error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run() took %v, process was not killed", elapsed)
	}
}

func TestRunWithDir(t *testing.T) {
	dir := t.TempDir()
	p := proc.NewProcess("pwd").WithDir(dir)

	output, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// On some systems the temp dir resolves through a symlink.
	if !strings.Contains(strings.TrimSpace(output), "/") {
		t.Errorf("pwd output = %q", output)
	}
}

func TestRunWithEnv(t *testing.T) {
	p := proc.NewProcess("echo $JANUS_TEST_VALUE").
		WithEnv([]string{"PATH=/usr/bin:/bin", "JANUS_TEST_VALUE=marker"})

	output, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if strings.TrimSpace(output) != "marker" {
		t.Errorf("output = %q, want marker", output)
	}
}

func TestRunTwice(t *testing.T) {
	p := proc.NewProcess("true")

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	if _, err := p.Run(context.Background()); !errors.Is(err, proc.ErrProcessAlreadyRun) {
		t.Errorf("second Run() error = %v, want ErrProcessAlreadyRun", err)
	}
}

func TestIsRunning(t *testing.T) {
	p := proc.NewProcess("sleep 5")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !p.IsRunning() {
		t.Error("IsRunning() = false for started process")
	}

	if err := p.Kill(); err != nil {
		t.Fatalf("Kill() error: %v", err)
	}
	_, _ = p.Wait(ctx)
	if p.IsRunning() {
		t.Error("IsRunning() = true after kill")
	}
}
