// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package proc manages the subprocesses a pipeline run spawns.
package proc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// Process manages a single shell command subprocess.
type Process struct {
	mu sync.RWMutex

	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser

	command string
	dir     string
	env     []string
	started bool
	exited  bool

	// Output buffers
	stdoutBuf bytes.Buffer
	stderrBuf bytes.Buffer

	// Wait channel
	waitCh   chan error
	exitCode int
}

// NewProcess creates a new process for the given shell command.
// The command is run via /bin/sh -c for maximum compatibility.
func NewProcess(command string) *Process {
	return &Process{
		command: command,
		waitCh:  make(chan error, 1),
	}
}

// WithDir sets the working directory for the process.
func (p *Process) WithDir(dir string) *Process {
	p.dir = dir
	return p
}

// WithEnv sets the full environment for the process.
func (p *Process) WithEnv(env []string) *Process {
	p.env = env
	return p
}

// Start starts the process.
func (p *Process) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrProcessAlreadyRun
	}
	if strings.TrimSpace(p.command) == "" {
		return ErrEmptyCommand
	}

	p.cmd = exec.CommandContext(ctx, "/bin/sh", "-c", p.command)
	if p.dir != "" {
		p.cmd.Dir = p.dir
	}
	if p.env != nil {
		p.cmd.Env = p.env
	}

	var err error
	p.stdout, err = p.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	p.stderr, err = p.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start process: %w", err)
	}

	p.started = true

	// Capture output as it arrives
	go p.captureOutput(p.stdout, &p.stdoutBuf)
	go p.captureOutput(p.stderr, &p.stderrBuf)

	go func() {
		err := p.cmd.Wait()
		p.mu.Lock()
		p.exited = true
		if p.cmd.ProcessState != nil {
			p.exitCode = p.cmd.ProcessState.ExitCode()
		}
		p.mu.Unlock()
		p.waitCh <- err
	}()

	return nil
}

// captureOutput captures output from a reader into a buffer.
// Uses raw reads instead of bufio.Scanner to avoid line length limitations.
func (p *Process) captureOutput(r io.Reader, buf *bytes.Buffer) {
	copyBuf := make([]byte, 32*1024)
	for {
		n, err := r.Read(copyBuf)
		if n > 0 {
			p.mu.Lock()
			buf.Write(copyBuf[:n])
			p.mu.Unlock()
		}
		if err != nil {
			break
		}
	}
}

// Wait waits for the process to complete and returns the captured stdout.
func (p *Process) Wait(ctx context.Context) (string, error) {
	select {
	case err := <-p.waitCh:
		p.mu.RLock()
		output := p.stdoutBuf.String()
		stderr := p.stderrBuf.String()
		exitCode := p.exitCode
		p.mu.RUnlock()

		if err != nil {
			if ctx.Err() != nil {
				return "", ErrTimeout
			}
			if stderr != "" {
				return output, fmt.Errorf("process failed (exit code %d): %s", exitCode, strings.TrimSpace(stderr))
			}
			return output, fmt.Errorf("process failed (exit code %d): %w", exitCode, err)
		}
		return output, nil

	case <-ctx.Done():
		_ = p.Kill()
		return "", ErrTimeout
	}
}

// Run starts the process and waits for completion.
func (p *Process) Run(ctx context.Context) (string, error) {
	if err := p.Start(ctx); err != nil {
		return "", err
	}
	return p.Wait(ctx)
}

// Stop gracefully stops the process.
func (p *Process) Stop() error {
	p.mu.RLock()
	if !p.started || p.exited {
		p.mu.RUnlock()
		return nil
	}
	cmd := p.cmd
	p.mu.RUnlock()

	if cmd.Process == nil {
		return nil
	}

	// Send SIGTERM for graceful shutdown
	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// Process might have already exited
		if !strings.Contains(err.Error(), "process already finished") {
			return fmt.Errorf("failed to send SIGTERM: %w", err)
		}
	}

	return nil
}

// Kill forcefully kills the process.
func (p *Process) Kill() error {
	p.mu.RLock()
	if !p.started || p.exited {
		p.mu.RUnlock()
		return nil
	}
	cmd := p.cmd
	p.mu.RUnlock()

	if cmd.Process == nil {
		return nil
	}

	if err := cmd.Process.Kill(); err != nil {
		if !strings.Contains(err.Error(), "process already finished") {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	return nil
}

// IsRunning checks if the process is running.
func (p *Process) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.started && !p.exited
}

// ExitCode returns the process exit code.
func (p *Process) ExitCode() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitCode
}

// Stdout returns the captured stdout.
func (p *Process) Stdout() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stdoutBuf.String()
}

// Stderr returns the captured stderr.
func (p *Process) Stderr() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stderrBuf.String()
}
