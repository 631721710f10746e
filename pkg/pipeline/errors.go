// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package pipeline

import (
	goerrors "errors"

	"github.com/kevherro/janus/pkg/errors"
	"github.com/kevherro/janus/pkg/proc"
)

// Exit codes
const (
	ExitSuccess       = 0   // Pipeline completed
	ExitConfigError   = 1   // Configuration or infrastructure error
	ExitSandboxError  = 2   // Sandbox setup or dependency install failed
	ExitDownloadError = 3   // Style-guide download failed after retries
	ExitLintBlocking  = 4   // Lint findings in a blocking category
	ExitBuildFailed   = 5   // Build or install failed
	ExitTestFailed    = 6   // Test suite failed
	ExitTimeout       = 101 // A stage timed out
)

// Errors
var (
	ErrNotInitialized     = goerrors.New("pipeline not bootstrapped")
	ErrAlreadyRunning     = goerrors.New("pipeline is already running")
	ErrMaxRetriesExceeded = goerrors.New("max retries exceeded")
	ErrShutdownTimeout    = goerrors.New("graceful shutdown timed out")
	ErrStageOrder         = goerrors.New("invalid stage order")
)

// ExitCodeFor maps a stage error to the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if goerrors.Is(err, proc.ErrTimeout) || errors.IsType(err, errors.ErrTimeout) {
		return ExitTimeout
	}
	switch {
	case errors.IsType(err, errors.ErrSandbox):
		return ExitSandboxError
	case errors.IsType(err, errors.ErrDownload):
		return ExitDownloadError
	case errors.IsType(err, errors.ErrLint):
		return ExitLintBlocking
	case errors.IsType(err, errors.ErrBuild):
		return ExitBuildFailed
	case errors.IsType(err, errors.ErrTest):
		return ExitTestFailed
	default:
		return ExitConfigError
	}
}
