// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package proc

import "errors"

// Errors
var (
	ErrEmptyCommand      = errors.New("command is empty")
	ErrProcessNotRunning = errors.New("process is not running")
	ErrProcessAlreadyRun = errors.New("process has already been started")
	ErrTimeout           = errors.New("execution timed out")
)
