// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/kevherro/janus/pkg/hooks"
)

// Well-known stage names, in canonical execution order.
const (
	StageSetup      = "setup"
	StageDeps       = "deps"
	StageStyleguide = "styleguide"
	StageLint       = "lint"
	StageBuild      = "build"
	StageTest       = "test"
	StageTeardown   = "teardown"
)

// Stage is one step of the pipeline.
type Stage struct {
	Name string
	// PreEvent and PostEvent trigger hooks around the stage.
	PreEvent  hooks.EventType
	PostEvent hooks.EventType
	// Timeout bounds the stage. Zero means no stage-level timeout.
	Timeout time.Duration
	// Skip marks the stage as skipped with the given reason.
	Skip       bool
	SkipReason string
	// Run executes the stage and returns a human-readable detail line.
	Run func(ctx context.Context) (string, error)
}

// orderings that must hold between well-known stages. The test stage in
// particular must never run before build-and-install, or it would
// exercise the working copy instead of the installed artifact.
var stageOrderings = [][2]string{
	{StageSetup, StageDeps},
	{StageDeps, StageLint},
	{StageStyleguide, StageLint},
	{StageBuild, StageTest},
	{StageTest, StageTeardown},
}

// validateStageOrder rejects stage lists that violate the pipeline's
// ordering constraints.
func validateStageOrder(stages []Stage) error {
	index := make(map[string]int, len(stages))
	for i, st := range stages {
		if _, dup := index[st.Name]; dup {
			return fmt.Errorf("%w: duplicate stage %q", ErrStageOrder, st.Name)
		}
		index[st.Name] = i
	}

	for _, pair := range stageOrderings {
		before, after := pair[0], pair[1]
		bi, haveBefore := index[before]
		ai, haveAfter := index[after]
		if haveBefore && haveAfter && bi > ai {
			return fmt.Errorf("%w: %q must precede %q", ErrStageOrder, before, after)
		}
	}

	if n := len(stages); n > 0 {
		if i, ok := index[StageSetup]; ok && i != 0 {
			return fmt.Errorf("%w: %q must run first", ErrStageOrder, StageSetup)
		}
		if i, ok := index[StageTeardown]; ok && i != n-1 {
			return fmt.Errorf("%w: %q must run last", ErrStageOrder, StageTeardown)
		}
	}

	return nil
}
