// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package hooks runs user-configured commands around pipeline stages.
package hooks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kevherro/janus/pkg/observability"
	"github.com/kevherro/janus/pkg/proc"
)

// EventType represents the event that triggers a hook.
type EventType string

const (
	EventPreSetup  EventType = "pre_setup"
	EventPostSetup EventType = "post_setup"
	EventPreLint   EventType = "pre_lint"
	EventPostLint  EventType = "post_lint"
	EventPreBuild  EventType = "pre_build"
	EventPostBuild EventType = "post_build"
	EventPreTest   EventType = "pre_test"
	EventPostTest  EventType = "post_test"
	EventOnFailure EventType = "on_failure"
	EventOnSuccess EventType = "on_success"
)

// Hook is one registered command hook.
type Hook struct {
	ID      string
	Name    string
	Event   EventType
	Command string
	Enabled bool
	// Timeout in seconds. Zero uses the default.
	Timeout int
	// Env is the environment the command runs with.
	Env []string
}

// Result represents the result of a hook execution.
type Result struct {
	HookID   string
	Name     string
	Success  bool
	Error    string
	Duration time.Duration
	Output   string
}

// Registry manages the hooks of a pipeline run.
type Registry struct {
	mu    sync.RWMutex
	hooks map[EventType][]*Hook
	log   observability.Logger
}

// NewRegistry creates a new hook registry.
func NewRegistry(log observability.Logger) *Registry {
	if log == nil {
		log = observability.Nop()
	}
	return &Registry{
		hooks: make(map[EventType][]*Hook),
		log:   log,
	}
}

// Register registers a new hook.
func (r *Registry) Register(hook *Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hook.ID == "" {
		hook.ID = uuid.NewString()
	}
	if hook.Timeout == 0 {
		hook.Timeout = 30
	}

	r.hooks[hook.Event] = append(r.hooks[hook.Event], hook)
}

// Hooks returns all hooks for an event type.
func (r *Registry) Hooks(event EventType) []*Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hooks := r.hooks[event]
	out := make([]*Hook, len(hooks))
	copy(out, hooks)
	return out
}

// Trigger runs all enabled hooks for an event in registration order.
// Hook failures are reported but never abort the pipeline.
func (r *Registry) Trigger(ctx context.Context, event EventType) []*Result {
	hooks := r.Hooks(event)

	results := make([]*Result, 0, len(hooks))
	for _, hook := range hooks {
		if !hook.Enabled {
			continue
		}
		result := r.executeHook(ctx, hook)
		if !result.Success {
			r.log.Warn("hook failed",
				observability.String("hook", hook.Name),
				observability.String("event", string(event)),
				observability.String("error", result.Error))
		}
		results = append(results, result)
	}
	return results
}

// executeHook executes a single hook command with its timeout.
func (r *Registry) executeHook(ctx context.Context, hook *Hook) *Result {
	start := time.Now()
	result := &Result{HookID: hook.ID, Name: hook.Name}

	hookCtx, cancel := context.WithTimeout(ctx, time.Duration(hook.Timeout)*time.Second)
	defer cancel()

	p := proc.NewProcess(hook.Command).WithEnv(hook.Env)
	output, err := p.Run(hookCtx)

	result.Duration = time.Since(start)
	result.Output = output
	result.Success = err == nil
	if err != nil {
		result.Error = err.Error()
	}
	return result
}
