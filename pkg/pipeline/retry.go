// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/kevherro/janus/pkg/errors"
)

// RetryPolicy defines the retry strategy for transient failures.
type RetryPolicy struct {
	MaxRetries   int           // Maximum number of retries (default: 3)
	InitialDelay time.Duration // Initial delay between retries (default: 1s)
	MaxDelay     time.Duration // Maximum delay between retries (default: 10s)
	Multiplier   float64       // Delay multiplier for exponential backoff (default: 2.0)
}

// DefaultRetryPolicy returns the default retry policy.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

// RetryExecutor executes functions with retry logic.
// Only errors the taxonomy marks retryable are retried; everything else
// propagates immediately (fail-fast).
type RetryExecutor struct {
	policy *RetryPolicy
}

// NewRetryExecutor creates a new retry executor with the given policy.
func NewRetryExecutor(policy *RetryPolicy) *RetryExecutor {
	if policy == nil {
		policy = DefaultRetryPolicy()
	}
	return &RetryExecutor{policy: policy}
}

// Execute executes the given function with retry logic.
func (re *RetryExecutor) Execute(ctx context.Context, fn func() error) error {
	var lastErr error
	delay := re.policy.InitialDelay

	for attempt := 0; attempt <= re.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}

			// Exponential backoff
			delay = time.Duration(float64(delay) * re.policy.Multiplier)
			if delay > re.policy.MaxDelay {
				delay = re.policy.MaxDelay
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		if !errors.IsRetryable(err) {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
}
