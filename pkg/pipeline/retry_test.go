// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package pipeline

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/kevherro/janus/pkg/errors"
)

func fastPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestExecuteSucceedsFirstTry(t *testing.T) {
	re := NewRetryExecutor(fastPolicy())

	calls := 0
	err := re.Execute(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestExecuteRetriesRetryable(t *testing.T) {
	re := NewRetryExecutor(fastPolicy())

	calls := 0
	err := re.Execute(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.DownloadError("transient", nil)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestExecuteFailsFastOnNonRetryable(t *testing.T) {
	re := NewRetryExecutor(fastPolicy())

	calls := 0
	err := re.Execute(context.Background(), func() error {
		calls++
		return errors.LintError("blocking findings", nil)
	})
	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (lint errors are not retryable)", calls)
	}
}

func TestExecuteExhaustsRetries(t *testing.T) {
	re := NewRetryExecutor(fastPolicy())

	calls := 0
	err := re.Execute(context.Background(), func() error {
		calls++
		return errors.DownloadError("still down", nil)
	})
	if !goerrors.Is(err, ErrMaxRetriesExceeded) {
		t.Fatalf("Execute() error = %v, want ErrMaxRetriesExceeded", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4 (initial try plus 3 retries)", calls)
	}
}

func TestExecuteHonorsContext(t *testing.T) {
	re := NewRetryExecutor(&RetryPolicy{
		MaxRetries:   10,
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   1.0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := re.Execute(ctx, func() error {
		return errors.DownloadError("down", nil)
	})
	if !goerrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Execute() error = %v, want context deadline", err)
	}
}
