// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package styleguide_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kevherro/janus/pkg/cache"
	"github.com/kevherro/janus/pkg/errors"
	"github.com/kevherro/janus/pkg/observability"
	"github.com/kevherro/janus/pkg/styleguide"
)

func TestFetch(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte("max-line-length = 80\n"))
	}))
	defer srv.Close()

	f := styleguide.NewFetcher(cache.NewDiskCache(t.TempDir()), nil, nil)
	dest := filepath.Join(t.TempDir(), ".styleguide")

	if err := f.Fetch(context.Background(), srv.URL, dest, time.Hour); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination not written: %v", err)
	}
	if string(data) != "max-line-length = 80\n" {
		t.Errorf("destination content = %q", data)
	}
	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestFetchServedFromCache(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte("cached content"))
	}))
	defer srv.Close()

	metrics := observability.NewMetrics()
	f := styleguide.NewFetcher(cache.NewDiskCache(t.TempDir()), nil, metrics)
	dest := filepath.Join(t.TempDir(), ".styleguide")
	ctx := context.Background()

	if err := f.Fetch(ctx, srv.URL, dest, time.Hour); err != nil {
		t.Fatalf("first Fetch() error: %v", err)
	}
	if err := os.Remove(dest); err != nil {
		t.Fatal(err)
	}
	if err := f.Fetch(ctx, srv.URL, dest, time.Hour); err != nil {
		t.Fatalf("second Fetch() error: %v", err)
	}

	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("requests = %d, want 1 (second fetch should hit the cache)", requests)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination not rewritten from cache: %v", err)
	}

	hits, misses := metrics.CacheStats()
	if hits != 1 || misses != 1 {
		t.Errorf("cache stats = %d hits, %d misses, want 1 and 1", hits, misses)
	}
}

func TestFetchExpiredCacheRedownloads(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte("content"))
	}))
	defer srv.Close()

	f := styleguide.NewFetcher(cache.NewDiskCache(t.TempDir()), nil, nil)
	dest := filepath.Join(t.TempDir(), ".styleguide")
	ctx := context.Background()

	if err := f.Fetch(ctx, srv.URL, dest, time.Nanosecond); err != nil {
		t.Fatalf("first Fetch() error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := f.Fetch(ctx, srv.URL, dest, time.Hour); err != nil {
		t.Fatalf("second Fetch() error: %v", err)
	}

	if atomic.LoadInt32(&requests) != 2 {
		t.Errorf("requests = %d, want 2 (expired entry must re-download)", requests)
	}
}

func TestFetchWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("content"))
	}))
	defer srv.Close()

	f := styleguide.NewFetcher(nil, nil, nil)
	dest := filepath.Join(t.TempDir(), ".styleguide")

	if err := f.Fetch(context.Background(), srv.URL, dest, 0); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := styleguide.NewFetcher(nil, nil, nil)
	dest := filepath.Join(t.TempDir(), ".styleguide")

	err := f.Fetch(context.Background(), srv.URL, dest, 0)
	if err == nil {
		t.Fatal("Fetch() expected error for 500 response")
	}
	if !errors.IsRetryable(err) {
		t.Errorf("server error not retryable: %v", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("destination written despite failed download")
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := styleguide.NewFetcher(nil, nil, nil)
	dest := filepath.Join(t.TempDir(), ".styleguide")

	err := f.Fetch(context.Background(), url, dest, 0)
	if err == nil {
		t.Fatal("Fetch() expected error for refused connection")
	}
	if !errors.IsRetryable(err) {
		t.Errorf("network error not retryable: %v", err)
	}
}

func TestRemove(t *testing.T) {
	f := styleguide.NewFetcher(nil, nil, nil)
	dest := filepath.Join(t.TempDir(), ".styleguide")

	// Removing a file that was never downloaded is a no-op.
	if err := f.Remove(dest); err != nil {
		t.Fatalf("Remove() of absent file: %v", err)
	}

	if err := os.WriteFile(dest, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := f.Remove(dest); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("file present after Remove()")
	}
}
