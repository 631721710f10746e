// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package styleguide fetches the lint-configuration file the lint passes
// read. The file lives in the working directory only for the duration of
// a run; a disk cache avoids re-downloading it on every run.
package styleguide

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/kevherro/janus/pkg/cache"
	"github.com/kevherro/janus/pkg/errors"
	"github.com/kevherro/janus/pkg/observability"
	"github.com/schollz/progressbar/v3"
)

// Fetcher downloads style-guide files with caching.
type Fetcher struct {
	client  *http.Client
	cache   cache.Cache
	keys    *cache.KeyGenerator
	log     observability.Logger
	metrics *observability.Metrics

	// ShowProgress renders a download progress bar on stderr.
	ShowProgress bool
}

// NewFetcher creates a fetcher backed by the given cache.
// A nil cache disables caching.
func NewFetcher(c cache.Cache, log observability.Logger, metrics *observability.Metrics) *Fetcher {
	if log == nil {
		log = observability.Nop()
	}
	return &Fetcher{
		client:  &http.Client{Timeout: 2 * time.Minute},
		cache:   c,
		keys:    cache.NewKeyGenerator(),
		log:     log,
		metrics: metrics,
	}
}

// Fetch places the style guide at dest in the working directory,
// from cache when a fresh copy exists, otherwise over HTTP.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string, ttl time.Duration) error {
	if f.cache != nil {
		key := f.keys.GenerateForURL(url)
		if data, err := f.cache.Get(ctx, key); err == nil {
			if f.metrics != nil {
				f.metrics.RecordCacheHit(true)
			}
			f.log.Debug("style guide served from cache", observability.String("url", url))
			return writeDest(dest, data)
		}
		if f.metrics != nil {
			f.metrics.RecordCacheHit(false)
		}
	}

	data, err := f.download(ctx, url)
	if err != nil {
		return err
	}

	if f.cache != nil {
		key := f.keys.GenerateForURL(url)
		if err := f.cache.Set(ctx, key, data, ttl); err != nil {
			// Cache failures never fail the run
			f.log.Warn("failed to cache style guide", observability.Err(err))
		}
	}

	return writeDest(dest, data)
}

// download performs a single HTTP fetch. Network and server failures are
// typed retryable so the pipeline's retry executor can back off and retry.
func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid style guide url: %s", url), err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.DownloadError(fmt.Sprintf("failed to fetch %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.DownloadError(
			fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, url), nil)
	}

	var buf bytes.Buffer
	var w io.Writer = &buf
	if f.ShowProgress {
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading style guide")
		w = io.MultiWriter(&buf, bar)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return nil, errors.DownloadError(fmt.Sprintf("failed to read %s", url), err)
	}

	f.log.Info("style guide downloaded",
		observability.String("url", url),
		observability.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// Remove deletes the working-directory copy. Removing an absent file is a
// no-op so teardown stays idempotent.
func (f *Fetcher) Remove(dest string) error {
	err := os.Remove(dest)
	if err != nil && !os.IsNotExist(err) {
		return errors.SandboxError(fmt.Sprintf("failed to remove style guide %s", dest), err)
	}
	return nil
}

func writeDest(dest string, data []byte) error {
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return errors.DownloadError(fmt.Sprintf("failed to write style guide %s", dest), err)
	}
	return nil
}
