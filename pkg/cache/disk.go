// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache is a disk-based cache. Each entry is a JSON envelope stored
// under the cache directory, named by the SHA-256 of its key.
type DiskCache struct {
	path string
}

// NewDiskCache creates a new disk cache rooted at path.
func NewDiskCache(path string) *DiskCache {
	return &DiskCache{path: path}
}

// Get retrieves a value from disk cache.
// Expired entries are removed and reported as a miss.
func (d *DiskCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(d.entryPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry, drop it.
		_ = os.Remove(d.entryPath(key))
		return nil, ErrCacheMiss
	}

	if entry.Expired(time.Now()) {
		_ = os.Remove(d.entryPath(key))
		return nil, ErrCacheMiss
	}

	return entry.Value, nil
}

// Set stores a value in disk cache. A zero ttl means the entry never expires.
func (d *DiskCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	entry := Entry{Key: key, Value: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		return err
	}

	// Write-then-rename so a concurrent reader never sees a partial entry.
	tmp := d.entryPath(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return os.Rename(tmp, d.entryPath(key))
}

// Delete removes a value from disk cache.
func (d *DiskCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(d.entryPath(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes all entries from disk cache.
func (d *DiskCache) Clear(ctx context.Context) error {
	err := os.RemoveAll(d.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (d *DiskCache) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(d.path, hex.EncodeToString(sum[:])+".json")
}
