// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package observability

import (
	"sync"
	"time"
)

// StageSample records a single stage execution.
type StageSample struct {
	Stage    string
	Duration time.Duration
	Success  bool
}

// Metrics collects per-stage timing for a pipeline run.
type Metrics struct {
	mu sync.Mutex

	samples   []StageSample
	cacheHits int
	cacheMiss int
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordStage records a stage execution.
func (m *Metrics) RecordStage(stage string, duration time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, StageSample{Stage: stage, Duration: duration, Success: success})
}

// RecordCacheHit records a cache hit/miss for the style-guide cache.
func (m *Metrics) RecordCacheHit(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.cacheHits++
	} else {
		m.cacheMiss++
	}
}

// Stages returns a copy of the recorded samples in execution order.
func (m *Metrics) Stages() []StageSample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]StageSample, len(m.samples))
	copy(out, m.samples)
	return out
}

// Total returns the summed duration of all recorded stages.
func (m *Metrics) Total() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total time.Duration
	for _, s := range m.samples {
		total += s.Duration
	}
	return total
}

// CacheStats returns hit and miss counts.
func (m *Metrics) CacheStats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits, m.cacheMiss
}
