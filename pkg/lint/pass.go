// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package lint

// Pass is one configured lint invocation with a fixed rule subset.
type Pass struct {
	// Name identifies the pass in logs and reports.
	Name string
	// Command is the shell command to run.
	Command string
}

// PassResult is the outcome of one executed pass.
type PassResult struct {
	Pass           Pass
	Classification Classification
	Output         string
}

// Report aggregates the results of all lint passes in a run.
type Report struct {
	Results []PassResult
}

// Blocking returns the passes that produced a blocking classification.
func (r *Report) Blocking() []PassResult {
	var blocking []PassResult
	for _, res := range r.Results {
		if res.Classification.Blocking {
			blocking = append(blocking, res)
		}
	}
	return blocking
}

// Clean reports whether every pass came back clean.
func (r *Report) Clean() bool {
	for _, res := range r.Results {
		if !res.Classification.Clean() {
			return false
		}
	}
	return true
}
