// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package report formats pipeline run results.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Status is the outcome of one stage.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StageResult is one row of the run summary.
type StageResult struct {
	Stage    string
	Status   Status
	Duration time.Duration
	// Detail carries the lint verdict, artifact path, or failure reason.
	Detail string
}

// Summary is the full result of a pipeline run.
type Summary struct {
	RunID    string
	Stages   []StageResult
	Duration time.Duration
	Success  bool
}

// Formatter renders run summaries.
type Formatter struct {
	noColor bool
}

// NewFormatter creates a formatter.
func NewFormatter(noColor bool) *Formatter {
	return &Formatter{noColor: noColor}
}

// Terminal writes a human-readable summary to w.
func (f *Formatter) Terminal(w io.Writer, s *Summary) {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	if f.noColor {
		green.DisableColor()
		red.DisableColor()
		yellow.DisableColor()
	}

	fmt.Fprintf(w, "\nrun %s\n", s.RunID)
	for _, st := range s.Stages {
		var label string
		switch st.Status {
		case StatusPassed:
			label = green.Sprint("PASS")
		case StatusFailed:
			label = red.Sprint("FAIL")
		case StatusSkipped:
			label = yellow.Sprint("SKIP")
		}
		line := fmt.Sprintf("  %s  %-12s %s", label, st.Stage, st.Duration.Round(time.Millisecond))
		if st.Detail != "" {
			line += "  " + st.Detail
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "\ntotal %s: ", s.Duration.Round(time.Millisecond))
	if s.Success {
		fmt.Fprintln(w, green.Sprint("success"))
	} else {
		fmt.Fprintln(w, red.Sprint("failure"))
	}
}

// Markdown renders the summary as a markdown table for CI comments.
func (f *Formatter) Markdown(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## janus-ci run `%s`\n\n", s.RunID)
	b.WriteString("| Stage | Status | Duration | Detail |\n")
	b.WriteString("|-------|--------|----------|--------|\n")
	for _, st := range s.Stages {
		emoji := statusEmoji(st.Status)
		fmt.Fprintf(&b, "| %s | %s %s | %s | %s |\n",
			st.Stage, emoji, st.Status, st.Duration.Round(time.Millisecond), st.Detail)
	}

	verdict := "✅ success"
	if !s.Success {
		verdict = "❌ failure"
	}
	fmt.Fprintf(&b, "\n**Total**: %s, %s\n", s.Duration.Round(time.Millisecond), verdict)
	return b.String()
}

func statusEmoji(s Status) string {
	switch s {
	case StatusPassed:
		return "✅"
	case StatusFailed:
		return "❌"
	case StatusSkipped:
		return "⏭️"
	default:
		return ""
	}
}
