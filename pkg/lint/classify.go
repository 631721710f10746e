// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package lint classifies lint-tool exit statuses by finding severity.
//
// Linters following the pylint exit-status convention encode the categories
// of findings in a bitmask: each bit set in the (1..63) exit status marks
// one category present in the report. The classifier decodes the mask and
// decides whether the run may continue to the build stage or must abort.
package lint

import (
	"fmt"
	"sort"
	"strings"
)

// Category is one finding-severity bit in a lint exit status.
type Category int

const (
	CategoryFatal      Category = 1 << iota // 1: parse/abort failure
	CategoryError                           // 2: probable bug
	CategoryWarning                         // 4: stylistic or minor problem
	CategoryRefactor                        // 8: code-smell finding
	CategoryConvention                      // 16: style-guide deviation
	CategoryUsage                           // 32: the tool itself was misused
)

// maxExitStatus is the largest exit status representable by the bitmask.
const maxExitStatus = 63

var categoryNames = map[Category]string{
	CategoryFatal:      "fatal",
	CategoryError:      "error",
	CategoryWarning:    "warning",
	CategoryRefactor:   "refactor",
	CategoryConvention: "convention",
	CategoryUsage:      "usage",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory parses a category name as used in configuration files.
func ParseCategory(s string) (Category, error) {
	for cat, name := range categoryNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return cat, nil
		}
	}
	return 0, fmt.Errorf("unknown lint category: %q", s)
}

// DefaultBlocking is the default set of categories that abort the pipeline.
// Warnings, refactor findings, and convention findings are reported but do
// not block.
func DefaultBlocking() []Category {
	return []Category{CategoryFatal, CategoryError, CategoryUsage}
}

// Classification is the decoded verdict for one lint pass.
type Classification struct {
	// ExitStatus is the raw exit status of the lint tool.
	ExitStatus int
	// Categories are the finding categories present, in ascending bit order.
	Categories []Category
	// Blocking reports whether any present category is configured to abort.
	Blocking bool
	// Crashed reports an exit status outside the bitmask range, which means
	// the tool itself failed rather than reporting findings.
	Crashed bool
}

// Clean reports a fully clean pass.
func (c Classification) Clean() bool {
	return !c.Crashed && len(c.Categories) == 0
}

// String renders the verdict for log output.
func (c Classification) String() string {
	if c.Crashed {
		return fmt.Sprintf("crashed (exit status %d)", c.ExitStatus)
	}
	if len(c.Categories) == 0 {
		return "clean"
	}
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.String()
	}
	verdict := "non-blocking"
	if c.Blocking {
		verdict = "blocking"
	}
	return fmt.Sprintf("%s [%s]", verdict, strings.Join(names, ", "))
}

// Classify decodes a lint exit status against the configured blocking set.
// A nil blockOn uses DefaultBlocking.
func Classify(exitStatus int, blockOn []Category) Classification {
	if blockOn == nil {
		blockOn = DefaultBlocking()
	}

	cls := Classification{ExitStatus: exitStatus}

	// Statuses outside the bitmask range mean the tool crashed or was
	// killed; treat as blocking.
	if exitStatus < 0 || exitStatus > maxExitStatus {
		cls.Crashed = true
		cls.Blocking = true
		return cls
	}

	blocking := make(map[Category]bool, len(blockOn))
	for _, cat := range blockOn {
		blocking[cat] = true
	}

	for cat := CategoryFatal; cat <= CategoryUsage; cat <<= 1 {
		if exitStatus&int(cat) == 0 {
			continue
		}
		cls.Categories = append(cls.Categories, cat)
		if blocking[cat] {
			cls.Blocking = true
		}
	}

	sort.Slice(cls.Categories, func(i, j int) bool {
		return cls.Categories[i] < cls.Categories[j]
	})

	return cls
}
