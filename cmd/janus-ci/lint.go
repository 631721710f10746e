// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package main

import (
	"fmt"
	"strings"

	"github.com/kevherro/janus/pkg/errors"
	"github.com/kevherro/janus/pkg/lint"
	"github.com/kevherro/janus/pkg/pipeline"
	"github.com/spf13/cobra"
)

// lintCmd runs the lint stage on its own, with the tool install and
// style-guide download it depends on.
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Run the lint passes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeStages(cmd,
			pipeline.StageDeps, pipeline.StageStyleguide, pipeline.StageLint)
	},
}

// classifyCmd decodes a linter exit status into finding categories.
var classifyCmd = &cobra.Command{
	Use:   "classify <exit-status>",
	Short: "Decode a linter exit status",
	Long: `Decode a linter exit status into its finding categories.

The status is a bitmask: fatal=1, error=2, warning=4, refactor=8,
convention=16, usage=32. A status outside 0..63 means the linter
crashed. The command exits non-zero when the status carries a blocking
category (by default fatal, error or usage; override with --block-on).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var status int
		if _, err := fmt.Sscanf(args[0], "%d", &status); err != nil {
			return fmt.Errorf("invalid exit status %q: %w", args[0], err)
		}

		blockOn := lint.DefaultBlocking()
		if len(lintOpts.blockOn) > 0 {
			blockOn = blockOn[:0]
			for _, name := range lintOpts.blockOn {
				cat, err := lint.ParseCategory(name)
				if err != nil {
					return err
				}
				blockOn = append(blockOn, cat)
			}
		}

		cls := lint.Classify(status, blockOn)
		fmt.Println(cls.String())
		if cls.Blocking {
			return errors.LintError("blocking findings", nil)
		}
		return nil
	},
}

type lintFlags struct {
	blockOn []string
}

var lintOpts lintFlags

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringSliceVar(&lintOpts.blockOn, "block-on", nil,
		"Blocking categories (default fatal,error,usage): "+strings.Join([]string{"fatal", "error", "warning", "refactor", "convention", "usage"}, ","))
}
