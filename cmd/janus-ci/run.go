// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package main

import (
	"os"

	"github.com/kevherro/janus/pkg/pipeline"
	"github.com/kevherro/janus/pkg/report"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full CI pipeline",
	Long: `Run every pipeline stage in order: setup, deps, styleguide, lint,
build, test, teardown.

The first failing stage aborts the remainder, except teardown, which
always runs unless --keep-env is given. Build artifacts are left in the
dist directory either way.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := pipeline.NewWithOptions(&pipeline.Options{
			ConfigPath: runOpts.config,
			WorkDir:    runOpts.workDir,
			Verbose:    runOpts.verbose,
			DryRun:     runOpts.dryRun,
			KeepEnv:    runOpts.keepEnv,
			SkipLint:   runOpts.skipLint,
		})

		ctx := cmd.Context()
		if err := runner.Bootstrap(ctx); err != nil {
			return err
		}

		summary, err := runner.Run(ctx)
		if summary != nil {
			f := report.NewFormatter(runOpts.noColor)
			if runOpts.markdown {
				if _, werr := os.Stdout.WriteString(f.Markdown(summary)); werr != nil {
					return werr
				}
			} else {
				f.Terminal(os.Stdout, summary)
			}
		}
		return err
	},
}

// runFlags holds the flags for the run command
type runFlags struct {
	config   string
	workDir  string
	verbose  bool
	dryRun   bool
	keepEnv  bool
	skipLint bool
	noColor  bool
	markdown bool
}

var runOpts runFlags

func init() {
	rootCmd.AddCommand(runCmd)

	// Local flags for the run command
	runCmd.Flags().StringVarP(&runOpts.config, "config", "c", "", "Path to configuration file")
	runCmd.Flags().StringVarP(&runOpts.workDir, "dir", "C", ".", "Working directory (the source tree)")
	runCmd.Flags().BoolVarP(&runOpts.verbose, "verbose", "v", false, "Verbose output")
	runCmd.Flags().BoolVar(&runOpts.dryRun, "dry-run", false, "Show what would be done without doing it")
	runCmd.Flags().BoolVar(&runOpts.keepEnv, "keep-env", false, "Keep the sandbox after the run")
	runCmd.Flags().BoolVar(&runOpts.skipLint, "skip-lint", false, "Skip the lint passes")
	runCmd.Flags().BoolVar(&runOpts.noColor, "no-color", false, "Disable colored output")
	runCmd.Flags().BoolVar(&runOpts.markdown, "markdown", false, "Emit the summary as Markdown")
}
