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

// buildCmd runs the build stage on its own.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the artifact and install it into the sandbox",
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeStages(cmd, pipeline.StageBuild)
	},
}

// testCmd runs build and test. The suite always exercises the installed
// artifact, so build cannot be skipped.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Build, install, and run the test suite",
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeStages(cmd, pipeline.StageBuild, pipeline.StageTest)
	},
}

type stageFlags struct {
	config  string
	workDir string
	verbose bool
}

var stageOpts stageFlags

// executeStages runs a partial pipeline limited to the given stages.
// Setup and teardown wrap them so the sandbox lifecycle stays intact.
func executeStages(cmd *cobra.Command, stages ...string) error {
	runner := pipeline.NewWithOptions(&pipeline.Options{
		ConfigPath: stageOpts.config,
		WorkDir:    stageOpts.workDir,
		Verbose:    stageOpts.verbose,
		Stages:     stages,
	})

	ctx := cmd.Context()
	if err := runner.Bootstrap(ctx); err != nil {
		return err
	}

	summary, err := runner.Run(ctx)
	if summary != nil {
		report.NewFormatter(false).Terminal(os.Stdout, summary)
	}
	return err
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(testCmd)

	for _, c := range []*cobra.Command{buildCmd, testCmd, lintCmd} {
		c.Flags().StringVarP(&stageOpts.config, "config", "c", "", "Path to configuration file")
		c.Flags().StringVarP(&stageOpts.workDir, "dir", "C", ".", "Working directory (the source tree)")
		c.Flags().BoolVarP(&stageOpts.verbose, "verbose", "v", false, "Verbose output")
	}
}
