// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package main provides the janus-ci CLI application.
package main

import (
	"github.com/kevherro/janus/pkg/pipeline"
	"github.com/kevherro/janus/pkg/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "janus-ci",
	Short: "CI pipeline runner for the janus library",
	Long: `janus-ci runs the continuous-integration pipeline for janus:
it prepares an isolated tool environment, installs the lint tooling,
runs the lint passes, builds and installs the distributable artifact,
and runs the test suite from outside the source tree.

Each stage is fail-fast. Teardown always runs, so repeated invocations
start from a clean slate.`,
	Version:       version.FullString(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	return pipeline.ExitCodeFor(err)
}
