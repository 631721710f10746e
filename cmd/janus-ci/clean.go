// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kevherro/janus/pkg/config"
	"github.com/kevherro/janus/pkg/observability"
	"github.com/kevherro/janus/pkg/sandbox"
	"github.com/spf13/cobra"
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the sandbox, downloaded style guide and cache",
	Long: `Remove everything a previous run may have left behind: the tool
sandbox, the downloaded style-guide file and, with --cache, the
download cache. Build artifacts in the dist directory are kept.

Safe to run when nothing is present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cleanOpts.config)
		if err != nil {
			return err
		}

		log := observability.NewLogger(cfg.Global.LogLevel)
		box := sandbox.New(filepath.Join(cleanOpts.workDir, cfg.Env.Path), log)
		if err := box.Remove(); err != nil {
			return err
		}

		dest := filepath.Join(cleanOpts.workDir, cfg.Styleguide.Filename)
		if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
			return err
		}

		if cleanOpts.cache {
			cacheDir := filepath.Join(cleanOpts.workDir, cfg.Global.CacheDir)
			if err := os.RemoveAll(cacheDir); err != nil {
				return err
			}
		}

		fmt.Println("clean")
		return nil
	},
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

type cleanFlags struct {
	config  string
	workDir string
	cache   bool
}

var cleanOpts cleanFlags

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVarP(&cleanOpts.config, "config", "c", "", "Path to configuration file")
	cleanCmd.Flags().StringVarP(&cleanOpts.workDir, "dir", "C", ".", "Working directory (the source tree)")
	cleanCmd.Flags().BoolVar(&cleanOpts.cache, "cache", false, "Also remove the download cache")
}
