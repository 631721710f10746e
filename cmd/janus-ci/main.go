// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package main is the entry point for the janus-ci CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
