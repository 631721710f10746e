// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// Locate finds the newest artifact in distDir matching the glob.
// The build stage may leave older artifacts behind; the most recently
// modified one is the artifact of this run.
func Locate(distDir, glob string) (string, error) {
	if _, err := os.Stat(distDir); os.IsNotExist(err) {
		return "", fmt.Errorf("dist directory does not exist: %s", distDir)
	}

	matches, err := filepath.Glob(filepath.Join(distDir, glob))
	if err != nil {
		return "", fmt.Errorf("invalid artifact glob %q: %w", glob, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no artifact matching %q in %s", glob, distDir)
	}

	newest := ""
	var newestMod int64
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = match
			newestMod = mod
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no artifact matching %q in %s", glob, distDir)
	}

	return newest, nil
}
