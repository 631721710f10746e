// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package artifact builds, locates, and installs the distributable
// artifact the test stage runs against.
package artifact

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Packer creates distributable source archives.
type Packer struct {
	// Exclude lists directory names skipped while packing. The dist
	// directory and the sandbox must always be excluded or the archive
	// would recursively contain itself.
	Exclude []string
}

// NewPacker creates a packer with the standard exclusions.
func NewPacker(exclude ...string) *Packer {
	base := []string{".git", "dist"}
	return &Packer{Exclude: append(base, exclude...)}
}

// Pack archives sourceDir into distDir/name-version.tar.gz and returns
// the artifact path.
func (p *Packer) Pack(sourceDir, distDir, name, version string) (string, error) {
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create dist directory: %w", err)
	}

	cleanVersion := strings.TrimPrefix(version, "v")
	tarballPath := filepath.Join(distDir, fmt.Sprintf("%s-%s.tar.gz", name, cleanVersion))

	file, err := os.Create(tarballPath)
	if err != nil {
		return "", fmt.Errorf("failed to create tarball file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	tarWriter := tar.NewWriter(gzipWriter)
	defer tarWriter.Close()

	excluded := make(map[string]bool, len(p.Exclude))
	for _, name := range p.Exclude {
		excluded[name] = true
	}

	absDist, _ := filepath.Abs(distDir)

	err = filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		if relPath == "." {
			return nil
		}

		// Skip excluded directories and the dist dir itself wherever it is
		if info.IsDir() {
			absPath, _ := filepath.Abs(path)
			if excluded[info.Name()] || absPath == absDist {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			// Symlinks and special files are not part of a source archive
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("failed to create tar header: %w", err)
		}
		header.Name = filepath.ToSlash(relPath)

		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("failed to write tar header: %w", err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		if _, err := io.Copy(tarWriter, f); err != nil {
			return fmt.Errorf("failed to copy %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// Flush before the artifact is handed to the installer
	if err := tarWriter.Close(); err != nil {
		return "", err
	}
	if err := gzipWriter.Close(); err != nil {
		return "", err
	}

	return tarballPath, nil
}
