// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package artifact_test

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kevherro/janus/pkg/artifact"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestPackLocateInstallRoundtrip(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"go.mod":               "module example.com/demo\n",
		"tensor.go":            "package demo\n",
		"internal/ops/ops.go":  "package ops\n",
		".git/HEAD":            "ref: refs/heads/main\n",
		"dist/stale-0.tar.gz":  "not a real archive",
		".janus-env/bin/stale": "binary",
	})

	distDir := filepath.Join(src, "dist")
	packer := artifact.NewPacker(".janus-env")
	path, err := packer.Pack(src, distDir, "demo", "1.2.3")
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if filepath.Base(path) != "demo-1.2.3.tar.gz" {
		t.Errorf("artifact name = %s, want demo-1.2.3.tar.gz", filepath.Base(path))
	}

	located, err := artifact.Locate(distDir, "*.tar.gz")
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if located != path {
		// The stale archive is older, so the fresh one must win.
		t.Errorf("Locate() = %s, want %s", located, path)
	}

	sum, err := artifact.Checksum(path)
	if err != nil {
		t.Fatalf("Checksum() error: %v", err)
	}
	if len(sum) != 64 {
		t.Errorf("checksum length = %d, want 64 hex chars", len(sum))
	}
	if err := artifact.VerifyChecksum(path, sum); err != nil {
		t.Errorf("VerifyChecksum() error: %v", err)
	}
	if err := artifact.VerifyChecksum(path, strings.Repeat("0", 64)); err == nil {
		t.Error("VerifyChecksum() accepted a wrong checksum")
	}

	dest := t.TempDir()
	root, err := artifact.Install(path, dest)
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	for _, name := range []string{"go.mod", "tensor.go", filepath.Join("internal", "ops", "ops.go")} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("installed tree missing %s: %v", name, err)
		}
	}
	for _, name := range []string{".git", "dist", ".janus-env"} {
		if _, err := os.Stat(filepath.Join(root, name)); !os.IsNotExist(err) {
			t.Errorf("excluded directory %s present in installed tree", name)
		}
	}
}

func TestLocateNewestWins(t *testing.T) {
	distDir := t.TempDir()
	older := filepath.Join(distDir, "demo-1.0.0.tar.gz")
	newer := filepath.Join(distDir, "demo-1.1.0.tar.gz")

	if err := os.WriteFile(older, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(newer, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, old, old); err != nil {
		t.Fatal(err)
	}

	got, err := artifact.Locate(distDir, "*.tar.gz")
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if got != newer {
		t.Errorf("Locate() = %s, want %s", got, newer)
	}
}

func TestLocateNoMatch(t *testing.T) {
	if _, err := artifact.Locate(t.TempDir(), "*.tar.gz"); err == nil {
		t.Error("Locate() expected error for empty dist dir")
	}
}

func TestInstallRejectsTraversal(t *testing.T) {
	// A crafted archive must not be able to write outside the
	// destination directory.
	path := filepath.Join(t.TempDir(), "evil.tar.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	content := []byte("owned")
	if err := tw.WriteHeader(&tar.Header{
		Name: "../evil.txt",
		Mode: 0o644,
		Size: int64(len(content)),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	parent := t.TempDir()
	dest := filepath.Join(parent, "install")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := artifact.Install(path, dest); err == nil {
		t.Fatal("Install() accepted an archive entry escaping the destination")
	}
	if _, err := os.Stat(filepath.Join(parent, "evil.txt")); !os.IsNotExist(err) {
		t.Error("traversal entry was written outside the destination")
	}
}
