// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Defines declares a single amd64/none/generic variant with debug info.
const Defines = `entries:
  - section: version
    values:
      source: 5.10.0-8
      abiname: 5.10.0-8
  - section: base
    values:
      arches: [amd64]
  - section: base
    arch: amd64
    values:
      featuresets: [none]
  - section: base
    arch: amd64
    featureset: none
    values:
      flavours: [generic]
  - section: description
    values:
      part-long-pc: This kernel is for PCs.
      part-short-pc: PC
  - section: description
    arch: amd64
    featureset: none
    flavour: generic
    values:
      hardware: 64-bit PCs
      parts: [pc]
  - section: build
    arch: amd64
    featureset: none
    flavour: generic
    values:
      debug-info: true
`

// Changelog is a changelog whose newest entry is linux-latest 105.
const Changelog = `linux-latest (105) unstable; urgency=medium

  * Update to 5.10.0-8.

 -- Debian Kernel Team <debian-kernel@lists.debian.org>  Sat, 07 Aug 2021 12:00:00 +0200
`

// SourceTree creates a source tree with the default defines, changelog and
// a canonical linux-image NEWS file, and returns its root.
func SourceTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	WriteFile(t, root, "debian/config/defines.yaml", Defines)
	WriteFile(t, root, "debian/changelog", Changelog)
	WriteFile(t, root, "debian/linux-image.NEWS", "news\n")
	return root
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of name under dir.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read file %s: %v", name, err)
	}
	return string(data)
}
