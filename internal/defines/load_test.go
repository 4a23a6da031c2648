package defines

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/testutil"
)

const yamlDefines = `entries:
  - section: version
    values:
      source: 5.10.0-8
      abiname: "8"
  - section: base
    values:
      arches: [amd64, arm64]
  - section: base
    arch: amd64
    values:
      featuresets: [none]
  - section: description
    arch: amd64
    featureset: none
    flavour: amd64
    values:
      hardware: 64-bit PCs
      parts: [pc]
`

const tomlDefines = `
[[entries]]
section = "version"
[entries.values]
source = "5.10.0-8"
abiname = 8

[[entries]]
section = "base"
arch = "amd64"
[entries.values]
featuresets = ["none"]
`

const jsonDefines = `{
  "entries": [
    {"section": "version", "values": {"source": "5.10.0-8", "abiname": 8}},
    {"section": "base", "arch": "amd64", "values": {"featuresets": ["none"]}}
  ]
}`

func TestParse_YAML(t *testing.T) {
	s, err := Parse([]byte(yamlDefines), FormatYAML)
	require.NoError(t, err)

	src, err := s.ResolveString("version", Dims{}, "source")
	require.NoError(t, err)
	assert.Equal(t, "5.10.0-8", src)

	arches, err := s.ResolveMerged("base", Dims{}, "arches")
	require.NoError(t, err)
	assert.Equal(t, []string{"amd64", "arm64"}, arches)

	parts, err := s.ResolveMerged("description", Dims{Arch: "amd64", Featureset: "none", Flavour: "amd64"}, "parts")
	require.NoError(t, err)
	assert.Equal(t, []string{"pc"}, parts)
}

func TestParse_TOMLAndJSONAgree(t *testing.T) {
	for _, tc := range []struct {
		format Format
		data   string
	}{
		{FormatTOML, tomlDefines},
		{FormatJSON, jsonDefines},
	} {
		t.Run(string(tc.format), func(t *testing.T) {
			s, err := Parse([]byte(tc.data), tc.format)
			require.NoError(t, err)

			abi, err := s.ResolveString("version", Dims{}, "abiname")
			require.NoError(t, err)
			assert.Equal(t, "8", abi)

			fs, err := s.ResolveMerged("base", Dims{Arch: "amd64"}, "featuresets")
			require.NoError(t, err)
			assert.Equal(t, []string{"none"}, fs)
		})
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("entries:\n  - section: base\n    arches: [amd64]\n"), FormatYAML)
	assert.True(t, errors.Is(err, gerrors.ErrValidation))
}

func TestFromEntries_Validation(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"no section", Entry{Arch: "amd64"}},
		{"featureset without arch", Entry{Section: "base", Featureset: "none"}},
		{"flavour without featureset", Entry{Section: "base", Arch: "amd64", Flavour: "cloud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEntries([]Entry{tt.entry})
			assert.True(t, errors.Is(err, gerrors.ErrValidation))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "defines.yaml", yamlDefines)

	s, err := Load(path)
	require.NoError(t, err)
	_, err = s.Resolve("version", Dims{}, "source")
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, gerrors.ErrNotFound))

	path := testutil.WriteFile(t, dir, "defines.ini", "")
	_, err = Load(path)
	assert.True(t, errors.Is(err, gerrors.ErrValidation))
}
