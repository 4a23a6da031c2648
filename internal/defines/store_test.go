package defines

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

func newTestStore() *Store {
	s := NewStore()
	s.Set(Key{Section: "image"}, Values{"type": "plain", "desc-parts": []any{"a"}})
	s.Set(Key{Section: "image", Arch: "amd64"}, Values{"type": "standalone"})
	s.Set(Key{Section: "image", Arch: "amd64", Featureset: "none"}, Values{"bootloaders": []any{"grub-pc"}})
	s.Set(Key{Section: "image", Arch: "amd64", Featureset: "none", Flavour: "cloud"}, Values{
		"type":       "cloud",
		"desc-parts": []any{"b"},
	})
	return s
}

func TestDimsChain(t *testing.T) {
	tests := []struct {
		name string
		dims Dims
		want []string
	}{
		{"global only", Dims{}, []string{"base"}},
		{"arch", Dims{Arch: "amd64"}, []string{"base/amd64", "base"}},
		{"arch featureset", Dims{Arch: "amd64", Featureset: "rt"}, []string{"base/amd64/rt", "base/amd64", "base"}},
		{"full", Dims{Arch: "amd64", Featureset: "none", Flavour: "cloud"},
			[]string{"base/amd64/none/cloud", "base/amd64/none", "base/amd64", "base"}},
		{"gap stops the chain", Dims{Arch: "amd64", Flavour: "cloud"}, []string{"base/amd64", "base"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := tt.dims.Chain("base")
			got := make([]string, len(chain))
			for i, k := range chain {
				got[i] = k.String()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_MostSpecificWins(t *testing.T) {
	s := newTestStore()

	v, err := s.Resolve("image", Dims{Arch: "amd64", Featureset: "none", Flavour: "cloud"}, "type")
	require.NoError(t, err)
	assert.Equal(t, "cloud", v)

	v, err = s.Resolve("image", Dims{Arch: "amd64", Featureset: "none", Flavour: "generic"}, "type")
	require.NoError(t, err)
	assert.Equal(t, "standalone", v, "flavour without override falls back to arch level")

	v, err = s.Resolve("image", Dims{Arch: "arm64", Featureset: "none", Flavour: "generic"}, "type")
	require.NoError(t, err)
	assert.Equal(t, "plain", v, "other architecture gets the global value")
}

func TestResolve_MissingKey(t *testing.T) {
	s := newTestStore()

	_, err := s.Resolve("image", Dims{Arch: "amd64"}, "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gerrors.ErrMissingKey))
	assert.Contains(t, err.Error(), "image/amd64 -> image")

	_, err = s.Resolve("nosection", Dims{}, "x")
	assert.True(t, errors.Is(err, gerrors.ErrMissingKey))
}

func TestResolveString(t *testing.T) {
	s := NewStore()
	s.Set(Key{Section: "abi", Arch: "amd64"}, Values{"abiname": 8})

	got, err := s.ResolveString("abi", Dims{Arch: "amd64"}, "abiname")
	require.NoError(t, err)
	assert.Equal(t, "8", got)
}

func TestResolveDefault(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, "fallback", s.ResolveDefault("image", Dims{}, "missing", "fallback"))
	assert.Equal(t, "plain", s.ResolveDefault("image", Dims{}, "type", "fallback"))
}

func TestResolveMerged_GeneralBeforeSpecific(t *testing.T) {
	s := NewStore()
	s.Set(Key{Section: "description"}, Values{"parts": []any{"a"}})
	s.Set(Key{Section: "description", Arch: "amd64", Featureset: "none", Flavour: "cloud"}, Values{"parts": []any{"b"}})

	got, err := s.ResolveMerged("description", Dims{Arch: "amd64", Featureset: "none", Flavour: "cloud"}, "parts")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = s.ResolveMerged("description", Dims{Arch: "amd64", Featureset: "none", Flavour: "generic"}, "parts")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}

func TestResolveMerged_ScalarAndAbsent(t *testing.T) {
	s := NewStore()
	s.Set(Key{Section: "description"}, Values{"parts": "pc"})
	s.Set(Key{Section: "description", Arch: "amd64"}, Values{"parts": []any{"xen"}})

	got, err := s.ResolveMerged("description", Dims{Arch: "amd64"}, "parts")
	require.NoError(t, err)
	assert.Equal(t, []string{"pc", "xen"}, got)

	got, err = s.ResolveMerged("description", Dims{Arch: "amd64"}, "absent")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveMerged_RejectsMapping(t *testing.T) {
	s := NewStore()
	s.Set(Key{Section: "description"}, Values{"parts": map[string]any{"a": 1}})

	_, err := s.ResolveMerged("description", Dims{}, "parts")
	assert.True(t, errors.Is(err, gerrors.ErrValidation))
}

func TestResolveFlag(t *testing.T) {
	s := NewStore()
	s.Set(Key{Section: "build"}, Values{"debug-info": false})
	s.Set(Key{Section: "build", Arch: "amd64"}, Values{"debug-info": "yes"})
	s.Set(Key{Section: "build", Arch: "arm64"}, Values{"debug-info": []any{"weird"}})

	assert.True(t, s.ResolveFlag("build", Dims{Arch: "amd64"}, "debug-info", false))
	assert.False(t, s.ResolveFlag("build", Dims{Arch: "i386"}, "debug-info", true))
	assert.True(t, s.ResolveFlag("build", Dims{Arch: "arm64"}, "debug-info", true), "unreadable value falls back to default")
	assert.True(t, s.ResolveFlag("nosection", Dims{}, "x", true))
	assert.False(t, s.ResolveFlag("nosection", Dims{}, "x", false))
}

func TestSection_FlattensWithoutDeepMerge(t *testing.T) {
	s := newTestStore()

	got := s.Section("image", Dims{Arch: "amd64", Featureset: "none", Flavour: "cloud"})
	assert.Equal(t, "cloud", got["type"])
	assert.Equal(t, []any{"b"}, got["desc-parts"], "list fields are replaced, not concatenated")
	assert.Equal(t, []any{"grub-pc"}, got["bootloaders"])

	assert.Equal(t, "cloud", got.String("type"))
	assert.Equal(t, "", got.String("missing"))

	_, err := got.Require("image", "missing")
	assert.True(t, errors.Is(err, gerrors.ErrMissingKey))
}

func TestHasSection(t *testing.T) {
	s := NewStore()
	s.Set(Key{Section: "xen", Arch: "amd64"}, Values{"flavours": []any{"amd64"}})

	assert.True(t, s.HasSection("xen", Dims{Arch: "amd64", Featureset: "none", Flavour: "amd64"}))
	assert.False(t, s.HasSection("xen", Dims{Arch: "arm64", Featureset: "none", Flavour: "arm64"}))
}

func TestSet_MergesSameLevel(t *testing.T) {
	s := NewStore()
	s.Set(Key{Section: "version"}, Values{"source": "5.10.0-8"})
	s.Set(Key{Section: "version"}, Values{"abiname": "8"})

	level, ok := s.Lookup(Key{Section: "version"})
	require.True(t, ok)
	assert.Equal(t, "5.10.0-8", level["source"])
	assert.Equal(t, "8", level["abiname"])
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		in     any
		want   bool
		wantOK bool
	}{
		{true, true, true},
		{"Yes", true, true},
		{"0", false, true},
		{1, true, true},
		{int64(0), false, true},
		{3.5, false, false},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		got, ok := AsBool(tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
	}
}

func TestDeclared_ExactLevelOnly(t *testing.T) {
	s := NewStore()
	s.Set(Key{Section: "base"}, Values{"featuresets": []any{"none"}})
	s.Set(Key{Section: "base", Arch: "amd64"}, Values{"featuresets": []any{"none", "rt"}})

	got, err := s.Declared(Key{Section: "base", Arch: "amd64"}, "featuresets")
	require.NoError(t, err)
	assert.Equal(t, []string{"none", "rt"}, got)

	got, err = s.Declared(Key{Section: "base", Arch: "arm64"}, "featuresets")
	require.NoError(t, err)
	assert.Nil(t, got, "no fallback to the global level")

	_, err = s.Declared(Key{Section: "base"}, "missing")
	assert.NoError(t, err)

	s.Set(Key{Section: "base"}, Values{"arches": map[string]any{"a": 1}})
	_, err = s.Declared(Key{Section: "base"}, "arches")
	assert.Error(t, err)
}
