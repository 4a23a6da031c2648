package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kernelmeta/gencontrol/internal/rules"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "debian/config/defines.yaml", cfg.Defines)
	assert.Equal(t, "debian/changelog", cfg.Changelog)
	assert.Equal(t, "debian", cfg.Output)
	assert.Empty(t, cfg.Templates)
	assert.False(t, cfg.Strict)
	assert.Equal(t, rules.FlavourLinkKinds, cfg.Links.Flavour)
	assert.Equal(t, rules.ExtraLinkKinds, cfg.Links.Extra)
	assert.True(t, cfg.Timestamps())
}

func TestWithDefaults_KeepsSetFields(t *testing.T) {
	off := false
	cfg := (&Config{
		Output: "out",
		Links:  LinksConfig{Flavour: []string{}},
		Log:    LogConfig{Timestamps: &off},
	}).WithDefaults()

	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, "debian/changelog", cfg.Changelog)
	assert.Empty(t, cfg.Links.Flavour, "an explicit empty list disables links")
	assert.Equal(t, []string{"config", "postinst", "templates"}, cfg.Links.Extra)
	assert.False(t, cfg.Timestamps())
}

func TestPrefixes_OverridesRole(t *testing.T) {
	cfg := &Config{Canonical: map[string][]string{"xen": {"xen-linux-system"}, "image": {"linux-image", "linux-signed"}}}

	got := cfg.Prefixes(rules.DefaultPrefixes())

	assert.Equal(t, []string{"xen-linux-system"}, got["xen"])
	assert.Equal(t, []string{"linux-image", "linux-signed"}, got["image"])
	assert.Equal(t, []string{"linux-headers"}, got["headers"])
}

func TestTemplate_RoundTripsDefaults(t *testing.T) {
	data, err := Template()
	require.NoError(t, err)
	assert.Contains(t, string(data), "# gencontrol configuration.")

	var cfg Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, *DefaultConfig(), cfg)
}
