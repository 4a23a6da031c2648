// Package config provides configuration loading and management.
package config

import (
	"maps"
	"slices"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// LinksConfig lists the maintainer file kinds linked to their canonical
// copies.
type LinksConfig struct {
	// Flavour kinds are linked for every package built by a variant.
	Flavour []string `mapstructure:"flavour" yaml:"flavour"`

	// Extra kinds are linked for the dummy upgrade packages.
	Extra []string `mapstructure:"extra" yaml:"extra"`
}

// Config represents the gencontrol tool configuration.
// Loaded from gencontrol.yaml in the source tree.
type Config struct {
	// Defines is the defines file, relative to the source tree.
	// Env: GENCONTROL_DEFINES
	Defines string `mapstructure:"defines" yaml:"defines"`

	// Templates is a directory of templates overlaid on the built-in ones.
	// Env: GENCONTROL_TEMPLATES
	Templates string `mapstructure:"templates" yaml:"templates,omitempty"`

	// Changelog is the changelog the package version is read from.
	// Env: GENCONTROL_CHANGELOG
	Changelog string `mapstructure:"changelog" yaml:"changelog"`

	// Output is the packaging directory generated files are written to.
	// Env: GENCONTROL_OUTPUT
	Output string `mapstructure:"output" yaml:"output"`

	// Strict fails on packages that differ between architectures.
	// Env: GENCONTROL_STRICT
	Strict bool `mapstructure:"strict" yaml:"strict"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`

	// Links contains the link kinds.
	Links LinksConfig `mapstructure:"links" yaml:"links"`

	// Canonical maps package roles to the canonical package name prefixes
	// whose files are shared. Roles not listed keep their defaults.
	Canonical map[string][]string `mapstructure:"canonical" yaml:"canonical,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `gencontrol config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Defines:   "debian/config/defines.yaml",
		Changelog: "debian/changelog",
		Output:    "debian",
		Links: LinksConfig{
			Flavour: []string{"NEWS"},
			Extra:   []string{"config", "postinst", "templates"},
		},
	}
}

// WithDefaults returns a copy of c where every unset field carries its
// default.
func (c *Config) WithDefaults() *Config {
	def := DefaultConfig()
	out := *c
	if out.Defines == "" {
		out.Defines = def.Defines
	}
	if out.Changelog == "" {
		out.Changelog = def.Changelog
	}
	if out.Output == "" {
		out.Output = def.Output
	}
	if out.Links.Flavour == nil {
		out.Links.Flavour = def.Links.Flavour
	}
	if out.Links.Extra == nil {
		out.Links.Extra = def.Links.Extra
	}
	out.Canonical = maps.Clone(c.Canonical)
	return &out
}

// Prefixes merges the canonical overrides over base.
func (c *Config) Prefixes(base map[string][]string) map[string][]string {
	out := make(map[string][]string, len(base)+len(c.Canonical))
	for role, prefixes := range base {
		out[role] = slices.Clone(prefixes)
	}
	for role, prefixes := range c.Canonical {
		out[role] = slices.Clone(prefixes)
	}
	return out
}

// Timestamps reports whether log timestamps are enabled.
func (c *Config) Timestamps() bool {
	return c.Log.Timestamps == nil || *c.Log.Timestamps
}
