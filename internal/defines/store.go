// Package defines implements the layered configuration store consulted while
// generating packages. Values are partitioned by (section, architecture,
// feature set, flavour) and resolved from the most specific level to the
// global default.
package defines

import (
	"fmt"
	"strings"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// Key addresses one level of the store. Empty trailing components denote a
// less specific level: {Section: "base"} is the global level of "base".
type Key struct {
	Section    string `json:"section" yaml:"section" toml:"section"`
	Arch       string `json:"arch,omitempty" yaml:"arch,omitempty" toml:"arch,omitempty"`
	Featureset string `json:"featureset,omitempty" yaml:"featureset,omitempty" toml:"featureset,omitempty"`
	Flavour    string `json:"flavour,omitempty" yaml:"flavour,omitempty" toml:"flavour,omitempty"`
}

// String renders the key as section/arch/featureset/flavour, omitting empty
// trailing components.
func (k Key) String() string {
	parts := []string{k.Section}
	for _, p := range []string{k.Arch, k.Featureset, k.Flavour} {
		if p == "" {
			break
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "/")
}

// Dims is the dimension triple a query is resolved against.
type Dims struct {
	Arch       string
	Featureset string
	Flavour    string
}

// Chain returns the keys consulted for section, most specific first:
// arch+featureset+flavour, arch+featureset, arch, global. A level is only
// present when all of its components are set.
func (d Dims) Chain(section string) []Key {
	comps := []string{d.Arch, d.Featureset, d.Flavour}
	depth := 0
	for depth < len(comps) && comps[depth] != "" {
		depth++
	}

	keys := make([]Key, 0, depth+1)
	for n := depth; n >= 0; n-- {
		k := Key{Section: section}
		if n >= 1 {
			k.Arch = comps[0]
		}
		if n >= 2 {
			k.Featureset = comps[1]
		}
		if n >= 3 {
			k.Flavour = comps[2]
		}
		keys = append(keys, k)
	}
	return keys
}

func (d Dims) describe(section string) string {
	chain := d.Chain(section)
	names := make([]string, len(chain))
	for i, k := range chain {
		names[i] = k.String()
	}
	return strings.Join(names, " -> ")
}

// Values is the field mapping stored at one level.
type Values map[string]any

// Store holds configuration values keyed by level.
// It is read-only once loading has finished.
type Store struct {
	levels map[Key]Values
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{levels: make(map[Key]Values)}
}

// Set merges values into the level at key. Later calls override earlier
// fields at the same level.
func (s *Store) Set(key Key, values Values) {
	level, ok := s.levels[key]
	if !ok {
		level = make(Values, len(values))
		s.levels[key] = level
	}
	for k, v := range values {
		level[k] = v
	}
}

// Lookup returns the values stored exactly at key.
func (s *Store) Lookup(key Key) (Values, bool) {
	v, ok := s.levels[key]
	return v, ok
}

// Resolve returns the most specific value of field in section.
func (s *Store) Resolve(section string, dims Dims, field string) (any, error) {
	for _, key := range dims.Chain(section) {
		if level, ok := s.levels[key]; ok {
			if v, ok := level[field]; ok {
				return v, nil
			}
		}
	}
	return nil, gerrors.NewMissingKeyError(section, field, dims.describe(section))
}

// ResolveString resolves field and renders it as a string.
func (s *Store) ResolveString(section string, dims Dims, field string) (string, error) {
	v, err := s.Resolve(section, dims, field)
	if err != nil {
		return "", err
	}
	return AsString(v), nil
}

// ResolveDefault resolves field, returning def when no level defines it.
func (s *Store) ResolveDefault(section string, dims Dims, field string, def any) any {
	v, err := s.Resolve(section, dims, field)
	if err != nil {
		return def
	}
	return v
}

// ResolveMerged collects field from every matching level, most general first,
// and concatenates the list values. Scalars count as one-element lists.
// A field defined nowhere yields an empty result.
func (s *Store) ResolveMerged(section string, dims Dims, field string) ([]string, error) {
	chain := dims.Chain(section)
	out := []string{}
	for i := len(chain) - 1; i >= 0; i-- {
		level, ok := s.levels[chain[i]]
		if !ok {
			continue
		}
		v, ok := level[field]
		if !ok {
			continue
		}
		items, err := AsStringList(v)
		if err != nil {
			return nil, fmt.Errorf("resolving %s.%s at %s: %w", section, field, chain[i], err)
		}
		out = append(out, items...)
	}
	return out, nil
}

// ResolveFlag resolves a boolean field, returning def when it is absent at
// every level or cannot be read as a boolean.
func (s *Store) ResolveFlag(section string, dims Dims, field string, def bool) bool {
	v, err := s.Resolve(section, dims, field)
	if err != nil {
		return def
	}
	b, ok := AsBool(v)
	if !ok {
		return def
	}
	return b
}

// HasSection reports whether any level in the chain defines section.
func (s *Store) HasSection(section string, dims Dims) bool {
	for _, key := range dims.Chain(section) {
		if level, ok := s.levels[key]; ok && len(level) > 0 {
			return true
		}
	}
	return false
}

// Section returns a flattened view of section where every field carries its
// most specific value. Values found at different levels are never combined.
func (s *Store) Section(section string, dims Dims) Values {
	out := Values{}
	chain := dims.Chain(section)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range s.levels[chain[i]] {
			out[k] = v
		}
	}
	return out
}

// String returns the value of field rendered as a string, or "" if absent.
func (v Values) String(field string) string {
	raw, ok := v[field]
	if !ok {
		return ""
	}
	return AsString(raw)
}

// Require returns field rendered as a string, or ErrMissingKey.
func (v Values) Require(section, field string) (string, error) {
	raw, ok := v[field]
	if !ok {
		return "", gerrors.NewMissingKeyError(section, field, section)
	}
	return AsString(raw), nil
}

// Declared returns list field stored exactly at key, without falling back
// to less specific levels. An absent field yields nil.
func (s *Store) Declared(key Key, field string) ([]string, error) {
	level, ok := s.levels[key]
	if !ok {
		return nil, nil
	}
	v, ok := level[field]
	if !ok {
		return nil, nil
	}
	items, err := AsStringList(v)
	if err != nil {
		return nil, fmt.Errorf("reading %s.%s: %w", key, field, err)
	}
	return items, nil
}
