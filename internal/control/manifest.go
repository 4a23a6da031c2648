package control

import (
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// Conflict records a field that differed when a package generated for
// another architecture was merged into an existing record.
type Conflict struct {
	Package string `json:"package" yaml:"package"`
	Field   string `json:"field" yaml:"field"`
	Arch    string `json:"arch" yaml:"arch"`
	Kept    string `json:"kept" yaml:"kept"`
	Dropped string `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

// ManifestOption configures a Manifest.
type ManifestOption func(*Manifest)

// WithStrict makes Add fail with ErrDuplicatePackageConflict instead of
// keeping the first-seen value.
func WithStrict(strict bool) ManifestOption {
	return func(m *Manifest) {
		m.strict = strict
	}
}

// WithConflictHook registers fn to be called for every recorded conflict.
func WithConflictHook(fn func(Conflict)) ManifestOption {
	return func(m *Manifest) {
		m.onConflict = fn
	}
}

// Manifest is the ordered, name-unique set of binary packages plus the
// source stanza. Iteration follows order of first appearance.
type Manifest struct {
	source     *Entry
	packages   []*Package
	index      map[string]int
	conflicts  []Conflict
	strict     bool
	onConflict func(Conflict)
}

// NewManifest creates an empty manifest.
func NewManifest(opts ...ManifestOption) *Manifest {
	m := &Manifest{index: make(map[string]int)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetSource sets the source stanza.
func (m *Manifest) SetSource(e *Entry) {
	m.source = e
}

// Source returns the source stanza, or nil.
func (m *Manifest) Source() *Entry {
	return m.source
}

// Packages returns the binary packages in order of first appearance.
func (m *Manifest) Packages() []*Package {
	return m.packages
}

// Len returns the number of binary packages.
func (m *Manifest) Len() int {
	return len(m.packages)
}

// Get returns the package named name.
func (m *Manifest) Get(name string) (*Package, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.packages[i], true
}

// Conflicts returns the conflicts recorded by Add.
func (m *Manifest) Conflicts() []Conflict {
	return m.conflicts
}

// Add records pkg as built for arch. A new name is appended with
// Architecture {arch}. A known name only gains arch; its other fields keep
// their first-seen values.
func (m *Manifest) Add(pkg *Package, arch string) error {
	name := pkg.Name()
	i, ok := m.index[name]
	if !ok {
		fresh := pkg.Clone()
		fresh.SetArchitectures(arch)
		m.index[name] = len(m.packages)
		m.packages = append(m.packages, fresh)
		return nil
	}

	existing := m.packages[i]
	if err := m.compare(existing, pkg, arch); err != nil {
		return err
	}
	existing.AddArchitecture(arch)
	return nil
}

func (m *Manifest) compare(existing, incoming *Package, arch string) error {
	for _, f := range incoming.Fields() {
		if f.Name == FieldArchitecture {
			continue
		}
		cur, ok := existing.Get(f.Name)
		if ok && cur.Equal(f.Value) {
			continue
		}
		c := Conflict{
			Package: existing.Name(),
			Field:   f.Name,
			Arch:    arch,
			Kept:    cur.Render(f.Name),
			Dropped: f.Value.Render(f.Name),
		}
		if m.strict {
			return gerrors.NewConflictError(c.Package, c.Field, c.Kept, c.Dropped)
		}
		m.conflicts = append(m.conflicts, c)
		if m.onConflict != nil {
			m.onConflict(c)
		}
	}
	for _, f := range existing.Fields() {
		if f.Name == FieldArchitecture || incoming.Has(f.Name) {
			continue
		}
		c := Conflict{Package: existing.Name(), Field: f.Name, Arch: arch, Kept: f.Value.Render(f.Name)}
		if m.strict {
			return gerrors.NewConflictError(c.Package, c.Field, c.Kept, "")
		}
		m.conflicts = append(m.conflicts, c)
		if m.onConflict != nil {
			m.onConflict(c)
		}
	}
	return nil
}

// Extend appends packages as-is. A package whose name is already present
// replaces the earlier record in place.
func (m *Manifest) Extend(pkgs ...*Package) {
	for _, pkg := range pkgs {
		name := pkg.Name()
		if i, ok := m.index[name]; ok {
			m.packages[i] = pkg
			continue
		}
		m.index[name] = len(m.packages)
		m.packages = append(m.packages, pkg)
	}
}
