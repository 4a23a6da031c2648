// Package rules builds the generated make rules: the rule set itself, the
// quoted make flags passed to debian/rules.real, and the symlink commands
// that share maintainer files between meta-packages.
package rules

import (
	"bytes"
	"io"
	"slices"
	"sort"
	"strings"
)

// Rule is one make target with its prerequisites and recipe.
type Rule struct {
	Name string
	Deps []string
	Cmds []string
}

// Makefile is a set of rules keyed by target name.
type Makefile struct {
	rules map[string]*Rule
}

// NewMakefile creates an empty rule set.
func NewMakefile() *Makefile {
	return &Makefile{rules: make(map[string]*Rule)}
}

// Add merges deps and cmds into the rule called name, creating it when
// needed. Every dependency gets at least an empty rule so the generated
// file never references an undefined target.
func (m *Makefile) Add(name string, deps []string, cmds []string) {
	r := m.rule(name)
	for _, d := range deps {
		if !slices.Contains(r.Deps, d) {
			r.Deps = append(r.Deps, d)
		}
		m.rule(d)
	}
	r.Cmds = append(r.Cmds, cmds...)
}

// AddRule merges r into the rule set.
func (m *Makefile) AddRule(r Rule) {
	m.Add(r.Name, r.Deps, r.Cmds)
}

func (m *Makefile) rule(name string) *Rule {
	r, ok := m.rules[name]
	if !ok {
		r = &Rule{Name: name}
		m.rules[name] = r
	}
	return r
}

// Get returns the rule called name.
func (m *Makefile) Get(name string) (Rule, bool) {
	r, ok := m.rules[name]
	if !ok {
		return Rule{}, false
	}
	return *r, true
}

// Len returns the number of rules.
func (m *Makefile) Len() int {
	return len(m.rules)
}

// Rules returns the rules sorted by name.
func (m *Makefile) Rules() []Rule {
	names := make([]string, 0, len(m.rules))
	for name := range m.rules {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Rule, 0, len(names))
	for _, name := range names {
		r := *m.rules[name]
		r.Deps = slices.Sorted(slices.Values(r.Deps))
		r.Cmds = slices.Clone(r.Cmds)
		out = append(out, r)
	}
	return out
}

// WriteTo writes the rules in make syntax.
func (m *Makefile) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, r := range m.Rules() {
		buf.WriteString(r.Name)
		buf.WriteString(":")
		if len(r.Deps) > 0 {
			buf.WriteString(" ")
			buf.WriteString(strings.Join(r.Deps, " "))
		}
		buf.WriteString("\n")
		for _, c := range r.Cmds {
			buf.WriteString("\t")
			buf.WriteString(c)
			buf.WriteString("\n")
		}
	}
	return buf.WriteTo(w)
}

// String renders the rules in make syntax.
func (m *Makefile) String() string {
	var b strings.Builder
	_, _ = m.WriteTo(&b)
	return b.String()
}
