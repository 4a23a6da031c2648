// Package vars holds the substitution variables threaded through template
// expansion and the @name@ placeholder substitution applied to templates.
package vars

import (
	"regexp"
	"sort"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// placeholder matches @name@ where name is lower-case alphanumeric, '-' or '_'.
var placeholder = regexp.MustCompile(`@([-_a-z0-9]+)@`)

// Context is a flat mapping of variable name to value.
type Context map[string]string

// Clone returns an independent copy of c.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// With returns a copy of c with the given pairs set.
// Pairs are name, value, name, value...; a trailing odd name is ignored.
func (c Context) With(pairs ...string) Context {
	out := c.Clone()
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = pairs[i+1]
	}
	return out
}

// Names returns the variable names in sorted order.
func (c Context) Names() []string {
	names := make([]string, 0, len(c))
	for k := range c {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Substitute replaces every @name@ placeholder in s with its value.
// The first placeholder without a value fails with ErrUnresolvedVariable.
func (c Context) Substitute(s string) (string, error) {
	var missing string
	out := placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := c[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return v
	})
	if missing != "" {
		return "", gerrors.NewUnresolvedVariableError(missing, s)
	}
	return out, nil
}

// SubstituteAll applies Substitute to each element of items.
func (c Context) SubstituteAll(items []string) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, err := c.Substitute(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
