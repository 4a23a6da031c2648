package rules

import (
	"fmt"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// MakeFlags are the variable assignments passed to debian/rules.real.
type MakeFlags map[string]string

// Clone returns an independent copy.
func (f MakeFlags) Clone() MakeFlags {
	out := make(MakeFlags, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Set assigns name and returns f for chaining.
func (f MakeFlags) Set(name, value string) MakeFlags {
	f[name] = value
	return f
}

// Render returns the assignments sorted by name as NAME='value' words.
// Values are quoted for a POSIX shell.
func (f MakeFlags) Render() (string, error) {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)

	words := make([]string, 0, len(names))
	for _, name := range names {
		q, err := quote(f[name])
		if err != nil {
			return "", fmt.Errorf("make flag %s: %w", name, err)
		}
		words = append(words, name+"="+q)
	}
	return strings.Join(words, " "), nil
}

// quote always yields a quoted word. syntax.Quote leaves safe strings bare;
// those are wrapped in single quotes.
func quote(v string) (string, error) {
	q, err := syntax.Quote(v, syntax.LangPOSIX)
	if err != nil {
		return "", err
	}
	if q == v {
		return "'" + v + "'", nil
	}
	return q, nil
}
