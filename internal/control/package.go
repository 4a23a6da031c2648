package control

import (
	"fmt"
	"slices"
	"sort"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/vars"
)

// Package is an expanded package descriptor.
type Package struct {
	// Role is the catalog role the package was generated from (image,
	// headers, extra, ...). It drives canonical link prefixes.
	Role string

	*Entry
}

// NewPackage wraps an entry.
func NewPackage(role string, e *Entry) *Package {
	return &Package{Role: role, Entry: e}
}

// Name returns the Package field.
func (p *Package) Name() string {
	return p.Str(FieldPackage)
}

// Architectures returns the Architecture field as a list.
func (p *Package) Architectures() []string {
	v, ok := p.Get(FieldArchitecture)
	if !ok {
		return nil
	}
	if v.Kind == KindList {
		return append([]string(nil), v.List...)
	}
	return []string{v.Str}
}

// SetArchitectures replaces the Architecture field with the sorted set of archs.
func (p *Package) SetArchitectures(archs ...string) {
	set := make([]string, 0, len(archs))
	for _, a := range archs {
		if a != "" && !slices.Contains(set, a) {
			set = append(set, a)
		}
	}
	sort.Strings(set)
	p.Set(FieldArchitecture, List(set...))
}

// AddArchitecture adds arch to the Architecture set.
func (p *Package) AddArchitecture(arch string) {
	p.SetArchitectures(append(p.Architectures(), arch)...)
}

// Clone returns a deep copy.
func (p *Package) Clone() *Package {
	return &Package{Role: p.Role, Entry: p.Entry.Clone()}
}

// Expand substitutes every field of entry against ctx.
func Expand(role string, entry *Entry, ctx vars.Context) (*Package, error) {
	out := &Entry{}
	for _, f := range entry.Fields() {
		v, err := expandValue(f.Value, ctx)
		if err != nil {
			return nil, fmt.Errorf("expanding field %s: %w", f.Name, err)
		}
		out.Set(f.Name, v)
	}
	return NewPackage(role, out), nil
}

func expandValue(v Value, ctx vars.Context) (Value, error) {
	switch v.Kind {
	case KindString:
		s, err := ctx.Substitute(v.Str)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case KindList:
		items, err := ctx.SubstituteAll(v.List)
		if err != nil {
			return Value{}, err
		}
		return List(items...), nil
	case KindDescription:
		if v.Desc == nil {
			return Desc(&Description{}), nil
		}
		d, err := v.Desc.substitute(ctx.Substitute)
		if err != nil {
			return Value{}, err
		}
		return Desc(d), nil
	default:
		return Value{}, gerrors.NewValidationError(fmt.Sprintf("unknown field kind %d", v.Kind), "", "", "")
	}
}

// ExpandMerge expands entry and then extends it with overlay. Fields present
// in both are extended: lists concatenate and descriptions append their
// parts. Fields only in overlay are added when non-empty. Scalars cannot be
// extended.
func ExpandMerge(role string, entry, overlay *Entry, ctx vars.Context) (*Package, error) {
	pkg, err := Expand(role, entry, ctx)
	if err != nil {
		return nil, err
	}
	if overlay == nil {
		return pkg, nil
	}

	for _, f := range overlay.Fields() {
		cur, ok := pkg.Get(f.Name)
		if !ok {
			if !f.Value.IsEmpty() {
				pkg.Set(f.Name, f.Value.Clone())
			}
			continue
		}

		if cur.Kind != f.Value.Kind {
			return nil, gerrors.NewValidationError(
				fmt.Sprintf("cannot extend %s field with %s overlay", cur.Kind, f.Value.Kind),
				pkg.Name(), f.Name, "")
		}

		switch cur.Kind {
		case KindList:
			pkg.Set(f.Name, List(append(cur.List, f.Value.List...)...))
		case KindDescription:
			d := &Description{}
			if cur.Desc != nil {
				d = cur.Desc.Clone()
			}
			d.Extend(f.Value.Desc)
			pkg.Set(f.Name, Desc(d))
		default:
			return nil, gerrors.NewValidationError("scalar fields cannot be extended", pkg.Name(), f.Name,
				"drop the field from the template or from the overlay")
		}
	}
	return pkg, nil
}
