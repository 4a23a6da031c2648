// Package control models package descriptors: template entries with typed
// fields, their expansion against a variable context, composite
// descriptions, and the manifest that aggregates descriptors across
// architectures.
package control

import (
	"slices"
	"strings"
)

// Kind enumerates the field value kinds.
type Kind int

const (
	// KindString is a scalar template string.
	KindString Kind = iota
	// KindList is an ordered sequence of strings (relations, architectures).
	KindList
	// KindDescription is a composite summary plus long text.
	KindDescription
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDescription:
		return "description"
	default:
		return "unknown"
	}
}

// Well-known field names.
const (
	FieldPackage      = "Package"
	FieldSource       = "Source"
	FieldArchitecture = "Architecture"
	FieldDescription  = "Description"
	FieldBuildDepends = "Build-Depends"

	// FieldVersionOverwriteEpoch marks extra packages whose version carries
	// the 1: epoch.
	FieldVersionOverwriteEpoch = "X-Version-Overwrite-Epoch"
)

// ArchAll is the architecture-independent sentinel.
const ArchAll = "all"

// Value is a tagged field value.
type Value struct {
	Kind Kind
	Str  string
	List []string
	Desc *Description
}

// String creates a scalar value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// List creates a list value.
func List(items ...string) Value {
	return Value{Kind: KindList, List: append([]string{}, items...)}
}

// Desc creates a description value.
func Desc(d *Description) Value {
	return Value{Kind: KindDescription, Desc: d}
}

// IsEmpty reports whether the value carries no content.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindString:
		return v.Str == ""
	case KindList:
		return len(v.List) == 0
	case KindDescription:
		return v.Desc == nil || v.Desc.IsEmpty()
	}
	return true
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	out := Value{Kind: v.Kind, Str: v.Str}
	if v.List != nil {
		out.List = append([]string{}, v.List...)
	}
	if v.Desc != nil {
		out.Desc = v.Desc.Clone()
	}
	return out
}

// Render returns the value as it appears in a control file. Architecture
// lists are space separated, other lists are comma separated.
func (v Value) Render(field string) string {
	switch v.Kind {
	case KindList:
		if field == FieldArchitecture {
			return strings.Join(v.List, " ")
		}
		return strings.Join(v.List, ", ")
	case KindDescription:
		if v.Desc == nil {
			return ""
		}
		return v.Desc.String()
	default:
		return v.Str
	}
}

// Equal compares two values by kind and rendered content.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindList:
		return slices.Equal(v.List, other.List)
	case KindDescription:
		return v.Render("") == other.Render("")
	default:
		return v.Str == other.Str
	}
}

// Field is a named value.
type Field struct {
	Name  string
	Value Value
}

// Entry is an ordered field mapping. Field names are unique.
type Entry struct {
	fields []Field
}

// NewEntry creates an entry from fields, later duplicates replacing earlier.
func NewEntry(fields ...Field) *Entry {
	e := &Entry{}
	for _, f := range fields {
		e.Set(f.Name, f.Value)
	}
	return e
}

// Fields returns the fields in declaration order.
func (e *Entry) Fields() []Field {
	return e.fields
}

// Len returns the number of fields.
func (e *Entry) Len() int {
	return len(e.fields)
}

func (e *Entry) index(name string) int {
	for i, f := range e.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the value of field name.
func (e *Entry) Get(name string) (Value, bool) {
	if i := e.index(name); i >= 0 {
		return e.fields[i].Value, true
	}
	return Value{}, false
}

// Has reports whether field name is present.
func (e *Entry) Has(name string) bool {
	return e.index(name) >= 0
}

// Set replaces field name in place, or appends it.
func (e *Entry) Set(name string, v Value) {
	if i := e.index(name); i >= 0 {
		e.fields[i].Value = v
		return
	}
	e.fields = append(e.fields, Field{Name: name, Value: v})
}

// Str returns a scalar field or "".
func (e *Entry) Str(name string) string {
	v, ok := e.Get(name)
	if !ok {
		return ""
	}
	return v.Render(name)
}

// Clone returns a deep copy.
func (e *Entry) Clone() *Entry {
	out := &Entry{fields: make([]Field, len(e.fields))}
	for i, f := range e.fields {
		out.fields[i] = Field{Name: f.Name, Value: f.Value.Clone()}
	}
	return out
}
