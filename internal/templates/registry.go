package templates

import (
	"fmt"
	"sort"
)

// Catalog names looked up by the generator.
const (
	Source          = "control.source"
	SourceLatest    = "control.source.latest"
	DocLatest       = "control.doc.latest"
	ToolsLatest     = "control.tools.latest"
	ImageLatest     = "control.image.latest.type-standalone"
	HeadersLatest   = "control.headers.latest"
	ImageDbgLatest  = "control.image-dbg.latest"
	XenLatest       = "control.xen-linux-system.latest"
	Extra           = "control.extra"
	BugPresubjImage = "bug-presubj.image.latest"
	LintianImageDbg = "lintian-overrides.image-dbg"
	LintianSource   = "lintian-overrides.source"
)

// Kind distinguishes control templates from plain text templates.
type Kind string

const (
	// KindControl templates are lists of package entries (<name>.yaml).
	KindControl Kind = "control"
	// KindText templates are substituted verbatim (<name>.in).
	KindText Kind = "text"
)

// Template describes one catalog name.
type Template struct {
	// Name is the catalog key.
	Name string

	// Role is the package role the entries are generated for.
	Role string

	// Kind selects the file format.
	Kind Kind

	// Required templates must resolve for every run.
	Required bool
}

// registry lists every template name the generator knows.
var registry = map[string]Template{
	Source:          {Name: Source, Role: "source", Kind: KindControl, Required: true},
	SourceLatest:    {Name: SourceLatest, Role: "source", Kind: KindControl, Required: true},
	DocLatest:       {Name: DocLatest, Role: "doc", Kind: KindControl, Required: true},
	ToolsLatest:     {Name: ToolsLatest, Role: "tools", Kind: KindControl, Required: true},
	ImageLatest:     {Name: ImageLatest, Role: "image", Kind: KindControl, Required: true},
	HeadersLatest:   {Name: HeadersLatest, Role: "headers", Kind: KindControl, Required: true},
	ImageDbgLatest:  {Name: ImageDbgLatest, Role: "image-dbg", Kind: KindControl},
	XenLatest:       {Name: XenLatest, Role: "xen", Kind: KindControl},
	Extra:           {Name: Extra, Role: "extra", Kind: KindControl, Required: true},
	BugPresubjImage: {Name: BugPresubjImage, Role: "bug-report", Kind: KindText, Required: true},
	LintianImageDbg: {Name: LintianImageDbg, Role: "lintian-override", Kind: KindText},
	LintianSource:   {Name: LintianSource, Role: "lintian-override", Kind: KindText},
}

// Get returns the registered template called name.
func Get(name string) (Template, error) {
	t, ok := registry[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q", name)
	}
	return t, nil
}

// RoleOf returns the package role for a control template name, or the name
// itself when it is not registered.
func RoleOf(name string) string {
	if t, ok := registry[name]; ok {
		return t.Role
	}
	return name
}

// List returns all registered templates sorted by name.
func List() []Template {
	out := make([]Template, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns all registered template names, sorted.
func Names() []string {
	list := List()
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.Name
	}
	return names
}
