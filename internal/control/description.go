package control

import (
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/kernelmeta/gencontrol/internal/defines"
)

// descriptionWidth is the wrap column for long description paragraphs.
const descriptionWidth = 74

// Description is a package description: summary parts plus long paragraphs.
type Description struct {
	Short []string
	Long  []string
}

// ParseDescription parses a template description. The first line is the
// summary; the remainder is long text.
func ParseDescription(s string) *Description {
	d := &Description{}
	summary, long, _ := strings.Cut(s, "\n")
	d.AppendShort(summary)
	d.Append(long)
	return d
}

// Append adds long text, split into paragraphs on lines holding a single ".".
func (d *Description) Append(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for _, par := range splitParagraphs(text) {
		if par = strings.TrimSpace(par); par != "" {
			d.Long = append(d.Long, par)
		}
	}
}

// AppendShort adds comma-separated summary parts, skipping empty ones.
func (d *Description) AppendShort(text string) {
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			d.Short = append(d.Short, part)
		}
	}
}

// Extend appends the parts of other.
func (d *Description) Extend(other *Description) {
	if other == nil {
		return
	}
	d.Short = append(d.Short, other.Short...)
	d.Long = append(d.Long, other.Long...)
}

// IsEmpty reports whether the description has no parts.
func (d *Description) IsEmpty() bool {
	return len(d.Short) == 0 && len(d.Long) == 0
}

// Clone returns a deep copy.
func (d *Description) Clone() *Description {
	return &Description{
		Short: append([]string(nil), d.Short...),
		Long:  append([]string(nil), d.Long...),
	}
}

// String renders the description in control-file form, continuation lines
// indented by one space and paragraphs separated by " .".
func (d *Description) String() string {
	short := strings.Join(d.Short, ", ")
	if len(d.Long) == 0 {
		return short
	}

	pars := make([]string, len(d.Long))
	for i, par := range d.Long {
		flat := strings.Join(strings.Fields(par), " ")
		pars[i] = strings.ReplaceAll(wordwrap.WrapString(flat, descriptionWidth), "\n", "\n ")
	}
	return short + "\n " + strings.Join(pars, "\n .\n ")
}

// substitute applies fn to every part.
func (d *Description) substitute(fn func(string) (string, error)) (*Description, error) {
	out := &Description{}
	for _, s := range d.Short {
		r, err := fn(s)
		if err != nil {
			return nil, err
		}
		out.Short = append(out.Short, r)
	}
	for _, l := range d.Long {
		r, err := fn(l)
		if err != nil {
			return nil, err
		}
		out.Long = append(out.Long, r)
	}
	return out, nil
}

func splitParagraphs(text string) []string {
	var pars []string
	var cur []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "." {
			pars = append(pars, strings.Join(cur, "\n"))
			cur = nil
			continue
		}
		cur = append(cur, line)
	}
	return append(pars, strings.Join(cur, "\n"))
}

// ComposeDescription builds the description contributed by the named parts.
// Part names are deduplicated and sorted; for each, part-long-<name> from
// section is required and part-short-<name> is optional.
func ComposeDescription(parts []string, section defines.Values) (*Description, error) {
	d := &Description{}
	if len(parts) == 0 {
		return d, nil
	}

	seen := make(map[string]struct{}, len(parts))
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		names = append(names, p)
	}
	sort.Strings(names)

	for _, name := range names {
		long, err := section.Require("description", "part-long-"+name)
		if err != nil {
			return nil, err
		}
		d.Append(long)
		d.AppendShort(section.String("part-short-" + name))
	}
	return d, nil
}
