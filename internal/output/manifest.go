package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kernelmeta/gencontrol/internal/control"
)

// Snapshot is the serializable form of a manifest. Saved snapshots are
// compared against fresh runs by the diff command.
type Snapshot struct {
	PackageVersion string             `json:"packageVersion" yaml:"packageVersion"`
	Source         map[string]string  `json:"source,omitempty" yaml:"source,omitempty"`
	Packages       []SnapshotPackage  `json:"packages" yaml:"packages"`
	Conflicts      []control.Conflict `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// SnapshotPackage is one binary package of a snapshot.
type SnapshotPackage struct {
	Package       string            `json:"package" yaml:"package"`
	Role          string            `json:"role" yaml:"role"`
	Architectures []string          `json:"architectures" yaml:"architectures"`
	Fields        map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// NewSnapshot captures m. Field values are rendered as in the control file.
func NewSnapshot(m *control.Manifest, packageVersion string) *Snapshot {
	s := &Snapshot{
		PackageVersion: packageVersion,
		Packages:       make([]SnapshotPackage, 0, m.Len()),
		Conflicts:      m.Conflicts(),
	}
	if src := m.Source(); src != nil {
		s.Source = renderFields(src, "")
	}
	for _, pkg := range m.Packages() {
		s.Packages = append(s.Packages, SnapshotPackage{
			Package:       pkg.Name(),
			Role:          pkg.Role,
			Architectures: pkg.Architectures(),
			Fields:        renderFields(pkg.Entry, control.FieldPackage, control.FieldArchitecture),
		})
	}
	return s
}

func renderFields(e *control.Entry, skip ...string) map[string]string {
	out := make(map[string]string, e.Len())
	for _, f := range e.Fields() {
		if contains(skip, f.Name) {
			continue
		}
		out[f.Name] = f.Value.Render(f.Name)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// WriteSnapshot writes s in format (yaml or json; table is not supported).
func WriteSnapshot(w io.Writer, s *Snapshot, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(s); err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("format %s not supported for snapshots", format)
	}
}

// ReadSnapshot decodes a YAML (or JSON) snapshot.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &s, nil
}
