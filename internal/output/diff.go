package output

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"gopkg.in/yaml.v3"
)

// sourceItem names the pseudo package carrying the source stanza and the
// package version in a snapshot diff.
const sourceItem = "(source)"

// ModifiedItem is a package whose content changed.
type ModifiedItem struct {
	Name string
	Diff string
}

// SnapshotDiff is the package-level difference between two snapshots.
type SnapshotDiff struct {
	Added    []string
	Removed  []string
	Modified []ModifiedItem
}

// HasChanges reports whether anything differs.
func (d SnapshotDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// CompareSnapshots compares a saved snapshot with a fresh one. Modified
// packages carry a dyff report of their fields.
func CompareSnapshots(saved, fresh *Snapshot, useColor bool) (SnapshotDiff, error) {
	var d SnapshotDiff

	text, err := diffValues(sourceView(saved), sourceView(fresh), useColor)
	if err != nil {
		return d, err
	}
	if text != "" {
		d.Modified = append(d.Modified, ModifiedItem{Name: sourceItem, Diff: text})
	}

	old := make(map[string]SnapshotPackage, len(saved.Packages))
	for _, p := range saved.Packages {
		old[p.Package] = p
	}
	seen := make(map[string]bool, len(fresh.Packages))

	for _, p := range fresh.Packages {
		seen[p.Package] = true
		prev, ok := old[p.Package]
		if !ok {
			d.Added = append(d.Added, p.Package)
			continue
		}
		text, err := diffValues(prev, p, useColor)
		if err != nil {
			return d, fmt.Errorf("comparing %s: %w", p.Package, err)
		}
		if text != "" {
			d.Modified = append(d.Modified, ModifiedItem{Name: p.Package, Diff: text})
		}
	}
	for _, p := range saved.Packages {
		if !seen[p.Package] {
			d.Removed = append(d.Removed, p.Package)
		}
	}
	slices.Sort(d.Added)
	slices.Sort(d.Removed)
	return d, nil
}

func sourceView(s *Snapshot) map[string]any {
	return map[string]any{"packageVersion": s.PackageVersion, "source": s.Source}
}

// diffValues marshals both values to YAML and compares them with dyff.
func diffValues(from, to any, useColor bool) (string, error) {
	a, err := yaml.Marshal(from)
	if err != nil {
		return "", err
	}
	b, err := yaml.Marshal(to)
	if err != nil {
		return "", err
	}
	if bytes.Equal(a, b) {
		return "", nil
	}
	return DiffYAML(a, b, useColor)
}

// DiffYAML computes a YAML-aware diff of two documents using dyff. An empty
// string means no differences.
func DiffYAML(from, to []byte, useColor bool) (string, error) {
	if len(from) == 0 && len(to) == 0 {
		return "", nil
	}

	fromInput, err := parseYAMLInput("saved", from)
	if err != nil {
		return "", fmt.Errorf("parsing saved YAML: %w", err)
	}
	toInput, err := parseYAMLInput("generated", to)
	if err != nil {
		return "", fmt.Errorf("parsing generated YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}
	return renderDyffReport(report, useColor)
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// RenderDiff renders a snapshot diff with section headers and a summary.
func RenderDiff(d SnapshotDiff) string {
	if !d.HasChanges() {
		return "No changes detected."
	}

	var sb strings.Builder

	if len(d.Added) > 0 {
		sb.WriteString(StyleAdded.Render("Added:") + "\n")
		for _, name := range d.Added {
			sb.WriteString("  + " + StyleAdded.Render(name) + "\n")
		}
		sb.WriteString("\n")
	}

	if len(d.Removed) > 0 {
		sb.WriteString(StyleRemoved.Render("Removed:") + "\n")
		for _, name := range d.Removed {
			sb.WriteString("  - " + StyleRemoved.Render(name) + "\n")
		}
		sb.WriteString("\n")
	}

	if len(d.Modified) > 0 {
		sb.WriteString(StyleChanged.Render("Modified:") + "\n")
		for _, mod := range d.Modified {
			sb.WriteString("  ~ " + StyleChanged.Render(mod.Name) + "\n")
			sb.WriteString(indent(mod.Diff, "    "))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Summary: ")
	sb.WriteString(diffSummary(len(d.Added), len(d.Removed), len(d.Modified)))
	sb.WriteString("\n")
	return sb.String()
}

func indent(text, prefix string) string {
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			sb.WriteString(prefix + line + "\n")
		}
	}
	return sb.String()
}

func diffSummary(added, removed, modified int) string {
	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, strconv.Itoa(added)+" added")
	}
	if removed > 0 {
		parts = append(parts, strconv.Itoa(removed)+" removed")
	}
	if modified > 0 {
		parts = append(parts, strconv.Itoa(modified)+" modified")
	}
	if len(parts) == 0 {
		return "No changes"
	}
	return strings.Join(parts, ", ")
}
