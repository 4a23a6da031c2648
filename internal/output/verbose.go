package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kernelmeta/gencontrol/internal/control"
)

// VerboseOptions controls verbose output.
type VerboseOptions struct {
	// JSON outputs structured JSON instead of human-readable text
	JSON bool
	// Writer is the output destination
	Writer io.Writer
}

// RunReport summarizes a generation run for verbose output.
type RunReport struct {
	PackageVersion string             `json:"packageVersion"`
	Variants       []string           `json:"variants"`
	Packages       []ReportPackage    `json:"packages"`
	Rules          []string           `json:"rules"`
	Files          []ReportFile       `json:"files"`
	Conflicts      []control.Conflict `json:"conflicts,omitempty"`
}

// ReportPackage describes one generated package.
type ReportPackage struct {
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Architectures []string `json:"architectures"`
}

// ReportFile describes one output file.
type ReportFile struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// WriteVerboseReport writes the report as JSON or human-readable text.
func WriteVerboseReport(report *RunReport, opts VerboseOptions) error {
	if opts.JSON {
		return writeVerboseJSON(report, opts.Writer)
	}
	return writeVerboseHuman(report, opts.Writer)
}

func writeVerboseJSON(report *RunReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func writeVerboseHuman(report *RunReport, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Package version: %s\n\n", report.PackageVersion))

	sb.WriteString("Variants:\n")
	for _, v := range report.Variants {
		sb.WriteString(fmt.Sprintf("  %s\n", v))
	}
	sb.WriteString("\n")

	if len(report.Packages) > 0 {
		sb.WriteString("Packages:\n")
		for _, p := range report.Packages {
			sb.WriteString(fmt.Sprintf("  %s [%s] %s\n",
				StyleNoun.Render(p.Name), strings.Join(p.Architectures, " "), StyleDim.Render(p.Role)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Rules: %d\n\n", len(report.Rules)))

	if len(report.Files) > 0 {
		sb.WriteString("Files:\n")
		for _, f := range report.Files {
			sb.WriteString("  " + FormatFileLine(f.Name, f.Status) + "\n")
		}
		sb.WriteString("\n")
	}

	if len(report.Conflicts) > 0 {
		sb.WriteString("Conflicts:\n")
		for _, c := range report.Conflicts {
			sb.WriteString(fmt.Sprintf("  ⚠ %s: %s differs on %s (kept %q, dropped %q)\n",
				c.Package, c.Field, c.Arch, c.Kept, c.Dropped))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
