package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/generate"
	"github.com/kernelmeta/gencontrol/internal/output"
)

// errWriter receives detailed error output. Tests replace it.
var errWriter io.Writer = os.Stderr

// PrintError prints a generation error in a user-friendly format. Errors
// carrying details are printed as a block after a one-line summary; other
// errors fall back to the key-value log format.
func PrintError(msg string, err error) {
	var detail *gerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(fmt.Sprintf("%s: %s", msg, detail.Type))
		fmt.Fprint(errWriter, indentBlock(err.Error()))
		return
	}
	output.Error(msg, "error", err)
}

func indentBlock(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// WarnConflicts logs a summary of the packages kept at their first-seen
// values.
func WarnConflicts(res *generate.Result) {
	conflicts := res.Manifest.Conflicts()
	if len(conflicts) == 0 {
		return
	}
	packages := make(map[string]struct{})
	for _, c := range conflicts {
		packages[c.Package] = struct{}{}
	}
	output.Warn("packages differ between architectures",
		"packages", len(packages), "fields", len(conflicts))
}

// WriteFileLines writes one status line per file, with paths under dir.
func WriteFileLines(w io.Writer, dir string, files []generate.WrittenFile) {
	for _, f := range files {
		fmt.Fprintln(w, output.FormatFileLine(filepath.Join(dir, f.Name), f.Status))
	}
}

// DryRunTree renders the files a run would write as a tree rooted at dir.
func DryRunTree(dir string, files []generate.File) string {
	entries := make(map[string]string, len(files))
	for _, f := range files {
		entries[f.Name] = fmt.Sprintf("%d bytes", len(f.Content))
	}
	return output.RenderFileTree(dir, entries)
}

// Report builds the verbose run report of res.
func Report(res *generate.Result, written []generate.WrittenFile) *output.RunReport {
	report := &output.RunReport{
		PackageVersion: res.PackageVersion,
		Conflicts:      res.Manifest.Conflicts(),
	}
	for _, v := range res.Variants {
		report.Variants = append(report.Variants, v.String())
	}
	for _, p := range res.Manifest.Packages() {
		report.Packages = append(report.Packages, output.ReportPackage{
			Name:          p.Name(),
			Role:          p.Role,
			Architectures: p.Architectures(),
		})
	}
	for _, r := range res.Makefile.Rules() {
		report.Rules = append(report.Rules, r.Name)
	}
	for _, f := range written {
		report.Files = append(report.Files, output.ReportFile{Name: f.Name, Status: f.Status})
	}
	return report
}
