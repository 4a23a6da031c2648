package cmdutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/generate"
	"github.com/kernelmeta/gencontrol/internal/testutil"
)

func TestPrintError_DetailError(t *testing.T) {
	buf := captureErrors(t)

	PrintError("generation failed", gerrors.NewMissingKeyError("description", "hardware", "description/amd64"))

	out := buf.String()
	assert.Contains(t, out, "  Error: missing configuration key\n")
	assert.Contains(t, out, "  Location: description/amd64\n")
	assert.Contains(t, out, "no value for description.hardware at any level")
}

func TestPrintError_GenericError(t *testing.T) {
	buf := captureErrors(t)

	PrintError("generation failed", errors.New("boom"))

	assert.Empty(t, buf.String(), "plain errors go through the logger")
}

func TestIndentBlock(t *testing.T) {
	assert.Equal(t, "  a\n\n  b\n", indentBlock("a\n\nb\n"))
}

func TestReport(t *testing.T) {
	t.Setenv("GENCONTROL_CONFIG", "")
	root := testutil.SourceTree(t)
	res, err := Generate(RunOpts{Args: []string{root}, Config: &GlobalConfig{}})
	require.NoError(t, err)

	report := Report(res.Result, []generate.WrittenFile{{Name: "control", Status: "created"}})

	assert.Equal(t, "5.10+105", report.PackageVersion)
	assert.Equal(t, []string{"amd64/none/generic"}, report.Variants)
	assert.Contains(t, report.Rules, "binary-arch_amd64_none_generic_real")
	require.NotEmpty(t, report.Packages)
	assert.Equal(t, "linux-source", report.Packages[0].Name)
	assert.Equal(t, "control", report.Files[0].Name)
}

func TestWriteFileLines(t *testing.T) {
	var buf bytes.Buffer
	WriteFileLines(&buf, "debian", []generate.WrittenFile{
		{Name: "control", Status: "created"},
		{Name: "rules.gen", Status: "unchanged"},
	})

	out := buf.String()
	assert.Contains(t, out, "debian/control")
	assert.Contains(t, out, "unchanged")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestDryRunTree(t *testing.T) {
	tree := DryRunTree("debian", []generate.File{
		{Name: "control", Content: []byte("Source: x\n")},
	})
	assert.Contains(t, tree, "debian")
	assert.Contains(t, tree, "control")
	assert.Contains(t, tree, "10 bytes")
}
