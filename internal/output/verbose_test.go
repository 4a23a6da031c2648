package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernelmeta/gencontrol/internal/control"
)

func testReport() *RunReport {
	return &RunReport{
		PackageVersion: "5.10+105",
		Variants:       []string{"amd64/none/amd64"},
		Packages: []ReportPackage{
			{Name: "linux-image-amd64", Role: "image", Architectures: []string{"amd64"}},
		},
		Rules: []string{"binary-arch"},
		Files: []ReportFile{{Name: "control", Status: StatusCreated}},
		Conflicts: []control.Conflict{
			{Package: "linux-headers-amd64", Field: "Depends", Arch: "arm64", Kept: "a", Dropped: "b"},
		},
	}
}

func TestWriteVerboseReport_Human(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVerboseReport(testReport(), VerboseOptions{Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "Package version: 5.10+105")
	assert.Contains(t, out, "amd64/none/amd64")
	assert.Contains(t, out, "linux-image-amd64")
	assert.Contains(t, out, "Rules: 1")
	assert.Contains(t, out, "control")
	assert.Contains(t, out, `kept "a", dropped "b"`)
}

func TestWriteVerboseReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVerboseReport(testReport(), VerboseOptions{JSON: true, Writer: &buf}))

	var decoded RunReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testReport(), &decoded)
}
