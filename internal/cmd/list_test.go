package cmd

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernelmeta/gencontrol/internal/output"
	"github.com/kernelmeta/gencontrol/internal/testutil"
)

func TestList_Table(t *testing.T) {
	root := testutil.SourceTree(t)

	stdout, _, err := execute(t, "list", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "PACKAGE")
	assert.Contains(t, stdout, "linux-headers-generic")
	assert.Contains(t, stdout, "image-dbg")
}

func TestList_JSON(t *testing.T) {
	root := testutil.SourceTree(t)

	stdout, _, err := execute(t, "list", root, "-o", "json")
	require.NoError(t, err)

	var snap output.Snapshot
	require.NoError(t, json.Unmarshal([]byte(stdout), &snap))
	assert.Equal(t, "5.10+105", snap.PackageVersion)
	assert.Equal(t, "linux-latest", snap.Source["Source"])

	var names []string
	for _, p := range snap.Packages {
		names = append(names, p.Package)
	}
	assert.Contains(t, names, "linux-image-2.6-amd64")
}

func TestList_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "list", t.TempDir(), "-o", "xml")

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitValidationError, exitErr.Code)
}
