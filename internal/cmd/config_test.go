package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernelmeta/gencontrol/internal/config"
	"github.com/kernelmeta/gencontrol/internal/testutil"
)

func TestConfigInit(t *testing.T) {
	root := t.TempDir()

	stdout, _, err := execute(t, "config", "init", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Config file created:")

	path := filepath.Join(root, config.DefaultConfigFile)
	assert.Contains(t, testutil.ReadFile(t, root, config.DefaultConfigFile), "defines: debian/config/defines.yaml")

	_, _, err = execute(t, "config", "init", root)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "refuses to overwrite")
	assert.Equal(t, ExitGeneralError, exitErr.Code)

	_, _, err = execute(t, "config", "init", root, "--force")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigInit_ConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "custom.yaml")

	_, _, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigVet(t *testing.T) {
	root := t.TempDir()
	_, _, err := execute(t, "config", "init", root)
	require.NoError(t, err)

	stdout, _, err := execute(t, "config", "vet", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Config file is valid:")
}

func TestConfigVet_Invalid(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, config.DefaultConfigFile, "links:\n  flavour: [../NEWS]\n")

	_, stderr, err := execute(t, "config", "vet", root)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitValidationError, exitErr.Code)
	assert.Contains(t, stderr, "links.flavour[0]")
}

func TestConfigVet_Missing(t *testing.T) {
	_, _, err := execute(t, "config", "vet", t.TempDir())

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitNotFound, exitErr.Code)
}
