package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty path", "", ""},
		{"absolute path", "/absolute/path", "/absolute/path"},
		{"relative path", "relative/path", "relative/path"},
		{"home directory only", "~", homeDir},
		{"path with tilde", "~/some/path", filepath.Join(homeDir, "some/path")},
		{"tilde username pattern (not expanded)", "~username/file", "~username/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestInRoot(t *testing.T) {
	got, err := InRoot("/src/linux-latest", "debian/changelog")
	require.NoError(t, err)
	assert.Equal(t, "/src/linux-latest/debian/changelog", got)

	got, err = InRoot("/src/linux-latest", "/etc/defines.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/defines.yaml", got)

	got, err = InRoot("/src", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetConfigFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	assert.Equal(t, filepath.Join("tree", DefaultConfigFile), GetConfigFile("tree"))

	t.Setenv(EnvConfig, "/elsewhere/gencontrol.yaml")
	assert.Equal(t, "/elsewhere/gencontrol.yaml", GetConfigFile("tree"))
}
