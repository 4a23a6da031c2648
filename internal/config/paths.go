package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigFile is the config file looked up in the source tree.
const DefaultConfigFile = "gencontrol.yaml"

// EnvConfig overrides the config file path.
const EnvConfig = "GENCONTROL_CONFIG"

// GetConfigFile returns the config file path for the source tree at root.
// If GENCONTROL_CONFIG is set, it takes precedence.
func GetConfigFile(root string) string {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath
	}
	return filepath.Join(root, DefaultConfigFile)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}

// InRoot resolves path against the source tree root unless it is absolute
// or starts with ~.
func InRoot(root, path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	if expanded == "" || filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return filepath.Join(root, expanded), nil
}
