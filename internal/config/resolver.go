package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kernelmeta/gencontrol/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one setting together with the source it was taken from
// and the lower precedence values it shadows.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// Resolve resolves key using precedence:
// (1) flag, (2) GENCONTROL_<KEY> env, (3) config file, (4) default.
// flagSet reports whether the flag was given on the command line.
func (l *Loader) Resolve(key, flagValue string, flagSet bool) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}

	envValue, envSet := os.LookupEnv(EnvName(key))
	fileSet := l.file.InConfig(key)
	fileValue := fmt.Sprint(l.file.Get(key))

	switch {
	case flagSet:
		rv.Value, rv.Source = flagValue, SourceFlag
		if envSet {
			rv.Shadowed[SourceEnv] = envValue
		}
		if fileSet {
			rv.Shadowed[SourceConfig] = fileValue
		}
	case envSet:
		rv.Value, rv.Source = envValue, SourceEnv
		if fileSet {
			rv.Shadowed[SourceConfig] = fileValue
		}
	case fileSet:
		rv.Value, rv.Source = fileValue, SourceConfig
	default:
		rv.Source = SourceDefault
		if raw := l.v.Get(key); raw != nil {
			rv.Value = fmt.Sprint(raw)
		}
	}
	return rv
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) GENCONTROL_CONFIG env, (3) gencontrol.yaml in root.
func ResolveConfigPath(root, flagValue string) ResolvedValue {
	rv := ResolvedValue{Key: "config", Shadowed: make(map[ConfigSource]string)}
	envValue := os.Getenv(EnvConfig)
	defaultPath := filepath.Join(root, DefaultConfigFile)

	switch {
	case flagValue != "":
		rv.Value, rv.Source = flagValue, SourceFlag
		if envValue != "" {
			rv.Shadowed[SourceEnv] = envValue
		}
		rv.Shadowed[SourceDefault] = defaultPath
	default:
		rv.Value, rv.Source = GetConfigFile(root), SourceDefault
		if envValue != "" {
			rv.Source = SourceEnv
			rv.Shadowed[SourceDefault] = defaultPath
		}
	}
	return rv
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
