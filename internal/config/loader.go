package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for gencontrol configuration.
const envPrefix = "GENCONTROL"

// Keys whose values can come from a flag, the environment, the config file
// or the default.
var scalarKeys = []string{"defines", "templates", "changelog", "output", "strict", "log.timestamps"}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper

	// file holds the config file alone, to report values shadowed by the
	// environment.
	file *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range scalarKeys {
		_ = v.BindEnv(key, EnvName(key))
	}

	def := DefaultConfig()
	v.SetDefault("defines", def.Defines)
	v.SetDefault("changelog", def.Changelog)
	v.SetDefault("output", def.Output)
	v.SetDefault("strict", def.Strict)
	v.SetDefault("links.flavour", def.Links.Flavour)
	v.SetDefault("links.extra", def.Links.Extra)

	return &Loader{v: v, file: viper.New()}
}

// Keys returns the keys Resolve can track.
func Keys() []string {
	return append([]string(nil), scalarKeys...)
}

// EnvName returns the environment variable bound to key.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load loads configuration from the given file path. A missing file is not
// an error. Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	if expandedPath != "" {
		for _, v := range []*viper.Viper{l.v, l.file} {
			v.SetConfigFile(expandedPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
