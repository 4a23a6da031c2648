package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const templateHeader = `# gencontrol configuration.
# Paths are relative to the source tree. Every scalar can be overridden by a
# GENCONTROL_<KEY> environment variable, e.g. GENCONTROL_STRICT=true.
`

// Template renders the default configuration as a commented YAML document.
func Template() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(templateHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	return buf.Bytes(), nil
}
