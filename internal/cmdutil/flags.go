// Package cmdutil provides shared command utilities for the gencontrol
// subcommands. It centralizes flag groups, the generation run preamble and
// error and summary output.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// GlobalConfig holds the root command flags, resolved during
// PersistentPreRunE and passed into every subcommand constructor.
type GlobalConfig struct {
	// ConfigFlag is the raw --config flag value.
	ConfigFlag string

	// Verbose enables debug logging and the verbose run report.
	Verbose bool
}

// SourceFlags holds flags common to commands that run a generation
// (generate, list, diff).
type SourceFlags struct {
	Defines   string
	Templates string
	Changelog string
	Strict    bool
}

// AddTo registers the source flags on the given cobra command.
func (f *SourceFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Defines, "defines", "",
		"Defines file: .yaml, .toml or .json (env: GENCONTROL_DEFINES)")
	cmd.Flags().StringVar(&f.Templates, "templates", "",
		"Template directory overlaid on the built-in templates (env: GENCONTROL_TEMPLATES)")
	cmd.Flags().StringVar(&f.Changelog, "changelog", "",
		"Changelog to read the package version from (env: GENCONTROL_CHANGELOG)")
	cmd.Flags().BoolVar(&f.Strict, "strict", false,
		"Fail when a package differs between architectures (env: GENCONTROL_STRICT)")
}

// flagValues maps config keys to the flag values of f and whether each
// flag was set on cmd.
func (f *SourceFlags) flagValues(cmd *cobra.Command) map[string]flagValue {
	changed := func(name string) bool {
		return cmd != nil && cmd.Flags().Changed(name)
	}
	strict := "false"
	if f.Strict {
		strict = "true"
	}
	return map[string]flagValue{
		"defines":   {f.Defines, changed("defines")},
		"templates": {f.Templates, changed("templates")},
		"changelog": {f.Changelog, changed("changelog")},
		"strict":    {strict, changed("strict")},
	}
}

type flagValue struct {
	value string
	set   bool
}

// ResolveRoot returns the source tree from command args, defaulting to the
// current directory.
func ResolveRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
