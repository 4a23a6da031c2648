package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kernelmeta/gencontrol/internal/cmdutil"
	"github.com/kernelmeta/gencontrol/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	var (
		sf     cmdutil.SourceFlags
		format string
	)

	c := &cobra.Command{
		Use:   "list [root]",
		Short: "List the generated packages",
		Long: `Run a generation without writing anything and list the resulting packages
with their architectures and roles.

Examples:
  # Table of packages
  gencontrol list

  # Full manifest snapshot as JSON
  gencontrol list -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runList(c, args, cfg, &sf, format)
		},
	}

	sf.AddTo(c)
	c.Flags().StringVarP(&format, "output", "o", "table",
		fmt.Sprintf("Output format: %s", strings.Join(output.ValidFormats(), ", ")))

	return c
}

func runList(c *cobra.Command, args []string, cfg *cmdutil.GlobalConfig, sf *cmdutil.SourceFlags, format string) error {
	if !slices.Contains(output.ValidFormats(), format) {
		return &ExitError{
			Code: ExitValidationError,
			Err:  fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(output.ValidFormats(), ", ")),
		}
	}

	run, err := cmdutil.Generate(cmdutil.RunOpts{Args: args, Flags: *sf, Command: c, Config: cfg})
	if err != nil {
		return err
	}
	cmdutil.WarnConflicts(run.Result)

	snap := output.NewSnapshot(run.Result.Manifest, run.Result.PackageVersion)
	w := c.OutOrStdout()

	f := output.ParseOutputFormat(format)
	if f == output.FormatTable {
		fmt.Fprintln(w, output.RenderManifestTable(snap))
		return nil
	}
	if err := output.WriteSnapshot(w, snap, f); err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	return nil
}
