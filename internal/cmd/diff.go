package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kernelmeta/gencontrol/internal/cmdutil"
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	var (
		sf       cmdutil.SourceFlags
		against  string
		exitCode bool
	)

	c := &cobra.Command{
		Use:   "diff [root]",
		Short: "Compare a saved manifest snapshot with a fresh generation",
		Long: `Run a generation without writing anything and compare its manifest with a
snapshot saved by 'gencontrol generate --snapshot'.

Examples:
  gencontrol diff --against manifest.yaml

  # Fail in CI when the packages changed
  gencontrol diff --against manifest.yaml --exit-code`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c, args, cfg, &sf, against, exitCode)
		},
	}

	sf.AddTo(c)
	c.Flags().StringVar(&against, "against", "", "Snapshot file to compare with (required)")
	c.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 when there are differences")
	_ = c.MarkFlagRequired("against")

	return c
}

func runDiff(c *cobra.Command, args []string, cfg *cmdutil.GlobalConfig, sf *cmdutil.SourceFlags, against string, exitCode bool) error {
	saved, err := readSnapshot(against)
	if err != nil {
		cmdutil.PrintError("reading snapshot", err)
		return &ExitError{Code: gerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	run, err := cmdutil.Generate(cmdutil.RunOpts{Args: args, Flags: *sf, Command: c, Config: cfg})
	if err != nil {
		return err
	}
	fresh := output.NewSnapshot(run.Result.Manifest, run.Result.PackageVersion)

	diff, err := output.CompareSnapshots(saved, fresh, output.IsTTY())
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: fmt.Errorf("comparing snapshots: %w", err)}
	}

	fmt.Fprintln(c.OutOrStdout(), output.RenderDiff(diff))
	if exitCode && diff.HasChanges() {
		return &ExitError{
			Code:    ExitGeneralError,
			Err:     fmt.Errorf("manifest differs from %s", against),
			Printed: true,
		}
	}
	return nil
}

func readSnapshot(path string) (*output.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerrors.NewNotFoundError("snapshot does not exist", path,
				"write one with 'gencontrol generate --snapshot'")
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	snap, err := output.ReadSnapshot(f)
	if err != nil {
		return nil, gerrors.NewValidationError(err.Error(), path, "", "")
	}
	return snap, nil
}
