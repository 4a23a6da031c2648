package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kernelmeta/gencontrol/internal/cmdutil"
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/generate"
	"github.com/kernelmeta/gencontrol/internal/output"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	var (
		sf       cmdutil.SourceFlags
		dryRun   bool
		snapshot string
	)

	c := &cobra.Command{
		Use:   "generate [root]",
		Short: "Generate control, rules.gen and side files",
		Long: `Generate the control file, the build rules and the maintainer side files
of the kernel meta-packages.

The source tree defaults to the current directory. Nothing is written when
any variant fails; unchanged files are left untouched.

Examples:
  # Generate into ./debian
  gencontrol generate

  # Show what would be written
  gencontrol generate --dry-run

  # Keep a manifest snapshot for later comparison with 'gencontrol diff'
  gencontrol generate --snapshot manifest.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, args, cfg, &sf, dryRun, snapshot)
		},
	}

	sf.AddTo(c)
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Show the files that would be written without writing them")
	c.Flags().StringVar(&snapshot, "snapshot", "", "Also write a YAML manifest snapshot to this file")

	return c
}

func runGenerate(c *cobra.Command, args []string, cfg *cmdutil.GlobalConfig, sf *cmdutil.SourceFlags, dryRun bool, snapshot string) error {
	run, err := cmdutil.Generate(cmdutil.RunOpts{Args: args, Flags: *sf, Command: c, Config: cfg})
	if err != nil {
		return err
	}
	res := run.Result
	cmdutil.WarnConflicts(res)
	w := c.OutOrStdout()

	if snapshot != "" {
		if err := writeSnapshot(snapshot, run); err != nil {
			return gerrors.NewExitError(err, ExitGeneralError)
		}
		output.Debug("wrote snapshot", "file", snapshot)
	}

	var written []generate.WrittenFile
	if dryRun {
		files, err := res.Render()
		if err != nil {
			return gerrors.NewExitError(err, ExitGeneralError)
		}
		fmt.Fprintln(w, cmdutil.DryRunTree(run.OutputDir, files))
		for _, f := range files {
			written = append(written, generate.WrittenFile{Name: f.Name, Status: output.StatusDryRun})
		}
	} else {
		files, err := res.Write(afero.NewOsFs(), run.OutputDir)
		if err != nil {
			return gerrors.NewExitError(fmt.Errorf("writing output: %w", err), ExitGeneralError)
		}
		written = files
	}
	cmdutil.WriteFileLines(w, run.OutputDir, written)

	if cfg.Verbose {
		report := cmdutil.Report(res, written)
		if err := output.WriteVerboseReport(report, output.VerboseOptions{Writer: c.ErrOrStderr()}); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("%d packages for %d variants (%s)",
		res.Manifest.Len(), len(res.Variants), res.PackageVersion)))
	return nil
}

func writeSnapshot(path string, run *cmdutil.RunResult) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing snapshot: %w", cerr)
		}
	}()

	snap := output.NewSnapshot(run.Result.Manifest, run.Result.PackageVersion)
	if err := output.WriteSnapshot(f, snap, output.FormatYAML); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
