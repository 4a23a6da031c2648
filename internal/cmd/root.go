// Package cmd provides CLI command implementations.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kernelmeta/gencontrol/internal/cmdutil"
	"github.com/kernelmeta/gencontrol/internal/config"
	"github.com/kernelmeta/gencontrol/internal/output"
)

// NewRootCmd creates the root command for the gencontrol CLI.
func NewRootCmd() *cobra.Command {
	var (
		cfg            cmdutil.GlobalConfig
		timestampsFlag bool
	)

	rootCmd := &cobra.Command{
		Use:   "gencontrol",
		Short: "Generate kernel meta-package control files",
		Long: `gencontrol generates debian/control, debian/rules.gen and the
maintainer side files of the Linux kernel meta-packages from a layered
defines file and a catalog of package templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initializeLogging(cmd, args, &cfg, timestampsFlag)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFlag, "config", "", "Path to config file (env: GENCONTROL_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewGenerateCmd(&cfg))
	rootCmd.AddCommand(NewListCmd(&cfg))
	rootCmd.AddCommand(NewDiffCmd(&cfg))
	rootCmd.AddCommand(NewConfigCmd(&cfg))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeLogging sets up logging with timestamps resolved as
// flag > env > config > default(true). A config file that fails to load is
// reported by the command that needs it.
func initializeLogging(cmd *cobra.Command, args []string, cfg *cmdutil.GlobalConfig, timestampsFlag bool) {
	logCfg := output.LogConfig{Verbose: cfg.Verbose}

	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else {
		loader := config.NewLoader()
		path := config.ResolveConfigPath(cmdutil.ResolveRoot(args), cfg.ConfigFlag)
		if _, err := loader.Load(path.Value); err == nil {
			rv := loader.Resolve("log.timestamps", "", false)
			if b, err := strconv.ParseBool(rv.Value); err == nil {
				logCfg.Timestamps = output.BoolPtr(b)
			}
		}
	}

	output.SetupLogging(logCfg)
	output.Debug("initializing CLI", "config", cfg.ConfigFlag, "verbose", cfg.Verbose)
}

// Execute runs the CLI with args and returns the process exit code. Errors
// the commands have not printed yet are written to stderr.
func Execute(args []string, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	code := ExitCodeFromError(err)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || !exitErr.Printed {
		fmt.Fprintln(stderr, err)
	}
	output.Debug("exiting", "code", code, "reason", ExitCodeName(code))
	return code
}
