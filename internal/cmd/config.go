package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kernelmeta/gencontrol/internal/cmdutil"
	"github.com/kernelmeta/gencontrol/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for gencontrol.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))

	return c
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [root]",
		Short: "Create a new gencontrol configuration file",
		Long: `Create a new gencontrol configuration file with default values.

The configuration file is created as gencontrol.yaml in the source tree by
default. Use --config or GENCONTROL_CONFIG to choose a different location.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigInit(c, args, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runConfigInit(c *cobra.Command, args []string, cfg *cmdutil.GlobalConfig, force bool) error {
	path, err := configPath(args, cfg)
	if err != nil {
		return err
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &ExitError{
			Code: ExitGeneralError,
			Err:  fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
		}
	}

	data, err := config.Template()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file created: %s\n", path)
	return nil
}

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet [root]",
		Short: "Validate the gencontrol configuration file",
		Long: `Validate the gencontrol configuration file: link kinds must be plain file
suffixes and canonical prefixes must name known package roles.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigVet(c, args, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, args []string, cfg *cmdutil.GlobalConfig) error {
	path, err := configPath(args, cfg)
	if err != nil {
		return err
	}

	if err := config.ValidateFile(path); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &ExitError{Code: ExitValidationError, Err: err, Printed: true}
		}
		cmdutil.PrintError("validating config", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", path)
	return nil
}

func configPath(args []string, cfg *cmdutil.GlobalConfig) (string, error) {
	rv := config.ResolveConfigPath(cmdutil.ResolveRoot(args), cfg.ConfigFlag)
	config.LogResolvedValues([]config.ResolvedValue{rv})
	path, err := config.ExpandPath(rv.Value)
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}
	return path, nil
}
