package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/opmodel/mfe/internal/cmdtypes"
	"github.com/opmodel/mfe/internal/cmdutil"
	"github.com/opmodel/mfe/internal/config"
	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/output"
)

const configHeader = `# mfe configuration.
# Every key can be overridden by an MFE_* environment variable or a flag.
`

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
		Long:  `Commands for managing the mfe configuration file.`,
	}

	cmd.AddCommand(
		newConfigInitCmd(gc),
		newConfigVetCmd(gc),
	)

	return cmd
}

func newConfigInitCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a configuration file with every default value.

The file goes to the resolved config path:
  --config flag > MFE_CONFIG env > ~/.mfe/config.yaml

Examples:
  # Initialize configuration
  mfe config init

  # Overwrite existing configuration
  mfe config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runConfigInit(cmd, gc.ConfigPath, force); err != nil {
				cmdutil.PrintError("config init failed", err)
				return cmdtypes.ExitFor(err, true)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")
	return cmd
}

func runConfigInit(cmd *cobra.Command, configPath string, force bool) error {
	path, err := config.ExpandPath(configPath)
	if err != nil || path == "" {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine config path")
	}

	if _, err := os.Stat(path); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err := config.EnsureDir(path); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+path)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark("Configuration initialized at "+path))
	fmt.Fprintln(out, "Validate with: mfe config vet")
	return nil
}

func newConfigVetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the mfe configuration file.

Checks performed:
  1. Config file exists at the resolved path
  2. Config file is valid YAML
  3. Keys and values match the schema (no unknown keys, valid durations and URLs)
  4. The file merged with MFE_* environment overrides is still usable

Examples:
  # Validate default configuration
  mfe config vet

  # Validate custom config path
  mfe config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigVet(cmd, gc.ConfigPath)
		},
	}
}

func runConfigVet(cmd *cobra.Command, configPath string) error {
	output.Debug("validating config", "path", configPath)

	exists, err := config.ConfigFileExists(configPath)
	if err != nil {
		return cmdtypes.ExitFor(err, false)
	}
	if !exists {
		err := &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: configPath,
			Hint:     "Run 'mfe config init' to create default configuration.",
			Cause:    oerrors.ErrNotFound,
		}
		cmdutil.PrintError("config vet failed", err)
		return cmdtypes.ExitFor(err, true)
	}

	v, err := config.NewValidator()
	if err != nil {
		return cmdtypes.ExitFor(err, false)
	}
	if err := v.ValidateFile(configPath); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				output.Error("invalid config", "field", e.Field, "error", e.Message)
			}
			wrapped := fmt.Errorf("%s: %w: %w", configPath, oerrors.ErrValidation, err)
			return cmdtypes.ExitFor(wrapped, true)
		}
		return cmdtypes.ExitFor(err, false)
	}

	effective, err := config.NewLoader().LoadWithDefaults(configPath)
	if err != nil {
		return cmdtypes.ExitFor(err, false)
	}
	if _, err := effective.StaleTimeDuration(); err != nil {
		wrapped := fmt.Errorf("%s: %w", config.EnvVars[config.KeyQueryStaleTime], oerrors.ErrValidation)
		output.Error("invalid environment override", "error", err)
		return cmdtypes.ExitFor(wrapped, true)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+configPath))
	return nil
}
