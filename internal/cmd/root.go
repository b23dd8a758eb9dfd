// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/mfe/internal/cmdtypes"
	"github.com/opmodel/mfe/internal/config"
	"github.com/opmodel/mfe/internal/output"
)

// NewRootCmd creates the root command for mfe.
func NewRootCmd() *cobra.Command {
	gc := &cmdtypes.GlobalConfig{}

	var (
		configFlag     string
		timestampsFlag bool
	)

	rootCmd := &cobra.Command{
		Use:   "mfe",
		Short: "Micro-frontend host runtime",
		Long: `mfe hosts independently developed frontend modules in one shell.

It discovers module descriptors, keeps the shared state container, page
metadata and alert stores, rewrites module-relative links, and resolves
module API calls against each module's apiBaseUrl.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, gc, configFlag, timestampsFlag)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Path to config file (env: MFE_CONFIG)")
	pf.StringVar(&gc.Flags.ModulesDir, "modules-dir", "", "Modules directory (env: MFE_MODULES_DIR)")
	pf.StringVar(&gc.Flags.APIBaseURL, "api-base-url", "", "Default API base URL (env: MFE_API_BASE_URL)")
	pf.StringVar(&gc.Flags.TokenFile, "token-file", "", "Persisted bearer token file (env: MFE_TOKEN_FILE)")
	pf.StringVar(&gc.Flags.StaleTime, "stale-time", "", "Query cache stale time, e.g. 30s (env: MFE_QUERY_STALE_TIME)")
	pf.BoolVarP(&gc.Verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewModulesCmd(gc),
		NewLinkCmd(gc),
		NewFetchCmd(gc),
		NewStateCmd(gc),
		NewServeCmd(gc),
		NewConfigCmd(gc),
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals resolves configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command, gc *cmdtypes.GlobalConfig, configFlag string, timestampsFlag bool) error {
	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return err
	}
	gc.ConfigPath = pathResult.Value

	fileCfg, err := config.NewFileLoader().Load(gc.ConfigPath)
	if err != nil {
		// Commands like `config init` must work with a broken file.
		output.Debug("config load error", "error", err)
		fileCfg = &config.Config{}
	}

	resolved, values := config.ResolveAll(gc.Flags, fileCfg)
	gc.Config = resolved

	logCfg := output.LogConfig{Verbose: gc.Verbose, Timestamps: resolved.Log.Timestamps}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	}
	output.SetupLogging(logCfg)

	if gc.Verbose {
		output.Debug("initializing CLI", "config", gc.ConfigPath, "source", pathResult.Source)
		config.LogResolvedValues(values)
	}

	return nil
}
