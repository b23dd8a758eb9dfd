package cmdutil

import (
	"fmt"

	"github.com/opmodel/mfe/internal/cmdtypes"
	"github.com/opmodel/mfe/internal/config"
	"github.com/opmodel/mfe/internal/shell"
)

// ShellOptions converts the resolved configuration into shell options.
func ShellOptions(gc *cmdtypes.GlobalConfig) (shell.Options, error) {
	cfg := gc.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	stale, err := cfg.StaleTimeDuration()
	if err != nil {
		return shell.Options{}, fmt.Errorf("invalid configuration: %w", err)
	}
	modulesDir, err := config.ExpandPath(cfg.ModulesDir)
	if err != nil {
		return shell.Options{}, fmt.Errorf("expanding modules dir: %w", err)
	}
	tokenFile, err := config.ExpandPath(cfg.TokenFile)
	if err != nil {
		return shell.Options{}, fmt.Errorf("expanding token file: %w", err)
	}

	return shell.Options{
		ModulesDir:     modulesDir,
		DefaultAPIBase: cfg.APIBaseURL,
		TokenFile:      tokenFile,
		StaleTime:      stale,
	}, nil
}

// NewShell builds the host runtime from the resolved configuration.
func NewShell(gc *cmdtypes.GlobalConfig) (*shell.Shell, error) {
	opts, err := ShellOptions(gc)
	if err != nil {
		return nil, err
	}
	return shell.New(opts)
}

// HostAddr returns the host API address: flag, then server.addr.
func HostAddr(gc *cmdtypes.GlobalConfig, flag string) string {
	if flag != "" {
		return flag
	}
	if gc.Config != nil && gc.Config.Server.Addr != "" {
		return gc.Config.Server.Addr
	}
	return config.DefaultServerAddr
}
