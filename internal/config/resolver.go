package config

import (
	"os"
	"sort"

	"github.com/opmodel/mfe/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value and where it came from.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions are the candidate values for one key.
type ResolveOptions struct {
	Key          string
	FlagValue    string
	EnvVar       string
	ConfigValue  string
	DefaultValue string
}

// Resolve picks a value using precedence flag > env > config > default.
// Empty candidates are skipped; non-empty lower candidates are recorded as shadowed.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) MFE_CONFIG env, (3) ~/.mfe/config.yaml default
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return Resolve(ResolveOptions{
		Key:          "config",
		FlagValue:    flagValue,
		EnvVar:       "MFE_CONFIG",
		DefaultValue: paths.ConfigFile,
	}), nil
}

// Flags holds command-line values for the resolvable keys. Empty means unset.
type Flags struct {
	ModulesDir string
	APIBaseURL string
	TokenFile  string
	ServerAddr string
	StaleTime  string
}

// ResolveAll resolves every key against flags, env vars, fileCfg and defaults,
// returning the effective config and the per-key resolution.
func ResolveAll(flags Flags, fileCfg *Config) (*Config, []ResolvedValue) {
	if fileCfg == nil {
		fileCfg = &Config{}
	}
	defaults := DefaultConfig()

	flagValues := map[string]string{
		KeyModulesDir:     flags.ModulesDir,
		KeyAPIBaseURL:     flags.APIBaseURL,
		KeyTokenFile:      flags.TokenFile,
		KeyServerAddr:     flags.ServerAddr,
		KeyQueryStaleTime: flags.StaleTime,
	}

	keys := make([]string, 0, len(EnvVars))
	for k := range EnvVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]ResolvedValue, 0, len(keys))
	byKey := make(map[string]string, len(keys))
	for _, k := range keys {
		rv := Resolve(ResolveOptions{
			Key:          k,
			FlagValue:    flagValues[k],
			EnvVar:       EnvVars[k],
			ConfigValue:  fileCfg.Get(k),
			DefaultValue: defaults.Get(k),
		})
		values = append(values, rv)
		byKey[k] = rv.Value
	}

	cfg := &Config{
		ModulesDir: byKey[KeyModulesDir],
		APIBaseURL: byKey[KeyAPIBaseURL],
		TokenFile:  byKey[KeyTokenFile],
		Server:     ServerConfig{Addr: byKey[KeyServerAddr]},
		Query:      QueryConfig{StaleTime: byKey[KeyQueryStaleTime]},
	}
	switch byKey[KeyLogTimestamps] {
	case "true", "1":
		cfg.Log.Timestamps = output.BoolPtr(true)
	case "false", "0":
		cfg.Log.Timestamps = output.BoolPtr(false)
	}

	return cfg, values
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
