// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Configuration keys, as written in the config file.
const (
	KeyModulesDir     = "modulesDir"
	KeyAPIBaseURL     = "apiBaseUrl"
	KeyTokenFile      = "tokenFile"
	KeyServerAddr     = "server.addr"
	KeyQueryStaleTime = "query.staleTime"
	KeyLogTimestamps  = "log.timestamps"
)

// Built-in defaults.
const (
	DefaultModulesDir = "./modules"
	DefaultTokenFile  = "~/.mfe/token"
	DefaultServerAddr = "localhost:8480"
	DefaultStaleTime  = "30s"
)

// ServerConfig contains host API settings.
type ServerConfig struct {
	// Addr is the listen address.
	// Env: MFE_SERVER_ADDR, Default: localhost:8480
	Addr string `json:"addr,omitempty" mapstructure:"addr"`
}

// QueryConfig contains data access settings.
type QueryConfig struct {
	// StaleTime is how long a query result is served from cache, as a Go duration.
	// Env: MFE_QUERY_STALE_TIME, Default: 30s
	StaleTime string `json:"staleTime,omitempty" mapstructure:"staleTime"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the mfe configuration.
// Loaded from ~/.mfe/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// ModulesDir holds one subdirectory per module, each with a module.yaml.
	// Env: MFE_MODULES_DIR
	ModulesDir string `json:"modulesDir,omitempty" mapstructure:"modulesDir"`

	// APIBaseURL is the default API base for modules without apiBaseUrl.
	// Env: MFE_API_BASE_URL
	APIBaseURL string `json:"apiBaseUrl,omitempty" mapstructure:"apiBaseUrl"`

	// TokenFile is where the bearer token is persisted.
	// Env: MFE_TOKEN_FILE
	TokenFile string `json:"tokenFile,omitempty" mapstructure:"tokenFile"`

	Server ServerConfig `json:"server,omitempty" mapstructure:"server"`
	Query  QueryConfig  `json:"query,omitempty" mapstructure:"query"`
	Log    LogConfig    `json:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `mfe config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		ModulesDir: DefaultModulesDir,
		TokenFile:  DefaultTokenFile,
		Server:     ServerConfig{Addr: DefaultServerAddr},
		Query:      QueryConfig{StaleTime: DefaultStaleTime},
	}
}

// WithDefaults returns a copy with empty fields set to their defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	d := DefaultConfig()
	if out.ModulesDir == "" {
		out.ModulesDir = d.ModulesDir
	}
	if out.TokenFile == "" {
		out.TokenFile = d.TokenFile
	}
	if out.Server.Addr == "" {
		out.Server.Addr = d.Server.Addr
	}
	if out.Query.StaleTime == "" {
		out.Query.StaleTime = d.Query.StaleTime
	}
	return &out
}

// StaleTimeDuration parses Query.StaleTime. Empty means the default.
func (c *Config) StaleTimeDuration() (time.Duration, error) {
	s := c.Query.StaleTime
	if s == "" {
		s = DefaultStaleTime
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", KeyQueryStaleTime, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", KeyQueryStaleTime)
	}
	return d, nil
}

// Get returns the string form of key, or "" when unset.
func (c *Config) Get(key string) string {
	switch key {
	case KeyModulesDir:
		return c.ModulesDir
	case KeyAPIBaseURL:
		return c.APIBaseURL
	case KeyTokenFile:
		return c.TokenFile
	case KeyServerAddr:
		return c.Server.Addr
	case KeyQueryStaleTime:
		return c.Query.StaleTime
	case KeyLogTimestamps:
		if c.Log.Timestamps == nil {
			return ""
		}
		return fmt.Sprintf("%t", *c.Log.Timestamps)
	}
	return ""
}
