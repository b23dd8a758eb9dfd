package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for mfe.
type Paths struct {
	// ConfigFile is the path to the config file (~/.mfe/config.yaml).
	ConfigFile string

	// TokenFile is the persisted bearer token (~/.mfe/token).
	TokenFile string

	// HomeDir is the mfe home directory (~/.mfe).
	HomeDir string
}

// DefaultPaths returns the default paths for mfe.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	mfeHome := filepath.Join(homeDir, ".mfe")

	return &Paths{
		ConfigFile: filepath.Join(mfeHome, "config.yaml"),
		TokenFile:  filepath.Join(mfeHome, "token"),
		HomeDir:    mfeHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If MFE_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("MFE_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
