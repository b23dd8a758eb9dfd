package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
modulesDir: /srv/modules
apiBaseUrl: https://api.example.com
tokenFile: /run/token
server:
  addr: ":9000"
query:
  staleTime: 1m
log:
  timestamps: false
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/srv/modules", cfg.ModulesDir)
		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		assert.Equal(t, "/run/token", cfg.TokenFile)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, "1m", cfg.Query.StaleTime)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Empty(t, cfg.ModulesDir)
		assert.Empty(t, cfg.Server.Addr)
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv("MFE_MODULES_DIR", "/env/modules")
		t.Setenv("MFE_SERVER_ADDR", ":7000")

		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("modulesDir: /file/modules\n"), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/env/modules", cfg.ModulesDir)
		assert.Equal(t, ":7000", cfg.Server.Addr)
	})

	t.Run("file loader ignores env vars", func(t *testing.T) {
		t.Setenv("MFE_MODULES_DIR", "/env/modules")

		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("modulesDir: /file/modules\n"), 0o644))

		cfg, err := NewFileLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/file/modules", cfg.ModulesDir)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("modulesDir: [unclosed\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestLoadWithDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("apiBaseUrl: http://x\n"), 0o644))

	cfg, err := NewFileLoader().LoadWithDefaults(configFile)
	require.NoError(t, err)
	assert.Equal(t, "http://x", cfg.APIBaseURL)
	assert.Equal(t, DefaultModulesDir, cfg.ModulesDir)
}

func TestConfigFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	exists, err = ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}
