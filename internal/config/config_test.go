package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "./modules", cfg.ModulesDir)
	assert.Equal(t, "~/.mfe/token", cfg.TokenFile)
	assert.Equal(t, "localhost:8480", cfg.Server.Addr)
	assert.Equal(t, "30s", cfg.Query.StaleTime)
	assert.Empty(t, cfg.APIBaseURL)
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestWithDefaults_KeepsSetValues(t *testing.T) {
	cfg := (&Config{ModulesDir: "/srv/modules", Query: QueryConfig{StaleTime: "1m"}}).WithDefaults()

	assert.Equal(t, "/srv/modules", cfg.ModulesDir)
	assert.Equal(t, "1m", cfg.Query.StaleTime)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultTokenFile, cfg.TokenFile)
}

func TestStaleTimeDuration(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{name: "empty uses default", value: "", want: 30 * time.Second},
		{name: "minutes", value: "2m", want: 2 * time.Minute},
		{name: "zero", value: "0s", want: 0},
		{name: "garbage", value: "soon", wantErr: true},
		{name: "negative", value: "-1s", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Query: QueryConfig{StaleTime: tt.value}}
			got, err := cfg.StaleTimeDuration()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet(t *testing.T) {
	off := false
	cfg := &Config{
		ModulesDir: "m",
		APIBaseURL: "http://api",
		TokenFile:  "tok",
		Server:     ServerConfig{Addr: ":1"},
		Query:      QueryConfig{StaleTime: "5s"},
		Log:        LogConfig{Timestamps: &off},
	}

	assert.Equal(t, "m", cfg.Get(KeyModulesDir))
	assert.Equal(t, "http://api", cfg.Get(KeyAPIBaseURL))
	assert.Equal(t, "tok", cfg.Get(KeyTokenFile))
	assert.Equal(t, ":1", cfg.Get(KeyServerAddr))
	assert.Equal(t, "5s", cfg.Get(KeyQueryStaleTime))
	assert.Equal(t, "false", cfg.Get(KeyLogTimestamps))
	assert.Empty(t, cfg.Get("unknown"))
	assert.Empty(t, (&Config{}).Get(KeyLogTimestamps))
}
