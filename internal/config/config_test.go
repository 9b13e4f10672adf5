package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, home string, body string) {
	t.Helper()

	dir := filepath.Join(home, ".config", "petit")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o600))
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Empty(t, cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(home, ".cache", "petit", "timeline.toml"), cfg.CachePath)
	assert.Equal(t, filepath.Join(home, ".cache", "petit", "petit.log"), cfg.LogPath)
	assert.Equal(t, filepath.Join(home, ".config", "petit", "secrets"), cfg.SecretsDir)
	assert.Equal(t, SecretsBackendAuto, cfg.SecretsBackend)
	assert.Equal(t, 60, cfg.RefreshPeriod)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, time.Minute, cfg.FreshnessWindow)
	assert.Equal(t, uint32(200), cfg.FetchLimit)
	assert.Equal(t, 15*time.Second, cfg.CallTimeout)
	assert.False(t, cfg.Compact)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `
[api]
base_url = "https://feed.example/api"
timeout = "5s"

[secrets]
backend = "file"

[timeline]
refresh_period = 30
freshness_window = "2m"
fetch_limit = 50
compact = true
`)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "https://feed.example/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout)
	assert.Equal(t, SecretsBackendFile, cfg.SecretsBackend)
	assert.Equal(t, 30, cfg.RefreshPeriod)
	assert.Equal(t, 2*time.Minute, cfg.FreshnessWindow)
	assert.Equal(t, uint32(50), cfg.FetchLimit)
	assert.True(t, cfg.Compact)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "[api]\nbase_url = \"https://file.example\"\n")
	t.Setenv("PETIT_API_BASE_URL", "https://env.example")
	t.Setenv("PETIT_CACHE_PATH", filepath.Join(home, "elsewhere.toml"))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(home, "elsewhere.toml"), cfg.CachePath)
	assert.Equal(t, filepath.Join(home, "elsewhere.toml"), cfg.Viper().GetString(KeyCachePath))
}

func TestLoadExplicitConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "unknown backend", body: "[secrets]\nbackend = \"vault\"\n", wantErr: "secrets.backend"},
		{name: "zero refresh period", body: "[timeline]\nrefresh_period = 0\n", wantErr: "timeline.refresh_period"},
		{name: "negative tick", body: "[timeline]\ntick_interval = \"-1s\"\n", wantErr: "timeline.tick_interval"},
		{name: "malformed file", body: "[timeline\n", wantErr: "read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)
			writeConfig(t, home, tt.body)

			_, err := Load(viper.New(), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
