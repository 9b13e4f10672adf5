package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "PETIT"

	KeyAPIBaseURL      = "api.base_url"
	KeyCallTimeout     = "api.timeout"
	KeyCachePath       = "cache.path"
	KeySecretsBackend  = "secrets.backend"
	KeySecretsDir      = "secrets.dir"
	KeyLogPath         = "log.path"
	KeyLogLevel        = "log.level"
	KeyRefreshPeriod   = "timeline.refresh_period"
	KeyTickInterval    = "timeline.tick_interval"
	KeyFreshnessWindow = "timeline.freshness_window"
	KeyFetchLimit      = "timeline.fetch_limit"
	KeyCompact         = "timeline.compact"
)

const (
	SecretsBackendAuto = "auto"
	SecretsBackendPass = "pass"
	SecretsBackendFile = "file"
)

type Config struct {
	APIBaseURL      string
	CallTimeout     time.Duration
	CachePath       string
	SecretsBackend  string
	SecretsDir      string
	LogPath         string
	LogLevel        string
	RefreshPeriod   int
	TickInterval    time.Duration
	FreshnessWindow time.Duration
	FetchLimit      uint32
	Compact         bool

	v *viper.Viper
}

// Load reads ~/.config/petit/config.toml (or configFile when set) and
// PETIT_* environment overrides on top of the defaults.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, ".config", "petit"))
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cacheDir := filepath.Join(homeDir, ".cache", "petit")
	v.SetDefault(KeyAPIBaseURL, "")
	v.SetDefault(KeyCallTimeout, 15*time.Second)
	v.SetDefault(KeyCachePath, filepath.Join(cacheDir, "timeline.toml"))
	v.SetDefault(KeySecretsBackend, SecretsBackendAuto)
	v.SetDefault(KeySecretsDir, filepath.Join(homeDir, ".config", "petit", "secrets"))
	v.SetDefault(KeyLogPath, filepath.Join(cacheDir, "petit.log"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyRefreshPeriod, 60)
	v.SetDefault(KeyTickInterval, time.Second)
	v.SetDefault(KeyFreshnessWindow, time.Minute)
	v.SetDefault(KeyFetchLimit, 200)
	v.SetDefault(KeyCompact, false)

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		APIBaseURL:      strings.TrimSpace(v.GetString(KeyAPIBaseURL)),
		CallTimeout:     v.GetDuration(KeyCallTimeout),
		CachePath:       v.GetString(KeyCachePath),
		SecretsBackend:  strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend))),
		SecretsDir:      v.GetString(KeySecretsDir),
		LogPath:         v.GetString(KeyLogPath),
		LogLevel:        v.GetString(KeyLogLevel),
		RefreshPeriod:   v.GetInt(KeyRefreshPeriod),
		TickInterval:    v.GetDuration(KeyTickInterval),
		FreshnessWindow: v.GetDuration(KeyFreshnessWindow),
		FetchLimit:      v.GetUint32(KeyFetchLimit),
		Compact:         v.GetBool(KeyCompact),
		v:               v,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Viper exposes the resolved settings to adapters that read their own keys.
func (c Config) Viper() *viper.Viper {
	if c.v == nil {
		return viper.New()
	}
	return c.v
}

func (c Config) validate() error {
	switch c.SecretsBackend {
	case SecretsBackendAuto, SecretsBackendPass, SecretsBackendFile:
	default:
		return fmt.Errorf("invalid %s %q: want auto, pass or file", KeySecretsBackend, c.SecretsBackend)
	}
	if c.RefreshPeriod <= 0 {
		return fmt.Errorf("invalid %s %d: must be positive", KeyRefreshPeriod, c.RefreshPeriod)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("invalid %s %s: must be positive", KeyTickInterval, c.TickInterval)
	}
	if c.FreshnessWindow <= 0 {
		return fmt.Errorf("invalid %s %s: must be positive", KeyFreshnessWindow, c.FreshnessWindow)
	}
	if c.FetchLimit == 0 {
		return fmt.Errorf("invalid %s: must be positive", KeyFetchLimit)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("invalid %s %s: must be positive", KeyCallTimeout, c.CallTimeout)
	}
	if c.CachePath == "" {
		return errors.New("cache path is empty")
	}

	return nil
}
