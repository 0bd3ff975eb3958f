// Package config resolves pfw settings from ~/.pfw/config.toml and PFW_*
// environment variables.
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
	envPrefix  = "PFW"

	// Dir is the per-user directory under $HOME.
	Dir = ".pfw"

	KeyAPIBaseURL          = "api.base_url"
	KeyAPITimeout          = "api.timeout"
	KeyProfilePath         = "profile.path"
	KeyMonitorInterval     = "monitor.interval"
	KeyTaskPollInterval    = "tasks.poll_interval"
	KeyAccountPollInterval = "account.poll_interval"
	KeyCacheMaxAge         = "cache.max_age"
	KeyDebug               = "debug"

	DefaultAPIBaseURL          = "http://localhost:28080/api"
	DefaultAPITimeout          = 30 * time.Second
	DefaultMonitorInterval     = 5 * time.Second
	DefaultTaskPollInterval    = 30 * time.Second
	DefaultAccountPollInterval = 10 * time.Second
	DefaultCacheMaxAge         = 5 * time.Minute
	profileFile                = "profile.toml"
)

type Settings struct {
	APIBaseURL          string
	APITimeout          time.Duration
	ProfilePath         string
	MonitorInterval     time.Duration
	TaskPollInterval    time.Duration
	AccountPollInterval time.Duration
	CacheMaxAge         time.Duration
	Debug               bool
}

// Apply registers defaults, the config file location and env bindings on cfg
// and reads the config file if one exists.
func Apply(cfg *viper.Viper) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, Dir))

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(KeyAPIBaseURL, DefaultAPIBaseURL)
	cfg.SetDefault(KeyAPITimeout, DefaultAPITimeout)
	cfg.SetDefault(KeyProfilePath, filepath.Join(homeDir, Dir, profileFile))
	cfg.SetDefault(KeyMonitorInterval, DefaultMonitorInterval)
	cfg.SetDefault(KeyTaskPollInterval, DefaultTaskPollInterval)
	cfg.SetDefault(KeyAccountPollInterval, DefaultAccountPollInterval)
	cfg.SetDefault(KeyCacheMaxAge, DefaultCacheMaxAge)
	cfg.SetDefault(KeyDebug, false)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}

// Load applies cfg and returns the resolved settings.
func Load(cfg *viper.Viper) (Settings, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if err := Apply(cfg); err != nil {
		return Settings{}, err
	}

	settings := Settings{
		APIBaseURL:          strings.TrimSpace(cfg.GetString(KeyAPIBaseURL)),
		APITimeout:          cfg.GetDuration(KeyAPITimeout),
		ProfilePath:         cfg.GetString(KeyProfilePath),
		MonitorInterval:     cfg.GetDuration(KeyMonitorInterval),
		TaskPollInterval:    cfg.GetDuration(KeyTaskPollInterval),
		AccountPollInterval: cfg.GetDuration(KeyAccountPollInterval),
		CacheMaxAge:         cfg.GetDuration(KeyCacheMaxAge),
		Debug:               cfg.GetBool(KeyDebug),
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

func (s Settings) Validate() error {
	if s.APIBaseURL == "" {
		return errors.New("api base url is empty")
	}
	if s.ProfilePath == "" {
		return errors.New("profile path is empty")
	}

	durations := []struct {
		key   string
		value time.Duration
	}{
		{KeyAPITimeout, s.APITimeout},
		{KeyMonitorInterval, s.MonitorInterval},
		{KeyTaskPollInterval, s.TaskPollInterval},
		{KeyAccountPollInterval, s.AccountPollInterval},
		{KeyCacheMaxAge, s.CacheMaxAge},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.value)
		}
	}

	return nil
}
