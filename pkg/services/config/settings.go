package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Settings hold the tunable runtime parameters shared by both binaries.
type Settings struct {
	TopN         int           `mapstructure:"top_n"`
	RateBaseline int           `mapstructure:"rate_baseline"`
	FetchLimit   int           `mapstructure:"fetch_limit"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	ListenAddr   string        `mapstructure:"listen_addr"`
	LogFormat    string        `mapstructure:"log_format"` // "text" or "json"
}

// DefaultSettings returns the settings used when no file is provided.
func DefaultSettings() Settings {
	return Settings{
		TopN:         8,
		RateBaseline: 500,
		FetchLimit:   1000,
		CacheTTL:     10 * time.Minute,
		ListenAddr:   ":8080",
		LogFormat:    "json",
	}
}

// LoadSettings reads a YAML settings file and merges it over the defaults.
// Environment variables prefixed DENIALS_ override file values.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	v := viper.New()
	v.SetDefault("top_n", settings.TopN)
	v.SetDefault("rate_baseline", settings.RateBaseline)
	v.SetDefault("fetch_limit", settings.FetchLimit)
	v.SetDefault("cache_ttl", settings.CacheTTL)
	v.SetDefault("listen_addr", settings.ListenAddr)
	v.SetDefault("log_format", settings.LogFormat)

	v.SetEnvPrefix("DENIALS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}
