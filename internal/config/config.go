// Package config loads the cardsearch runtime tunables from defaults, an
// optional YAML file, and CARDSEARCH_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mtgbrew/cardsearch/pkg/pagecache"
	"github.com/mtgbrew/cardsearch/pkg/ratelimit"
	"github.com/mtgbrew/cardsearch/pkg/scryfall"
)

// Config holds every runtime tunable.
type Config struct {
	// MinInterval is the minimum spacing between upstream dispatches.
	MinInterval time.Duration `mapstructure:"min_interval"`

	// PageSize is the upstream's fixed search page size.
	PageSize int `mapstructure:"page_size"`

	// TTL is the result buffer lifetime.
	TTL time.Duration `mapstructure:"ttl"`

	// MaxLimit bounds the limit a single window request may ask for.
	MaxLimit int `mapstructure:"max_limit"`

	UserAgent string `mapstructure:"user_agent"`

	Search struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"search"`

	Deckvault struct {
		BaseURL  string `mapstructure:"base_url"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	} `mapstructure:"deckvault"`

	Log struct {
		Level  string `mapstructure:"level"`
		Pretty bool   `mapstructure:"pretty"`
	} `mapstructure:"log"`

	Serve struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"serve"`
}

// Load reads configuration. Precedence, lowest to highest: built-in
// defaults, the YAML file at path (when non-empty), environment variables.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("min_interval", ratelimit.DefaultMinInterval.String())
	v.SetDefault("page_size", pagecache.DefaultPageSize)
	v.SetDefault("ttl", pagecache.DefaultTTL.String())
	v.SetDefault("max_limit", 100)
	v.SetDefault("user_agent", "cardsearch/0.1.0 (github.com/mtgbrew/cardsearch)")
	v.SetDefault("search.base_url", scryfall.DefaultBaseURL)
	v.SetDefault("deckvault.base_url", "")
	v.SetDefault("deckvault.username", "")
	v.SetDefault("deckvault.password", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("serve.addr", ":8080")

	v.SetEnvPrefix("CARDSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.PageSize <= 0 {
		return Config{}, fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}
	if cfg.MaxLimit <= 0 {
		return Config{}, fmt.Errorf("max_limit must be positive, got %d", cfg.MaxLimit)
	}

	return cfg, nil
}
