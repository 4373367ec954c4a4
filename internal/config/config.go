package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for the dashboard service. Values come
// from environment variables prefixed with DASHBOARD_ (e.g.
// DASHBOARD_ITEM_API_URL), falling back to the defaults below.
type Config struct {
	ListenAddr     string        `mapstructure:"listen_addr"`
	ItemAPIURL     string        `mapstructure:"item_api_url"`
	PageSize       int           `mapstructure:"page_size"`
	MaxItems       int           `mapstructure:"max_items"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	DatabaseURL    string        `mapstructure:"database_url"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AlertChannel   string        `mapstructure:"alert_channel"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("dashboard")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("item_api_url", "http://localhost:8001")
	v.SetDefault("page_size", 1000)
	v.SetDefault("max_items", 20000)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("database_url", "")
	v.SetDefault("jwt_secret", "super-secret-key")
	v.SetDefault("alert_channel", "dashboard:alerts")

	// AutomaticEnv alone does not surface env vars through Unmarshal, so
	// bind each key explicitly.
	for _, key := range []string{
		"listen_addr", "item_api_url", "page_size", "max_items",
		"request_timeout", "redis_addr", "database_url", "jwt_secret",
		"alert_channel",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind config key %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.PageSize <= 0 {
		return Config{}, fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}
	if cfg.MaxItems < cfg.PageSize {
		return Config{}, fmt.Errorf("max_items (%d) must be at least page_size (%d)", cfg.MaxItems, cfg.PageSize)
	}

	return cfg, nil
}
