// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "splitwallet-dev-secret"

type Config struct {
	Port       int
	DBPath     string
	StaticPath string

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	StatusCacheTTL time.Duration

	// ApplyCompletedSettlements feeds completed settlement records into the
	// balance computation as offsetting payments.
	ApplyCompletedSettlements bool
}

// UsesDevSecret reports whether JWT_SECRET was left at its default.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "./data/splitwallet.db")
	v.SetDefault("STATIC_PATH", "../frontend/static")
	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STATUS_CACHE_TTL", "5m")
	v.SetDefault("SETTLEMENT_APPLY_COMPLETED", false)
	v.AutomaticEnv()
	return v
}

func load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                      v.GetInt("PORT"),
		DBPath:                    v.GetString("DB_PATH"),
		StaticPath:                v.GetString("STATIC_PATH"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		TokenTTL:                  v.GetDuration("TOKEN_TTL"),
		RedisAddr:                 v.GetString("REDIS_ADDR"),
		RedisPassword:             v.GetString("REDIS_PASSWORD"),
		RedisDB:                   v.GetInt("REDIS_DB"),
		StatusCacheTTL:            v.GetDuration("STATUS_CACHE_TTL"),
		ApplyCompletedSettlements: v.GetBool("SETTLEMENT_APPLY_COMPLETED"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", v.GetString("PORT"))
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %q", v.GetString("TOKEN_TTL"))
	}
	if cfg.StatusCacheTTL <= 0 {
		return nil, fmt.Errorf("STATUS_CACHE_TTL must be positive, got %q", v.GetString("STATUS_CACHE_TTL"))
	}
	return cfg, nil
}
