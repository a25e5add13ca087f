// Package config provides runtime configuration values for the service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

const defaultShutdownTimeout = 15 * time.Second

// Config holds configuration knobs for the HTTP server and the stores behind it.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	LogMode         string
	DatabaseURL     string
	RedisAddr       string
	ProductStore    string
	CartStore       string
	Currency        currency.Unit
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", int(defaultShutdownTimeout/time.Second))
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("PRODUCT_STORE", StoreMemory)
	v.SetDefault("CART_STORE", StoreMemory)
	v.SetDefault("CATALOG_CURRENCY", "USD")

	v.AutomaticEnv()

	return v
}

// shutdownTimeout reads SHUTDOWN_TIMEOUT as whole seconds, or as a duration such as "500ms".
// Unparsable or non-positive values fall back to the default.
func shutdownTimeout(v *viper.Viper) time.Duration {
	raw := strings.TrimSpace(v.GetString("SHUTDOWN_TIMEOUT"))

	if secs, err := time.ParseDuration(raw + "s"); err == nil && secs > 0 {
		return secs
	}
	if d := v.GetDuration("SHUTDOWN_TIMEOUT"); d > 0 {
		return d
	}

	return defaultShutdownTimeout
}

// Load collects configuration from environment with defaults.
func Load() (Config, error) {
	v := newViper()

	cfg := Config{
		HTTPAddr:        strings.TrimSpace(v.GetString("HTTP_ADDR")),
		ShutdownTimeout: shutdownTimeout(v),
		LogMode:         strings.TrimSpace(v.GetString("LOG_MODE")),
		DatabaseURL:     strings.TrimSpace(v.GetString("DATABASE_URL")),
		RedisAddr:       strings.TrimSpace(v.GetString("REDIS_ADDR")),
		ProductStore:    strings.ToLower(strings.TrimSpace(v.GetString("PRODUCT_STORE"))),
		CartStore:       strings.ToLower(strings.TrimSpace(v.GetString("CART_STORE"))),
	}

	code := strings.TrimSpace(v.GetString("CATALOG_CURRENCY"))
	cur, err := currency.ParseISO(code)
	if err != nil {
		return Config{}, fmt.Errorf("CATALOG_CURRENCY[%s] is not valid: %w", code, err)
	}
	cfg.Currency = cur

	switch cfg.ProductStore {
	case StoreMemory, StorePostgres:
	default:
		return Config{}, fmt.Errorf("PRODUCT_STORE[%s] is not supported", cfg.ProductStore)
	}

	switch cfg.CartStore {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		return Config{}, fmt.Errorf("CART_STORE[%s] is not supported", cfg.CartStore)
	}

	if (cfg.ProductStore == StorePostgres || cfg.CartStore == StorePostgres) && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required for the postgres store")
	}

	return cfg, nil
}
