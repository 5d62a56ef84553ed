// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Environment names accepted in MARKETPRO_ENV.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Development-only fallbacks. Load never uses them outside EnvDevelopment.
const (
	devMasterKey = "marketpro-development-master-key"
	devJWTSecret = "marketpro-development-jwt-secret"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env           string
	ListenAddr    string
	DBPath        string
	MasterKey     string
	JWTSecret     string
	TokenTTL      time.Duration
	RelayTimeout  time.Duration
	AdminUsername string
	AdminPassword string
	LogLevel      slog.Level
	LogFormat     string

	usesDevSecrets bool
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// UsesDevSecrets reports whether the master key or JWT secret fell back to a
// development value.
func (c *Config) UsesDevSecrets() bool {
	return c.usesDevSecrets
}

// HasBootstrapUser returns true when both admin username and password are set.
// Used by the composition root to decide whether to create the initial account.
func (c *Config) HasBootstrapUser() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// MARKETPRO_MASTER_KEY and MARKETPRO_JWT_SECRET are required unless MARKETPRO_ENV is
// "development". Optional variables with defaults: MARKETPRO_LISTEN_ADDR (127.0.0.1:8080),
// MARKETPRO_DB_PATH (marketpro.db), MARKETPRO_TOKEN_TTL (24h), MARKETPRO_RELAY_TIMEOUT (30s),
// MARKETPRO_LOG_LEVEL (info), MARKETPRO_LOG_FORMAT (text).
func Load() (*Config, error) {
	cfg := &Config{
		Env:          EnvProduction,
		ListenAddr:   "127.0.0.1:8080",
		DBPath:       "marketpro.db",
		TokenTTL:     24 * time.Hour,
		RelayTimeout: 30 * time.Second,
		LogLevel:     slog.LevelInfo,
		LogFormat:    "text",
	}

	if v, ok := os.LookupEnv("MARKETPRO_ENV"); ok && v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != EnvProduction && v != EnvDevelopment {
			return nil, fmt.Errorf("MARKETPRO_ENV must be %q or %q, got %q", EnvProduction, EnvDevelopment, v)
		}
		cfg.Env = v
	}

	if v, ok := os.LookupEnv("MARKETPRO_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}

	if v, ok := os.LookupEnv("MARKETPRO_DB_PATH"); ok {
		cfg.DBPath = v
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("MARKETPRO_TOKEN_TTL", cfg.TokenTTL); err != nil {
		return nil, err
	}
	if cfg.RelayTimeout, err = durationEnv("MARKETPRO_RELAY_TIMEOUT", cfg.RelayTimeout); err != nil {
		return nil, err
	}

	cfg.MasterKey = os.Getenv("MARKETPRO_MASTER_KEY")
	cfg.JWTSecret = os.Getenv("MARKETPRO_JWT_SECRET")
	if cfg.MasterKey == "" || cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("MARKETPRO_MASTER_KEY and MARKETPRO_JWT_SECRET are required outside development")
		}
		if cfg.MasterKey == "" {
			cfg.MasterKey = devMasterKey
		}
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = devJWTSecret
		}
		cfg.usesDevSecrets = true
	}

	cfg.AdminUsername = strings.TrimSpace(os.Getenv("MARKETPRO_ADMIN_USERNAME"))
	cfg.AdminPassword = os.Getenv("MARKETPRO_ADMIN_PASSWORD")
	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		return nil, errors.New("MARKETPRO_ADMIN_USERNAME and MARKETPRO_ADMIN_PASSWORD must be set together")
	}

	if v, ok := os.LookupEnv("MARKETPRO_LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("MARKETPRO_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	if v, ok := os.LookupEnv("MARKETPRO_LOG_FORMAT"); ok && v != "" {
		v = strings.ToLower(v)
		if v != "text" && v != "json" {
			return nil, fmt.Errorf("MARKETPRO_LOG_FORMAT must be \"text\" or \"json\", got %q", v)
		}
		cfg.LogFormat = v
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, v)
	}
	return parsed, nil
}
