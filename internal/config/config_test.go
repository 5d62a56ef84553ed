package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every MARKETPRO_ env var that Load() reads.
var allConfigKeys = []string{
	"MARKETPRO_ENV",
	"MARKETPRO_LISTEN_ADDR",
	"MARKETPRO_DB_PATH",
	"MARKETPRO_MASTER_KEY",
	"MARKETPRO_JWT_SECRET",
	"MARKETPRO_TOKEN_TTL",
	"MARKETPRO_RELAY_TIMEOUT",
	"MARKETPRO_ADMIN_USERNAME",
	"MARKETPRO_ADMIN_PASSWORD",
	"MARKETPRO_LOG_LEVEL",
	"MARKETPRO_LOG_FORMAT",
}

// isolateConfigEnv saves and unsets all MARKETPRO_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("MARKETPRO_MASTER_KEY", "master")
	t.Setenv("MARKETPRO_JWT_SECRET", "jwt")
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	setSecrets(t)
	t.Setenv("MARKETPRO_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("MARKETPRO_DB_PATH", "/tmp/test.db")
	t.Setenv("MARKETPRO_TOKEN_TTL", "2h")
	t.Setenv("MARKETPRO_RELAY_TIMEOUT", "10s")
	t.Setenv("MARKETPRO_ADMIN_USERNAME", "admin")
	t.Setenv("MARKETPRO_ADMIN_PASSWORD", "pass")
	t.Setenv("MARKETPRO_LOG_LEVEL", "debug")
	t.Setenv("MARKETPRO_LOG_FORMAT", "JSON")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "master", cfg.MasterKey)
	assert.Equal(t, "jwt", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.RelayTimeout)
	assert.True(t, cfg.HasBootstrapUser())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.UsesDevSecrets())
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	setSecrets(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "marketpro.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.RelayTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.HasBootstrapUser())
}

func TestLoad_SecretsRequiredInProduction(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MARKETPRO_MASTER_KEY", "master")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MARKETPRO_JWT_SECRET")
}

func TestLoad_DevelopmentFallbacks(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MARKETPRO_ENV", "development")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.UsesDevSecrets())
	assert.NotEmpty(t, cfg.MasterKey)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.HasBootstrapUser(), "no default account")
}

func TestLoad_DevelopmentKeepsProvidedSecrets(t *testing.T) {
	isolateConfigEnv(t)
	setSecrets(t)
	t.Setenv("MARKETPRO_ENV", "development")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.UsesDevSecrets())
	assert.Equal(t, "master", cfg.MasterKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"env", "MARKETPRO_ENV", "staging"},
		{"token ttl", "MARKETPRO_TOKEN_TTL", "soon"},
		{"negative relay timeout", "MARKETPRO_RELAY_TIMEOUT", "-1s"},
		{"log level", "MARKETPRO_LOG_LEVEL", "chatty"},
		{"log format", "MARKETPRO_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			setSecrets(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_AdminRequiresBoth(t *testing.T) {
	isolateConfigEnv(t)
	setSecrets(t)
	t.Setenv("MARKETPRO_ADMIN_USERNAME", "admin")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MARKETPRO_ADMIN_PASSWORD")
}
