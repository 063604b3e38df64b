package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, 30*time.Second, cfg.Progress.CacheTTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
db:
  path: /var/lib/activation/data.db
transport:
  mode: stdio
progress:
  cache_ttl: 2m
rate_limit:
  requests: 10
  window: 30s
`), 0o600))

	t.Setenv("ACTIVATION_CONFIG_PATH", path)
	t.Setenv("ACTIVATION_SERVER_PORT", "9191")
	t.Setenv("ACTIVATION_LOG_LEVEL", "DEBUG")
	t.Setenv("ACTIVATION_AUTH_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, "/var/lib/activation/data.db", cfg.DB.Path)
	require.Equal(t, TransportStdio, cfg.Transport.Mode)
	require.Equal(t, "debug", cfg.Log.Level)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, "default", cfg.Auth.DefaultTenant)
	require.Equal(t, 2*time.Minute, cfg.Progress.CacheTTL)
	require.Equal(t, RateLimitConfig{Requests: 10, Window: 30 * time.Second}, cfg.RateLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ACTIVATION_SERVER_HOST", "127.0.0.1")
	t.Setenv("ACTIVATION_DB_PATH", ":memory:")
	t.Setenv("ACTIVATION_LOG_PATH", "/tmp/activation.log")
	t.Setenv("ACTIVATION_CACHE_TTL", "0s")
	t.Setenv("ACTIVATION_RATE_LIMIT", "0")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, ":memory:", cfg.DB.Path)
	require.Equal(t, "/tmp/activation.log", cfg.Log.Path)
	require.Zero(t, cfg.Progress.CacheTTL)
	require.Zero(t, cfg.RateLimit.Requests)
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"ACTIVATION_SERVER_PORT", "eighty", "ACTIVATION_SERVER_PORT"},
		{"ACTIVATION_SERVER_PORT", "70000", "server.port"},
		{"ACTIVATION_AUTH_ENABLED", "maybe", "ACTIVATION_AUTH_ENABLED"},
		{"ACTIVATION_CACHE_TTL", "soon", "ACTIVATION_CACHE_TTL"},
		{"ACTIVATION_CACHE_TTL", "-1s", "cache_ttl"},
		{"ACTIVATION_RATE_LIMIT", "-5", "rate_limit.requests"},
		{"ACTIVATION_TRANSPORT", "grpc", "transport.mode"},
		{"ACTIVATION_LOG_LEVEL", "verbose", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("ACTIVATION_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.ErrorContains(t, err, "read config file")
}

func TestValidate_RateLimitWindow(t *testing.T) {
	cfg := Default()
	cfg.RateLimit.Window = 0
	require.ErrorContains(t, cfg.Validate(), "rate_limit.window")

	cfg.RateLimit.Requests = 0
	require.NoError(t, cfg.Validate())
}
