package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COST_SERVICE_URL", "http://cost-service:8000/forecast")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.CostService.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "0 */5 * * * *", cfg.Session.SweepSchedule)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, slog.LevelInfo, cfg.Logging.SlogLevel())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COST_SERVICE_URL", "https://costs.example.com/api/forecast")
	t.Setenv("COST_SERVICE_TIMEOUT", "5s")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("SESSION_IDLE_TIMEOUT", "10m")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.CostService.Timeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.SlogLevel())
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("COST_SERVICE_URL", "http://localhost:8000/")
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("COST_SERVICE_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.CostService.Timeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			CostService: CostServiceConfig{URL: "http://localhost:8000/forecast", Timeout: time.Second},
			Session:     SessionConfig{IdleTimeout: time.Minute},
			Logging:     LoggingConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing url", func(c *Config) { c.CostService.URL = "" }, "COST_SERVICE_URL is required"},
		{"relative url", func(c *Config) { c.CostService.URL = "/forecast" }, "absolute http(s) URL"},
		{"wrong scheme", func(c *Config) { c.CostService.URL = "ftp://host/forecast" }, "absolute http(s) URL"},
		{"zero timeout", func(c *Config) { c.CostService.Timeout = 0 }, "COST_SERVICE_TIMEOUT"},
		{"zero idle", func(c *Config) { c.Session.IdleTimeout = 0 }, "SESSION_IDLE_TIMEOUT"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range tests {
		cfg := LoggingConfig{Level: name}
		assert.Equal(t, want, cfg.SlogLevel(), name)
	}
}
