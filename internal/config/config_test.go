package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer_Defaults(t *testing.T) {
	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "configs/patches.yaml", cfg.Catalog)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, 1_000_000, cfg.MaxTrials)
	assert.Equal(t, 5*time.Second, cfg.WatchInterval)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadServer_Env(t *testing.T) {
	t.Setenv("FORECAST_ADDR", "127.0.0.1:9090")
	t.Setenv("FORECAST_WORKERS", "4")
	t.Setenv("FORECAST_WATCH_INTERVAL", "250ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.WatchInterval)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadServer_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"not an int", "FORECAST_WORKERS", "many", "parse env:"},
		{"negative workers", "FORECAST_WORKERS", "-1", "FORECAST_WORKERS must be >= 0"},
		{"zero trials", "FORECAST_MAX_TRIALS", "0", "FORECAST_MAX_TRIALS must be > 0"},
		{"zero interval", "FORECAST_WATCH_INTERVAL", "0s", "FORECAST_WATCH_INTERVAL must be > 0"},
		{"bad level", "LOG_LEVEL", "loud", "parse env:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadServer()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadCLI_RunLayers(t *testing.T) {
	t.Setenv("FORECAST_RUN", "configs/run.yaml,local/run.yaml")

	cfg, err := LoadCLI()
	require.NoError(t, err)

	assert.Equal(t, []string{"configs/run.yaml", "local/run.yaml"}, cfg.Run)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}
