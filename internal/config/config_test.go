package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeINI(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "bolt", cfg.Storage.Backend)
	assert.Equal(t, 800*time.Millisecond, cfg.Navigation.Delay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeINI(t, `
[storage]
backend = sqlite
path = /tmp/state.db

[navigation]
delay = 250ms

[log]
level = debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/state.db", cfg.Storage.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.Navigation.Delay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "keys missing from the file keep their default")
	assert.Equal(t, path, cfg.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeINI(t, "[storage]\nbackend = sqlite\n")

	t.Setenv("HORIZON_STORAGE_BACKEND", "memory")
	t.Setenv("HORIZON_NAVIGATION_DELAY", "2s")
	t.Setenv("HORIZON_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 2*time.Second, cfg.Navigation.Delay)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"backend", "[storage]\nbackend = redis\n"},
		{"delay", "[navigation]\ndelay = 0s\n"},
		{"level", "[log]\nlevel = chatty\n"},
		{"format", "[log]\nformat = xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeINI(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = "/data/horizon.bolt"

	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/data/horizon.bolt", path)

	cfg.Storage.Backend = "memory"
	path, err = cfg.DatabasePath()
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestWriteTo_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.Navigation.Delay = 1500 * time.Millisecond

	var buf bytes.Buffer
	_, err := cfg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[storage]")

	loaded, err := Load(writeINI(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg.Storage, loaded.Storage)
	assert.Equal(t, cfg.Navigation, loaded.Navigation)
	assert.Equal(t, cfg.Log, loaded.Log)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
