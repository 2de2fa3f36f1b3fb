// Package config loads Horizon settings. Values are layered: built-in
// defaults, then the INI config file, then HORIZON_* environment variables.
// Command-line flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/inovacc/horizon/internal/application"
	"github.com/inovacc/horizon/internal/core"
	"github.com/inovacc/horizon/internal/params"
	"github.com/inovacc/horizon/internal/store"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/ini.v1"
)

// Config holds all application configuration.
type Config struct {
	Storage    StorageConfig    `ini:"storage"`
	Navigation NavigationConfig `ini:"navigation"`
	Log        LogConfig        `ini:"log"`

	// File is the config file that was read, empty if none.
	File string `ini:"-" ignored:"true"`
}

// StorageConfig selects where state is persisted.
type StorageConfig struct {
	Backend string `ini:"backend"`

	// Path is the database file. Empty means the default file in the
	// application directory.
	Path string `ini:"path"`
}

// NavigationConfig tunes the simulated page loads.
type NavigationConfig struct {
	Delay time.Duration `ini:"delay"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `ini:"level"`
	Format string `ini:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage:    StorageConfig{Backend: store.BackendBolt},
		Navigation: NavigationConfig{Delay: core.DefaultNavigationDelay},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, the INI file at path and the
// environment. An empty path means the default config file; a missing
// default file is not an error, a missing explicit one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = params.ConfigFile()
	}

	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	if err := envconfig.Process(application.EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}

		return fmt.Errorf("config file: %w", err)
	}

	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := f.MapTo(c); err != nil {
		return fmt.Errorf("failed to map %s: %w", path, err)
	}

	c.File = path

	return nil
}

// Validate checks every value.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendBolt, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want bolt, sqlite or memory)", c.Storage.Backend)
	}

	if c.Navigation.Delay <= 0 {
		return fmt.Errorf("navigation delay must be positive, got %s", c.Navigation.Delay)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}

	return nil
}

// DatabasePath returns the configured database file, or the default file for
// the backend. The memory backend has no file.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.Backend == store.BackendMemory {
		return "", nil
	}

	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}

	return params.DatabaseFile(c.Storage.Backend)
}

// WriteTo writes the configuration in INI form.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	f := ini.Empty()
	if err := ini.ReflectFrom(f, c); err != nil {
		return 0, fmt.Errorf("failed to encode config: %w", err)
	}

	return f.WriteTo(w)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}

	return l, nil
}

// NewLogger builds the process logger described by c.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
