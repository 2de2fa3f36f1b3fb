package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/horizon/internal/application"
	"github.com/inovacc/horizon/internal/config"
	"github.com/inovacc/horizon/internal/process"
	"github.com/inovacc/horizon/internal/service"
	"github.com/spf13/cobra"
)

var (
	configPath string
	backend    string
	dbPath     string
	logLevel   string
	logFormat  string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A workspace-aware tab manager",
	Long: `Horizon keeps browser tabs organized in workspaces.

Tabs, workspaces, history, the tab archive and the theme are persisted in a
local database. Use 'horizon ui' for the interactive shell, or the tab and
workspace commands to script it.`,
	Version:           application.Version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: <appdata>/config.ini)")
	flags.StringVar(&backend, "backend", "", "Storage backend: bolt, sqlite or memory")
	flags.StringVar(&dbPath, "db", "", "Database file")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// initConfig layers the command-line flags over the loaded configuration and
// installs the process logger.
func initConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("backend") {
		c.Storage.Backend = backend
	}

	if flags.Changed("db") {
		c.Storage.Path = dbPath
	}

	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}

	if flags.Changed("log-format") {
		c.Log.Format = logFormat
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.SetDefault(c.NewLogger(cmd.ErrOrStderr()))
	slog.Debug("configuration loaded", "file", c.File, "backend", c.Storage.Backend)

	cfg = c

	return nil
}

// withBrowser opens the configured state, runs fn and closes it. Closing
// settles pending page loads so their results are saved.
func withBrowser(fn func(b *service.Browser) error) (err error) {
	b, err := service.Open(cfg, slog.Default())
	if err != nil {
		if others := process.Running(application.AppName); len(others) > 0 {
			return fmt.Errorf("%w (%s is already running as pid %d)", err, application.AppName, others[0].PID)
		}

		return err
	}

	defer func() {
		if cerr := b.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close storage: %w", cerr)
		}
	}()

	return fn(b)
}
