// Package service assembles the stores over a storage backend and provides
// the operations shared by the command line and the interactive shell.
package service

import (
	"fmt"
	"log/slog"

	"github.com/inovacc/horizon/internal/clock"
	"github.com/inovacc/horizon/internal/config"
	"github.com/inovacc/horizon/internal/core"
	"github.com/inovacc/horizon/internal/store"
)

// Browser is a loaded browser state: workspaces, tabs and theme, persisted
// through one store.
type Browser struct {
	Workspaces *core.WorkspaceStore
	Tabs       *core.TabStore
	Theme      *core.ThemeStore

	store  store.Store
	opts   core.Options
	logger *slog.Logger
}

// Open opens the configured storage backend and loads the stores from it.
func Open(cfg *config.Config, logger *slog.Logger) (*Browser, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Storage.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}

	if err := st.Ping(); err != nil {
		_ = st.Close()

		return nil, fmt.Errorf("storage not reachable: %w", err)
	}

	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "path", path)

	return New(st, core.Options{
		Logger:          logger,
		NavigationDelay: cfg.Navigation.Delay,
	}), nil
}

// New loads the stores from st. opts.Storage is replaced by st.
func New(st store.Store, opts core.Options) *Browser {
	opts.Storage = st
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Clock == nil {
		opts.Clock = &clock.RealClock{}
	}

	b := &Browser{store: st, opts: opts, logger: opts.Logger}
	b.load()

	return b
}

func (b *Browser) load() {
	b.Workspaces = core.NewWorkspaceStore(b.opts)
	b.Tabs = core.NewTabStore(b.Workspaces, b.opts)
	b.Theme = core.NewThemeStore(b.opts)
}

// Store returns the underlying storage.
func (b *Browser) Store() store.Store {
	return b.store
}

// Close settles pending navigations, so their results are saved, and closes
// the storage.
func (b *Browser) Close() error {
	if err := b.Tabs.Close(); err != nil {
		return err
	}

	return b.store.Close()
}
