package core

import (
	"log/slog"
	"time"

	"github.com/inovacc/horizon/internal/clock"
)

// DefaultNavigationDelay is the simulated page load latency.
const DefaultNavigationDelay = 800 * time.Millisecond

// Options configures the stores. The zero value is usable: no persistence,
// the default logger, the real clock and the default navigation delay.
type Options struct {
	Storage         Storage
	Logger          *slog.Logger
	Clock           clock.Clock
	NavigationDelay time.Duration

	// OnPersistError is called with every *PersistenceError after it was
	// logged. It runs once the failing operation has released the store
	// lock, so it may read the stores.
	OnPersistError func(error)
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	if o.Clock == nil {
		o.Clock = &clock.RealClock{}
	}

	if o.NavigationDelay <= 0 {
		o.NavigationDelay = DefaultNavigationDelay
	}

	return o
}

func (o Options) persister() *persister {
	return &persister{storage: o.Storage, logger: o.Logger, onError: o.OnPersistError}
}
