package core

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Keys under which each collection is persisted.
const (
	KeyTabs            = "horizon-tabs"
	KeyActiveTab       = "horizon-active-tab"
	KeyTabHistory      = "horizon-tab-history"
	KeyArchivedTabs    = "horizon-archived-tabs"
	KeyWorkspaces      = "horizon-workspaces"
	KeyActiveWorkspace = "horizon-active-workspace"
	KeyTheme           = "horizon-theme"
)

// AllKeys lists every key written by the stores.
var AllKeys = []string{
	KeyTabs, KeyActiveTab, KeyTabHistory, KeyArchivedTabs,
	KeyWorkspaces, KeyActiveWorkspace, KeyTheme,
}

// Storage is the key-value collaborator the stores persist through.
// internal/store provides Bolt, SQLite and in-memory implementations.
type Storage interface {
	Load(key string) (value []byte, found bool, err error)
	Save(key string, value []byte) error
}

// persister serializes collections to Storage. Failures are logged and
// reported, never returned to the mutating caller. Reports are queued until
// the owning store releases its lock; see drain.
type persister struct {
	storage Storage
	logger  *slog.Logger
	onError func(error)

	mu     sync.Mutex
	queued []error
}

func (p *persister) save(key string, v any) {
	if p.storage == nil {
		return
	}

	data, err := json.Marshal(v)
	if err == nil {
		err = p.storage.Save(key, data)
	}

	if err != nil {
		p.report(&PersistenceError{Op: "save", Key: key, Err: err})
	}
}

// load decodes the value under key into v. It returns false when the key is
// missing or unreadable; v is untouched in that case.
func (p *persister) load(key string, v any) bool {
	if p.storage == nil {
		return false
	}

	data, found, err := p.storage.Load(key)
	if err != nil {
		p.report(&PersistenceError{Op: "load", Key: key, Err: err})

		return false
	}

	if !found || len(data) == 0 {
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		p.report(&PersistenceError{Op: "load", Key: key, Err: err})

		return false
	}

	return true
}

func (p *persister) report(err *PersistenceError) {
	p.logger.Warn("persistence failed, keeping in-memory state",
		"op", err.Op, "key", err.Key, "error", err.Err)

	if p.onError == nil {
		return
	}

	p.mu.Lock()
	p.queued = append(p.queued, err)
	p.mu.Unlock()
}

// drain hands queued errors to the hook. It must be called without the store
// lock held, so the hook may read the stores.
func (p *persister) drain() {
	if p.onError == nil {
		return
	}

	p.mu.Lock()
	queued := p.queued
	p.queued = nil
	p.mu.Unlock()

	for _, err := range queued {
		p.onError(err)
	}
}
