package store

import (
	"fmt"
	"strings"
)

// Supported backends
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is the key-value persistence collaborator. Each logical collection
// (tabs, workspaces, theme, ...) is saved as one JSON blob under its own key.
type Store interface {
	Ping() error

	// Load returns the value stored under key. found is false when the key
	// has never been saved.
	Load(key string) (value []byte, found bool, err error)

	// Save replaces the value stored under key.
	Save(key string, value []byte) error

	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Open opens the store for the given backend. path is ignored by the memory backend.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendBolt:
		return NewBolt(path)
	case BackendSQLite:
		return NewSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
