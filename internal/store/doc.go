// Package store provides the key-value persistence layer for Horizon.
//
// The package defines the [Store] interface: Load and Save of opaque blobs by
// key. The state stores in internal/core serialize each collection to JSON and
// hand it to a Store after every committed mutation.
//
// # Backends
//
//   - [Bolt]: BoltDB, an embedded key-value store (default)
//   - [SQLite]: a single kv table in a pure Go SQLite database
//   - [Memory]: a map, for tests and throwaway sessions
//
// Use [Open] to pick a backend by name:
//
//	storage, err := store.Open(store.BackendBolt, "/path/horizon.bolt")
//	value, found, err := storage.Load("horizon-tabs")
package store
