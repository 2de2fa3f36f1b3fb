// Package model defines the data structures used throughout Horizon.
//
// These types are shared by the state stores in internal/core, the key-value
// persistence layer and the front-ends. They carry JSON tags because every
// collection is persisted as a JSON blob under its own key.
//
// # Workspace
//
// A [Workspace] groups tabs. Its TabCount is a projection of Tabs and is kept
// equal to the number of live tabs whose WorkspaceID matches.
//
// # Tab
//
// A [Tab] is an open page. Closed tabs may be kept as [ArchivedTab] snapshots,
// and each tab has a stack of [HistoryEntry] values for back navigation.
//
// # Preferences
//
// [Preferences] hold the appearance settings; [Appearance] is the resolved form.
package model
