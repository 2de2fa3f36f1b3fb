// Package core holds the browser state for Horizon: workspaces, tabs and
// appearance preferences.
//
// The stores contain no UI code. Front-ends (the cobra commands and the
// bubbletea shell) call their operations and read their state back.
//
// # Stores
//
//   - [WorkspaceStore] owns the workspace set and the active workspace.
//   - [TabStore] owns the tabs of every workspace, the active tab, per-tab
//     back history and the tab archive. It is attached to a WorkspaceStore
//     and shares its lock, so membership changes and cross-store moves are
//     applied in one critical section.
//   - [ThemeStore] owns the appearance preferences.
//
// # Errors
//
// Operations return a [*NotFoundError] for unknown ids, an
// [*InvariantViolationError] when a change would break an invariant (such as
// deleting the last workspace) and a [*ConflictError] for duplicate workspace
// ids. Match them with errors.Is against [ErrNotFound],
// [ErrInvariantViolation] and [ErrConflict].
//
// # Persistence
//
// Every change is written through a [Storage] as JSON, one key per
// collection (see [AllKeys]). Write failures are logged and passed to
// [Options.OnPersistError]; they never undo the in-memory change.
//
// # Navigation
//
// Navigating a tab marks it loading and schedules a completion on the
// configured clock. Each navigation supersedes the previous one for that tab:
// a completion that fires after a newer navigation started is dropped.
// [TabStore.Flush] settles all pending completions at once.
package core
