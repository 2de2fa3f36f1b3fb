package core

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/inovacc/horizon/internal/clock"
	"github.com/inovacc/horizon/internal/model"
	"github.com/inovacc/horizon/internal/store"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	storage *store.Memory
	clock   *clock.FakeClock
	opts    Options
	ws      *WorkspaceStore
	tabs    *TabStore
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture builds seeded stores over in-memory storage and a fake clock.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		storage: store.NewMemory(),
		clock:   clock.NewFakeClock(epoch),
	}

	f.opts = Options{
		Storage:         f.storage,
		Logger:          discardLogger(),
		Clock:           f.clock,
		NavigationDelay: 800 * time.Millisecond,
	}

	f.ws = NewWorkspaceStore(f.opts)
	f.tabs = NewTabStore(f.ws, f.opts)

	return f
}

// reopen loads fresh stores from the fixture's storage.
func (f *fixture) reopen() {
	f.ws = NewWorkspaceStore(f.opts)
	f.tabs = NewTabStore(f.ws, f.opts)
}

func (f *fixture) settle() {
	f.clock.Advance(f.opts.NavigationDelay)
}

func (f *fixture) newTab(t *testing.T, url string) string {
	t.Helper()

	id, err := f.tabs.CreateTab(url, "")
	require.NoError(t, err)

	return id
}

func (f *fixture) tab(t *testing.T, id string) model.Tab {
	t.Helper()

	tab, err := f.tabs.Get(id)
	require.NoError(t, err)

	return tab
}

func tabIDs(tabs []model.Tab) []string {
	ids := make([]string, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}

	return ids
}

// requireConsistent checks the cross-store invariants: membership matches tab
// ownership, positions are dense and at most one workspace and one tab are
// active.
func requireConsistent(t *testing.T, ws *WorkspaceStore, tabs *TabStore) {
	t.Helper()

	all := tabs.Tabs()
	owned := make(map[string]int)

	for i, tab := range all {
		require.Equal(t, i, tab.Position, "position of tab %s", tab.ID)
		owned[tab.WorkspaceID]++
	}

	activeWorkspaces := 0

	for _, w := range ws.List() {
		require.Equal(t, owned[w.ID], w.TabCount, "tab count of %s", w.ID)
		require.Len(t, w.Tabs, w.TabCount, "members of %s", w.ID)

		if w.Active {
			activeWorkspaces++

			require.Equal(t, w.ID, ws.ActiveID())
		}
	}

	if len(ws.List()) > 0 {
		require.Equal(t, 1, activeWorkspaces)
	}

	activeTabs := 0

	for _, tab := range all {
		if tab.IsActive {
			activeTabs++

			require.Equal(t, tab.ID, tabs.ActiveID())
		}
	}

	require.LessOrEqual(t, activeTabs, 1)
}
