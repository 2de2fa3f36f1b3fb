package core

import (
	"testing"
	"time"

	"github.com/inovacc/horizon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTab_InActiveWorkspace(t *testing.T) {
	f := newFixture(t)

	_, err := f.ws.CreateWorkspace("Design", "", "")
	require.NoError(t, err)
	require.NoError(t, f.ws.SwitchWorkspace("design"))

	id := f.newTab(t, "")
	tab := f.tab(t, id)

	assert.Equal(t, "design", tab.WorkspaceID)
	assert.Equal(t, model.BlankURL, tab.URL)
	assert.Equal(t, model.BlankTitle, tab.Title)
	assert.True(t, tab.IsLoading)
	assert.False(t, tab.IsActive, "new tabs are not activated")
	assert.Equal(t, epoch, tab.CreatedAt)

	w, err := f.ws.Get("design")
	require.NoError(t, err)
	assert.Equal(t, 1, w.TabCount)

	requireConsistent(t, f.ws, f.tabs)
}

func TestCreateTab_NoActiveWorkspace(t *testing.T) {
	opts := Options{Logger: discardLogger()}
	ws := NewEmptyWorkspaceStore(opts)
	tabs := NewTabStore(ws, opts)

	_, err := tabs.CreateTab("example.com", "")
	require.ErrorIs(t, err, ErrInvariantViolation)
	assert.Empty(t, tabs.Tabs())
}

func TestCreateTab_Completes(t *testing.T) {
	f := newFixture(t)

	id := f.newTab(t, "example.com")
	assert.Equal(t, "https://example.com", f.tab(t, id).URL)

	f.settle()

	tab := f.tab(t, id)
	assert.False(t, tab.IsLoading)
	assert.Equal(t, "Example", tab.Title)
	assert.Equal(t, "https://www.google.com/s2/favicons?domain=example.com", tab.Favicon)
	assert.Zero(t, f.clock.Pending())
}

func TestBlankTab_CompletesWithoutFavicon(t *testing.T) {
	f := newFixture(t)

	id := f.newTab(t, "")
	f.settle()

	tab := f.tab(t, id)
	assert.False(t, tab.IsLoading)
	assert.Equal(t, model.BlankTitle, tab.Title)
	assert.Empty(t, tab.Favicon)
}

func TestTabCountInvariant(t *testing.T) {
	f := newFixture(t)

	var ids []string

	for _, ws := range []string{"work", "research", "work", "learning", "work"} {
		require.NoError(t, f.ws.SwitchWorkspace(ws))
		ids = append(ids, f.newTab(t, ""))
		requireConsistent(t, f.ws, f.tabs)
	}

	for _, id := range []string{ids[2], ids[0], ids[4]} {
		require.NoError(t, f.tabs.CloseTab(id))
		requireConsistent(t, f.ws, f.tabs)
	}

	work, err := f.ws.Get("work")
	require.NoError(t, err)
	assert.Zero(t, work.TabCount)

	research, err := f.ws.Get("research")
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1]}, research.Tabs)
}

func TestActivateTab(t *testing.T) {
	f := newFixture(t)

	a := f.newTab(t, "")
	b := f.newTab(t, "")

	f.clock.Set(epoch.Add(time.Hour))
	require.NoError(t, f.tabs.ActivateTab(a))
	require.NoError(t, f.tabs.ActivateTab(b))

	assert.Equal(t, b, f.tabs.ActiveID())
	assert.False(t, f.tab(t, a).IsActive)
	assert.True(t, f.tab(t, b).IsActive)
	assert.Equal(t, epoch.Add(time.Hour), f.tab(t, b).LastAccessed)

	active, ok := f.tabs.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, b, active.ID)

	require.ErrorIs(t, f.tabs.ActivateTab("nope"), ErrNotFound)
	assert.Equal(t, b, f.tabs.ActiveID())
}

func TestCloseTab_ActivatesReplacement(t *testing.T) {
	f := newFixture(t)

	a := f.newTab(t, "")
	b := f.newTab(t, "")
	c := f.newTab(t, "")

	require.NoError(t, f.tabs.ActivateTab(b))

	require.NoError(t, f.tabs.CloseTab(b))
	assert.Equal(t, c, f.tabs.ActiveID(), "the tab that took the closed index is activated")

	require.NoError(t, f.tabs.CloseTab(c))
	assert.Equal(t, a, f.tabs.ActiveID(), "closing the last tab falls back to the previous one")

	require.NoError(t, f.tabs.CloseTab(a))
	assert.Empty(t, f.tabs.ActiveID())

	_, ok := f.tabs.ActiveTab()
	assert.False(t, ok)

	require.ErrorIs(t, f.tabs.CloseTab(a), ErrNotFound)
	requireConsistent(t, f.ws, f.tabs)
}

func TestCloseTab_ReplacementStaysInWorkspace(t *testing.T) {
	f := newFixture(t)

	a := f.newTab(t, "")

	require.NoError(t, f.ws.SwitchWorkspace("work"))
	b := f.newTab(t, "")
	require.NoError(t, f.tabs.ActivateTab(b))

	require.NoError(t, f.tabs.CloseTab(b))
	assert.Empty(t, f.tabs.ActiveID(), "tabs of other workspaces are not candidates")
	assert.False(t, f.tab(t, a).IsActive)
}

func TestCloseTab_InactiveKeepsActive(t *testing.T) {
	f := newFixture(t)

	a := f.newTab(t, "")
	b := f.newTab(t, "")
	require.NoError(t, f.tabs.ActivateTab(a))

	require.NoError(t, f.tabs.CloseTab(b))
	assert.Equal(t, a, f.tabs.ActiveID())
}

func TestCloseTab_DropsHistoryAndPending(t *testing.T) {
	f := newFixture(t)

	id := f.newTab(t, "example.com")
	f.settle()
	require.NoError(t, f.tabs.NavigateTab(id, "golang.org", true))
	require.Len(t, f.tabs.History(id), 1)

	require.NoError(t, f.tabs.CloseTab(id))
	assert.Empty(t, f.tabs.History(id))
	assert.NotContains(t, f.tabs.HistoryMap(), id)
	assert.Zero(t, f.clock.Pending())
}

func TestUpdateTab(t *testing.T) {
	f := newFixture(t)

	a := f.newTab(t, "")
	b := f.newTab(t, "")

	title := "Docs"
	loading := false
	require.NoError(t, f.tabs.UpdateTab(a, model.TabUpdate{Title: &title, IsLoading: &loading}))

	tab := f.tab(t, a)
	assert.Equal(t, "Docs", tab.Title)
	assert.False(t, tab.IsLoading)
	assert.Equal(t, model.BlankURL, tab.URL, "unset fields are kept")

	pinned := true
	require.NoError(t, f.tabs.UpdateTab(b, model.TabUpdate{IsPinned: &pinned}))
	assert.Equal(t, []string{b, a}, tabIDs(f.tabs.Tabs()))

	require.ErrorIs(t, f.tabs.UpdateTab("nope", model.TabUpdate{Title: &title}), ErrNotFound)
	requireConsistent(t, f.ws, f.tabs)
}

func TestPinTab_Ordering(t *testing.T) {
	f := newFixture(t)

	a := f.newTab(t, "")
	b := f.newTab(t, "")
	c := f.newTab(t, "")

	require.NoError(t, f.tabs.PinTab(c))
	assert.Equal(t, []string{c, a, b}, tabIDs(f.tabs.Tabs()))

	require.NoError(t, f.tabs.PinTab(a))
	assert.Equal(t, []string{c, a, b}, tabIDs(f.tabs.Tabs()))

	require.NoError(t, f.tabs.PinTab(c))
	assert.Equal(t, []string{a, c, b}, tabIDs(f.tabs.Tabs()))

	seenUnpinned := false

	for i, tab := range f.tabs.Tabs() {
		assert.Equal(t, i, tab.Position)

		if !tab.IsPinned {
			seenUnpinned = true
		} else {
			assert.False(t, seenUnpinned, "pinned tab %s after an unpinned one", tab.ID)
		}
	}

	require.ErrorIs(t, f.tabs.PinTab("nope"), ErrNotFound)
}

func TestMoveTab(t *testing.T) {
	f := newFixture(t)

	a := f.newTab(t, "")
	b := f.newTab(t, "")
	c := f.newTab(t, "")

	require.NoError(t, f.tabs.MoveTab(c, 0))
	assert.Equal(t, []string{c, a, b}, tabIDs(f.tabs.Tabs()))

	require.NoError(t, f.tabs.MoveTab(c, 99))
	assert.Equal(t, []string{a, b, c}, tabIDs(f.tabs.Tabs()))

	require.NoError(t, f.tabs.MoveTab(b, -3))
	assert.Equal(t, []string{b, a, c}, tabIDs(f.tabs.Tabs()))

	require.ErrorIs(t, f.tabs.MoveTab("nope", 0), ErrNotFound)
	requireConsistent(t, f.ws, f.tabs)
}

func TestArchiveAndRestoreTab(t *testing.T) {
	f := newFixture(t)

	id := f.newTab(t, "example.com")
	f.settle()
	require.NoError(t, f.tabs.PinTab(id))
	require.NoError(t, f.tabs.ActivateTab(id))

	require.NoError(t, f.tabs.ArchiveTab(id))
	assert.Empty(t, f.tabs.Tabs())
	assert.Empty(t, f.tabs.ActiveID())

	archived := f.tabs.Archived()
	require.Len(t, archived, 1)
	assert.Equal(t, id, archived[0].ID)
	assert.Equal(t, epoch.Add(800*time.Millisecond), archived[0].ArchivedAt)
	assert.False(t, archived[0].IsActive)

	restored, err := f.tabs.RestoreTab(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, restored)
	assert.Empty(t, f.tabs.Archived())

	tab := f.tab(t, restored)
	assert.Equal(t, "https://example.com", tab.URL)
	assert.Equal(t, "Example", tab.Title)
	assert.Equal(t, "https://www.google.com/s2/favicons?domain=example.com", tab.Favicon)
	assert.True(t, tab.IsPinned)
	assert.Equal(t, "learning", tab.WorkspaceID)

	_, err = f.tabs.RestoreTab(id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, f.tabs.ArchiveTab("nope"), ErrNotFound)

	requireConsistent(t, f.ws, f.tabs)
}

func TestRestoreTab_PinnedGoesFirst(t *testing.T) {
	f := newFixture(t)

	p := f.newTab(t, "example.com")
	require.NoError(t, f.tabs.PinTab(p))
	require.NoError(t, f.tabs.ArchiveTab(p))

	a := f.newTab(t, "")

	restored, err := f.tabs.RestoreTab(p)
	require.NoError(t, err)
	assert.Equal(t, []string{restored, a}, tabIDs(f.tabs.Tabs()))
}

func TestRestoreTab_IntoActiveWorkspace(t *testing.T) {
	f := newFixture(t)

	id := f.newTab(t, "")
	require.NoError(t, f.tabs.ArchiveTab(id))
	require.NoError(t, f.ws.SwitchWorkspace("social"))

	restored, err := f.tabs.RestoreTab(id)
	require.NoError(t, err)
	assert.Equal(t, "social", f.tab(t, restored).WorkspaceID)
	requireConsistent(t, f.ws, f.tabs)
}

func TestMoveTabToWorkspace(t *testing.T) {
	f := newFixture(t)

	id := f.newTab(t, "")

	require.NoError(t, f.tabs.MoveTabToWorkspace(id, "research"))
	assert.Equal(t, "research", f.tab(t, id).WorkspaceID)
	assert.Len(t, f.tabs.TabsInWorkspace("research"), 1)
	assert.Empty(t, f.tabs.TabsInWorkspace("learning"))

	require.ErrorIs(t, f.tabs.MoveTabToWorkspace(id, "nope"), ErrNotFound)
	assert.Equal(t, "research", f.tab(t, id).WorkspaceID)
	require.ErrorIs(t, f.tabs.MoveTabToWorkspace("nope", "work"), ErrNotFound)

	requireConsistent(t, f.ws, f.tabs)
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)

	id := f.newTab(t, "example.com")
	require.NoError(t, f.tabs.ActivateTab(id))

	snap := f.tabs.Snapshot()
	assert.Equal(t, id, snap.ActiveTab)
	require.Len(t, snap.Tabs, 1)

	snap.Tabs[0].Title = "changed"
	assert.NotEqual(t, "changed", f.tab(t, id).Title)
}

func TestTabStore_Reload(t *testing.T) {
	f := newFixture(t)

	a := f.newTab(t, "example.com")
	f.settle()
	require.NoError(t, f.tabs.ActivateTab(a))
	require.NoError(t, f.tabs.NavigateTab(a, "go.dev", true))
	f.settle()
	b := f.newTab(t, "golang.org")
	c := f.newTab(t, "")
	require.NoError(t, f.tabs.ArchiveTab(c))

	f.reopen()

	assert.Equal(t, []string{a, b}, tabIDs(f.tabs.Tabs()))
	assert.Equal(t, a, f.tabs.ActiveID())
	assert.Equal(t, []model.HistoryEntry{{URL: "https://example.com", Title: "Example"}}, f.tabs.History(a))
	require.Len(t, f.tabs.Archived(), 1)

	require.True(t, f.tab(t, b).IsLoading)
	f.settle()
	assert.False(t, f.tab(t, b).IsLoading, "the loading tab is rescheduled")
	assert.Equal(t, "Golang", f.tab(t, b).Title)

	requireConsistent(t, f.ws, f.tabs)
}

func TestTabStore_ReloadAdoptsOrphans(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.storage.Save(KeyTabs, []byte(`[
		{"id":"x","url":"https://example.com","workspace_id":"gone","position":5},
		{"id":"y","url":"https://go.dev","workspace_id":"work","position":2}
	]`)))
	require.NoError(t, f.storage.Save(KeyActiveTab, []byte(`"missing"`)))

	f.reopen()

	tabs := f.tabs.Tabs()
	require.Len(t, tabs, 2)
	assert.Equal(t, "y", tabs[0].ID)
	assert.Equal(t, "learning", tabs[1].WorkspaceID)
	assert.Empty(t, f.tabs.ActiveID())

	requireConsistent(t, f.ws, f.tabs)
}
