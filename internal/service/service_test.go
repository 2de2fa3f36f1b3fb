package service

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/horizon/internal/clock"
	"github.com/inovacc/horizon/internal/config"
	"github.com/inovacc/horizon/internal/core"
	"github.com/inovacc/horizon/internal/model"
	"github.com/inovacc/horizon/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBrowser(t *testing.T) (*Browser, *clock.FakeClock) {
	t.Helper()

	clk := clock.NewFakeClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	b := New(store.NewMemory(), core.Options{
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:           clk,
		NavigationDelay: 100 * time.Millisecond,
	})

	return b, clk
}

func TestOpen_Bolt(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "state.bolt")

	b, err := Open(cfg, nil)
	require.NoError(t, err)

	tab, err := b.OpenTab("example.com")
	require.NoError(t, err)
	require.NoError(t, b.Close())

	b, err = Open(cfg, nil)
	require.NoError(t, err)

	defer func() { _ = b.Close() }()

	got, err := b.Tabs.Get(tab.ID)
	require.NoError(t, err)
	assert.Equal(t, "Example", got.Title, "closing settles the pending navigation")
	assert.False(t, got.IsLoading)
	assert.Equal(t, tab.ID, b.Tabs.ActiveID())
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = "redis"
	cfg.Storage.Path = filepath.Join(t.TempDir(), "x")

	_, err := Open(cfg, nil)
	require.Error(t, err)
}

func TestResolveWorkspace(t *testing.T) {
	b, _ := newTestBrowser(t)

	for _, ref := range []string{"personal", "Personal Projects", "personal projects", " PERSONAL "} {
		w, err := b.ResolveWorkspace(ref)
		require.NoError(t, err, ref)
		assert.Equal(t, "personal", w.ID)
	}

	_, err := b.ResolveWorkspace("nope")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestSwitchWorkspace_ActivatesFirstTab(t *testing.T) {
	b, _ := newTestBrowser(t)

	learningTab, err := b.OpenTab("")
	require.NoError(t, err)

	_, err = b.SwitchWorkspace("Work")
	require.NoError(t, err)

	first, err := b.OpenTab("example.com")
	require.NoError(t, err)
	_, err = b.OpenTab("go.dev")
	require.NoError(t, err)

	w, err := b.SwitchWorkspace("learning")
	require.NoError(t, err)
	assert.True(t, w.Active)
	assert.Equal(t, learningTab.ID, b.Tabs.ActiveID())

	_, err = b.SwitchWorkspace("work")
	require.NoError(t, err)
	assert.Equal(t, first.ID, b.Tabs.ActiveID())

	assert.Len(t, b.ActiveWorkspaceTabs(), 2)

	active, ok := b.ActiveWorkspace()
	require.True(t, ok)
	assert.Equal(t, "work", active.ID)
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			src, clk := newTestBrowser(t)

			_, err := src.Workspaces.CreateWorkspace("Design", "", "#ff0000")
			require.NoError(t, err)
			_, err = src.SwitchWorkspace("design")
			require.NoError(t, err)

			tab, err := src.OpenTab("example.com")
			require.NoError(t, err)
			clk.Advance(100 * time.Millisecond)
			require.NoError(t, src.Tabs.NavigateTab(tab.ID, "go.dev", true))
			clk.Advance(100 * time.Millisecond)

			archived, err := src.OpenTab("github.com")
			require.NoError(t, err)
			require.NoError(t, src.Tabs.ArchiveTab(archived.ID))
			require.NoError(t, src.Theme.Update(model.ThemeUpdate{Mode: ptr(model.ThemeDark)}))

			var buf bytes.Buffer
			require.NoError(t, WriteSnapshot(&buf, src.Snapshot(), format))

			snap, err := ReadSnapshot(&buf, "")
			require.NoError(t, err)
			assert.Equal(t, SnapshotVersion, snap.Version)

			dst, _ := newTestBrowser(t)
			require.NoError(t, dst.Import(snap))

			assert.Equal(t, "design", dst.Workspaces.ActiveID())
			assert.Equal(t, tab.ID, dst.Tabs.ActiveID())

			got, err := dst.Tabs.Get(tab.ID)
			require.NoError(t, err)
			assert.Equal(t, "https://go.dev", got.URL)
			assert.Equal(t, "Go", got.Title)
			assert.Equal(t, []model.HistoryEntry{{URL: "https://example.com", Title: "Example"}}, dst.Tabs.History(tab.ID))
			require.Len(t, dst.Tabs.Archived(), 1)
			assert.Equal(t, archived.ID, dst.Tabs.Archived()[0].ID)
			assert.Equal(t, model.ThemeDark, dst.Theme.Preferences().Mode)

			design, err := dst.Workspaces.Get("design")
			require.NoError(t, err)
			assert.Equal(t, 1, design.TabCount)
		})
	}
}

func TestImport_RejectsIncompatible(t *testing.T) {
	b, _ := newTestBrowser(t)

	err := b.Import(&Snapshot{Version: "2.0", Workspaces: model.DefaultWorkspaces()})
	require.ErrorIs(t, err, ErrUnsupportedSnapshot)

	err = b.Import(&Snapshot{Version: SnapshotVersion})
	require.Error(t, err)

	assert.Len(t, b.Workspaces.List(), 5)
}

func TestSnapshotFile(t *testing.T) {
	b, _ := newTestBrowser(t)

	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, WriteSnapshotToFile(path, b.Snapshot()))

	snap, err := ReadSnapshotFile(path)
	require.NoError(t, err)
	assert.Len(t, snap.Workspaces, 5)
	assert.Equal(t, "learning", snap.ActiveWorkspace)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.YAML"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("a"))
}

func ptr[T any](v T) *T { return &v }
