package core

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/inovacc/horizon/internal/clock"
	"github.com/inovacc/horizon/internal/model"
)

// TabStore is the registry of open tabs across all workspaces, the single
// globally active tab, per-tab back history and the archive of closed tabs.
type TabStore struct {
	mu       *sync.Mutex
	ws       *WorkspaceStore
	tabs     []model.Tab
	active   string
	history  map[string][]model.HistoryEntry
	archived []model.ArchivedTab
	pending  map[string]*pendingNav
	gen      uint64
	clock    clock.Clock
	delay    time.Duration
	persist  *persister
	logger   *slog.Logger
}

// NewTabStore loads persisted tabs and attaches the store to ws. Workspace
// membership is rebuilt from the loaded tabs; tabs owned by a workspace that
// no longer exists move to the active workspace.
func NewTabStore(ws *WorkspaceStore, opts Options) *TabStore {
	opts = opts.withDefaults()

	s := &TabStore{
		mu:      ws.mu,
		ws:      ws,
		tabs:    []model.Tab{},
		history: make(map[string][]model.HistoryEntry),
		pending: make(map[string]*pendingNav),
		clock:   opts.Clock,
		delay:   opts.NavigationDelay,
		persist: opts.persister(),
		logger:  opts.Logger,
	}

	s.mu.Lock()
	defer s.unlock()

	ws.tabs = s

	var saved []model.Tab
	if s.persist.load(KeyTabs, &saved) {
		s.tabs = saved
	}

	var active string
	if s.persist.load(KeyActiveTab, &active) {
		s.active = active
	}

	var history map[string][]model.HistoryEntry
	if s.persist.load(KeyTabHistory, &history) && history != nil {
		s.history = history
	}

	var archived []model.ArchivedTab
	if s.persist.load(KeyArchivedTabs, &archived) {
		s.archived = archived
	}

	if s.reconcileLocked() {
		s.commitLocked()
		ws.commitLocked()
	}

	for _, t := range s.tabs {
		if t.IsLoading {
			s.scheduleLocked(t.ID, t.URL)
		}
	}

	return s
}

// Tabs returns every live tab in position order.
func (s *TabStore) Tabs() []model.Tab {
	s.mu.Lock()
	defer s.unlock()

	return slices.Clone(s.tabs)
}

// TabsInWorkspace returns the live tabs owned by workspaceID in position order.
func (s *TabStore) TabsInWorkspace(workspaceID string) []model.Tab {
	s.mu.Lock()
	defer s.unlock()

	var out []model.Tab

	for _, t := range s.tabs {
		if t.WorkspaceID == workspaceID {
			out = append(out, t)
		}
	}

	return out
}

// Get returns the tab with the given id.
func (s *TabStore) Get(id string) (model.Tab, error) {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.Tab{}, notFound("tab", id)
	}

	return s.tabs[i], nil
}

// ActiveID returns the id of the active tab, or "" when no tab is active.
func (s *TabStore) ActiveID() string {
	s.mu.Lock()
	defer s.unlock()

	return s.active
}

// ActiveTab returns the active tab. ok is false when no tab is active.
func (s *TabStore) ActiveTab() (tab model.Tab, ok bool) {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(s.active)
	if i < 0 {
		return model.Tab{}, false
	}

	return s.tabs[i], true
}

// TabState is a consistent copy of everything the TabStore persists.
type TabState struct {
	Tabs      []model.Tab                     `json:"tabs" yaml:"tabs"`
	ActiveTab string                          `json:"active_tab" yaml:"active_tab"`
	History   map[string][]model.HistoryEntry `json:"history" yaml:"history"`
	Archived  []model.ArchivedTab             `json:"archived" yaml:"archived"`
}

// Snapshot returns the store's state taken under a single lock.
func (s *TabStore) Snapshot() TabState {
	s.mu.Lock()
	defer s.unlock()

	history := make(map[string][]model.HistoryEntry, len(s.history))
	for id, h := range s.history {
		history[id] = slices.Clone(h)
	}

	return TabState{
		Tabs:      slices.Clone(s.tabs),
		ActiveTab: s.active,
		History:   history,
		Archived:  slices.Clone(s.archived),
	}
}

// History returns the back stack of a tab, oldest first.
func (s *TabStore) History(id string) []model.HistoryEntry {
	s.mu.Lock()
	defer s.unlock()

	return slices.Clone(s.history[id])
}

// HistoryMap returns a copy of every tab's back stack.
func (s *TabStore) HistoryMap() map[string][]model.HistoryEntry {
	s.mu.Lock()
	defer s.unlock()

	out := make(map[string][]model.HistoryEntry, len(s.history))
	for id, h := range s.history {
		out[id] = slices.Clone(h)
	}

	return out
}

// Archived returns the archived tabs, oldest first.
func (s *TabStore) Archived() []model.ArchivedTab {
	s.mu.Lock()
	defer s.unlock()

	return slices.Clone(s.archived)
}

// CreateTab opens a tab in the active workspace at the end of the tab order
// and returns its id. An empty url opens a blank tab. The tab starts loading
// and is not activated.
func (s *TabStore) CreateTab(url, title string) (string, error) {
	s.mu.Lock()
	defer s.unlock()

	id, err := s.createLocked(url, title)
	if err != nil {
		return "", err
	}

	s.commitLocked()
	s.ws.commitLocked()

	return id, nil
}

// ActivateTab makes id the single active tab and refreshes its LastAccessed.
func (s *TabStore) ActivateTab(id string) error {
	s.mu.Lock()
	defer s.unlock()

	if s.indexLocked(id) < 0 {
		return notFound("tab", id)
	}

	s.activateLocked(id)
	s.commitLocked()

	return nil
}

// CloseTab removes a tab. When the active tab is closed, the tab now at the
// same index among the remaining tabs of its workspace (or the last one) is
// activated; with none left, no tab is active.
func (s *TabStore) CloseTab(id string) error {
	s.mu.Lock()
	defer s.unlock()

	if s.indexLocked(id) < 0 {
		return notFound("tab", id)
	}

	s.closeLocked(id)
	s.commitLocked()
	s.ws.commitLocked()

	return nil
}

// UpdateTab merges the non-nil fields of upd into the tab.
func (s *TabStore) UpdateTab(id string, upd model.TabUpdate) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("tab", id)
	}

	t := &s.tabs[i]

	if upd.URL != nil {
		t.URL = *upd.URL
	}

	if upd.Title != nil {
		t.Title = *upd.Title
	}

	if upd.Favicon != nil {
		t.Favicon = *upd.Favicon
	}

	if upd.IsLoading != nil {
		t.IsLoading = *upd.IsLoading
	}

	if upd.IsPinned != nil && *upd.IsPinned != t.IsPinned {
		t.IsPinned = *upd.IsPinned
		s.partitionPinnedLocked()
	}

	s.commitLocked()

	return nil
}

// ArchiveTab snapshots a tab into the archive and closes it.
func (s *TabStore) ArchiveTab(id string) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("tab", id)
	}

	s.archiveLocked(s.tabs[i])
	s.closeLocked(id)
	s.commitLocked()
	s.ws.commitLocked()

	return nil
}

// RestoreTab opens a new tab in the active workspace from an archived
// snapshot and returns the new id. The archived identity is not reused.
func (s *TabStore) RestoreTab(archivedID string) (string, error) {
	s.mu.Lock()
	defer s.unlock()

	j := slices.IndexFunc(s.archived, func(a model.ArchivedTab) bool { return a.ID == archivedID })
	if j < 0 {
		return "", notFound("archived tab", archivedID)
	}

	snap := s.archived[j]

	id, err := s.createLocked(snap.URL, snap.Title)
	if err != nil {
		return "", err
	}

	t := &s.tabs[s.indexLocked(id)]
	t.Favicon = snap.Favicon
	t.IsPinned = snap.IsPinned

	if snap.IsPinned {
		s.partitionPinnedLocked()
	}

	s.archived = slices.Delete(s.archived, j, j+1)
	s.commitLocked()
	s.ws.commitLocked()

	return id, nil
}

// MoveTab reinserts a tab at toPosition (clamped to the valid range) and
// renumbers every position densely.
func (s *TabStore) MoveTab(id string, toPosition int) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("tab", id)
	}

	t := s.tabs[i]
	s.tabs = slices.Delete(s.tabs, i, i+1)

	toPosition = max(0, min(toPosition, len(s.tabs)))
	s.tabs = slices.Insert(s.tabs, toPosition, t)
	s.renumberLocked()
	s.commitLocked()

	return nil
}

// PinTab toggles the pinned flag, then orders pinned tabs before unpinned
// ones, keeping the relative order within each group.
func (s *TabStore) PinTab(id string) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("tab", id)
	}

	s.tabs[i].IsPinned = !s.tabs[i].IsPinned
	s.partitionPinnedLocked()
	s.commitLocked()

	return nil
}

// MoveTabToWorkspace transfers ownership of a tab to workspaceID.
func (s *TabStore) MoveTabToWorkspace(id, workspaceID string) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("tab", id)
	}

	if err := s.ws.moveTabLocked(s.tabs[i].WorkspaceID, workspaceID, id); err != nil {
		return err
	}

	s.tabs[i].WorkspaceID = workspaceID
	s.commitLocked()
	s.ws.commitLocked()

	return nil
}

func (s *TabStore) indexLocked(id string) int {
	return slices.IndexFunc(s.tabs, func(t model.Tab) bool { return t.ID == id })
}

func (s *TabStore) createLocked(url, title string) (string, error) {
	workspaceID := s.ws.active
	if workspaceID == "" {
		return "", violation("create tab", "no active workspace")
	}

	url = normalizeURL(url)
	if url == "" {
		url = model.BlankURL
	}

	if title == "" {
		title = model.BlankTitle
	}

	favicon := ""
	if !model.IsBlankURL(url) {
		favicon = faviconURL(url)
	}

	now := s.clock.Now()
	t := model.Tab{
		ID:           newTabID(),
		URL:          url,
		Title:        title,
		Favicon:      favicon,
		WorkspaceID:  workspaceID,
		IsLoading:    true,
		Position:     len(s.tabs),
		CreatedAt:    now,
		LastAccessed: now,
	}

	if err := s.ws.addTabLocked(workspaceID, t.ID); err != nil {
		return "", err
	}

	s.tabs = append(s.tabs, t)
	s.scheduleLocked(t.ID, t.URL)
	s.logger.Debug("tab created", "tab", t.ID, "workspace", workspaceID)

	return t.ID, nil
}

func (s *TabStore) activateLocked(id string) {
	now := s.clock.Now()

	for i := range s.tabs {
		s.tabs[i].IsActive = s.tabs[i].ID == id
		if s.tabs[i].IsActive {
			s.tabs[i].LastAccessed = now
		}
	}

	s.active = id
}

func (s *TabStore) closeLocked(id string) {
	i := s.indexLocked(id)
	closing := s.tabs[i]

	if closing.IsActive || s.active == id {
		var siblings []string

		for _, t := range s.tabs {
			if t.WorkspaceID == closing.WorkspaceID && t.ID != id {
				siblings = append(siblings, t.ID)
			}
		}

		if len(siblings) > 0 {
			s.activateLocked(siblings[min(i, len(siblings)-1)])
		} else {
			s.active = ""
		}
	}

	s.tabs = slices.Delete(s.tabs, i, i+1)
	s.renumberLocked()
	s.cancelLocked(id)
	delete(s.history, id)

	_ = s.ws.removeTabLocked(closing.WorkspaceID, id)
}

func (s *TabStore) archiveLocked(t model.Tab) {
	t.IsActive = false
	t.IsLoading = false
	s.archived = append(s.archived, model.ArchivedTab{Tab: t, ArchivedAt: s.clock.Now()})
}

// archiveWorkspaceTabsLocked archives and closes every tab owned by a
// workspace that is being deleted.
func (s *TabStore) archiveWorkspaceTabsLocked(workspaceID string) {
	var ids []string

	for _, t := range s.tabs {
		if t.WorkspaceID == workspaceID {
			s.archiveLocked(t)
			ids = append(ids, t.ID)
		}
	}

	for _, id := range ids {
		s.closeLocked(id)
	}

	if len(ids) > 0 {
		s.commitLocked()
	}
}

// followWorkspaceLocked keeps the active tab inside workspaceID. When it
// belongs elsewhere the first tab of workspaceID is activated, or none when
// the workspace is empty.
func (s *TabStore) followWorkspaceLocked(workspaceID string) {
	if i := s.indexLocked(s.active); i >= 0 && s.tabs[i].WorkspaceID == workspaceID {
		return
	}

	next := ""

	for _, t := range s.tabs {
		if t.WorkspaceID == workspaceID {
			next = t.ID

			break
		}
	}

	if next == "" && s.active == "" {
		return
	}

	s.activateLocked(next)
	s.commitLocked()
}

func (s *TabStore) reassignLocked(id, workspaceID string) {
	if i := s.indexLocked(id); i >= 0 {
		s.tabs[i].WorkspaceID = workspaceID
	}
}

func (s *TabStore) renumberLocked() {
	for i := range s.tabs {
		s.tabs[i].Position = i
	}
}

func (s *TabStore) partitionPinnedLocked() {
	out := make([]model.Tab, 0, len(s.tabs))

	for _, t := range s.tabs {
		if t.IsPinned {
			out = append(out, t)
		}
	}

	for _, t := range s.tabs {
		if !t.IsPinned {
			out = append(out, t)
		}
	}

	s.tabs = out
	s.renumberLocked()
}

// reconcileLocked repairs loaded state: dense positions, a valid active tab,
// orphaned tabs adopted by the active workspace and membership rebuilt.
// It reports whether anything changed.
func (s *TabStore) reconcileLocked() bool {
	changed := false

	slices.SortStableFunc(s.tabs, func(a, b model.Tab) int { return a.Position - b.Position })

	for i := range s.tabs {
		if s.tabs[i].Position != i {
			s.tabs[i].Position = i
			changed = true
		}

		if !s.ws.existsLocked(s.tabs[i].WorkspaceID) && s.ws.active != "" {
			s.tabs[i].WorkspaceID = s.ws.active
			changed = true
		}
	}

	if s.active != "" && s.indexLocked(s.active) < 0 {
		s.active = ""
		changed = true
	}

	for i := range s.tabs {
		if want := s.tabs[i].ID == s.active; s.tabs[i].IsActive != want {
			s.tabs[i].IsActive = want
			changed = true
		}
	}

	for id := range s.history {
		if s.indexLocked(id) < 0 {
			delete(s.history, id)
			changed = true
		}
	}

	if s.ws.rebuildMembershipLocked(s.tabs) {
		changed = true
	}

	return changed
}

// unlock releases the shared lock, then hands queued persistence errors to
// the hook.
func (s *TabStore) unlock() {
	s.mu.Unlock()
	s.persist.drain()
	s.ws.persist.drain()
}

func (s *TabStore) commitLocked() {
	s.persist.save(KeyTabs, s.tabs)
	s.persist.save(KeyActiveTab, s.active)
	s.persist.save(KeyTabHistory, s.history)
	s.persist.save(KeyArchivedTabs, s.archived)
}
