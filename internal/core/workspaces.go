package core

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/inovacc/horizon/internal/model"
)

// WorkspaceStore is the registry of workspaces and the single active-workspace
// pointer. It shares its mutex with the TabStore attached to it, so operations
// spanning both stores are applied atomically.
type WorkspaceStore struct {
	mu         *sync.Mutex
	workspaces []model.Workspace
	active     string
	tabs       *TabStore
	persist    *persister
	logger     *slog.Logger
}

// NewWorkspaceStore loads persisted workspaces, or seeds the defaults on a
// fresh install.
func NewWorkspaceStore(opts Options) *WorkspaceStore {
	opts = opts.withDefaults()

	s := &WorkspaceStore{
		mu:      &sync.Mutex{},
		persist: opts.persister(),
		logger:  opts.Logger,
	}

	var saved []model.Workspace
	if s.persist.load(KeyWorkspaces, &saved) {
		s.workspaces = saved
	} else {
		s.workspaces = model.DefaultWorkspaces()
	}

	var active string
	if s.persist.load(KeyActiveWorkspace, &active) {
		s.active = active
	}

	s.normalizeActiveLocked()
	s.persist.drain()

	return s
}

// NewEmptyWorkspaceStore returns a store with no workspaces and no persistence.
// The first workspace created becomes active.
func NewEmptyWorkspaceStore(opts Options) *WorkspaceStore {
	opts = opts.withDefaults()

	return &WorkspaceStore{
		mu:         &sync.Mutex{},
		workspaces: []model.Workspace{},
		persist:    opts.persister(),
		logger:     opts.Logger,
	}
}

// List returns all workspaces, archived ones included, in creation order.
func (s *WorkspaceStore) List() []model.Workspace {
	s.mu.Lock()
	defer s.unlock()

	out := make([]model.Workspace, len(s.workspaces))
	for i, w := range s.workspaces {
		out[i] = w.Clone()
	}

	return out
}

// Get returns the workspace with the given id.
func (s *WorkspaceStore) Get(id string) (model.Workspace, error) {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.Workspace{}, notFound("workspace", id)
	}

	return s.workspaces[i].Clone(), nil
}

// ActiveID returns the id of the active workspace, or "" when there is none.
func (s *WorkspaceStore) ActiveID() string {
	s.mu.Lock()
	defer s.unlock()

	return s.active
}

// SwitchWorkspace makes id the active workspace.
func (s *WorkspaceStore) SwitchWorkspace(id string) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("workspace", id)
	}

	if s.workspaces[i].Archived {
		return violation("switch workspace", "workspace "+id+" is archived")
	}

	s.switchLocked(id)
	s.commitLocked()

	return nil
}

// CreateWorkspace adds an inactive, empty workspace and returns its id. The id
// is derived from name; an existing id yields a *ConflictError. icon and color
// fall back to the name's initial and the default color.
func (s *WorkspaceStore) CreateWorkspace(name, icon, color string) (string, error) {
	s.mu.Lock()
	defer s.unlock()

	name = strings.TrimSpace(name)

	id := WorkspaceID(name)
	if id == "" {
		return "", violation("create workspace", "name is empty")
	}

	if s.indexLocked(id) >= 0 {
		return "", &ConflictError{Kind: "workspace", ID: id}
	}

	if icon == "" {
		icon = defaultIcon(name)
	}

	if color == "" {
		color = model.DefaultColor
	}

	s.workspaces = append(s.workspaces, model.Workspace{
		ID:       id,
		Name:     name,
		Icon:     icon,
		Color:    color,
		Tabs:     []string{},
		LastUsed: model.LastUsedJustCreated,
	})

	if s.active == "" {
		s.switchLocked(id)
	}

	s.commitLocked()
	s.logger.Debug("workspace created", "workspace", id)

	return id, nil
}

// RenameWorkspace changes the display name. The id is kept.
func (s *WorkspaceStore) RenameWorkspace(id, newName string) error {
	s.mu.Lock()
	defer s.unlock()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return violation("rename workspace", "name is empty")
	}

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("workspace", id)
	}

	s.workspaces[i].Name = newName
	s.commitLocked()

	return nil
}

// ChangeWorkspaceColor sets the display color.
func (s *WorkspaceStore) ChangeWorkspaceColor(id, newColor string) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("workspace", id)
	}

	s.workspaces[i].Color = newColor
	s.commitLocked()

	return nil
}

// ArchiveWorkspace hides a workspace from the switch candidates. If it was
// active, the first remaining non-archived workspace becomes active. Archiving
// the last non-archived workspace is rejected.
func (s *WorkspaceStore) ArchiveWorkspace(id string) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("workspace", id)
	}

	if s.workspaces[i].Archived {
		return nil
	}

	next := s.firstEligibleLocked(id)
	if next == "" {
		return violation("archive workspace", "at least one workspace must stay available")
	}

	s.workspaces[i].Archived = true

	if s.active == id {
		s.switchLocked(next)
		s.followLocked(next)
	}

	s.commitLocked()

	return nil
}

// RestoreWorkspace clears the archived flag.
func (s *WorkspaceStore) RestoreWorkspace(id string) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("workspace", id)
	}

	s.workspaces[i].Archived = false
	s.commitLocked()

	return nil
}

// DeleteWorkspace removes a workspace permanently. Its live tabs are moved to
// the tab archive. Deleting the last workspace, or the last non-archived one,
// is rejected without any change.
func (s *WorkspaceStore) DeleteWorkspace(id string) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("workspace", id)
	}

	if len(s.workspaces) <= 1 {
		return violation("delete workspace", "cannot delete the last workspace")
	}

	next := s.firstEligibleLocked(id)
	if next == "" {
		return violation("delete workspace", "at least one workspace must stay available")
	}

	if s.tabs != nil {
		s.tabs.archiveWorkspaceTabsLocked(id)
	}

	s.workspaces = slices.Delete(s.workspaces, i, i+1)

	if s.active == id {
		s.switchLocked(next)
		s.followLocked(next)
	}

	s.commitLocked()
	s.logger.Debug("workspace deleted", "workspace", id)

	return nil
}

// AddTabToWorkspace records tab as a member of workspaceID; adding a member
// twice is a no-op. With a TabStore attached the tab must be open, and adding
// it to a workspace other than its owner moves it there.
func (s *WorkspaceStore) AddTabToWorkspace(workspaceID string, tab model.Tab) error {
	s.mu.Lock()
	defer s.unlock()

	if s.tabs == nil {
		if err := s.addTabLocked(workspaceID, tab.ID); err != nil {
			return err
		}

		s.commitLocked()

		return nil
	}

	if !s.existsLocked(workspaceID) {
		return notFound("workspace", workspaceID)
	}

	i := s.tabs.indexLocked(tab.ID)
	if i < 0 {
		return notFound("tab", tab.ID)
	}

	owner := s.tabs.tabs[i].WorkspaceID
	if owner == workspaceID {
		return nil
	}

	if err := s.moveTabLocked(owner, workspaceID, tab.ID); err != nil {
		return err
	}

	s.tabs.reassignLocked(tab.ID, workspaceID)
	s.tabs.commitLocked()
	s.commitLocked()

	return nil
}

// RemoveTabFromWorkspace drops tabID from the membership of workspaceID. An
// open tab cannot leave its owner; close it or move it instead.
func (s *WorkspaceStore) RemoveTabFromWorkspace(workspaceID, tabID string) error {
	s.mu.Lock()
	defer s.unlock()

	if s.tabs != nil {
		if i := s.tabs.indexLocked(tabID); i >= 0 && s.tabs.tabs[i].WorkspaceID == workspaceID {
			return violation("remove tab from workspace", "tab "+tabID+" is still open in "+workspaceID)
		}
	}

	if err := s.removeTabLocked(workspaceID, tabID); err != nil {
		return err
	}

	s.commitLocked()

	return nil
}

// MoveTabBetweenWorkspaces transfers ownership of tabID from sourceID to
// targetID. The tab's WorkspaceID in the attached TabStore changes in the
// same critical section.
func (s *WorkspaceStore) MoveTabBetweenWorkspaces(sourceID, targetID, tabID string) error {
	s.mu.Lock()
	defer s.unlock()

	if err := s.moveTabLocked(sourceID, targetID, tabID); err != nil {
		return err
	}

	if s.tabs != nil {
		s.tabs.reassignLocked(tabID, targetID)
		s.tabs.commitLocked()
	}

	s.commitLocked()

	return nil
}

func (s *WorkspaceStore) indexLocked(id string) int {
	return slices.IndexFunc(s.workspaces, func(w model.Workspace) bool { return w.ID == id })
}

func (s *WorkspaceStore) existsLocked(id string) bool {
	return s.indexLocked(id) >= 0
}

func (s *WorkspaceStore) switchLocked(id string) {
	s.active = id

	for i := range s.workspaces {
		s.workspaces[i].Active = s.workspaces[i].ID == id
		if s.workspaces[i].Active {
			s.workspaces[i].LastUsed = model.LastUsedActive
		}
	}
}

// followLocked moves the active tab into workspaceID after the active
// workspace changed underneath it.
func (s *WorkspaceStore) followLocked(workspaceID string) {
	if s.tabs != nil {
		s.tabs.followWorkspaceLocked(workspaceID)
	}
}

// firstEligibleLocked returns the first non-archived workspace other than exclude.
func (s *WorkspaceStore) firstEligibleLocked(exclude string) string {
	for _, w := range s.workspaces {
		if w.ID != exclude && !w.Archived {
			return w.ID
		}
	}

	return ""
}

func (s *WorkspaceStore) addTabLocked(workspaceID, tabID string) error {
	i := s.indexLocked(workspaceID)
	if i < 0 {
		return notFound("workspace", workspaceID)
	}

	w := &s.workspaces[i]
	if !slices.Contains(w.Tabs, tabID) {
		w.Tabs = append(w.Tabs, tabID)
	}

	w.TabCount = len(w.Tabs)

	return nil
}

func (s *WorkspaceStore) removeTabLocked(workspaceID, tabID string) error {
	i := s.indexLocked(workspaceID)
	if i < 0 {
		return notFound("workspace", workspaceID)
	}

	w := &s.workspaces[i]

	j := slices.Index(w.Tabs, tabID)
	if j < 0 {
		return notFound("tab", tabID)
	}

	w.Tabs = slices.Delete(w.Tabs, j, j+1)
	w.TabCount = len(w.Tabs)

	return nil
}

func (s *WorkspaceStore) moveTabLocked(sourceID, targetID, tabID string) error {
	src := s.indexLocked(sourceID)
	if src < 0 {
		return notFound("workspace", sourceID)
	}

	dst := s.indexLocked(targetID)
	if dst < 0 {
		return notFound("workspace", targetID)
	}

	if !slices.Contains(s.workspaces[src].Tabs, tabID) {
		return notFound("tab", tabID)
	}

	if src == dst {
		return nil
	}

	_ = s.removeTabLocked(sourceID, tabID)
	_ = s.addTabLocked(targetID, tabID)
	s.workspaces[dst].LastUsed = model.LastUsedJustNow

	return nil
}

// rebuildMembershipLocked recomputes every workspace's Tabs from the live tab
// list. It reports whether anything changed.
func (s *WorkspaceStore) rebuildMembershipLocked(tabs []model.Tab) bool {
	members := make(map[string][]string, len(s.workspaces))
	for _, t := range tabs {
		members[t.WorkspaceID] = append(members[t.WorkspaceID], t.ID)
	}

	changed := false

	for i := range s.workspaces {
		w := &s.workspaces[i]

		want := members[w.ID]
		if want == nil {
			want = []string{}
		}

		if !slices.Equal(w.Tabs, want) || w.TabCount != len(want) {
			w.Tabs = want
			w.TabCount = len(want)
			changed = true
		}
	}

	return changed
}

// normalizeActiveLocked repairs the active pointer after loading so exactly
// one workspace is active whenever the set is non-empty.
func (s *WorkspaceStore) normalizeActiveLocked() {
	if len(s.workspaces) == 0 {
		s.active = ""

		return
	}

	if i := s.indexLocked(s.active); i >= 0 && !s.workspaces[i].Archived {
		s.switchLocked(s.active)

		return
	}

	for _, w := range s.workspaces {
		if w.Active && !w.Archived {
			s.switchLocked(w.ID)

			return
		}
	}

	if next := s.firstEligibleLocked(""); next != "" {
		s.switchLocked(next)

		return
	}

	// Every workspace is archived; bring the first one back.
	s.workspaces[0].Archived = false
	s.switchLocked(s.workspaces[0].ID)
}

// unlock releases the shared lock, then hands queued persistence errors to
// the hook.
func (s *WorkspaceStore) unlock() {
	reporters := []*persister{s.persist}
	if s.tabs != nil {
		reporters = append(reporters, s.tabs.persist)
	}

	s.mu.Unlock()

	for _, p := range reporters {
		p.drain()
	}
}

func (s *WorkspaceStore) commitLocked() {
	s.persist.save(KeyWorkspaces, s.workspaces)
	s.persist.save(KeyActiveWorkspace, s.active)
}
