package service

import (
	"strings"

	"github.com/inovacc/horizon/internal/core"
	"github.com/inovacc/horizon/internal/model"
)

// ResolveWorkspace finds a workspace by id or by display name, ignoring case.
// "Personal Projects", "personal projects" and "personal" all resolve the
// seeded personal workspace.
func (b *Browser) ResolveWorkspace(ref string) (model.Workspace, error) {
	ref = strings.TrimSpace(ref)

	if w, err := b.Workspaces.Get(ref); err == nil {
		return w, nil
	}

	derived := core.WorkspaceID(ref)

	for _, w := range b.Workspaces.List() {
		if w.ID == derived || strings.EqualFold(w.Name, ref) {
			return w, nil
		}
	}

	return model.Workspace{}, &core.NotFoundError{Kind: "workspace", ID: ref}
}

// ActiveWorkspace returns the active workspace. ok is false when the set is
// empty.
func (b *Browser) ActiveWorkspace() (w model.Workspace, ok bool) {
	id := b.Workspaces.ActiveID()
	if id == "" {
		return model.Workspace{}, false
	}

	w, err := b.Workspaces.Get(id)

	return w, err == nil
}

// ActiveWorkspaceTabs returns the tabs of the active workspace in order.
func (b *Browser) ActiveWorkspaceTabs() []model.Tab {
	return b.Tabs.TabsInWorkspace(b.Workspaces.ActiveID())
}

// SwitchWorkspace activates a workspace by id or name. When the active tab
// belongs to another workspace, the first tab of the new workspace is
// activated instead, if there is one.
func (b *Browser) SwitchWorkspace(ref string) (model.Workspace, error) {
	w, err := b.ResolveWorkspace(ref)
	if err != nil {
		return model.Workspace{}, err
	}

	if err := b.Workspaces.SwitchWorkspace(w.ID); err != nil {
		return model.Workspace{}, err
	}

	if active, ok := b.Tabs.ActiveTab(); !ok || active.WorkspaceID != w.ID {
		if tabs := b.Tabs.TabsInWorkspace(w.ID); len(tabs) > 0 {
			if err := b.Tabs.ActivateTab(tabs[0].ID); err != nil {
				return model.Workspace{}, err
			}
		}
	}

	return b.Workspaces.Get(w.ID)
}

// OpenTab creates a tab in the active workspace and activates it.
func (b *Browser) OpenTab(url string) (model.Tab, error) {
	id, err := b.Tabs.CreateTab(url, "")
	if err != nil {
		return model.Tab{}, err
	}

	if err := b.Tabs.ActivateTab(id); err != nil {
		return model.Tab{}, err
	}

	return b.Tabs.Get(id)
}
