package model

import "time"

const (
	// BlankURL is the address of a new, empty tab
	BlankURL = "about:newtab"

	// BlankTitle is the title of a new, empty tab
	BlankTitle = "New Tab"
)

// Tab is a single open tab. Every tab belongs to exactly one workspace.
type Tab struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Favicon      string    `json:"favicon"`
	WorkspaceID  string    `json:"workspace_id"`
	IsActive     bool      `json:"is_active"`
	IsLoading    bool      `json:"is_loading"`
	IsPinned     bool      `json:"is_pinned"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// IsBlank reports whether the tab shows no page.
func (t Tab) IsBlank() bool {
	return IsBlankURL(t.URL)
}

// IsBlankURL reports whether u is one of the blank-page sentinels.
func IsBlankURL(u string) bool {
	return u == "" || u == BlankURL || u == "about:blank"
}

// ArchivedTab is a closed tab kept as a restorable snapshot.
type ArchivedTab struct {
	Tab `yaml:",inline"`

	ArchivedAt time.Time `json:"archived_at"`
}

// HistoryEntry records the state of a tab before a navigation.
type HistoryEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// TabUpdate is a partial update applied by UpdateTab. Nil fields are left untouched.
type TabUpdate struct {
	URL       *string
	Title     *string
	Favicon   *string
	IsLoading *bool
	IsPinned  *bool
}
