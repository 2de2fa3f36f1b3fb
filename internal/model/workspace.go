package model

// Recency labels stored in Workspace.LastUsed.
const (
	LastUsedActive      = "Active now"
	LastUsedJustCreated = "just created"
	LastUsedJustNow     = "just now"
)

// DefaultColor is used for new workspaces and as the default accent
const DefaultColor = "#3a86ff"

// Workspace represents a named, colored grouping of tabs
type Workspace struct {
	// ID is the unique identifier derived from the name (e.g., "personal-projects")
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Icon is a single glyph shown in the sidebar
	Icon string `json:"icon"`

	// Color is a display color token (e.g., "#3a86ff")
	Color string `json:"color"`

	// TabCount always equals len(Tabs)
	TabCount int `json:"tab_count"`

	// Tabs holds the ids of the live tabs owned by this workspace, in insertion order
	Tabs []string `json:"tabs"`

	// LastUsed is an informal recency label
	LastUsed string `json:"last_used"`

	// Active indicates if this is the currently active workspace
	Active bool `json:"active"`

	// Archived excludes the workspace from the switch candidates
	Archived bool `json:"archived,omitempty"`
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (w Workspace) Clone() Workspace {
	w.Tabs = append([]string(nil), w.Tabs...)
	return w
}

// DefaultWorkspaces returns the workspaces seeded on a fresh install.
func DefaultWorkspaces() []Workspace {
	return []Workspace{
		{ID: "work", Name: "Work", Icon: "W", Color: "#3a86ff", LastUsed: "today"},
		{ID: "research", Name: "Research", Icon: "R", Color: "#8338ec", LastUsed: "yesterday"},
		{ID: "social", Name: "Social", Icon: "S", Color: "#ff006e", LastUsed: "3 days ago"},
		{ID: "personal", Name: "Personal Projects", Icon: "P", Color: "#ff006e", LastUsed: "today"},
		{ID: "learning", Name: "Learning", Icon: "L", Color: "#10b981", LastUsed: LastUsedActive, Active: true},
	}
}
