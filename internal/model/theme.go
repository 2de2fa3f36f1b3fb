package model

// Theme modes
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Font sizes
const (
	FontSmall  = "small"
	FontMedium = "medium"
	FontLarge  = "large"
)

// Preferences holds the process-wide appearance settings
type Preferences struct {
	// Mode is one of light, dark or system
	Mode string `json:"mode"`

	// Accent is the primary color as #rrggbb
	Accent string `json:"accent"`

	// FontSize is one of small, medium or large
	FontSize string `json:"font_size"`

	ReducedMotion  bool `json:"reduced_motion"`
	RoundedCorners bool `json:"rounded_corners"`
	CompactMode    bool `json:"compact_mode"`
}

// DefaultPreferences returns the preferences used when nothing was saved
func DefaultPreferences() Preferences {
	return Preferences{
		Mode:           ThemeSystem,
		Accent:         DefaultColor,
		FontSize:       FontMedium,
		RoundedCorners: true,
	}
}

// ThemeUpdate is a partial update of Preferences. Nil fields are left untouched.
type ThemeUpdate struct {
	Mode           *string
	Accent         *string
	FontSize       *string
	ReducedMotion  *bool
	RoundedCorners *bool
	CompactMode    *bool
}

// Appearance holds the concrete values a front-end applies for a set of preferences
type Appearance struct {
	Dark            bool
	Accent          string
	FontSizePx      int
	TransitionSpeed string
	BorderRadius    string
	SpacingUnit     string
}
