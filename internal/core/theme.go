package core

import (
	"log/slog"
	"regexp"
	"sync"

	"github.com/inovacc/horizon/internal/model"
)

var accentPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ThemeStore holds the appearance preferences. It is independent of the tab
// and workspace stores and has its own lock.
type ThemeStore struct {
	mu      sync.Mutex
	prefs   model.Preferences
	persist *persister
	logger  *slog.Logger
}

// NewThemeStore loads saved preferences over the defaults. Saved fields that
// fail validation keep their default value.
func NewThemeStore(opts Options) *ThemeStore {
	opts = opts.withDefaults()

	s := &ThemeStore{
		prefs:   model.DefaultPreferences(),
		persist: opts.persister(),
		logger:  opts.Logger,
	}

	saved := model.DefaultPreferences()
	if s.persist.load(KeyTheme, &saved) {
		if validMode(saved.Mode) {
			s.prefs.Mode = saved.Mode
		}

		if accentPattern.MatchString(saved.Accent) {
			s.prefs.Accent = saved.Accent
		}

		if validFontSize(saved.FontSize) {
			s.prefs.FontSize = saved.FontSize
		}

		s.prefs.ReducedMotion = saved.ReducedMotion
		s.prefs.RoundedCorners = saved.RoundedCorners
		s.prefs.CompactMode = saved.CompactMode
	}

	s.persist.drain()

	return s
}

// Preferences returns the current preferences.
func (s *ThemeStore) Preferences() model.Preferences {
	s.mu.Lock()
	defer s.unlock()

	return s.prefs
}

// Update merges the non-nil fields of upd. Nothing changes if any field is
// invalid.
func (s *ThemeStore) Update(upd model.ThemeUpdate) error {
	s.mu.Lock()
	defer s.unlock()

	next := s.prefs

	if upd.Mode != nil {
		if !validMode(*upd.Mode) {
			return violation("update theme", "unknown mode "+*upd.Mode)
		}

		next.Mode = *upd.Mode
	}

	if upd.Accent != nil {
		if !accentPattern.MatchString(*upd.Accent) {
			return violation("update theme", "accent must be #rrggbb, got "+*upd.Accent)
		}

		next.Accent = *upd.Accent
	}

	if upd.FontSize != nil {
		if !validFontSize(*upd.FontSize) {
			return violation("update theme", "unknown font size "+*upd.FontSize)
		}

		next.FontSize = *upd.FontSize
	}

	if upd.ReducedMotion != nil {
		next.ReducedMotion = *upd.ReducedMotion
	}

	if upd.RoundedCorners != nil {
		next.RoundedCorners = *upd.RoundedCorners
	}

	if upd.CompactMode != nil {
		next.CompactMode = *upd.CompactMode
	}

	s.prefs = next
	s.persist.save(KeyTheme, s.prefs)
	s.logger.Debug("theme updated", "mode", next.Mode, "font_size", next.FontSize)

	return nil
}

// Appearance resolves the preferences into concrete values. systemDark is the
// host's color scheme and only matters in system mode.
func (s *ThemeStore) Appearance(systemDark bool) model.Appearance {
	return ResolveAppearance(s.Preferences(), systemDark)
}

// ResolveAppearance maps preferences to the values a front-end applies.
func ResolveAppearance(p model.Preferences, systemDark bool) model.Appearance {
	a := model.Appearance{
		Accent:          p.Accent,
		FontSizePx:      16,
		TransitionSpeed: "0.3s",
		BorderRadius:    "2px",
		SpacingUnit:     "8px",
	}

	switch p.Mode {
	case model.ThemeDark:
		a.Dark = true
	case model.ThemeSystem:
		a.Dark = systemDark
	}

	switch p.FontSize {
	case model.FontSmall:
		a.FontSizePx = 14
	case model.FontLarge:
		a.FontSizePx = 18
	}

	if p.ReducedMotion {
		a.TransitionSpeed = "0s"
	}

	if p.RoundedCorners {
		a.BorderRadius = "8px"
	}

	if p.CompactMode {
		a.SpacingUnit = "4px"
	}

	return a
}

func (s *ThemeStore) unlock() {
	s.mu.Unlock()
	s.persist.drain()
}

func validMode(m string) bool {
	return m == model.ThemeLight || m == model.ThemeDark || m == model.ThemeSystem
}

func validFontSize(f string) bool {
	return f == model.FontSmall || f == model.FontMedium || f == model.FontLarge
}
