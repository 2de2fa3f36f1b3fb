package core

import (
	"encoding/json"
	"testing"

	"github.com/inovacc/horizon/internal/model"
	"github.com/inovacc/horizon/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestThemeStore_Defaults(t *testing.T) {
	s := NewThemeStore(Options{Logger: discardLogger()})

	assert.Equal(t, model.DefaultPreferences(), s.Preferences())
}

func TestThemeStore_Update(t *testing.T) {
	mem := store.NewMemory()
	opts := Options{Storage: mem, Logger: discardLogger()}
	s := NewThemeStore(opts)

	require.NoError(t, s.Update(model.ThemeUpdate{
		Mode:        ptr(model.ThemeDark),
		FontSize:    ptr(model.FontLarge),
		CompactMode: ptr(true),
	}))

	p := s.Preferences()
	assert.Equal(t, model.ThemeDark, p.Mode)
	assert.Equal(t, model.FontLarge, p.FontSize)
	assert.True(t, p.CompactMode)
	assert.True(t, p.RoundedCorners, "untouched fields keep their value")

	raw, ok, err := mem.Load(KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)

	var saved model.Preferences
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, p, saved)

	assert.Equal(t, p, NewThemeStore(opts).Preferences())
}

func TestThemeStore_UpdateRejectsInvalid(t *testing.T) {
	s := NewThemeStore(Options{Logger: discardLogger()})

	tests := []struct {
		name string
		upd  model.ThemeUpdate
	}{
		{"mode", model.ThemeUpdate{Mode: ptr("sepia")}},
		{"font size", model.ThemeUpdate{FontSize: ptr("huge")}},
		{"accent", model.ThemeUpdate{Accent: ptr("blue")}},
		{"short accent", model.ThemeUpdate{Accent: ptr("#fff")}},
		{"valid then invalid", model.ThemeUpdate{Mode: ptr(model.ThemeDark), Accent: ptr("nope")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, s.Update(tt.upd), ErrInvariantViolation)
			assert.Equal(t, model.DefaultPreferences(), s.Preferences())
		})
	}
}

func TestThemeStore_LoadMergesOverDefaults(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Save(KeyTheme, []byte(`{"mode":"light","accent":"#ABCDEF","font_size":"gigantic"}`)))

	p := NewThemeStore(Options{Storage: mem, Logger: discardLogger()}).Preferences()

	assert.Equal(t, model.ThemeLight, p.Mode)
	assert.Equal(t, "#ABCDEF", p.Accent)
	assert.Equal(t, model.FontMedium, p.FontSize, "invalid saved values fall back to the default")
	assert.True(t, p.RoundedCorners, "missing fields keep the default")
}

func TestResolveAppearance(t *testing.T) {
	tests := []struct {
		name       string
		prefs      model.Preferences
		systemDark bool
		want       model.Appearance
	}{
		{
			name:  "defaults on a light system",
			prefs: model.DefaultPreferences(),
			want: model.Appearance{
				Accent: model.DefaultColor, FontSizePx: 16,
				TransitionSpeed: "0.3s", BorderRadius: "8px", SpacingUnit: "8px",
			},
		},
		{
			name:       "system follows the host",
			prefs:      model.DefaultPreferences(),
			systemDark: true,
			want: model.Appearance{
				Dark: true, Accent: model.DefaultColor, FontSizePx: 16,
				TransitionSpeed: "0.3s", BorderRadius: "8px", SpacingUnit: "8px",
			},
		},
		{
			name: "explicit light ignores the host",
			prefs: model.Preferences{
				Mode: model.ThemeLight, Accent: "#000000", FontSize: model.FontSmall,
				ReducedMotion: true, CompactMode: true,
			},
			systemDark: true,
			want: model.Appearance{
				Accent: "#000000", FontSizePx: 14,
				TransitionSpeed: "0s", BorderRadius: "2px", SpacingUnit: "4px",
			},
		},
		{
			name:  "dark and large",
			prefs: model.Preferences{Mode: model.ThemeDark, Accent: "#111111", FontSize: model.FontLarge},
			want: model.Appearance{
				Dark: true, Accent: "#111111", FontSizePx: 18,
				TransitionSpeed: "0.3s", BorderRadius: "2px", SpacingUnit: "8px",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAppearance(tt.prefs, tt.systemDark))
		})
	}
}
