package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/horizon/internal/model"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
)

// theme holds the styles derived from the appearance preferences.
type theme struct {
	accent     lipgloss.Color
	tab        lipgloss.Style
	activeTab  lipgloss.Style
	pinnedMark string
	bar        lipgloss.Style
	sidebar    lipgloss.Style
	overlay    lipgloss.Style
	gap        int
}

func newTheme(a model.Appearance) theme {
	accent := lipgloss.Color(a.Accent)

	fg := lipgloss.Color("252")
	bg := lipgloss.Color("236")

	if !a.Dark {
		fg = lipgloss.Color("235")
		bg = lipgloss.Color("254")
	}

	border := lipgloss.NormalBorder()
	if a.BorderRadius == "8px" {
		border = lipgloss.RoundedBorder()
	}

	gap := 1
	if a.SpacingUnit == "4px" {
		gap = 0
	}

	return theme{
		accent: accent,
		tab: lipgloss.NewStyle().
			Foreground(fg).
			Padding(0, gap+1),
		activeTab: lipgloss.NewStyle().
			Foreground(bg).
			Background(accent).
			Bold(true).
			Padding(0, gap+1),
		pinnedMark: "📌",
		bar: lipgloss.NewStyle().
			Border(border).
			BorderForeground(accent).
			Padding(0, 1),
		sidebar: lipgloss.NewStyle().
			Border(border, false, true, false, false).
			BorderForeground(accent).
			PaddingRight(gap + 1),
		overlay: lipgloss.NewStyle().
			Border(border).
			BorderForeground(accent).
			Padding(gap, 2),
		gap: gap,
	}
}

func workspaceBadge(w model.Workspace) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(w.Color)).
		Bold(true).
		Render(w.Icon)
}
