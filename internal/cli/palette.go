package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// Command ids
const (
	CmdSearch      = "search"
	CmdSplit       = "split"
	CmdFocus       = "focus"
	CmdWorkspace   = "workspace"
	CmdNewTab      = "new-tab"
	CmdCloseTab    = "close-tab"
	CmdPinTab      = "pin-tab"
	CmdArchiveTab  = "archive-tab"
	CmdGoBack      = "go-back"
	CmdToggleTheme = "toggle-theme"
)

// Command is an entry of the command palette.
type Command struct {
	ID       string
	Title    string
	Shortcut string
}

// Text is the label shown for the command. The search entry echoes the query.
func (c Command) Text(query string) string {
	if c.ID != CmdSearch {
		return c.Title
	}

	if query == "" {
		query = "anything"
	}

	return fmt.Sprintf("Search for %q", query)
}

// DefaultCommands returns the palette commands in display order.
func DefaultCommands() []Command {
	return []Command{
		{ID: CmdSearch, Title: "Search", Shortcut: "enter"},
		{ID: CmdSplit, Title: "Toggle Split View", Shortcut: `\`},
		{ID: CmdFocus, Title: "Toggle Focus Mode", Shortcut: "f"},
		{ID: CmdWorkspace, Title: "Switch Workspace", Shortcut: "ctrl+w"},
		{ID: CmdNewTab, Title: "New Tab", Shortcut: "ctrl+t"},
		{ID: CmdCloseTab, Title: "Close Tab", Shortcut: "ctrl+x"},
		{ID: CmdPinTab, Title: "Pin Tab", Shortcut: "p"},
		{ID: CmdArchiveTab, Title: "Archive Tab", Shortcut: "a"},
		{ID: CmdGoBack, Title: "Go Back", Shortcut: "b"},
		{ID: CmdToggleTheme, Title: "Toggle Theme", Shortcut: "ctrl+y"},
	}
}

type commandSource []Command

func (s commandSource) String(i int) string { return s[i].Title }
func (s commandSource) Len() int            { return len(s) }

// FilterCommands returns the commands matching query, best match first. The
// match is fuzzy and ignores case. An empty query returns every command.
// For a non-empty query the search command always matches and comes last.
func FilterCommands(cmds []Command, query string) []Command {
	query = strings.TrimSpace(query)
	if query == "" {
		return slices.Clone(cmds)
	}

	var (
		others commandSource
		search []Command
	)

	for _, c := range cmds {
		if c.ID == CmdSearch {
			search = append(search, c)
		} else {
			others = append(others, c)
		}
	}

	matches := fuzzy.FindFrom(query, others)

	out := make([]Command, 0, len(matches)+len(search))
	for _, m := range matches {
		out = append(out, others[m.Index])
	}

	return append(out, search...)
}

// PaletteModel is the command palette overlay.
type PaletteModel struct {
	commands []Command
	input    textinput.Model
	matches  []Command
	cursor   int

	chosen   *Command
	canceled bool
}

// NewPalette creates a palette over cmds with the query input focused.
func NewPalette(cmds []Command) PaletteModel {
	input := textinput.New()
	input.Placeholder = "Type a command or search..."
	input.CharLimit = 200
	input.Width = 50
	input.Focus()

	return PaletteModel{
		commands: cmds,
		input:    input,
		matches:  slices.Clone(cmds),
	}
}

func (m PaletteModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PaletteModel) Update(msg tea.Msg) (PaletteModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+c":
			m.canceled = true

			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}

			return m, nil

		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}

			c := m.matches[m.cursor]
			m.chosen = &c

			return m, nil
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.matches = FilterCommands(m.commands, m.input.Value())

	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}

	return m, cmd
}

// Chosen returns the command confirmed with enter and the query typed.
func (m PaletteModel) Chosen() (cmd Command, query string, ok bool) {
	if m.chosen == nil {
		return Command{}, "", false
	}

	return *m.chosen, strings.TrimSpace(m.input.Value()), true
}

// Canceled reports whether the palette was dismissed.
func (m PaletteModel) Canceled() bool {
	return m.canceled
}

// Selected returns the highlighted command.
func (m PaletteModel) Selected() (Command, bool) {
	if len(m.matches) == 0 {
		return Command{}, false
	}

	return m.matches[m.cursor], true
}

func (m PaletteModel) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	query := strings.TrimSpace(m.input.Value())

	for i, c := range m.matches {
		line := fmt.Sprintf("%-32s %s", c.Text(query), mutedStyle.Render(c.Shortcut))

		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}

		b.WriteString("\n")
	}

	if len(m.matches) == 0 {
		b.WriteString(mutedStyle.Render("No matching commands"))
	}

	return b.String()
}
