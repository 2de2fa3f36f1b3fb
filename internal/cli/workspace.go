package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/horizon/internal/model"
)

var (
	workspaceNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	workspaceDetailStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// WorkspaceItem implements list.Item for workspace selection
type WorkspaceItem struct {
	workspace model.Workspace
	isNew     bool
}

func (i WorkspaceItem) Title() string {
	if i.isNew {
		return "+ Create new workspace..."
	}

	active := ""
	if i.workspace.Active {
		active = activeStyle.Render(" (active)")
	}

	return workspaceBadge(i.workspace) + " " + workspaceNameStyle.Render(i.workspace.Name) + active
}

func (i WorkspaceItem) Description() string {
	if i.isNew {
		return "Create a new workspace for a group of tabs"
	}

	tabs := "tabs"
	if i.workspace.TabCount == 1 {
		tabs = "tab"
	}

	return workspaceDetailStyle.Render(fmt.Sprintf("%d %s · %s", i.workspace.TabCount, tabs, i.workspace.LastUsed))
}

func (i WorkspaceItem) FilterValue() string {
	if i.isNew {
		return "create new"
	}

	return i.workspace.Name
}

// WorkspaceSwitcherModel is the TUI model for workspace selection. Archived
// workspaces are not offered.
type WorkspaceSwitcherModel struct {
	list      list.Model
	creating  bool
	nameInput textinput.Model
	selected  string
	newName   string
	quitting  bool
}

// NewWorkspaceSwitcher creates a switcher over workspaces.
func NewWorkspaceSwitcher(workspaces []model.Workspace, width, height int) WorkspaceSwitcherModel {
	items := make([]list.Item, 0, len(workspaces)+1)

	for _, w := range workspaces {
		if !w.Archived {
			items = append(items, WorkspaceItem{workspace: w})
		}
	}

	items = append(items, WorkspaceItem{isNew: true})

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Switch Workspace"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	nameInput := textinput.New()
	nameInput.Placeholder = "Workspace name"
	nameInput.CharLimit = 50
	nameInput.Width = 40

	return WorkspaceSwitcherModel{list: l, nameInput: nameInput}
}

func (m WorkspaceSwitcherModel) Init() tea.Cmd {
	return nil
}

func (m WorkspaceSwitcherModel) Update(msg tea.Msg) (WorkspaceSwitcherModel, tea.Cmd) {
	if m.creating {
		return m.updateCreating(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true

			return m, nil

		case "enter":
			i, ok := m.list.SelectedItem().(WorkspaceItem)
			if !ok {
				return m, nil
			}

			if i.isNew {
				m.creating = true
				m.nameInput.Focus()

				return m, textinput.Blink
			}

			m.selected = i.workspace.ID

			return m, nil
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m WorkspaceSwitcherModel) updateCreating(msg tea.Msg) (WorkspaceSwitcherModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			// Go back to the list
			m.creating = false
			m.nameInput.Reset()
			m.nameInput.Blur()

			return m, nil

		case "enter":
			m.newName = strings.TrimSpace(m.nameInput.Value())

			return m, nil
		}
	}

	var cmd tea.Cmd

	m.nameInput, cmd = m.nameInput.Update(msg)

	return m, cmd
}

func (m WorkspaceSwitcherModel) View() string {
	if m.creating {
		return m.viewCreating()
	}

	return m.list.View()
}

func (m WorkspaceSwitcherModel) viewCreating() string {
	title := workspaceNameStyle.Render("Create New Workspace")
	instructions := mutedStyle.Render("Enter to create and switch, Esc to cancel")

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", title, instructions, lipgloss.NewStyle().Bold(true).Render("Name:"), m.nameInput.View())
}

// GetSelected returns the id of the chosen workspace, or "" if none was chosen
func (m WorkspaceSwitcherModel) GetSelected() string {
	return m.selected
}

// NewWorkspaceName returns the name entered for a new workspace, or ""
func (m WorkspaceSwitcherModel) NewWorkspaceName() string {
	return m.newName
}

// Quitting reports whether the switcher was dismissed
func (m WorkspaceSwitcherModel) Quitting() bool {
	return m.quitting
}
