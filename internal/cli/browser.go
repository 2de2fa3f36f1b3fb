package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/horizon/internal/model"
	"github.com/inovacc/horizon/internal/service"
)

type mode int

const (
	modeBrowse mode = iota
	modeAddress
	modePalette
	modeSwitcher
)

const refreshInterval = 200 * time.Millisecond

var errNoActiveTab = errors.New("no active tab")

// tickMsg redraws the shell so navigation completions show up.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// BrowserModel is the interactive shell: a top bar with the address, the tab
// strip of the active workspace, a workspace sidebar and the page area.
type BrowserModel struct {
	browser    *service.Browser
	mode       mode
	address    textinput.Model
	palette    PaletteModel
	switcher   WorkspaceSwitcherModel
	spinner    spinner.Model
	focus      bool
	split      bool
	systemDark bool
	width      int
	height     int
	status     string
	quitting   bool
}

// NewBrowser creates the shell over b. systemDark is the terminal's color
// scheme, used when the theme mode is "system".
func NewBrowser(b *service.Browser, systemDark bool) BrowserModel {
	address := textinput.New()
	address.Placeholder = "Search or enter address"
	address.CharLimit = 2048
	address.Prompt = "🔍 "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return BrowserModel{
		browser:    b,
		address:    address,
		spinner:    sp,
		systemDark: systemDark,
		width:      100,
		height:     30,
	}
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

		if m.mode == modeSwitcher {
			m.switcher, _ = m.switcher.Update(msg)
		}

		return m, nil

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeAddress:
			return m.updateAddress(msg)
		case modePalette:
			return m.updatePalette(msg)
		case modeSwitcher:
			return m.updateSwitcher(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m.forward(msg)
}

// forward hands non-key messages, such as cursor blinks, to the focused input.
func (m BrowserModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.mode {
	case modeAddress:
		m.address, cmd = m.address.Update(msg)
	case modePalette:
		m.palette, cmd = m.palette.Update(msg)
	case modeSwitcher:
		m.switcher, cmd = m.switcher.Update(msg)
	}

	return m, cmd
}

func (m BrowserModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		m.quitting = true

		return m, tea.Quit
	}

	if m.focus {
		if key == "f" || key == "esc" {
			m.focus = false
		}

		return m, nil
	}

	m.status = ""

	switch key {
	case "ctrl+k":
		return m.openPalette()
	case "ctrl+w":
		return m.run(CmdWorkspace, "")
	case "ctrl+l", "/":
		return m.openAddress()
	case "ctrl+t", "t":
		return m.run(CmdNewTab, "")
	case "ctrl+x":
		return m.run(CmdCloseTab, "")
	case "p":
		return m.run(CmdPinTab, "")
	case "a":
		return m.run(CmdArchiveTab, "")
	case "b", "alt+left":
		return m.run(CmdGoBack, "")
	case "f":
		return m.run(CmdFocus, "")
	case `\`:
		return m.run(CmdSplit, "")
	case "ctrl+y":
		return m.run(CmdToggleTheme, "")
	case "u":
		m.restoreLastArchived()
	case "tab", "right":
		m.cycleTab(1)
	case "shift+tab", "left":
		m.cycleTab(-1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.switchToNth(int(key[0] - '1'))
	}

	return m, nil
}

func (m BrowserModel) openAddress() (tea.Model, tea.Cmd) {
	m.mode = modeAddress
	m.address.Reset()

	if tab, ok := m.browser.Tabs.ActiveTab(); ok && !tab.IsBlank() {
		m.address.SetValue(tab.URL)
	}

	cmd := m.address.Focus()

	return m, cmd
}

func (m BrowserModel) updateAddress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.address.Blur()

		return m, nil

	case "enter":
		m.mode = modeBrowse
		m.address.Blur()
		m.navigate(strings.TrimSpace(m.address.Value()))

		return m, nil
	}

	var cmd tea.Cmd

	m.address, cmd = m.address.Update(msg)

	return m, cmd
}

// navigate loads url in the active tab, or in a new tab when none is active.
func (m *BrowserModel) navigate(url string) {
	if url == "" {
		return
	}

	tab, ok := m.browser.Tabs.ActiveTab()
	if !ok || tab.WorkspaceID != m.browser.Workspaces.ActiveID() {
		_, err := m.browser.OpenTab(url)
		m.setErr(err)

		return
	}

	m.setErr(m.browser.Tabs.NavigateTab(tab.ID, url, true))
}

func (m BrowserModel) openPalette() (tea.Model, tea.Cmd) {
	m.mode = modePalette
	m.palette = NewPalette(DefaultCommands())

	return m, m.palette.Init()
}

func (m BrowserModel) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	m.palette, cmd = m.palette.Update(msg)

	if m.palette.Canceled() {
		m.mode = modeBrowse

		return m, nil
	}

	if c, query, ok := m.palette.Chosen(); ok {
		m.mode = modeBrowse

		return m.run(c.ID, query)
	}

	return m, cmd
}

func (m BrowserModel) updateSwitcher(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	m.switcher, cmd = m.switcher.Update(msg)

	switch {
	case m.switcher.Quitting():
		m.mode = modeBrowse
	case m.switcher.GetSelected() != "":
		m.mode = modeBrowse

		w, err := m.browser.SwitchWorkspace(m.switcher.GetSelected())
		if m.setErr(err) {
			m.status = "Switched to " + w.Name
		}
	case m.switcher.NewWorkspaceName() != "":
		m.mode = modeBrowse

		name := m.switcher.NewWorkspaceName()

		id, err := m.browser.Workspaces.CreateWorkspace(name, "", "")
		if !m.setErr(err) {
			return m, nil
		}

		if _, err := m.browser.SwitchWorkspace(id); m.setErr(err) {
			m.status = "Created " + name
		}
	default:
		return m, cmd
	}

	return m, nil
}

// run executes a palette command.
func (m BrowserModel) run(id, query string) (tea.Model, tea.Cmd) {
	switch id {
	case CmdSearch:
		if query != "" {
			_, err := m.browser.OpenTab(query)
			m.setErr(err)
		}
	case CmdSplit:
		m.split = !m.split
	case CmdFocus:
		m.focus = !m.focus
	case CmdWorkspace:
		m.mode = modeSwitcher
		h, v := docStyle.GetFrameSize()
		m.switcher = NewWorkspaceSwitcher(m.browser.Workspaces.List(), m.width-h, m.height-v)
	case CmdNewTab:
		_, err := m.browser.OpenTab("")
		m.setErr(err)

		return m.openAddress()
	case CmdCloseTab:
		m.withActiveTab(m.browser.Tabs.CloseTab)
	case CmdPinTab:
		m.withActiveTab(m.browser.Tabs.PinTab)
	case CmdArchiveTab:
		m.withActiveTab(m.browser.Tabs.ArchiveTab)
	case CmdGoBack:
		m.withActiveTab(m.browser.Tabs.GoBack)
	case CmdToggleTheme:
		m.toggleTheme()
	}

	return m, nil
}

func (m *BrowserModel) withActiveTab(op func(id string) error) {
	tab, ok := m.browser.Tabs.ActiveTab()
	if !ok {
		m.setErr(errNoActiveTab)

		return
	}

	m.setErr(op(tab.ID))
}

func (m *BrowserModel) toggleTheme() {
	next := map[string]string{
		model.ThemeLight:  model.ThemeDark,
		model.ThemeDark:   model.ThemeSystem,
		model.ThemeSystem: model.ThemeLight,
	}[m.browser.Theme.Preferences().Mode]

	if m.setErr(m.browser.Theme.Update(model.ThemeUpdate{Mode: &next})) {
		m.status = "Theme: " + next
	}
}

func (m *BrowserModel) cycleTab(step int) {
	tabs := m.browser.ActiveWorkspaceTabs()
	if len(tabs) == 0 {
		return
	}

	current := -1

	for i, t := range tabs {
		if t.IsActive {
			current = i
		}
	}

	next := (current + step + len(tabs)) % len(tabs)
	if current < 0 {
		next = 0
	}

	m.setErr(m.browser.Tabs.ActivateTab(tabs[next].ID))
}

func (m *BrowserModel) switchToNth(n int) {
	var available []model.Workspace

	for _, w := range m.browser.Workspaces.List() {
		if !w.Archived {
			available = append(available, w)
		}
	}

	if n >= len(available) {
		return
	}

	w, err := m.browser.SwitchWorkspace(available[n].ID)
	if m.setErr(err) {
		m.status = "Switched to " + w.Name
	}
}

func (m *BrowserModel) restoreLastArchived() {
	archived := m.browser.Tabs.Archived()
	if len(archived) == 0 {
		m.status = "Archive is empty"

		return
	}

	id, err := m.browser.Tabs.RestoreTab(archived[len(archived)-1].ID)
	if m.setErr(err) {
		m.setErr(m.browser.Tabs.ActivateTab(id))
	}
}

// setErr shows err in the status line. It reports whether err was nil.
func (m *BrowserModel) setErr(err error) bool {
	if err == nil {
		return true
	}

	m.status = errorStyle.Render(err.Error())

	return false
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	th := newTheme(m.browser.Theme.Appearance(m.systemDark))

	if m.focus {
		return docStyle.Render(th.overlay.Render(
			lipgloss.NewStyle().Bold(true).Render("Focus Mode Activated") + "\n\n" +
				"Distractions minimized. Notifications paused.\n\n" +
				mutedStyle.Render("f  Exit Focus Mode")))
	}

	var body string

	switch m.mode {
	case modePalette:
		body = th.overlay.Render(m.palette.View())
	case modeSwitcher:
		body = m.switcher.View()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(th), m.viewMain(th))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewTopBar(th),
		body,
		m.viewFooter(),
	))
}

func (m BrowserModel) viewTopBar(th theme) string {
	ws, _ := m.browser.ActiveWorkspace()

	var addr string

	switch tab, ok := m.browser.Tabs.ActiveTab(); {
	case m.mode == modeAddress:
		addr = m.address.View()
	case ok && !tab.IsBlank():
		addr = tab.URL
	default:
		addr = mutedStyle.Render(m.address.Placeholder)
	}

	loading := ""
	if tab, ok := m.browser.Tabs.ActiveTab(); ok && tab.IsLoading {
		loading = " " + m.spinner.View()
	}

	return th.bar.Width(max(20, m.width-6)).Render(
		workspaceBadge(ws) + " " + ws.Name + "  │  " + addr + loading)
}

func (m BrowserModel) viewSidebar(th theme) string {
	var b strings.Builder

	n := 0

	for _, w := range m.browser.Workspaces.List() {
		if w.Archived {
			continue
		}

		n++

		name := w.Name
		if w.Active {
			name = activeStyle.Render(name)
		}

		fmt.Fprintf(&b, "%d %s %s %s\n", n, workspaceBadge(w), name, mutedStyle.Render(fmt.Sprintf("(%d)", w.TabCount)))
	}

	return th.sidebar.Render(strings.TrimRight(b.String(), "\n"))
}

func (m BrowserModel) viewMain(th theme) string {
	tabs := m.browser.ActiveWorkspaceTabs()

	strip := make([]string, 0, len(tabs))

	for _, t := range tabs {
		label := truncate(t.Title, 18)
		if t.IsPinned {
			label = th.pinnedMark + " " + label
		}

		if t.IsLoading {
			label += " …"
		}

		style := th.tab
		if t.IsActive {
			style = th.activeTab
		}

		strip = append(strip, style.Render(label))
	}

	if len(strip) == 0 {
		strip = append(strip, mutedStyle.Render("No tabs. Press t to open one."))
	}

	active, ok := m.browser.Tabs.ActiveTab()

	page := m.viewPage(active, ok)

	if m.split {
		var other model.Tab

		found := false

		for _, t := range tabs {
			if t.ID != active.ID {
				other, found = t, true

				break
			}
		}

		half := lipgloss.NewStyle().Width(max(20, (m.width-30)/2))
		page = lipgloss.JoinHorizontal(lipgloss.Top,
			half.Render(page), th.sidebar.Render(""), half.Render(m.viewPage(other, found)))
	}

	return lipgloss.NewStyle().PaddingLeft(th.gap+1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, strip...) + "\n\n" + page)
}

func (m BrowserModel) viewPage(tab model.Tab, ok bool) string {
	if !ok {
		return mutedStyle.Render("Nothing open")
	}

	if tab.IsBlank() {
		return lipgloss.NewStyle().Bold(true).Render(model.BlankTitle) + "\n" +
			mutedStyle.Render("Press / to enter an address, ctrl+k for commands")
	}

	state := "Loaded"
	if tab.IsLoading {
		state = "Loading " + m.spinner.View()
	}

	back := len(m.browser.Tabs.History(tab.ID))

	return lipgloss.NewStyle().Bold(true).Render(tab.Title) + "\n" +
		tab.URL + "\n" +
		mutedStyle.Render(fmt.Sprintf("%s · %d back", state, back))
}

func (m BrowserModel) viewFooter() string {
	help := mutedStyle.Render(`t new · / address · ctrl+x close · p pin · a archive · u restore · b back · ctrl+k commands · ctrl+w workspaces · \ split · f focus · q quit`)

	if m.status == "" {
		return help
	}

	return m.status + "\n" + help
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
