// Package cli provides the terminal user interface of Horizon.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - Browser: the shell with the address bar, tab strip and workspace sidebar
//   - Palette: the command palette, opened with ctrl+k
//   - WorkspaceSwitcher: filterable list of workspaces, opened with ctrl+w
//
// Sub-components do not emit messages when they finish. The browser checks
// their state (Chosen, Canceled, GetSelected) after each update instead.
//
// # Styling
//
// Colors, borders and spacing derive from the appearance preferences, see
// newTheme. Styles that do not depend on them are package-level variables.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
