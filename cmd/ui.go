package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/horizon/internal/cli"
	"github.com/inovacc/horizon/internal/params"
	"github.com/inovacc/horizon/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("the interactive shell needs a terminal")

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Start the interactive shell",
	Long: `Start the interactive shell with the address bar, the tab strip of the
active workspace and the workspace sidebar.

Logs are written to horizon.log in the application directory while the
shell runs.

Keys:
  t / ctrl+t     new tab            / / ctrl+l   edit address
  ctrl+x         close tab          p            pin tab
  a              archive tab        u            restore last archived
  b / alt+left   go back            tab / right  next tab
  ctrl+k         command palette    ctrl+w       switch workspace
  1-9            jump to workspace  \            split view
  f              focus mode         ctrl+y       cycle theme
  q / ctrl+c     quit`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}

	logOut, closeLog := openUILog()
	defer closeLog()

	slog.SetDefault(cfg.NewLogger(logOut))

	return withBrowser(func(b *service.Browser) error {
		m := cli.NewBrowser(b, lipgloss.HasDarkBackground())

		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("interactive shell: %w", err)
		}

		return nil
	})
}

// openUILog opens the shell's log file. Logging is discarded when it cannot
// be opened, since stderr is drawn over by the shell.
func openUILog() (io.Writer, func()) {
	path, err := params.LogFile()
	if err != nil {
		return io.Discard, func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}

	return f, func() { _ = f.Close() }
}
