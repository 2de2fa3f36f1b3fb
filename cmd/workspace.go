package cmd

import (
	"fmt"

	"github.com/inovacc/horizon/internal/model"
	"github.com/inovacc/horizon/internal/service"
	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Manage workspaces",
	Long: `Manage workspaces for grouping tabs.

Every tab belongs to exactly one workspace and exactly one workspace is
active. Workspaces can be referenced by id or by name.`,
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all workspaces",
	Args:  cobra.NoArgs,
	RunE:  runWorkspaceList,
}

var workspaceAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new workspace",
	Long: `Create a new, empty workspace. Its id is derived from the name.

Examples:
  horizon workspace add Design
  horizon workspace add "Side Project" --icon S --color "#ff006e"`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkspaceAdd,
}

var workspaceUseCmd = &cobra.Command{
	Use:   "use <workspace>",
	Short: "Set the active workspace",
	Long: `Set the active workspace. If the active tab belongs to another
workspace, the first tab of this one is activated.

Example:
  horizon workspace use research`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkspaceUse,
}

var workspaceRenameCmd = &cobra.Command{
	Use:   "rename <workspace> <name>",
	Short: "Rename a workspace",
	Long:  `Change the display name of a workspace. The id stays the same.`,
	Args:  cobra.ExactArgs(2),
	RunE: workspaceAction(func(b *service.Browser, w model.Workspace, args []string) (string, error) {
		return fmt.Sprintf("Workspace '%s' renamed to '%s'", w.Name, args[1]), b.Workspaces.RenameWorkspace(w.ID, args[1])
	}),
}

var workspaceColorCmd = &cobra.Command{
	Use:   "color <workspace> <color>",
	Short: "Change the color of a workspace",
	Args:  cobra.ExactArgs(2),
	RunE: workspaceAction(func(b *service.Browser, w model.Workspace, args []string) (string, error) {
		return fmt.Sprintf("Workspace '%s' color set to %s", w.Name, args[1]), b.Workspaces.ChangeWorkspaceColor(w.ID, args[1])
	}),
}

var workspaceArchiveCmd = &cobra.Command{
	Use:   "archive <workspace>",
	Short: "Archive a workspace",
	Long: `Hide a workspace from the switcher. Its tabs are kept. If it was
active, the first available workspace becomes active.`,
	Args: cobra.ExactArgs(1),
	RunE: workspaceAction(func(b *service.Browser, w model.Workspace, _ []string) (string, error) {
		return fmt.Sprintf("Workspace '%s' archived", w.Name), b.Workspaces.ArchiveWorkspace(w.ID)
	}),
}

var workspaceRestoreCmd = &cobra.Command{
	Use:   "restore <workspace>",
	Short: "Restore an archived workspace",
	Args:  cobra.ExactArgs(1),
	RunE: workspaceAction(func(b *service.Browser, w model.Workspace, _ []string) (string, error) {
		return fmt.Sprintf("Workspace '%s' restored", w.Name), b.Workspaces.RestoreWorkspace(w.ID)
	}),
}

var workspaceRemoveCmd = &cobra.Command{
	Use:   "remove <workspace>",
	Short: "Remove a workspace",
	Long: `Remove a workspace permanently. Its open tabs are moved to the tab
archive and can be restored with 'horizon tab restore'.

The last available workspace cannot be removed.`,
	Args: cobra.ExactArgs(1),
	RunE: workspaceAction(func(b *service.Browser, w model.Workspace, _ []string) (string, error) {
		msg := fmt.Sprintf("Workspace '%s' removed", w.Name)
		if w.TabCount > 0 {
			msg += fmt.Sprintf(", %d tabs archived", w.TabCount)
		}

		return msg, b.Workspaces.DeleteWorkspace(w.ID)
	}),
}

var (
	workspaceAddIcon  string
	workspaceAddColor string
)

func init() {
	rootCmd.AddCommand(workspaceCmd)

	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceAddCmd)
	workspaceCmd.AddCommand(workspaceUseCmd)
	workspaceCmd.AddCommand(workspaceRenameCmd)
	workspaceCmd.AddCommand(workspaceColorCmd)
	workspaceCmd.AddCommand(workspaceArchiveCmd)
	workspaceCmd.AddCommand(workspaceRestoreCmd)
	workspaceCmd.AddCommand(workspaceRemoveCmd)

	workspaceAddCmd.Flags().StringVar(&workspaceAddIcon, "icon", "", "Badge shown for the workspace (default: first letter of the name)")
	workspaceAddCmd.Flags().StringVar(&workspaceAddColor, "color", "", "Badge color as #rrggbb (default: "+model.DefaultColor+")")
}

// workspaceAction builds a RunE that resolves the workspace argument and runs
// op on it. op returns the message printed on success.
func workspaceAction(op func(b *service.Browser, w model.Workspace, args []string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withBrowser(func(b *service.Browser) error {
			w, err := b.ResolveWorkspace(args[0])
			if err != nil {
				return err
			}

			msg, err := op(b, w, args)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)

			return nil
		})
	}
}

func runWorkspaceList(cmd *cobra.Command, _ []string) error {
	return withBrowser(func(b *service.Browser) error {
		workspaces := b.Workspaces.List()
		out := cmd.OutOrStdout()

		_, _ = fmt.Fprintf(out, "Workspaces (%d):\n\n", len(workspaces))

		tw := newTable(out)
		_, _ = fmt.Fprintln(tw, "\tID\tNAME\tICON\tCOLOR\tTABS\tLAST USED")

		for _, w := range workspaces {
			lastUsed := w.LastUsed
			if w.Archived {
				lastUsed = "archived"
			}

			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
				activeMark(w.Active), w.ID, w.Name, w.Icon, w.Color, w.TabCount, lastUsed)
		}

		return tw.Flush()
	})
}

func runWorkspaceAdd(cmd *cobra.Command, args []string) error {
	return withBrowser(func(b *service.Browser) error {
		id, err := b.Workspaces.CreateWorkspace(args[0], workspaceAddIcon, workspaceAddColor)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Workspace '%s' created (id: %s)\n", args[0], id)
		_, _ = fmt.Fprintf(out, "To use this workspace: horizon workspace use %s\n", id)

		return nil
	})
}

func runWorkspaceUse(cmd *cobra.Command, args []string) error {
	return withBrowser(func(b *service.Browser) error {
		w, err := b.SwitchWorkspace(args[0])
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Workspace '%s' is now active\n", w.Name)

		return nil
	})
}
