package cmd

import (
	"fmt"
	"strconv"

	"github.com/inovacc/horizon/internal/service"
	"github.com/spf13/cobra"
)

var tabCmd = &cobra.Command{
	Use:   "tab",
	Short: "Manage tabs",
	Long: `Manage the open tabs.

Tab ids can be shortened to any unique prefix, as shown by 'horizon tab list'.
Page loads started by a command complete before it exits.`,
}

var tabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tabs of the active workspace",
	Long: `List the tabs of the active workspace in strip order.
The active tab is marked with *.

Examples:
  horizon tab list
  horizon tab list --all
  horizon tab list --workspace work`,
	Args: cobra.NoArgs,
	RunE: runTabList,
}

var tabNewCmd = &cobra.Command{
	Use:   "new [url]",
	Short: "Create a tab in the active workspace",
	Long: `Create a tab in the active workspace without activating it.
Without a url the tab is blank.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTabNew,
}

var tabOpenCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Open a url in a new active tab",
	Long: `Open a url in a new tab of the active workspace and activate it.
Addresses without a scheme get https://.

Example:
  horizon tab open example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runTabOpen,
}

var tabActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Activate a tab",
	Args:  cobra.ExactArgs(1),
	RunE: tabAction(func(b *service.Browser, id string) error {
		return b.Tabs.ActivateTab(id)
	}, "Tab %s is now active\n"),
}

var tabCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a tab and discard its history",
	Args:  cobra.ExactArgs(1),
	RunE: tabAction(func(b *service.Browser, id string) error {
		return b.Tabs.CloseTab(id)
	}, "Tab %s closed\n"),
}

var tabPinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Pin or unpin a tab",
	Long:  `Toggle the pinned state of a tab. Pinned tabs come first in the strip.`,
	Args:  cobra.ExactArgs(1),
	RunE: tabAction(func(b *service.Browser, id string) error {
		return b.Tabs.PinTab(id)
	}, "Tab %s pin toggled\n"),
}

var tabArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Close a tab and keep it in the archive",
	Args:  cobra.ExactArgs(1),
	RunE: tabAction(func(b *service.Browser, id string) error {
		return b.Tabs.ArchiveTab(id)
	}, "Tab %s archived\n"),
}

var tabNavigateCmd = &cobra.Command{
	Use:   "navigate <id> <url>",
	Short: "Load a url in a tab",
	Args:  cobra.ExactArgs(2),
	RunE:  runTabNavigate,
}

var tabBackCmd = &cobra.Command{
	Use:   "back <id>",
	Short: "Go back to the previous page of a tab",
	Args:  cobra.ExactArgs(1),
	RunE:  runTabBack,
}

var tabMoveCmd = &cobra.Command{
	Use:   "move <id> <position>",
	Short: "Move a tab to a position in the strip",
	Long: `Move a tab to a zero-based position. Positions past the end move
the tab last.`,
	Args: cobra.ExactArgs(2),
	RunE: runTabMove,
}

var tabRestoreCmd = &cobra.Command{
	Use:   "restore <archived-id>",
	Short: "Reopen an archived tab",
	Args:  cobra.ExactArgs(1),
	RunE:  runTabRestore,
}

var tabArchivedCmd = &cobra.Command{
	Use:   "archived",
	Short: "List archived tabs",
	Args:  cobra.NoArgs,
	RunE:  runTabArchived,
}

var tabHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the back history of a tab",
	Args:  cobra.ExactArgs(1),
	RunE:  runTabHistory,
}

var tabToWorkspaceCmd = &cobra.Command{
	Use:   "to-workspace <id> <workspace>",
	Short: "Move a tab to another workspace",
	Args:  cobra.ExactArgs(2),
	RunE:  runTabToWorkspace,
}

var (
	tabListAll       bool
	tabListWorkspace string
	tabNewTitle      string
	tabNoHistory     bool
)

func init() {
	rootCmd.AddCommand(tabCmd)

	tabCmd.AddCommand(tabListCmd)
	tabCmd.AddCommand(tabNewCmd)
	tabCmd.AddCommand(tabOpenCmd)
	tabCmd.AddCommand(tabActivateCmd)
	tabCmd.AddCommand(tabCloseCmd)
	tabCmd.AddCommand(tabNavigateCmd)
	tabCmd.AddCommand(tabBackCmd)
	tabCmd.AddCommand(tabPinCmd)
	tabCmd.AddCommand(tabMoveCmd)
	tabCmd.AddCommand(tabArchiveCmd)
	tabCmd.AddCommand(tabRestoreCmd)
	tabCmd.AddCommand(tabArchivedCmd)
	tabCmd.AddCommand(tabHistoryCmd)
	tabCmd.AddCommand(tabToWorkspaceCmd)

	tabListCmd.Flags().BoolVarP(&tabListAll, "all", "a", false, "List the tabs of every workspace")
	tabListCmd.Flags().StringVarP(&tabListWorkspace, "workspace", "w", "", "List the tabs of this workspace")
	tabNewCmd.Flags().StringVar(&tabNewTitle, "title", "", "Initial title")
	tabNavigateCmd.Flags().BoolVar(&tabNoHistory, "no-history", false, "Replace the current page instead of adding it to the history")
}

// tabAction builds a RunE that resolves the tab id argument and runs op on it.
func tabAction(op func(b *service.Browser, id string) error, done string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withBrowser(func(b *service.Browser) error {
			id, err := resolveTab(b, args[0])
			if err != nil {
				return err
			}

			if err := op(b, id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), done, shortID(id))

			return nil
		})
	}
}

func runTabList(cmd *cobra.Command, _ []string) error {
	return withBrowser(func(b *service.Browser) error {
		switch {
		case tabListAll:
			return printTabs(cmd.OutOrStdout(), b.Tabs.Tabs())
		case tabListWorkspace != "":
			w, err := b.ResolveWorkspace(tabListWorkspace)
			if err != nil {
				return err
			}

			return printTabs(cmd.OutOrStdout(), b.Tabs.TabsInWorkspace(w.ID))
		default:
			return printTabs(cmd.OutOrStdout(), b.ActiveWorkspaceTabs())
		}
	})
}

func runTabNew(cmd *cobra.Command, args []string) error {
	url := ""
	if len(args) > 0 {
		url = args[0]
	}

	return withBrowser(func(b *service.Browser) error {
		id, err := b.Tabs.CreateTab(url, tabNewTitle)
		if err != nil {
			return err
		}

		b.Tabs.Flush()

		tab, err := b.Tabs.Get(id)
		if err != nil {
			return err
		}

		printTab(cmd.OutOrStdout(), tab)

		return nil
	})
}

func runTabOpen(cmd *cobra.Command, args []string) error {
	return withBrowser(func(b *service.Browser) error {
		tab, err := b.OpenTab(args[0])
		if err != nil {
			return err
		}

		b.Tabs.Flush()

		if tab, err = b.Tabs.Get(tab.ID); err != nil {
			return err
		}

		printTab(cmd.OutOrStdout(), tab)

		return nil
	})
}

func runTabNavigate(cmd *cobra.Command, args []string) error {
	return withBrowser(func(b *service.Browser) error {
		id, err := resolveTab(b, args[0])
		if err != nil {
			return err
		}

		if err := b.Tabs.NavigateTab(id, args[1], !tabNoHistory); err != nil {
			return err
		}

		b.Tabs.Flush()

		tab, err := b.Tabs.Get(id)
		if err != nil {
			return err
		}

		printTab(cmd.OutOrStdout(), tab)

		return nil
	})
}

func runTabBack(cmd *cobra.Command, args []string) error {
	return withBrowser(func(b *service.Browser) error {
		id, err := resolveTab(b, args[0])
		if err != nil {
			return err
		}

		if len(b.Tabs.History(id)) == 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tab %s has no history\n", shortID(id))

			return nil
		}

		if err := b.Tabs.GoBack(id); err != nil {
			return err
		}

		b.Tabs.Flush()

		tab, err := b.Tabs.Get(id)
		if err != nil {
			return err
		}

		printTab(cmd.OutOrStdout(), tab)

		return nil
	})
}

func runTabMove(cmd *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q: %w", args[1], err)
	}

	return withBrowser(func(b *service.Browser) error {
		id, err := resolveTab(b, args[0])
		if err != nil {
			return err
		}

		if err := b.Tabs.MoveTab(id, pos); err != nil {
			return err
		}

		tab, err := b.Tabs.Get(id)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tab %s moved to position %d\n", shortID(id), tab.Position)

		return nil
	})
}

func runTabRestore(cmd *cobra.Command, args []string) error {
	return withBrowser(func(b *service.Browser) error {
		archivedID, err := resolveArchived(b, args[0])
		if err != nil {
			return err
		}

		id, err := b.Tabs.RestoreTab(archivedID)
		if err != nil {
			return err
		}

		b.Tabs.Flush()

		tab, err := b.Tabs.Get(id)
		if err != nil {
			return err
		}

		printTab(cmd.OutOrStdout(), tab)

		return nil
	})
}

func runTabArchived(cmd *cobra.Command, _ []string) error {
	return withBrowser(func(b *service.Browser) error {
		archived := b.Tabs.Archived()
		out := cmd.OutOrStdout()

		if len(archived) == 0 {
			_, _ = fmt.Fprintln(out, "The archive is empty.")

			return nil
		}

		tw := newTable(out)
		_, _ = fmt.Fprintln(tw, "ID\tTITLE\tURL\tWORKSPACE\tARCHIVED")

		for _, a := range archived {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				shortID(a.ID), a.Title, a.URL, a.WorkspaceID, a.ArchivedAt.Format("2006-01-02 15:04"))
		}

		return tw.Flush()
	})
}

func runTabHistory(cmd *cobra.Command, args []string) error {
	return withBrowser(func(b *service.Browser) error {
		id, err := resolveTab(b, args[0])
		if err != nil {
			return err
		}

		history := b.Tabs.History(id)
		out := cmd.OutOrStdout()

		if len(history) == 0 {
			_, _ = fmt.Fprintf(out, "Tab %s has no history\n", shortID(id))

			return nil
		}

		// Most recent first, the order 'back' pops them.
		for i := len(history) - 1; i >= 0; i-- {
			_, _ = fmt.Fprintf(out, "%2d  %s  %s\n", len(history)-i, history[i].Title, history[i].URL)
		}

		return nil
	})
}

func runTabToWorkspace(cmd *cobra.Command, args []string) error {
	return withBrowser(func(b *service.Browser) error {
		id, err := resolveTab(b, args[0])
		if err != nil {
			return err
		}

		w, err := b.ResolveWorkspace(args[1])
		if err != nil {
			return err
		}

		if err := b.Tabs.MoveTabToWorkspace(id, w.ID); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tab %s moved to workspace '%s'\n", shortID(id), w.Name)

		return nil
	})
}
