package cmd

import (
	"fmt"

	"github.com/inovacc/horizon/internal/service"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export or import the browser state",
	Long: `Export the complete state (workspaces, tabs, history, the tab archive
and the theme) to JSON or YAML, or replace the state with an export.`,
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the state to a file or stdout",
	Long: `Write the state to a file or stdout.

The format follows the file extension (.yaml, .yml or .json) unless --format
is given. Stdout defaults to JSON.

Examples:
  horizon snapshot export                     # JSON to stdout
  horizon snapshot export -o backup.yaml      # YAML file
  horizon snapshot export --format yaml`,
	Args: cobra.NoArgs,
	RunE: runSnapshotExport,
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the state with an export",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotImport,
}

var (
	snapshotOutput string
	snapshotFormat string
)

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotImportCmd)

	snapshotExportCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "", "Output file path (default: stdout)")
	snapshotExportCmd.Flags().StringVar(&snapshotFormat, "format", "", "Output format: json or yaml")
}

func runSnapshotExport(cmd *cobra.Command, _ []string) error {
	return withBrowser(func(b *service.Browser) error {
		b.Tabs.Flush()

		snap := b.Snapshot()

		format := snapshotFormat
		if format == "" && snapshotOutput != "" {
			format = service.FormatFromPath(snapshotOutput)
		}

		if snapshotOutput == "" {
			return service.WriteSnapshot(cmd.OutOrStdout(), snap, format)
		}

		if snapshotFormat != "" && format != service.FormatFromPath(snapshotOutput) {
			return fmt.Errorf("--format %s does not match the extension of %s", format, snapshotOutput)
		}

		if err := service.WriteSnapshotToFile(snapshotOutput, snap); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Snapshot written to %s (%d workspaces, %d tabs)\n",
			snapshotOutput, len(snap.Workspaces), len(snap.Tabs.Tabs))

		return nil
	})
}

func runSnapshotImport(cmd *cobra.Command, args []string) error {
	snap, err := service.ReadSnapshotFile(args[0])
	if err != nil {
		return err
	}

	return withBrowser(func(b *service.Browser) error {
		if err := b.Import(snap); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d workspaces and %d tabs from %s\n",
			len(snap.Workspaces), len(snap.Tabs.Tabs), args[0])

		return nil
	})
}
