package cmd

import (
	"fmt"
	"io"

	"github.com/inovacc/horizon/internal/model"
	"github.com/inovacc/horizon/internal/service"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the appearance preferences",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the appearance preferences",
	Args:  cobra.NoArgs,
	RunE:  runThemeShow,
}

var themeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change appearance preferences",
	Long: `Change one or more appearance preferences. Only the given flags are
changed. Invalid values are rejected and nothing is changed.

Examples:
  horizon theme set --mode dark
  horizon theme set --accent "#10b981" --font-size large
  horizon theme set --reduced-motion --compact=false`,
	Args: cobra.NoArgs,
	RunE: runThemeSet,
}

var (
	themeMode          string
	themeAccent        string
	themeFontSize      string
	themeReducedMotion bool
	themeRounded       bool
	themeCompact       bool
	themeSystemDark    bool
)

func init() {
	rootCmd.AddCommand(themeCmd)

	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeSetCmd)

	themeShowCmd.Flags().BoolVar(&themeSystemDark, "system-dark", false, "Resolve the system mode as dark")

	flags := themeSetCmd.Flags()
	flags.StringVar(&themeMode, "mode", "", "Color mode: light, dark or system")
	flags.StringVar(&themeAccent, "accent", "", "Accent color as #rrggbb")
	flags.StringVar(&themeFontSize, "font-size", "", "Font size: small, medium or large")
	flags.BoolVar(&themeReducedMotion, "reduced-motion", false, "Disable transitions")
	flags.BoolVar(&themeRounded, "rounded", false, "Use rounded corners")
	flags.BoolVar(&themeCompact, "compact", false, "Use compact spacing")
}

func runThemeShow(cmd *cobra.Command, _ []string) error {
	return withBrowser(func(b *service.Browser) error {
		printPreferences(cmd.OutOrStdout(), b.Theme.Preferences(), b.Theme.Appearance(themeSystemDark))

		return nil
	})
}

func runThemeSet(cmd *cobra.Command, _ []string) error {
	var (
		upd   model.ThemeUpdate
		flags = cmd.Flags()
	)

	if flags.Changed("mode") {
		upd.Mode = &themeMode
	}

	if flags.Changed("accent") {
		upd.Accent = &themeAccent
	}

	if flags.Changed("font-size") {
		upd.FontSize = &themeFontSize
	}

	if flags.Changed("reduced-motion") {
		upd.ReducedMotion = &themeReducedMotion
	}

	if flags.Changed("rounded") {
		upd.RoundedCorners = &themeRounded
	}

	if flags.Changed("compact") {
		upd.CompactMode = &themeCompact
	}

	if upd == (model.ThemeUpdate{}) {
		return fmt.Errorf("nothing to change, see 'horizon theme set --help'")
	}

	return withBrowser(func(b *service.Browser) error {
		if err := b.Theme.Update(upd); err != nil {
			return err
		}

		printPreferences(cmd.OutOrStdout(), b.Theme.Preferences(), b.Theme.Appearance(themeSystemDark))

		return nil
	})
}

func printPreferences(w io.Writer, p model.Preferences, a model.Appearance) {
	_, _ = fmt.Fprintf(w, "Mode:            %s\n", p.Mode)
	_, _ = fmt.Fprintf(w, "Accent:          %s\n", p.Accent)
	_, _ = fmt.Fprintf(w, "Font size:       %s (%dpx)\n", p.FontSize, a.FontSizePx)
	_, _ = fmt.Fprintf(w, "Reduced motion:  %t\n", p.ReducedMotion)
	_, _ = fmt.Fprintf(w, "Rounded corners: %t\n", p.RoundedCorners)
	_, _ = fmt.Fprintf(w, "Compact mode:    %t\n", p.CompactMode)
	_, _ = fmt.Fprintf(w, "Dark:            %t\n", a.Dark)
}
