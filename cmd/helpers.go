package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/inovacc/horizon/internal/core"
	"github.com/inovacc/horizon/internal/model"
	"github.com/inovacc/horizon/internal/service"
)

// shortIDLen is the id prefix shown in tables. Any unique prefix is accepted
// where a tab id is expected.
const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}

	return id[:shortIDLen]
}

// matchID returns the single id equal to ref or starting with it.
func matchID(kind, ref string, ids []string) (string, error) {
	var found []string

	for _, id := range ids {
		if id == ref {
			return id, nil
		}

		if ref != "" && strings.HasPrefix(id, ref) {
			found = append(found, id)
		}
	}

	switch len(found) {
	case 0:
		return "", &core.NotFoundError{Kind: kind, ID: ref}
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%s id %q is ambiguous (%d matches)", kind, ref, len(found))
	}
}

// resolveTab accepts a full tab id or a unique prefix of one.
func resolveTab(b *service.Browser, ref string) (string, error) {
	tabs := b.Tabs.Tabs()

	ids := make([]string, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}

	return matchID("tab", ref, ids)
}

// resolveArchived accepts a full archived tab id or a unique prefix of one.
func resolveArchived(b *service.Browser, ref string) (string, error) {
	archived := b.Tabs.Archived()

	ids := make([]string, len(archived))
	for i, t := range archived {
		ids[i] = t.ID
	}

	return matchID("archived tab", ref, ids)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printTabs(w io.Writer, tabs []model.Tab) error {
	if len(tabs) == 0 {
		_, _ = fmt.Fprintln(w, "No tabs open.")
		_, _ = fmt.Fprintln(w, "Open one with: horizon tab open <url>")

		return nil
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "\tID\tPOS\tTITLE\tURL\tWORKSPACE\tSTATE")

	for _, t := range tabs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			activeMark(t.IsActive), shortID(t.ID), t.Position, t.Title, t.URL, t.WorkspaceID, tabState(t))
	}

	return tw.Flush()
}

func activeMark(active bool) string {
	if active {
		return "*"
	}

	return ""
}

func tabState(t model.Tab) string {
	var parts []string

	if t.IsPinned {
		parts = append(parts, "pinned")
	}

	if t.IsLoading {
		parts = append(parts, "loading")
	}

	if len(parts) == 0 {
		return "-"
	}

	return strings.Join(parts, ",")
}

// printTab prints the details of a single tab.
func printTab(w io.Writer, t model.Tab) {
	_, _ = fmt.Fprintf(w, "ID:        %s\n", t.ID)
	_, _ = fmt.Fprintf(w, "Title:     %s\n", t.Title)
	_, _ = fmt.Fprintf(w, "URL:       %s\n", t.URL)
	_, _ = fmt.Fprintf(w, "Workspace: %s\n", t.WorkspaceID)
	_, _ = fmt.Fprintf(w, "Position:  %d\n", t.Position)
	_, _ = fmt.Fprintf(w, "State:     %s\n", tabState(t))
}
