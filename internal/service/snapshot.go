package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/inovacc/horizon/internal/core"
	"github.com/inovacc/horizon/internal/model"
)

// SnapshotVersion is the current snapshot format version
const SnapshotVersion = "1.0"

// Snapshot formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnsupportedSnapshot is returned for snapshots written by an incompatible version.
var ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")

// Snapshot is a complete export of the browser state
type Snapshot struct {
	Version         string            `json:"version"`
	CreatedAt       time.Time         `json:"created_at"`
	Hostname        string            `json:"hostname,omitempty"`
	Workspaces      []model.Workspace `json:"workspaces"`
	ActiveWorkspace string            `json:"active_workspace"`
	Tabs            core.TabState     `json:"tabs"`
	Theme           model.Preferences `json:"theme"`
}

// Snapshot captures the current state. Pending navigations are reported as
// loading.
func (b *Browser) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version:         SnapshotVersion,
		CreatedAt:       b.opts.Clock.Now().UTC(),
		Workspaces:      b.Workspaces.List(),
		ActiveWorkspace: b.Workspaces.ActiveID(),
		Tabs:            b.Tabs.Snapshot(),
		Theme:           b.Theme.Preferences(),
	}

	if hostname, err := os.Hostname(); err == nil {
		snap.Hostname = hostname
	}

	return snap
}

// Import replaces the persisted state with snap and reloads the stores from
// it. Pending navigations of the current state are settled first.
func (b *Browser) Import(snap *Snapshot) error {
	if err := snap.validate(); err != nil {
		return err
	}

	if err := b.Tabs.Close(); err != nil {
		return err
	}

	values := map[string]any{
		core.KeyWorkspaces:      snap.Workspaces,
		core.KeyActiveWorkspace: snap.ActiveWorkspace,
		core.KeyTabs:            nonNil(snap.Tabs.Tabs),
		core.KeyActiveTab:       snap.Tabs.ActiveTab,
		core.KeyTabHistory:      snap.Tabs.History,
		core.KeyArchivedTabs:    nonNil(snap.Tabs.Archived),
		core.KeyTheme:           snap.Theme,
	}

	for _, key := range core.AllKeys {
		data, err := json.Marshal(values[key])
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}

		if err := b.store.Save(key, data); err != nil {
			return &core.PersistenceError{Op: "save", Key: key, Err: err}
		}
	}

	b.load()
	b.logger.Info("snapshot imported",
		"workspaces", len(snap.Workspaces), "tabs", len(snap.Tabs.Tabs), "created_at", snap.CreatedAt)

	return nil
}

func (s *Snapshot) validate() error {
	major, _, _ := strings.Cut(s.Version, ".")
	if major != "1" {
		return fmt.Errorf("%w: %q", ErrUnsupportedSnapshot, s.Version)
	}

	if len(s.Workspaces) == 0 {
		return errors.New("snapshot has no workspaces")
	}

	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

// FormatFromPath picks the snapshot format from a file extension. Unknown
// extensions use JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// WriteSnapshot writes a snapshot to a writer as indented JSON or YAML
func WriteSnapshot(w io.Writer, snap *Snapshot, format string) error {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}

		_, err = w.Write(data)

		return err
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("unknown snapshot format %q", format)
	}
}

// WriteSnapshotToFile writes a snapshot to a file in the format implied by
// its extension.
func WriteSnapshotToFile(path string, snap *Snapshot) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return WriteSnapshot(file, snap, FormatFromPath(path))
}

// ReadSnapshot decodes a snapshot. An empty format detects JSON by a leading
// brace and falls back to YAML.
func ReadSnapshot(r io.Reader, format string) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if format == "" {
		format = FormatYAML
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			format = FormatJSON
		}
	}

	var snap Snapshot

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &snap)
	case FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snap, nil
}

// ReadSnapshotFile reads a snapshot file, detecting its format.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}

	defer func() { _ = file.Close() }()

	return ReadSnapshot(file, "")
}
