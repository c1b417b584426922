package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmylchreest/messagebar/internal/bar"
)

// CurrentSchemaVersion is the current version of the snapshot schema.
const CurrentSchemaVersion = 1

// ErrSchemaVersion is returned when a snapshot was written by a newer schema.
var ErrSchemaVersion = errors.New("unsupported snapshot schema version")

// Snapshot is the on-disk form of a saved bar.
type Snapshot[T any] struct {
	SchemaVersion int                `json:"schema_version"`
	SavedAt       int64              `json:"saved_at"`           // Unix timestamp
	SavedBy       string             `json:"saved_by,omitempty"` // e.g. "messagebard", "demo"
	State         bar.StateRecord[T] `json:"state"`

	// Meta holds small host values saved alongside the bar, like the demo's
	// message counter.
	Meta map[string]string `json:"meta,omitempty"`
}

// NewSnapshot wraps rec for saving.
func NewSnapshot[T any](rec bar.StateRecord[T], source string) *Snapshot[T] {
	return &Snapshot[T]{
		SchemaVersion: CurrentSchemaVersion,
		SavedBy:       source,
		State:         rec,
	}
}

// SavedTime returns when the snapshot was written, or the zero time.
func (s *Snapshot[T]) SavedTime() time.Time {
	if s.SavedAt == 0 {
		return time.Time{}
	}
	return time.Unix(s.SavedAt, 0)
}

// snapshotMutex protects concurrent access to snapshot files.
var snapshotMutex sync.RWMutex

// Load reads the snapshot at path.
// If the file doesn't exist, returns an empty snapshot.
func Load[T any](path string) (*Snapshot[T], error) {
	snapshotMutex.RLock()
	defer snapshotMutex.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot[T]{SchemaVersion: CurrentSchemaVersion}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot[T]
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	if snap.SchemaVersion > CurrentSchemaVersion {
		return nil, fmt.Errorf("%w: %d (supported: %d)", ErrSchemaVersion, snap.SchemaVersion, CurrentSchemaVersion)
	}
	if snap.SchemaVersion == 0 {
		snap.SchemaVersion = CurrentSchemaVersion
	}

	return &snap, nil
}

// Save writes snap to path, replacing any previous snapshot. The schema
// version and save time are set on snap.
func Save[T any](path string, snap *Snapshot[T]) error {
	snapshotMutex.Lock()
	defer snapshotMutex.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	if snap.State.Queue == nil {
		snap.State.Queue = []bar.Message[T]{}
	}
	snap.SchemaVersion = CurrentSchemaVersion
	snap.SavedAt = time.Now().Unix()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Remove deletes the snapshot at path. A missing file is not an error.
func Remove(path string) error {
	snapshotMutex.Lock()
	defer snapshotMutex.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}
