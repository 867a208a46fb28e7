// Package snapshot persists a summary of the most recent run to
// .doctest/latest.json. Writes are atomic and guarded by a file lock so
// concurrent runs in the same working tree never interleave.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/meredith/doctest/internal/models"
)

// DefaultPath is where the run command writes the snapshot
var DefaultPath = filepath.Join(".doctest", "latest.json")

// Snapshot summarizes the latest run
type Snapshot struct {
	RunID     string    `json:"run_id,omitempty"`
	Target    string    `json:"target"`
	Attempted int       `json:"attempted"`
	Failed    int       `json:"failed"`
	Errored   int       `json:"errored"`
	Duration  int64     `json:"duration_ms"`
	Ellipsis  bool      `json:"ellipsis"`
	CreatedAt time.Time `json:"created_at"`
}

// OK returns true if the snapshotted run had no failures or errors
func (s *Snapshot) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}

// FromRunResult builds a snapshot from a run result. runID may be empty
// when history recording is disabled.
func FromRunResult(result *models.RunResult, runID string, ellipsis bool) *Snapshot {
	return &Snapshot{
		RunID:     runID,
		Target:    result.Target,
		Attempted: result.Attempted,
		Failed:    result.Failed,
		Errored:   result.Errored,
		Duration:  result.Duration.Milliseconds(),
		Ellipsis:  ellipsis,
		CreatedAt: time.Now().UTC(),
	}
}

// Write stores the snapshot at path. The write happens under an exclusive
// lock on path+".lock" and lands via a temp-file rename, so a concurrent
// reader sees either the previous snapshot or the new one, never a partial
// file.
func Write(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire snapshot lock: %w", err)
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

// Read loads the snapshot at path
func Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// atomicWrite writes data via a temp file in the target directory and an
// atomic rename
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}
