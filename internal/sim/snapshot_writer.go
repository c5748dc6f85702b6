package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ghostlidar-sim/internal/telemetry"
)

// SnapshotWriter replaces the snapshot file with each tick's state. The file
// is written beside the target and renamed into place, so a reader sees
// either the previous tick or the new one.
type SnapshotWriter struct {
	path string
}

// NewSnapshotWriter writes snapshots to path. The directory must exist.
func NewSnapshotWriter(path string) *SnapshotWriter {
	return &SnapshotWriter{path: path}
}

// Path returns the snapshot location.
func (w *SnapshotWriter) Path() string { return w.path }

// WriteState overwrites the snapshot with st as indented JSON.
func (w *SnapshotWriter) WriteState(st telemetry.SimulationState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(w.path), filepath.Base(w.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	name := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(name, w.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by SnapshotWriter.
func ReadSnapshot(path string) (telemetry.SimulationState, error) {
	var st telemetry.SimulationState
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("decode snapshot: %w", err)
	}
	return st, nil
}
