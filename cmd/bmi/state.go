package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

// statePath returns the file the last calculation is kept in.
func statePath() (string, error) {
	if statePathFlag != "" {
		return statePathFlag, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "bmi", "state.json"), nil
}

// saveSnapshot writes snap under the "bmiData" key, replacing any previous one.
func saveSnapshot(path string, snap health.Snapshot) error {
	b, err := json.MarshalIndent(map[string]health.Snapshot{health.SnapshotKey: snap}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	return os.WriteFile(path, b, 0o600)
}

// loadSnapshot reads the saved snapshot. A missing file or key returns nil
// without an error.
func loadSnapshot(path string) (*health.Snapshot, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state map[string]*health.Snapshot
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return state[health.SnapshotKey], nil
}
