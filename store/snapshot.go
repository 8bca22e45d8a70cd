package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"estimator/services"
)

const snapshotFilename = "estimates_snapshot.json"

// SnapshotStore keeps a plain JSON copy of every estimate on local disk.
// It is the fallback when the record store cannot be reached, and it doubles
// as an import path for documents exported from older builds.
type SnapshotStore struct {
	path string
}

func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{path: filepath.Join(dir, snapshotFilename)}
}

// Path returns the snapshot file location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Load reads the snapshot file. A missing file is not an error, it just
// means there is nothing to fall back on yet. The file may hold either a
// JSON array of estimates or a single estimate object.
func (s *SnapshotStore) Load() ([]services.Project, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	projects, err := services.DecodeProjectList(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return projects, nil
}

// Save replaces the snapshot file with the given estimates.
func (s *SnapshotStore) Save(projects []services.Project) error {
	if projects == nil {
		projects = []services.Project{}
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}
	return nil
}
