package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
)

type fileRepository struct {
	path string
}

// NewFileRepository stores the snapshot as an indented JSON file at path.
// This is the default backend when no database is configured.
func NewFileRepository(path string) SnapshotRepository {
	return &fileRepository{path: path}
}

func (r *fileRepository) Load(_ context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse ledger file %s: %w", r.path, err)
	}
	return &snap, nil
}

func (r *fileRepository) Save(_ context.Context, snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	// Write to a sibling temp file first so a crash mid-write cannot
	// truncate the last good snapshot.
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}
