package repository

import (
	"context"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
)

// SnapshotRepository defines the persistence port for the ledger. The full
// snapshot (records plus loan config) is loaded once at session start and
// written wholesale after every mutation; there is no partial update.
type SnapshotRepository interface {
	// Load returns the persisted snapshot. A first run with nothing
	// persisted yet returns (nil, nil) and the caller falls back to
	// defaults.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Save persists the full snapshot, replacing whatever was stored.
	Save(ctx context.Context, snap *domain.Snapshot) error
}
