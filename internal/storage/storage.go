package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

// Storage defines a unified interface for all storage operations:
// session snapshot persistence (Redis) and world-definition loading
// (filesystem).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Snapshot operations (Redis-backed)
	SaveSnapshot(ctx context.Context, id uuid.UUID, snap *state.Snapshot) error
	LoadSnapshot(ctx context.Context, id uuid.UUID) (*state.Snapshot, error)
	DeleteSnapshot(ctx context.Context, id uuid.UUID) error

	// World operations (filesystem-backed)
	ListWorlds(ctx context.Context) (map[string]string, error)
	GetWorld(ctx context.Context, filename string) (*world.World, error)
}
