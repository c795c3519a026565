package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

// snapshotTTL keeps abandoned sessions from accumulating forever.
const snapshotTTL = 24 * time.Hour

// RedisStorage implements the Storage interface using Redis for session
// snapshots and the filesystem for world definitions.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance.
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup).
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Snapshot operations (Redis-backed)

func snapshotKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (r *RedisStorage) SaveSnapshot(ctx context.Context, id uuid.UUID, snap *state.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.Error("Failed to marshal snapshot", "session", id, "error", err)
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey(id), string(data), snapshotTTL).Err(); err != nil {
		r.logger.Error("Failed to save snapshot", "session", id, "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSnapshot(ctx context.Context, id uuid.UUID) (*state.Snapshot, error) {
	cmd := r.client.Get(ctx, snapshotKey(id))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Snapshot not found", "session", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load snapshot", "session", id, "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap state.Snapshot
	if err := json.Unmarshal([]byte(cmd.Val()), &snap); err != nil {
		r.logger.Error("Failed to unmarshal snapshot", "session", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (r *RedisStorage) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, snapshotKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete snapshot", "session", id, "error", err)
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// World operations (filesystem-backed)

func (r *RedisStorage) ListWorlds(ctx context.Context) (map[string]string, error) {
	worldsDir := filepath.Join(r.dataDir, "worlds")
	worlds := make(map[string]string)

	err := filepath.WalkDir(worldsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Failed to read world file", "path", path, "error", err)
			return nil
		}

		var w world.World
		if err := json.Unmarshal(file, &w); err != nil {
			r.logger.Warn("Failed to unmarshal world file", "path", path, "error", err)
			return nil
		}

		worlds[w.Name] = filepath.Base(path)
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to walk worlds directory", "error", err)
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	return worlds, nil
}

func (r *RedisStorage) GetWorld(ctx context.Context, filename string) (*world.World, error) {
	path := filepath.Join(r.dataDir, "worlds", filename)

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("world not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var w world.World
	if err := json.Unmarshal(file, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world: %w", err)
	}
	w.FillIDs()
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world %s: %w", filename, err)
	}

	return &w, nil
}
