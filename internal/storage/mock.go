package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

// MockStorage is an in-memory Storage implementation for tests. Individual
// methods can be overridden with function fields.
type MockStorage struct {
	mu        sync.Mutex
	snapshots map[uuid.UUID]*state.Snapshot
	Worlds    map[string]*world.World // filename → world

	SaveSnapshotFunc func(ctx context.Context, id uuid.UUID, snap *state.Snapshot) error
	LoadSnapshotFunc func(ctx context.Context, id uuid.UUID) (*state.Snapshot, error)
	PingFunc         func(ctx context.Context) error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		snapshots: make(map[uuid.UUID]*state.Snapshot),
		Worlds:    make(map[string]*world.World),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveSnapshot(ctx context.Context, id uuid.UUID, snap *state.Snapshot) error {
	if m.SaveSnapshotFunc != nil {
		return m.SaveSnapshotFunc(ctx, id, snap)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[id] = snap
	return nil
}

func (m *MockStorage) LoadSnapshot(ctx context.Context, id uuid.UUID) (*state.Snapshot, error) {
	if m.LoadSnapshotFunc != nil {
		return m.LoadSnapshotFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshots[id], nil
}

func (m *MockStorage) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	return nil
}

func (m *MockStorage) ListWorlds(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.Worlds))
	for filename, w := range m.Worlds {
		out[w.Name] = filename
	}
	return out, nil
}

func (m *MockStorage) GetWorld(ctx context.Context, filename string) (*world.World, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.Worlds[filename]
	if !ok {
		return nil, fmt.Errorf("world not found: %s", filename)
	}
	return w, nil
}
