package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

func TestMockStorage_DefaultBehavior(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()
	id := uuid.New()

	if err := m.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	snap := &state.Snapshot{Version: state.SnapshotVersion, WorldID: "keep"}
	if err := m.SaveSnapshot(ctx, id, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	loaded, err := m.LoadSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded != snap {
		t.Error("mock should return the stored snapshot")
	}

	if err := m.DeleteSnapshot(ctx, id); err != nil {
		t.Fatalf("DeleteSnapshot: %v", err)
	}
	if loaded, _ := m.LoadSnapshot(ctx, id); loaded != nil {
		t.Error("snapshot should be gone after delete")
	}
}

func TestMockStorage_Worlds(t *testing.T) {
	m := NewMockStorage()
	m.Worlds["keep.json"] = &world.World{ID: "keep", Name: "The Keep"}

	w, err := m.GetWorld(context.Background(), "keep.json")
	if err != nil {
		t.Fatalf("GetWorld: %v", err)
	}
	if w.ID != "keep" {
		t.Errorf("world = %+v", w)
	}

	worlds, err := m.ListWorlds(context.Background())
	if err != nil {
		t.Fatalf("ListWorlds: %v", err)
	}
	if worlds["The Keep"] != "keep.json" {
		t.Errorf("worlds = %v", worlds)
	}

	if _, err := m.GetWorld(context.Background(), "missing.json"); err == nil {
		t.Error("expected error for unknown world")
	}
}

func TestMockStorage_Overrides(t *testing.T) {
	m := NewMockStorage()
	boom := errors.New("boom")
	m.SaveSnapshotFunc = func(ctx context.Context, id uuid.UUID, snap *state.Snapshot) error {
		return boom
	}
	m.PingFunc = func(ctx context.Context) error { return boom }

	if err := m.SaveSnapshot(context.Background(), uuid.New(), nil); !errors.Is(err, boom) {
		t.Errorf("SaveSnapshot override not used: %v", err)
	}
	if err := m.Ping(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Ping override not used: %v", err)
	}
}
