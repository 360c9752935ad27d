package sqlite

import (
	"context"
	"testing"

	"pet-companion/internal/state"
)

func TestSnapshotStore_UpsertAndLoad(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	s := NewSnapshotStore(db)
	ctx := context.Background()

	if _, ok, err := s.Load(ctx, "u1", state.SliceLost); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Save(ctx, "u1", state.SliceLost, []byte(`[{"id":"l1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "u1", state.SliceLost, []byte(`[{"id":"l2"}]`)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	b, ok, err := s.Load(ctx, "u1", state.SliceLost)
	if err != nil || !ok || string(b) != `[{"id":"l2"}]` {
		t.Fatalf("unexpected load %q ok=%v err=%v", b, ok, err)
	}
}
