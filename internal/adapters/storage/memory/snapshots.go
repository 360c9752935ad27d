package memory

import (
	"context"
	"slices"
	"sync"

	"pet-companion/internal/state"
)

// SnapshotStore guarda snapshots en memoria (se pierden al reiniciar).
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{data: make(map[string][]byte)}
}

func key(userID string, sl state.Slice) string { return userID + "/" + string(sl) }

func (s *SnapshotStore) Save(_ context.Context, userID string, sl state.Slice, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key(userID, sl)] = slices.Clone(payload)
	return nil
}

func (s *SnapshotStore) Load(_ context.Context, userID string, sl state.Slice) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[key(userID, sl)]
	return slices.Clone(b), ok, nil
}
