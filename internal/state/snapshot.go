package state

import (
	"context"
	"encoding/json"
	"fmt"

	"pet-companion/internal/domain/alerts"
	"pet-companion/internal/domain/community"
	"pet-companion/internal/domain/pets"
)

// SnapshotStore persiste la última versión de cada colección por usuario,
// para mostrar algo al arrancar antes del primer refresh.
type SnapshotStore interface {
	Save(ctx context.Context, userID string, slice Slice, payload []byte) error
	Load(ctx context.Context, userID string, slice Slice) ([]byte, bool, error)
}

// Encode serializa una colección tal como está en el store.
func (s *Store) Encode(sl Slice) ([]byte, error) {
	switch sl {
	case SlicePets:
		return json.Marshal(s.Pets())
	case SliceLost:
		return json.Marshal(s.Lost())
	case SliceAdoption:
		return json.Marshal(s.Adoption())
	case SliceShelters:
		return json.Marshal(s.Shelters())
	case SliceAlerts:
		return json.Marshal(s.Alerts())
	default:
		return nil, fmt.Errorf("unknown slice %q", sl)
	}
}

// Restore reemplaza una colección con un payload guardado por Encode.
func (s *Store) Restore(sl Slice, payload []byte) error {
	switch sl {
	case SlicePets:
		var items []pets.Pet
		if err := json.Unmarshal(payload, &items); err != nil {
			return err
		}
		s.ReplacePets(items)
	case SliceLost, SliceAdoption, SliceShelters:
		var items []community.CommunityItem
		if err := json.Unmarshal(payload, &items); err != nil {
			return err
		}
		switch sl {
		case SliceLost:
			s.ReplaceLost(items)
		case SliceAdoption:
			s.ReplaceAdoption(items)
		default:
			s.ReplaceShelters(items)
		}
	case SliceAlerts:
		var items []alerts.Alert
		if err := json.Unmarshal(payload, &items); err != nil {
			return err
		}
		s.ReplaceAlerts(items)
	default:
		return fmt.Errorf("unknown slice %q", sl)
	}
	return nil
}
