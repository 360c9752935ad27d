package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"pet-companion/internal/domain/alerts"

	"github.com/google/uuid"
)

// AlertsRepo es un backend de alertas en memoria.
type AlertsRepo struct {
	mu   sync.RWMutex
	byID map[string]alerts.Alert
	now  func() time.Time
}

func NewAlertsRepo() *AlertsRepo {
	return &AlertsRepo{byID: make(map[string]alerts.Alert), now: time.Now}
}

// Push agrega una alerta (simula que el backend generó una nueva).
func (r *AlertsRepo) Push(a alerts.Alert) alerts.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.now().UTC()
	}
	r.byID[a.ID] = a
	return a
}

// List devuelve las alertas, más nuevas primero.
func (r *AlertsRepo) List(context.Context) ([]alerts.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]alerts.Alert, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return slices.Clip(out), nil
}

func (r *AlertsRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.Read = true
	r.byID[id] = a
	return nil
}
