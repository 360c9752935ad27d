package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"pet-companion/internal/domain/community"
	"pet-companion/internal/ports/media"

	"github.com/google/uuid"
)

// ListingsRepo guarda las tres colecciones de la comunidad tal como
// las devolvería el backend (DTOs crudos).
type ListingsRepo struct {
	mu       sync.RWMutex
	lost     []community.LostDTO
	adoption []community.AdoptionDTO
	shelters []community.ShelterDTO

	now func() time.Time
}

func NewListingsRepo() *ListingsRepo {
	return &ListingsRepo{now: time.Now}
}

// Seed carga datos de ejemplo (modo dev).
func (r *ListingsRepo) Seed(lost []community.LostDTO, adoption []community.AdoptionDTO, shelters []community.ShelterDTO) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lost = append(r.lost, lost...)
	r.adoption = append(r.adoption, adoption...)
	r.shelters = append(r.shelters, shelters...)
}

func (r *ListingsRepo) ListLost(context.Context) ([]community.LostDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.lost), nil
}

func (r *ListingsRepo) ListAdoption(context.Context) ([]community.AdoptionDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.adoption), nil
}

func (r *ListingsRepo) ListShelters(context.Context) ([]community.ShelterDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.shelters), nil
}

func (r *ListingsRepo) PublishLost(_ context.Context, in community.LostDTO, photo *media.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(string(in.ID)) == "" {
		in.ID = community.FlexString(uuid.NewString())
	}
	if photo != nil {
		in.PhotoURL = photoURL(string(in.ID), photo)
	}
	if in.CreatedAt == "" {
		in.CreatedAt = r.now().UTC().Format(time.RFC3339)
	}
	// el backend devuelve lo más nuevo primero
	r.lost = append([]community.LostDTO{in}, r.lost...)
	return nil
}

func (r *ListingsRepo) Delete(_ context.Context, ref community.ItemRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ok bool
	switch ref.Tag {
	case community.TagLost:
		r.lost, ok = without(r.lost, func(d community.LostDTO) bool { return string(d.ID) == ref.ID })
	case community.TagAdoption:
		r.adoption, ok = without(r.adoption, func(d community.AdoptionDTO) bool { return string(d.ID) == ref.ID })
	case community.TagShelter:
		r.shelters, ok = without(r.shelters, func(d community.ShelterDTO) bool { return string(d.ID) == ref.ID })
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func without[T any](in []T, match func(T) bool) ([]T, bool) {
	i := slices.IndexFunc(in, match)
	if i < 0 {
		return in, false
	}
	return slices.Delete(slices.Clone(in), i, i+1), true
}
