package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-companion/internal/domain/pets"
	"pet-companion/internal/ports/media"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
)

// PetRepo es un backend de mascotas en memoria para modo dev y tests.
type PetRepo struct {
	mu    sync.RWMutex
	byID  map[string]pets.Pet
	order map[string]int
	seq   int
}

func NewPetRepo() *PetRepo {
	return &PetRepo{
		byID:  make(map[string]pets.Pet),
		order: make(map[string]int),
	}
}

func (r *PetRepo) Create(_ context.Context, p pets.Pet, photo *media.Photo) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.OwnerID) == "" {
		return pets.Pet{}, errors.New("owner id required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := r.byID[p.ID]; exists {
		return pets.Pet{}, errors.New("pet already exists")
	}
	if photo != nil {
		p.PhotoURL = photoURL(p.ID, photo)
	}

	r.seq++
	r.order[p.ID] = r.seq
	r.byID[p.ID] = p
	return p, nil
}

func (r *PetRepo) Update(_ context.Context, p pets.Pet, photo *media.Photo) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[p.ID]
	if !exists {
		return pets.Pet{}, ErrNotFound
	}
	p.OwnerID = cur.OwnerID
	if photo != nil {
		p.PhotoURL = photoURL(p.ID, photo)
	} else if p.PhotoURL == "" {
		p.PhotoURL = cur.PhotoURL
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *PetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.order, id)
	return nil
}

func (r *PetRepo) ListByOwner(_ context.Context, ownerID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}

	// orden de alta, estable para dev
	sort.Slice(out, func(i, j int) bool {
		return r.order[out[i].ID] < r.order[out[j].ID]
	})

	return out, nil
}

func photoURL(id string, p *media.Photo) string {
	ext := ".jpg"
	if p.ContentType == "image/png" {
		ext = ".png"
	}
	return "memory://photos/" + id + ext
}
