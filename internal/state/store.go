package state

import (
	"slices"
	"sync"
	"time"

	"pet-companion/internal/domain/alerts"
	"pet-companion/internal/domain/community"
	"pet-companion/internal/domain/pets"
)

// Slice nombra cada una de las colecciones que se refrescan juntas.
type Slice string

const (
	SlicePets     Slice = "pets"
	SliceLost     Slice = "lost"
	SliceAdoption Slice = "adoption"
	SliceShelters Slice = "shelters"
	SliceAlerts   Slice = "alerts"
)

var AllSlices = []Slice{SlicePets, SliceLost, SliceAdoption, SliceShelters, SliceAlerts}

// slot guarda una colección que siempre se reemplaza entera.
// version solo sirve para observar cuántas veces se escribió; no se usa para descartar respuestas.
type slot[T any] struct {
	mu        sync.RWMutex
	items     []T
	version   uint64
	updatedAt time.Time
}

func (s *slot[T]) get() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *slot[T]) replace(items []T, now time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(items)
	s.version++
	s.updatedAt = now
	return s.version
}

func (s *slot[T]) info() SliceInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SliceInfo{Count: len(s.items), Version: s.version, UpdatedAt: s.updatedAt}
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.version = 0
	s.updatedAt = time.Time{}
}

// SliceInfo resume el estado de una colección (para /ui y logs).
type SliceInfo struct {
	Count     int       `json:"count"`
	Version   uint64    `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store es el contenedor explícito de estado del cliente: las cinco colecciones
// más el estado de la UI. Se inyecta en los services y handlers.
type Store struct {
	pets     slot[pets.Pet]
	lost     slot[community.CommunityItem]
	adoption slot[community.CommunityItem]
	shelters slot[community.CommunityItem]
	alerts   slot[alerts.Alert]

	uiMu sync.Mutex
	ui   UI

	now func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Pets() []pets.Pet                    { return s.pets.get() }
func (s *Store) Lost() []community.CommunityItem     { return s.lost.get() }
func (s *Store) Adoption() []community.CommunityItem { return s.adoption.get() }
func (s *Store) Shelters() []community.CommunityItem { return s.shelters.get() }
func (s *Store) Alerts() []alerts.Alert              { return s.alerts.get() }

func (s *Store) ReplacePets(items []pets.Pet) uint64 { return s.pets.replace(items, s.now()) }
func (s *Store) ReplaceLost(items []community.CommunityItem) uint64 {
	return s.lost.replace(items, s.now())
}
func (s *Store) ReplaceAdoption(items []community.CommunityItem) uint64 {
	return s.adoption.replace(items, s.now())
}
func (s *Store) ReplaceShelters(items []community.CommunityItem) uint64 {
	return s.shelters.replace(items, s.now())
}
func (s *Store) ReplaceAlerts(items []alerts.Alert) uint64 { return s.alerts.replace(items, s.now()) }

// Info devuelve count/version/updated_at de cada colección.
func (s *Store) Info() map[Slice]SliceInfo {
	return map[Slice]SliceInfo{
		SlicePets:     s.pets.info(),
		SliceLost:     s.lost.info(),
		SliceAdoption: s.adoption.info(),
		SliceShelters: s.shelters.info(),
		SliceAlerts:   s.alerts.info(),
	}
}

func (s *Store) Version(sl Slice) uint64 {
	return s.Info()[sl].Version
}

// Reset vacía todo (logout, 401 o cambio de usuario).
func (s *Store) Reset() {
	s.pets.reset()
	s.lost.reset()
	s.adoption.reset()
	s.shelters.reset()
	s.alerts.reset()

	s.uiMu.Lock()
	s.ui = UI{}
	s.uiMu.Unlock()
}

// UI devuelve el estado actual de la interfaz.
func (s *Store) UI() UI {
	s.uiMu.Lock()
	defer s.uiMu.Unlock()
	return s.ui
}

// Dispatch aplica una acción al estado de la UI. Si la acción es inválida el estado no cambia.
func (s *Store) Dispatch(a Action) (UI, error) {
	s.uiMu.Lock()
	defer s.uiMu.Unlock()
	next, err := Reduce(s.ui, a)
	if err != nil {
		return s.ui, err
	}
	s.ui = next
	return next, nil
}
