package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pet-companion/internal/domain/alerts"
	"pet-companion/internal/domain/community"
	"pet-companion/internal/domain/pets"
	"pet-companion/internal/state"
)

// -------------------------
// Fakes
// -------------------------

type fakeBackend struct {
	mu sync.Mutex

	pets     []pets.Pet
	lost     []community.LostDTO
	adoption []community.AdoptionDTO
	shelters []community.ShelterDTO
	alerts   []alerts.Alert

	failLost bool
	owners   []string
}

func (f *fakeBackend) ListByOwner(_ context.Context, owner string) ([]pets.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owners = append(f.owners, owner)
	return f.pets, nil
}

func (f *fakeBackend) ListLost(context.Context) ([]community.LostDTO, error) {
	if f.failLost {
		return nil, errors.New("lost-listings: connection reset")
	}
	return f.lost, nil
}

func (f *fakeBackend) ListAdoption(context.Context) ([]community.AdoptionDTO, error) {
	return f.adoption, nil
}

func (f *fakeBackend) ListShelters(context.Context) ([]community.ShelterDTO, error) {
	return f.shelters, nil
}

func (f *fakeBackend) List(context.Context) ([]alerts.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alerts, nil
}

type staticUser string

func (u staticUser) UserID() string { return string(u) }

type memSnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memSnapshots) Save(_ context.Context, userID string, sl state.Slice, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[userID+"/"+string(sl)] = payload
	return nil
}

func (m *memSnapshots) Load(_ context.Context, userID string, sl state.Slice) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[userID+"/"+string(sl)]
	return b, ok, nil
}

type recordingNotifier struct {
	mu  sync.Mutex
	got []alerts.Alert
}

func (r *recordingNotifier) NotifyAlert(a alerts.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, a)
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		pets:     []pets.Pet{{ID: "p1", OwnerID: "u1", Name: "Milo"}},
		lost:     []community.LostDTO{{ID: "l-new", PetName: "Tom"}},
		adoption: []community.AdoptionDTO{{ID: "a1", Name: "Luna"}},
		shelters: []community.ShelterDTO{{ID: "s1", Name: "Patitas", DonationAlias: "patitas.mp"}},
		alerts:   []alerts.Alert{{ID: "al1", Title: "Vacuna"}},
	}
}

func newCoordinator(b *fakeBackend, store *state.Store) *Coordinator {
	return New(Deps{Pets: b, Community: b, Alerts: b, User: staticUser("u1"), Store: store})
}

// -------------------------
// Tests
// -------------------------

func TestRefreshAll_UpdatesEverySlice(t *testing.T) {
	b := newBackend()
	store := state.NewStore()
	c := newCoordinator(b, store)

	rep := c.RefreshAll(context.Background())
	if !rep.OK() || len(rep.Updated) != 5 {
		t.Fatalf("expected 5 updated slices, got %#v", rep)
	}
	if len(store.Pets()) != 1 || len(store.Lost()) != 1 || len(store.Adoption()) != 1 ||
		len(store.Shelters()) != 1 || len(store.Alerts()) != 1 {
		t.Fatalf("expected every slice filled, got %#v", store.Info())
	}
	if got := store.Shelters()[0]; got.Tag != community.TagShelter || got.Contact != "patitas.mp" {
		t.Fatalf("expected normalized shelter, got %#v", got)
	}
	if b.owners[0] != "u1" {
		t.Fatalf("expected pets fetched for current user, got %v", b.owners)
	}
}

func TestRefreshAll_FailedFetchLeavesSliceUntouched(t *testing.T) {
	b := newBackend()
	b.failLost = true

	store := state.NewStore()
	before := []community.CommunityItem{{ID: "l-old", Tag: community.TagLost}}
	store.ReplaceLost(before)
	store.ReplacePets([]pets.Pet{{ID: "stale"}})

	c := newCoordinator(b, store)
	rep := c.RefreshAll(context.Background())

	if _, failed := rep.Failed[state.SliceLost]; !failed || len(rep.Failed) != 1 {
		t.Fatalf("expected only lost to fail, got %#v", rep.Failed)
	}
	if len(rep.Updated) != 4 {
		t.Fatalf("expected 4 updated slices, got %v", rep.Updated)
	}

	if got := store.Lost(); len(got) != 1 || got[0].ID != "l-old" {
		t.Fatalf("lost slice must stay as it was, got %#v", got)
	}
	if store.Version(state.SliceLost) != 1 {
		t.Fatalf("lost slice must not be rewritten")
	}
	if got := store.Pets(); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("pets must be updated, got %#v", got)
	}
	if len(store.Adoption()) != 1 || len(store.Shelters()) != 1 || len(store.Alerts()) != 1 {
		t.Fatalf("the other slices must be updated")
	}
}

func TestRefreshAll_NotifiesOnlyNewUnreadAfterFirstLoad(t *testing.T) {
	b := newBackend()
	store := state.NewStore()
	n := &recordingNotifier{}
	c := New(Deps{Pets: b, Community: b, Alerts: b, User: staticUser("u1"), Store: store, Notifier: n})

	c.RefreshAll(context.Background())
	if len(n.got) != 0 {
		t.Fatalf("first load must not notify, got %v", n.got)
	}

	b.mu.Lock()
	b.alerts = append(b.alerts, alerts.Alert{ID: "al2", Title: "Turno"}, alerts.Alert{ID: "al3", Read: true})
	b.mu.Unlock()

	c.RefreshAll(context.Background())
	if len(n.got) != 1 || n.got[0].ID != "al2" {
		t.Fatalf("expected only al2 pushed, got %#v", n.got)
	}
}

func TestTriggerAndHydrate(t *testing.T) {
	b := newBackend()
	snaps := &memSnapshots{}

	first := state.NewStore()
	c := New(Deps{Pets: b, Community: b, Alerts: b, User: staticUser("u1"), Store: first, Snapshots: snaps})
	c.Trigger()
	c.Wait()
	if len(first.Pets()) != 1 {
		t.Fatalf("trigger must refresh in background")
	}

	// un arranque nuevo ve lo persistido antes de ir a la red
	second := state.NewStore()
	c2 := New(Deps{Pets: b, Community: b, Alerts: b, User: staticUser("u1"), Store: second, Snapshots: snaps})
	if n := c2.Hydrate(context.Background()); n != 5 {
		t.Fatalf("expected 5 slices hydrated, got %d", n)
	}
	if second.Shelters()[0] != first.Shelters()[0] {
		t.Fatalf("hydrated shelter differs from persisted one")
	}

	// sin usuario no hay nada que hidratar
	c3 := New(Deps{Pets: b, Community: b, Alerts: b, User: staticUser(""), Store: state.NewStore(), Snapshots: snaps})
	if n := c3.Hydrate(context.Background()); n != 0 {
		t.Fatalf("expected no hydration without session, got %d", n)
	}
}

func TestRefreshAll_ConcurrentCallsDoNotRace(t *testing.T) {
	b := newBackend()
	store := state.NewStore()
	c := newCoordinator(b, store)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RefreshAll(context.Background())
		}()
	}
	wg.Wait()

	if store.Version(state.SlicePets) != 10 {
		t.Fatalf("expected 10 whole replacements, got %d", store.Version(state.SlicePets))
	}
}
