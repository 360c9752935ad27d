package refresh

import (
	"context"
	"sync"
	"time"

	"pet-companion/internal/domain/alerts"
	"pet-companion/internal/domain/community"
	"pet-companion/internal/domain/pets"
	"pet-companion/internal/platform/logger"
	"pet-companion/internal/state"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout acota cada RefreshAll disparado en background.
const DefaultTimeout = 30 * time.Second

type PetsSource interface {
	ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error)
}

type AlertsSource interface {
	List(ctx context.Context) ([]alerts.Alert, error)
}

// CurrentUser da el id del usuario logueado ("" si no hay sesión).
type CurrentUser interface {
	UserID() string
}

// Notifier recibe cada alerta nueva sin leer que trae un refresh.
type Notifier interface {
	NotifyAlert(a alerts.Alert)
}

type Deps struct {
	Pets      PetsSource
	Community community.Source
	Alerts    AlertsSource
	User      CurrentUser
	Store     *state.Store

	// Opcionales.
	Snapshots state.SnapshotStore
	Notifier  Notifier
	Log       logger.Logger
	Timeout   time.Duration
}

// Coordinator vuelve a traer las cinco colecciones después de cada mutación
// y las reemplaza enteras en el store.
//
// No deduplica ni cancela refreshes concurrentes: si dos se pisan, gana la
// última escritura de cada colección.
type Coordinator struct {
	pets      PetsSource
	community community.Source
	alerts    AlertsSource
	user      CurrentUser
	store     *state.Store
	snapshots state.SnapshotStore
	notifier  Notifier
	log       logger.Logger
	timeout   time.Duration

	bg sync.WaitGroup
}

func New(d Deps) *Coordinator {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Timeout <= 0 {
		d.Timeout = DefaultTimeout
	}
	return &Coordinator{
		pets:      d.Pets,
		community: d.Community,
		alerts:    d.Alerts,
		user:      d.User,
		store:     d.Store,
		snapshots: d.Snapshots,
		notifier:  d.Notifier,
		log:       d.Log.With(map[string]any{"component": "refresh"}),
		timeout:   d.Timeout,
	}
}

// Report resume un RefreshAll.
type Report struct {
	Updated []state.Slice          `json:"updated"`
	Failed  map[state.Slice]string `json:"failed,omitempty"`
}

func (r Report) OK() bool { return len(r.Failed) == 0 }

type reporter struct {
	mu  sync.Mutex
	rep Report
}

func (r *reporter) ok(sl state.Slice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rep.Updated = append(r.rep.Updated, sl)
}

func (r *reporter) fail(sl state.Slice, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rep.Failed == nil {
		r.rep.Failed = map[state.Slice]string{}
	}
	r.rep.Failed[sl] = err.Error()
}

// RefreshAll lanza las cinco lecturas en paralelo y vuelve cuando terminaron todas.
// Una lectura que falla deja su colección como estaba. Nunca devuelve error.
func (c *Coordinator) RefreshAll(ctx context.Context) Report {
	userID := c.user.UserID()
	rep := &reporter{}

	var g errgroup.Group

	g.Go(func() error {
		fetch(ctx, c, rep, userID, state.SlicePets,
			func(ctx context.Context) ([]pets.Pet, error) { return c.pets.ListByOwner(ctx, userID) },
			c.store.ReplacePets)
		return nil
	})
	g.Go(func() error {
		fetch(ctx, c, rep, userID, state.SliceLost,
			func(ctx context.Context) ([]community.CommunityItem, error) {
				raw, err := c.community.ListLost(ctx)
				return community.NormalizeLost(raw), err
			},
			c.store.ReplaceLost)
		return nil
	})
	g.Go(func() error {
		fetch(ctx, c, rep, userID, state.SliceAdoption,
			func(ctx context.Context) ([]community.CommunityItem, error) {
				raw, err := c.community.ListAdoption(ctx)
				return community.NormalizeAdoption(raw), err
			},
			c.store.ReplaceAdoption)
		return nil
	})
	g.Go(func() error {
		fetch(ctx, c, rep, userID, state.SliceShelters,
			func(ctx context.Context) ([]community.CommunityItem, error) {
				raw, err := c.community.ListShelters(ctx)
				return community.NormalizeShelters(raw), err
			},
			c.store.ReplaceShelters)
		return nil
	})
	g.Go(func() error {
		// solo avisamos alertas nuevas si ya teníamos una lista previa
		loaded := c.store.Version(state.SliceAlerts) > 0
		prev := c.store.Alerts()
		fetch(ctx, c, rep, userID, state.SliceAlerts, c.alerts.List,
			func(next []alerts.Alert) uint64 {
				v := c.store.ReplaceAlerts(next)
				if loaded && c.notifier != nil {
					for _, a := range alerts.NewUnread(prev, next) {
						c.notifier.NotifyAlert(a)
					}
				}
				return v
			})
		return nil
	})

	_ = g.Wait()

	if !rep.rep.OK() {
		c.log.Warn("refresh finished with failures", map[string]any{
			"updated": len(rep.rep.Updated),
			"failed":  len(rep.rep.Failed),
		})
	}
	return rep.rep
}

// fetch trae una colección y, si salió bien, la reemplaza y la persiste.
func fetch[T any](
	ctx context.Context,
	c *Coordinator,
	rep *reporter,
	userID string,
	sl state.Slice,
	get func(context.Context) ([]T, error),
	put func([]T) uint64,
) {
	items, err := get(ctx)
	if err != nil {
		c.log.Warn("refresh fetch failed", map[string]any{"slice": string(sl), "error": err})
		rep.fail(sl, err)
		return
	}

	v := put(items)
	rep.ok(sl)
	c.log.Debug("slice replaced", map[string]any{"slice": string(sl), "count": len(items), "version": v})

	c.persist(ctx, userID, sl)
}

func (c *Coordinator) persist(ctx context.Context, userID string, sl state.Slice) {
	if c.snapshots == nil || userID == "" {
		return
	}
	payload, err := c.store.Encode(sl)
	if err != nil {
		c.log.Warn("snapshot encode failed", map[string]any{"slice": string(sl), "error": err})
		return
	}
	if err := c.snapshots.Save(ctx, userID, sl, payload); err != nil {
		c.log.Warn("snapshot save failed", map[string]any{"slice": string(sl), "error": err})
	}
}

// Refresh es la forma que usan los services después de mutar (community.Refresher & co).
func (c *Coordinator) Refresh(ctx context.Context) {
	c.RefreshAll(ctx)
}

// Trigger dispara un RefreshAll en background, sin esperar el resultado.
func (c *Coordinator) Trigger() {
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		c.RefreshAll(ctx)
	}()
}

// Wait espera los refreshes disparados con Trigger (shutdown y tests).
func (c *Coordinator) Wait() {
	c.bg.Wait()
}

// Hydrate carga los snapshots guardados del usuario actual. Solo toca colecciones
// que todavía no se cargaron desde la red. Devuelve cuántas restauró.
func (c *Coordinator) Hydrate(ctx context.Context) int {
	userID := c.user.UserID()
	if c.snapshots == nil || userID == "" {
		return 0
	}

	n := 0
	for _, sl := range state.AllSlices {
		if c.store.Version(sl) > 0 {
			continue
		}
		payload, ok, err := c.snapshots.Load(ctx, userID, sl)
		if err != nil {
			c.log.Warn("snapshot load failed", map[string]any{"slice": string(sl), "error": err})
			continue
		}
		if !ok {
			continue
		}
		if err := c.store.Restore(sl, payload); err != nil {
			c.log.Warn("snapshot restore failed", map[string]any{"slice": string(sl), "error": err})
			continue
		}
		n++
	}
	c.log.Info("snapshots hydrated", map[string]any{"slices": n})
	return n
}
