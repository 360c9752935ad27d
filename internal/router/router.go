package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"pet-companion/internal/adapters/auth/jwtinspect"
	"pet-companion/internal/adapters/backend/rest"
	"pet-companion/internal/adapters/media/cloudinary"
	mem "pet-companion/internal/adapters/storage/memory"
	pg "pet-companion/internal/adapters/storage/postgres"
	"pet-companion/internal/adapters/storage/redisstore"
	"pet-companion/internal/adapters/storage/sqlite"
	"pet-companion/internal/config"
	"pet-companion/internal/domain/alerts"
	"pet-companion/internal/domain/community"
	"pet-companion/internal/domain/pets"
	"pet-companion/internal/domain/scans"
	"pet-companion/internal/middleware"
	"pet-companion/internal/platform/logger"
	"pet-companion/internal/push"
	"pet-companion/internal/refresh"
	"pet-companion/internal/session"
	"pet-companion/internal/state"

	_ "pet-companion/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config *config.Config
	Log    logger.Logger

	// Opcional: DB ya abierta para el driver postgres.
	DB *sql.DB
	// Opcional: reemplaza el store de snapshots elegido por config (tests).
	Snapshots state.SnapshotStore
}

// App agrupa el handler y lo que main necesita para apagar ordenado.
type App struct {
	Handler http.Handler
	Session *session.Container
	Store   *state.Store
	Refresh *refresh.Coordinator
	Hub     *push.Hub

	closers []func() error
}

// Close libera conexiones de storage y corta los websockets.
func (a *App) Close() error {
	a.Hub.CloseAll()
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// backend son los puertos que hablan con el servidor de la app.
type backend struct {
	profiles  session.ProfileSource
	pets      pets.Repository
	community interface {
		community.Source
		community.Publisher
	}
	alerts   alerts.Repository
	analyzer scans.Analyzer

	// solo con backend REST
	client *rest.Client
}

func NewRouter(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		c, err := config.LoadConfig("")
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	app := &App{Store: state.NewStore(), Hub: push.NewHub(log).WithOrigins(cfg.Origins())}

	// el container necesita los perfiles y los adapters necesitan el token
	// del container: se cierra el ciclo con tokenRef.
	tokens := &tokenRef{}
	be, err := newBackend(cfg, tokens, log)
	if err != nil {
		return nil, err
	}

	// el backend en memoria usa un token de desarrollo que no es JWT
	inspector := jwtinspect.New(cfg.Backend.AllowOpaque || cfg.Backend.BaseURL == "")
	app.Session = session.New(be.profiles, inspector, log)
	tokens.c = app.Session

	snaps := opts.Snapshots
	if snaps == nil {
		s, closer, err := newSnapshotStore(cfg, opts.DB)
		if err != nil {
			return nil, err
		}
		snaps = s
		if closer != nil {
			app.closers = append(app.closers, closer)
		}
	}

	app.Refresh = refresh.New(refresh.Deps{
		Pets:      be.pets,
		Community: be.community,
		Alerts:    be.alerts,
		User:      app.Session,
		Store:     app.Store,
		Snapshots: snaps,
		Notifier:  app.Hub,
		Log:       log,
		Timeout:   cfg.Refresh.Timeout,
	})

	// cualquier 401 o logout vacía todo lo local
	app.Session.OnClear(app.Store.Reset)
	app.Session.OnClear(app.Hub.CloseAll)
	if be.client != nil {
		be.client.OnUnauthorized(app.Session.Clear)
		app.Session.OnClear(be.client.ResetCookies)
	}

	// Services por módulo
	petsSvc := pets.NewService(be.pets, app.Store, app.Refresh)
	if cfg.CloudinaryEnabled() {
		up, err := cloudinary.New(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		if err != nil {
			return nil, err
		}
		petsSvc = petsSvc.WithUploader(up)
	}
	communitySvc := community.NewService(app.Store, be.community, app.Refresh).
		WithDefaultRadius(cfg.Geo.DefaultRadiusKm)
	alertsSvc := alerts.NewService(be.alerts, app.Store, app.Refresh)
	scansSvc := scans.NewService(be.analyzer, petsSvc, app.Session, app.Refresh, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-XSRF-TOKEN"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	session.RegisterRoutes(r, app.Session, func(ctx context.Context) {
		app.Refresh.Hydrate(ctx)
		app.Refresh.RefreshAll(ctx)
	})

	// Rutas que requieren sesión
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireSession(app.Session))

		community.RegisterRoutes(pr, communitySvc)
		pets.RegisterRoutes(pr, petsSvc)
		alerts.RegisterRoutes(pr, alertsSvc)
		scans.RegisterRoutes(pr, scansSvc)
		state.RegisterRoutes(pr, app.Store, communitySvc)

		pr.Post("/refresh", refreshHandler(app.Refresh))
		pr.Get("/ws/notifications", app.Hub.ServeWS)
	})

	app.Handler = r
	return app, nil
}

func newBackend(cfg *config.Config, tokens *tokenRef, log logger.Logger) (backend, error) {
	if cfg.Backend.BaseURL == "" {
		log.Warn("BACKEND_URL not set, using in-memory backend", nil)
		profiles := mem.NewProfiles()
		profiles.Add(cfg.Backend.DevToken, devUser)
		listings := mem.NewListingsRepo()
		seedListings(listings)
		alertsRepo := mem.NewAlertsRepo()
		seedAlerts(alertsRepo)
		return backend{
			profiles:  profiles,
			pets:      mem.NewPetRepo(),
			community: listings,
			alerts:    alertsRepo,
			analyzer:  mem.NewAnalyzer(profiles, tokens, cfg.Backend.DevScanLimit),
		}, nil
	}

	client, err := rest.NewClient(rest.Config{BaseURL: cfg.Backend.BaseURL, Timeout: cfg.Backend.Timeout}, tokens, log)
	if err != nil {
		return backend{}, fmt.Errorf("backend client: %w", err)
	}
	return backend{
		profiles:  rest.NewProfiles(client),
		pets:      rest.NewPetsRepo(client),
		community: rest.NewCommunityRepo(client),
		alerts:    rest.NewAlertsRepo(client),
		analyzer:  rest.NewAnalyzer(client),
		client:    client,
	}, nil
}

func newSnapshotStore(cfg *config.Config, db *sql.DB) (state.SnapshotStore, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		var closer func() error
		if db == nil {
			opened, err := pg.Open(cfg.Storage.PostgresDSN)
			if err != nil {
				return nil, nil, err
			}
			db, closer = opened, opened.Close
		}
		return pg.NewSnapshotsRepo(db), closer, nil
	case config.DriverRedis:
		rdb, err := redisstore.Connect(context.Background(), cfg.Storage.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewSnapshotStore(rdb, cfg.Storage.RedisTTL), rdb.Close, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewSnapshotStore(db), db.Close, nil
	default:
		return mem.NewSnapshotStore(), nil, nil
	}
}

// tokenRef resuelve el token del container una vez creado.
type tokenRef struct {
	c *session.Container
}

func (t *tokenRef) Token() string {
	if t.c == nil {
		return ""
	}
	return t.c.Token()
}

// refreshHandler godoc
// @Summary      Vuelve a traer todas las colecciones
// @Tags         refresh
// @Produce      json
// @Success      200  {object}  refresh.Report
// @Router       /refresh [post]
func refreshHandler(c *refresh.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep := c.RefreshAll(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(rep)
	}
}
