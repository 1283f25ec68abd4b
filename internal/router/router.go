package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	mem "pet-lost-found/internal/adapters/storage/memory"
	pg "pet-lost-found/internal/adapters/storage/postgres"
	"pet-lost-found/internal/domain/announcements"
	"pet-lost-found/internal/domain/comments"
	"pet-lost-found/internal/domain/geo"
	"pet-lost-found/internal/domain/users"
	"pet-lost-found/internal/middleware"
	"pet-lost-found/internal/platform/apperr"
	"pet-lost-found/internal/platform/cache"
	"pet-lost-found/internal/platform/metrics"
	"pet-lost-found/internal/platform/tracing"
	"pet-lost-found/internal/ports/auth"

	_ "pet-lost-found/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"
)

// Tokens firma y verifica bearer tokens (jwt.Tokens en producción).
type Tokens interface {
	auth.AuthVerifier
	auth.TokenIssuer
}

type Options struct {
	Tokens Tokens

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger zerolog.Logger

	// Opcional: cache de listados de anuncios.
	Cache    *cache.Client
	CacheTTL time.Duration

	// nil => tabla embebida.
	GeoTable *geo.Table

	MaxImageBytes int

	// Incluye detalles internos en respuestas 5xx (nunca en producción).
	ExposeDetails bool

	// nil => sin /metrics.
	Metrics *metrics.Metrics

	// nil => sin spans por request.
	TracerProvider trace.TracerProvider
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Tokens == nil {
		return nil, errors.New("router: tokens are required")
	}

	table := opts.GeoTable
	if table == nil {
		t, err := geo.Default()
		if err != nil {
			return nil, err
		}
		table = t
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(chimw.Recoverer)
	if opts.TracerProvider != nil {
		r.Use(tracing.Middleware(opts.TracerProvider))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(apperr.ExposeDetails(opts.ExposeDetails))
	r.Use(middleware.AuthContext(opts.Tokens))

	var (
		userRepo         users.Repository
		announcementRepo announcements.Repository
		commentRepo      comments.Repository
		storage          string
	)

	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		announcementRepo = pg.NewAnnouncementsRepo(opts.DB)
		commentRepo = pg.NewCommentsRepo(opts.DB)
		storage = "postgres"
	} else {
		u := mem.NewUserRepo()
		a := mem.NewAnnouncementRepo(u)
		userRepo = u
		announcementRepo = a
		commentRepo = mem.NewCommentRepo(u, a)
		storage = "memory"
	}

	// Services por módulo
	annOpts := []announcements.Option{announcements.WithMaxImageBytes(opts.MaxImageBytes)}
	if opts.Cache != nil {
		annOpts = append(annOpts, announcements.WithListCache(opts.Cache, opts.CacheTTL))
	}
	announcementsSvc := announcements.NewService(announcementRepo, table, annOpts...)

	// las listas cacheadas llevan nombre y contacto del dueño
	usersSvc := users.NewService(userRepo, opts.Tokens, users.WithProfileListener(
		func(ctx context.Context, _ string) { announcementsSvc.InvalidateListings(ctx) },
	))

	commentsSvc := comments.NewService(commentRepo, announcementsSvc)

	requireUser := middleware.RequireUser(usersSvc)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthHandler(storage))

		// Rutas por módulo
		users.RegisterRoutes(api, usersSvc, requireUser)
		announcements.RegisterRoutes(api, announcementsSvc, requireUser)
		comments.RegisterRoutes(api, commentsSvc, requireUser, commentAuthor(usersSvc))
		geo.RegisterRoutes(api, table)
	})

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r, nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func healthHandler(storage string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "OK", Storage: storage})
	}
}

func commentAuthor(svc *users.Service) comments.AuthorLookup {
	return func(r *http.Request, userID string) (*comments.Author, error) {
		u, err := svc.FindByID(r.Context(), userID)
		if err != nil {
			return nil, err
		}
		return &comments.Author{Name: u.Name, Email: u.Email}, nil
	}
}
