package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flockfilms/flockfilms-backend/api/controllers"
	"github.com/flockfilms/flockfilms-backend/api/middleware"
	"github.com/flockfilms/flockfilms-backend/internal/auth"
	"github.com/flockfilms/flockfilms-backend/internal/films"
	"github.com/flockfilms/flockfilms-backend/internal/flocks"
	sessionpkg "github.com/flockfilms/flockfilms-backend/pkg/auth/session"
	"github.com/flockfilms/flockfilms-backend/pkg/config"
	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	"github.com/flockfilms/flockfilms-backend/pkg/logger"
	"github.com/flockfilms/flockfilms-backend/pkg/metrics"
	"github.com/flockfilms/flockfilms-backend/pkg/redis"
	"github.com/google/uuid"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type sessionManager interface {
	sessionpkg.AccessSessionChecker
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type userStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Metrics         *metrics.HTTPMetrics
	DB              pinger
	Redis           *redis.Client
	SessionManager  sessionManager
	Users           userStore
	AuthService     auth.Service
	RegisterService auth.RegisterService
	FilmService     films.Service
	FlockService    flocks.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, d.Redis, logg))
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
				Post("/login", controllers.AuthLogin(d.AuthService, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
				Post("/register", controllers.AuthRegister(d.RegisterService, logg))
			r.Post("/logout", controllers.AuthLogout(cfg.JWT, d.SessionManager, logg))
			r.Post("/refresh", controllers.AuthRefresh(cfg.JWT, d.SessionManager, logg))
		})

		r.Route("/films", func(r chi.Router) {
			r.Get("/", controllers.FilmsList(d.FilmService, logg))
			r.Get("/search", controllers.FilmsSearch(d.FilmService, logg))
			r.Get("/{filmId}", controllers.FilmsGet(d.FilmService, logg))
		})

		r.Route("/flocks", func(r chi.Router) {
			r.Get("/", controllers.FlocksListAll(d.FlockService, logg))
			r.Get("/{flockId}", controllers.FlocksGet(d.FlockService, logg))
			r.With(middleware.Auth(cfg.JWT, d.SessionManager, d.Users, logg)).
				Post("/", controllers.FlocksCreate(d.FlockService, logg))
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.SessionManager, d.Users, logg))
			r.Get("/", controllers.Me(d.Users, logg))
			r.Get("/flocks", controllers.FlocksListOwn(d.FlockService, logg))
		})
	})

	return r
}
