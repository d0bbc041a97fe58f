package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asavirtual/flightboard-backend/api/controllers"
	"github.com/asavirtual/flightboard-backend/api/middleware"
	"github.com/asavirtual/flightboard-backend/internal/auditlog"
	"github.com/asavirtual/flightboard-backend/internal/auth"
	"github.com/asavirtual/flightboard-backend/internal/flights"
	"github.com/asavirtual/flightboard-backend/internal/staff"
	"github.com/asavirtual/flightboard-backend/pkg/config"
	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/asavirtual/flightboard-backend/pkg/logger"
	"github.com/asavirtual/flightboard-backend/pkg/metrics"
	"github.com/asavirtual/flightboard-backend/pkg/session"
)

type staffDirectory interface {
	FindByUsername(ctx context.Context, username string) (*models.StaffUser, error)
}

type rateLimiter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Params bundles everything the router needs.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Sessions    *session.Manager
	Directory   staffDirectory
	RateLimiter rateLimiter
	Metrics     *metrics.HTTPMetrics
	Registry    prometheus.Gatherer

	AuthService    auth.Service
	FlightsService flights.Service
	StaffService   staff.Service
	LogsService    auditlog.Service

	// readiness probes, keyed by dependency name
	Pingers map[string]controllers.Pinger
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Pingers))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public/flights", func(r chi.Router) {
		r.Get("/", controllers.FlightsList(p.FlightsService, logg))
		r.Post("/{code}/interest", controllers.FlightsInterest(p.FlightsService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.RateLimiter, logg)).
			Post("/login", controllers.Login(p.AuthService, p.Sessions, logg))
		r.Post("/logout", controllers.Logout(p.Sessions))
		r.With(middleware.Auth(p.Sessions, p.Directory, logg)).
			Get("/session", controllers.SessionInfo(logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(p.Sessions, p.Directory, logg))

		r.Route("/flights", func(r chi.Router) {
			r.Get("/", controllers.FlightsList(p.FlightsService, logg))
			r.Post("/", controllers.FlightsCreate(p.FlightsService, logg))
			r.Delete("/{id}", controllers.FlightsDelete(p.FlightsService, logg))
			r.Patch("/{id}/status", controllers.FlightsSetStatus(p.FlightsService, logg))
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", controllers.LogsList(p.LogsService, logg))
			r.Post("/", controllers.LogsCreate(p.LogsService, logg))
			r.Delete("/{id}", controllers.LogsDelete(p.LogsService, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Use(middleware.RequireOwner(logg))
			r.Get("/", controllers.StaffList(p.StaffService, logg))
			r.Post("/", controllers.StaffCreate(p.StaffService, logg))
			r.Patch("/{id}", controllers.StaffUpdate(p.StaffService, logg))
			r.Delete("/{id}", controllers.StaffDelete(p.StaffService, logg))
		})

		r.Patch("/profile", controllers.ProfileUpdate(p.StaffService, p.Sessions, logg))
	})

	return r
}
