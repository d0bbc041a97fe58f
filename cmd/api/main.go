package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/asavirtual/flightboard-backend/api/controllers"
	"github.com/asavirtual/flightboard-backend/api/routes"
	"github.com/asavirtual/flightboard-backend/internal/auditlog"
	"github.com/asavirtual/flightboard-backend/internal/auth"
	"github.com/asavirtual/flightboard-backend/internal/bootstrap"
	"github.com/asavirtual/flightboard-backend/internal/flights"
	"github.com/asavirtual/flightboard-backend/internal/staff"
	"github.com/asavirtual/flightboard-backend/pkg/config"
	"github.com/asavirtual/flightboard-backend/pkg/db"
	"github.com/asavirtual/flightboard-backend/pkg/logger"
	"github.com/asavirtual/flightboard-backend/pkg/metrics"
	"github.com/asavirtual/flightboard-backend/pkg/migrate"
	"github.com/asavirtual/flightboard-backend/pkg/redis"
	"github.com/asavirtual/flightboard-backend/pkg/session"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	staffRepo := staff.NewRepository(dbClient.DB())

	if err := bootstrap.SeedOwner(context.Background(), staffRepo, cfg.Bootstrap, cfg.Password, logg); err != nil {
		logg.Error(context.Background(), "failed to seed owner account", err)
		os.Exit(1)
	}

	staffService, err := staff.NewService(staffRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}
	flightsService, err := flights.NewService(flights.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create flights service", err)
		os.Exit(1)
	}
	logsService, err := auditlog.NewService(auditlog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create auditlog service", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(staffRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Params{
		Config:         cfg,
		Logger:         logg,
		Sessions:       session.NewManager(cfg.Session),
		Directory:      staffRepo,
		RateLimiter:    redisClient,
		Metrics:        httpMetrics,
		Registry:       registry,
		AuthService:    authService,
		FlightsService: flightsService,
		StaffService:   staffService,
		LogsService:    logsService,
		Pingers: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if serveErr := <-errCh; serveErr != nil && serveErr != http.ErrServerClosed {
			err = multierr.Append(err, serveErr)
		}
		if err != nil {
			logg.Error(ctx, "shutdown finished with errors", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server stopped")
}
