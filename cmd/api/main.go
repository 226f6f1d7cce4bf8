package main

import (
	"context"
	"net/http"
	"os"

	"github.com/flockfilms/flockfilms-backend/api/routes"
	"github.com/flockfilms/flockfilms-backend/internal/auth"
	"github.com/flockfilms/flockfilms-backend/internal/films"
	"github.com/flockfilms/flockfilms-backend/internal/flocks"
	"github.com/flockfilms/flockfilms-backend/internal/users"
	"github.com/flockfilms/flockfilms-backend/pkg/auth/session"
	"github.com/flockfilms/flockfilms-backend/pkg/config"
	"github.com/flockfilms/flockfilms-backend/pkg/db"
	"github.com/flockfilms/flockfilms-backend/pkg/logger"
	"github.com/flockfilms/flockfilms-backend/pkg/metrics"
	"github.com/flockfilms/flockfilms-backend/pkg/migrate"
	"github.com/flockfilms/flockfilms-backend/pkg/redis"
	"github.com/joho/godotenv"
)

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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	filmService, err := films.NewService(films.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create film service", err)
		os.Exit(1)
	}

	flockService, err := flocks.NewService(flocks.ServiceParams{
		FlockRepo: flocks.NewRepository(dbClient.DB()),
		FilmRepo:  films.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create flock service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			Metrics:         httpMetrics,
			DB:              dbClient,
			Redis:           redisClient,
			SessionManager:  sessionManager,
			Users:           userRepo,
			AuthService:     authService,
			RegisterService: registerService,
			FilmService:     filmService,
			FlockService:    flockService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
