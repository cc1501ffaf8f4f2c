// Package main is the entry point for the GreenRoute API server.
// It wires dependencies together and starts the server; no business logic
// belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/greenroute/internal/builder"
	"github.com/pkordes/greenroute/internal/cache"
	"github.com/pkordes/greenroute/internal/carbon"
	"github.com/pkordes/greenroute/internal/config"
	"github.com/pkordes/greenroute/internal/handler"
	"github.com/pkordes/greenroute/internal/middleware"
	"github.com/pkordes/greenroute/internal/regret"
	"github.com/pkordes/greenroute/internal/remote"
	"github.com/pkordes/greenroute/internal/repo"
	"github.com/pkordes/greenroute/internal/scoring"
	"github.com/pkordes/greenroute/internal/service"
	"github.com/pkordes/greenroute/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("dotenv error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := migrate(ctx, pool); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready")

	// --- Collaborators ----------------------------------------------------
	responses, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		slog.Error("failed to open cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	var sources []carbon.Source
	if cfg.CarbonPredictor.Enabled() {
		client := newClient(cfg.CarbonPredictor, cfg.RemoteRetries)
		sources = append(sources, carbon.NewCached(carbon.NewRemote(client), responses, logger))
	}
	predictor := carbon.NewChain(logger, sources...)

	var fit scoring.FitEngine
	if cfg.FitEngine.Enabled() {
		client := newClient(cfg.FitEngine, cfg.RemoteRetries)
		fit = scoring.NewCachedEngine(scoring.NewRemoteEngine(client), responses, logger)
	}
	ranker := scoring.NewRanker(fit, logger)

	var engines []regret.Engine
	if cfg.RegretEngine.Enabled() {
		engines = append(engines, regret.NewRemote(newClient(cfg.RegretEngine, cfg.RemoteRetries)))
	}
	engines = append(engines, regret.ModeShift{})
	estimator := regret.NewEstimator(predictor, logger, engines...)

	slog.Info("collaborators configured",
		"carbon_predictor", cfg.CarbonPredictor.Enabled(),
		"fit_engine", cfg.FitEngine.Enabled(),
		"regret_engine", cfg.RegretEngine.Enabled(),
		"redis_cache", cfg.RedisURL != "",
	)

	// --- Services ---------------------------------------------------------
	planner := service.NewPlannerService(predictor, ranker, estimator, builder.New())
	records := service.NewCarbonRecordService(repo.NewTripCarbonRepo(pool))
	api := handler.NewServer(planner, records, logger)

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → SlogLogger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for the slowest collaborator deadline.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending goose migrations through a database/sql view of pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}

// openCache picks Redis when REDIS_URL is set and an in-memory cache otherwise.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, func(), error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(cfg.CacheTTL, cache.WithMaxEntries(10_000)), func() {}, nil
	}
	client, err := cache.OpenRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedis(client, cfg.CacheTTL, "greenroute:"), func() { _ = client.Close() }, nil
}

func newClient(c config.Collaborator, retries uint64) *remote.Client {
	return remote.New(remote.Config{
		BaseURL:    c.URL,
		Token:      c.Token,
		Timeout:    c.Timeout,
		MaxRetries: retries,
	}, &http.Client{})
}
