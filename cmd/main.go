package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	amqpadapter "guestpost/internal/adapter/amqp"
	httpadapter "guestpost/internal/adapter/http"
	"guestpost/internal/adapter/postgres"
	"guestpost/internal/adapter/usecase"
	"guestpost/internal/config"
	"guestpost/internal/core/port"
	"guestpost/internal/db"
	"guestpost/internal/ratelimit"
	"guestpost/internal/scheduler"
)

// main is the entry point of the guestpost scheduling pipeline. It loads
// configuration, optionally runs database migrations, initialises the
// database pool, repositories and usecases, then starts the HTTP server
// and the materialiser ticker. On receiving a termination signal it
// gracefully shuts down the server.
func main() {
	// Best-effort .env for local development; real deployments inject
	// environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied successfully")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("demo data seeded")
	}

	campaigns := postgres.NewCampaignRepository(pool)
	posts := postgres.NewPostRepository(pool)
	queue := postgres.NewQueueRepository(pool)
	connections := postgres.NewConnectionRepository(pool)
	approvals := postgres.NewApprovalRepository(pool)

	var events port.EventPublisher = amqpadapter.NoopPublisher{}
	if cfg.Broker.Addr != "" {
		publisher, err := amqpadapter.NewPublisher(cfg.Broker.Addr, cfg.Broker.Exchange)
		if err != nil {
			logger.Error("broker connection error", slog.Any("error", err))
			os.Exit(1)
		}
		defer publisher.Close()
		events = publisher
	}

	var limiter port.RateLimiter
	switch cfg.RateLimit.Store {
	case "postgres":
		limiter = ratelimit.NewPostgresLimiter(pool, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	default:
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	status := usecase.NewStatusEngine(campaigns, posts, queue, events, logger)
	reconciler := usecase.NewReconciler(campaigns, posts, queue, connections, status, events, logger)
	materialiser := usecase.NewMaterialiser(campaigns, posts, events, logger, cfg.Scheduler.WindowDays)
	workflow := usecase.NewApprovalWorkflow(approvals, posts, logger)

	if cfg.Scheduler.Enabled {
		go scheduler.New(materialiser, cfg.Scheduler.Interval, logger).Run(ctx)
	}

	handler := httpadapter.NewHandler(reconciler, materialiser, workflow, limiter, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
