package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/uhpc/internal/adapters/otel"
	"github.com/emiliopalmerini/uhpc/internal/adapters/turso"
	"github.com/emiliopalmerini/uhpc/internal/config"
	"github.com/emiliopalmerini/uhpc/internal/engine"
	"github.com/emiliopalmerini/uhpc/internal/logging"
	"github.com/emiliopalmerini/uhpc/internal/migrate"
	"github.com/emiliopalmerini/uhpc/internal/service"
	"github.com/emiliopalmerini/uhpc/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	url, err := cfg.ResolveDatabaseURL()
	if err != nil {
		return err
	}
	db, err := turso.Open(url, cfg.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	runner, err := migrate.New(db, log)
	if err != nil {
		return err
	}
	if _, err := runner.Up(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	metrics, err := otel.New(ctx, cfg.OTel)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		if err := metrics.Close(context.Background()); err != nil {
			log.Warn("failed to flush metrics", zap.Error(err))
		}
	}()

	repos := turso.NewRepositories(db)
	svc := service.New(engine.Default(),
		service.WithRepository(repos.Predictions),
		service.WithMetrics(metrics),
		service.WithLogger(log.Named("http")),
		service.WithWorkers(cfg.CompareWorkers),
		service.WithSource("http"),
	)

	log.Info("engine ready",
		zap.String("version", engine.Default().Version()),
		zap.String("coefficients", engine.Default().CoefficientsDigest()),
	)
	return web.NewServer(svc, cfg.Addr, log, cfg.ShutdownTimeout).Start(ctx)
}
