package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/uhpc/internal/adapters/otel"
	"github.com/emiliopalmerini/uhpc/internal/adapters/turso"
	"github.com/emiliopalmerini/uhpc/internal/config"
	"github.com/emiliopalmerini/uhpc/internal/engine"
	"github.com/emiliopalmerini/uhpc/internal/migrate"
	"github.com/emiliopalmerini/uhpc/internal/ports"
	"github.com/emiliopalmerini/uhpc/internal/service"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config      *config.Config
	Log         *zap.Logger
	DB          *sql.DB
	Predictions ports.PredictionRepository
	Metrics     ports.MetricsExporter
	Service     *service.Service
}

// NewAppContext wires the engine, metrics and, when withDB is set, the
// migrated prediction log.
func NewAppContext(ctx context.Context, cfg *config.Config, log *zap.Logger, withDB bool) (*AppContext, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	a := &AppContext{Config: cfg, Log: log}

	metrics, err := otel.New(ctx, cfg.OTel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	a.Metrics = metrics

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics),
		service.WithWorkers(cfg.CompareWorkers),
		service.WithSource("cli"),
	}

	if withDB {
		url, err := cfg.ResolveDatabaseURL()
		if err != nil {
			_ = metrics.Close(ctx)
			return nil, err
		}
		db, err := turso.Open(url, cfg.AuthToken)
		if err != nil {
			_ = metrics.Close(ctx)
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.DB = db
		a.Predictions = turso.NewRepositories(db).Predictions
		opts = append(opts, service.WithRepository(a.Predictions))
	}

	a.Service = service.New(engine.Default(), opts...)
	return a, nil
}

// Migrate brings the prediction log schema up to date.
func (a *AppContext) Migrate(ctx context.Context) error {
	if a.DB == nil {
		return service.ErrNoRepository
	}
	r, err := migrate.New(a.DB, a.Log)
	if err != nil {
		return err
	}
	if _, err := r.Up(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var errs []error
	if a.Metrics != nil {
		errs = append(errs, a.Metrics.Close(ctx))
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
