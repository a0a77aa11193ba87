// Package server wires configuration, storage, the gRPC document store and
// the admin HTTP endpoint into one runnable application.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/poetrykeeper/internal/logging"
	"github.com/dmitrijs2005/poetrykeeper/internal/server/admin"
	"github.com/dmitrijs2005/poetrykeeper/internal/server/config"
	"github.com/dmitrijs2005/poetrykeeper/internal/server/documents"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/poetrykeeper/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	repo     documents.Repository
	health   admin.HealthFunc
	closeFn  func() error
	registry *prometheus.Registry
}

// NewApp opens the configured storage backend.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONSlogLogger(os.Stdout, c.LogLevel)

	app := &App{
		config:   c,
		logger:   logger,
		closeFn:  func() error { return nil },
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	switch c.StorageDriver {
	case config.DriverMemory:
		app.repo = documents.NewMemoryRepository()
	case config.DriverPostgres:
		pg, err := documents.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.repo = pg
		app.health = pg.Ping
		app.closeFn = pg.Close
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves until a signal arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := app.initSignalHandler(ctx)
	defer stop()

	defer func() {
		if err := app.closeFn(); err != nil {
			app.logger.Error(ctx, "close storage", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageDriver)
	if app.config.SecretKey == "" {
		app.logger.Warn(ctx, "secret key is empty, authentication is disabled")
	}

	g, ctx := errgroup.WithContext(ctx)

	svc := documents.NewService(app.repo)
	gsrv := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, svc, app.config.SecretKey, gs.NewMetrics(app.registry))
	g.Go(func() error { return gsrv.Run(ctx) })

	if app.config.AdminAddr != "" {
		asrv := admin.NewServer(app.config.AdminAddr, admin.NewRouter(app.registry, app.health), app.logger)
		g.Go(func() error { return asrv.Run(ctx) })
	}

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
		return err
	}

	app.logger.Info(ctx, "Stopped")
	return nil
}

