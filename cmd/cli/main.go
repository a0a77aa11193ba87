package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/cli"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/client"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/config"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/repository"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/storage"
	"github.com/dmitrijs2005/poetrykeeper/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()

	logger, err := logging.NewConsoleZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = logger.Sync() }()

	remote, remoteCloser, err := newRemote(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := kv.Open(ctx, cfg.LocalDBPath)
	if err != nil {
		log.Fatalf("error initializing local database: %v", err)
	}

	local := storage.NewLocal(kv.NewSQLiteRepository(db), logger)
	closers := []io.Closer{db}
	if remoteCloser != nil {
		closers = append([]io.Closer{remoteCloser}, closers...)
	}

	repo := repository.New(remote, local, logger,
		repository.WithSeeding(cfg.SeedSamples),
		repository.WithClosers(closers...),
	)
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn(ctx, "closing resources failed", "error", err)
		}
	}()

	interval := cfg.OnlineCheckInterval
	if cfg.RemoteDriver == config.RemoteNone {
		interval = 0
	}

	cli.NewApp(repo, logger, interval).Run(ctx)
}

// newRemote builds the remote store selected by cfg.RemoteDriver. The
// returned closer is nil when there is nothing to release.
func newRemote(ctx context.Context, cfg *config.Config) (storage.Remote, io.Closer, error) {
	switch cfg.RemoteDriver {
	case config.RemoteGRPC:
		c, err := client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.AuthSecret, cfg.RequestTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to %s: %w", cfg.ServerEndpointAddr, err)
		}
		r, err := storage.NewDocumentRemote(c, cfg.CollectionPath)
		if err != nil {
			_ = c.Close()
			return nil, nil, err
		}
		return r, c, nil

	case config.RemoteS3:
		api, err := storage.NewS3Client(ctx, storage.S3Options{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage.NewS3Remote(api, cfg.S3Bucket, cfg.S3Prefix), nil, nil

	case config.RemoteNone:
		return storage.Disabled{}, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown remote driver %q", cfg.RemoteDriver)
	}
}
