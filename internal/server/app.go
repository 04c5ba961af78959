// Package server wires the GameKeeper backend together: Postgres, the object
// store, the realtime listener, the gRPC service and the HTTP gateway. All
// components run under one errgroup and stop together on SIGINT, SIGTERM or
// SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/config"
	gs "github.com/dmitrijs2005/gamekeeper/internal/server/grpc"
	"github.com/dmitrijs2005/gamekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/gamekeeper/internal/server/objectstore"
	"github.com/dmitrijs2005/gamekeeper/internal/server/realtime"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gamekeeper/internal/server/services"
)

const tokenPurgeInterval = time.Hour

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	gameService    *services.GameService
	storageService *services.StorageService
	localStore     *objectstore.LocalStore
	broker         *realtime.Broker
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogJSON(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, local, err := newObjectStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    services.NewUserService(db, rm, services.NewLogMailer(logger), logger, c),
		gameService:    services.NewGameService(db, rm),
		storageService: services.NewStorageService(store, c.MaxUploadSize, logger),
		localStore:     local,
		broker:         realtime.NewBroker(0, logger),
	}, nil
}

// newObjectStore returns the configured store. The local store is also
// returned separately so the gateway can serve its files.
func newObjectStore(ctx context.Context, c *config.Config) (objectstore.Store, *objectstore.LocalStore, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		s3, err := objectstore.NewS3Store(ctx, objectstore.S3Config{
			AccessKey:     c.S3RootUser,
			SecretKey:     c.S3RootPassword,
			Region:        c.S3Region,
			BaseEndpoint:  c.S3BaseEndpoint,
			PublicBaseURL: c.S3PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := s3.EnsureBucket(ctx, common.GameImagesBucket); err != nil {
			return nil, nil, err
		}
		return s3, nil, nil
	case config.StorageLocal:
		local, err := objectstore.NewLocalStore(c.StorageDir, c.PublicBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// purgeTokens periodically deletes expired refresh tokens.
func (app *App) purgeTokens(ctx context.Context) error {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := app.userService.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Warn(ctx, "purging expired refresh tokens", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired refresh tokens purged", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...", "storage_backend", app.config.StorageBackend)
	app.initSignalHandler(ctx, cancelFunc)

	grpcServer := gs.NewGRPCServer(gs.Options{
		Address:     app.config.EndpointAddrGRPC,
		SecretKey:   app.config.SecretKey,
		APIKey:      app.config.APIKey,
		MaxRecvSize: int(app.config.MaxUploadSize)*4/3 + 1<<20,
	}, app.logger, app.userService, app.gameService, app.storageService, app.broker)

	var objects httpapi.ObjectOpener
	if app.localStore != nil {
		objects = app.localStore
	}
	gateway := httpapi.NewGateway(app.config.EndpointAddrHTTP, objects, app.userService, app.db, app.logger)

	listener := realtime.NewListener(realtime.PgxDialer(app.config.DatabaseDSN), app.broker, app.logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcServer.Run(ctx) })
	g.Go(func() error { return gateway.Run(ctx) })
	g.Go(func() error { return listener.Run(ctx) })
	g.Go(func() error { return app.purgeTokens(ctx) })

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}
