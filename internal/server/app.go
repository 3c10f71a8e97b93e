// Package server assembles the gateway: it opens the record database,
// migrates it, connects the blob store and serves the gateway over gRPC
// until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/logging"
	"github.com/dmitrijs2005/forkvault/internal/server/blobstore"
	"github.com/dmitrijs2005/forkvault/internal/server/config"
	"github.com/dmitrijs2005/forkvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/forkvault/internal/server/services"

	gs "github.com/dmitrijs2005/forkvault/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	gateway *services.GatewayService
}

// openBlobStore is a seam for tests that cannot reach object storage.
var openBlobStore = blobstore.New

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, "json", c.LogLevel)

	ctx, cancel := context.WithTimeout(ctx, c.StartupTimeout)
	defer cancel()

	db, rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	blobs, err := openBlobStore(ctx, blobstore.Config{
		Backend:  c.BlobBackend,
		User:     c.S3RootUser,
		Password: c.S3RootPassword,
		Bucket:   c.S3Bucket,
		Region:   c.S3Region,
		Endpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	gw := services.NewGatewayService(db, rm, blobs, c.MaxUploadSize, logger)

	return &App{config: c, logger: logger, db: db, gateway: gw}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.gateway, app.config.APIKey,
		common.MaxMessageSize(app.config.MaxUploadSize))

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.BlobBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
}
