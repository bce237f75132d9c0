// Package app initializes and runs the main application service.
// It configures logging, storage, authentication, the catalog client and
// routing, and handles graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patric-chuzhbe/songhub/internal/auth"
	"github.com/patric-chuzhbe/songhub/internal/catalog"
	"github.com/patric-chuzhbe/songhub/internal/config"
	"github.com/patric-chuzhbe/songhub/internal/db/jsondb"
	"github.com/patric-chuzhbe/songhub/internal/db/memorystorage"
	"github.com/patric-chuzhbe/songhub/internal/db/postgresdb"
	dbstorage "github.com/patric-chuzhbe/songhub/internal/db/storage"
	"github.com/patric-chuzhbe/songhub/internal/logger"
	"github.com/patric-chuzhbe/songhub/internal/models"
	"github.com/patric-chuzhbe/songhub/internal/router"
	"github.com/patric-chuzhbe/songhub/internal/service"
)

// App encapsulates the configuration, HTTP handler and storage backend
// needed to run the song review service.
type App struct {
	cfg         *config.Config
	db          dbstorage.Storage
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - selecting and setting up storage
// - setting up the catalog client, service and router
func New() (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.db, err = getStorageByType(app.cfg)
	if err != nil {
		return nil, err
	}

	catalogClient := catalog.New(
		app.cfg.CatalogAPIBase,
		app.cfg.CatalogSearchLimit,
		app.cfg.CatalogTimeout,
	)

	app.httpHandler, err = router.New(
		service.New(app.db, catalogClient),
		auth.New(app.db),
		app.cfg.AssetsDir,
	)
	if err != nil {
		return nil, err
	}

	return app, nil
}

// Run starts the HTTP server with graceful shutdown support.
// It listens for system signals and cleans up resources upon termination.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr)
	logger.Log.Infoln("To Test:")
	logger.Log.Infoln("Admin Login --> User: ahmed || Password: secret")
	logger.Log.Infoln("Guest Login --> User: guest || Password: secret2")
	logger.Log.Infof("http://localhost%s/register.html", a.cfg.RunAddr)
	logger.Log.Infof("http://localhost%s/users", a.cfg.RunAddr)
	logger.Log.Infof("http://localhost%s/songsearch", a.cfg.RunAddr)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Saving database and exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return a.db.Close()

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

func getAvailableStorageType(cfg *config.Config) int {
	if cfg.DatabaseDSN != "" {
		return models.StorageTypePostgresql
	}

	if cfg.DBFileName != "" {
		return models.StorageTypeFile
	}

	return models.StorageTypeMemory
}

func getStorageByType(cfg *config.Config) (dbstorage.Storage, error) {
	switch getAvailableStorageType(cfg) {
	case models.StorageTypeUnknown:
		return nil, errors.New("unknown storage type")

	case models.StorageTypePostgresql:
		return postgresdb.New(
			context.Background(),
			cfg.DatabaseDSN,
			cfg.DBConnectionTimeout,
			cfg.MigrationsDir,
		)

	case models.StorageTypeFile:
		return jsondb.New(cfg.DBFileName)
	}

	return memorystorage.New()
}
