package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"github.com/harshbaid-13/Cake-Manager/internal/config"
	"github.com/harshbaid-13/Cake-Manager/internal/db"
	"github.com/harshbaid-13/Cake-Manager/internal/db/mock"
	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
	"github.com/harshbaid-13/Cake-Manager/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

// Seam variables so run can be exercised without opening sockets or a real
// database.
var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure

	newServerFunc = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}

	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		return sigCh, func() { signal.Stop(sigCh) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "error", err)
		return 1
	}

	database, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		applog.Error(ctx, "failed to open database", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr:     cfg.Server.Addr,
		Security: cfg.Security,
		Database: database,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	startErrCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		startErrCh <- srv.Start()
	}()

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	select {
	case err := <-startErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
	case <-sigCh:
		applog.Info(ctx, "shutting down http server")
		if err := srv.Stop(); err != nil {
			applog.Error(ctx, "graceful shutdown failed", "error", err)
			return 1
		}
	}

	if err := db.Close(database); err != nil {
		applog.Error(ctx, "failed to close database", "error", err)
	}
	return 0
}

// openDatabase picks the configured store, falling back to the seeded
// in-memory database when no URL is set so the app runs with zero setup.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.URL == "" || cfg.UseMock {
		applog.Info(ctx, "using in-memory mock database")
		database, err := newMockDatabaseFunc(ctx)
		if err != nil {
			return nil, err
		}
		db.DB = database
		return database, nil
	}
	return configureDatabase(cfg)
}
