// Package server initializes and runs the main application server.
// It wires configuration, logging, the user store, the media host, and the
// HTTP endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avlasov/chatauth/internal/logging"
	"github.com/avlasov/chatauth/internal/server/config"
	"github.com/avlasov/chatauth/internal/server/httpapi"
	"github.com/avlasov/chatauth/internal/server/media"
	"github.com/avlasov/chatauth/internal/server/shared/db"
	"github.com/avlasov/chatauth/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repoManager db.RepositoryManager
	httpServer  *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	uploader, err := media.NewS3Uploader(context.Background(), c)
	if err != nil {
		return nil, fmt.Errorf("media host init error: %w", err)
	}

	us := users.NewService(rm.Users(), uploader, c)
	srv := httpapi.NewServer(c, logger, us)

	return &App{config: c, logger: logger, repoManager: rm, httpServer: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repoManager.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
}
