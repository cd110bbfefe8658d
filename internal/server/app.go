// Package server initializes and runs the gallery backend: it opens the
// database pool, applies migrations, wires the services, and serves the HTTP
// API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/itemgallery/backend/internal/logging"
	"github.com/itemgallery/backend/internal/server/config"
	"github.com/itemgallery/backend/internal/server/httpapi"
	"github.com/itemgallery/backend/internal/server/repositories/repomanager"
	"github.com/itemgallery/backend/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	itemService *services.ItemService
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	us, err := services.NewUserService(db, m, cfg)
	if err != nil {
		return nil, fmt.Errorf("user service init error: %w", err)
	}
	is := services.NewItemService(db, m, cfg)

	return &App{config: cfg, logger: logger, db: db, userService: us, itemService: is}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "error closing db", "error", err.Error())
		}
	}()

	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	srv := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.itemService)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}
