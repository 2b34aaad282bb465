// Package server initializes and runs the Inkpad API server. It opens
// the database, applies migrations, wires the service layer, and serves
// the HTTP API until interrupted.
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

	"github.com/mpetrov/inkpad/internal/logging"
	"github.com/mpetrov/inkpad/internal/server/config"
	"github.com/mpetrov/inkpad/internal/server/repositories/repomanager"
	"github.com/mpetrov/inkpad/internal/server/rest"
	"github.com/mpetrov/inkpad/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	svc := rest.Services{
		Users:    services.NewUserService(db, m, cfg),
		Notes:    services.NewNoteService(db, m),
		Folders:  services.NewFolderService(db, m),
		Profiles: services.NewProfileService(db, m),
		Avatars:  services.NewAvatarService(cfg),
	}

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: rest.NewServer(cfg.EndpointAddr, svc, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
