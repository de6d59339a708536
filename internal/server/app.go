// Package server initializes and runs the catalog application server.
// It opens the database, applies migrations, wires the services and
// starts the HTTP server, shutting everything down on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/AnuraagTripathy/coding-assessment/internal/logging"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/config"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/httpapi"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/repomanager"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	userService       *services.UserService
	productService    *services.ProductService
	assignmentService *services.AssignmentService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	ps := services.NewProductService(db, rm)
	as := services.NewAssignmentService(db, rm)

	return &App{
		config:            cfg,
		logger:            logger,
		db:                db,
		userService:       us,
		productService:    ps,
		assignmentService: as,
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.config.AllowedOrigin,
		app.logger, app.userService, app.productService, app.assignmentService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
