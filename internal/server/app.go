// Package server assembles and runs the Inkwell HTTP API: storage, auth,
// the sync endpoint, and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/inkwell-journal/inkwell/internal/logging"
	"github.com/inkwell-journal/inkwell/internal/server/config"
	"github.com/inkwell-journal/inkwell/internal/server/handlers"
	"github.com/inkwell-journal/inkwell/internal/server/middleware"
	"github.com/inkwell-journal/inkwell/internal/server/migrations"
	entriesrepo "github.com/inkwell-journal/inkwell/internal/server/repositories/entries"
	usersrepo "github.com/inkwell-journal/inkwell/internal/server/repositories/users"
	"github.com/inkwell-journal/inkwell/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sqlx.DB
	router chi.Router
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sqlx.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(2 * time.Hour)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := runMigrations(db.DB); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	requestLogger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("request logger init error: %w", err)
	}

	userRepo := usersrepo.NewPostgresRepository(db)
	entryRepo := entriesrepo.NewPostgresRepository(db)

	syncSvc := services.NewSyncService(entryRepo, logger)
	entrySvc := services.NewEntryService(entryRepo, logger)

	authHandler := handlers.NewAuthHandler(userRepo, []byte(c.SecretKey), c.AccessTokenValidityDuration, logger)
	syncHandler := handlers.NewSyncHandler(syncSvc, logger)
	entriesHandler := handlers.NewEntriesHandler(entrySvc, logger)
	authMW := middleware.NewAuthMiddleware([]byte(c.SecretKey))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.StructuredLogger(requestLogger))
	// Auth rides in the Authorization header, so credentialed CORS is not
	// needed and would conflict with the wildcard origin anyway.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handlers.Health)
		api.Post("/auth/register", authHandler.Register)
		api.Post("/auth/login", authHandler.Login)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Post("/sync", syncHandler.Sync)
			pr.Get("/entries", entriesHandler.List)
			pr.Delete("/entries/{id}", entriesHandler.Delete)
		})
	})

	return &App{config: c, logger: logger, db: db, router: r}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

// Run starts the HTTP server and blocks until the context is cancelled or a
// termination signal arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancel()
	}()

	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: app.router}

	go func() {
		app.logger.Info(ctx, "server starting", "addr", app.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutdown initiated")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = app.db.Close()
	app.logger.Info(ctx, "server stopped")
}
