// Package cli implements the interactive Inkwell journal shell: a small REPL
// over the local entry service and the sync engine.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"time"

	"github.com/inkwell-journal/inkwell/internal/client/api"
	"github.com/inkwell-journal/inkwell/internal/client/config"
	"github.com/inkwell-journal/inkwell/internal/client/netx"
	"github.com/inkwell-journal/inkwell/internal/client/services"
	"github.com/inkwell-journal/inkwell/internal/client/store"
	syncengine "github.com/inkwell-journal/inkwell/internal/client/sync"
	"github.com/inkwell-journal/inkwell/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config    *config.Config
	entries   *services.EntryService
	apiClient api.Client
	syncer    *syncengine.Manager
	store     store.Store
	db        *sql.DB
	log       logging.Logger
	userEmail string
	Mode      Mode
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	st, db, err := store.InitDatabase(ctx, c.DatabasePath, log)
	if err != nil {
		log.Error(ctx, "failed to initialize local database", "err", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerURL)
	orch := syncengine.NewOrchestrator(st, apiClient, netx.NewInterfaceChecker(), log)
	syncer := syncengine.NewManager(orch, st, log,
		syncengine.WithMaxAttempts(c.MaxSyncAttempts))

	return &App{
		config:    c,
		entries:   services.NewEntryService(st, log),
		apiClient: apiClient,
		syncer:    syncer,
		store:     st,
		db:        db,
		log:       log,
		Mode:      ModeOffline,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

// Run starts the periodic sync trigger and the REPL; it returns when the user
// exits.
func (a *App) Run(ctx context.Context) {
	handle := a.syncer.SchedulePeriodic(a.config.SyncInterval)
	defer handle.Stop()
	a.Root(ctx)
}

// StartOnlineStatusWatcher probes the server on an interval and flips the
// displayed mode. Sync rounds do their own connectivity check; this only
// drives the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.apiClient.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
