package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/inkwell-journal/inkwell/internal/client/migrations"
	"github.com/inkwell-journal/inkwell/internal/client/repositories/entries"
	"github.com/inkwell-journal/inkwell/internal/client/repositories/metadata"
	"github.com/inkwell-journal/inkwell/internal/logging"

	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded goose migrations to the local database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the local SQLite database at dsn,
// applies migrations and returns a ready Store.
func InitDatabase(ctx context.Context, dsn string, log logging.Logger) (*SQLiteStore, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open local database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	s := New(entries.NewSQLiteRepository(db), metadata.NewSQLiteRepository(db), log)
	return s, db, nil
}
