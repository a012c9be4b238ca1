// Package store assembles the local repositories into the durable entry
// store used by the sync engine: journal entries plus the sync cursor.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-journal/inkwell/internal/client/models"
	"github.com/inkwell-journal/inkwell/internal/client/repositories/entries"
	"github.com/inkwell-journal/inkwell/internal/client/repositories/metadata"
	"github.com/inkwell-journal/inkwell/internal/logging"
)

// cursorKey is the metadata key under which the sync cursor is persisted.
const cursorKey = "last_sync"

// cursorLayout round-trips instants exactly.
const cursorLayout = time.RFC3339Nano

// Store is the durable local repository of journal entries and the sync
// cursor. Storage errors are fatal to the enclosing operation and propagate.
type Store interface {
	Upsert(ctx context.Context, entry *models.JournalEntry) error
	ListUnsynced(ctx context.Context) ([]*models.JournalEntry, error)
	MarkSynced(ctx context.Context, clientID string, serverID int64) error
	GetByClientID(ctx context.Context, clientID string) (*models.JournalEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*models.JournalEntry, error)
	DeleteByServerID(ctx context.Context, serverID int64) error
	DeleteByClientID(ctx context.Context, clientID string) error

	// GetCursor returns the persisted sync cursor, or nil when no round has
	// ever completed.
	GetCursor(ctx context.Context) (*time.Time, error)

	// SetCursor advances the cursor. Values earlier than the current cursor
	// are ignored (and logged) to keep the cursor monotonically non-decreasing.
	SetCursor(ctx context.Context, t time.Time) error
}

// SQLiteStore implements Store on top of the SQLite repositories.
type SQLiteStore struct {
	entries.Repository
	meta metadata.Repository
	log  logging.Logger
}

func New(entryRepo entries.Repository, metaRepo metadata.Repository, log logging.Logger) *SQLiteStore {
	return &SQLiteStore{Repository: entryRepo, meta: metaRepo, log: log}
}

func (s *SQLiteStore) GetCursor(ctx context.Context) (*time.Time, error) {
	raw, err := s.meta.Get(ctx, cursorKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync cursor: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(cursorLayout, string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sync cursor %q: %w", raw, err)
	}
	return &t, nil
}

func (s *SQLiteStore) SetCursor(ctx context.Context, t time.Time) error {
	current, err := s.GetCursor(ctx)
	if err != nil {
		return err
	}
	if current != nil && t.Before(*current) {
		s.log.Warn(ctx, "ignoring attempt to rewind sync cursor",
			"current", current.Format(cursorLayout),
			"proposed", t.Format(cursorLayout))
		return nil
	}
	if err := s.meta.Set(ctx, cursorKey, []byte(t.UTC().Format(cursorLayout))); err != nil {
		return fmt.Errorf("failed to persist sync cursor: %w", err)
	}
	return nil
}
