package entries

import (
	"context"

	"github.com/inkwell-journal/inkwell/internal/client/models"
)

// Repository describes persistence operations for journal entries.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Upsert inserts a new entry or replaces an existing one, matched by
	// server id when assigned and client id otherwise. Writing an entry with
	// Synced=false stamps LastModified.
	Upsert(ctx context.Context, entry *models.JournalEntry) error

	// ListUnsynced returns all entries with Synced=false, the upload
	// candidate set for one sync round.
	ListUnsynced(ctx context.Context) ([]*models.JournalEntry, error)

	// MarkSynced atomically sets Synced=true and assigns the server id for
	// the entry matching clientID. Missing rows are a no-op, not an error.
	MarkSynced(ctx context.Context, clientID string, serverID int64) error

	// GetByClientID returns the entry with the given client id, or
	// common.ErrorNotFound.
	GetByClientID(ctx context.Context, clientID string) (*models.JournalEntry, error)

	// ListRecent returns up to limit entries ordered by timestamp descending.
	ListRecent(ctx context.Context, limit int) ([]*models.JournalEntry, error)

	// DeleteByServerID removes the entry with the given server id.
	// Deleting a missing row is a no-op.
	DeleteByServerID(ctx context.Context, serverID int64) error

	// DeleteByClientID removes the entry with the given client id.
	// Deleting a missing row is a no-op.
	DeleteByClientID(ctx context.Context, clientID string) error
}
