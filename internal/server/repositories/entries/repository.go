// Package entries persists the authoritative copies of journal entries.
package entries

import (
	"context"
	"time"

	"github.com/inkwell-journal/inkwell/internal/server/models"
)

type Repository interface {
	// GetByClientID returns the entry a device uploaded under clientID, or
	// common.ErrorNotFound.
	GetByClientID(ctx context.Context, userID int64, clientID string) (*models.Entry, error)

	// Insert stores a new entry and returns its server-assigned id.
	Insert(ctx context.Context, entry *models.Entry) (int64, error)

	// Update overwrites an existing entry's mutable fields.
	Update(ctx context.Context, entry *models.Entry) error

	// ListModifiedSince returns the user's entries modified strictly after
	// since, oldest first. A nil since returns everything.
	ListModifiedSince(ctx context.Context, userID int64, since *time.Time) ([]*models.Entry, error)

	// ListRecent returns up to limit entries, newest timestamp first. A
	// non-nil start or end restricts the result to entries whose timestamp
	// falls inside the closed range.
	ListRecent(ctx context.Context, userID int64, start, end *time.Time, limit int) ([]*models.Entry, error)

	// DeleteByID removes one of the user's entries.
	DeleteByID(ctx context.Context, userID, id int64) error
}
