// Package services holds the client-side application services sitting between
// the CLI and the local store.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-journal/inkwell/internal/client/models"
	"github.com/inkwell-journal/inkwell/internal/client/store"
	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/logging"
)

// EntryService implements local journal operations. Everything works offline:
// writes land in the store unsynced and the sync engine picks them up later.
type EntryService struct {
	store store.Store
	log   logging.Logger
}

func NewEntryService(s store.Store, log logging.Logger) *EntryService {
	return &EntryService{store: s, log: log}
}

// Add creates a new entry. The entry gets a fresh client id and is stored
// unsynced; mood scores must fall within [0, 1].
func (s *EntryService) Add(ctx context.Context, content string, timestamp time.Time, moods map[string]float64, imagePath string) (*models.JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.ErrEmptyContent
	}
	for name, score := range moods {
		if score < 0 || score > 1 {
			return nil, fmt.Errorf("mood %q: %w", name, common.ErrInvalidMoodScore)
		}
	}
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	entry := &models.JournalEntry{
		ClientID:  uuid.NewString(),
		Content:   content,
		Timestamp: timestamp,
		Moods:     moods,
		ImagePath: imagePath,
	}
	if err := s.store.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.log.Debug(ctx, "entry created", "client_id", entry.ClientID)
	return entry, nil
}

// Update edits an existing entry's content and moods. The entry drops back to
// unsynced so the next round uploads the change.
func (s *EntryService) Update(ctx context.Context, clientID, content string, moods map[string]float64) (*models.JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.ErrEmptyContent
	}
	for name, score := range moods {
		if score < 0 || score > 1 {
			return nil, fmt.Errorf("mood %q: %w", name, common.ErrInvalidMoodScore)
		}
	}

	entry, err := s.store.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	entry.Content = content
	entry.Moods = moods
	entry.Synced = false
	if err := s.store.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	return entry, nil
}

// Get returns one entry by its client id.
func (s *EntryService) Get(ctx context.Context, clientID string) (*models.JournalEntry, error) {
	return s.store.GetByClientID(ctx, clientID)
}

// List returns up to limit entries, newest first.
func (s *EntryService) List(ctx context.Context, limit int) ([]*models.JournalEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.ListRecent(ctx, limit)
}

// Delete removes an entry locally. Synced entries are addressed by server id
// so the deletion can also be propagated remotely by the caller; local-only
// entries just disappear.
func (s *EntryService) Delete(ctx context.Context, clientID string) error {
	entry, err := s.store.GetByClientID(ctx, clientID)
	if err != nil {
		return err
	}
	if entry.Synced && entry.ServerID != nil {
		if err := s.store.DeleteByServerID(ctx, *entry.ServerID); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		s.log.Debug(ctx, "synced entry deleted", "client_id", clientID, "server_id", *entry.ServerID)
		return nil
	}
	if err := s.store.DeleteByClientID(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	s.log.Debug(ctx, "local entry deleted", "client_id", clientID)
	return nil
}
