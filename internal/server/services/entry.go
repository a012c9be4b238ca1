package services

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-journal/inkwell/internal/logging"
	"github.com/inkwell-journal/inkwell/internal/server/repositories/entries"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

// EntryService serves the read and delete endpoints over the authoritative
// entry copies.
type EntryService struct {
	entries entries.Repository
	log     logging.Logger
}

func NewEntryService(repo entries.Repository, log logging.Logger) *EntryService {
	return &EntryService{entries: repo, log: log}
}

// ListRecent returns up to limit of the user's entries, newest first, in wire
// form. Optional start and end bound the entries' timestamps.
func (s *EntryService) ListRecent(ctx context.Context, userID int64, start, end *time.Time, limit int) ([]syncapi.Entry, error) {
	rows, err := s.entries.ListRecent(ctx, userID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	out := make([]syncapi.Entry, 0, len(rows))
	for _, e := range rows {
		out = append(out, toWire(e))
	}
	return out, nil
}

// Delete removes one of the user's entries by server id.
func (s *EntryService) Delete(ctx context.Context, userID, id int64) error {
	return s.entries.DeleteByID(ctx, userID, id)
}
