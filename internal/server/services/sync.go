// Package services implements the server-side sync reconciliation.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inkwell-journal/inkwell/internal/logging"
	"github.com/inkwell-journal/inkwell/internal/server/models"
	"github.com/inkwell-journal/inkwell/internal/server/repositories/entries"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

// SyncService applies one uploaded batch against the authoritative copies and
// collects everything the device is missing.
type SyncService struct {
	entries entries.Repository
	log     logging.Logger
	now     func() time.Time
}

func NewSyncService(repo entries.Repository, log logging.Logger) *SyncService {
	return &SyncService{entries: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Reconcile processes req for userID.
//
// For each uploaded entry, last-modified-wins against the stored copy:
//
//   - no stored copy: insert, acknowledge
//   - uploaded copy is as new or newer: update, acknowledge
//   - stored copy is newer: surface a conflict; nothing is written
//
// One bad item never fails the batch: per-item storage errors are reported
// alongside conflicts and the rest of the batch proceeds. The response also
// carries all entries modified since req.LastSync, except those this very
// batch just wrote back.
func (s *SyncService) Reconcile(ctx context.Context, userID int64, req syncapi.SyncRequest) (*syncapi.SyncResponse, error) {
	// Captured before any writes: a device syncing against this timestamp must
	// not miss rows other devices write while this batch is applied.
	started := s.now()

	resp := &syncapi.SyncResponse{
		NewEntries:     []syncapi.UploadAck{},
		UpdatedEntries: []json.RawMessage{},
		SyncConflicts:  []syncapi.Conflict{},
	}

	touched := make(map[string]bool, len(req.PendingEntries))

	for _, incoming := range req.PendingEntries {
		serverID, err := s.applyEntry(ctx, userID, incoming)
		if err != nil {
			s.log.Warn(ctx, "entry not applied",
				"client_id", incoming.ClientID, "err", err)
			resp.SyncConflicts = append(resp.SyncConflicts, syncapi.Conflict{
				ClientID: incoming.ClientID,
				Error:    err.Error(),
			})
			continue
		}
		touched[incoming.ClientID] = true
		resp.NewEntries = append(resp.NewEntries, syncapi.UploadAck{
			ClientID: incoming.ClientID,
			ServerID: serverID,
			Synced:   true,
		})
	}

	changed, err := s.entries.ListModifiedSince(ctx, userID, req.LastSync)
	if err != nil {
		return nil, fmt.Errorf("failed to collect changed entries: %w", err)
	}
	for _, e := range changed {
		if touched[e.ClientID] {
			continue
		}
		raw, err := json.Marshal(toWire(e))
		if err != nil {
			return nil, fmt.Errorf("failed to encode entry %s: %w", e.ClientID, err)
		}
		resp.UpdatedEntries = append(resp.UpdatedEntries, raw)
	}

	resp.ServerTimestamp = started
	return resp, nil
}

// applyEntry writes one uploaded entry and returns its server id. A stored
// copy with a newer last-modified instant wins and yields an error.
func (s *SyncService) applyEntry(ctx context.Context, userID int64, incoming syncapi.Entry) (int64, error) {
	moods, err := encodeMoods(incoming.Moods)
	if err != nil {
		return 0, fmt.Errorf("invalid moods: %w", err)
	}

	stored, err := s.entries.GetByClientID(ctx, userID, incoming.ClientID)
	switch {
	case err == nil:
		if incoming.LastModified.Before(stored.LastModified) {
			return 0, fmt.Errorf("server copy of %s is newer (%s vs %s)",
				incoming.ClientID,
				stored.LastModified.Format(time.RFC3339Nano),
				incoming.LastModified.Format(time.RFC3339Nano))
		}
		stored.Content = incoming.Content
		stored.Timestamp = incoming.Timestamp
		stored.Moods = moods
		stored.ImagePath = incoming.ImagePath
		stored.LastModified = incoming.LastModified
		if err := s.entries.Update(ctx, stored); err != nil {
			return 0, err
		}
		return stored.ID, nil

	case isNotFound(err):
		id, err := s.entries.Insert(ctx, &models.Entry{
			UserID:       userID,
			ClientID:     incoming.ClientID,
			Content:      incoming.Content,
			Timestamp:    incoming.Timestamp,
			Moods:        moods,
			ImagePath:    incoming.ImagePath,
			LastModified: incoming.LastModified,
		})
		if err != nil {
			return 0, err
		}
		return id, nil

	default:
		return 0, err
	}
}
