package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/logging"
	"github.com/inkwell-journal/inkwell/internal/server/models"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

// memEntryRepo is an in-memory entries.Repository keyed by (userID, clientID).
type memEntryRepo struct {
	nextID  int64
	rows    map[int64]*models.Entry
	getErr  error
	insErr  error
	updErr  error
	listErr error
}

func newMemEntryRepo() *memEntryRepo {
	return &memEntryRepo{rows: make(map[int64]*models.Entry)}
}

func (m *memEntryRepo) GetByClientID(_ context.Context, userID int64, clientID string) (*models.Entry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, e := range m.rows {
		if e.UserID == userID && e.ClientID == clientID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memEntryRepo) Insert(_ context.Context, entry *models.Entry) (int64, error) {
	if m.insErr != nil {
		return 0, m.insErr
	}
	m.nextID++
	cp := *entry
	cp.ID = m.nextID
	m.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memEntryRepo) Update(_ context.Context, entry *models.Entry) error {
	if m.updErr != nil {
		return m.updErr
	}
	e, ok := m.rows[entry.ID]
	if !ok || e.UserID != entry.UserID {
		return common.ErrorNotFound
	}
	cp := *entry
	m.rows[entry.ID] = &cp
	return nil
}

func (m *memEntryRepo) ListModifiedSince(_ context.Context, userID int64, since *time.Time) ([]*models.Entry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*models.Entry
	for _, e := range m.rows {
		if e.UserID != userID {
			continue
		}
		if since != nil && !e.LastModified.After(*since) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastModified.Before(out[j].LastModified) })
	return out, nil
}

func (m *memEntryRepo) ListRecent(_ context.Context, userID int64, _, _ *time.Time, _ int) ([]*models.Entry, error) {
	return m.ListModifiedSince(context.Background(), userID, nil)
}

func (m *memEntryRepo) DeleteByID(_ context.Context, userID, id int64) error {
	e, ok := m.rows[id]
	if !ok || e.UserID != userID {
		return common.ErrorNotFound
	}
	delete(m.rows, id)
	return nil
}

func newSyncService(repo *memEntryRepo) *SyncService {
	svc := NewSyncService(repo, logging.NewTextLogger(io.Discard, slog.LevelDebug))
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func wireEntry(clientID, content string, modified time.Time) syncapi.Entry {
	return syncapi.Entry{
		ClientID:     clientID,
		Content:      content,
		Timestamp:    modified.Add(-time.Hour),
		Moods:        map[string]float64{"calm": 0.5},
		LastModified: modified,
	}
}

func TestReconcile_InsertsNewEntries(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newSyncService(repo)

	mod := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	resp, err := svc.Reconcile(context.Background(), 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{wireEntry("c1", "hello", mod), wireEntry("c2", "world", mod)},
	})
	require.NoError(t, err)

	require.Len(t, resp.NewEntries, 2)
	assert.Equal(t, "c1", resp.NewEntries[0].ClientID)
	assert.True(t, resp.NewEntries[0].Synced)
	assert.NotZero(t, resp.NewEntries[0].ServerID)
	assert.Empty(t, resp.SyncConflicts)
	// The batch's own entries are not echoed back as downloads.
	assert.Empty(t, resp.UpdatedEntries)
	assert.False(t, resp.ServerTimestamp.IsZero())

	stored, err := repo.GetByClientID(context.Background(), 1, "c1")
	require.NoError(t, err)
	assert.Equal(t, "hello", stored.Content)
	assert.JSONEq(t, `{"calm":0.5}`, stored.Moods)
}

func TestReconcile_ReuploadIsIdempotent(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newSyncService(repo)
	ctx := context.Background()

	mod := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	first, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{wireEntry("c1", "hello", mod)},
	})
	require.NoError(t, err)

	second, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{wireEntry("c1", "hello", mod)},
	})
	require.NoError(t, err)

	require.Len(t, second.NewEntries, 1)
	assert.Equal(t, first.NewEntries[0].ServerID, second.NewEntries[0].ServerID)
	assert.Len(t, repo.rows, 1)
}

func TestReconcile_NewerUploadWins(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newSyncService(repo)
	ctx := context.Background()

	old := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{wireEntry("c1", "original", old)},
	})
	require.NoError(t, err)

	resp, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{wireEntry("c1", "edited", old.Add(time.Minute))},
	})
	require.NoError(t, err)

	require.Len(t, resp.NewEntries, 1)
	stored, err := repo.GetByClientID(ctx, 1, "c1")
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Content)
}

func TestReconcile_StaleUploadConflicts(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newSyncService(repo)
	ctx := context.Background()

	newer := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{wireEntry("c1", "from other device", newer)},
	})
	require.NoError(t, err)

	resp, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{wireEntry("c1", "stale edit", newer.Add(-time.Minute))},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.NewEntries)
	require.Len(t, resp.SyncConflicts, 1)
	assert.Equal(t, "c1", resp.SyncConflicts[0].ClientID)
	assert.Contains(t, resp.SyncConflicts[0].Error, "newer")

	// The stale upload is rejected, not merged.
	stored, err := repo.GetByClientID(ctx, 1, "c1")
	require.NoError(t, err)
	assert.Equal(t, "from other device", stored.Content)
}

func TestReconcile_ReturnsEntriesChangedSinceCursor(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newSyncService(repo)
	ctx := context.Background()

	early := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	late := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	_, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{
			wireEntry("old", "before cursor", early),
			wireEntry("new", "after cursor", late),
		},
	})
	require.NoError(t, err)

	cursor := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	resp, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{LastSync: &cursor})
	require.NoError(t, err)

	require.Len(t, resp.UpdatedEntries, 1)
	var got syncapi.Entry
	require.NoError(t, json.Unmarshal(resp.UpdatedEntries[0], &got))
	assert.Equal(t, "new", got.ClientID)
	assert.Equal(t, "after cursor", got.Content)
	require.NotNil(t, got.ServerID)
}

func TestReconcile_NilCursorReturnsEverything(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newSyncService(repo)
	ctx := context.Background()

	mod := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{wireEntry("c1", "a", mod), wireEntry("c2", "b", mod.Add(time.Minute))},
	})
	require.NoError(t, err)

	resp, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.UpdatedEntries, 2)
}

func TestReconcile_UsersAreIsolated(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newSyncService(repo)
	ctx := context.Background()

	mod := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{wireEntry("c1", "mine", mod)},
	})
	require.NoError(t, err)

	resp, err := svc.Reconcile(ctx, 2, syncapi.SyncRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.UpdatedEntries, "another user's entries never leak")
}

func TestReconcile_ItemErrorDoesNotAbortBatch(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newSyncService(repo)
	ctx := context.Background()

	mod := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	bad := wireEntry("bad", "scores out of range", mod)
	bad.Moods = map[string]float64{"rage": 2.5}

	resp, err := svc.Reconcile(ctx, 1, syncapi.SyncRequest{
		PendingEntries: []syncapi.Entry{bad, wireEntry("good", "fine", mod)},
	})
	require.NoError(t, err)

	require.Len(t, resp.NewEntries, 1)
	assert.Equal(t, "good", resp.NewEntries[0].ClientID)
	require.Len(t, resp.SyncConflicts, 1)
	assert.Equal(t, "bad", resp.SyncConflicts[0].ClientID)
}

func TestReconcile_ListFailureFailsRound(t *testing.T) {
	repo := newMemEntryRepo()
	repo.listErr = errors.New("connection refused")
	svc := newSyncService(repo)

	_, err := svc.Reconcile(context.Background(), 1, syncapi.SyncRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to collect changed entries")
}
