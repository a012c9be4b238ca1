package sync

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/inkwell-journal/inkwell/internal/client/models"
	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/logging"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelDebug)
}

// fakeStore is an in-memory store.Store keyed by client id.
type fakeStore struct {
	mu      sync.Mutex
	entries map[string]*models.JournalEntry
	cursor  *time.Time

	listErr       error
	markSyncedErr error
	upsertErr     error
	cursorErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]*models.JournalEntry)}
}

func (f *fakeStore) put(e *models.JournalEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.entries[e.ClientID] = &cp
}

func (f *fakeStore) get(clientID string) *models.JournalEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[clientID]; ok {
		cp := *e
		return &cp
	}
	return nil
}

func (f *fakeStore) Upsert(_ context.Context, entry *models.JournalEntry) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.put(entry)
	return nil
}

func (f *fakeStore) ListUnsynced(_ context.Context) ([]*models.JournalEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.JournalEntry
	for _, e := range f.entries {
		if !e.Synced {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkSynced(_ context.Context, clientID string, serverID int64) error {
	if f.markSyncedErr != nil {
		return f.markSyncedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[clientID]
	if !ok {
		return common.ErrorNotFound
	}
	e.ServerID = &serverID
	e.Synced = true
	return nil
}

func (f *fakeStore) GetByClientID(_ context.Context, clientID string) (*models.JournalEntry, error) {
	if e := f.get(clientID); e != nil {
		return e, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeStore) ListRecent(_ context.Context, limit int) ([]*models.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.JournalEntry
	for _, e := range f.entries {
		cp := *e
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteByServerID(_ context.Context, serverID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.entries {
		if e.ServerID != nil && *e.ServerID == serverID {
			delete(f.entries, id)
		}
	}
	return nil
}

func (f *fakeStore) DeleteByClientID(_ context.Context, clientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, clientID)
	return nil
}

func (f *fakeStore) GetCursor(_ context.Context) (*time.Time, error) {
	if f.cursorErr != nil {
		return nil, f.cursorErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cursor == nil {
		return nil, nil
	}
	t := *f.cursor
	return &t, nil
}

func (f *fakeStore) SetCursor(_ context.Context, t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cursor != nil && t.Before(*f.cursor) {
		return nil
	}
	cp := t
	f.cursor = &cp
	return nil
}

// fakeClient is an api.Client whose Sync behavior is scripted per test.
type fakeClient struct {
	mu       sync.Mutex
	requests []syncapi.SyncRequest
	syncFn   func(ctx context.Context, req syncapi.SyncRequest) (*syncapi.SyncResponse, error)
}

func (f *fakeClient) Register(context.Context, string, string) error { return nil }

func (f *fakeClient) Login(context.Context, string, string) error { return nil }

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) DeleteEntry(context.Context, int64) error { return nil }

func (f *fakeClient) Sync(ctx context.Context, req syncapi.SyncRequest) (*syncapi.SyncResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.syncFn(ctx, req)
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeClient) lastRequest() syncapi.SyncRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

// fakeChecker reports a fixed connectivity answer.
type fakeChecker struct{ online bool }

func (f *fakeChecker) Online(context.Context) bool { return f.online }
