package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inkwell-journal/inkwell/internal/client/api"
	"github.com/inkwell-journal/inkwell/internal/client/netx"
	"github.com/inkwell-journal/inkwell/internal/client/store"
	"github.com/inkwell-journal/inkwell/internal/logging"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

// Orchestrator executes exactly one reconciliation round against the server.
// It holds no locks across the network call: the store is read before the
// call and written only after a response arrives.
type Orchestrator struct {
	store  store.Store
	client api.Client
	net    netx.Checker
	log    logging.Logger
}

func NewOrchestrator(s store.Store, c api.Client, n netx.Checker, log logging.Logger) *Orchestrator {
	return &Orchestrator{store: s, client: c, net: n, log: log}
}

// RunOnce performs one round: connectivity check, upload of pending changes,
// application of downloaded changes, conflict bookkeeping, cursor advance.
//
// One bad item never aborts the rest of the round: per-item failures are
// recorded in the outcome's error list and skipped. The round is successful
// when the server was reached and the response applied, even if individual
// items conflicted or failed.
func (o *Orchestrator) RunOnce(ctx context.Context) Outcome {
	if !o.net.Online(ctx) {
		o.log.Debug(ctx, "skipping sync round, no connectivity")
		return Outcome{Success: false, Offline: true, Message: "no network connectivity"}
	}

	pending, err := o.store.ListUnsynced(ctx)
	if err != nil {
		return failure(fmt.Sprintf("failed to read pending entries: %v", err))
	}
	cursor, err := o.store.GetCursor(ctx)
	if err != nil {
		return failure(fmt.Sprintf("failed to read sync cursor: %v", err))
	}

	req := syncapi.SyncRequest{
		LastSync:       cursor,
		PendingEntries: make([]syncapi.Entry, 0, len(pending)),
	}
	for _, e := range pending {
		req.PendingEntries = append(req.PendingEntries, api.ToWire(e))
	}

	o.log.Debug(ctx, "starting sync round", "pending", len(pending), "has_cursor", cursor != nil)

	resp, err := o.client.Sync(ctx, req)
	if err != nil {
		o.log.Warn(ctx, "sync call failed", "err", err)
		return failure(fmt.Sprintf("sync call failed: %v", err))
	}

	var out Outcome
	out.Success = true

	// Upload acknowledgments first: entries the server accepted become synced.
	for _, ack := range resp.NewEntries {
		if err := o.store.MarkSynced(ctx, ack.ClientID, ack.ServerID); err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("failed to mark entry %s synced: %v", ack.ClientID, err))
			continue
		}
		out.Uploaded++
	}

	// Entries created or edited elsewhere since the cursor. Each element is
	// decoded independently so one malformed entry is skipped, not fatal.
	for _, raw := range resp.UpdatedEntries {
		var w syncapi.Entry
		if err := json.Unmarshal(raw, &w); err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("failed to parse downloaded entry: %v", err))
			continue
		}
		e := api.FromWire(w)
		e.Synced = true
		if err := o.store.Upsert(ctx, e); err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("failed to store entry %s: %v", w.ClientID, err))
			continue
		}
		out.Downloaded++
	}

	// Conflicts are surfaced, never resolved; the local copy stays unsynced.
	for _, c := range resp.SyncConflicts {
		out.Conflicts++
		out.Errors = append(out.Errors, fmt.Sprintf("conflict for entry %s: %s", c.ClientID, c.Error))
	}

	if !resp.ServerTimestamp.IsZero() {
		if err := o.store.SetCursor(ctx, resp.ServerTimestamp); err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("failed to advance sync cursor: %v", err))
		}
	}

	out.Message = fmt.Sprintf("sync complete: %d uploaded, %d downloaded, %d conflicts",
		out.Uploaded, out.Downloaded, out.Conflicts)
	o.log.Info(ctx, "sync round finished",
		"uploaded", out.Uploaded, "downloaded", out.Downloaded,
		"conflicts", out.Conflicts, "item_errors", len(out.Errors))
	return out
}

func failure(msg string) Outcome {
	return Outcome{Success: false, Message: msg, Errors: []string{msg}}
}
