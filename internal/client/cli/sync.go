package cli

import (
	"context"
	"fmt"
)

// sync triggers a manual sync sequence. A sequence already in flight is
// reported, not queued.
func (a *App) sync(ctx context.Context) {
	out := a.syncer.SyncWithRetry(ctx, a.config.MaxSyncAttempts)

	fmt.Fprintln(a.out, out.Message)
	if out.Offline {
		fmt.Fprintln(a.out, "Your entries are safe locally and will sync when you are back online.")
		return
	}
	for _, e := range out.Errors {
		fmt.Fprintln(a.out, "  -", e)
	}
}

func (a *App) status(ctx context.Context) {
	snap := a.syncer.Status()

	if snap.Syncing {
		fmt.Fprintln(a.out, "Sync in progress")
	} else if snap.LastSuccessfulSync != nil {
		fmt.Fprintln(a.out, "Last successful sync:", snap.LastSuccessfulSync.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Fprintln(a.out, "Never synced")
	}

	pending, err := a.syncer.HasPendingWork(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not check pending entries:", err)
		return
	}
	if pending {
		fmt.Fprintln(a.out, "Unsynced entries are waiting for upload")
	}
	for _, e := range snap.RecentErrors {
		fmt.Fprintln(a.out, "  -", e)
	}
}
