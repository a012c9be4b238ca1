package cli

import (
	"context"
	"fmt"
)

func (a *App) delete(ctx context.Context, clientID string) {
	confirm, err := GetSimpleText(a.reader, fmt.Sprintf("Delete entry %s? (y/n)", clientID), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error reading confirmation:", err)
		return
	}
	if confirm != "y" && confirm != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return
	}

	entry, err := a.entries.Get(ctx, clientID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not delete entry:", err)
		return
	}

	if err := a.entries.Delete(ctx, clientID); err != nil {
		fmt.Fprintln(a.out, "Could not delete entry:", err)
		return
	}

	// Best-effort propagation; a failure leaves only the server copy behind.
	if entry.Synced && entry.ServerID != nil {
		if err := a.apiClient.DeleteEntry(ctx, *entry.ServerID); err != nil {
			fmt.Fprintln(a.out, "Deleted locally; server copy not removed:", err)
			return
		}
	}
	fmt.Fprintln(a.out, "Deleted", clientID)
}
