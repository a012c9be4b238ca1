package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/inkwell-journal/inkwell/internal/client/models"
)

const listLimit = 20

func (a *App) list(ctx context.Context) {
	entries, err := a.entries.List(ctx, listLimit)
	if err != nil {
		fmt.Fprintln(a.out, "Could not list entries:", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries yet. Type 'add' to write one.")
		return
	}

	for _, e := range entries {
		fmt.Fprintln(a.out, formatEntryLine(e))
	}
}

func (a *App) show(ctx context.Context, clientID string) {
	e, err := a.entries.Get(ctx, clientID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not show entry:", err)
		return
	}

	fmt.Fprintln(a.out, formatEntryLine(e))
	fmt.Fprintln(a.out, e.Content)
	if len(e.Moods) > 0 {
		fmt.Fprintln(a.out, "Moods:", formatMoods(e.Moods))
	}
	if e.ImagePath != "" {
		fmt.Fprintln(a.out, "Image:", e.ImagePath)
	}
}

func formatEntryLine(e *models.JournalEntry) string {
	marker := "pending"
	if e.Synced {
		marker = "synced"
	}
	preview := e.Content
	if i := strings.IndexByte(preview, '\n'); i >= 0 {
		preview = preview[:i]
	}
	if len(preview) > 60 {
		preview = preview[:57] + "..."
	}
	return fmt.Sprintf("%s  %s  [%s]  %s",
		e.ClientID, e.Timestamp.Format("2006-01-02 15:04"), marker, preview)
}

func formatMoods(moods map[string]float64) string {
	names := make([]string, 0, len(moods))
	for name := range moods {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.2f", name, moods[name]))
	}
	return strings.Join(parts, ", ")
}
