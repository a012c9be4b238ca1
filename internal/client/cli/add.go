package cli

import (
	"context"
	"fmt"
	"time"
)

// add creates a journal entry locally. It never touches the network: the
// entry is stored unsynced and uploaded by the next sync round.
func (a *App) add(ctx context.Context) {
	content, err := GetMultiline(a.reader, "Write your entry", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error reading entry:", err)
		return
	}

	moods, err := GetMoods(a.reader, a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error reading moods:", err)
		return
	}

	imagePath, err := GetSimpleText(a.reader, "Image path (optional, empty to skip)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error reading image path:", err)
		return
	}

	entry, err := a.entries.Add(ctx, content, time.Now().UTC(), moods, imagePath)
	if err != nil {
		fmt.Fprintln(a.out, "Could not save entry:", err)
		return
	}
	fmt.Fprintf(a.out, "Saved entry %s (pending sync)\n", entry.ClientID)
}
