package api

import (
	"github.com/inkwell-journal/inkwell/internal/client/models"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

// ToWire converts a local entry to its wire representation.
func ToWire(e *models.JournalEntry) syncapi.Entry {
	moods := e.Moods
	if moods == nil {
		moods = map[string]float64{}
	}
	return syncapi.Entry{
		ServerID:     e.ServerID,
		ClientID:     e.ClientID,
		Content:      e.Content,
		Timestamp:    e.Timestamp,
		Moods:        moods,
		ImagePath:    e.ImagePath,
		LastModified: e.LastModified,
	}
}

// FromWire converts a downloaded entry into a local model. The caller decides
// the Synced flag; entries applied from the server are stored synced.
func FromWire(w syncapi.Entry) *models.JournalEntry {
	return &models.JournalEntry{
		ServerID:     w.ServerID,
		ClientID:     w.ClientID,
		Content:      w.Content,
		Timestamp:    w.Timestamp,
		Moods:        w.Moods,
		ImagePath:    w.ImagePath,
		LastModified: w.LastModified,
	}
}
