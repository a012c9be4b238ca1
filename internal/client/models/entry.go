// Package models defines client-side data models used by the Inkwell CLI.
package models

import (
	"encoding/json"
	"time"
)

// JournalEntry is a journal entry persisted locally and synced with the server.
type JournalEntry struct {
	// ServerID is the server-assigned identity. Nil until the entry has been
	// uploaded at least once.
	ServerID *int64

	// ClientID is a globally unique identifier generated on the device when
	// the entry is created. It never changes.
	ClientID string

	// Content is the free-form journal text.
	Content string

	// Timestamp is when the entry was written, in UTC.
	Timestamp time.Time

	// Moods maps emotion labels to scores in [0,1]. May be empty.
	Moods map[string]float64

	// ImagePath references an attached image, if any.
	ImagePath string

	// Synced is true iff the local copy is known identical to the remote copy.
	Synced bool

	// LastModified is updated on every local mutation, in UTC.
	LastModified time.Time
}

// EncodeMoods serializes the mood map to JSON for storage. A nil map is
// stored as an empty object so decoding always yields a usable map.
func EncodeMoods(m map[string]float64) ([]byte, error) {
	if m == nil {
		m = map[string]float64{}
	}
	return json.Marshal(m)
}

// DecodeMoods restores a mood map written by EncodeMoods.
func DecodeMoods(b []byte) (map[string]float64, error) {
	if len(b) == 0 {
		return map[string]float64{}, nil
	}
	var m map[string]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]float64{}
	}
	return m, nil
}
