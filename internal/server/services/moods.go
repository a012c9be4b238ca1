package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/server/models"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

// encodeMoods serializes a mood map to the JSON text stored in the moods
// column. A nil map is stored as an empty object so the column round-trips
// without null checks.
func encodeMoods(moods map[string]float64) (string, error) {
	for name, score := range moods {
		if score < 0 || score > 1 {
			return "", fmt.Errorf("mood %q: %w", name, common.ErrInvalidMoodScore)
		}
	}
	if moods == nil {
		moods = map[string]float64{}
	}
	b, err := json.Marshal(moods)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeMoods(raw string) (map[string]float64, error) {
	if raw == "" {
		return map[string]float64{}, nil
	}
	var moods map[string]float64
	if err := json.Unmarshal([]byte(raw), &moods); err != nil {
		return nil, err
	}
	if moods == nil {
		moods = map[string]float64{}
	}
	return moods, nil
}

// toWire converts a stored entry to its wire form. Undecodable mood columns
// degrade to an empty map rather than dropping the entry.
func toWire(e *models.Entry) syncapi.Entry {
	moods, err := decodeMoods(e.Moods)
	if err != nil {
		moods = map[string]float64{}
	}
	id := e.ID
	return syncapi.Entry{
		ServerID:     &id,
		ClientID:     e.ClientID,
		Content:      e.Content,
		Timestamp:    e.Timestamp,
		Moods:        moods,
		ImagePath:    e.ImagePath,
		LastModified: e.LastModified,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}
