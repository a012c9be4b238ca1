// Package models defines the server-side database records.
package models

import "time"

type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Entry is the authoritative copy of a journal entry. ClientID is the
// device-assigned identity; (UserID, ClientID) is unique so re-uploads are
// idempotent. Moods holds the mood map as JSON text.
type Entry struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	ClientID     string    `db:"client_id"`
	Content      string    `db:"content"`
	Timestamp    time.Time `db:"timestamp"`
	Moods        string    `db:"moods"`
	ImagePath    string    `db:"image_path"`
	LastModified time.Time `db:"last_modified"`
}
