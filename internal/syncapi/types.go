// Package syncapi defines the JSON wire contract of the sync endpoint,
// shared by the client and the server so the two sides cannot drift.
package syncapi

import (
	"encoding/json"
	"time"
)

// Entry is a journal entry as it travels over the wire.
//
// ServerID is assigned by the server and absent until the first successful
// upload; ClientID is generated once on the device and is the reconciliation
// key before a ServerID exists.
type Entry struct {
	ServerID     *int64             `json:"serverId,omitempty"`
	ClientID     string             `json:"clientId"`
	Content      string             `json:"content"`
	Timestamp    time.Time          `json:"timestamp"`
	Moods        map[string]float64 `json:"moods"`
	ImagePath    string             `json:"imagePath,omitempty"`
	LastModified time.Time          `json:"lastModified"`
}

// SyncRequest is the body of POST /api/sync.
type SyncRequest struct {
	LastSync       *time.Time `json:"lastSync,omitempty"`
	PendingEntries []Entry    `json:"pendingEntries"`
}

// UploadAck acknowledges one accepted upload from PendingEntries.
type UploadAck struct {
	ClientID string `json:"clientId"`
	ServerID int64  `json:"serverId"`
	Synced   bool   `json:"synced"`
}

// Conflict reports one pending entry the server could not accept as-is.
// The error is an opaque human-readable string; no resolution is implied.
type Conflict struct {
	ClientID string `json:"clientId"`
	Error    string `json:"error"`
}

// SyncResponse is the body returned by the sync endpoint.
//
// UpdatedEntries is kept as raw JSON so the client can decode each element
// independently: one malformed entry must not poison the rest of the batch.
type SyncResponse struct {
	NewEntries      []UploadAck       `json:"newEntries"`
	UpdatedEntries  []json.RawMessage `json:"updatedEntries"`
	SyncConflicts   []Conflict        `json:"syncConflicts"`
	ServerTimestamp time.Time         `json:"serverTimestamp"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
