// Package api implements the client side of the Inkwell HTTP API: auth,
// health probing and the sync endpoint.
package api

import (
	"context"

	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

// Client is the remote API surface the sync engine depends on.
// The HTTP implementation lives in HTTPClient; tests substitute fakes.
type Client interface {
	// Register creates an account on the server.
	Register(ctx context.Context, email, password string) error

	// Login authenticates and stores the bearer token for later calls.
	Login(ctx context.Context, email, password string) error

	// Ping checks whether the server is reachable and healthy.
	Ping(ctx context.Context) error

	// Sync executes one reconciliation exchange: uploads the pending batch
	// and returns the server's acknowledgments, updates and conflicts.
	Sync(ctx context.Context, req syncapi.SyncRequest) (*syncapi.SyncResponse, error)

	// DeleteEntry removes the authoritative copy of a synced entry.
	DeleteEntry(ctx context.Context, serverID int64) error
}
