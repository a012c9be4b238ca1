// Package sync contains the reconciliation engine: the orchestrator that
// runs one round against the server, and the manager that wraps rounds with
// retries, single-flight exclusion and periodic triggering.
package sync

// Outcome describes the result of one sync round (or of a whole retry
// sequence). It is ephemeral and never persisted.
//
// Success means the round talked to the server and applied what it could;
// individual conflicts or item errors do not make a round unsuccessful.
// Callers inspect Conflicts and Errors for partial-failure detail.
type Outcome struct {
	Success    bool
	Message    string
	Uploaded   int
	Downloaded int
	Conflicts  int
	Offline    bool
	Errors     []string
}
