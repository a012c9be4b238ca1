package sync

import (
	"sync"
	"time"
)

// State tracks process-wide sync status for one store/endpoint pair.
// It lives for the lifetime of the session and is safe for concurrent use;
// a UI may read a snapshot while a round is in flight.
type State struct {
	mu                 sync.Mutex
	syncing            bool
	lastSuccessfulSync *time.Time
	recentErrors       []string
}

// Snapshot is a point-in-time copy of the sync state.
type Snapshot struct {
	Syncing            bool
	LastSuccessfulSync *time.Time
	RecentErrors       []string
}

func NewState() *State {
	return &State{}
}

// tryBegin flips the syncing flag if no round is running.
// It returns false when a sync is already in progress.
func (s *State) tryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncing {
		return false
	}
	s.syncing = true
	s.recentErrors = nil
	return true
}

// end clears the syncing flag and records the sequence result.
func (s *State) end(success bool, errs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = false
	if success {
		now := time.Now().UTC()
		s.lastSuccessfulSync = &now
	}
	s.recentErrors = append([]string(nil), errs...)
}

// Syncing reports whether a retry sequence currently holds the flag.
func (s *State) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

// Snapshot returns a copy of the current state without blocking in-flight work.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Syncing:      s.syncing,
		RecentErrors: append([]string(nil), s.recentErrors...),
	}
	if s.lastSuccessfulSync != nil {
		t := *s.lastSuccessfulSync
		snap.LastSuccessfulSync = &t
	}
	return snap
}
