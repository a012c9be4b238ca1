package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/inkwell-journal/inkwell/internal/client/store"
	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/logging"
)

// DefaultMaxAttempts bounds one retry sequence.
const DefaultMaxAttempts = 3

// DefaultBaseDelay is the first backoff delay; subsequent delays double.
const DefaultBaseDelay = 2 * time.Second

// Runner executes a single reconciliation round.
type Runner interface {
	RunOnce(ctx context.Context) Outcome
}

// Manager wraps rounds with bounded retries, exponential backoff,
// single-flight exclusion and periodic triggering. The single-flight flag is
// held for the whole retry sequence, so a manual sync started while a
// scheduled one runs is rejected, not queued.
type Manager struct {
	runner      Runner
	store       store.Store
	state       *State
	log         logging.Logger
	baseDelay   time.Duration
	maxAttempts int
}

// Option tweaks Manager construction.
type Option func(*Manager)

// WithBaseDelay overrides the first backoff delay (tests shorten it).
func WithBaseDelay(d time.Duration) Option {
	return func(m *Manager) { m.baseDelay = d }
}

// WithMaxAttempts overrides the attempt limit used by the periodic trigger.
func WithMaxAttempts(n int) Option {
	return func(m *Manager) { m.maxAttempts = n }
}

func NewManager(runner Runner, s store.Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		runner:      runner,
		store:       s,
		state:       NewState(),
		log:         log,
		baseDelay:   DefaultBaseDelay,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SyncWithRetry attempts RunOnce up to maxAttempts times, backing off
// exponentially between failed attempts. It stops immediately on the first
// success, and immediately without further attempts when an attempt reports
// offline: retrying without connectivity cannot help.
func (m *Manager) SyncWithRetry(ctx context.Context, maxAttempts int) Outcome {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	if !m.state.tryBegin() {
		m.log.Debug(ctx, "sync requested while another is running")
		return Outcome{Success: false, Message: common.ErrSyncInProgress.Error()}
	}

	var last Outcome
	var allErrors []string
	attempt := 0

	backoff := retry.WithMaxRetries(uint64(maxAttempts-1), retry.NewExponential(m.baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		last = m.runner.RunOnce(ctx)
		if last.Success {
			return nil
		}
		allErrors = append(allErrors, last.Errors...)
		if last.Offline {
			return common.ErrOffline
		}
		m.log.Warn(ctx, "sync attempt failed", "attempt", attempt, "max_attempts", maxAttempts)
		return retry.RetryableError(common.ErrSyncFailed)
	})

	switch {
	case err == nil:
		m.state.end(true, last.Errors)
	case errors.Is(err, common.ErrOffline):
		m.state.end(false, allErrors)
	default:
		last.Message = fmt.Sprintf("sync failed after %d attempts", attempt)
		last.Errors = allErrors
		m.state.end(false, allErrors)
	}
	return last
}

// HasPendingWork reports whether any local entries await upload.
func (m *Manager) HasPendingWork(ctx context.Context) (bool, error) {
	pending, err := m.store.ListUnsynced(ctx)
	if err != nil {
		return false, err
	}
	return len(pending) > 0, nil
}

// Status returns a snapshot of the sync state; safe to call concurrently
// with an in-flight round.
func (m *Manager) Status() Snapshot {
	return m.state.Snapshot()
}

// PeriodicHandle stops a periodic sync trigger.
type PeriodicHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels future ticks and waits for the trigger goroutine to exit.
// An in-flight round is not aborted.
func (h *PeriodicHandle) Stop() {
	h.cancel()
	<-h.done
}

// SchedulePeriodic starts a recurring trigger that, on each tick, runs
// SyncWithRetry only when no sync is in flight and pending work exists.
// Ticks that find nothing to do are no-ops.
func (m *Manager) SchedulePeriodic(interval time.Duration) *PeriodicHandle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &PeriodicHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if m.state.Syncing() {
					continue
				}
				pending, err := m.HasPendingWork(ctx)
				if err != nil {
					m.log.Error(ctx, "failed to check pending work", "err", err)
					continue
				}
				if !pending {
					continue
				}
				m.SyncWithRetry(ctx, m.maxAttempts)
			}
		}
	}()
	return h
}
