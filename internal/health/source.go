package health

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SourceState is the outcome of the most recent data fetch.
type SourceState string

const (
	SourceUnknown  SourceState = "unknown"
	SourceOK       SourceState = "ok"
	SourceFallback SourceState = "fallback"
	SourceFailed   SourceState = "failed"
)

// SourceTracker remembers the last fetch outcome of a data source.
type SourceTracker struct {
	mu    sync.RWMutex
	state SourceState
	at    time.Time
	err   string
	now   func() time.Time
}

// NewSourceTracker creates a tracker in the unknown state.
func NewSourceTracker() *SourceTracker {
	return &SourceTracker{state: SourceUnknown, now: time.Now}
}

// Record stores a fetch outcome.
func (t *SourceTracker) Record(state SourceState, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
	t.at = t.now()
	t.err = ""
	if err != nil {
		t.err = err.Error()
	}
}

// State returns the last recorded outcome.
func (t *SourceTracker) State() SourceState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Ready implements ReadyFunc. A snapshot from the API or the fallback file is enough.
func (t *SourceTracker) Ready() bool {
	switch t.State() {
	case SourceOK, SourceFallback:
		return true
	default:
		return false
	}
}

// Check implements CheckFunc. Only a failed fetch is unhealthy.
func (t *SourceTracker) Check(_ context.Context) (bool, string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	switch t.state {
	case SourceUnknown:
		return true, "no fetch yet"
	case SourceFailed:
		return false, fmt.Sprintf("failed at %s: %s", t.at.UTC().Format(time.RFC3339), t.err)
	default:
		return true, fmt.Sprintf("%s at %s", t.state, t.at.UTC().Format(time.RFC3339))
	}
}
