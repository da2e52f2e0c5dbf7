// Package recording tracks in-progress recordings by reservation id.
package recording

import (
	"fmt"
	"sort"
	"sync"

	"recmgr/internal/recorded"
)

// StopFunc halts a recording. force skips any graceful finalisation.
type StopFunc func(force bool) error

// Registry implements recorded.RecordingController over an in-process table
// of active reservations. It is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	active map[string]StopFunc
	logger recorded.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger recorded.Logger) *Registry {
	return &Registry{
		active: make(map[string]StopFunc),
		logger: logger,
	}
}

// Track registers an active recording. A nil stop is allowed for recordings
// that need no teardown. Tracking an id again replaces its StopFunc.
func (r *Registry) Track(reserveID string, stop StopFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[reserveID] = stop
}

// HasReserve reports whether a recording is active for the reservation.
func (r *Registry) HasReserve(reserveID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[reserveID]
	return ok
}

// Cancel stops and forgets the recording for the reservation.
func (r *Registry) Cancel(reserveID string, force bool) error {
	r.mu.Lock()
	stop, ok := r.active[reserveID]
	if ok {
		delete(r.active, reserveID)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", recorded.ErrReserveNotFound, reserveID)
	}

	r.logger.Info("cancelling recording", "reserve_id", reserveID, "force", force)
	if stop == nil {
		return nil
	}
	// Stop runs outside the lock; it may block on the recorder.
	if err := stop(force); err != nil {
		return fmt.Errorf("stopping recording %s: %w", reserveID, err)
	}
	return nil
}

// Active returns the tracked reservation ids in sorted order.
func (r *Registry) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.active))
	for id := range r.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var _ recorded.RecordingController = (*Registry)(nil)
