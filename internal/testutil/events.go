package testutil

import (
	"sync"

	"recmgr/internal/recorded"
)

// EventRecorder is an EventSink that keeps every event it receives.
type EventRecorder struct {
	mu     sync.Mutex
	events []recorded.Event
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) Notify(e recorded.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the received events.
func (r *EventRecorder) Events() []recorded.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded.Event(nil), r.events...)
}

// Kinds returns the kinds of the received events in order.
func (r *EventRecorder) Kinds() []recorded.EventKind {
	var kinds []recorded.EventKind
	for _, e := range r.Events() {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

var _ recorded.EventSink = (*EventRecorder)(nil)
