package notifier

import (
	"sync"

	"MusicTycoon/internal/model"
)

// EventLog keeps the most recent events in memory, oldest first.
type EventLog struct {
	mu      sync.Mutex
	entries []model.Event
	limit   int
	dropped int
}

// NewEventLog creates a log holding at most limit events. A limit below one
// keeps a single event.
func NewEventLog(limit int) *EventLog {
	if limit < 1 {
		limit = 1
	}
	return &EventLog{limit: limit, entries: make([]model.Event, 0, limit)}
}

// Publish appends evt, evicting the oldest entry when full.
func (l *EventLog) Publish(evt model.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.limit-1]
		l.dropped++
	}
	l.entries = append(l.entries, evt)
}

// Entries returns a copy of the retained events.
func (l *EventLog) Entries() []model.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Event, len(l.entries))
	copy(out, l.entries)
	return out
}

// Dropped counts events evicted to stay within the limit.
func (l *EventLog) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Fanout forwards every event to each of its sinks in order.
type Fanout []model.EventSink

func (f Fanout) Publish(evt model.Event) {
	for _, s := range f {
		if s != nil {
			s.Publish(evt)
		}
	}
}
