package model

// EventKind classifies a log line produced by the simulation.
type EventKind string

const (
	EventViral       EventKind = "VIRAL"
	EventScandal     EventKind = "SCANDAL"
	EventMarketShift EventKind = "MARKET_SHIFT"
	EventRelease     EventKind = "RELEASE"
	EventRetired     EventKind = "RETIRED"
	EventInfo        EventKind = "INFO"
)

// Event is a short human-readable line for the event log.
type Event struct {
	Kind EventKind `json:"kind"`
	Text string    `json:"text"`
	At   float64   `json:"at"` // simulated seconds
}

// EventSink receives events as the simulation produces them.
type EventSink interface {
	Publish(evt Event)
}

// DiscardSink drops every event.
type DiscardSink struct{}

func (DiscardSink) Publish(Event) {}
