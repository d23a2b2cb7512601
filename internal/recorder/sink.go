package recorder

import (
	"log"

	"MusicTycoon/internal/model"
)

// Sink adapts a Recorder to an event sink. Write failures are logged and
// swallowed so a broken database never stalls the simulation.
type Sink struct {
	rec Recorder
}

// NewSink wraps rec.
func NewSink(rec Recorder) *Sink { return &Sink{rec: rec} }

// Publish records evt.
func (s *Sink) Publish(evt model.Event) {
	if err := s.rec.RecordEvent(evt); err != nil {
		log.Printf("[ERROR] failed to record %s event: %v", evt.Kind, err)
	}
}
