package recorder

import "MusicTycoon/internal/model"

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvent(_ model.Event) error                  { return nil }
func (n *NoopRecorder) RecordSnapshot(_ *model.Snapshot) error           { return nil }
func (n *NoopRecorder) RecordRetirement(_ *model.Release, _ float64) error { return nil }
func (n *NoopRecorder) Close() error                                     { return nil }
