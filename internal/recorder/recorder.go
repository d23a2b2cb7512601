package recorder

import (
	"fmt"
	"log"

	"MusicTycoon/internal/config"
	"MusicTycoon/internal/model"
)

// Recorder persists session history for later analysis. It is an analytics
// trail, not a save file: nothing is ever loaded back into a session.
type Recorder interface {
	RecordEvent(evt model.Event) error
	RecordSnapshot(snap *model.Snapshot) error
	RecordRetirement(rel *model.Release, at float64) error
	Close() error
}

// New opens the recorder selected by the database config.
func New(cfg *config.Config) (Recorder, error) {
	switch Dialect(cfg.Database.Dialect) {
	case "", DialectNone:
		log.Println("[INFO] history recording disabled")
		return NewNoopRecorder(), nil
	case DialectSQLite:
		return NewSQLiteRecorder(cfg.Database.SQLitePath)
	case DialectPostgres:
		return NewPostgresRecorder(cfg.Database.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", cfg.Database.Dialect)
	}
}
