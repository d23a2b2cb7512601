package notifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"MusicTycoon/internal/model"
)

// exportedSnapshot is the on-disk report shape.
type exportedSnapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Snapshot   *model.Snapshot `json:"snapshot"`
	Events     []model.Event   `json:"events,omitempty"`
	Log        []string        `json:"log,omitempty"` // events as plain lines
}

// ExportSnapshot writes a JSON report of snap and the given events to path.
// The report is for reading by people and tools; sessions never load it.
func ExportSnapshot(path string, snap *model.Snapshot, events []model.Event) error {
	report := exportedSnapshot{
		ExportedAt: time.Now(),
		Snapshot:   snap,
		Events:     events,
	}
	for _, evt := range events {
		report.Log = append(report.Log, FormatEvent(evt))
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
