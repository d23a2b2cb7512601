package notifier

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"MusicTycoon/internal/model"
)

func TestEventLog_Bounded(t *testing.T) {
	log := NewEventLog(3)
	for i := 0; i < 5; i++ {
		log.Publish(model.Event{Kind: model.EventInfo, At: float64(i)})
	}
	got := log.Entries()
	if len(got) != 3 {
		t.Fatalf("entries = %d, want 3", len(got))
	}
	if got[0].At != 2 || got[2].At != 4 {
		t.Errorf("kept %v, want the newest three in order", got)
	}
	if log.Dropped() != 2 {
		t.Errorf("dropped = %d, want 2", log.Dropped())
	}

	got[0].Text = "mutated"
	if log.Entries()[0].Text == "mutated" {
		t.Error("Entries should return a copy")
	}
}

func TestEventLog_MinimumLimit(t *testing.T) {
	log := NewEventLog(0)
	log.Publish(model.Event{Text: "a"})
	log.Publish(model.Event{Text: "b"})
	if got := log.Entries(); len(got) != 1 || got[0].Text != "b" {
		t.Errorf("entries = %+v", got)
	}
}

func TestFanout(t *testing.T) {
	a, b := NewEventLog(10), NewEventLog(10)
	Fanout{a, nil, b}.Publish(model.Event{Text: "hello"})
	if len(a.Entries()) != 1 || len(b.Entries()) != 1 {
		t.Error("fanout should reach every sink")
	}
}

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleNotifier(&buf)
	c.Publish(model.Event{Kind: model.EventViral, Text: "went viral", At: 12.5})
	if err := c.Send("report"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "went viral") || !strings.Contains(out, "12.5s") || !strings.Contains(out, "report") {
		t.Errorf("console output = %q", out)
	}
}

func TestFormatSnapshot(t *testing.T) {
	snap := &model.Snapshot{
		At: 125, Frame: 7500, Artist: "The Architect",
		Fans: 1234567, Cash: 98765.4321, Reputation: 2.5,
		Singles: 3, Albums: 1, TotalStreams: 45000,
		TrendGenre: "Jazz", TrendBonus: 1.55,
		Energy: 65, BaseQuality: 42.5,
		Ticks: 625, FansGained: 12000, ViralFans: 1600, FansLost: 300,
	}
	out := FormatSnapshot(snap)
	for _, want := range []string{"The Architect", "2m05s", "1,234,567", "$98,765.43", "Jazz", "45,000",
		"Energy:     65", "base quality 42.5", "fans won 12,000 (viral 1,600) | lost 300 over 625 ticks"} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCatalog(t *testing.T) {
	if out := FormatCatalog(nil); !strings.Contains(out, "No releases") {
		t.Errorf("empty catalog = %q", out)
	}
	out := FormatCatalog([]model.Release{
		{Name: "Small", Kind: model.KindSingle, Earnings: 1},
		{Name: "Big", Kind: model.KindAlbum, Tracks: make([]model.Release, 8), Earnings: 5000},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus two", len(lines))
	}
	if !strings.Contains(lines[1], "Big [8]") || !strings.Contains(lines[1], "$5,000") {
		t.Errorf("best earner should come first: %q", lines[1])
	}
}

func TestExportSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.json")
	snap := &model.Snapshot{Artist: "The Architect", Fans: 42}
	events := []model.Event{{Kind: model.EventViral, Text: "boom", At: 3}}
	if err := ExportSnapshot(path, snap, events); err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var got struct {
		Snapshot model.Snapshot `json:"snapshot"`
		Events   []model.Event  `json:"events"`
		Log      []string       `json:"log"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if got.Snapshot.Fans != 42 || len(got.Events) != 1 || got.Events[0].Kind != model.EventViral {
		t.Errorf("report = %+v", got)
	}
	if len(got.Log) != 1 || got.Log[0] != FormatEvent(events[0]) {
		t.Errorf("log = %q, want the plain event line", got.Log)
	}
}

func TestColorizeEvent_PlainWhenColorDisabled(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	evt := model.Event{Kind: model.EventScandal, Text: "lost fans", At: 61}
	if got, want := ColorizeEvent(evt), FormatEvent(evt); got != want {
		t.Errorf("ColorizeEvent = %q, want %q", got, want)
	}
	if !strings.Contains(FormatEvent(evt), "SCANDAL") {
		t.Errorf("plain line should carry the kind: %q", FormatEvent(evt))
	}
}
