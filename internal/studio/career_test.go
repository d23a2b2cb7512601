package studio

import (
	"errors"
	"math"
	"testing"

	"MusicTycoon/internal/config"
	"MusicTycoon/internal/model"
	"MusicTycoon/internal/random"
)

func TestStudy(t *testing.T) {
	s, sink, _ := newStudio(t)
	before := s.BaseQuality()

	level, err := s.Study("Voice")
	if err != nil {
		t.Fatalf("Study: %v", err)
	}
	if math.Abs(level-30.1) > 1e-9 {
		t.Errorf("Voice = %f, want 30.1", level)
	}
	if s.BaseQuality() <= before {
		t.Errorf("base quality %f did not grow from %f", s.BaseQuality(), before)
	}
	if p := s.Player(); p.Cash != config.Default().Player.Cash {
		t.Errorf("study cost money: cash %f", p.Cash)
	}
	if len(sink.kinds(model.EventInfo)) != 1 {
		t.Errorf("expected one info event, got %+v", sink.events)
	}

	if _, err := s.Study("Juggling"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("unknown skill err = %v", err)
	}
}

func TestStudy_CappedAtMaxSkill(t *testing.T) {
	cfg := config.Default()
	cfg.Player.Skills = map[string]float64{"Voice": 99.95}
	s := New(cfg, &random.Stub{}, nil, nil)
	if level, _ := s.Study("Voice"); level != cfg.Career.MaxSkill {
		t.Errorf("Voice = %f, want cap %f", level, cfg.Career.MaxSkill)
	}
}

func TestUpgrade(t *testing.T) {
	s, _, _ := newStudio(t) // starts with $50

	level, err := s.Upgrade(UpgradeSkill, "Mixing", "COURSE")
	if err != nil {
		t.Fatalf("Upgrade course: %v", err)
	}
	if level != 11 {
		t.Errorf("Mixing = %f, want 11", level)
	}
	if p := s.Player(); p.Cash != 0 {
		t.Errorf("cash = %f, want 0 after a $50 course", p.Cash)
	}

	tests := []struct {
		name       string
		kind       UpgradeKind
		item, tier string
		want       error
	}{
		{"broke", UpgradeSkill, "Mixing", "mentor", ErrInsufficientFunds},
		{"broke tool", UpgradeTool, "Mic", "minor", ErrInsufficientFunds},
		{"unknown tier", UpgradeSkill, "Mixing", "platinum", ErrUnknownTier},
		{"skill tier on tool", UpgradeTool, "Mic", "course", ErrUnknownTier},
		{"unknown tool", UpgradeTool, "Theremin", "minor", ErrUnknownItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Upgrade(tt.kind, tt.item, tt.tier); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	p := s.Player()
	if p.Skills["Mixing"] != 11 || p.Tools["Mic"] != config.Default().Player.Tools["Mic"] {
		t.Errorf("failed upgrades changed levels: %+v %+v", p.Skills, p.Tools)
	}
}

func TestUpgrade_ToolRaisesBaseQuality(t *testing.T) {
	cfg := config.Default()
	cfg.Player.Cash = 1000
	s := New(cfg, &random.Stub{}, nil, nil)
	before := s.BaseQuality()

	level, err := s.Upgrade(UpgradeTool, "Mic", "major")
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if math.Abs(level-4.5) > 1e-9 {
		t.Errorf("Mic = %f, want 4.5", level)
	}
	if s.BaseQuality() <= before {
		t.Errorf("base quality %f did not grow from %f", s.BaseQuality(), before)
	}
	if snap := s.Snapshot(); snap.Cash != 500 || snap.BaseQuality != s.BaseQuality() {
		t.Errorf("snapshot cash=%f base=%f", snap.Cash, snap.BaseQuality)
	}
}

func TestBusk(t *testing.T) {
	s, sink, _ := newStudio(t)

	if _, err := s.Busk(20); !errors.Is(err, ErrBuskTooShort) {
		t.Fatalf("short busk err = %v", err)
	}
	if p := s.Player(); p.Energy != 100 || p.Cash != 50 {
		t.Fatalf("rejected busk changed player: energy %f cash %f", p.Energy, p.Cash)
	}

	// 75 minutes rounds down to the hour slot; the stub's luck is the minimum.
	earned, err := s.Busk(75)
	if err != nil {
		t.Fatalf("Busk: %v", err)
	}
	if math.Abs(earned-12) > 1e-9 {
		t.Errorf("earned = %f, want 12", earned)
	}
	if _, err := s.Busk(500); err != nil {
		t.Fatalf("Busk: %v", err)
	}
	p := s.Player()
	if p.Energy != 65 {
		t.Errorf("energy = %f, want 65", p.Energy)
	}
	if math.Abs(p.Cash-86) > 1e-9 {
		t.Errorf("cash = %f, want 86", p.Cash)
	}
	if len(sink.kinds(model.EventInfo)) != 2 {
		t.Errorf("info events = %d, want 2", len(sink.kinds(model.EventInfo)))
	}
}

func TestBusk_TiredThenRest(t *testing.T) {
	cfg := config.Default()
	cfg.Career.StartEnergy = 3
	s := New(cfg, &random.Stub{}, nil, nil)

	if _, err := s.Busk(30); !errors.Is(err, ErrNotEnoughEnergy) {
		t.Fatalf("tired busk err = %v", err)
	}
	if got := s.Rest(); got != cfg.Career.MaxEnergy {
		t.Errorf("energy after rest = %f, want %f", got, cfg.Career.MaxEnergy)
	}
	if _, err := s.Busk(30); err != nil {
		t.Errorf("rested busk: %v", err)
	}
}

func trainingConfig() *config.Config {
	cfg := config.Default()
	cfg.Autopilot.SingleEverySeconds = 0
	cfg.Autopilot.AlbumEverySeconds = 0
	cfg.Autopilot.TrainEverySeconds = 1
	cfg.Autopilot.CashReserve = 25
	return cfg
}

func TestAutopilot_Trains(t *testing.T) {
	cfg := trainingConfig()
	s := New(cfg, &random.Stub{}, nil, nil)
	pilot := NewAutopilot(cfg.Autopilot, cfg.Trend.Genres, s, &random.Stub{})

	// Skill turns study for free since a course would dip into the reserve.
	// Gear turns buy the $10 tier twice, then busk once cash runs low.
	for i := 0; i < 6; i++ {
		if err := pilot.Step(1); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	p := s.Player()
	for _, skill := range []string{"Mastering", "Mixing", "Producing"} {
		if math.Abs(p.Skills[skill]-10.1) > 1e-9 {
			t.Errorf("%s = %f, want 10.1", skill, p.Skills[skill])
		}
	}
	for _, tool := range []string{"Audio Editor", "Computer"} {
		if math.Abs(p.Tools[tool]-1.3) > 1e-9 {
			t.Errorf("%s = %f, want 1.3", tool, p.Tools[tool])
		}
	}
	if math.Abs(p.Cash-54) > 1e-9 {
		t.Errorf("cash = %f, want 54", p.Cash)
	}
	if p.Energy != 75 {
		t.Errorf("energy = %f, want 75 after a two-hour busk", p.Energy)
	}
	if len(s.Vault()) != 0 {
		t.Error("training should not record songs")
	}
}

func TestAutopilot_RestsWhenExhausted(t *testing.T) {
	cfg := trainingConfig()
	cfg.Autopilot.CashReserve = 50
	cfg.Career.StartEnergy = 0
	s := New(cfg, &random.Stub{}, nil, nil)
	pilot := NewAutopilot(cfg.Autopilot, cfg.Trend.Genres, s, &random.Stub{})

	for i := 0; i < 2; i++ {
		if err := pilot.Step(1); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if p := s.Player(); p.Energy != cfg.Career.MaxEnergy || p.Cash != cfg.Player.Cash {
		t.Errorf("energy = %f cash = %f, want a rest and no spending", p.Energy, p.Cash)
	}
}

func TestWeakest(t *testing.T) {
	if _, ok := weakest(nil); ok {
		t.Error("empty map has no weakest entry")
	}
	name, _ := weakest(map[string]float64{"b": 1, "a": 1, "c": 2})
	if name != "a" {
		t.Errorf("weakest = %q, want a on a tie", name)
	}
}
