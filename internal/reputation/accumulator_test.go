package reputation

import (
	"math"
	"testing"

	"MusicTycoon/internal/config"
	"MusicTycoon/internal/model"
)

func releases(qs ...float64) []*model.Release {
	out := make([]*model.Release, len(qs))
	for i, q := range qs {
		out[i] = &model.Release{Quality: q}
	}
	return out
}

func TestAdvance_FiresEveryPeriod(t *testing.T) {
	a := NewAccumulator(config.Default().Reputation)
	p := &model.Player{}
	songs := releases(80, 70)

	if a.Advance(p, songs, nil, 4.9) {
		t.Fatal("fired before the period")
	}
	if p.Reputation != 0 {
		t.Errorf("reputation changed early: %f", p.Reputation)
	}
	if !a.Advance(p, songs, nil, 0.2) {
		t.Fatal("expected fire at 5.1s")
	}
	if math.Abs(p.Reputation-1.5) > 1e-12 {
		t.Errorf("reputation = %f, want 1.5", p.Reputation)
	}
	if math.Abs(p.ReputationElapsed-0.1) > 1e-9 {
		t.Errorf("overshoot = %f, want 0.1", p.ReputationElapsed)
	}
}

func TestAdvance_SmallStepsPreserveOvershoot(t *testing.T) {
	a := NewAccumulator(config.Default().Reputation)
	p := &model.Player{}
	fires := 0
	for i := 0; i < 600; i++ { // 60 seconds at 0.1s
		if a.Advance(p, releases(50), nil, 0.1) {
			fires++
		}
	}
	if fires != 12 {
		t.Errorf("fires = %d, want 12", fires)
	}
}

func TestScore(t *testing.T) {
	a := NewAccumulator(config.Default().Reputation)
	tests := []struct {
		name   string
		songs  []*model.Release
		albums []*model.Release
		want   float64
	}{
		{"empty catalog", nil, nil, 0},
		{"songs only", releases(60, 40), nil, 1},
		{"songs and albums", releases(90), releases(85), 1.75},
		{"capped", releases(100, 100, 100, 100, 100, 100), releases(100), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Score(tt.songs, tt.albums); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Score = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAdvance_EmptyCatalogResetsReputation(t *testing.T) {
	a := NewAccumulator(config.Default().Reputation)
	p := &model.Player{Reputation: 3}
	if !a.Advance(p, nil, nil, 5) {
		t.Fatal("expected fire")
	}
	if p.Reputation != 0 {
		t.Errorf("reputation = %f, want 0", p.Reputation)
	}
}
