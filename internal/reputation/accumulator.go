package reputation

import (
	"MusicTycoon/internal/calculator"
	"MusicTycoon/internal/clock"
	"MusicTycoon/internal/config"
	"MusicTycoon/internal/model"
)

// Accumulator recomputes reputation on its own slow cadence, independent of
// the economy tick. The elapsed time lives on the player.
type Accumulator struct {
	cfg config.Reputation
}

// NewAccumulator creates an Accumulator.
func NewAccumulator(cfg config.Reputation) *Accumulator {
	return &Accumulator{cfg: cfg}
}

// Advance accumulates dt and, once a period has passed, recomputes the
// player's reputation from the catalog. It reports whether a recomputation ran.
func (a *Accumulator) Advance(p *model.Player, songs, albums []*model.Release, dt float64) bool {
	elapsed, fired := clock.Consume(p.ReputationElapsed, dt, a.cfg.PeriodSeconds)
	p.ReputationElapsed = elapsed
	if !fired {
		return false
	}
	p.Reputation = a.Score(songs, albums)
	return true
}

// Score is the critical reception of a catalog: total quality over the
// divisor, clamped to [0, Cap].
func (a *Accumulator) Score(songs, albums []*model.Release) float64 {
	if len(songs) == 0 && len(albums) == 0 {
		return 0
	}
	qualities := make([]float64, 0, len(songs)+len(albums))
	for _, r := range songs {
		qualities = append(qualities, r.Quality)
	}
	for _, r := range albums {
		qualities = append(qualities, r.Quality)
	}
	total := calculator.SumSorted(qualities)
	return calculator.Clamp(total/calculator.Floor(a.cfg.QualityDivisor, 0.01), 0, a.cfg.Cap)
}
