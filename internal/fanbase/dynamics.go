package fanbase

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"MusicTycoon/internal/calculator"
	"MusicTycoon/internal/config"
	"MusicTycoon/internal/model"
	"MusicTycoon/internal/random"
)

// Input is one release's performance for a single economy tick.
type Input struct {
	Title   string
	Streams int
	Quality float64
	Hype    float64
	At      float64 // simulated seconds, stamped on events
}

// Result reports how the fanbase moved.
type Result struct {
	Gained int
	Viral  int
	Lost   int
}

// Net is the signed fan change.
func (r Result) Net() int { return r.Gained + r.Viral - r.Lost }

// Model converts listeners into fans and loses some along the way.
type Model struct {
	cfg           config.Fanbase
	reputationCap float64
	rng           random.Source
	sink          model.EventSink
}

// NewModel creates a Model. reputationCap scales the loyalty discount on churn.
func NewModel(cfg config.Fanbase, reputationCap float64, rng random.Source, sink model.EventSink) *Model {
	if sink == nil {
		sink = model.DiscardSink{}
	}
	return &Model{cfg: cfg, reputationCap: reputationCap, rng: rng, sink: sink}
}

// Update applies one release's tick to the player's fan count.
func (m *Model) Update(p *model.Player, in Input) Result {
	var res Result
	if in.Streams <= 0 {
		return res
	}

	expected := float64(in.Streams) *
		m.cfg.BaseConversionRate *
		m.QualityFactor(in.Quality) *
		math.Max(m.cfg.HypeFloor, in.Hype) *
		m.Saturation(p.Fans)
	res.Gained = m.roundProbabilistic(expected)

	if m.viralEligible(in) && m.rng.Chance(m.cfg.ViralChancePerHype*in.Hype) {
		spike := int(float64(in.Streams) * (in.Quality / 100) * m.cfg.ViralStreamMultiplier)
		if spike < 1 {
			spike = 1
		}
		res.Viral = spike
		m.sink.Publish(model.Event{
			Kind: model.EventViral,
			Text: fmt.Sprintf("%q went viral! +%s fans", in.Title, humanize.Comma(int64(spike))),
			At:   in.At,
		})
	}

	res.Lost = int(float64(p.Fans) * m.ChurnRate(in.Quality, in.Hype, p.Reputation))

	p.AddFans(res.Net())
	return res
}

// QualityFactor is zero up to the quality threshold and grows super-linearly
// above it, so great material converts far better than average material.
func (m *Model) QualityFactor(q float64) float64 {
	if q <= m.cfg.QualityThreshold {
		return 0
	}
	span := calculator.Floor(100-m.cfg.QualityThreshold, 0.01)
	x := calculator.Clamp((q-m.cfg.QualityThreshold)/span, 0, 1)
	return m.cfg.QualityScale * math.Pow(x, m.cfg.QualityExponent)
}

// Saturation damps growth logarithmically as the fanbase grows. Always in
// [SaturationFloor, 1].
func (m *Model) Saturation(fans int) float64 {
	if fans <= 0 {
		return 1
	}
	pivot := calculator.Floor(m.cfg.SaturationPivot, 1)
	s := 1 / (1 + math.Log10(1+float64(fans)/pivot))
	return calculator.Clamp(s, m.cfg.SaturationFloor, 1)
}

// ChurnRate is the per-tick fraction of fans lost to one release. Bad music
// and forgotten releases leak fans; reputation buys loyalty, up to a bound.
func (m *Model) ChurnRate(q, hype, reputation float64) float64 {
	rate := m.cfg.ChurnBase
	if q < m.cfg.LowQualityThreshold {
		rate += m.cfg.ChurnLowQuality
	}
	if hype < m.cfg.LowHypeThreshold {
		rate += m.cfg.ChurnLowHype
	}
	return rate * m.Loyalty(reputation)
}

// Loyalty is the churn multiplier for a reputation, in [1-MaxLoyaltyReduction, 1].
func (m *Model) Loyalty(reputation float64) float64 {
	share := calculator.Clamp(reputation/calculator.Floor(m.reputationCap, 0.01), 0, 1)
	return 1 - m.cfg.MaxLoyaltyReduction*share
}

func (m *Model) viralEligible(in Input) bool {
	return in.Quality >= m.cfg.ViralMinQuality && in.Hype >= m.cfg.ViralMinHype
}

// roundProbabilistic truncates x and adds one with probability equal to the
// remainder, so fractional fans are not lost over many ticks.
func (m *Model) roundProbabilistic(x float64) int {
	if x <= 0 {
		return 0
	}
	whole := math.Floor(x)
	n := int(whole)
	if frac := x - whole; frac > 0 && m.rng.Chance(frac) {
		n++
	}
	return n
}
