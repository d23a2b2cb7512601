package economy

import (
	"MusicTycoon/internal/calculator"
	"MusicTycoon/internal/clock"
	"MusicTycoon/internal/config"
	"MusicTycoon/internal/fanbase"
	"MusicTycoon/internal/model"
	"MusicTycoon/internal/random"
	"MusicTycoon/internal/trend"
)

// TickReport sums one economy tick across the catalog.
type TickReport struct {
	Streams    int
	Sales      int
	Revenue    float64
	FansGained int
	FansLost   int
	Viral      int
}

// Add folds o into r.
func (r *TickReport) Add(o TickReport) {
	r.Streams += o.Streams
	r.Sales += o.Sales
	r.Revenue += o.Revenue
	r.FansGained += o.FansGained
	r.FansLost += o.FansLost
	r.Viral += o.Viral
}

// Engine runs the fixed-rate market tick over a catalog of releases.
type Engine struct {
	cfg   config.Economy
	rng   random.Source
	sink  model.EventSink
	trend *trend.Cycle
	fans  *fanbase.Model

	tick  clock.Accumulator
	ticks int
	last  TickReport
}

// NewEngine wires the tick to its trend cycle and fanbase model.
func NewEngine(cfg config.Economy, rng random.Source, sink model.EventSink, cycle *trend.Cycle, fans *fanbase.Model) *Engine {
	if sink == nil {
		sink = model.DiscardSink{}
	}
	return &Engine{
		cfg:   cfg,
		rng:   rng,
		sink:  sink,
		trend: cycle,
		fans:  fans,
		tick:  clock.NewAccumulator(cfg.TickSeconds),
	}
}

// Advance ages every release by the clock's delta, samples the trend once,
// and runs the tick body when the tick accumulator fires. It reports whether
// a tick ran.
func (e *Engine) Advance(clk *clock.SimulationClock, songs, albums []*model.Release, p *model.Player) bool {
	if len(songs) == 0 && len(albums) == 0 {
		return false
	}

	dt := clk.Delta()
	for _, r := range songs {
		r.Age += dt
	}
	for _, r := range albums {
		r.Age += dt
	}

	// Sampled here, once, so a rotation cannot land halfway through the catalog.
	e.trend.Sample(clk)

	if !e.tick.Add(dt) {
		return false
	}

	now := clk.Elapsed()
	report := TickReport{}
	daily := 0
	for _, list := range [][]*model.Release{songs, albums} {
		for _, r := range list {
			e.perform(r, p, now, &report)
			daily += r.DailyStreams
		}
	}
	report.FansLost += e.globalChurn(p, daily, now)

	e.ticks++
	e.last = report
	return true
}

// perform is one release's share of a tick.
func (e *Engine) perform(r *model.Release, p *model.Player, now float64, report *TickReport) {
	if r.Dead(e.cfg.DeadHypeThreshold) {
		r.DailyStreams = 0
		return
	}
	prof := Profile(e.cfg, r.Kind)

	demand := DemandMultiplier(e.cfg, RecommendedPrice(e.cfg, r.Kind, r.Quality), r.Price)
	trendBonus := e.trend.Bonus(r.Genre)
	listeners := calculator.Floor(
		(e.rng.Normal(prof.DiscoveryMean, prof.DiscoveryStdDev)+float64(p.Fans)*prof.FanReach)*r.Hype, 0)
	boost := 1 + e.cfg.ReputationStreamBoost*calculator.Floor(p.Reputation, 0)

	streams := int(listeners * Retention(r.Quality) * demand * trendBonus * boost)
	sales := max(0, int(float64(streams)*prof.SaleRate*demand*r.Quality/10))
	revenue := float64(streams)*e.cfg.StreamPayoutRate + float64(sales)*r.Price

	r.DailyStreams = streams
	r.TotalStreams += streams
	r.TotalSales += sales
	r.Earnings += revenue
	p.Cash += revenue

	res := e.fans.Update(p, fanbase.Input{
		Title:   r.Name,
		Streams: streams,
		Quality: r.Quality,
		Hype:    r.Hype,
		At:      now,
	})

	r.Hype = calculator.Floor(r.Hype*Decay(e.cfg, r.Kind, r.Quality), 0)

	report.Streams += streams
	report.Sales += sales
	report.Revenue += revenue
	report.FansGained += res.Gained
	report.Viral += res.Viral
	report.FansLost += res.Lost
}

// RecommendedPrice is the fair price under this engine's tuning.
func (e *Engine) RecommendedPrice(kind model.Kind, quality float64) float64 {
	return RecommendedPrice(e.cfg, kind, quality)
}

// SeedHype is the starting hype under this engine's tuning.
func (e *Engine) SeedHype(kind model.Kind, fans int) float64 {
	return SeedHype(e.cfg, kind, fans)
}

// Lifetime is how long a release of the given kind stays in the catalog.
func (e *Engine) Lifetime(kind model.Kind) float64 {
	return Profile(e.cfg, kind).LifetimeSeconds
}

// Ticks counts tick bodies run since creation.
func (e *Engine) Ticks() int { return e.ticks }

// LastTick returns the totals of the most recent tick.
func (e *Engine) LastTick() TickReport { return e.last }

// Trend exposes the engine's trend cycle for display.
func (e *Engine) Trend() *trend.Cycle { return e.trend }
