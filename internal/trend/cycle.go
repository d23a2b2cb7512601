package trend

import (
	"fmt"
	"math"

	"MusicTycoon/internal/clock"
	"MusicTycoon/internal/config"
	"MusicTycoon/internal/model"
	"MusicTycoon/internal/random"
)

// Cycle is the slow genre rotation. One genre is trending at a time and
// releases in it get a discovery bonus of 1 + Multiplier.
type Cycle struct {
	cfg  config.Trend
	rng  random.Source
	sink model.EventSink

	started    bool
	genre      string
	multiplier float64
	period     clock.Accumulator
	lastFrame  uint64
	rotations  int
}

// NewCycle creates a Cycle. It picks its first genre lazily on the first Sample.
func NewCycle(cfg config.Trend, rng random.Source, sink model.EventSink) *Cycle {
	if sink == nil {
		sink = model.DiscardSink{}
	}
	return &Cycle{cfg: cfg, rng: rng, sink: sink, period: clock.NewAccumulator(cfg.PeriodSeconds)}
}

// Sample advances the cycle by the clock's current frame and returns the
// trending multiplier and genre. Within a single frame only the first call
// advances time; later calls return the same answer. The frame that starts
// the cycle counts toward the first period.
func (c *Cycle) Sample(clk *clock.SimulationClock) (float64, string) {
	if !c.started {
		c.started = true
		c.genre = c.pickGenre("")
		c.multiplier = c.rollMultiplier()
	} else if clk.Frame() == c.lastFrame {
		return c.multiplier, c.genre
	}
	c.lastFrame = clk.Frame()

	if c.period.Add(clk.Delta()) {
		c.rotate(clk.Elapsed())
	}
	return c.multiplier, c.genre
}

// Elapsed returns the time accumulated toward the next rotation.
func (c *Cycle) Elapsed() float64 { return c.period.Elapsed() }

// Current returns the trending multiplier and genre without advancing.
// The genre is empty before the first Sample.
func (c *Cycle) Current() (float64, string) {
	return c.multiplier, c.genre
}

// Rotations counts genre changes since the cycle started.
func (c *Cycle) Rotations() int { return c.rotations }

// Bonus returns the discovery multiplier for a release in the given genre.
func (c *Cycle) Bonus(genre string) float64 {
	if c.started && genre == c.genre {
		return 1 + c.multiplier
	}
	return 1
}

func (c *Cycle) rotate(now float64) {
	previous := c.genre
	c.genre = c.pickGenre(previous)
	c.multiplier = c.rollMultiplier()
	c.rotations++
	c.sink.Publish(model.Event{
		Kind: model.EventMarketShift,
		Text: fmt.Sprintf("Market shift: %s is out, %s is trending (+%.0f%% discovery)", previous, c.genre, c.multiplier*100),
		At:   now,
	})
}

// pickGenre draws uniformly, rejecting the excluded genre. A single-genre
// list has nothing else to offer and keeps it.
func (c *Cycle) pickGenre(exclude string) string {
	genres := c.cfg.Genres
	if len(genres) == 0 {
		return ""
	}
	if len(genres) == 1 {
		return genres[0]
	}
	g := genres[c.rng.Int(0, len(genres)-1)]
	for tries := 0; g == exclude && tries < 64; tries++ {
		g = genres[c.rng.Int(0, len(genres)-1)]
	}
	if g == exclude {
		// The source kept answering the same genre; step to the neighbour.
		for i, name := range genres {
			if name == exclude {
				return genres[(i+1)%len(genres)]
			}
		}
	}
	return g
}

func (c *Cycle) rollMultiplier() float64 {
	return math.Max(c.cfg.MinBonus, c.rng.Normal(c.cfg.BonusMean, c.cfg.BonusStdDev))
}
