package clock

// SimulationClock is the single owned frame clock shared by the trend cycle
// and the economy tick. Advance it once per frame.
type SimulationClock struct {
	frame   uint64
	elapsed float64
	delta   float64
}

// Advance starts a new frame of dt seconds. Negative dt is treated as zero.
func (c *SimulationClock) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.frame++
	c.delta = dt
	c.elapsed += dt
}

// Frame returns the number of frames advanced so far.
func (c *SimulationClock) Frame() uint64 { return c.frame }

// Delta returns the length of the current frame in seconds.
func (c *SimulationClock) Delta() float64 { return c.delta }

// Elapsed returns total simulated seconds.
func (c *SimulationClock) Elapsed() float64 { return c.elapsed }

// epsilon absorbs float drift when many small frames sum to one period.
const epsilon = 1e-9

// Accumulator fires once each time its accumulated time reaches Period.
// Firing subtracts one period, so overshoot carries into the next cycle.
type Accumulator struct {
	Period  float64
	elapsed float64
}

// NewAccumulator creates an Accumulator with the given period in seconds.
func NewAccumulator(period float64) Accumulator {
	return Accumulator{Period: period}
}

// Add accumulates dt and reports whether the period was reached.
func (a *Accumulator) Add(dt float64) bool {
	if dt > 0 {
		a.elapsed += dt
	}
	return a.consume()
}

// Elapsed returns the time accumulated toward the next fire.
func (a *Accumulator) Elapsed() float64 { return a.elapsed }

func (a *Accumulator) consume() bool {
	if a.Period <= 0 || a.elapsed < a.Period-epsilon {
		return false
	}
	a.elapsed -= a.Period
	if a.elapsed < 0 {
		a.elapsed = 0
	}
	return true
}

// Consume is Add for callers that keep the accumulated time themselves,
// such as the player's reputation timer. It returns the new elapsed value.
func Consume(elapsed, dt, period float64) (float64, bool) {
	a := Accumulator{Period: period, elapsed: elapsed}
	fired := a.Add(dt)
	return a.elapsed, fired
}
