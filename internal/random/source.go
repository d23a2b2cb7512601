package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source provides every random draw the simulation needs. All methods are
// total over their parameter ranges.
type Source interface {
	// Normal draws from N(mean, stdDev). stdDev <= 0 returns mean.
	Normal(mean, stdDev float64) float64
	// Int returns an integer in [min, max], inclusive.
	Int(min, max int) int
	// Float returns a real in [min, max).
	Float(min, max float64) float64
	// Chance returns true with the given probability.
	Chance(probability float64) bool
}

// Engine is a Source backed by math/rand. It is safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates an Engine. A zero seed picks one from the wall clock.
func NewEngine(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

func (e *Engine) Normal(mean, stdDev float64) float64 {
	if stdDev <= 0 {
		return mean
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return mean + e.rng.NormFloat64()*stdDev
}

func (e *Engine) Int(min, max int) int {
	if max < min {
		min, max = max, min
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return min + e.rng.Intn(max-min+1)
}

func (e *Engine) Float(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return min + e.rng.Float64()*(max-min)
}

func (e *Engine) Chance(probability float64) bool {
	switch {
	case probability <= 0:
		return false
	case probability >= 1:
		return true
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64() < probability
}
