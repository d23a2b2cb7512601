package quality

import (
	"math"

	"MusicTycoon/internal/calculator"
)

const (
	rankDecay       = 0.85
	rankWeightFloor = 0.25

	cohesionTightStdDev = 5.0
	cohesionBonus       = 2.0
	cohesionLooseStdDev = 15.0
	cohesionPenaltyRate = 0.25
	cohesionFullWeight  = 60.0 // baseline at which cohesion counts in full

	fillerMinTracks     = 4
	fillerMinBaseline   = 40.0
	fillerRatio         = 0.6
	fillerShareRequired = 0.25
	fillerPenaltyEach   = 2.0

	softCapStart = 90.0
	softCapRate  = 0.5
)

// AggregateAlbumQuality combines track qualities into one album quality.
// Order does not matter. Empty input yields 0, anything else lies in [1,100].
func AggregateAlbumQuality(tracks []float64) float64 {
	if len(tracks) == 0 {
		return 0
	}

	sorted := calculator.SortedDescending(tracks)
	base := rankWeightedMean(sorted)

	final := base +
		cohesionModifier(base, calculator.SampleStdDev(sorted)) +
		lengthBonus(len(sorted)) -
		fillerPenalty(base, sorted)

	if final > softCapStart {
		final = softCapStart + (final-softCapStart)*softCapRate
	}
	return calculator.Clamp(final, 1, 100)
}

// rankWeightedMean weights the i-th best track by 0.85^i, floored at a quarter.
// Strong lead tracks carry the album; the tail still counts.
func rankWeightedMean(sorted []float64) float64 {
	sum, total := 0.0, 0.0
	for i, q := range sorted {
		w := math.Max(rankWeightFloor, math.Pow(rankDecay, float64(i)))
		sum += q * w
		total += w
	}
	return sum / calculator.Floor(total, 0.01)
}

// cohesionModifier rewards consistent albums and punishes disjointed ones.
// Its impact shrinks for low-quality albums: a consistent 15 is still a 15.
func cohesionModifier(base, stdev float64) float64 {
	var mod float64
	switch {
	case stdev < cohesionTightStdDev:
		mod = cohesionBonus
	case stdev > cohesionLooseStdDev:
		mod = -(stdev - cohesionLooseStdDev) * cohesionPenaltyRate
	}
	return mod * calculator.Clamp(base/cohesionFullWeight, 0, 1)
}

// fillerPenalty charges for tracks well below the album's own baseline, but
// only on albums that claim to be decent.
func fillerPenalty(base float64, sorted []float64) float64 {
	if len(sorted) < fillerMinTracks || base <= fillerMinBaseline {
		return 0
	}
	threshold := base * fillerRatio
	count := 0
	for _, q := range sorted {
		if q < threshold {
			count++
		}
	}
	if float64(count) < float64(len(sorted))*fillerShareRequired {
		return 0
	}
	return float64(count) * fillerPenaltyEach
}

func lengthBonus(n int) float64 {
	switch {
	case n >= 14:
		return 3.5
	case n >= 10:
		return 2.0
	}
	return 0
}
