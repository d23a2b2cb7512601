package quality

import (
	"math"

	"MusicTycoon/internal/calculator"
	"MusicTycoon/internal/random"
)

const (
	// FloorQuality is what an unskilled artist produces: noise.
	FloorQuality = 5.0

	toolSaturation = 12.0 // tool log-sum that counts as a fully equipped studio
	toolBonusMax   = 5.0

	luckStdDev        = 5.0
	breakoutMinBase   = 20.0
	breakoutRollAbove = 99.0 // out of 100, so about 1%
	breakoutBonus     = 20.0
)

// skillWeights favours the artist's best skills: primary talent over support.
var skillWeights = []float64{0.50, 0.30, 0.20}

// ComputeBaseQuality is the deterministic recording quality for the given
// skills (0~100) and studio tools. It is the preview value and the mean of
// RollRecordedQuality. Result lies in [5,100].
func ComputeBaseQuality(skills, tools map[string]float64) float64 {
	if len(skills) == 0 {
		return FloorQuality
	}

	levels := make([]float64, 0, len(skills))
	for _, v := range skills {
		levels = append(levels, v)
	}
	power := skillPower(calculator.SortedDescending(levels))
	factor := toolFactor(tools)

	// Cheap gear caps what even a great artist can get on tape.
	studioCeiling := 0.70 + 0.30*factor
	base := power*studioCeiling + toolBonusMax*factor

	return calculator.Clamp(base, FloorQuality, 100)
}

// skillPower is the top-heavy weighted sum of the best three skills,
// renormalized when fewer than three exist.
func skillPower(sorted []float64) float64 {
	power, weight := 0.0, 0.0
	for i := 0; i < len(sorted) && i < len(skillWeights); i++ {
		power += sorted[i] * skillWeights[i]
		weight += skillWeights[i]
	}
	if weight == 0 {
		return 0
	}
	return power / weight
}

// toolFactor maps tool levels onto [0,1]. The log makes the first upgrade
// matter far more than the last.
func toolFactor(tools map[string]float64) float64 {
	terms := make([]float64, 0, len(tools))
	for _, level := range tools {
		terms = append(terms, math.Log1p(math.Max(0, level)*10))
	}
	return calculator.Clamp(calculator.SumSorted(terms)/toolSaturation, 0, 1)
}

// RollRecordedQuality adds take-to-take luck to a base quality. Call it once
// per recording; the result is stored and never rerolled. Result lies in [1,100].
func RollRecordedQuality(rng random.Source, base float64) float64 {
	q := base + rng.Normal(0, luckStdDev)

	// Breakout takes only happen to material that is already decent.
	if base > breakoutMinBase && rng.Float(0, 100) > breakoutRollAbove {
		q += breakoutBonus
	}

	return calculator.Clamp(q, 1, 100)
}
