package economy

import (
	"math"

	"MusicTycoon/internal/calculator"
	"MusicTycoon/internal/config"
	"MusicTycoon/internal/model"
)

// minPrice guards the demand ratio against free or negative prices.
const minPrice = 0.01

// Profile returns the tuning for a release kind. Unknown kinds are priced and
// discovered like singles.
func Profile(cfg config.Economy, kind model.Kind) config.ReleaseProfile {
	if kind == model.KindAlbum {
		return cfg.Album
	}
	return cfg.Single
}

// RecommendedPrice is the fair price for a release of the given kind and quality.
func RecommendedPrice(cfg config.Economy, kind model.Kind, quality float64) float64 {
	prof := Profile(cfg, kind)
	return prof.BasePrice + prof.PricePerQuality*calculator.Clamp(quality, 0, 100)
}

// DemandMultiplier punishes overpricing faster than linearly:
// (fair / price) ^ elasticity, clamped to [0, MaxDemandMultiplier].
func DemandMultiplier(cfg config.Economy, fair, price float64) float64 {
	ratio := fair / calculator.Floor(price, minPrice)
	return calculator.Clamp(math.Pow(ratio, cfg.PriceElasticity), 0, cfg.MaxDemandMultiplier)
}

// Retention is the share of listeners who finish the record.
func Retention(quality float64) float64 {
	return calculator.Clamp(quality/10, 0.1, 1.2)
}

// SeedHype is the starting hype for a release put out to the given fanbase.
// Hype past the soft cap grows only logarithmically.
func SeedHype(cfg config.Economy, kind model.Kind, fans int) float64 {
	raw := 1 + float64(max(fans, 0))*Profile(cfg, kind).SeedHypePerFan
	if cfg.HypeSoftCap > 0 && raw > cfg.HypeSoftCap {
		raw = cfg.HypeSoftCap + math.Log1p(raw-cfg.HypeSoftCap)
	}
	return raw
}

// Decay is the per-tick hype multiplier. Strong releases fade slower.
func Decay(cfg config.Economy, kind model.Kind, quality float64) float64 {
	prof := Profile(cfg, kind)
	if quality > cfg.DecayQualityThreshold {
		return prof.DecayHigh
	}
	return prof.DecayLow
}
