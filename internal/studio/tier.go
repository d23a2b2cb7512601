package studio

// Tiers maps fan counts to a career stage, highest first.
var Tiers = []struct {
	MinFans int
	Label   string
}{
	{1_000_000, "Superstar"},
	{250_000, "Headliner"},
	{50_000, "Touring Act"},
	{10_000, "Rising Star"},
	{1_000, "Local Favourite"},
	{100, "Garage Band"},
}

// DefaultTier is the stage below every threshold.
const DefaultTier = "Unknown"

// TierFor maps a fan count to a career stage.
func TierFor(fans int) string {
	for _, t := range Tiers {
		if fans >= t.MinFans {
			return t.Label
		}
	}
	return DefaultTier
}
