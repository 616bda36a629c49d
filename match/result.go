package match

import (
	"math"

	"github.com/suiamor/alignd/core"
)

// formatResults converts tier candidates into the output shape.
// Confidence is monotonic within a tier: exact hits are always 1.0,
// axis confidence decays linearly with distance down to a 0.5 floor,
// and the Tier-3 paths carry a fixed 0.5.
func formatResults(candidates []candidate, tier core.MatchTier) []core.MatchResult {
	results := make([]core.MatchResult, len(candidates))
	for i, c := range candidates {
		results[i] = core.MatchResult{
			ID:          c.alignment.ID,
			Type:        c.alignment.Type,
			Title:       c.alignment.Title,
			Description: c.alignment.Description,
			MatchTier:   tier,
			Confidence:  roundTo(confidence(tier, c.distance), 2),
			Distance:    roundTo(c.distance, 3),
		}
	}
	return results
}

func confidence(tier core.MatchTier, distance float64) float64 {
	switch tier {
	case core.TierExact:
		return 1.0
	case core.TierAxis:
		return math.Max(0.5, 1.0-distance/6.0)
	default:
		return 0.5
	}
}

func roundTo(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(value*scale) / scale
}
