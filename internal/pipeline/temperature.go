package pipeline

import "github.com/bromolabs/bromo-server/internal/persona"

// Temperature derives the sampling temperature from (mode, tier). SFW is
// fixed; NSFW scales upward across the higher tiers.
func Temperature(mode persona.Mode, tier persona.Tier) float64 {
	if mode != persona.ModeNSFW {
		return 0.7
	}
	switch tier {
	case persona.TierAfterDark:
		return 0.95
	case persona.TierTurnItUp:
		return 0.9
	default:
		return 0.85
	}
}
