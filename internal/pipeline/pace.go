package pipeline

import (
	"strconv"
	"strings"

	"github.com/bromolabs/bromo-server/internal/persona"
)

// ResolvePace maps a raw client preference to an intensity tier. Accepts a
// number (1-9), a numeric string, or a label. Malformed input degrades to
// NORMAL, never errors.
func ResolvePace(raw string) persona.Tier {
	s := strings.TrimSpace(raw)
	if s == "" {
		return persona.TierNormal
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		switch {
		case n >= 9:
			return persona.TierAfterDark
		case n >= 5:
			return persona.TierTurnItUp
		default:
			return persona.TierSlowBurn
		}
	}

	switch strings.ToUpper(s) {
	case "AFTER_DARK":
		return persona.TierAfterDark
	case "FAST", "TURN_IT_UP":
		return persona.TierTurnItUp
	case "SLOW", "SLOW_BURN", "JUST_RIGHT":
		return persona.TierSlowBurn
	default:
		return persona.TierNormal
	}
}
