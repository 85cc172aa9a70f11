package pipeline

import "strings"

// Known-bad curt openers the model falls into on a cold start.
var curtOpeners = map[string]struct{}{
	"what do you want?":        {},
	"focus. what do you want?": {},
}

const warmOpener = "Yeah. I'm here."

// SoftenEarlySnap substitutes a fixed warmer line when the very first
// exchange lands on a known curt default. Exact match only, trimmed and
// case-insensitive; everything else passes through untouched.
func SoftenEarlySnap(reply string, turnCount int) string {
	if turnCount > 1 {
		return reply
	}
	key := strings.ToLower(strings.TrimSpace(reply))
	if _, ok := curtOpeners[key]; ok {
		return warmOpener
	}
	return reply
}
