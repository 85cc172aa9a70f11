package persona

import "strings"

const memoryHeader = "REMEMBERED FACTS:"

// maxMemoryLines caps the rendered memory block.
const maxMemoryLines = 50

// Compose builds the full system prompt for a request: base text for
// (mode, tier) plus the rendered memory block. Deterministic for identical
// inputs; never calls out.
func Compose(rec *Record, mode Mode, tier Tier, facts []MemoryFact) string {
	prompt := rec.BaseFor(mode, tier)

	if len(facts) == 0 {
		return prompt
	}

	lines := make([]string, 0, len(facts))
	for _, f := range facts {
		if len(lines) >= maxMemoryLines {
			break
		}
		v := strings.TrimSpace(f.Value)
		if v == "" {
			continue
		}
		lines = append(lines, "- "+normalizeFact(v))
	}
	if len(lines) == 0 {
		return prompt
	}

	return prompt + "\n\n" + memoryHeader + "\n" + strings.Join(lines, "\n")
}

// normalizeFact rewrites the stored third-person "User ..." phrasing into the
// persona's voice, e.g. "User likes hiking" -> "He's into hiking".
func normalizeFact(v string) string {
	lower := strings.ToLower(v)
	switch {
	case strings.HasPrefix(lower, "user likes "):
		return "He's into " + v[len("user likes "):]
	case strings.HasPrefix(lower, "user loves "):
		return "He's really into " + v[len("user loves "):]
	case strings.HasPrefix(lower, "user hates "):
		return "He can't stand " + v[len("user hates "):]
	case strings.HasPrefix(lower, "user is "):
		return "He's " + v[len("user is "):]
	case strings.HasPrefix(lower, "user has "):
		return "He has " + v[len("user has "):]
	case strings.HasPrefix(lower, "user's "):
		return "His " + v[len("user's "):]
	}
	return v
}
