package memory

import (
	"regexp"
	"strings"

	"github.com/bromolabs/bromo-server/internal/persona"
)

// Heuristic fact detection over a user turn. Matches become low-confidence
// candidates; explicit confirmation through the memories API promotes them.
var extractors = []struct {
	key string
	re  *regexp.Regexp
	fmt func(m string) string
}{
	{
		key: "name",
		re:  regexp.MustCompile(`(?i)\bmy name is ([a-z][a-z'-]{1,30})`),
		fmt: func(m string) string { return "User is called " + m },
	},
	{
		key: "likes",
		re:  regexp.MustCompile(`(?i)\bi (?:really )?(?:like|love|enjoy) ([a-z0-9][a-z0-9 '-]{2,60})`),
		fmt: func(m string) string { return "User likes " + m },
	},
	{
		key: "dislikes",
		re:  regexp.MustCompile(`(?i)\bi (?:really )?(?:hate|can't stand|dislike) ([a-z0-9][a-z0-9 '-]{2,60})`),
		fmt: func(m string) string { return "User hates " + m },
	},
	{
		key: "job",
		re:  regexp.MustCompile(`(?i)\bi work as an? ([a-z][a-z ]{2,40})`),
		fmt: func(m string) string { return "User works as a " + m },
	},
}

// ExtractCandidates scans a user turn and returns low-confidence facts for
// the device. Zero matches is the common case.
func ExtractCandidates(deviceID, userText string) []Fact {
	var out []Fact
	for _, ex := range extractors {
		m := ex.re.FindStringSubmatch(userText)
		if m == nil {
			continue
		}
		val := strings.TrimSpace(strings.TrimRight(m[1], ".,!? "))
		if val == "" {
			continue
		}
		out = append(out, Fact{
			DeviceID:   deviceID,
			Key:        ex.key,
			Value:      ex.fmt(val),
			Confidence: persona.ConfidenceLow,
		})
	}
	return out
}
