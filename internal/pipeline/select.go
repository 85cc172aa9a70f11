package pipeline

import (
	"sort"

	"github.com/bromolabs/bromo-server/internal/persona"
)

// maxSelectedMemories caps the facts surfaced into a single prompt.
const maxSelectedMemories = 50

// SelectMemories filters and ranks caller-supplied facts for the current
// mode: facts bound to a different mode are dropped, high confidence sorts
// first, recency breaks ties, input order breaks remaining ties. Result is
// capped at 50. Pure.
func SelectMemories(facts []persona.MemoryFact, mode persona.Mode) []persona.MemoryFact {
	kept := make([]persona.MemoryFact, 0, len(facts))
	for _, f := range facts {
		if f.Mode != nil && *f.Mode != mode {
			continue
		}
		kept = append(kept, f)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		hi := kept[i].Confidence == persona.ConfidenceHigh
		hj := kept[j].Confidence == persona.ConfidenceHigh
		if hi != hj {
			return hi
		}
		return kept[i].UpdatedAt.After(kept[j].UpdatedAt)
	})

	if len(kept) > maxSelectedMemories {
		kept = kept[:maxSelectedMemories]
	}
	return kept
}
