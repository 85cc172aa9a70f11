package persona

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestComposeDeterministic(t *testing.T) {
	rec := Default()
	facts := []MemoryFact{
		{Key: "likes", Value: "User likes old trucks", Confidence: ConfidenceHigh, UpdatedAt: time.Now()},
	}
	a := Compose(rec, ModeNSFW, TierTurnItUp, facts)
	b := Compose(rec, ModeNSFW, TierTurnItUp, facts)
	if a != b {
		t.Fatalf("compose is not deterministic")
	}
}

func TestComposePatchEligibility(t *testing.T) {
	rec := Default()

	for _, tier := range []Tier{TierNormal, TierSlowBurn} {
		p := Compose(rec, ModeNSFW, tier, nil)
		if strings.Contains(p, "BEHAVIOR PATCH") {
			t.Fatalf("patch applied at %s", tier)
		}
	}
	for _, tier := range []Tier{TierTurnItUp, TierAfterDark} {
		p := Compose(rec, ModeNSFW, tier, nil)
		if !strings.Contains(p, "BEHAVIOR PATCH") {
			t.Fatalf("patch missing at %s", tier)
		}
	}

	// SFW never gets the patch, any tier
	p := Compose(rec, ModeSFW, TierAfterDark, nil)
	if strings.Contains(p, "BEHAVIOR PATCH") {
		t.Fatalf("patch applied in SFW")
	}
}

func TestComposeMemoryBlock(t *testing.T) {
	rec := Default()
	facts := []MemoryFact{
		{Key: "likes", Value: "User likes old trucks"},
		{Key: "name", Value: "User is called Matt"},
		{Key: "raw", Value: "Allergic to shellfish"},
	}
	p := Compose(rec, ModeSFW, TierNormal, facts)

	if !strings.Contains(p, "REMEMBERED FACTS:") {
		t.Fatalf("memory header missing")
	}
	if !strings.Contains(p, "- He's into old trucks") {
		t.Fatalf("pronoun normalization missing for likes, got:\n%s", p)
	}
	if !strings.Contains(p, "- He's called Matt") {
		t.Fatalf("pronoun normalization missing for is, got:\n%s", p)
	}
	if !strings.Contains(p, "- Allergic to shellfish") {
		t.Fatalf("unprefixed fact should pass through verbatim")
	}
}

func TestComposeNoFactsNoHeader(t *testing.T) {
	rec := Default()
	p := Compose(rec, ModeSFW, TierNormal, nil)
	if strings.Contains(p, "REMEMBERED FACTS:") {
		t.Fatalf("header must not appear without facts")
	}
}

func TestComposeCapsMemoryLines(t *testing.T) {
	rec := Default()
	var facts []MemoryFact
	for i := 0; i < 80; i++ {
		facts = append(facts, MemoryFact{Key: fmt.Sprintf("k%d", i), Value: fmt.Sprintf("fact %d", i)})
	}
	p := Compose(rec, ModeSFW, TierNormal, facts)

	got := strings.Count(p, "\n- ")
	if got != 50 {
		t.Fatalf("expected 50 memory lines, got %d", got)
	}
}
