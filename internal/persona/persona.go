package persona

import "time"

// Mode selects the content-policy posture for a conversation.
type Mode string

const (
	ModeSFW  Mode = "SFW"
	ModeNSFW Mode = "NSFW"
)

// ParseMode defaults to SFW for anything unrecognized.
func ParseMode(s string) Mode {
	if s == string(ModeNSFW) {
		return ModeNSFW
	}
	return ModeSFW
}

// Tier is the intensity level within a mode, monotonically increasing.
type Tier string

const (
	TierNormal    Tier = "NORMAL"
	TierSlowBurn  Tier = "SLOW_BURN"
	TierTurnItUp  Tier = "TURN_IT_UP"
	TierAfterDark Tier = "AFTER_DARK"
)

// PatchEligible reports whether the behavior patch activates at this tier.
// Only the two highest tiers lift the ceiling, and only in NSFW mode.
func (t Tier) PatchEligible() bool {
	return t == TierTurnItUp || t == TierAfterDark
}

type Confidence string

const (
	ConfidenceLow  Confidence = "low"
	ConfidenceHigh Confidence = "high"
)

// MemoryFact is the pipeline's view of a remembered fact. Mode nil means the
// fact applies in both modes.
type MemoryFact struct {
	Key        string     `json:"key"`
	Value      string     `json:"value"`
	Mode       *Mode      `json:"mode"`
	Confidence Confidence `json:"confidence"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Record is a versioned persona definition: one base text per mode, plus an
// optional patch applied only at patch-eligible tiers in NSFW mode.
type Record struct {
	Name    string
	Version string
	Base    map[Mode]string
	Patch   string
}

// BaseFor returns the base text for a mode, concatenated with the patch when
// the tier is patch-eligible and the mode is NSFW.
func (r *Record) BaseFor(mode Mode, tier Tier) string {
	base := r.Base[mode]
	if mode == ModeNSFW && tier.PatchEligible() && r.Patch != "" {
		return base + "\n\n" + r.Patch
	}
	return base
}

// Default returns the built-in persona record.
func Default() *Record {
	return &Record{
		Name:    "bromo",
		Version: "v2.1.0",
		Base: map[Mode]string{
			ModeSFW:  coreIdentity + "\n\n" + sfwBase,
			ModeNSFW: coreIdentity + "\n\n" + nsfwBase,
		},
		Patch: nsfwBehaviorPatch,
	}
}
