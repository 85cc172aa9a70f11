package pipeline

import (
	"regexp"
	"strings"
)

// BlockReason tags which taboo family matched, or empty for no violation.
type BlockReason string

const (
	ReasonNone             BlockReason = ""
	ReasonIncestStepfamily BlockReason = "incest_stepfamily"
	ReasonMinors           BlockReason = "minors"
	ReasonNonconsent       BlockReason = "nonconsent"

	// ReasonAdultVerification is not a taboo hit; it shares the blocked
	// response shape so clients render it the same way.
	ReasonAdultVerification BlockReason = "adult_verification_required"
)

// Classifier scans the latest user turn against fixed taboo pattern families.
// Families are checked in priority order; the first hit wins. Stateless and
// safe for concurrent use.
type Classifier struct {
	families []patternFamily
}

type patternFamily struct {
	reason   BlockReason
	patterns []*regexp.Regexp
}

// NewClassifier builds the default taboo classifier. Priority:
// incest/step-family > minors > non-consent.
func NewClassifier() *Classifier {
	return &Classifier{
		families: []patternFamily{
			{
				reason: ReasonIncestStepfamily,
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bstep[-\s]?(brother|sister|dad|mom|father|mother|son|daughter)\b`),
					regexp.MustCompile(`(?i)\b(stepbro|stepsis)\b`),
					regexp.MustCompile(`(?i)\bincest\b`),
				},
			},
			{
				reason: ReasonMinors,
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bminor\b`),
					regexp.MustCompile(`(?i)\bunder ?age\b`),
					regexp.MustCompile(`(?i)\bteen\b`),
					regexp.MustCompile(`(?i)\bchild\b`),
					regexp.MustCompile(`(?i)\bkid\b`),
					regexp.MustCompile(`(?i)\blittle (girl|boy)\b`),
					regexp.MustCompile(`(?i)\bschool(girl|boy)\b`),
				},
			},
			{
				reason: ReasonNonconsent,
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bno means yes\b`),
					regexp.MustCompile(`(?i)\bignore (my|the) no\b`),
					// "force" scoped to coercion phrasing; the bare word
					// flagged too much ("force of habit", "air force").
					regexp.MustCompile(`(?i)\bforced? (me|him|her|them|myself|you)\b`),
					regexp.MustCompile(`(?i)\bagainst (my|his|her|their) will\b`),
				},
			},
		},
	}
}

// Classify returns the highest-priority matching family, or ReasonNone.
// Total: every input maps to exactly one outcome.
func (c *Classifier) Classify(userText string) BlockReason {
	t := strings.ToLower(userText)
	for _, fam := range c.families {
		for _, re := range fam.patterns {
			if re.MatchString(t) {
				return fam.reason
			}
		}
	}
	return ReasonNone
}
