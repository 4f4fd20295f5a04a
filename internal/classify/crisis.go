package classify

import (
	"strings"
	"time"
)

// CrisisClassifier evaluates utterances against the tiered crisis rule table.
// Tier selection is severity-first: a single immediate-tier match outranks any
// number of matches in lower tiers.
type CrisisClassifier struct {
	tiers []crisisTier
}

// NewCrisisClassifier builds a classifier from the embedded rule table.
func NewCrisisClassifier() (*CrisisClassifier, error) {
	tiers, err := loadCrisisTiers(crisisRulesYAML)
	if err != nil {
		return nil, err
	}
	return &CrisisClassifier{tiers: tiers}, nil
}

// Assess classifies one utterance and appends the result to hist. The
// returned assessment's trend and escalation flag already account for the
// appended entry.
func (c *CrisisClassifier) Assess(text string, hist *CrisisHistory) CrisisAssessment {
	now := time.Now().UTC()

	level := LevelNone
	confidence := 0.0
	var indicators []string

	if strings.TrimSpace(text) != "" {
		for _, tier := range c.tiers {
			matches := 0
			for _, re := range tier.Patterns {
				found := re.FindAllString(text, -1)
				matches += len(found)
				indicators = append(indicators, found...)
			}
			if matches > 0 && level == LevelNone {
				level = tier.Level
				confidence = clamp01(float64(matches) / tier.Norm)
			}
		}
	}

	hist.Append(CrisisRecord{
		Level:      level,
		Confidence: confidence,
		Indicators: indicators,
		At:         now,
	})

	trend := CrisisTrendOf(hist.Levels())
	escalate := level == LevelHigh || level == LevelImmediate || trend == CrisisTrendEscalating

	return CrisisAssessment{
		Level:            level,
		Confidence:       confidence,
		Indicators:       indicators,
		EscalationNeeded: escalate,
		Trend:            trend,
		Resources:        ResourcesFor(level),
		Timestamp:        now,
	}
}
