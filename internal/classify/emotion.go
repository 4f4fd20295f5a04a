package classify

import (
	"strings"
	"time"
)

// emotionConfidenceNorm divides the primary emotion's aggregate score when
// deriving confidence.
const emotionConfidenceNorm = 3.0

// EmotionClassifier evaluates utterances against the per-emotion intensity
// rule table. Ties on aggregate score break toward the first emotion in the
// canonical declaration order.
type EmotionClassifier struct {
	rules []emotionRules
}

// NewEmotionClassifier builds a classifier from the embedded rule table.
func NewEmotionClassifier() (*EmotionClassifier, error) {
	rules, err := loadEmotionRules(emotionRulesYAML)
	if err != nil {
		return nil, err
	}
	return &EmotionClassifier{rules: rules}, nil
}

// Assess classifies one utterance and appends the result to hist. A text with
// no matches at all reports neutral at low intensity with zero confidence.
func (c *EmotionClassifier) Assess(text string, hist *EmotionHistory) EmotionAssessment {
	now := time.Now().UTC()

	primary := EmotionNeutral
	intensity := IntensityLow
	confidence := 0.0
	bestScore := 0
	var all []EmotionScore

	if strings.TrimSpace(text) != "" {
		for _, rules := range c.rules {
			score := 0
			maxTier := IntensityLow
			tierMatched := false
			// emotionTierOrder runs high to low, so the first tier with a
			// match is the highest matched intensity.
			for _, tier := range emotionTierOrder {
				matches := 0
				for _, re := range rules.Tiers[tier] {
					matches += len(re.FindAllString(text, -1))
				}
				score += matches
				if matches > 0 && !tierMatched {
					maxTier = tier
					tierMatched = true
				}
			}
			if score == 0 {
				continue
			}
			all = append(all, EmotionScore{Emotion: rules.Emotion, Intensity: maxTier, Score: score})
			if score > bestScore {
				bestScore = score
				primary = rules.Emotion
				intensity = maxTier
			}
		}
		if bestScore > 0 {
			confidence = clamp01(float64(bestScore) / emotionConfidenceNorm)
		}
	}

	hist.Append(EmotionRecord{
		Emotion:    primary,
		Intensity:  intensity,
		Confidence: confidence,
		At:         now,
	})

	return EmotionAssessment{
		Primary:     primary,
		Intensity:   intensity,
		Confidence:  confidence,
		AllEmotions: all,
		Trend:       EmotionTrendOf(hist.Emotions()),
		Timestamp:   now,
	}
}
